package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"estudia-backend/internal/models"
	"estudia-backend/internal/repository"
)

const (
	summaryTemperature     = 0.5
	summaryMaxOutputTokens = 2000
)

type summaryStore interface {
	Create(ctx context.Context, s *models.Summary) error
	ListByUser(ctx context.Context, userID string) ([]*models.Summary, error)
	Delete(ctx context.Context, id uuid.UUID, userID string) error
}

type SummaryService struct {
	store      summaryStore
	users      userStore
	completion CompletionClient
}

func NewSummaryService(store *repository.SummaryRepo, users *repository.UserRepo, completion CompletionClient) *SummaryService {
	return &SummaryService{store: store, users: users, completion: completion}
}

// Generate produces and persists a summary of the given text. Malformed
// AI JSON degrades to the raw reply as the summary body.
func (s *SummaryService) Generate(ctx context.Context, userID string, req models.GenerateSummaryRequest) (*models.GeneratedSummary, error) {
	if req.Text == "" {
		return nil, &ValidationError{Message: "Text is required"}
	}

	if err := s.users.Ensure(ctx, userID, models.DemoUserEmail, models.DemoUserName); err != nil {
		return nil, err
	}

	raw, err := s.completion.Complete(ctx, summarySystemPrompt,
		[]models.ChatMessage{{Role: "user", Content: buildSummaryPrompt(req)}},
		summaryTemperature, summaryMaxOutputTokens)
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, ErrEmptyCompletion
	}

	content := parseSummaryContent(raw)
	reduction := reductionPercent(req.Text, content.Summary)

	summary := &models.Summary{
		UserID:         userID,
		Title:          fmt.Sprintf("Resumen generado - %s", time.Now().Format("2/1/2006")),
		OriginalText:   req.Text,
		SummaryText:    content.Summary,
		KeyPoints:      content.KeyPoints,
		StudyQuestions: content.StudyQuestions,
		Style:          orDefault(req.Style, "Puntos Clave"),
		Length:         orDefault(req.Length, "Medio"),
		SourceType:     "text",
		Reduction:      reduction,
	}
	if err := s.store.Create(ctx, summary); err != nil {
		return nil, err
	}

	return &models.GeneratedSummary{
		ID:              summary.ID,
		Title:           summary.Title,
		SummaryText:     content.Summary,
		KeyPoints:       content.KeyPoints,
		StudyQuestions:  content.StudyQuestions,
		Examples:        content.Examples,
		TranslatedTerms: content.TranslatedTerms,
		Reduction:       reduction,
		CreatedAt:       summary.CreatedAt,
	}, nil
}

func parseSummaryContent(raw string) *models.SummaryContent {
	content := &models.SummaryContent{}
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), content); err != nil || content.Summary == "" {
		return &models.SummaryContent{
			Summary:         raw,
			KeyPoints:       []string{},
			StudyQuestions:  []string{},
			Examples:        []string{},
			TranslatedTerms: []models.TranslatedTerm{},
		}
	}
	if content.KeyPoints == nil {
		content.KeyPoints = []string{}
	}
	if content.StudyQuestions == nil {
		content.StudyQuestions = []string{}
	}
	if content.Examples == nil {
		content.Examples = []string{}
	}
	if content.TranslatedTerms == nil {
		content.TranslatedTerms = []models.TranslatedTerm{}
	}
	return content
}

// reductionPercent is ((len(original) - len(summary)) / len(original)) * 100,
// rounded to 2 decimals; 0 for empty input.
func reductionPercent(original, summary string) float64 {
	if len(original) == 0 {
		return 0
	}
	reduction := float64(len(original)-len(summary)) / float64(len(original)) * 100
	return math.Round(reduction*100) / 100
}

func (s *SummaryService) List(ctx context.Context, userID string) ([]*models.Summary, error) {
	return s.store.ListByUser(ctx, userID)
}

func (s *SummaryService) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	err := s.store.Delete(ctx, id, userID)
	if err == repository.ErrNotFound {
		return &NotFoundError{Message: "Summary not found"}
	}
	return err
}
