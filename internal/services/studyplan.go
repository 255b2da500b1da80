package services

import (
	"context"
	"encoding/json"
	"fmt"

	"estudia-backend/internal/models"
	"estudia-backend/internal/repository"
)

const (
	planTemperature     = 0.7
	planMaxOutputTokens = 2000
)

type studyPlanStore interface {
	CreateWithWeeks(ctx context.Context, plan *models.StudyPlan, weeks []*models.WeeklyPlan) error
	ListByUser(ctx context.Context, userID string) ([]*models.StudyPlan, error)
}

type StudyPlanService struct {
	store      studyPlanStore
	users      userStore
	completion CompletionClient
}

func NewStudyPlanService(store *repository.StudyPlanRepo, users *repository.UserRepo, completion CompletionClient) *StudyPlanService {
	return &StudyPlanService{store: store, users: users, completion: completion}
}

// Generate builds a plan prompt from the validated fields, calls the
// completion service once, and persists the parsed result. Malformed
// AI JSON degrades to a fallback plan with zero weekly children instead
// of failing the request.
func (s *StudyPlanService) Generate(ctx context.Context, userID string, req models.GeneratePlanRequest) (*models.StudyPlan, *models.PlanContent, error) {
	if req.Subject == "" || req.Level == "" || req.Duration == 0 || req.HoursPerWeek == 0 {
		return nil, nil, &ValidationError{Message: "Missing required fields"}
	}

	if err := s.users.Ensure(ctx, userID, models.DemoUserEmail, models.DemoUserName); err != nil {
		return nil, nil, err
	}

	raw, err := s.completion.Complete(ctx, planSystemPrompt,
		[]models.ChatMessage{{Role: "user", Content: buildPlanPrompt(req)}},
		planTemperature, planMaxOutputTokens)
	if err != nil {
		return nil, nil, err
	}
	if raw == "" {
		return nil, nil, ErrEmptyCompletion
	}

	content := parsePlanContent(raw)

	plan := &models.StudyPlan{
		UserID:       userID,
		Title:        fmt.Sprintf("%s - Nivel %s", req.Subject, req.Level),
		Subject:      req.Subject,
		Level:        req.Level,
		Duration:     req.Duration,
		HoursPerWeek: req.HoursPerWeek,
	}
	if req.Objectives != "" {
		plan.Objectives = &req.Objectives
	}
	if req.LearningStyle != "" {
		plan.LearningStyle = []string{req.LearningStyle}
	}
	plan.GeneratedContent, _ = json.Marshal(content)

	weeks := make([]*models.WeeklyPlan, 0, len(content.WeeklyPlan))
	for _, wc := range content.WeeklyPlan {
		weeks = append(weeks, &models.WeeklyPlan{
			WeekNumber: wc.Week,
			Title:      wc.Title,
			Objectives: wc.Objectives,
			Topics:     orEmpty(wc.Topics),
			Activities: orEmpty(wc.Activities),
			Resources:  orEmpty(wc.Resources),
		})
	}

	if err := s.store.CreateWithWeeks(ctx, plan, weeks); err != nil {
		return nil, nil, err
	}

	return plan, content, nil
}

// parsePlanContent decodes the contracted JSON shape, tolerating code
// fences. On failure it synthesizes the degraded fallback: no weekly
// schedule, raw text as the only actionable output.
func parsePlanContent(raw string) *models.PlanContent {
	content := &models.PlanContent{}
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), content); err != nil {
		return &models.PlanContent{
			Objectives:      "Plan de estudio generado por IA",
			WeeklyPlan:      []models.WeekContent{},
			Recommendations: raw,
		}
	}
	if content.WeeklyPlan == nil {
		content.WeeklyPlan = []models.WeekContent{}
	}
	return content
}

func (s *StudyPlanService) List(ctx context.Context, userID string) ([]*models.StudyPlan, error) {
	return s.store.ListByUser(ctx, userID)
}

func orEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
