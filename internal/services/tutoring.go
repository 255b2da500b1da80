package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"estudia-backend/internal/models"
	"estudia-backend/internal/repository"
)

const (
	defaultSubject = "General"
	defaultLevel   = "Intermedio"
	defaultMode    = "Explicación"

	// historyWindow bounds the completion context: the N most recent
	// messages, including the turn just persisted.
	historyWindow = 10

	tutorTemperature     = 0.7
	tutorMaxOutputTokens = 1500
)

type tutoringStore interface {
	GetSession(ctx context.Context, id uuid.UUID) (*models.TutoringSession, error)
	CreateSession(ctx context.Context, s *models.TutoringSession) error
	AppendMessage(ctx context.Context, m *models.TutoringMessage) error
	RecentMessages(ctx context.Context, sessionID uuid.UUID, limit int) ([]*models.TutoringMessage, error)
	CompleteTurn(ctx context.Context, sessionID uuid.UUID, reply string, topics []string, durationMinutes int) error
	GetSessionForUser(ctx context.Context, id uuid.UUID, userID string) (*models.TutoringSession, error)
	ListByUser(ctx context.Context, userID string) ([]*models.TutoringSession, error)
	DeleteSession(ctx context.Context, id uuid.UUID, userID string) error
}

type userStore interface {
	Ensure(ctx context.Context, id, email, name string) error
}

// TutoringService owns the chat session lifecycle: session
// resolution, message persistence, history windowing, prompt assembly
// and post-response bookkeeping.
type TutoringService struct {
	store      tutoringStore
	users      userStore
	completion CompletionClient
}

func NewTutoringService(store *repository.TutoringRepo, users *repository.UserRepo, completion CompletionClient) *TutoringService {
	return &TutoringService{store: store, users: users, completion: completion}
}

// HandleTurn runs one chat turn end to end. The user message is
// persisted before the completion call and deliberately survives a
// downstream failure; only the assistant reply and the session counters
// are written atomically afterwards.
func (s *TutoringService) HandleTurn(ctx context.Context, userID string, req models.ChatTurnRequest) (*models.ChatTurnResult, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, &ValidationError{Message: "Message is required"}
	}

	if err := s.users.Ensure(ctx, userID, models.DemoUserEmail, models.DemoUserName); err != nil {
		return nil, err
	}

	session, err := s.resolveSession(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	userMsg := &models.TutoringMessage{
		SessionID: session.ID,
		Role:      "user",
		Content:   req.Message,
	}
	if err := s.store.AppendMessage(ctx, userMsg); err != nil {
		return nil, err
	}

	// Newest-first window including the message just saved, reversed to
	// chronological order for the completion call.
	recent, err := s.store.RecentMessages(ctx, session.ID, historyWindow)
	if err != nil {
		return nil, err
	}
	history := make([]models.ChatMessage, len(recent))
	for i, m := range recent {
		history[len(recent)-1-i] = models.ChatMessage{Role: m.Role, Content: m.Content}
	}

	reply, err := s.completion.Complete(ctx, buildTutorSystemPrompt(session), history, tutorTemperature, tutorMaxOutputTokens)
	if err != nil {
		return nil, err
	}
	if reply == "" {
		return nil, ErrEmptyCompletion
	}

	// Topics come from the original user message, not the reply. One
	// minute is credited per turn regardless of wall-clock time.
	topics := MergeTopics(session.TopicsCovered, ExtractTopics(req.Message))
	if err := s.store.CompleteTurn(ctx, session.ID, reply, topics, session.DurationMinutes+1); err != nil {
		return nil, err
	}

	return &models.ChatTurnResult{
		Response:     reply,
		SessionID:    session.ID,
		MessageCount: len(recent) + 2,
	}, nil
}

// resolveSession returns the named session when it exists, otherwise a
// fresh one built from the request parameters or the defaults.
func (s *TutoringService) resolveSession(ctx context.Context, userID string, req models.ChatTurnRequest) (*models.TutoringSession, error) {
	if req.SessionID != "" {
		id, err := uuid.Parse(req.SessionID)
		if err == nil {
			session, err := s.store.GetSession(ctx, id)
			if err == nil {
				return session, nil
			}
			if !errors.Is(err, repository.ErrNotFound) {
				return nil, err
			}
		}
	}

	session := &models.TutoringSession{
		UserID:        userID,
		Subject:       orDefault(req.Subject, defaultSubject),
		Level:         orDefault(req.Level, defaultLevel),
		Mode:          orDefault(req.Mode, defaultMode),
		Status:        "active",
		TopicsCovered: []string{},
	}
	if err := s.store.CreateSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *TutoringService) GetSession(ctx context.Context, userID string, id uuid.UUID) (*models.TutoringSession, error) {
	session, err := s.store.GetSessionForUser(ctx, id, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &NotFoundError{Message: "Session not found"}
		}
		return nil, err
	}
	return session, nil
}

func (s *TutoringService) ListSessions(ctx context.Context, userID string) ([]*models.TutoringSession, error) {
	return s.store.ListByUser(ctx, userID)
}

func (s *TutoringService) DeleteSession(ctx context.Context, userID string, id uuid.UUID) error {
	err := s.store.DeleteSession(ctx, id, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return &NotFoundError{Message: "Session not found"}
	}
	return err
}

func orDefault(val, def string) string {
	if val == "" {
		return def
	}
	return val
}
