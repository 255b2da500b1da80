package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"estudia-backend/internal/models"
	"estudia-backend/internal/repository"
)

// ─── Fakes shared across service tests ───

type fakeUserStore struct {
	ensured []string
	err     error
}

func (f *fakeUserStore) Ensure(ctx context.Context, id, email, name string) error {
	f.ensured = append(f.ensured, id)
	return f.err
}

type fakeCompletion struct {
	reply    string
	err      error
	calls    int
	system   string
	messages []models.ChatMessage
	temp     float32
	tokens   int32
}

func (f *fakeCompletion) Complete(ctx context.Context, system string, messages []models.ChatMessage, temperature float32, maxTokens int32) (string, error) {
	f.calls++
	f.system = system
	f.messages = messages
	f.temp = temperature
	f.tokens = maxTokens
	return f.reply, f.err
}

type fakeSummaryStore struct {
	created   []*models.Summary
	deleteErr error
}

func (f *fakeSummaryStore) Create(ctx context.Context, s *models.Summary) error {
	s.ID = uuid.New()
	s.CreatedAt = time.Now()
	f.created = append(f.created, s)
	return nil
}

func (f *fakeSummaryStore) ListByUser(ctx context.Context, userID string) ([]*models.Summary, error) {
	return f.created, nil
}

func (f *fakeSummaryStore) Delete(ctx context.Context, id uuid.UUID, userID string) error {
	return f.deleteErr
}

// ─── Reduction percentage ───

func TestReductionPercent(t *testing.T) {
	tests := []struct {
		name     string
		original string
		summary  string
		expected float64
	}{
		{"half as long", "abcdefghij", "abcde", 50.0},
		{"empty original", "", "whatever", 0},
		{"no reduction", "abc", "abc", 0},
		{"two decimals", strings.Repeat("x", 3), "xx", 33.33},
		{"longer than original", "ab", "abcd", -100.0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := reductionPercent(tc.original, tc.summary)
			if got != tc.expected {
				t.Errorf("reductionPercent(%q, %q) = %v, want %v", tc.original, tc.summary, got, tc.expected)
			}
		})
	}
}

// ─── Content parsing ───

func TestParseSummaryContent(t *testing.T) {
	t.Run("valid JSON", func(t *testing.T) {
		raw := `{"summary":"corto","keyPoints":["a"],"studyQuestions":["q"]}`
		content := parseSummaryContent(raw)
		if content.Summary != "corto" {
			t.Errorf("Expected summary 'corto', got %q", content.Summary)
		}
		if len(content.KeyPoints) != 1 || content.KeyPoints[0] != "a" {
			t.Errorf("Unexpected key points: %v", content.KeyPoints)
		}
		if content.Examples == nil || content.TranslatedTerms == nil {
			t.Error("Absent optional fields must decode to empty slices, not nil")
		}
	})

	t.Run("fenced JSON", func(t *testing.T) {
		raw := "```json\n{\"summary\":\"corto\"}\n```"
		if content := parseSummaryContent(raw); content.Summary != "corto" {
			t.Errorf("Expected fenced JSON to parse, got summary %q", content.Summary)
		}
	})

	t.Run("malformed reply falls back to raw text", func(t *testing.T) {
		raw := "Este texto no es JSON."
		content := parseSummaryContent(raw)
		if content.Summary != raw {
			t.Errorf("Expected raw text as summary, got %q", content.Summary)
		}
		if len(content.KeyPoints) != 0 || len(content.StudyQuestions) != 0 {
			t.Errorf("Fallback must carry empty slices, got %v / %v", content.KeyPoints, content.StudyQuestions)
		}
	})
}

// ─── Generate flow ───

func TestSummaryGenerate(t *testing.T) {
	store := &fakeSummaryStore{}
	users := &fakeUserStore{}
	completion := &fakeCompletion{reply: `{"summary":"abcde","keyPoints":[],"studyQuestions":[]}`}
	svc := &SummaryService{store: store, users: users, completion: completion}

	result, err := svc.Generate(context.Background(), "demo-user", models.GenerateSummaryRequest{Text: "abcdefghij"})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if result.Reduction != 50.0 {
		t.Errorf("Expected reduction 50.0, got %v", result.Reduction)
	}
	if len(users.ensured) != 1 || users.ensured[0] != "demo-user" {
		t.Errorf("Expected user upsert before write, got %v", users.ensured)
	}
	if len(store.created) != 1 {
		t.Fatalf("Expected one persisted summary, got %d", len(store.created))
	}
	if store.created[0].SummaryText != "abcde" {
		t.Errorf("Persisted summary text %q", store.created[0].SummaryText)
	}
	if store.created[0].Style != "Puntos Clave" || store.created[0].Length != "Medio" {
		t.Errorf("Expected default style/length, got %q/%q", store.created[0].Style, store.created[0].Length)
	}
	if completion.temp != 0.5 || completion.tokens != 2000 {
		t.Errorf("Unexpected sampling params: temp=%v tokens=%v", completion.temp, completion.tokens)
	}
}

func TestSummaryGenerateValidation(t *testing.T) {
	svc := &SummaryService{store: &fakeSummaryStore{}, users: &fakeUserStore{}, completion: &fakeCompletion{}}

	_, err := svc.Generate(context.Background(), "demo-user", models.GenerateSummaryRequest{})
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("Expected ValidationError, got %v", err)
	}
}

func TestSummaryGenerateEmptyCompletion(t *testing.T) {
	svc := &SummaryService{store: &fakeSummaryStore{}, users: &fakeUserStore{}, completion: &fakeCompletion{reply: ""}}

	_, err := svc.Generate(context.Background(), "demo-user", models.GenerateSummaryRequest{Text: "hola"})
	if !errors.Is(err, ErrEmptyCompletion) {
		t.Fatalf("Expected ErrEmptyCompletion, got %v", err)
	}
}

func TestSummaryDeleteNotFound(t *testing.T) {
	svc := &SummaryService{store: &fakeSummaryStore{deleteErr: repository.ErrNotFound}, users: &fakeUserStore{}, completion: &fakeCompletion{}}

	err := svc.Delete(context.Background(), "demo-user", uuid.New())
	var nfErr *NotFoundError
	if !errors.As(err, &nfErr) {
		t.Fatalf("Expected NotFoundError, got %v", err)
	}
}
