package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"estudia-backend/internal/models"
)

type fakeProgressStore struct {
	records      []*models.ProgressRecord
	overall      models.OverallProgress
	totalMinutes float64
	study        []models.ActivityItem
	summaries    []models.ActivityItem
	tutoring     []models.ActivityItem

	accumulated *models.UpdateProgressRequest
}

func (f *fakeProgressStore) Accumulate(ctx context.Context, userID string, req models.UpdateProgressRequest) (*models.ProgressRecord, error) {
	f.accumulated = &req
	return &models.ProgressRecord{ID: uuid.New(), UserID: userID, Subject: req.Subject, Level: req.Level}, nil
}

func (f *fakeProgressStore) ListByUser(ctx context.Context, userID, subject string) ([]*models.ProgressRecord, error) {
	return f.records, nil
}

func (f *fakeProgressStore) Overall(ctx context.Context, userID string) (models.OverallProgress, float64, error) {
	return f.overall, f.totalMinutes, nil
}

func (f *fakeProgressStore) RecentStudySessions(ctx context.Context, userID string, limit int) ([]models.ActivityItem, error) {
	return f.study, nil
}

func (f *fakeProgressStore) RecentSummaries(ctx context.Context, userID string, limit int) ([]models.ActivityItem, error) {
	return f.summaries, nil
}

func (f *fakeProgressStore) RecentTutoringSessions(ctx context.Context, userID string, limit int) ([]models.ActivityItem, error) {
	return f.tutoring, nil
}

type fakeEnsurer struct {
	ensured []string
}

func (f *fakeEnsurer) Ensure(ctx context.Context, id, email, name string) error {
	f.ensured = append(f.ensured, id)
	return nil
}

type progressResponse struct {
	Success  bool                  `json:"success"`
	Progress models.ProgressReport `json:"progress"`
}

func getProgressReport(t *testing.T, handler *ProgressHandler) progressResponse {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/progress", nil)

	handler.Report(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var body progressResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	return body
}

func TestProgressReportCounters(t *testing.T) {
	store := &fakeProgressStore{
		overall: models.OverallProgress{
			TotalSessions:   4,
			TotalStudyPlans: 3,
			CompletedPlans:  2,
		},
		totalMinutes: 100,
	}
	handler := &ProgressHandler{progressRepo: store, userRepo: &fakeEnsurer{}}

	body := getProgressReport(t, handler)

	// 100 minutes → 1.666... hours, rounded to 2 decimals.
	if body.Progress.Overall.TotalHours != 1.67 {
		t.Errorf("Expected total hours 1.67, got %v", body.Progress.Overall.TotalHours)
	}
	// 2 of 3 plans completed → round(66.67) = 67.
	if body.Progress.Overall.CompletionRate != 67 {
		t.Errorf("Expected completion rate 67, got %d", body.Progress.Overall.CompletionRate)
	}
}

func TestProgressReportZeroPlans(t *testing.T) {
	store := &fakeProgressStore{
		overall:      models.OverallProgress{TotalStudyPlans: 0, CompletedPlans: 0},
		totalMinutes: 0,
	}
	handler := &ProgressHandler{progressRepo: store, userRepo: &fakeEnsurer{}}

	body := getProgressReport(t, handler)

	if body.Progress.Overall.CompletionRate != 0 {
		t.Errorf("Expected completion rate 0 with no plans, got %d", body.Progress.Overall.CompletionRate)
	}
	if body.Progress.Overall.TotalHours != 0 {
		t.Errorf("Expected total hours 0, got %v", body.Progress.Overall.TotalHours)
	}
	if body.Progress.RecentActivity == nil {
		t.Error("Recent activity must encode as an empty array, not null")
	}
}

func TestProgressReportActivityMergeAndCap(t *testing.T) {
	// 15 items across the three sources with distinct, interleaved
	// timestamps. The feed keeps only the 10 newest overall.
	base := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	item := func(typ string, age int) models.ActivityItem {
		return models.ActivityItem{
			ID:        uuid.New(),
			Type:      typ,
			Title:     typ,
			Timestamp: base.Add(-time.Duration(age) * time.Minute),
		}
	}

	store := &fakeProgressStore{}
	for i := 0; i < 5; i++ {
		store.study = append(store.study, item("study", i*3))
		store.summaries = append(store.summaries, item("summary", i*3+1))
		store.tutoring = append(store.tutoring, item("tutoring", i*3+2))
	}
	handler := &ProgressHandler{progressRepo: store, userRepo: &fakeEnsurer{}}

	body := getProgressReport(t, handler)

	activity := body.Progress.RecentActivity
	if len(activity) != 10 {
		t.Fatalf("Expected feed capped at 10, got %d", len(activity))
	}
	for i := 1; i < len(activity); i++ {
		if activity[i].Timestamp.After(activity[i-1].Timestamp) {
			t.Fatalf("Feed out of order at %d: %v after %v", i, activity[i].Timestamp, activity[i-1].Timestamp)
		}
	}
	// Ages 0..9 survive the cap; 10..14 do not.
	if got := activity[0].Type; got != "study" {
		t.Errorf("Expected newest item from study sessions, got %q", got)
	}
	if got := activity[9].Timestamp; !got.Equal(base.Add(-9 * time.Minute)) {
		t.Errorf("Expected oldest kept item at 9 minutes old, got %v", got)
	}
}

func TestProgressUpdateAccumulates(t *testing.T) {
	store := &fakeProgressStore{}
	users := &fakeEnsurer{}
	handler := &ProgressHandler{progressRepo: store, userRepo: users}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/progress",
		strings.NewReader(`{"subject":"física","level":"Intermedio","hours":1.5,"sessions":1}`))

	handler.Update(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if len(users.ensured) != 1 || users.ensured[0] != models.DemoUserID {
		t.Errorf("Expected demo user upsert, got %v", users.ensured)
	}
	if store.accumulated == nil || store.accumulated.Hours != 1.5 || store.accumulated.Subject != "física" {
		t.Errorf("Unexpected accumulate call: %+v", store.accumulated)
	}
}
