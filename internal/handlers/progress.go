package handlers

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"sort"

	"golang.org/x/sync/errgroup"

	"estudia-backend/internal/models"
	"estudia-backend/internal/repository"
)

const recentActivityCap = 10

type progressStore interface {
	Accumulate(ctx context.Context, userID string, req models.UpdateProgressRequest) (*models.ProgressRecord, error)
	ListByUser(ctx context.Context, userID, subject string) ([]*models.ProgressRecord, error)
	Overall(ctx context.Context, userID string) (models.OverallProgress, float64, error)
	RecentStudySessions(ctx context.Context, userID string, limit int) ([]models.ActivityItem, error)
	RecentSummaries(ctx context.Context, userID string, limit int) ([]models.ActivityItem, error)
	RecentTutoringSessions(ctx context.Context, userID string, limit int) ([]models.ActivityItem, error)
}

type userEnsurer interface {
	Ensure(ctx context.Context, id, email, name string) error
}

type ProgressHandler struct {
	progressRepo progressStore
	userRepo     userEnsurer
}

func NewProgressHandler(progressRepo *repository.ProgressRepo, userRepo *repository.UserRepo) *ProgressHandler {
	return &ProgressHandler{progressRepo: progressRepo, userRepo: userRepo}
}

// Report assembles the per-subject records, the aggregate counters, and
// the merged recent-activity feed. The three activity queries are the
// only parallel fan-out in the system.
func (h *ProgressHandler) Report(w http.ResponseWriter, r *http.Request) {
	userID := callerID(r)
	subject := r.URL.Query().Get("subject")
	ctx := r.Context()

	records, err := h.progressRepo.ListByUser(ctx, userID, subject)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	overall, totalMinutes, err := h.progressRepo.Overall(ctx, userID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	overall.TotalHours = math.Round(totalMinutes/60*100) / 100
	if overall.TotalStudyPlans > 0 {
		overall.CompletionRate = int(math.Round(float64(overall.CompletedPlans) / float64(overall.TotalStudyPlans) * 100))
	}

	var study, summaries, tutoring []models.ActivityItem
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		study, err = h.progressRepo.RecentStudySessions(gctx, userID, 5)
		return err
	})
	g.Go(func() error {
		var err error
		summaries, err = h.progressRepo.RecentSummaries(gctx, userID, 5)
		return err
	})
	g.Go(func() error {
		var err error
		tutoring, err = h.progressRepo.RecentTutoringSessions(gctx, userID, 5)
		return err
	})
	if err := g.Wait(); err != nil {
		handleServiceError(w, r, err)
		return
	}

	activity := make([]models.ActivityItem, 0, len(study)+len(summaries)+len(tutoring))
	activity = append(activity, study...)
	activity = append(activity, summaries...)
	activity = append(activity, tutoring...)
	sort.SliceStable(activity, func(i, j int) bool {
		return activity[i].Timestamp.After(activity[j].Timestamp)
	})
	if len(activity) > recentActivityCap {
		activity = activity[:recentActivityCap]
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"progress": models.ProgressReport{
			Records:        records,
			Overall:        overall,
			RecentActivity: activity,
		},
	})
}

// Update accumulates study effort onto the (subject, level) record.
func (h *ProgressHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("Invalid request body"))
		return
	}

	if req.Subject == "" || req.Level == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("Subject and level are required"))
		return
	}

	userID := callerID(r)
	ctx := r.Context()

	if err := h.userRepo.Ensure(ctx, userID, models.DemoUserEmail, models.DemoUserName); err != nil {
		handleServiceError(w, r, err)
		return
	}

	record, err := h.progressRepo.Accumulate(ctx, userID, req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":        true,
		"progressRecord": record,
	})
}
