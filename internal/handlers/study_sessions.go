package handlers

import (
	"encoding/json"
	"net/http"

	"estudia-backend/internal/models"
	"estudia-backend/internal/repository"
)

type StudySessionHandler struct {
	sessionRepo *repository.StudySessionRepo
	userRepo    *repository.UserRepo
}

func NewStudySessionHandler(sessionRepo *repository.StudySessionRepo, userRepo *repository.UserRepo) *StudySessionHandler {
	return &StudySessionHandler{sessionRepo: sessionRepo, userRepo: userRepo}
}

// Create records a study session; completed sessions feed the progress
// counters.
func (h *StudySessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateStudySessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("Invalid request body"))
		return
	}

	if req.Title == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("Title is required"))
		return
	}

	userID := callerID(r)
	ctx := r.Context()

	if err := h.userRepo.Ensure(ctx, userID, models.DemoUserEmail, models.DemoUserName); err != nil {
		handleServiceError(w, r, err)
		return
	}

	session := &models.StudySession{
		UserID:          userID,
		StudyPlanID:     req.StudyPlanID,
		Title:           req.Title,
		Type:            req.Type,
		DurationMinutes: req.Duration,
		Completed:       req.Completed,
	}
	if err := h.sessionRepo.Create(ctx, session); err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"studySession": session,
	})
}

func (h *StudySessionHandler) List(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.sessionRepo.ListByUser(r.Context(), callerID(r))
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":       true,
		"studySessions": sessions,
	})
}
