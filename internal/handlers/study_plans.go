package handlers

import (
	"encoding/json"
	"net/http"

	"estudia-backend/internal/models"
	"estudia-backend/internal/services"
)

type StudyPlanHandler struct {
	service *services.StudyPlanService
}

func NewStudyPlanHandler(service *services.StudyPlanService) *StudyPlanHandler {
	return &StudyPlanHandler{service: service}
}

func (h *StudyPlanHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req models.GeneratePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("Invalid request body"))
		return
	}

	plan, content, err := h.service.Generate(r.Context(), callerID(r), req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"studyPlan": map[string]interface{}{
			"id":               plan.ID,
			"title":            plan.Title,
			"subject":          plan.Subject,
			"level":            plan.Level,
			"duration":         plan.Duration,
			"hoursPerWeek":     plan.HoursPerWeek,
			"generatedContent": content,
		},
	})
}

func (h *StudyPlanHandler) List(w http.ResponseWriter, r *http.Request) {
	plans, err := h.service.List(r.Context(), callerID(r))
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"studyPlans": plans,
	})
}
