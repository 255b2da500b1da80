package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"estudia-backend/internal/models"
	"estudia-backend/internal/services"
)

type SummaryHandler struct {
	service *services.SummaryService
}

func NewSummaryHandler(service *services.SummaryService) *SummaryHandler {
	return &SummaryHandler{service: service}
}

func (h *SummaryHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req models.GenerateSummaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("Invalid request body"))
		return
	}

	summary, err := h.service.Generate(r.Context(), callerID(r), req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"summary": summary,
	})
}

func (h *SummaryHandler) List(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.service.List(r.Context(), callerID(r))
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"summaries": summaries,
	})
}

func (h *SummaryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	summaryIDStr := r.URL.Query().Get("summaryId")
	if summaryIDStr == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("Summary ID is required"))
		return
	}
	summaryID, err := uuid.Parse(summaryIDStr)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResp("Summary not found"))
		return
	}

	if err := h.service.Delete(r.Context(), callerID(r), summaryID); err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Summary deleted successfully",
	})
}
