package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"estudia-backend/internal/models"
	"estudia-backend/internal/services"
)

type TutoringHandler struct {
	service *services.TutoringService
}

func NewTutoringHandler(service *services.TutoringService) *TutoringHandler {
	return &TutoringHandler{service: service}
}

// Chat handles one tutoring turn: resolve or create the session, run
// the completion, return the reply with the session id.
func (h *TutoringHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatTurnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("Invalid request body"))
		return
	}

	result, err := h.service.HandleTurn(r.Context(), callerID(r), req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"response":     result.Response,
		"sessionId":    result.SessionID,
		"messageCount": result.MessageCount,
	})
}

// Get returns a single session with full history when sessionId is
// given, otherwise the caller's session list.
func (h *TutoringHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := callerID(r)

	if sessionIDStr := r.URL.Query().Get("sessionId"); sessionIDStr != "" {
		sessionID, err := uuid.Parse(sessionIDStr)
		if err != nil {
			writeJSON(w, http.StatusNotFound, errorResp("Session not found"))
			return
		}

		session, err := h.service.GetSession(r.Context(), userID, sessionID)
		if err != nil {
			handleServiceError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"session": session,
		})
		return
	}

	sessions, err := h.service.ListSessions(r.Context(), userID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"sessions": sessions,
	})
}

func (h *TutoringHandler) Delete(w http.ResponseWriter, r *http.Request) {
	sessionIDStr := r.URL.Query().Get("sessionId")
	if sessionIDStr == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("Session ID is required"))
		return
	}
	sessionID, err := uuid.Parse(sessionIDStr)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResp("Session not found"))
		return
	}

	if err := h.service.DeleteSession(r.Context(), callerID(r), sessionID); err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Session deleted successfully",
	})
}
