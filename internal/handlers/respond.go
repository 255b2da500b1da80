package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"estudia-backend/internal/models"
	"estudia-backend/internal/services"
)

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func errorResp(message string) models.ErrorResponse {
	return models.ErrorResponse{Error: message}
}

// handleServiceError maps typed service errors to statuses. Anything
// unrecognized is logged server-side and surfaced as a generic 500.
func handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch e := err.(type) {
	case *services.ValidationError:
		writeJSON(w, http.StatusBadRequest, errorResp(e.Message))
	case *services.NotFoundError:
		writeJSON(w, http.StatusNotFound, errorResp(e.Message))
	case *services.UnauthorizedError:
		writeJSON(w, http.StatusUnauthorized, errorResp(e.Message))
	default:
		log.Printf("%s %s: %v", r.Method, r.URL.Path, err)
		writeJSON(w, http.StatusInternalServerError, errorResp("Internal server error"))
	}
}

// callerID resolves the acting user from the request. There is no real
// per-caller authentication; absent an explicit userId the fixed demo
// identity applies.
func callerID(r *http.Request) string {
	if id := r.URL.Query().Get("userId"); id != "" {
		return id
	}
	return models.DemoUserID
}
