package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"estudia-backend/internal/models"
	"estudia-backend/internal/services"
)

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body models.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode error body: %v", err)
	}
	return body.Error
}

func TestHandleServiceError(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedBody   string
	}{
		{"validation", &services.ValidationError{Message: "Text is required"}, http.StatusBadRequest, "Text is required"},
		{"not found", &services.NotFoundError{Message: "Session not found"}, http.StatusNotFound, "Session not found"},
		{"unauthorized", &services.UnauthorizedError{Message: "Invalid credentials"}, http.StatusUnauthorized, "Invalid credentials"},
		{"unknown", errors.New("connection refused"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/test", nil)

			handleServiceError(rec, req, tc.err)

			if rec.Code != tc.expectedStatus {
				t.Errorf("Expected status %d, got %d", tc.expectedStatus, rec.Code)
			}
			if got := decodeError(t, rec); got != tc.expectedBody {
				t.Errorf("Expected error %q, got %q", tc.expectedBody, got)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Expected JSON content type, got %q", ct)
			}
		})
	}
}

func TestCallerID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/progress", nil)
	if got := callerID(req); got != models.DemoUserID {
		t.Errorf("Expected demo user fallback, got %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/progress?userId=alice", nil)
	if got := callerID(req); got != "alice" {
		t.Errorf("Expected explicit userId, got %q", got)
	}
}

func TestTutoringChatInvalidBody(t *testing.T) {
	handler := NewTutoringHandler(nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/tutoring", strings.NewReader("{not json"))

	handler.Chat(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", rec.Code)
	}
	if got := decodeError(t, rec); got != "Invalid request body" {
		t.Errorf("Unexpected error %q", got)
	}
}

func TestTutoringDeleteValidation(t *testing.T) {
	handler := NewTutoringHandler(nil)

	t.Run("missing sessionId", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/tutoring", nil)

		handler.Delete(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", rec.Code)
		}
		if got := decodeError(t, rec); got != "Session ID is required" {
			t.Errorf("Unexpected error %q", got)
		}
	})

	t.Run("malformed sessionId", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/tutoring?sessionId=not-a-uuid", nil)

		handler.Delete(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d", rec.Code)
		}
		if got := decodeError(t, rec); got != "Session not found" {
			t.Errorf("Unexpected error %q", got)
		}
	})
}

func TestSummaryDeleteValidation(t *testing.T) {
	handler := NewSummaryHandler(nil)

	t.Run("missing summaryId", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/summaries", nil)

		handler.Delete(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", rec.Code)
		}
		if got := decodeError(t, rec); got != "Summary ID is required" {
			t.Errorf("Unexpected error %q", got)
		}
	})

	t.Run("malformed summaryId", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/summaries?summaryId=xyz", nil)

		handler.Delete(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d", rec.Code)
		}
	})
}

func TestProgressUpdateValidation(t *testing.T) {
	handler := NewProgressHandler(nil, nil)

	t.Run("invalid body", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/progress", strings.NewReader("{"))

		handler.Update(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", rec.Code)
		}
	})

	t.Run("missing subject and level", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/progress", strings.NewReader(`{"studyTime": 30}`))

		handler.Update(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", rec.Code)
		}
		if got := decodeError(t, rec); got != "Subject and level are required" {
			t.Errorf("Unexpected error %q", got)
		}
	})
}
