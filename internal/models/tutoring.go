package models

import (
	"time"

	"github.com/google/uuid"
)

type TutoringSession struct {
	ID              uuid.UUID `json:"id"`
	UserID          string    `json:"userId"`
	Subject         string    `json:"subject"`
	Level           string    `json:"level"`
	Mode            string    `json:"mode"`
	DurationMinutes int       `json:"duration"` // one minute credited per turn
	Status          string    `json:"status"`
	TopicsCovered   []string  `json:"topicsCovered"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`

	// Messages holds the full ascending history on the detail view and
	// at most the single latest message on the list view.
	Messages []*TutoringMessage `json:"messages,omitempty"`
}

type TutoringMessage struct {
	ID        uuid.UUID `json:"id"`
	SessionID uuid.UUID `json:"sessionId"`
	Role      string    `json:"role"` // "user" | "assistant"
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// ChatMessage is a role-tagged message as sent to the completion
// service.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatTurnRequest struct {
	Message   string `json:"message"`
	Subject   string `json:"subject"`
	Level     string `json:"level"`
	Mode      string `json:"mode"`
	SessionID string `json:"sessionId"`
}

type ChatTurnResult struct {
	Response  string    `json:"response"`
	SessionID uuid.UUID `json:"sessionId"`
	// MessageCount is the capped history window plus the new pair, an
	// approximation once a session exceeds the window.
	MessageCount int `json:"messageCount"`
}
