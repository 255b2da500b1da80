package models

import (
	"time"

	"github.com/google/uuid"
)

// ProgressRecord accumulates study effort per (user, subject, level).
// Uniqueness on that triple is enforced by the schema, not by
// lookup-then-branch in the application.
type ProgressRecord struct {
	ID                uuid.UUID `json:"id"`
	UserID            string    `json:"userId"`
	Subject           string    `json:"subject"`
	Level             string    `json:"level"`
	TotalHours        float64   `json:"totalHours"`
	CompletedSessions int       `json:"completedSessions"`
	MasteryLevel      float64   `json:"masteryLevel"`
	LastStudied       time.Time `json:"lastStudied"`
}

// UpdateProgressRequest accumulates hours/sessions onto a record.
// Mastery is a pointer: absent means "keep the existing value".
type UpdateProgressRequest struct {
	Subject  string   `json:"subject"`
	Level    string   `json:"level"`
	Hours    float64  `json:"hours"`
	Sessions int      `json:"sessions"`
	Mastery  *float64 `json:"mastery"`
}

type OverallProgress struct {
	TotalSessions         int     `json:"totalSessions"`
	TotalStudyPlans       int     `json:"totalStudyPlans"`
	CompletedPlans        int     `json:"completedPlans"`
	TotalSummaries        int     `json:"totalSummaries"`
	TotalTutoringSessions int     `json:"totalTutoringSessions"`
	TotalHours            float64 `json:"totalHours"`
	CompletionRate        int     `json:"completionRate"`
}

// ActivityItem is one row of the merged recent-activity feed.
type ActivityItem struct {
	ID        uuid.UUID `json:"id"`
	Type      string    `json:"type"` // "study" | "summary" | "tutoring"
	Title     string    `json:"title"`
	Completed *bool     `json:"completed,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type ProgressReport struct {
	Records        []*ProgressRecord `json:"records"`
	Overall        OverallProgress   `json:"overall"`
	RecentActivity []ActivityItem    `json:"recentActivity"`
}
