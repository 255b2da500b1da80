package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type StudyPlan struct {
	ID               uuid.UUID       `json:"id"`
	UserID           string          `json:"userId"`
	Title            string          `json:"title"`
	Subject          string          `json:"subject"`
	Level            string          `json:"level"`
	Duration         int             `json:"duration"` // weeks
	HoursPerWeek     int             `json:"hoursPerWeek"`
	Objectives       *string         `json:"objectives"`
	LearningStyle    []string        `json:"learningStyle"`
	GeneratedContent json.RawMessage `json:"generatedContent"`
	Status           string          `json:"status"` // "active" | "completed"
	CreatedAt        time.Time       `json:"createdAt"`

	WeeklyPlans   []*WeeklyPlan   `json:"weeklyPlans,omitempty"`
	StudySessions []*StudySession `json:"studySessions,omitempty"`
}

type WeeklyPlan struct {
	ID          uuid.UUID `json:"id"`
	StudyPlanID uuid.UUID `json:"studyPlanId"`
	WeekNumber  int       `json:"weekNumber"`
	Title       string    `json:"title"`
	Objectives  string    `json:"objectives"`
	Topics      []string  `json:"topics"`
	Activities  []string  `json:"activities"`
	Resources   []string  `json:"resources"`
}

type StudySession struct {
	ID              uuid.UUID  `json:"id"`
	UserID          string     `json:"userId"`
	StudyPlanID     *uuid.UUID `json:"studyPlanId"`
	Title           string     `json:"title"`
	Type            string     `json:"type"`
	DurationMinutes int        `json:"duration"`
	Completed       bool       `json:"completed"`
	CreatedAt       time.Time  `json:"createdAt"`
}

type GeneratePlanRequest struct {
	Subject       string `json:"subject"`
	Level         string `json:"level"`
	Duration      int    `json:"duration"`
	HoursPerWeek  int    `json:"hoursPerWeek"`
	Objectives    string `json:"objectives"`
	LearningStyle string `json:"learningStyle"`
}

// PlanContent is the JSON contract the completion service is asked to
// honor for study plans.
type PlanContent struct {
	Objectives      string        `json:"objectives"`
	WeeklyPlan      []WeekContent `json:"weeklyPlan"`
	Recommendations string        `json:"recommendations"`
}

type WeekContent struct {
	Week       int      `json:"week"`
	Title      string   `json:"title"`
	Objectives string   `json:"objectives"`
	Topics     []string `json:"topics"`
	Activities []string `json:"activities"`
	Resources  []string `json:"resources"`
}

type CreateStudySessionRequest struct {
	StudyPlanID *uuid.UUID `json:"studyPlanId"`
	Title       string     `json:"title"`
	Type        string     `json:"type"`
	Duration    int        `json:"duration"`
	Completed   bool       `json:"completed"`
}
