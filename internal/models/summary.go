package models

import (
	"time"

	"github.com/google/uuid"
)

type Summary struct {
	ID             uuid.UUID `json:"id"`
	UserID         string    `json:"userId"`
	Title          string    `json:"title"`
	OriginalText   string    `json:"originalText"`
	SummaryText    string    `json:"summaryText"`
	KeyPoints      []string  `json:"keyPoints"`
	StudyQuestions []string  `json:"studyQuestions"`
	Style          string    `json:"style"`
	Length         string    `json:"length"`
	SourceType     string    `json:"sourceType"`
	Reduction      float64   `json:"reduction"`
	CreatedAt      time.Time `json:"createdAt"`
}

type GenerateSummaryRequest struct {
	Text              string `json:"text"`
	Style             string `json:"style"`
	Length            string `json:"length"`
	IncludeKeyPoints  bool   `json:"includeKeyPoints"`
	GenerateQuestions bool   `json:"generateQuestions"`
	AddExamples       bool   `json:"addExamples"`
	TranslateTerms    bool   `json:"translateTerms"`
}

// SummaryContent is the JSON contract requested from the completion
// service. TranslatedTerms/Examples are returned to the caller but not
// persisted, matching the stored schema.
type SummaryContent struct {
	Summary         string           `json:"summary"`
	KeyPoints       []string         `json:"keyPoints"`
	StudyQuestions  []string         `json:"studyQuestions"`
	Examples        []string         `json:"examples"`
	TranslatedTerms []TranslatedTerm `json:"translatedTerms"`
}

type TranslatedTerm struct {
	Term        string `json:"term"`
	Translation string `json:"translation"`
}

// GeneratedSummary is the POST /summaries response payload.
type GeneratedSummary struct {
	ID              uuid.UUID        `json:"id"`
	Title           string           `json:"title"`
	SummaryText     string           `json:"summaryText"`
	KeyPoints       []string         `json:"keyPoints"`
	StudyQuestions  []string         `json:"studyQuestions"`
	Examples        []string         `json:"examples"`
	TranslatedTerms []TranslatedTerm `json:"translatedTerms"`
	Reduction       float64          `json:"reduction"`
	CreatedAt       time.Time        `json:"createdAt"`
}
