package services

import (
	"testing"

	"github.com/google/generative-ai-go/genai"
)

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"bare JSON", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"plain fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"surrounding whitespace", "  \n{\"a\":1}\n  ", `{"a":1}`},
		{"empty", "", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := stripCodeFence(tc.input); got != tc.expected {
				t.Errorf("stripCodeFence(%q) = %q, want %q", tc.input, got, tc.expected)
			}
		})
	}
}

func TestGenaiRole(t *testing.T) {
	if got := genaiRole("assistant"); got != "model" {
		t.Errorf("Expected assistant to map to model, got %q", got)
	}
	if got := genaiRole("user"); got != "user" {
		t.Errorf("Expected user to stay user, got %q", got)
	}
}

func TestExtractText(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []genai.Part{genai.Text("Hola "), genai.Text("mundo")}}},
			{Content: nil},
		},
	}
	if got := extractText(resp); got != "Hola mundo" {
		t.Errorf("extractText = %q", got)
	}
	if got := extractText(&genai.GenerateContentResponse{}); got != "" {
		t.Errorf("Expected empty text from empty response, got %q", got)
	}
}
