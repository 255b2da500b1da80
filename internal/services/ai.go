package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"estudia-backend/internal/models"
)

// CompletionClient is the hosted AI endpoint seen by the services:
// role-tagged messages in, one text blob out.
type CompletionClient interface {
	Complete(ctx context.Context, system string, messages []models.ChatMessage, temperature float32, maxTokens int32) (string, error)
}

type GeminiService struct {
	client    *genai.Client
	modelName string
}

func NewGeminiService(apiKey, modelName string) (*GeminiService, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiService{client: client, modelName: modelName}, nil
}

func (s *GeminiService) Close() {
	s.client.Close()
}

// Complete sends the history to Gemini and returns the generated text.
// The final message must be the user turn being answered; everything
// before it is replayed as chat history.
func (s *GeminiService) Complete(ctx context.Context, system string, messages []models.ChatMessage, temperature float32, maxTokens int32) (string, error) {
	if len(messages) == 0 {
		return "", fmt.Errorf("no messages to send")
	}

	model := s.client.GenerativeModel(s.modelName)
	model.SetTemperature(temperature)
	model.SetTopP(0.95)
	model.SetMaxOutputTokens(maxTokens)
	if system != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(system)},
		}
	}

	cs := model.StartChat()
	for _, msg := range messages[:len(messages)-1] {
		cs.History = append(cs.History, &genai.Content{
			Role:  genaiRole(msg.Role),
			Parts: []genai.Part{genai.Text(msg.Content)},
		})
	}

	resp, err := cs.SendMessage(ctx, genai.Text(messages[len(messages)-1].Content))
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}

	return extractText(resp), nil
}

func genaiRole(role string) string {
	if role == "assistant" {
		return "model"
	}
	return "user"
}

func extractText(resp *genai.GenerateContentResponse) string {
	var text strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				if t, ok := part.(genai.Text); ok {
					text.WriteString(string(t))
				}
			}
		}
	}
	return text.String()
}

// stripCodeFence removes the ```json fences models wrap JSON in even
// when told not to.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
