package services

import (
	"context"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"

	"github.com/siucheung0524/ThaiLingo/config/environment"
	"github.com/siucheung0524/ThaiLingo/models"
)

// OpenAIService is the last generative fallback, talking to an
// OpenAI-compatible chat completions endpoint.
type OpenAIService struct {
	Model  string
	client *openai.Client
}

// NewOpenAIService creates a new instance of OpenAIService
func NewOpenAIService(cfg *environment.Config) *OpenAIService {
	clientConfig := openai.DefaultConfig(cfg.OpenAIAPIKey)
	if cfg.OpenAIBaseURL != "" {
		clientConfig.BaseURL = cfg.OpenAIBaseURL
	}
	clientConfig.HTTPClient = &http.Client{Timeout: cfg.GenerativeTimeout}
	return &OpenAIService{
		Model:  cfg.OpenAIModel,
		client: openai.NewClientWithConfig(clientConfig),
	}
}

func (s *OpenAIService) Name() string {
	return "openai"
}

func (s *OpenAIService) Accepts(req *models.TranslateRequest) bool {
	return req.HasImage() || req.HasText()
}

func (s *OpenAIService) Translate(ctx context.Context, req *models.TranslateRequest) ([]models.TranslationItem, error) {
	userParts := []openai.ChatMessagePart{
		{Type: openai.ChatMessagePartTypeText, Text: buildTranslationPrompt(req)},
	}
	if req.HasImage() {
		userParts = append(userParts, openai.ChatMessagePart{
			Type:     openai.ChatMessagePartTypeImageURL,
			ImageURL: &openai.ChatMessageImageURL{URL: "data:image/jpeg;base64," + req.Image},
		})
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.Model,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, MultiContent: userParts},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("openai request: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai returned no choices")
	}

	return decodeItems(resp.Choices[0].Message.Content, s.Name())
}
