package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/siucheung0524/ThaiLingo/config/environment"
	"github.com/siucheung0524/ThaiLingo/models"
	"github.com/siucheung0524/ThaiLingo/utils"
)

// GeminiService is the primary generative provider. It talks to the Gemini
// REST API directly and handles both photos and free text.
type GeminiService struct {
	APIKey        string
	BaseURL       string
	Model         string
	FallbackModel string
	client        *http.Client
}

// NewGeminiService creates a new instance of GeminiService
func NewGeminiService(cfg *environment.Config) *GeminiService {
	return &GeminiService{
		APIKey:        cfg.GeminiAPIKey,
		BaseURL:       cfg.GeminiBaseURL,
		Model:         cfg.GeminiModel,
		FallbackModel: cfg.GeminiFallbackModel,
		client:        &http.Client{Timeout: cfg.GenerativeTimeout},
	}
}

func (s *GeminiService) Name() string {
	return "gemini"
}

func (s *GeminiService) Accepts(req *models.TranslateRequest) bool {
	return req.HasImage() || req.HasText()
}

// Wire types for the v1beta generateContent endpoint.
type geminiRequest struct {
	SystemInstruction *geminiContent   `json:"systemInstruction,omitempty"`
	Contents          []geminiContent  `json:"contents"`
	GenerationConfig  *geminiGenConfig `json:"generationConfig,omitempty"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inlineData,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type geminiGenConfig struct {
	Temperature      float64 `json:"temperature"`
	ResponseMimeType string  `json:"responseMimeType,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Translate calls the primary model and, if it answers with a quota or
// availability status, retries exactly once on the fallback model.
func (s *GeminiService) Translate(ctx context.Context, req *models.TranslateRequest) ([]models.TranslationItem, error) {
	raw, err := s.generate(ctx, s.Model, req)
	if err != nil && isOverloaded(err) && s.FallbackModel != "" && s.FallbackModel != s.Model {
		log.Printf("gemini model %s unavailable, retrying with %s: %v", s.Model, s.FallbackModel, err)
		raw, err = s.generate(ctx, s.FallbackModel, req)
	}
	if err != nil {
		return nil, err
	}
	return decodeItems(raw, s.Name())
}

func (s *GeminiService) generate(ctx context.Context, model string, req *models.TranslateRequest) (string, error) {
	parts := []geminiPart{{Text: buildTranslationPrompt(req)}}
	if req.HasImage() {
		parts = append(parts, geminiPart{InlineData: &geminiInlineData{MimeType: "image/jpeg", Data: req.Image}})
	}
	payload := geminiRequest{
		SystemInstruction: &geminiContent{Parts: []geminiPart{{Text: systemPrompt}}},
		Contents:          []geminiContent{{Role: "user", Parts: parts}},
		GenerationConfig:  &geminiGenConfig{Temperature: 0.2, ResponseMimeType: "application/json"},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encoding gemini request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent", strings.TrimRight(s.BaseURL, "/"), model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("building gemini request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", s.APIKey)

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("gemini request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading gemini response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", &statusError{status: resp.StatusCode, body: utils.Truncate(string(respBody), 300)}
	}

	var parsed geminiResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("decoding gemini envelope: %w", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned no candidates: %s", utils.Truncate(string(respBody), 300))
	}

	text := parsed.Candidates[0].Content.Parts[0].Text
	log.Printf("gemini raw response (%s): %s", model, utils.Truncate(text, 300))
	return text, nil
}

// statusError marks provider failures with the HTTP status that caused them.
type statusError struct {
	status int
	body   string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("gemini returned status %d: %s", e.status, e.body)
}

// isOverloaded reports whether the failure is a quota or availability status
// worth retrying on the fallback model.
func isOverloaded(err error) bool {
	var se *statusError
	if !errors.As(err, &se) {
		return false
	}
	return se.status == http.StatusTooManyRequests || se.status == http.StatusServiceUnavailable
}
