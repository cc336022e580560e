package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/siucheung0524/ThaiLingo/config/environment"
	"github.com/siucheung0524/ThaiLingo/models"
	"github.com/siucheung0524/ThaiLingo/utils"
)

const (
	// hfMaxAttempts bounds the retries while a model is cold-starting.
	hfMaxAttempts = 3
	// hfDefaultModelWait is used when the 503 body gives no estimate.
	hfDefaultModelWait = 20 * time.Second
)

// HuggingFaceService calls the hosted inference API for the Helsinki-NLP
// opus-mt translation models, one model per direction.
type HuggingFaceService struct {
	APIKey           string
	BaseURL          string
	ModelThaiChinese string
	ModelChineseThai string
	Keywords         []string
	client           *resty.Client
}

// NewHuggingFaceService creates a new instance of HuggingFaceService
func NewHuggingFaceService(cfg *environment.Config) *HuggingFaceService {
	return &HuggingFaceService{
		APIKey:           cfg.HuggingFaceAPIKey,
		BaseURL:          cfg.HuggingFaceBaseURL,
		ModelThaiChinese: cfg.ModelThaiChinese,
		ModelChineseThai: cfg.ModelChineseThai,
		Keywords:         cfg.AllergenKeywords,
		client:           resty.New().SetTimeout(cfg.FastPathTimeout),
	}
}

func (s *HuggingFaceService) Name() string {
	return "huggingface"
}

func (s *HuggingFaceService) modelFor(source, target string) string {
	switch {
	case source == models.LangThai && target == models.LangChinese:
		return s.ModelThaiChinese
	case source == models.LangChinese && target == models.LangThai:
		return s.ModelChineseThai
	}
	return ""
}

func (s *HuggingFaceService) Accepts(req *models.TranslateRequest) bool {
	return !req.HasImage() && req.HasText() && s.modelFor(req.SourceLang, req.TargetLang) != ""
}

// modelLoadingError is the 503 "model is loading" signal, carrying the wait
// the API suggests before the next attempt.
type modelLoadingError struct {
	model string
	wait  time.Duration
}

func (e *modelLoadingError) Error() string {
	return fmt.Sprintf("model %s is still loading, retry in %s", e.model, e.wait)
}

func (s *HuggingFaceService) Translate(ctx context.Context, req *models.TranslateRequest) ([]models.TranslationItem, error) {
	model := s.modelFor(req.SourceLang, req.TargetLang)
	url := strings.TrimRight(s.BaseURL, "/") + "/models/" + model

	var translated string
	err := utils.Retry(ctx, hfMaxAttempts, waitForModelLoad, func() error {
		resp, err := s.client.R().
			SetContext(ctx).
			SetHeader("Authorization", "Bearer "+s.APIKey).
			SetHeader("Content-Type", "application/json").
			SetBody(map[string]string{"inputs": req.Text}).
			Post(url)
		if err != nil {
			return fmt.Errorf("inference request: %w", err)
		}
		if resp.StatusCode() == http.StatusServiceUnavailable {
			if wait, ok := parseModelLoading(resp.Body()); ok {
				return &modelLoadingError{model: model, wait: wait}
			}
		}
		if resp.IsError() {
			return fmt.Errorf("inference returned %s: %s", resp.Status(), utils.Truncate(resp.String(), 200))
		}

		var out []struct {
			TranslationText string `json:"translation_text"`
		}
		if err := json.Unmarshal(resp.Body(), &out); err != nil {
			return fmt.Errorf("decoding inference response: %w", err)
		}
		if len(out) == 0 || out[0].TranslationText == "" {
			return fmt.Errorf("inference returned no translation")
		}
		translated = out[0].TranslationText
		return nil
	})
	if err != nil {
		return nil, err
	}

	return []models.TranslationItem{fastPathItem(req, translated, s.Name(), s.Keywords)}, nil
}

// waitForModelLoad retries only on the model-loading signal, sleeping as
// long as the provider suggests. Everything else fails the provider.
func waitForModelLoad(_ int, err error) (time.Duration, bool) {
	var loading *modelLoadingError
	if errors.As(err, &loading) {
		return loading.wait, true
	}
	return 0, false
}

// parseModelLoading extracts the suggested wait from a 503 body of the form
// {"error": "Model X is currently loading", "estimated_time": 20.0}.
func parseModelLoading(body []byte) (time.Duration, bool) {
	var status struct {
		Error         string  `json:"error"`
		EstimatedTime float64 `json:"estimated_time"`
	}
	if err := json.Unmarshal(body, &status); err != nil {
		return 0, false
	}
	if !strings.Contains(strings.ToLower(status.Error), "loading") {
		return 0, false
	}
	if status.EstimatedTime <= 0 {
		return hfDefaultModelWait, true
	}
	return time.Duration(status.EstimatedTime * float64(time.Second)), true
}
