package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siucheung0524/ThaiLingo/config/environment"
	"github.com/siucheung0524/ThaiLingo/models"
	"github.com/siucheung0524/ThaiLingo/utils"
)

type stubStrategy struct {
	name    string
	accepts bool
	items   []models.TranslationItem
	err     error
	calls   int
}

func (s *stubStrategy) Name() string { return s.name }

func (s *stubStrategy) Accepts(*models.TranslateRequest) bool { return s.accepts }

func (s *stubStrategy) Translate(context.Context, *models.TranslateRequest) ([]models.TranslationItem, error) {
	s.calls++
	return s.items, s.err
}

func textRequest(text string) *models.TranslateRequest {
	req := &models.TranslateRequest{Text: text}
	req.Normalize()
	return req
}

func TestTranslateFirstSuccessShortCircuits(t *testing.T) {
	first := &stubStrategy{name: "relay", accepts: true, items: []models.TranslationItem{{ID: "1", Thai: "ผัดไทย"}}}
	second := &stubStrategy{name: "gemini", accepts: true}
	svc := &TranslateService{Chain: []TranslationStrategy{first, second}}

	items, err := svc.Translate(context.Background(), textRequest("ผัดไทย"))
	require.NoError(t, err)
	assert.Equal(t, "ผัดไทย", items[0].Thai)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 0, second.calls)
}

func TestTranslateFallsThroughFailures(t *testing.T) {
	first := &stubStrategy{name: "relay", accepts: true, err: errors.New("connection refused")}
	second := &stubStrategy{name: "huggingface", accepts: true, err: errors.New("model gone")}
	third := &stubStrategy{name: "gemini", accepts: true, items: []models.TranslationItem{{ID: "1", Zh: "泰式炒麵"}}}
	svc := &TranslateService{Chain: []TranslationStrategy{first, second, third}}

	items, err := svc.Translate(context.Background(), textRequest("ผัดไทย"))
	require.NoError(t, err)
	assert.Equal(t, "泰式炒麵", items[0].Zh)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 1, second.calls)
	assert.Equal(t, 1, third.calls)
}

func TestTranslateSkipsNonAcceptingProviders(t *testing.T) {
	fastPath := &stubStrategy{name: "relay", accepts: false}
	generative := &stubStrategy{name: "gemini", accepts: true, items: []models.TranslationItem{{ID: "1"}}}
	svc := &TranslateService{Chain: []TranslationStrategy{fastPath, generative}}

	_, err := svc.Translate(context.Background(), textRequest("hello"))
	require.NoError(t, err)
	assert.Equal(t, 0, fastPath.calls)
	assert.Equal(t, 1, generative.calls)
}

func TestTranslateSurfacesLastError(t *testing.T) {
	first := &stubStrategy{name: "relay", accepts: true, err: errors.New("boom")}
	last := &stubStrategy{name: "gemini", accepts: true, err: errors.New("quota exhausted")}
	svc := &TranslateService{Chain: []TranslationStrategy{first, last}}

	_, err := svc.Translate(context.Background(), textRequest("ผัดไทย"))

	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, utils.KindProvider, appErr.Kind)
	assert.Contains(t, appErr.Message, "gemini")
	assert.Contains(t, appErr.Message, "quota exhausted")
}

func TestTranslateKeepsTypedTerminalError(t *testing.T) {
	parseErr := utils.NewResponseParseError(errors.New("unexpected end of JSON input"), "garbage")
	last := &stubStrategy{name: "gemini", accepts: true, err: parseErr}
	svc := &TranslateService{Chain: []TranslationStrategy{last}}

	_, err := svc.Translate(context.Background(), textRequest("ผัดไทย"))

	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, utils.KindResponseParse, appErr.Kind)
}

func TestTranslateNoApplicableProvider(t *testing.T) {
	skipped := &stubStrategy{name: "relay", accepts: false}
	svc := &TranslateService{Chain: []TranslationStrategy{skipped}}

	_, err := svc.Translate(context.Background(), textRequest("ผัดไทย"))

	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, utils.KindProvider, appErr.Kind)
	assert.Equal(t, 0, skipped.calls)
}

func TestNewTranslateServiceChainComposition(t *testing.T) {
	cfg := &environment.Config{
		GeminiAPIKey:      "g-key",
		HuggingFaceAPIKey: "hf-key",
		RelayURL:          "https://relay.example.com/translate",
		OpenAIAPIKey:      "oa-key",
		ProviderOrder:     []string{"relay", "huggingface", "gemini", "openai"},
	}
	svc := NewTranslateService(cfg)
	assert.Equal(t, []string{"relay", "huggingface", "gemini", "openai"}, svc.ProviderNames())
}

func TestNewTranslateServiceSkipsUnconfigured(t *testing.T) {
	cfg := &environment.Config{
		GeminiAPIKey:  "g-key",
		ProviderOrder: []string{"relay", "huggingface", "gemini", "openai"},
	}
	svc := NewTranslateService(cfg)
	assert.Equal(t, []string{"gemini"}, svc.ProviderNames())
}

func TestNewTranslateServiceHonorsOrderOverride(t *testing.T) {
	cfg := &environment.Config{
		GeminiAPIKey:  "g-key",
		OpenAIAPIKey:  "oa-key",
		RelayURL:      "https://relay.example.com/translate",
		ProviderOrder: []string{"openai", "relay", "gemini", "not-a-provider"},
	}
	svc := NewTranslateService(cfg)
	assert.Equal(t, []string{"openai", "relay", "gemini"}, svc.ProviderNames())
}

func TestFastPathItemDirections(t *testing.T) {
	fromThai := textRequest("ผัดกุ้ง")
	item := fastPathItem(fromThai, "炒蝦", "relay", testKeywords)
	assert.Equal(t, models.ItemID("1"), item.ID)
	assert.Equal(t, "ผัดกุ้ง", item.Thai)
	assert.Equal(t, "炒蝦", item.Zh)
	assert.Equal(t, "relay", item.Category)
	assert.True(t, item.ContainsShellfish)

	fromChinese := &models.TranslateRequest{Text: "你好", SourceLang: models.LangChinese}
	fromChinese.Normalize()
	item = fastPathItem(fromChinese, "สวัสดี", "huggingface", testKeywords)
	assert.Equal(t, "สวัสดี", item.Thai)
	assert.Equal(t, "你好", item.Zh)
	// Allergen detection only runs when translating from Thai.
	assert.False(t, item.ContainsShellfish)
}
