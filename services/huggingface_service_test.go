package services

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siucheung0524/ThaiLingo/config/environment"
	"github.com/siucheung0524/ThaiLingo/models"
)

func huggingFaceConfig(url string) *environment.Config {
	return &environment.Config{
		HuggingFaceAPIKey:  "hf-test-key",
		HuggingFaceBaseURL: url,
		ModelThaiChinese:   "Helsinki-NLP/opus-mt-th-zh",
		ModelChineseThai:   "Helsinki-NLP/opus-mt-zh-th",
		AllergenKeywords:   testKeywords,
		FastPathTimeout:    5 * time.Second,
	}
}

func TestHuggingFaceTranslate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/Helsinki-NLP/opus-mt-th-zh", r.URL.Path)
		assert.Equal(t, "Bearer hf-test-key", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[{"translation_text":"泰式炒麵"}]`)
	}))
	defer server.Close()

	svc := NewHuggingFaceService(huggingFaceConfig(server.URL))
	items, err := svc.Translate(context.Background(), textRequest("ผัดไทย"))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "泰式炒麵", items[0].Zh)
	assert.Equal(t, "huggingface", items[0].Category)
}

func TestHuggingFaceWaitsForModelLoad(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			fmt.Fprint(w, `{"error":"Model Helsinki-NLP/opus-mt-th-zh is currently loading","estimated_time":0.01}`)
			return
		}
		fmt.Fprint(w, `[{"translation_text":"泰式炒麵"}]`)
	}))
	defer server.Close()

	svc := NewHuggingFaceService(huggingFaceConfig(server.URL))
	items, err := svc.Translate(context.Background(), textRequest("ผัดไทย"))
	require.NoError(t, err)
	assert.Equal(t, "泰式炒麵", items[0].Zh)
	assert.Equal(t, int32(2), calls.Load())
}

func TestHuggingFaceGivesUpAfterBudget(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		fmt.Fprint(w, `{"error":"Model Helsinki-NLP/opus-mt-th-zh is currently loading","estimated_time":0.01}`)
	}))
	defer server.Close()

	svc := NewHuggingFaceService(huggingFaceConfig(server.URL))
	_, err := svc.Translate(context.Background(), textRequest("ผัดไทย"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "still loading")
	assert.Equal(t, int32(hfMaxAttempts), calls.Load())
}

func TestHuggingFaceDoesNotRetryHardErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "invalid token", http.StatusUnauthorized)
	}))
	defer server.Close()

	svc := NewHuggingFaceService(huggingFaceConfig(server.URL))
	_, err := svc.Translate(context.Background(), textRequest("ผัดไทย"))
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestHuggingFaceAccepts(t *testing.T) {
	svc := NewHuggingFaceService(huggingFaceConfig("https://api.example.com"))

	assert.True(t, svc.Accepts(textRequest("ผัดไทย")))

	chinese := &models.TranslateRequest{Text: "你好", SourceLang: models.LangChinese}
	chinese.Normalize()
	assert.True(t, svc.Accepts(chinese))

	image := &models.TranslateRequest{Image: "aGVsbG8="}
	image.Normalize()
	assert.False(t, svc.Accepts(image))

	english := &models.TranslateRequest{Text: "ผัดไทย", TargetLang: "en"}
	english.Normalize()
	assert.False(t, svc.Accepts(english), "no model for this direction")
}

func TestParseModelLoading(t *testing.T) {
	wait, ok := parseModelLoading([]byte(`{"error":"Model X is currently loading","estimated_time":2.5}`))
	assert.True(t, ok)
	assert.Equal(t, 2500*time.Millisecond, wait)

	wait, ok = parseModelLoading([]byte(`{"error":"Model X is currently loading"}`))
	assert.True(t, ok)
	assert.Equal(t, hfDefaultModelWait, wait)

	_, ok = parseModelLoading([]byte(`{"error":"internal error"}`))
	assert.False(t, ok)

	_, ok = parseModelLoading([]byte(`service unavailable`))
	assert.False(t, ok)
}
