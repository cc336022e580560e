package environment

import (
	"os"
	"strings"
	"time"
)

// Defaults for provider endpoints and models.
const (
	DefaultGeminiBaseURL       = "https://generativelanguage.googleapis.com"
	DefaultGeminiModel         = "gemini-1.5-flash"
	DefaultGeminiFallbackModel = "gemini-1.5-flash-8b"

	DefaultHuggingFaceBaseURL = "https://api-inference.huggingface.co"
	DefaultModelThaiChinese   = "Helsinki-NLP/opus-mt-th-zh"
	DefaultModelChineseThai   = "Helsinki-NLP/opus-mt-zh-th"

	DefaultOpenAIModel = "gpt-4o-mini"

	// DefaultProviderOrder runs the cheap text paths before the
	// generative models.
	DefaultProviderOrder = "relay,huggingface,gemini,openai"

	defaultFastPathTimeout   = 15 * time.Second
	defaultGenerativeTimeout = 2 * time.Minute
)

// defaultAllergenKeywords is the built-in Thai shellfish vocabulary: prawn,
// crab, shell (clams, mussels, snails), mantis shrimp, squid.
var defaultAllergenKeywords = []string{"กุ้ง", "ปู", "หอย", "กั้ง", "ปลาหมึก"}

// Config is the process configuration, read once at startup and handed to
// the constructors. Request handling never touches the environment directly.
type Config struct {
	Port string

	GeminiAPIKey        string
	GeminiBaseURL       string
	GeminiModel         string
	GeminiFallbackModel string

	HuggingFaceAPIKey  string
	HuggingFaceBaseURL string
	ModelThaiChinese   string
	ModelChineseThai   string

	RelayURL string

	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string

	ProviderOrder    []string
	AllergenKeywords []string

	FastPathTimeout   time.Duration
	GenerativeTimeout time.Duration
}

// Load builds a Config from the process environment.
func Load() *Config {
	return &Config{
		Port: envOr("PORT", "8080"),

		GeminiAPIKey:        os.Getenv("GEMINI_API_KEY"),
		GeminiBaseURL:       envOr("GEMINI_BASE_URL", DefaultGeminiBaseURL),
		GeminiModel:         envOr("GEMINI_MODEL", DefaultGeminiModel),
		GeminiFallbackModel: envOr("GEMINI_FALLBACK_MODEL", DefaultGeminiFallbackModel),

		HuggingFaceAPIKey:  os.Getenv("HUGGINGFACE_API_KEY"),
		HuggingFaceBaseURL: envOr("HUGGINGFACE_BASE_URL", DefaultHuggingFaceBaseURL),
		ModelThaiChinese:   envOr("HUGGINGFACE_MODEL_TH_ZH", DefaultModelThaiChinese),
		ModelChineseThai:   envOr("HUGGINGFACE_MODEL_ZH_TH", DefaultModelChineseThai),

		RelayURL: os.Getenv("TRANSLATE_RELAY_URL"),

		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL: os.Getenv("OPENAI_BASE_URL"),
		OpenAIModel:   envOr("OPENAI_MODEL", DefaultOpenAIModel),

		ProviderOrder:    splitList(envOr("TRANSLATE_PROVIDER_ORDER", DefaultProviderOrder)),
		AllergenKeywords: splitList(envOr("ALLERGEN_KEYWORDS", strings.Join(defaultAllergenKeywords, ","))),

		FastPathTimeout:   defaultFastPathTimeout,
		GenerativeTimeout: defaultGenerativeTimeout,
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitList parses a comma-separated env value, dropping empty entries.
func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
