package services

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/siucheung0524/ThaiLingo/config/environment"
	"github.com/siucheung0524/ThaiLingo/models"
	"github.com/siucheung0524/ThaiLingo/utils"
)

// TranslationStrategy is one provider in the fallback chain.
type TranslationStrategy interface {
	// Name identifies the provider in logs and item categories.
	Name() string
	// Accepts reports whether this provider can serve the request at all.
	Accepts(req *models.TranslateRequest) bool
	// Translate performs the call. Implementations return plain errors;
	// only the terminal failure is turned into a client-facing one.
	Translate(ctx context.Context, req *models.TranslateRequest) ([]models.TranslationItem, error)
}

// TranslateService walks the configured provider chain. The first success
// wins; failures along the way are logged and absorbed.
type TranslateService struct {
	Chain []TranslationStrategy
}

// NewTranslateService builds the chain from the configured provider order.
// Providers whose credentials or endpoints are missing are left out, except
// gemini, which is the primary and always present.
func NewTranslateService(cfg *environment.Config) *TranslateService {
	s := &TranslateService{}
	for _, name := range cfg.ProviderOrder {
		switch name {
		case "relay":
			if cfg.RelayURL != "" {
				s.Chain = append(s.Chain, NewRelayService(cfg))
			}
		case "huggingface":
			if cfg.HuggingFaceAPIKey != "" {
				s.Chain = append(s.Chain, NewHuggingFaceService(cfg))
			}
		case "gemini":
			s.Chain = append(s.Chain, NewGeminiService(cfg))
		case "openai":
			if cfg.OpenAIAPIKey != "" {
				s.Chain = append(s.Chain, NewOpenAIService(cfg))
			}
		default:
			log.Printf("unknown provider %q in TRANSLATE_PROVIDER_ORDER, skipping", name)
		}
	}
	return s
}

// ProviderNames lists the chain in order, for the health endpoint.
func (s *TranslateService) ProviderNames() []string {
	names := make([]string, 0, len(s.Chain))
	for _, strategy := range s.Chain {
		names = append(names, strategy.Name())
	}
	return names
}

// Translate runs the request through every applicable provider in order and
// returns the first success. Only the last applicable provider's error
// reaches the client.
func (s *TranslateService) Translate(ctx context.Context, req *models.TranslateRequest) ([]models.TranslationItem, error) {
	var lastName string
	var lastErr error

	for _, strategy := range s.Chain {
		if !strategy.Accepts(req) {
			continue
		}
		items, err := strategy.Translate(ctx, req)
		if err == nil {
			log.Printf("translated via %s (%d items)", strategy.Name(), len(items))
			return items, nil
		}
		log.Printf("provider %s failed: %v", strategy.Name(), err)
		lastName, lastErr = strategy.Name(), err
	}

	if lastErr == nil {
		return nil, utils.NewAppError(http.StatusInternalServerError, utils.KindProvider,
			"no translation provider accepts this request")
	}
	return nil, providerFailure(lastName, lastErr)
}

// providerFailure surfaces the terminal provider error, keeping typed
// parse and schema failures intact.
func providerFailure(provider string, err error) error {
	var appErr *utils.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return utils.NewProviderError(provider, err)
}

// fastPathItem builds the single-item result the text-only providers
// return. The allergen scan runs on the Thai side of the pair, so only
// requests translating from Thai get it.
func fastPathItem(req *models.TranslateRequest, translated, provider string, keywords []string) models.TranslationItem {
	item := models.TranslationItem{ID: "1", Category: provider}
	if req.SourceLang == models.LangThai {
		item.Thai = req.Text
		item.Zh = translated
		item.ContainsShellfish = ContainsShellfish(req.Text, keywords)
	} else {
		item.Thai = translated
		item.Zh = req.Text
	}
	return item
}

// isThaiChinesePair reports whether the direction is one the fixed-pair
// text providers understand.
func isThaiChinesePair(source, target string) bool {
	return (source == models.LangThai && target == models.LangChinese) ||
		(source == models.LangChinese && target == models.LangThai)
}
