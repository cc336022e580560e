package services

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"

	"github.com/siucheung0524/ThaiLingo/config/environment"
	"github.com/siucheung0524/ThaiLingo/models"
	"github.com/siucheung0524/ThaiLingo/utils"
)

// RelayService calls a self-hosted translation relay: one POST endpoint
// taking {text, source, target} and answering {status, translated}. It only
// handles text between Thai and Chinese.
type RelayService struct {
	URL      string
	Keywords []string
	client   *resty.Client
}

// NewRelayService creates a new instance of RelayService
func NewRelayService(cfg *environment.Config) *RelayService {
	return &RelayService{
		URL:      cfg.RelayURL,
		Keywords: cfg.AllergenKeywords,
		client:   resty.New().SetTimeout(cfg.FastPathTimeout),
	}
}

func (s *RelayService) Name() string {
	return "relay"
}

func (s *RelayService) Accepts(req *models.TranslateRequest) bool {
	return !req.HasImage() && req.HasText() && isThaiChinesePair(req.SourceLang, req.TargetLang)
}

type relayRequest struct {
	Text   string `json:"text"`
	Source string `json:"source"`
	Target string `json:"target"`
}

type relayResponse struct {
	Status     string `json:"status"`
	Translated string `json:"translated"`
}

func (s *RelayService) Translate(ctx context.Context, req *models.TranslateRequest) ([]models.TranslationItem, error) {
	var out relayResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(relayRequest{Text: req.Text, Source: req.SourceLang, Target: req.TargetLang}).
		SetResult(&out).
		Post(s.URL)
	if err != nil {
		return nil, fmt.Errorf("relay request: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("relay returned %s: %s", resp.Status(), utils.Truncate(resp.String(), 200))
	}
	if out.Status != "success" || out.Translated == "" {
		return nil, fmt.Errorf("relay rejected the request: status=%q", out.Status)
	}

	return []models.TranslationItem{fastPathItem(req, out.Translated, s.Name(), s.Keywords)}, nil
}
