package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/siucheung0524/ThaiLingo/models"
	"github.com/siucheung0524/ThaiLingo/utils"
)

// decodeItems turns raw generative output into translation items. Output
// that is not JSON at all and output that parses but has the wrong shape are
// reported as distinct error kinds, both carrying a raw excerpt.
func decodeItems(raw, provider string) ([]models.TranslationItem, error) {
	cleaned := utils.SanitizeModelJSON(raw)

	var out models.TranslateResponse
	if err := json.Unmarshal([]byte(cleaned), &out); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, utils.NewResponseSchemaError(
				fmt.Sprintf("unexpected %s for field %q", typeErr.Value, typeErr.Field), raw)
		}
		return nil, utils.NewResponseParseError(err, raw)
	}
	if len(out.Items) == 0 {
		return nil, utils.NewResponseSchemaError("model response carries no items", raw)
	}

	for i := range out.Items {
		if out.Items[i].Category == "" {
			out.Items[i].Category = provider
		}
	}
	return out.Items, nil
}
