package utils

import (
	"regexp"
	"strings"
)

// codeFence matches the markdown fences models like to wrap JSON in, with or
// without a language tag.
var codeFence = regexp.MustCompile("(?s)```(?:json)?(.*?)```")

// SanitizeModelJSON extracts a JSON object from raw model output. Fenced
// code-block markers are stripped first, then everything outside the
// outermost braces is discarded. If no braces are present the trimmed text
// is returned as-is and left to the JSON decoder to reject.
func SanitizeModelJSON(raw string) string {
	cleaned := codeFence.ReplaceAllString(raw, "$1")
	cleaned = strings.TrimSpace(cleaned)

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start >= 0 && end > start {
		return cleaned[start : end+1]
	}
	return cleaned
}
