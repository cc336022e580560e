package services

import "strings"

// ContainsShellfish reports whether the Thai text mentions any of the
// configured shellfish keywords. Matching is plain substring search: Thai
// writes compounds without spaces, so word boundaries don't apply.
func ContainsShellfish(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if keyword != "" && strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}
