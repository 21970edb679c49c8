package validators

import "strings"

// SanitizeString trims surrounding whitespace and keeps at most maxRunes
// characters, so multi-byte labels are never cut mid-rune.
func SanitizeString(input string, maxRunes int) string {
	trimmed := strings.TrimSpace(input)
	if maxRunes <= 0 {
		return trimmed
	}
	runes := []rune(trimmed)
	if len(runes) <= maxRunes {
		return trimmed
	}
	return string(runes[:maxRunes])
}
