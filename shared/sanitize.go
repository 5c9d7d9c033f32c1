package shared

import (
	"strings"
)

// Sanitize normalizes a single-line untrusted text field: control characters
// (C0 and C1 ranges) are removed, surrounding whitespace is trimmed and the
// result is truncated to maxLen runes. Safe to call twice, the output is a
// fixed point.
func Sanitize(raw string, maxLen int) string {
	cleaned := strings.Map(func(r rune) rune {
		if r < 0x20 || (r >= 0x7F && r <= 0x9F) {
			return -1
		}
		return r
	}, raw)

	cleaned = strings.TrimSpace(cleaned)

	if maxLen >= 0 {
		runes := []rune(cleaned)
		if len(runes) > maxLen {
			cleaned = strings.TrimSpace(string(runes[:maxLen]))
		}
	}

	return cleaned
}
