package shared

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		maxLen int
		want   string
	}{
		{"plain", "Olena", 100, "Olena"},
		{"trims whitespace", "  Olena  ", 100, "Olena"},
		{"strips c0 controls", "Ol\x00en\x1fa", 100, "Olena"},
		{"strips tab and newline", "Ole\tna\n", 100, "Olena"},
		{"strips c1 controls", "Ole\u0085na\u009C", 100, "Olena"},
		{"truncates runes", "довгийтекст", 6, "довгий"},
		{"truncation then trim", "abc   def", 4, "abc"},
		{"empty", "", 100, ""},
		{"only controls", "\x01\x02\x03", 100, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.raw, tt.maxLen))
		})
	}
}

func TestSanitizeIdempotent(t *testing.T) {
	inputs := []string{
		"  Іван\x00  ",
		"звичайний текст",
		strings.Repeat("ab\x7f", 200),
		" край ",
	}

	for _, in := range inputs {
		once := Sanitize(in, 50)
		assert.Equal(t, once, Sanitize(once, 50))
	}
}

func TestSanitizeNeverExceedsMaxLen(t *testing.T) {
	for _, in := range []string{strings.Repeat("я", 500), strings.Repeat("x \x01", 300)} {
		out := Sanitize(in, 100)
		assert.LessOrEqual(t, len([]rune(out)), 100)
	}
}

func TestSanitizeOutputHasNoControls(t *testing.T) {
	out := Sanitize("a\x00b\x1fcde", 100)
	for _, r := range out {
		assert.False(t, r < 0x20 || (r >= 0x7F && r <= 0x9F), "control rune %q in output", r)
	}
	assert.Equal(t, "abcde", out)
}
