package stringsx

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const ellipsis = "…"

// Clip returns at most max runes of s.
// If max <= 0, an empty string is returned.
func Clip(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	i := 0
	for n := range s {
		if i == max {
			return s[:n]
		}
		i++
	}
	return s
}

// Preview clips s to max runes and marks the cut with an ellipsis.
func Preview(s string, max int) string {
	clipped := Clip(s, max)
	if clipped == s || clipped == "" {
		return clipped
	}
	return strings.TrimRightFunc(clipped, isSpace) + ellipsis
}

// SingleLine replaces control characters such as tabs and newlines with
// spaces so s fits in one column of tabular output.
func SingleLine(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, s)
}

// IsBlank reports whether s is empty after trimming spaces.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
