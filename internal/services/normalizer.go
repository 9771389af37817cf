package services

import (
	"strings"
	"unicode"
)

// NormalizeText collapses runs of whitespace into single spaces, drops
// non-printable control characters, and trims the result. When maxLength
// is positive the text is truncated to that many runes; truncation is
// silent and lossy, never an error. Safe on empty input.
func NormalizeText(raw string, maxLength int) string {
	var b strings.Builder
	b.Grow(len(raw))

	inSpace := false
	for _, r := range raw {
		switch {
		case unicode.IsSpace(r):
			inSpace = true
		case unicode.IsControl(r) || r == unicode.ReplacementChar:
			// Strip NULs, bell characters and other artifacts PDF
			// extraction tends to leave behind.
		default:
			if inSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			inSpace = false
			b.WriteRune(r)
		}
	}

	text := b.String()
	if maxLength > 0 {
		runes := []rune(text)
		if len(runes) > maxLength {
			text = strings.TrimSpace(string(runes[:maxLength]))
		}
	}

	return text
}
