package message

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripAccents decomposes to NFD, drops combining marks, and recomposes.
// "não" → "nao", "três" → "tres", "açaí" → "acai".
var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lowercases text, strips accents, replaces punctuation with
// spaces and collapses repeated whitespace. Digits survive, so unit-fused
// tokens like "2l" come through intact.
func Normalize(text string) string {
	lower := strings.ToLower(strings.TrimSpace(text))
	stripped, _, err := transform.String(stripAccents, lower)
	if err != nil {
		stripped = lower
	}

	var b strings.Builder
	b.Grow(len(stripped))
	for _, r := range stripped {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// Tokenize splits a message into normalized lowercase tokens.
// Empty or whitespace-only input yields an empty slice.
func Tokenize(text string) []string {
	return strings.Fields(Normalize(text))
}
