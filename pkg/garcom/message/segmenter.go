package message

import (
	"strings"

	"github.com/zapmesa/garcom/pkg/garcom/numeral"
)

// Hard segment delimiters: list punctuation in the raw message.
var segmentDelims = map[rune]struct{}{
	',': {},
	';': {},
	'.': {},
	'+': {},
}

// SplitSegments splits a message into candidate order lines.
//
// The message is first cut at list punctuation (",", ";", ".", "+"), then
// each piece is cut again at the conjunctions "e"/"mais", but only when the
// conjunction is immediately followed by a numeral. "2 pequenas e 1 grande"
// becomes two segments; "arroz e feijao" stays one, since the conjunction
// there joins two halves of a single dish name.
//
// Segments come back normalized; re-normalizing them is a no-op.
func SplitSegments(text string) []string {
	var segments []string
	for _, part := range splitRaw(text) {
		tokens := Tokenize(part)
		if len(tokens) == 0 {
			continue
		}
		segments = append(segments, splitConjunctions(tokens)...)
	}
	return segments
}

// splitRaw cuts the raw text at hard delimiters before normalization
// removes them.
func splitRaw(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		_, ok := segmentDelims[r]
		return ok
	})
}

func splitConjunctions(tokens []string) []string {
	var segments []string
	start := 0
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		if tok != "e" && tok != "mais" {
			continue
		}
		if i+1 >= len(tokens) {
			continue
		}
		if _, ok := numeral.Value(tokens[i+1]); !ok {
			continue
		}
		if i > start {
			segments = append(segments, strings.Join(tokens[start:i], " "))
		}
		start = i + 1
	}
	if start < len(tokens) {
		segments = append(segments, strings.Join(tokens[start:], " "))
	}
	return segments
}
