// Package modifier extracts order-line qualifiers from a segment's token
// stream: additions ("com bacon"), removals ("sem cebola"), and preparation
// styles ("mal passado"). Tokens claimed here are marked consumed so the
// orchestrator never re-reads them as product candidates.
package modifier

import (
	"strings"

	"github.com/zapmesa/garcom/pkg/garcom/catalog"
	"github.com/zapmesa/garcom/pkg/garcom/lexicon"
	"github.com/zapmesa/garcom/pkg/garcom/numeral"
)

// maxAdditionWords caps the argument window after an addition trigger.
const maxAdditionWords = 3

var removalTriggers = map[string]struct{}{
	"sem":     {},
	"tira":    {},
	"tirar":   {},
	"remover": {},
	"menos":   {},
}

var additionTriggers = map[string]struct{}{
	"com":       {},
	"mais":      {},
	"adicional": {},
	"extra":     {},
	"bastante":  {},
}

// Result holds everything extracted from one segment.
type Result struct {
	Additions   []string
	Removals    []string
	Preparation string
	FoundAddons []catalog.Addon
}

// Notes renders the human-readable notes string attached to every product
// in the segment, e.g. "com catupiry, sem cebola, mal passado". Priced
// addons are excluded; they become their own cart lines.
func (r Result) Notes() string {
	var parts []string
	for _, a := range r.Additions {
		parts = append(parts, "com "+a)
	}
	for _, rm := range r.Removals {
		parts = append(parts, "sem "+rm)
	}
	if r.Preparation != "" {
		parts = append(parts, r.Preparation)
	}
	return strings.Join(parts, ", ")
}

// Extractor scans segments for modifiers. The ignored set vetoes filler
// arguments ("com licença" must not add "licença" to the order).
type Extractor struct {
	ignored lexicon.IgnoredSet
}

// New builds an Extractor.
func New(ignored lexicon.IgnoredSet) *Extractor {
	return &Extractor{ignored: ignored}
}

// Extract scans left to right, claiming trigger and argument positions in
// the shared consumed set. When an addon catalog is supplied, "com X"
// arguments are resolved against it longest-window-first; a hit records a
// priced addon instead of a free-text note.
func (e *Extractor) Extract(tokens []string, consumed map[int]bool, addons *catalog.AddonView) Result {
	var res Result
	for i := 0; i < len(tokens); i++ {
		if consumed[i] {
			continue
		}
		tok := tokens[i]

		if prep, width := preparationAt(tokens, i); width > 0 {
			// Last one wins when a segment repeats a preparation.
			res.Preparation = prep
			markRange(consumed, i, i+width)
			i += width - 1
			continue
		}

		if _, ok := removalTriggers[tok]; ok {
			// Articles between trigger and argument are part of the
			// phrase: "tira a cebola" removes "cebola".
			start := i + 1
			for start < len(tokens) && !consumed[start] && !isTrigger(tokens[start]) && e.ignored.Contains(tokens[start]) {
				start++
			}
			arg, width := e.argumentWindow(tokens, consumed, start, 1)
			if width == 0 {
				continue
			}
			res.Removals = append(res.Removals, strings.Join(arg, " "))
			consumed[i] = true
			markRange(consumed, i+1, start+width)
			i = start + width - 1
			continue
		}

		if _, ok := additionTriggers[tok]; ok {
			width := e.additionAt(tokens, consumed, i, addons, &res)
			if width == 0 {
				continue
			}
			consumed[i] = true
			markRange(consumed, i+1, i+1+width)
			i += width
			continue
		}
	}
	return res
}

// additionAt resolves the argument after an addition trigger at index i.
// It tries addon windows of 3, 2, then 1 words; failing that it records a
// single-word free-text addition unless the argument is filler.
func (e *Extractor) additionAt(tokens []string, consumed map[int]bool, i int, addons *catalog.AddonView, res *Result) int {
	if addons != nil && addons.Len() > 0 {
		for w := maxAdditionWords; w >= 1; w-- {
			arg, width := e.argumentWindow(tokens, consumed, i+1, w)
			if width != w {
				continue
			}
			if addon, ok := addons.Lookup(strings.Join(arg, " ")); ok {
				res.FoundAddons = append(res.FoundAddons, addon)
				return width
			}
		}
	}

	arg, width := e.argumentWindow(tokens, consumed, i+1, 1)
	if width == 0 {
		return 0
	}
	if e.ignored.Contains(arg[0]) {
		return 0
	}
	res.Additions = append(res.Additions, arg[0])
	return width
}

// argumentWindow collects up to want unconsumed argument tokens starting
// at position start, stopping at another trigger, a numeral, or a consumed
// position. Returns the tokens and how many were collected.
func (e *Extractor) argumentWindow(tokens []string, consumed map[int]bool, start, want int) ([]string, int) {
	var args []string
	for j := start; j < len(tokens) && len(args) < want; j++ {
		if consumed[j] || isTrigger(tokens[j]) {
			break
		}
		if _, ok := numeral.Value(tokens[j]); ok {
			break
		}
		args = append(args, tokens[j])
	}
	if len(args) < want {
		return nil, 0
	}
	return args, len(args)
}

// preparationAt recognizes a preparation phrase starting at index i and
// returns its canonical form and token width.
func preparationAt(tokens []string, i int) (string, int) {
	switch tokens[i] {
	case "malpassado", "malpassada":
		return "mal passado", 1
	case "mal":
		if i+1 < len(tokens) && (tokens[i+1] == "passado" || tokens[i+1] == "passada") {
			return "mal passado", 2
		}
		return "mal passado", 1
	case "ao":
		if i+1 < len(tokens) && tokens[i+1] == "ponto" {
			return "ao ponto", 2
		}
	case "bem":
		if i+1 < len(tokens) && (tokens[i+1] == "passado" || tokens[i+1] == "passada") {
			return "bem passado", 2
		}
	case "bempassado", "bempassada":
		return "bem passado", 1
	}
	return "", 0
}

func isTrigger(tok string) bool {
	if _, ok := removalTriggers[tok]; ok {
		return true
	}
	if _, ok := additionTriggers[tok]; ok {
		return true
	}
	return false
}

func markRange(consumed map[int]bool, from, to int) {
	for i := from; i < to; i++ {
		consumed[i] = true
	}
}
