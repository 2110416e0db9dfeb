// Package lexicon holds the per-tenant vocabulary the matcher consults:
// the ignored-word set (greetings, politeness, articles), learned synonym
// mappings, and curated keyword mappings. All of it is read-only during an
// analysis; learning happens in external collaborators.
package lexicon

import (
	"strings"

	"github.com/zapmesa/garcom/pkg/garcom/message"
)

// builtinIgnored is the process-wide filler vocabulary, already normalized.
// Tenant-specific additions are merged per call via NewIgnoredSet; this
// table itself is never mutated.
var builtinIgnored = []string{
	// greetings
	"oi", "ola", "opa", "eai", "hey", "hello", "alo",
	"bom", "boa", "dia", "tarde", "noite",
	// politeness
	"por", "favor", "pfv", "pf", "porfavor",
	"obrigado", "obrigada", "valeu", "brigado", "brigada",
	// request filler
	"quero", "queria", "gostaria", "desejo", "pedir", "pedido",
	"me", "ve", "traz", "manda",
	// articles and small connectives
	"o", "a", "os", "as", "de", "da", "do", "das", "dos",
	"pra", "pro", "para", "em", "no", "na", "que",
	// chat filler
	"ai", "entao", "tipo", "assim", "so", "tudo", "bem", "beleza", "blz",
}

// IgnoredSet is a normalized word set. A token in this set is filler: it
// never justifies a product match on its own.
type IgnoredSet map[string]struct{}

// NewIgnoredSet merges the built-in filler vocabulary with tenant-specific
// extras. Extras are normalized before insertion.
func NewIgnoredSet(extras []string) IgnoredSet {
	set := make(IgnoredSet, len(builtinIgnored)+len(extras))
	for _, w := range builtinIgnored {
		set[w] = struct{}{}
	}
	for _, w := range extras {
		norm := message.Normalize(w)
		if norm == "" {
			continue
		}
		for _, tok := range strings.Fields(norm) {
			set[tok] = struct{}{}
		}
	}
	return set
}

// Contains reports whether a normalized token is filler.
func (s IgnoredSet) Contains(token string) bool {
	_, ok := s[token]
	return ok
}

// Mapping associates a literal phrase with a product, bypassing fuzzy
// matching. Synonym mappings (learned) and keyword mappings (curated) share
// this shape and differ only in which table they come from.
type Mapping struct {
	Phrase    string
	ProductID string
}

// MappingIndex indexes mappings by normalized phrase for O(1) window
// lookups during segment scanning.
type MappingIndex struct {
	byPhrase map[string]string
	maxWords int
}

// NewMappingIndex builds an index over a mapping snapshot. Entries with an
// empty phrase or product ID are skipped.
func NewMappingIndex(mappings []Mapping) *MappingIndex {
	ix := &MappingIndex{byPhrase: make(map[string]string, len(mappings))}
	for _, m := range mappings {
		norm := message.Normalize(m.Phrase)
		if norm == "" || m.ProductID == "" {
			continue
		}
		ix.byPhrase[norm] = m.ProductID
		if n := len(strings.Fields(norm)); n > ix.maxWords {
			ix.maxWords = n
		}
	}
	return ix
}

// Lookup resolves a normalized phrase to a product ID.
func (ix *MappingIndex) Lookup(phrase string) (string, bool) {
	id, ok := ix.byPhrase[phrase]
	return id, ok
}

// MaxWords returns the longest phrase length in words, letting callers cap
// their candidate windows.
func (ix *MappingIndex) MaxWords() int { return ix.maxWords }

// Len returns the number of indexed mappings.
func (ix *MappingIndex) Len() int { return len(ix.byPhrase) }
