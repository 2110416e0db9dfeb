// Package match resolves candidate token windows to catalog products. A
// fixed-order chain of resolvers is tried per window: learned synonyms
// first, curated keyword mappings second, fuzzy name matching last. The
// first hit wins, so a tenant's explicit mappings always beat similarity.
package match

import (
	"strings"

	"github.com/zapmesa/garcom/pkg/garcom/catalog"
	"github.com/zapmesa/garcom/pkg/garcom/lexicon"
)

// Resolver maps a candidate token window to a product. Implementations
// return false rather than guessing; silence is preferred over a wrong
// add-to-cart.
type Resolver interface {
	Resolve(tokens []string) (catalog.Product, bool)
}

// TableResolver resolves windows by exact normalized-phrase lookup against
// a mapping table. Both synonym and keyword mappings use this type; they
// differ only in chain position.
type TableResolver struct {
	index *lexicon.MappingIndex
	view  *catalog.View
}

// NewTableResolver builds a resolver over a mapping index and the catalog
// view used to materialize mapped product IDs.
func NewTableResolver(index *lexicon.MappingIndex, view *catalog.View) *TableResolver {
	return &TableResolver{index: index, view: view}
}

// Resolve looks the joined window up in the mapping table. A mapping whose
// product no longer exists in the catalog is skipped.
func (r *TableResolver) Resolve(tokens []string) (catalog.Product, bool) {
	if r.index == nil || r.index.Len() == 0 || len(tokens) == 0 {
		return catalog.Product{}, false
	}
	id, ok := r.index.Lookup(strings.Join(tokens, " "))
	if !ok {
		return catalog.Product{}, false
	}
	return r.view.ByID(id)
}

// Chain tries resolvers in order and returns the first hit.
type Chain []Resolver

// Resolve implements Resolver over the whole chain.
func (c Chain) Resolve(tokens []string) (catalog.Product, bool) {
	for _, r := range c {
		if p, ok := r.Resolve(tokens); ok {
			return p, true
		}
	}
	return catalog.Product{}, false
}
