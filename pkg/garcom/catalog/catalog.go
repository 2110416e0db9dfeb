// Package catalog holds the menu entities the matcher reads: products,
// their size options, and priced addons. The core never mutates a catalog;
// it receives a snapshot per analysis call and wraps it in a View with
// pre-normalized names.
package catalog

import (
	"github.com/zapmesa/garcom/pkg/garcom/message"
)

// Product is one orderable menu item.
type Product struct {
	ID        string
	Name      string
	Price     float64
	Available bool
	Sizes     []SizeOption
}

// SizeOption is a named size variant with its own price, e.g. {"2L", 14.00}.
type SizeOption struct {
	Label string
	Price float64
}

// Addon is a priced optional extra (e.g. bacon), not orderable on its own.
type Addon struct {
	ID    string
	Name  string
	Price float64
}

// View wraps a product snapshot with normalized name tokens so every
// matcher sees names processed exactly like message text. Entries with an
// empty name or a non-positive price are skipped rather than failing the
// whole analysis, and unavailable products are excluded from matching.
type View struct {
	products []Product
	tokens   [][]string
	byID     map[string]Product
}

// NewView builds a View over a product snapshot. A nil or empty snapshot
// yields an empty, usable view.
func NewView(products []Product) *View {
	v := &View{byID: make(map[string]Product, len(products))}
	for _, p := range products {
		if p.Name == "" || p.Price <= 0 {
			continue
		}
		v.byID[p.ID] = p
		if !p.Available {
			continue
		}
		toks := message.Tokenize(p.Name)
		if len(toks) == 0 {
			continue
		}
		v.products = append(v.products, p)
		v.tokens = append(v.tokens, toks)
	}
	return v
}

// Len returns the number of matchable products.
func (v *View) Len() int { return len(v.products) }

// At returns the i-th matchable product and its normalized name tokens.
func (v *View) At(i int) (Product, []string) {
	return v.products[i], v.tokens[i]
}

// ByID looks up a product by ID, including unavailable ones; mappings may
// still reference a product that is temporarily off the menu.
func (v *View) ByID(id string) (Product, bool) {
	p, ok := v.byID[id]
	return p, ok
}

// AddonView is the addon counterpart of View, keyed by normalized name for
// the modifier extractor's window lookups.
type AddonView struct {
	byName map[string]Addon
}

// NewAddonView builds an AddonView, skipping malformed entries.
func NewAddonView(addons []Addon) *AddonView {
	v := &AddonView{byName: make(map[string]Addon, len(addons))}
	for _, a := range addons {
		if a.Name == "" || a.Price <= 0 {
			continue
		}
		norm := message.Normalize(a.Name)
		if norm == "" {
			continue
		}
		v.byName[norm] = a
	}
	return v
}

// Lookup finds an addon whose normalized name equals the given normalized
// phrase.
func (v *AddonView) Lookup(phrase string) (Addon, bool) {
	a, ok := v.byName[phrase]
	return a, ok
}

// Len returns the number of usable addons.
func (v *AddonView) Len() int { return len(v.byName) }
