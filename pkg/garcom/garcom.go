// Package garcom is the order-intent extraction core of the ordering
// platform: it takes a free-form WhatsApp message, segments it, and maps
// it against a tenant's menu to produce structured cart actions, without
// calling a model. The surrounding platform owns the cart, the conversation state
// machine, and all persistence beyond the lookup tables read here.
package garcom

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/zapmesa/garcom/pkg/garcom/catalog"
	"github.com/zapmesa/garcom/pkg/garcom/intent"
	"github.com/zapmesa/garcom/pkg/garcom/internalerr"
	"github.com/zapmesa/garcom/pkg/garcom/lexicon"
	"github.com/zapmesa/garcom/pkg/garcom/match"
	"github.com/zapmesa/garcom/pkg/garcom/message"
	"github.com/zapmesa/garcom/pkg/garcom/modifier"
	"github.com/zapmesa/garcom/pkg/garcom/numeral"
	"github.com/zapmesa/garcom/pkg/garcom/store"
)

// maxWindow caps candidate phrase length in tokens; longer windows are
// tried first so "pizza quatro queijos" wins over "pizza".
const maxWindow = 4

// ActionType discriminates the three kinds of actions an analysis emits.
type ActionType string

const (
	ActionProduct ActionType = "product"
	ActionAddon   ActionType = "addon"
	ActionIntent  ActionType = "intent"
)

// Action is one structured outcome of analyzing a message: a product to
// add, a priced addon to add, or a non-product intent tag. The external
// cart collaborator applies the list in order.
type Action struct {
	Type           ActionType
	Intent         intent.Intent
	Product        catalog.Product
	Addon          catalog.Addon
	Quantity       int
	Notes          string
	MatchedKeyword string
}

// Options configures an Analyzer.
type Options struct {
	// Provider supplies per-tenant catalog and lexicon snapshots.
	Provider store.Provider
	// Intents overrides the default intent classifier.
	Intents *intent.Classifier
	// Logger enables debug traces. Analysis output never depends on it.
	Logger *zap.SugaredLogger
}

// Analyzer is the message-analysis facade. It keeps no per-message state
// and is safe for concurrent use across customers and tenants.
type Analyzer struct {
	provider store.Provider
	intents  *intent.Classifier
	log      *zap.SugaredLogger
}

// New creates an Analyzer.
func New(opts Options) (*Analyzer, error) {
	if opts.Provider == nil {
		return nil, internalerr.ErrNoProvider
	}
	intents := opts.Intents
	if intents == nil {
		intents = intent.NewClassifier()
	}
	return &Analyzer{
		provider: opts.Provider,
		intents:  intents,
		log:      opts.Logger,
	}, nil
}

// snapshot is everything one analysis reads, loaded up front so a mapping
// added mid-analysis by another request is either fully seen or not at all.
type snapshot struct {
	view     *catalog.View
	addons   *catalog.AddonView
	ignored  lexicon.IgnoredSet
	synonyms *lexicon.MappingIndex
	keywords *lexicon.MappingIndex
}

// Analyze maps one message to an ordered action list. It never fails on
// message content: malformed or empty input yields an empty list, and a
// provider read error degrades that part of the snapshot to an empty set.
func (a *Analyzer) Analyze(ctx context.Context, tenantID, msg string) ([]Action, error) {
	snap := a.loadSnapshot(ctx, tenantID)

	var actions []Action

	// Message-level intents, independent of product matching.
	tokens := message.Tokenize(msg)
	for _, it := range a.intents.Detect(tokens) {
		actions = append(actions, Action{Type: ActionIntent, Intent: it})
	}

	// Each segment is one candidate order line.
	for _, seg := range message.SplitSegments(msg) {
		actions = append(actions, a.analyzeSegment(message.Tokenize(seg), snap)...)
	}

	// Fallbacks only fire on an otherwise empty analysis.
	if len(actions) == 0 {
		if it, ok := intent.Fallback(msg); ok {
			actions = append(actions, Action{Type: ActionIntent, Intent: it})
		}
	}

	return actions, nil
}

// loadSnapshot reads the tenant's catalog and lexicon, degrading every
// failed read to an empty set so a broken mapping store never blocks basic
// matching.
func (a *Analyzer) loadSnapshot(ctx context.Context, tenantID string) snapshot {
	products, err := a.provider.Products(ctx, tenantID)
	if err != nil {
		a.debugw("catalog unavailable", "tenant", tenantID, "err", err)
		products = nil
	}
	addons, err := a.provider.Addons(ctx, tenantID)
	if err != nil {
		a.debugw("addon catalog unavailable", "tenant", tenantID, "err", err)
		addons = nil
	}
	ignored, err := a.provider.IgnoredWords(ctx, tenantID)
	if err != nil {
		a.debugw("ignored words unavailable", "tenant", tenantID, "err", err)
		ignored = nil
	}
	synonyms, err := a.provider.SynonymMappings(ctx, tenantID)
	if err != nil {
		a.debugw("synonym mappings unavailable", "tenant", tenantID, "err", err)
		synonyms = nil
	}
	keywords, err := a.provider.KeywordMappings(ctx, tenantID)
	if err != nil {
		a.debugw("keyword mappings unavailable", "tenant", tenantID, "err", err)
		keywords = nil
	}

	return snapshot{
		view:     catalog.NewView(products),
		addons:   catalog.NewAddonView(addons),
		ignored:  lexicon.NewIgnoredSet(ignored),
		synonyms: lexicon.NewMappingIndex(synonyms),
		keywords: lexicon.NewMappingIndex(keywords),
	}
}

// analyzeSegment extracts modifiers, then scans the remaining positions
// for products. Addon actions come first, then products in match order;
// every product in the segment shares the segment's notes string.
func (a *Analyzer) analyzeSegment(tokens []string, snap snapshot) []Action {
	if len(tokens) == 0 {
		return nil
	}

	consumed := make(map[int]bool, len(tokens))
	mods := modifier.New(snap.ignored).Extract(tokens, consumed, snap.addons)

	var actions []Action
	for _, ad := range mods.FoundAddons {
		actions = append(actions, Action{
			Type:           ActionAddon,
			Addon:          ad,
			Quantity:       1,
			MatchedKeyword: message.Normalize(ad.Name),
		})
	}
	notes := mods.Notes()

	fuzzy := match.NewFuzzy(snap.view, snap.ignored)
	fuzzy.SetLogger(a.log)
	chain := match.Chain{
		match.NewTableResolver(snap.synonyms, snap.view),
		match.NewTableResolver(snap.keywords, snap.view),
		fuzzy,
	}

	for i := 0; i < len(tokens); i++ {
		if consumed[i] {
			continue
		}
		// Quantity numerals attach to the phrase that follows; they never
		// start a candidate window themselves.
		if _, ok := numeral.QuantityAt(tokens, i); ok {
			continue
		}

		window, width, product, ok := a.matchAt(tokens, consumed, i, chain)
		if !ok {
			continue
		}

		qty := a.quantityFor(tokens, consumed, i, window)
		actions = append(actions, Action{
			Type:           ActionProduct,
			Product:        product,
			Quantity:       qty,
			Notes:          notes,
			MatchedKeyword: strings.Join(window, " "),
		})
		for j := i; j < i+width; j++ {
			consumed[j] = true
		}
		i += width - 1
	}

	return actions
}

// matchAt tries candidate windows at position i, longest first, against
// the resolver chain. A window must be contiguous and unconsumed.
func (a *Analyzer) matchAt(tokens []string, consumed map[int]bool, i int, chain match.Chain) ([]string, int, catalog.Product, bool) {
	limit := maxWindow
	if rem := len(tokens) - i; rem < limit {
		limit = rem
	}
	for w := limit; w >= 1; w-- {
		blocked := false
		for j := i; j < i+w; j++ {
			if consumed[j] {
				blocked = true
				break
			}
		}
		if blocked {
			continue
		}
		window := tokens[i : i+w]
		if p, ok := chain.Resolve(window); ok {
			return window, w, p, true
		}
	}
	return nil, 0, catalog.Product{}, false
}

// quantityFor resolves the quantity for a match starting at position i:
// the nearest preceding unconsumed quantity numeral, else a numeral the
// window itself swallowed, else 1.
func (a *Analyzer) quantityFor(tokens []string, consumed map[int]bool, i int, window []string) int {
	j := i - 1
	for j >= 0 && consumed[j] {
		j--
	}
	if j >= 0 {
		if v, ok := numeral.QuantityAt(tokens, j); ok {
			consumed[j] = true
			return v
		}
	}
	if v, ok := numeral.FirstQuantity(window); ok {
		return v
	}
	return 1
}

func (a *Analyzer) debugw(msg string, kv ...interface{}) {
	if a.log != nil {
		a.log.Debugw(msg, kv...)
	}
}
