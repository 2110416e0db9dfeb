package match

import (
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/zapmesa/garcom/pkg/garcom/catalog"
	"github.com/zapmesa/garcom/pkg/garcom/lexicon"
)

const (
	// minExplainRatio is the acceptance floor: at least this fraction of
	// the candidate phrase's characters must be explained by ordered
	// matches against the product name. "marmit" clears it against
	// "Marmita" (6/7 prefix, all 6 candidate chars explained); "penela"
	// does not.
	minExplainRatio = 0.75

	// minPrefixShare: a candidate token only counts as a prefix match when
	// it covers at least 70% of the product-name token. Stops "pe" from
	// claiming "pequena".
	minPrefixShare = 0.7

	// minSingleTokenRunes guards lone short tokens. "dia" (3 runes) can
	// never match "media" by itself.
	minSingleTokenRunes = 4
)

// Fuzzy matches candidate windows against catalog product names by
// token-overlap with prefix tolerance. It deliberately returns no match
// below the acceptance floor.
type Fuzzy struct {
	view    *catalog.View
	ignored lexicon.IgnoredSet
	log     *zap.SugaredLogger
}

// NewFuzzy builds a fuzzy resolver over a catalog view, using the ignored
// set to veto filler-only candidates.
func NewFuzzy(view *catalog.View, ignored lexicon.IgnoredSet) *Fuzzy {
	return &Fuzzy{view: view, ignored: ignored}
}

// SetLogger enables debug traces of match decisions.
func (f *Fuzzy) SetLogger(log *zap.SugaredLogger) { f.log = log }

// Resolve scores the window against every product name and returns the
// best one above the floor. Ties go to the product sharing the longest
// exact token prefix with the window, then to the shorter name.
func (f *Fuzzy) Resolve(tokens []string) (catalog.Product, bool) {
	if len(tokens) == 0 || f.view.Len() == 0 {
		return catalog.Product{}, false
	}
	if len(tokens) == 1 && !f.viable(tokens[0]) {
		return catalog.Product{}, false
	}

	var (
		best       catalog.Product
		found      bool
		bestScore  float64
		bestPrefix int
		bestName   int
	)
	for i := 0; i < f.view.Len(); i++ {
		product, nameToks := f.view.At(i)
		score := explainRatio(tokens, nameToks)
		if score < minExplainRatio {
			continue
		}
		prefix := exactTokenPrefix(tokens, nameToks)
		nameLen := len(product.Name)
		if !found ||
			score > bestScore ||
			(score == bestScore && prefix > bestPrefix) ||
			(score == bestScore && prefix == bestPrefix && nameLen < bestName) {
			best, found = product, true
			bestScore, bestPrefix, bestName = score, prefix, nameLen
		}
	}

	if found && f.log != nil {
		f.log.Debugw("fuzzy match",
			"candidate", strings.Join(tokens, " "),
			"product", best.Name,
			"score", bestScore,
		)
	}
	return best, found
}

// viable reports whether a lone token may justify a match at all.
func (f *Fuzzy) viable(token string) bool {
	if f.ignored.Contains(token) {
		return false
	}
	return utf8.RuneCountInString(token) >= minSingleTokenRunes
}

// explainRatio returns the fraction of candidate characters explained by
// the product-name tokens.
func explainRatio(candidate, name []string) float64 {
	total, explained := 0, 0
	for _, ct := range candidate {
		total += len(ct)
		explained += bestExplained(ct, name)
	}
	if total == 0 {
		return 0
	}
	return float64(explained) / float64(total)
}

// bestExplained returns how many characters of the candidate token are
// explained by the best-fitting product-name token: all of them on an
// exact or singularized match, or on a long-enough prefix match; zero
// otherwise.
func bestExplained(ct string, name []string) int {
	for _, nt := range name {
		if ct == nt {
			return len(ct)
		}
		if s := strings.TrimSuffix(ct, "s"); len(s) >= 3 && s == nt {
			return len(ct)
		}
		if strings.HasPrefix(nt, ct) && float64(len(ct)) >= minPrefixShare*float64(len(nt)) {
			return len(ct)
		}
	}
	return 0
}

// exactTokenPrefix counts how many leading tokens the candidate and the
// product name share verbatim.
func exactTokenPrefix(candidate, name []string) int {
	n := 0
	for n < len(candidate) && n < len(name) && candidate[n] == name[n] {
		n++
	}
	return n
}
