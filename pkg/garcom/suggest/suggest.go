// Package suggest turns operator corrections into keyword-mapping
// candidates. When staff fix an unrecognized phrase by picking the right
// product, the correction is recorded here; phrases that recur past a
// support threshold become mapping suggestions, optionally gated by a
// reviewer before they are persisted.
package suggest

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/zapmesa/garcom/pkg/garcom/lexicon"
	"github.com/zapmesa/garcom/pkg/garcom/message"
	"github.com/zapmesa/garcom/pkg/garcom/store"
)

// Candidate is a proposed keyword mapping with its observed support.
type Candidate struct {
	Phrase    string
	ProductID string
	Support   int
}

// Reviewer optionally performs an extra approval step (human or LLM).
type Reviewer interface {
	Approve(ctx context.Context, cand Candidate) (bool, error)
}

type key struct {
	phrase    string
	productID string
}

// Suggester accumulates corrections and proposes mapping candidates.
// Safe for concurrent use.
type Suggester struct {
	mu         sync.Mutex
	counts     map[key]int
	minSupport int
	reviewer   Reviewer
}

// New creates a Suggester that proposes phrases corrected at least
// minSupport times (floor 1).
func New(minSupport int) *Suggester {
	if minSupport < 1 {
		minSupport = 1
	}
	return &Suggester{
		counts:     make(map[key]int),
		minSupport: minSupport,
	}
}

// SetReviewer installs an approval step applied by Run.
func (s *Suggester) SetReviewer(r Reviewer) { s.reviewer = r }

// Record notes one operator correction: this phrase meant that product.
// The phrase is normalized before counting.
func (s *Suggester) Record(phrase, productID string) {
	norm := message.Normalize(phrase)
	if norm == "" || productID == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counts[key{phrase: norm, productID: productID}]++
}

// Candidates returns every candidate at or above the support threshold,
// strongest first, ties broken by phrase.
func (s *Suggester) Candidates() []Candidate {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []Candidate
	for k, n := range s.counts {
		if n < s.minSupport {
			continue
		}
		out = append(out, Candidate{Phrase: k.phrase, ProductID: k.productID, Support: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Support != out[j].Support {
			return out[i].Support > out[j].Support
		}
		return out[i].Phrase < out[j].Phrase
	})
	return out
}

// Run collects candidates and, when a reviewer is installed, routes them
// through it, returning only the approved ones.
func (s *Suggester) Run(ctx context.Context) ([]Candidate, error) {
	candidates := s.Candidates()
	if len(candidates) == 0 || s.reviewer == nil {
		return candidates, nil
	}

	var approved []Candidate
	for _, cand := range candidates {
		ok, err := s.reviewer.Approve(ctx, cand)
		if err != nil {
			return nil, err
		}
		if ok {
			approved = append(approved, cand)
		}
	}
	return approved, nil
}

// Persist writes candidates to the tenant's keyword-mapping table.
func Persist(ctx context.Context, st store.Store, tenantID string, candidates []Candidate) error {
	if st == nil {
		return errors.New("suggest: nil store")
	}
	for _, cand := range candidates {
		m := lexicon.Mapping{Phrase: cand.Phrase, ProductID: cand.ProductID}
		if err := st.UpsertKeywordMapping(ctx, tenantID, m); err != nil {
			return err
		}
	}
	return nil
}
