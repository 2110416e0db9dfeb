// Package memstore is an in-memory store.Store used in tests and by
// callers that load a tenant's data from elsewhere and just need a
// Provider to hand the analyzer.
package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/zapmesa/garcom/pkg/garcom/catalog"
	"github.com/zapmesa/garcom/pkg/garcom/lexicon"
)

type tenantData struct {
	products map[string]catalog.Product
	addons   map[string]catalog.Addon
	ignored  map[string]struct{}
	synonyms map[string]lexicon.Mapping
	keywords map[string]lexicon.Mapping
}

// Store is a mutex-guarded in-memory store.Store.
type Store struct {
	mu      sync.RWMutex
	tenants map[string]*tenantData
}

// New creates an empty Store.
func New() *Store {
	return &Store{tenants: make(map[string]*tenantData)}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

func (s *Store) tenant(tenantID string) *tenantData {
	td, ok := s.tenants[tenantID]
	if !ok {
		td = &tenantData{
			products: make(map[string]catalog.Product),
			addons:   make(map[string]catalog.Addon),
			ignored:  make(map[string]struct{}),
			synonyms: make(map[string]lexicon.Mapping),
			keywords: make(map[string]lexicon.Mapping),
		}
		s.tenants[tenantID] = td
	}
	return td
}

// Products returns the tenant's products sorted by ID.
func (s *Store) Products(ctx context.Context, tenantID string) ([]catalog.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	td, ok := s.tenants[tenantID]
	if !ok {
		return nil, nil
	}
	products := make([]catalog.Product, 0, len(td.products))
	for _, p := range td.products {
		products = append(products, p)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products, nil
}

// Addons returns the tenant's addons sorted by ID.
func (s *Store) Addons(ctx context.Context, tenantID string) ([]catalog.Addon, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	td, ok := s.tenants[tenantID]
	if !ok {
		return nil, nil
	}
	addons := make([]catalog.Addon, 0, len(td.addons))
	for _, a := range td.addons {
		addons = append(addons, a)
	}
	sort.Slice(addons, func(i, j int) bool { return addons[i].ID < addons[j].ID })
	return addons, nil
}

// IgnoredWords returns the tenant's extra filler words sorted.
func (s *Store) IgnoredWords(ctx context.Context, tenantID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	td, ok := s.tenants[tenantID]
	if !ok {
		return nil, nil
	}
	words := make([]string, 0, len(td.ignored))
	for w := range td.ignored {
		words = append(words, w)
	}
	sort.Strings(words)
	return words, nil
}

// SynonymMappings returns the tenant's learned mappings sorted by phrase.
func (s *Store) SynonymMappings(ctx context.Context, tenantID string) ([]lexicon.Mapping, error) {
	return s.mappings(tenantID, true), nil
}

// KeywordMappings returns the tenant's curated mappings sorted by phrase.
func (s *Store) KeywordMappings(ctx context.Context, tenantID string) ([]lexicon.Mapping, error) {
	return s.mappings(tenantID, false), nil
}

func (s *Store) mappings(tenantID string, synonyms bool) []lexicon.Mapping {
	s.mu.RLock()
	defer s.mu.RUnlock()
	td, ok := s.tenants[tenantID]
	if !ok {
		return nil
	}
	src := td.keywords
	if synonyms {
		src = td.synonyms
	}
	out := make([]lexicon.Mapping, 0, len(src))
	for _, m := range src {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Phrase < out[j].Phrase })
	return out
}

// UpsertProduct implements store.Store.
func (s *Store) UpsertProduct(ctx context.Context, tenantID string, p catalog.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tenant(tenantID).products[p.ID] = p
	return nil
}

// UpsertAddon implements store.Store.
func (s *Store) UpsertAddon(ctx context.Context, tenantID string, a catalog.Addon) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tenant(tenantID).addons[a.ID] = a
	return nil
}

// UpsertIgnoredWords replaces the tenant's extra filler words.
func (s *Store) UpsertIgnoredWords(ctx context.Context, tenantID string, words []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	td := s.tenant(tenantID)
	td.ignored = make(map[string]struct{}, len(words))
	for _, w := range words {
		if w != "" {
			td.ignored[w] = struct{}{}
		}
	}
	return nil
}

// UpsertSynonymMapping implements store.Store.
func (s *Store) UpsertSynonymMapping(ctx context.Context, tenantID string, m lexicon.Mapping) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tenant(tenantID).synonyms[m.Phrase] = m
	return nil
}

// UpsertKeywordMapping implements store.Store.
func (s *Store) UpsertKeywordMapping(ctx context.Context, tenantID string, m lexicon.Mapping) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tenant(tenantID).keywords[m.Phrase] = m
	return nil
}
