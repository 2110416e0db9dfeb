// Package store defines how the analyzer reads a tenant's catalog and
// lexicon. Implementations must tolerate concurrent readers; the analyzer
// only ever reads, and every read failure degrades to an empty snapshot
// rather than aborting an analysis.
package store

import (
	"context"

	"github.com/zapmesa/garcom/pkg/garcom/catalog"
	"github.com/zapmesa/garcom/pkg/garcom/lexicon"
)

// Provider supplies per-tenant snapshots to the analyzer. Any method may
// return an empty slice; the analyzer treats errors as empty sets.
type Provider interface {
	Products(ctx context.Context, tenantID string) ([]catalog.Product, error)
	Addons(ctx context.Context, tenantID string) ([]catalog.Addon, error)
	IgnoredWords(ctx context.Context, tenantID string) ([]string, error)
	SynonymMappings(ctx context.Context, tenantID string) ([]lexicon.Mapping, error)
	KeywordMappings(ctx context.Context, tenantID string) ([]lexicon.Mapping, error)
	Close() error
}

// Store extends Provider with the write side used by seeding tools and the
// mapping-learning flow. The analyzer itself never writes.
type Store interface {
	Provider

	UpsertProduct(ctx context.Context, tenantID string, p catalog.Product) error
	UpsertAddon(ctx context.Context, tenantID string, a catalog.Addon) error
	UpsertIgnoredWords(ctx context.Context, tenantID string, words []string) error
	UpsertSynonymMapping(ctx context.Context, tenantID string, m lexicon.Mapping) error
	UpsertKeywordMapping(ctx context.Context, tenantID string, m lexicon.Mapping) error
}
