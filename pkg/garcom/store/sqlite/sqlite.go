// Package sqlite implements store.Store on a SQLite database, the lookup
// backend of the ordering platform. The driver is pure Go, so the store
// runs anywhere the binary does.
package sqlite

import (
	"context"
	"database/sql"

	_ "modernc.org/sqlite"

	"github.com/zapmesa/garcom/pkg/garcom/catalog"
	"github.com/zapmesa/garcom/pkg/garcom/lexicon"
	"github.com/zapmesa/garcom/pkg/garcom/store"
)

type sqliteStore struct {
	db *sql.DB
}

// Open opens (creating if needed) a SQLite store at path with WAL mode
// enabled and the schema initialized.
func Open(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// WAL lets concurrent analyses read while a seeding tool writes.
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

func (s *sqliteStore) Close() error {
	return s.db.Close()
}

func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS products (
	tenant_id TEXT NOT NULL,
	id TEXT NOT NULL,
	name TEXT NOT NULL,
	price REAL NOT NULL,
	available INTEGER NOT NULL DEFAULT 1,
	PRIMARY KEY(tenant_id, id)
);

CREATE TABLE IF NOT EXISTS product_sizes (
	tenant_id TEXT NOT NULL,
	product_id TEXT NOT NULL,
	label TEXT NOT NULL,
	price REAL NOT NULL,
	PRIMARY KEY(tenant_id, product_id, label),
	FOREIGN KEY(tenant_id, product_id) REFERENCES products(tenant_id, id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS addons (
	tenant_id TEXT NOT NULL,
	id TEXT NOT NULL,
	name TEXT NOT NULL,
	price REAL NOT NULL,
	PRIMARY KEY(tenant_id, id)
);

CREATE TABLE IF NOT EXISTS ignored_words (
	tenant_id TEXT NOT NULL,
	word TEXT NOT NULL,
	PRIMARY KEY(tenant_id, word)
);

CREATE TABLE IF NOT EXISTS synonym_mappings (
	tenant_id TEXT NOT NULL,
	phrase TEXT NOT NULL,
	product_id TEXT NOT NULL,
	PRIMARY KEY(tenant_id, phrase)
);

CREATE TABLE IF NOT EXISTS keyword_mappings (
	tenant_id TEXT NOT NULL,
	phrase TEXT NOT NULL,
	product_id TEXT NOT NULL,
	PRIMARY KEY(tenant_id, phrase)
);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// Products loads a tenant's product snapshot, size options included.
func (s *sqliteStore) Products(ctx context.Context, tenantID string) ([]catalog.Product, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, name, price, available
FROM products
WHERE tenant_id = ?
ORDER BY id;
`, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []catalog.Product
	for rows.Next() {
		var (
			p         catalog.Product
			available int
		)
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &available); err != nil {
			return nil, err
		}
		p.Available = available != 0
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range products {
		sizes, err := s.loadSizes(ctx, tenantID, products[i].ID)
		if err != nil {
			return nil, err
		}
		products[i].Sizes = sizes
	}
	return products, nil
}

func (s *sqliteStore) loadSizes(ctx context.Context, tenantID, productID string) ([]catalog.SizeOption, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT label, price
FROM product_sizes
WHERE tenant_id = ? AND product_id = ?
ORDER BY label;
`, tenantID, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sizes []catalog.SizeOption
	for rows.Next() {
		var opt catalog.SizeOption
		if err := rows.Scan(&opt.Label, &opt.Price); err != nil {
			return nil, err
		}
		sizes = append(sizes, opt)
	}
	return sizes, rows.Err()
}

// Addons loads a tenant's addon snapshot.
func (s *sqliteStore) Addons(ctx context.Context, tenantID string) ([]catalog.Addon, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, name, price
FROM addons
WHERE tenant_id = ?
ORDER BY id;
`, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var addons []catalog.Addon
	for rows.Next() {
		var a catalog.Addon
		if err := rows.Scan(&a.ID, &a.Name, &a.Price); err != nil {
			return nil, err
		}
		addons = append(addons, a)
	}
	return addons, rows.Err()
}

// IgnoredWords loads tenant-specific filler words, merged by the caller
// with the built-in set.
func (s *sqliteStore) IgnoredWords(ctx context.Context, tenantID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT word FROM ignored_words WHERE tenant_id = ? ORDER BY word;
`, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var words []string
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, err
		}
		words = append(words, w)
	}
	return words, rows.Err()
}

// SynonymMappings loads a tenant's learned phrase-to-product mappings.
func (s *sqliteStore) SynonymMappings(ctx context.Context, tenantID string) ([]lexicon.Mapping, error) {
	return s.loadMappings(ctx, `SELECT phrase, product_id FROM synonym_mappings WHERE tenant_id = ? ORDER BY phrase`, tenantID)
}

// KeywordMappings loads a tenant's curated phrase-to-product mappings.
func (s *sqliteStore) KeywordMappings(ctx context.Context, tenantID string) ([]lexicon.Mapping, error) {
	return s.loadMappings(ctx, `SELECT phrase, product_id FROM keyword_mappings WHERE tenant_id = ? ORDER BY phrase`, tenantID)
}

func (s *sqliteStore) loadMappings(ctx context.Context, query, tenantID string) ([]lexicon.Mapping, error) {
	rows, err := s.db.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var mappings []lexicon.Mapping
	for rows.Next() {
		var m lexicon.Mapping
		if err := rows.Scan(&m.Phrase, &m.ProductID); err != nil {
			return nil, err
		}
		mappings = append(mappings, m)
	}
	return mappings, rows.Err()
}

// UpsertProduct inserts or updates a product and replaces its size table.
func (s *sqliteStore) UpsertProduct(ctx context.Context, tenantID string, p catalog.Product) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	available := 0
	if p.Available {
		available = 1
	}
	if _, err := tx.ExecContext(ctx, `
INSERT INTO products (tenant_id, id, name, price, available)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(tenant_id, id) DO UPDATE SET
	name=excluded.name,
	price=excluded.price,
	available=excluded.available;
`, tenantID, p.ID, p.Name, p.Price, available); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM product_sizes WHERE tenant_id=? AND product_id=?`, tenantID, p.ID); err != nil {
		return err
	}
	if len(p.Sizes) > 0 {
		stmt, err := tx.PrepareContext(ctx, `INSERT INTO product_sizes (tenant_id, product_id, label, price) VALUES (?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, opt := range p.Sizes {
			if opt.Label == "" {
				continue
			}
			if _, err := stmt.ExecContext(ctx, tenantID, p.ID, opt.Label, opt.Price); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

// UpsertAddon inserts or updates an addon.
func (s *sqliteStore) UpsertAddon(ctx context.Context, tenantID string, a catalog.Addon) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO addons (tenant_id, id, name, price)
VALUES (?, ?, ?, ?)
ON CONFLICT(tenant_id, id) DO UPDATE SET
	name=excluded.name,
	price=excluded.price;
`, tenantID, a.ID, a.Name, a.Price)
	return err
}

// UpsertIgnoredWords replaces a tenant's extra filler words in one
// transaction.
func (s *sqliteStore) UpsertIgnoredWords(ctx context.Context, tenantID string, words []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM ignored_words WHERE tenant_id=?`, tenantID); err != nil {
		return err
	}
	if len(words) > 0 {
		stmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO ignored_words (tenant_id, word) VALUES (?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, w := range words {
			if w == "" {
				continue
			}
			if _, err := stmt.ExecContext(ctx, tenantID, w); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

// UpsertSynonymMapping adds or replaces a learned mapping.
func (s *sqliteStore) UpsertSynonymMapping(ctx context.Context, tenantID string, m lexicon.Mapping) error {
	return s.upsertMapping(ctx, `
INSERT INTO synonym_mappings (tenant_id, phrase, product_id) VALUES (?, ?, ?)
ON CONFLICT(tenant_id, phrase) DO UPDATE SET product_id=excluded.product_id;
`, tenantID, m)
}

// UpsertKeywordMapping adds or replaces a curated mapping.
func (s *sqliteStore) UpsertKeywordMapping(ctx context.Context, tenantID string, m lexicon.Mapping) error {
	return s.upsertMapping(ctx, `
INSERT INTO keyword_mappings (tenant_id, phrase, product_id) VALUES (?, ?, ?)
ON CONFLICT(tenant_id, phrase) DO UPDATE SET product_id=excluded.product_id;
`, tenantID, m)
}

func (s *sqliteStore) upsertMapping(ctx context.Context, query, tenantID string, m lexicon.Mapping) error {
	_, err := s.db.ExecContext(ctx, query, tenantID, m.Phrase, m.ProductID)
	return err
}
