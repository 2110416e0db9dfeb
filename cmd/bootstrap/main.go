// Command bootstrap seeds a tenant catalog and lexicon into a sqlite
// store from a YAML menu file.
//
// Usage:
//
//	bootstrap --db garcom.db --menu menu.yaml
//
// Products, sizes, addons and mappings in the seed file reference each
// other by name; IDs are assigned here and never appear in seed files.
package main

import (
	"context"
	"crypto/rand"
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/oklog/ulid/v2"

	"github.com/zapmesa/garcom/pkg/garcom/catalog"
	"github.com/zapmesa/garcom/pkg/garcom/config"
	"github.com/zapmesa/garcom/pkg/garcom/lexicon"
	"github.com/zapmesa/garcom/pkg/garcom/store/sqlite"
)

func main() {
	var (
		dbPath   = flag.String("db", "", "Database path (required)")
		menuPath = flag.String("menu", "", "Menu seed file (required)")
		tenant   = flag.String("tenant", "", "Override the tenant id from the seed file")
	)
	flag.Parse()

	if *dbPath == "" {
		log.Fatal("--db required")
	}
	if *menuPath == "" {
		log.Fatal("--menu required")
	}

	menu, err := config.LoadMenu(*menuPath)
	if err != nil {
		log.Fatalf("load menu: %v", err)
	}

	tenantID := menu.Tenant
	if *tenant != "" {
		tenantID = *tenant
	}
	if tenantID == "" {
		log.Fatal("seed file has no tenant id; pass --tenant")
	}

	ctx := context.Background()

	st, err := sqlite.Open(ctx, *dbPath)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer st.Close()

	entropy := ulid.Monotonic(rand.Reader, 0)
	newID := func() string {
		return ulid.MustNew(ulid.Now(), entropy).String()
	}

	// Product names key the mapping resolution below, so duplicates in
	// the seed file are an error rather than a silent overwrite.
	byName := make(map[string]string, len(menu.Products))

	for _, mp := range menu.Products {
		name := strings.TrimSpace(mp.Name)
		if name == "" {
			log.Fatal("product with empty name in seed file")
		}
		if _, dup := byName[strings.ToLower(name)]; dup {
			log.Fatalf("duplicate product name %q in seed file", name)
		}

		p := catalog.Product{
			ID:        newID(),
			Name:      name,
			Price:     mp.Price,
			Available: mp.Available == nil || *mp.Available,
		}
		for _, s := range mp.Sizes {
			p.Sizes = append(p.Sizes, catalog.SizeOption{Label: s.Label, Price: s.Price})
		}

		if err := st.UpsertProduct(ctx, tenantID, p); err != nil {
			log.Fatalf("upsert product %q: %v", name, err)
		}
		byName[strings.ToLower(name)] = p.ID
	}

	for _, ma := range menu.Addons {
		name := strings.TrimSpace(ma.Name)
		if name == "" {
			log.Fatal("addon with empty name in seed file")
		}
		a := catalog.Addon{ID: newID(), Name: name, Price: ma.Price}
		if err := st.UpsertAddon(ctx, tenantID, a); err != nil {
			log.Fatalf("upsert addon %q: %v", name, err)
		}
	}

	if len(menu.Ignored) > 0 {
		if err := st.UpsertIgnoredWords(ctx, tenantID, menu.Ignored); err != nil {
			log.Fatalf("upsert ignored words: %v", err)
		}
	}

	seedMappings := func(kind string, entries []config.MenuMapping,
		upsert func(context.Context, string, lexicon.Mapping) error) {
		for _, e := range entries {
			productID, ok := byName[strings.ToLower(strings.TrimSpace(e.Product))]
			if !ok {
				log.Fatalf("%s %q references unknown product %q", kind, e.Phrase, e.Product)
			}
			m := lexicon.Mapping{Phrase: e.Phrase, ProductID: productID}
			if err := upsert(ctx, tenantID, m); err != nil {
				log.Fatalf("upsert %s %q: %v", kind, e.Phrase, err)
			}
		}
	}
	seedMappings("synonym", menu.Synonyms, st.UpsertSynonymMapping)
	seedMappings("keyword", menu.Keywords, st.UpsertKeywordMapping)

	fmt.Printf("Seeded tenant %s: %d products, %d addons, %d ignored words, %d synonyms, %d keywords\n",
		tenantID, len(menu.Products), len(menu.Addons), len(menu.Ignored),
		len(menu.Synonyms), len(menu.Keywords))
}
