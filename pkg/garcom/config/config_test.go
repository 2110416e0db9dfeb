package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/zapmesa/garcom/pkg/garcom/intent"
	"github.com/zapmesa/garcom/pkg/garcom/message"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadVocabulary(t *testing.T) {
	path := writeFile(t, "vocab.yaml", `
ignored:
  - princesa
  - chefia
`)
	v, err := LoadVocabulary(path)
	if err != nil {
		t.Fatalf("LoadVocabulary: %v", err)
	}
	if len(v.Ignored) != 2 || v.Ignored[0] != "princesa" {
		t.Errorf("Ignored = %v", v.Ignored)
	}
}

func TestLoadIntents(t *testing.T) {
	path := writeFile(t, "intents.yaml", `
intents:
  CONFIRM:
    - fecha ai
  SHOW_MENU:
    - tabela de precos
`)
	in, err := LoadIntents(path)
	if err != nil {
		t.Fatalf("LoadIntents: %v", err)
	}
	if len(in.Intents["CONFIRM"]) != 1 {
		t.Errorf("Intents = %v", in.Intents)
	}
}

func TestLoadMenu(t *testing.T) {
	path := writeFile(t, "menu.yaml", `
tenant: t1
products:
  - name: Marmita P
    price: 18.0
  - name: Coca 2L
    price: 12.0
    available: false
    sizes:
      - label: 2L
        price: 12.0
addons:
  - name: Bacon
    price: 5.0
ignored:
  - chefia
synonyms:
  - phrase: refri
    product: Coca 2L
keywords:
  - phrase: ppap
    product: Marmita P
`)
	m, err := LoadMenu(path)
	if err != nil {
		t.Fatalf("LoadMenu: %v", err)
	}
	if m.Tenant != "t1" {
		t.Errorf("Tenant = %q", m.Tenant)
	}
	if len(m.Products) != 2 || len(m.Addons) != 1 {
		t.Fatalf("products/addons = %d/%d", len(m.Products), len(m.Addons))
	}
	if m.Products[0].Available != nil {
		t.Error("availability should default to unset")
	}
	if m.Products[1].Available == nil || *m.Products[1].Available {
		t.Error("explicit available: false lost")
	}
	if len(m.Products[1].Sizes) != 1 || m.Products[1].Sizes[0].Label != "2L" {
		t.Errorf("sizes = %+v", m.Products[1].Sizes)
	}
	if len(m.Synonyms) != 1 || m.Synonyms[0].Product != "Coca 2L" {
		t.Errorf("synonyms = %+v", m.Synonyms)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := LoadMenu(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("LoadMenu on missing file should fail")
	}
	if _, err := LoadVocabulary(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("LoadVocabulary on missing file should fail")
	}
}

func TestLoaderDefaults(t *testing.T) {
	var l Loader
	comp, err := l.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if comp.Intents == nil {
		t.Fatal("default classifier missing")
	}
	if len(comp.ExtraIgnored) != 0 {
		t.Errorf("ExtraIgnored = %v", comp.ExtraIgnored)
	}
}

func TestLoaderMergesIntentOverrides(t *testing.T) {
	path := writeFile(t, "intents.yaml", `
intents:
  CONFIRM:
    - fecha ai
`)
	l := Loader{IntentsPath: path}
	comp, err := l.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	got := comp.Intents.Detect(message.Tokenize("fecha ai"))
	if len(got) != 1 || got[0] != intent.Confirm {
		t.Errorf("Detect = %v, want [CONFIRM]", got)
	}
	// Built-in keywords still work.
	got = comp.Intents.Detect(message.Tokenize("cardapio"))
	if len(got) != 1 || got[0] != intent.ShowMenu {
		t.Errorf("Detect = %v, want [SHOW_MENU]", got)
	}
}
