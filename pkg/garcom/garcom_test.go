package garcom

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/zapmesa/garcom/pkg/garcom/catalog"
	"github.com/zapmesa/garcom/pkg/garcom/intent"
	"github.com/zapmesa/garcom/pkg/garcom/lexicon"
	"github.com/zapmesa/garcom/pkg/garcom/store/memstore"
)

const testTenant = "t1"

// seedStore builds an in-memory tenant resembling a lunch place: marmitas
// in three sizes, drinks, a burger with a priced bacon addon, and one
// curated keyword mapping for a recurring typo.
func seedStore(t *testing.T) *memstore.Store {
	t.Helper()
	ctx := context.Background()
	st := memstore.New()

	products := []catalog.Product{
		{ID: "p-mp", Name: "Marmita P", Price: 18, Available: true},
		{ID: "p-pq", Name: "Marmita Pequena", Price: 17, Available: true},
		{ID: "p-md", Name: "Marmita Media", Price: 21, Available: true},
		{ID: "p-gr", Name: "Marmita Grande", Price: 26, Available: true},
		{ID: "p-coca", Name: "Coca 2L", Price: 12, Available: true},
		{ID: "p-pz", Name: "Pizza", Price: 30, Available: true},
		{ID: "p-bb", Name: "Brutus Burger", Price: 28, Available: true},
	}
	for _, p := range products {
		if err := st.UpsertProduct(ctx, testTenant, p); err != nil {
			t.Fatalf("UpsertProduct: %v", err)
		}
	}
	if err := st.UpsertAddon(ctx, testTenant, catalog.Addon{ID: "a-bacon", Name: "Bacon", Price: 5}); err != nil {
		t.Fatalf("UpsertAddon: %v", err)
	}
	if err := st.UpsertKeywordMapping(ctx, testTenant, lexicon.Mapping{Phrase: "ppap", ProductID: "p-mp"}); err != nil {
		t.Fatalf("UpsertKeywordMapping: %v", err)
	}
	return st
}

func newTestAnalyzer(t *testing.T) *Analyzer {
	t.Helper()
	a, err := New(Options{Provider: seedStore(t)})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return a
}

func analyze(t *testing.T, a *Analyzer, msg string) []Action {
	t.Helper()
	actions, err := a.Analyze(context.Background(), testTenant, msg)
	if err != nil {
		t.Fatalf("Analyze(%q): %v", msg, err)
	}
	return actions
}

func productActions(actions []Action) []Action {
	var out []Action
	for _, act := range actions {
		if act.Type == ActionProduct {
			out = append(out, act)
		}
	}
	return out
}

func TestNewRequiresProvider(t *testing.T) {
	if _, err := New(Options{}); err == nil {
		t.Fatal("New without provider should fail")
	}
}

func TestAnalyzeSizeNumeralIsNotQuantity(t *testing.T) {
	a := newTestAnalyzer(t)
	acts := analyze(t, a, "coca 2l")
	if len(acts) != 1 {
		t.Fatalf("actions = %+v, want one", acts)
	}
	if acts[0].Product.ID != "p-coca" || acts[0].Quantity != 1 {
		t.Errorf("got %s x%d, want Coca 2L x1", acts[0].Product.Name, acts[0].Quantity)
	}
}

func TestAnalyzeQuantityBeforeSizedProduct(t *testing.T) {
	a := newTestAnalyzer(t)
	acts := analyze(t, a, "2 cocas 2l")
	if len(acts) != 1 {
		t.Fatalf("actions = %+v, want one", acts)
	}
	if acts[0].Product.ID != "p-coca" || acts[0].Quantity != 2 {
		t.Errorf("got %s x%d, want Coca 2L x2", acts[0].Product.Name, acts[0].Quantity)
	}
}

func TestAnalyzeSpelledAndDigitQuantities(t *testing.T) {
	a := newTestAnalyzer(t)
	for _, msg := range []string{"2 pequenas", "duas pequenas"} {
		acts := analyze(t, a, msg)
		if len(acts) != 1 {
			t.Fatalf("%q: actions = %+v, want one", msg, acts)
		}
		if acts[0].Product.ID != "p-pq" || acts[0].Quantity != 2 {
			t.Errorf("%q: got %s x%d, want Marmita Pequena x2", msg, acts[0].Product.Name, acts[0].Quantity)
		}
	}
}

func TestAnalyzeSpelledNumeral(t *testing.T) {
	a := newTestAnalyzer(t)
	acts := analyze(t, a, "tres medias")
	if len(acts) != 1 {
		t.Fatalf("actions = %+v, want one", acts)
	}
	if acts[0].Product.ID != "p-md" || acts[0].Quantity != 3 {
		t.Errorf("got %s x%d, want Marmita Media x3", acts[0].Product.Name, acts[0].Quantity)
	}
}

func TestAnalyzeFillerNeverOrders(t *testing.T) {
	a := newTestAnalyzer(t)
	filler := []string{
		"bom dia", "boa tarde", "oi", "olá",
		"obrigado", "valeu", "quero pedir", "por favor",
	}
	for _, msg := range filler {
		if got := productActions(analyze(t, a, msg)); len(got) != 0 {
			t.Errorf("%q produced product actions: %+v", msg, got)
		}
	}
}

func TestAnalyzeConjunctionSplitsLines(t *testing.T) {
	a := newTestAnalyzer(t)
	acts := analyze(t, a, "2 pequenas e 1 grande")
	if len(acts) != 2 {
		t.Fatalf("actions = %+v, want two", acts)
	}
	if acts[0].Product.ID != "p-pq" || acts[0].Quantity != 2 {
		t.Errorf("first line = %s x%d", acts[0].Product.Name, acts[0].Quantity)
	}
	if acts[1].Product.ID != "p-gr" || acts[1].Quantity != 1 {
		t.Errorf("second line = %s x%d", acts[1].Product.Name, acts[1].Quantity)
	}
}

func TestAnalyzeGarbageMatchesNothing(t *testing.T) {
	a := newTestAnalyzer(t)
	for _, msg := range []string{"maaa", "asdasd", "pimenta do reino"} {
		if acts := analyze(t, a, msg); len(acts) != 0 {
			t.Errorf("%q produced %+v, want nothing", msg, acts)
		}
	}
}

func TestAnalyzeGreetingNeverAddsProducts(t *testing.T) {
	a := newTestAnalyzer(t)
	acts := analyze(t, a, "bom dia")
	if len(productActions(acts)) != 0 {
		t.Fatalf("greeting produced products: %+v", acts)
	}
	if len(acts) != 1 || acts[0].Type != ActionIntent || acts[0].Intent != intent.Greeting {
		t.Errorf("actions = %+v, want single GREETING", acts)
	}
}

func TestAnalyzeTruncatedName(t *testing.T) {
	a := newTestAnalyzer(t)
	acts := analyze(t, a, "quero uma marmit")
	if len(acts) != 1 {
		t.Fatalf("actions = %+v, want one", acts)
	}
	if acts[0].Product.ID != "p-mp" {
		t.Errorf("got %s, want Marmita P", acts[0].Product.Name)
	}
	if acts[0].Quantity != 1 {
		t.Errorf("quantity = %d, want 1", acts[0].Quantity)
	}
}

func TestAnalyzeAddonBecomesOwnLine(t *testing.T) {
	a := newTestAnalyzer(t)
	acts := analyze(t, a, "1 brutus burger com bacon")
	if len(acts) != 2 {
		t.Fatalf("actions = %+v, want addon and product", acts)
	}

	var total float64
	var sawAddon, sawProduct bool
	for _, act := range acts {
		switch act.Type {
		case ActionAddon:
			sawAddon = true
			if act.Addon.ID != "a-bacon" {
				t.Errorf("addon = %s", act.Addon.Name)
			}
			total += act.Addon.Price * float64(act.Quantity)
		case ActionProduct:
			sawProduct = true
			if act.Product.ID != "p-bb" || act.Quantity != 1 {
				t.Errorf("product = %s x%d", act.Product.Name, act.Quantity)
			}
			if act.Notes != "" {
				t.Errorf("priced addon leaked into notes: %q", act.Notes)
			}
			total += act.Product.Price * float64(act.Quantity)
		}
	}
	if !sawAddon || !sawProduct {
		t.Fatalf("missing line: %+v", acts)
	}
	if total != 33 {
		t.Errorf("order total = %.2f, want 33.00", total)
	}
}

func TestAnalyzeKeywordMappingBeatsFiller(t *testing.T) {
	a := newTestAnalyzer(t)
	acts := analyze(t, a, "bom ppap")
	if len(acts) != 1 {
		t.Fatalf("actions = %+v, want one", acts)
	}
	act := acts[0]
	if act.Product.ID != "p-mp" {
		t.Errorf("got %s, want Marmita P", act.Product.Name)
	}
	if act.Notes != "" {
		t.Errorf("filler leaked into notes: %q", act.Notes)
	}
	if act.MatchedKeyword != "ppap" {
		t.Errorf("MatchedKeyword = %q, want ppap", act.MatchedKeyword)
	}
}

func TestAnalyzeSegmentsShareNotes(t *testing.T) {
	a := newTestAnalyzer(t)
	acts := analyze(t, a, "1 marmita grande sem cebola, 2 cocas 2l")
	if len(acts) != 2 {
		t.Fatalf("actions = %+v, want two", acts)
	}
	if acts[0].Product.ID != "p-gr" || acts[0].Notes != "sem cebola" {
		t.Errorf("first = %s notes %q", acts[0].Product.Name, acts[0].Notes)
	}
	if acts[1].Product.ID != "p-coca" || acts[1].Quantity != 2 || acts[1].Notes != "" {
		t.Errorf("second = %s x%d notes %q", acts[1].Product.Name, acts[1].Quantity, acts[1].Notes)
	}
}

func TestAnalyzeIntentAction(t *testing.T) {
	a := newTestAnalyzer(t)
	acts := analyze(t, a, "cardapio")
	if len(acts) != 1 || acts[0].Type != ActionIntent || acts[0].Intent != intent.ShowMenu {
		t.Errorf("actions = %+v, want SHOW_MENU", acts)
	}
}

func TestAnalyzeDeterministic(t *testing.T) {
	a := newTestAnalyzer(t)
	msg := "bom dia, quero 2 marmitas grandes sem cebola e 1 coca 2l, pra entregar"
	first := analyze(t, a, msg)
	for i := 0; i < 5; i++ {
		again := analyze(t, a, msg)
		if !reflect.DeepEqual(again, first) {
			t.Fatalf("run %d: %+v != %+v", i, again, first)
		}
	}
}

func TestAnalyzeEmptyMessage(t *testing.T) {
	a := newTestAnalyzer(t)
	for _, msg := range []string{"", "   ", "!!!"} {
		if acts := analyze(t, a, msg); len(acts) != 0 {
			t.Errorf("%q produced %+v", msg, acts)
		}
	}
}

func TestAnalyzeUnknownTenant(t *testing.T) {
	a := newTestAnalyzer(t)
	acts, err := a.Analyze(context.Background(), "nope", "2 marmitas")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(acts) != 0 {
		t.Errorf("unknown tenant produced %+v", acts)
	}
}

// failingProvider errors on every read.
type failingProvider struct{}

var errDown = errors.New("store down")

func (failingProvider) Products(ctx context.Context, tenantID string) ([]catalog.Product, error) {
	return nil, errDown
}
func (failingProvider) Addons(ctx context.Context, tenantID string) ([]catalog.Addon, error) {
	return nil, errDown
}
func (failingProvider) IgnoredWords(ctx context.Context, tenantID string) ([]string, error) {
	return nil, errDown
}
func (failingProvider) SynonymMappings(ctx context.Context, tenantID string) ([]lexicon.Mapping, error) {
	return nil, errDown
}
func (failingProvider) KeywordMappings(ctx context.Context, tenantID string) ([]lexicon.Mapping, error) {
	return nil, errDown
}
func (failingProvider) Close() error { return nil }

func TestAnalyzeDegradesOnProviderFailure(t *testing.T) {
	a, err := New(Options{Provider: failingProvider{}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	acts, err := a.Analyze(context.Background(), testTenant, "2 marmitas g")
	if err != nil {
		t.Fatalf("Analyze should degrade, got error: %v", err)
	}
	if len(acts) != 0 {
		t.Errorf("degraded analysis produced %+v", acts)
	}
}
