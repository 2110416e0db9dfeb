package message

import (
	"reflect"
	"testing"
)

func TestNormalizeAccents(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"não", "nao"},
		{"três águas", "tres aguas"},
		{"AÇAÍ", "acai"},
		{"feijão tropeiro", "feijao tropeiro"},
	}
	for _, c := range cases {
		if got := Normalize(c.in); got != c.want {
			t.Errorf("Normalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizePunctuationAndWhitespace(t *testing.T) {
	if got := Normalize("  Oi!!! quero   1 pizza, grande.  "); got != "oi quero 1 pizza grande" {
		t.Errorf("Normalize collapsed to %q", got)
	}
}

func TestNormalizeKeepsFusedUnits(t *testing.T) {
	// "2l" must survive as one token for size detection downstream.
	if got := Normalize("coca 2L"); got != "coca 2l" {
		t.Errorf("Normalize('coca 2L') = %q, want 'coca 2l'", got)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"Não, sem cebola!", "2 marmitas GRANDES", "açaí c/ granola"}
	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent on %q: %q then %q", in, once, twice)
		}
	}
}

func TestTokenizeEmpty(t *testing.T) {
	for _, in := range []string{"", "   ", "!!!", "...,;"} {
		if toks := Tokenize(in); len(toks) != 0 {
			t.Errorf("Tokenize(%q) = %v, want empty", in, toks)
		}
	}
}

func TestTokenizeBasic(t *testing.T) {
	got := Tokenize("Quero 2 pizzas grandes")
	want := []string{"quero", "2", "pizzas", "grandes"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize = %v, want %v", got, want)
	}
}

func TestSplitSegmentsPunctuation(t *testing.T) {
	got := SplitSegments("1 pizza grande, 2 cocas; 1 pudim")
	want := []string{"1 pizza grande", "2 cocas", "1 pudim"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitSegments = %v, want %v", got, want)
	}
}

func TestSplitSegmentsConjunctionBeforeNumeral(t *testing.T) {
	got := SplitSegments("2 pequenas e 1 grande")
	want := []string{"2 pequenas", "1 grande"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitSegments = %v, want %v", got, want)
	}

	got = SplitSegments("uma marmita mais duas cocas")
	want = []string{"uma marmita", "duas cocas"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitSegments = %v, want %v", got, want)
	}
}

func TestSplitSegmentsConjunctionInsideName(t *testing.T) {
	// "e" joining two halves of one dish must not split the line.
	got := SplitSegments("arroz e feijão")
	want := []string{"arroz e feijao"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitSegments = %v, want %v", got, want)
	}
}

func TestSplitSegmentsEmpty(t *testing.T) {
	if segs := SplitSegments(" , ; . "); len(segs) != 0 {
		t.Errorf("SplitSegments on punctuation only = %v, want empty", segs)
	}
}
