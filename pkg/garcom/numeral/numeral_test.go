package numeral

import "testing"

func TestValueCardinals(t *testing.T) {
	cases := []struct {
		tok  string
		want int
	}{
		{"um", 1}, {"uma", 1}, {"dois", 2}, {"duas", 2},
		{"tres", 3}, {"dez", 10}, {"vinte", 20},
	}
	for _, c := range cases {
		got, ok := Value(c.tok)
		if !ok || got != c.want {
			t.Errorf("Value(%q) = %d, %v; want %d, true", c.tok, got, ok, c.want)
		}
	}
}

func TestValueDigits(t *testing.T) {
	if v, ok := Value("2"); !ok || v != 2 {
		t.Errorf("Value('2') = %d, %v", v, ok)
	}
	if v, ok := Value("15"); !ok || v != 15 {
		t.Errorf("Value('15') = %d, %v", v, ok)
	}
	// Out of range or not a numeral.
	for _, tok := range []string{"0", "100", "-1", "coca", "2l", ""} {
		if _, ok := Value(tok); ok {
			t.Errorf("Value(%q) accepted, want rejection", tok)
		}
	}
}

func TestIsSizeNumeralFused(t *testing.T) {
	for _, tok := range []string{"2l", "500ml", "1kg", "350g", "2litros"} {
		if !IsSizeNumeral([]string{tok}, 0) {
			t.Errorf("IsSizeNumeral(%q) = false, want true", tok)
		}
	}
}

func TestIsSizeNumeralFollowedByUnit(t *testing.T) {
	tokens := []string{"coca", "2", "litros"}
	if !IsSizeNumeral(tokens, 1) {
		t.Error("'2' before 'litros' should be a size numeral")
	}
	tokens = []string{"2", "cocas"}
	if IsSizeNumeral(tokens, 0) {
		t.Error("'2' before 'cocas' should not be a size numeral")
	}
}

func TestQuantityAtSkipsSizes(t *testing.T) {
	tokens := []string{"2", "cocas", "2l"}
	if v, ok := QuantityAt(tokens, 0); !ok || v != 2 {
		t.Errorf("QuantityAt(0) = %d, %v; want 2, true", v, ok)
	}
	if _, ok := QuantityAt(tokens, 2); ok {
		t.Error("QuantityAt on '2l' should be false")
	}
}

func TestFirstQuantity(t *testing.T) {
	if v, ok := FirstQuantity([]string{"coca", "2l"}); ok {
		t.Errorf("FirstQuantity found %d in size-only tokens", v)
	}
	if v, ok := FirstQuantity([]string{"pizza", "3", "queijos"}); !ok || v != 3 {
		t.Errorf("FirstQuantity = %d, %v; want 3, true", v, ok)
	}
}

func TestIsUnit(t *testing.T) {
	if !IsUnit("ml") || !IsUnit("litros") || !IsUnit("kg") {
		t.Error("expected ml, litros, kg to be units")
	}
	if IsUnit("coca") || IsUnit("") {
		t.Error("non-units accepted")
	}
}
