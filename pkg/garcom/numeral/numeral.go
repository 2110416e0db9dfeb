// Package numeral recognizes quantity numerals in normalized Portuguese
// order messages and tells them apart from size/volume numerals, so that
// "2 pequenas" reads as quantity two while the "2" in "coca 2l" stays part
// of the size descriptor.
package numeral

import "strconv"

// cardinals maps spelled-out Portuguese cardinals to their values.
// Keys are accent-stripped, matching message.Normalize output.
var cardinals = map[string]int{
	"um":        1,
	"uma":       1,
	"dois":      2,
	"duas":      2,
	"tres":      3,
	"quatro":    4,
	"cinco":     5,
	"seis":      6,
	"sete":      7,
	"oito":      8,
	"nove":      9,
	"dez":       10,
	"onze":      11,
	"doze":      12,
	"treze":     13,
	"quatorze":  14,
	"catorze":   14,
	"quinze":    15,
	"dezesseis": 16,
	"dezessete": 17,
	"dezoito":   18,
	"dezenove":  19,
	"vinte":     20,
}

// units holds volume/weight unit tokens. A numeral fused with or followed
// by one of these describes a product size, never a quantity.
var units = map[string]struct{}{
	"l":      {},
	"lt":     {},
	"lts":    {},
	"litro":  {},
	"litros": {},
	"ml":     {},
	"kg":     {},
	"g":      {},
	"gr":     {},
	"grama":  {},
	"gramas": {},
	"quilo":  {},
	"quilos": {},
	"kilo":   {},
	"kilos":  {},
}

// Value returns the numeric value of a token: a spelled cardinal or a
// digit sequence between 1 and 99.
func Value(token string) (int, bool) {
	if v, ok := cardinals[token]; ok {
		return v, true
	}
	if n, err := strconv.Atoi(token); err == nil && n >= 1 && n <= 99 {
		return n, true
	}
	return 0, false
}

// IsUnit reports whether the token is a volume or weight unit.
func IsUnit(token string) bool {
	_, ok := units[token]
	return ok
}

// IsSizeNumeral reports whether tokens[i] belongs to a size descriptor:
// either digits fused with a unit suffix ("2l", "500ml") or a digit token
// immediately followed by a unit token ("2 litros").
func IsSizeNumeral(tokens []string, i int) bool {
	if i < 0 || i >= len(tokens) {
		return false
	}
	tok := tokens[i]
	if isFusedSize(tok) {
		return true
	}
	if !isDigits(tok) {
		return false
	}
	return i+1 < len(tokens) && IsUnit(tokens[i+1])
}

// isFusedSize reports whether a token is digits immediately followed by a
// unit suffix, e.g. "2l".
func isFusedSize(tok string) bool {
	j := 0
	for j < len(tok) && tok[j] >= '0' && tok[j] <= '9' {
		j++
	}
	if j == 0 || j == len(tok) {
		return false
	}
	return IsUnit(tok[j:])
}

func isDigits(tok string) bool {
	if tok == "" {
		return false
	}
	for i := 0; i < len(tok); i++ {
		if tok[i] < '0' || tok[i] > '9' {
			return false
		}
	}
	return true
}

// QuantityAt returns the quantity value of tokens[i] when it is a pure
// quantity numeral, i.e. a numeral that is not part of a size descriptor.
func QuantityAt(tokens []string, i int) (int, bool) {
	if i < 0 || i >= len(tokens) {
		return 0, false
	}
	if IsSizeNumeral(tokens, i) {
		return 0, false
	}
	return Value(tokens[i])
}

// FirstQuantity scans tokens left to right for the first pure quantity
// numeral. Used as a fallback when a matched phrase swallowed its numeral.
func FirstQuantity(tokens []string) (int, bool) {
	for i := range tokens {
		if v, ok := QuantityAt(tokens, i); ok {
			return v, true
		}
	}
	return 0, false
}
