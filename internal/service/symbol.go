package service

import (
	"strings"
	"unicode"
)

// NormalizeSymbol strips broker suffixes from a raw symbol: a trailing run of characters
// that are not letters or digits, then a trailing "M", repeated until neither is left.
// "EURUSD.M", "EURUSDM" and "EURUSD_" all become "EURUSD".
func NormalizeSymbol(raw string) string {
	// Alternating the two strips converges on trimming every trailing rune of either kind.
	return strings.TrimRightFunc(raw, func(r rune) bool {
		return r == 'M' || !isSymbolRune(r)
	})
}

func isSymbolRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r)
}
