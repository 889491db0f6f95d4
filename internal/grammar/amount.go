// Package grammar classifies inbound chat messages into typed commands.
//
// The grammar is informal Indonesian: bare numbers with magnitude shorthand
// ("50rb", "1.5jt"), sign prefixes, and a handful of verb keywords.
package grammar

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// Magnitude shorthand, longest match first. "m" deliberately collides with
// "jt" on a million; it has never meant "ribu" in this grammar.
var multipliers = map[string]int64{
	"juta": 1_000_000,
	"jt":   1_000_000,
	"m":    1_000_000,
	"ribu": 1_000,
	"rb":   1_000,
	"k":    1_000,
}

// amountPattern matches a normalized amount token: a plain decimal numeral
// followed by an optional magnitude suffix. Longer suffixes come first so
// "juta" is not split into "jut"+"a".
var amountPattern = regexp.MustCompile(`^(\d+(?:\.\d+)?)(juta|ribu|jt|rb|k|m)?$`)

// ParseAmount converts a numeric token with optional Indonesian magnitude
// shorthand into a whole-rupiah amount. It reports false for anything that
// is not a well-formed, non-negative amount: parsing failures never produce
// a value.
//
// Normalization: lowercase, internal whitespace stripped, comma treated as
// the decimal separator ("1,5jt" == "1.5jt"). Fractional results round
// half away from zero, so "1.5rb" is 1500 and "0.5k" is 500.
func ParseAmount(token string) (int64, bool) {
	normalized := normalizeToken(token)
	if normalized == "" {
		return 0, false
	}

	match := amountPattern.FindStringSubmatch(normalized)
	if match == nil {
		return 0, false
	}

	value, err := decimal.NewFromString(match[1])
	if err != nil {
		return 0, false
	}

	multiplier := int64(1)
	if match[2] != "" {
		multiplier = multipliers[match[2]]
	}

	result := value.Mul(decimal.NewFromInt(multiplier)).Round(0)
	if result.IsNegative() {
		return 0, false
	}

	return result.IntPart(), true
}

func normalizeToken(token string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(token) {
		switch {
		case unicode.IsSpace(r):
			// "1 jt" and "1jt" are the same token
		case r == ',':
			b.WriteRune('.')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
