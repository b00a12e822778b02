// Package amountutils normalizes raw monetary tokens from bank statements.
// Sign is never taken from the numeric value; the debit/credit column a
// token came from decides the side of the ledger.
package amountutils

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// symbolStrip removes currency symbols, codes and separators commonly seen
// in statement exports. Thousands separators (comma and apostrophe) go too.
var symbolStrip = strings.NewReplacer(
	"₹", "",
	"$", "",
	"€", "",
	"£", "",
	"Rs.", "",
	"Rs", "",
	"INR", "",
	"CHF", "",
	"EUR", "",
	"USD", "",
	",", "",
	"'", "",
	" ", "",
)

var trailingSide = regexp.MustCompile(`(?i)\s*(cr|dr)\.?$`)

// Normalize converts a raw amount token to a positive decimal. The second
// result is false when the token carries no amount (empty, lone "-", or
// unparseable text).
func Normalize(raw string) (decimal.Decimal, bool) {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" || cleaned == "-" {
		return decimal.Zero, false
	}

	cleaned = trailingSide.ReplaceAllString(cleaned, "")
	cleaned = symbolStrip.Replace(cleaned)
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" || cleaned == "-" {
		return decimal.Zero, false
	}

	dec, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, false
	}
	return dec.Abs(), true
}

// IsDebitHint decides the ledger side for statements that carry a single
// combined amount column: a minus sign or a "dr" token marks a debit,
// anything else is treated as a credit. This mirrors how the supported
// banks print combined columns; some banks record credits as negative
// numbers and would be misread, so changes here need statement fixtures.
func IsDebitHint(raw string) bool {
	if strings.Contains(raw, "-") {
		return true
	}
	return strings.Contains(strings.ToLower(raw), "dr")
}
