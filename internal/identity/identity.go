// Package identity assigns deterministic, content-derived identifiers to
// transactions so that re-importing the same statement is idempotent.
package identity

import (
	"crypto/sha1"
	"encoding/hex"
	"strings"

	"github.com/shopspring/decimal"

	"fjacquet/statement-ledger/internal/models"
)

// Assign computes and sets the id for every transaction in place.
func Assign(transactions []models.Transaction) {
	for i := range transactions {
		transactions[i].ID = Hash(&transactions[i])
	}
}

// Hash derives the transaction id as a SHA-1 digest over date, description,
// debit, credit and source file. Identical source rows always produce
// identical ids; any edit to those fields produces a new id, which is an
// accepted limitation of content addressing, not a bug.
func Hash(tx *models.Transaction) string {
	parts := []string{
		tx.Date,
		tx.Description,
		amountKey(tx.Debit),
		amountKey(tx.Credit),
		tx.SourceFile,
	}
	sum := sha1.Sum([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:])
}

func amountKey(amount *decimal.Decimal) string {
	if amount == nil {
		return ""
	}
	return amount.StringFixed(2)
}
