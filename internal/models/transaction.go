// Package models provides the data structures shared across the ingestion
// pipeline, the categorization engine and the ledger store.
package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Transaction is one normalized ledger entry. Exactly one of Debit/Credit is
// set and positive on every finished transaction; records that cannot satisfy
// that invariant are dropped before they reach the categorizer.
type Transaction struct {
	ID          string           `csv:"ID" yaml:"id"`
	Date        string           `csv:"Date" yaml:"date"` // ISO calendar date, YYYY-MM-DD
	Description string           `csv:"Description" yaml:"description"`
	Debit       *decimal.Decimal `csv:"Debit" yaml:"debit,omitempty"`
	Credit      *decimal.Decimal `csv:"Credit" yaml:"credit,omitempty"`
	Category    string           `csv:"Category" yaml:"category"`
	SourceFile  string           `csv:"Source File" yaml:"sourceFile"`
}

// IsDebit reports whether the transaction is an outgoing amount.
func (t *Transaction) IsDebit() bool {
	return t.Debit != nil
}

// IsCredit reports whether the transaction is an incoming amount.
func (t *Transaction) IsCredit() bool {
	return t.Credit != nil
}

// Type returns "debit" or "credit" depending on which amount is set.
func (t *Transaction) Type() string {
	if t.IsDebit() {
		return "debit"
	}
	return "credit"
}

// Amount returns whichever of Debit/Credit is set, or zero.
func (t *Transaction) Amount() decimal.Decimal {
	if t.Debit != nil {
		return *t.Debit
	}
	if t.Credit != nil {
		return *t.Credit
	}
	return decimal.Zero
}

// SetDebit sets the debit side and clears the credit side.
func (t *Transaction) SetDebit(amount decimal.Decimal) {
	t.Debit = &amount
	t.Credit = nil
}

// SetCredit sets the credit side and clears the debit side.
func (t *Transaction) SetCredit(amount decimal.Decimal) {
	t.Credit = &amount
	t.Debit = nil
}

// Validate checks the finished-transaction invariant: a parseable date, a
// non-empty description, and exactly one positive amount.
func (t *Transaction) Validate() error {
	if t.Date == "" {
		return fmt.Errorf("transaction has no date")
	}
	if strings.TrimSpace(t.Description) == "" {
		return fmt.Errorf("transaction has no description")
	}
	if t.Debit == nil && t.Credit == nil {
		return fmt.Errorf("transaction has neither debit nor credit")
	}
	if t.Debit != nil && t.Credit != nil {
		return fmt.Errorf("transaction has both debit and credit")
	}
	if t.Debit != nil && !t.Debit.IsPositive() {
		return fmt.Errorf("debit amount must be positive, got %s", t.Debit)
	}
	if t.Credit != nil && !t.Credit.IsPositive() {
		return fmt.Errorf("credit amount must be positive, got %s", t.Credit)
	}
	return nil
}
