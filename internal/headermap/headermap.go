// Package headermap maps arbitrary column header labels from row-record
// sources (CSV, XLSX, XLS) to the canonical transaction fields.
package headermap

import (
	"fmt"
	"regexp"
	"strings"

	"fjacquet/statement-ledger/internal/amountutils"
	"fjacquet/statement-ledger/internal/dateutils"
	"fjacquet/statement-ledger/internal/models"
)

// fieldAliases holds ordered lowercase substring aliases per canonical
// field. The alias table is data, not logic: new bank labels are added
// here and nowhere else.
var fieldAliases = map[string][]string{
	"date":        {"txn date", "transaction date", "value date", "date"},
	"description": {"description", "narration", "particulars", "details", "remarks"},
	"debit":       {"withdrawal", "debit", "dr amount", "paid out", "money out"},
	"credit":      {"deposit", "credit", "cr amount", "paid in", "money in"},
	"amount":      {"amount", "value"},
}

var collapseSpace = regexp.MustCompile(`\s+`)

// Mapping records which raw header feeds each canonical field. Empty
// strings mean the source has no such column.
type Mapping struct {
	Date        string
	Description string
	Debit       string
	Credit      string
	Amount      string
}

// HasSplitAmounts reports whether the source carries separate debit and
// credit columns rather than one combined amount column.
func (m Mapping) HasSplitAmounts() bool {
	return m.Debit != "" || m.Credit != ""
}

// MapHeaders resolves raw headers to a Mapping. For each canonical field
// the ordered alias list is tried against the lowercased, trimmed headers;
// the first header containing an alias becomes that field's source column.
func MapHeaders(headers []string) (Mapping, error) {
	find := func(field string) string {
		for _, alias := range fieldAliases[field] {
			for _, header := range headers {
				if strings.Contains(strings.ToLower(strings.TrimSpace(header)), alias) {
					return header
				}
			}
		}
		return ""
	}

	m := Mapping{
		Date:        find("date"),
		Description: find("description"),
		Debit:       find("debit"),
		Credit:      find("credit"),
	}
	if !m.HasSplitAmounts() {
		m.Amount = find("amount")
	}

	if m.Date == "" {
		return Mapping{}, fmt.Errorf("no date column found in headers %v", headers)
	}
	if m.Description == "" {
		return Mapping{}, fmt.Errorf("no description column found in headers %v", headers)
	}
	if !m.HasSplitAmounts() && m.Amount == "" {
		return Mapping{}, fmt.Errorf("no amount-bearing column (debit/credit or amount) found in headers %v", headers)
	}
	return m, nil
}

// MapRows converts field-keyed records into transactions using the header
// mapping inferred from the first record's keys. Rows that fail the
// required-field checks are dropped silently: partially readable
// statements are normal and individual bad rows are not errors.
func MapRows(headers []string, records []map[string]string) ([]models.Transaction, error) {
	if len(records) == 0 {
		return nil, nil
	}

	mapping, err := MapHeaders(headers)
	if err != nil {
		return nil, err
	}

	var transactions []models.Transaction
	for _, record := range records {
		tx, ok := mapRow(mapping, record)
		if !ok {
			continue
		}
		transactions = append(transactions, tx)
	}
	return transactions, nil
}

func mapRow(mapping Mapping, record map[string]string) (models.Transaction, bool) {
	date, ok := dateutils.Normalize(record[mapping.Date])
	if !ok {
		return models.Transaction{}, false
	}

	description := collapseSpace.ReplaceAllString(strings.TrimSpace(record[mapping.Description]), " ")

	tx := models.Transaction{Date: date, Description: description}

	if mapping.HasSplitAmounts() {
		if amount, ok := amountutils.Normalize(record[mapping.Debit]); ok {
			tx.Debit = &amount
		}
		if amount, ok := amountutils.Normalize(record[mapping.Credit]); ok {
			tx.Credit = &amount
		}
	} else {
		raw := record[mapping.Amount]
		amount, ok := amountutils.Normalize(raw)
		if !ok {
			return models.Transaction{}, false
		}
		// Side is inferred from the raw text of the combined column.
		if amountutils.IsDebitHint(raw) {
			tx.Debit = &amount
		} else {
			tx.Credit = &amount
		}
	}

	if err := tx.Validate(); err != nil {
		return models.Transaction{}, false
	}
	return tx, true
}
