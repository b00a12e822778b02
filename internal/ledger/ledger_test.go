package ledger

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/statement-ledger/internal/categorizer"
	"fjacquet/statement-ledger/internal/identity"
	"fjacquet/statement-ledger/internal/logging"
	"fjacquet/statement-ledger/internal/models"
	"fjacquet/statement-ledger/internal/store"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	st, err := store.NewFileStore(t.TempDir(), logging.NewMockLogger())
	require.NoError(t, err)
	return NewService(st, logging.NewMockLogger())
}

func debitTx(date, description, category string) models.Transaction {
	amount := decimal.RequireFromString("450.00")
	tx := models.Transaction{
		Date:        date,
		Description: description,
		Debit:       &amount,
		Category:    category,
		SourceFile:  "stmt.csv",
	}
	tx.ID = identity.Hash(&tx)
	return tx
}

func TestUpsertTransactionsIsIdempotent(t *testing.T) {
	svc := newTestService(t)
	batch := []models.Transaction{
		debitTx("2024-02-01", "ZOMATO ORDER", "Food"),
		debitTx("2024-02-02", "UBER RIDE", "Transport"),
	}

	require.NoError(t, svc.UpsertTransactions(batch))
	require.NoError(t, svc.UpsertTransactions(batch))

	all, err := svc.Transactions()
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestReplaceTransaction(t *testing.T) {
	svc := newTestService(t)
	original := debitTx("2024-02-01", "ZOMATO ORDER", "Food")
	require.NoError(t, svc.UpsertTransactions([]models.Transaction{original}))

	edited := original
	edited.Description = "ZOMATO ORDER FIXED"
	newID, err := svc.ReplaceTransaction(original.ID, edited)
	require.NoError(t, err)
	assert.NotEqual(t, original.ID, newID)

	all, err := svc.Transactions()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, newID, all[0].ID)
	assert.Equal(t, "ZOMATO ORDER FIXED", all[0].Description)
}

func TestReplaceTransactionValidates(t *testing.T) {
	svc := newTestService(t)
	bad := models.Transaction{Date: "2024-02-01"}
	_, err := svc.ReplaceTransaction("whatever", bad)
	assert.Error(t, err)
}

func TestSetCustomRule(t *testing.T) {
	svc := newTestService(t)

	require.NoError(t, svc.SetCustomRule("ZOMATO ORDER", "Eating Out", models.RuleSourceManual))
	require.NoError(t, svc.SetCustomRule("ZOMATO ORDER", "Food", models.RuleSourceAISuggestion))

	rules, err := svc.CustomRules()
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, "Food", rules[0].Category)
	assert.Equal(t, models.RuleSourceAISuggestion, rules[0].Source)

	assert.Error(t, svc.SetCustomRule("", "Food", models.RuleSourceManual))
	assert.Error(t, svc.SetCustomRule("X", "", models.RuleSourceManual))
}

func TestCategoriesMergeBuiltinAndStored(t *testing.T) {
	svc := newTestService(t)

	require.NoError(t, svc.AddCategory("Eating Out"))
	names, err := svc.Categories()
	require.NoError(t, err)
	assert.Contains(t, names, "Food")
	assert.Contains(t, names, "Eating Out")
	assert.Contains(t, names, models.CategoryOtherIncome)
}

func TestDeleteCategoryCascades(t *testing.T) {
	svc := newTestService(t)

	require.NoError(t, svc.AddCategory("Eating Out"))
	require.NoError(t, svc.SetCustomRule("ZOMATO ORDER", "Eating Out", models.RuleSourceManual))
	require.NoError(t, svc.UpsertTransactions([]models.Transaction{
		debitTx("2024-02-01", "ZOMATO ORDER", "Eating Out"),
		debitTx("2024-02-02", "UBER RIDE", "Transport"),
	}))

	require.NoError(t, svc.DeleteCategory("Eating Out"))

	all, err := svc.Transactions()
	require.NoError(t, err)
	require.Len(t, all, 2)
	for _, tx := range all {
		if tx.Description == "ZOMATO ORDER" {
			assert.Equal(t, models.CategoryOtherExpense, tx.Category)
		} else {
			assert.Equal(t, "Transport", tx.Category)
		}
	}

	rules, err := svc.CustomRules()
	require.NoError(t, err)
	assert.Empty(t, rules)

	names, err := svc.Categories()
	require.NoError(t, err)
	assert.NotContains(t, names, "Eating Out")
}

func TestRecategorizeAll(t *testing.T) {
	svc := newTestService(t)

	require.NoError(t, svc.UpsertTransactions([]models.Transaction{
		debitTx("2024-02-01", "MYSTERY CHARGE", models.CategoryOtherExpense),
	}))
	require.NoError(t, svc.AddCategory("Subscriptions"))
	require.NoError(t, svc.SetCustomRule("MYSTERY CHARGE", "Subscriptions", models.RuleSourceManual))

	changed, err := svc.RecategorizeAll()
	require.NoError(t, err)
	assert.Equal(t, 1, changed)

	all, err := svc.Transactions()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Subscriptions", all[0].Category)

	changed, err = svc.RecategorizeAll()
	require.NoError(t, err)
	assert.Equal(t, 0, changed)
}

func TestApplySuggestions(t *testing.T) {
	svc := newTestService(t)

	tx := debitTx("2024-02-01", "MYSTERY CHARGE", models.CategoryOtherExpense)
	require.NoError(t, svc.UpsertTransactions([]models.Transaction{tx}))
	require.NoError(t, svc.AddCategory("Subscriptions"))

	applied, err := svc.ApplySuggestions([]categorizer.Suggestion{
		{ID: tx.ID, SuggestedCategory: "Subscriptions", Reasoning: "recurring charge"},
		{ID: tx.ID, SuggestedCategory: "Not A Real Category"},
		{ID: "missing", SuggestedCategory: "Subscriptions"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, applied)

	all, err := svc.Transactions()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Subscriptions", all[0].Category)

	rules, err := svc.CustomRules()
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, models.RuleSourceAISuggestion, rules[0].Source)
}

func TestExportCSV(t *testing.T) {
	svc := newTestService(t)
	require.NoError(t, svc.UpsertTransactions([]models.Transaction{
		debitTx("2024-02-01", "ZOMATO, DELIVERY", "Food"),
	}))

	var buf bytes.Buffer
	require.NoError(t, svc.ExportCSV(&buf))

	out := buf.String()
	assert.Contains(t, out, "ID,Date,Description,Debit,Credit,Category,Source File")
	assert.Contains(t, out, `"ZOMATO, DELIVERY"`)
	assert.Contains(t, out, "450")
}

func TestExportCSVEmptyLedger(t *testing.T) {
	svc := newTestService(t)
	var buf bytes.Buffer
	require.NoError(t, svc.ExportCSV(&buf))
	assert.Contains(t, buf.String(), "ID,Date,Description")
}
