package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/statement-ledger/internal/logging"
	"fjacquet/statement-ledger/internal/models"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	st, err := NewFileStore(t.TempDir(), logging.NewMockLogger())
	require.NoError(t, err)
	return st
}

func testTx(id, date, description string) models.Transaction {
	amount := decimal.RequireFromString("100")
	return models.Transaction{
		ID:          id,
		Date:        date,
		Description: description,
		Debit:       &amount,
		Category:    "Food",
		SourceFile:  "stmt.csv",
	}
}

func TestTransactionRoundTrip(t *testing.T) {
	st := newTestStore(t)

	tx := testTx("abc", "2024-02-01", "ZOMATO ORDER")
	require.NoError(t, st.PutTransaction(tx))

	got, ok, err := st.GetTransaction("abc")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "ZOMATO ORDER", got.Description)
	require.NotNil(t, got.Debit)
	assert.True(t, got.Debit.Equal(decimal.RequireFromString("100")))

	_, ok, err = st.GetTransaction("missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPutTransactionOverwrites(t *testing.T) {
	st := newTestStore(t)

	require.NoError(t, st.PutTransaction(testTx("abc", "2024-02-01", "FIRST")))
	require.NoError(t, st.PutTransaction(testTx("abc", "2024-02-01", "SECOND")))

	all, err := st.AllTransactions()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "SECOND", all[0].Description)
}

func TestPutTransactionRequiresID(t *testing.T) {
	st := newTestStore(t)
	err := st.PutTransaction(testTx("", "2024-02-01", "NO ID"))
	assert.Error(t, err)
}

func TestAllTransactionsSorted(t *testing.T) {
	st := newTestStore(t)

	require.NoError(t, st.PutTransactions([]models.Transaction{
		testTx("b", "2024-02-02", "LATER"),
		testTx("a", "2024-02-01", "EARLIER"),
	}))

	all, err := st.AllTransactions()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "EARLIER", all[0].Description)
	assert.Equal(t, "LATER", all[1].Description)
}

func TestDeleteTransaction(t *testing.T) {
	st := newTestStore(t)

	require.NoError(t, st.PutTransaction(testTx("abc", "2024-02-01", "X")))
	require.NoError(t, st.DeleteTransaction("abc"))
	require.NoError(t, st.DeleteTransaction("abc")) // idempotent

	_, ok, err := st.GetTransaction("abc")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCustomRuleKeyIsCaseInsensitive(t *testing.T) {
	st := newTestStore(t)

	require.NoError(t, st.PutCustomRule(models.CustomRule{
		Description: "Zomato Order",
		Category:    "Eating Out",
		Source:      models.RuleSourceManual,
	}))

	got, ok, err := st.GetCustomRule("  ZOMATO ORDER ")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Eating Out", got.Category)

	// Same description, different case, overwrites.
	require.NoError(t, st.PutCustomRule(models.CustomRule{
		Description: "ZOMATO ORDER",
		Category:    "Food",
	}))
	rules, err := st.AllCustomRules()
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, "Food", rules[0].Category)
}

func TestDeleteCustomRulesByCategory(t *testing.T) {
	st := newTestStore(t)

	require.NoError(t, st.PutCustomRule(models.CustomRule{Description: "A", Category: "Eating Out"}))
	require.NoError(t, st.PutCustomRule(models.CustomRule{Description: "B", Category: "Eating Out"}))
	require.NoError(t, st.PutCustomRule(models.CustomRule{Description: "C", Category: "Transport"}))

	removed, err := st.DeleteCustomRulesByCategory("Eating Out")
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	rules, err := st.AllCustomRules()
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, "C", rules[0].Description)
}

func TestCategories(t *testing.T) {
	st := newTestStore(t)

	require.NoError(t, st.PutCategory(models.Category{Name: "Eating Out"}))
	require.NoError(t, st.PutCategory(models.Category{Name: "Eating Out"})) // dedup
	require.NoError(t, st.PutCategory(models.Category{Name: "Travel"}))

	categories, err := st.AllCategories()
	require.NoError(t, err)
	assert.Len(t, categories, 2)

	require.NoError(t, st.DeleteCategory("Eating Out"))
	categories, err = st.AllCategories()
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, "Travel", categories[0].Name)
}

func TestPersistenceAcrossInstances(t *testing.T) {
	dir := t.TempDir()
	logger := logging.NewMockLogger()

	first, err := NewFileStore(dir, logger)
	require.NoError(t, err)
	require.NoError(t, first.PutTransaction(testTx("abc", "2024-02-01", "PERSISTED")))

	second, err := NewFileStore(dir, logger)
	require.NoError(t, err)
	got, ok, err := second.GetTransaction("abc")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "PERSISTED", got.Description)
}

func TestClearAll(t *testing.T) {
	st := newTestStore(t)

	require.NoError(t, st.PutTransaction(testTx("abc", "2024-02-01", "X")))
	require.NoError(t, st.PutCustomRule(models.CustomRule{Description: "A", Category: "B"}))
	require.NoError(t, st.ClearAll())

	all, err := st.AllTransactions()
	require.NoError(t, err)
	assert.Empty(t, all)
	rules, err := st.AllCustomRules()
	require.NoError(t, err)
	assert.Empty(t, rules)
}

func TestCorruptFileSurfacesError(t *testing.T) {
	dir := t.TempDir()
	st, err := NewFileStore(dir, logging.NewMockLogger())
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "transactions.yaml"), []byte("{not yaml"), 0o600))
	_, err = st.AllTransactions()
	assert.Error(t, err)
}
