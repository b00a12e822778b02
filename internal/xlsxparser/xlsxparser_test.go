package xlsxparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/statement-ledger/internal/parsererror"
)

func TestMapSheetRows(t *testing.T) {
	t.Run("header after preamble rows", func(t *testing.T) {
		rows := [][]string{
			{"ACME BANK"},
			{"Account", "1234"},
			{},
			{"Date", "Description", "Debit", "Credit"},
			{"01/02/2024", "ZOMATO ORDER", "450.00", ""},
			{"02/02/2024", "SALARY", "", "75000.00"},
		}
		transactions, err := MapSheetRows("stmt.xlsx", rows)
		require.NoError(t, err)
		require.Len(t, transactions, 2)
		assert.Equal(t, "2024-02-01", transactions[0].Date)
		assert.True(t, transactions[0].IsDebit())
		assert.True(t, transactions[1].IsCredit())
	})

	t.Run("combined amount column", func(t *testing.T) {
		rows := [][]string{
			{"Date", "Description", "Amount"},
			{"01/02/2024", "CARD PAYMENT", "-450.00"},
			{"02/02/2024", "REFUND", "450.00"},
		}
		transactions, err := MapSheetRows("stmt.xlsx", rows)
		require.NoError(t, err)
		require.Len(t, transactions, 2)
		assert.True(t, transactions[0].IsDebit())
		assert.True(t, transactions[1].IsCredit())
	})

	t.Run("serial dates as text", func(t *testing.T) {
		rows := [][]string{
			{"Date", "Description", "Amount"},
			{"45323", "SPREADSHEET EXPORT", "10.00"},
		}
		transactions, err := MapSheetRows("stmt.xlsx", rows)
		require.NoError(t, err)
		require.Len(t, transactions, 1)
		assert.Equal(t, "2024-02-01", transactions[0].Date)
	})

	t.Run("no header within the scan window", func(t *testing.T) {
		rows := make([][]string, 0, 22)
		for i := 0; i < 21; i++ {
			rows = append(rows, []string{"preamble"})
		}
		rows = append(rows, []string{"Date", "Description", "Amount"})

		_, err := MapSheetRows("stmt.xlsx", rows)
		var invalid *parsererror.InvalidFormatError
		require.ErrorAs(t, err, &invalid)
	})

	t.Run("ragged rows are tolerated", func(t *testing.T) {
		rows := [][]string{
			{"Date", "Description", "Debit", "Credit"},
			{"01/02/2024", "SHORT ROW", "450.00"},
		}
		transactions, err := MapSheetRows("stmt.xlsx", rows)
		require.NoError(t, err)
		require.Len(t, transactions, 1)
	})
}
