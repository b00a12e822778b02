package textparser

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/statement-ledger/internal/logging"
	"fjacquet/statement-ledger/internal/parser"
	"fjacquet/statement-ledger/internal/parsererror"
)

const sampleStatement = `ACME BANK
Statement for account 1234

Date         Description                  Debit      Credit
01/02/2024   ZOMATO ORDER                 450.00
ref:12345
02/02/2024   SALARY CREDIT                           75000.00
`

func TestParse(t *testing.T) {
	adapter := NewAdapter(logging.NewMockLogger())

	transactions, err := adapter.Parse(context.Background(), strings.NewReader(sampleStatement), parser.Options{FileName: "statement.txt"})
	require.NoError(t, err)
	require.Len(t, transactions, 2)

	assert.Equal(t, "2024-02-01", transactions[0].Date)
	assert.Equal(t, "ZOMATO ORDER ref:12345", transactions[0].Description)
	require.NotNil(t, transactions[0].Debit)
	assert.Equal(t, "450", transactions[0].Debit.String())

	assert.Equal(t, "2024-02-02", transactions[1].Date)
	require.NotNil(t, transactions[1].Credit)
	assert.Equal(t, "75000", transactions[1].Credit.String())
}

func TestParseNoHeader(t *testing.T) {
	adapter := NewAdapter(logging.NewMockLogger())

	_, err := adapter.Parse(context.Background(), strings.NewReader("just some\nprose text\n"), parser.Options{FileName: "notes.txt"})
	require.Error(t, err)

	var invalid *parsererror.InvalidFormatError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "notes.txt", invalid.File)
}

func TestSplitLines(t *testing.T) {
	lines := SplitLines("first\r\n\r\n  second  \nthird\n\n")
	assert.Equal(t, []string{"first", "second", "third"}, lines)
}
