package engine

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/statement-ledger/internal/categorizer"
	"fjacquet/statement-ledger/internal/logging"
	"fjacquet/statement-ledger/internal/models"
)

const validCSV = `Date,Description,Debit,Credit
01/02/2024,ZOMATO ORDER,450.00,
02/02/2024,SALARY,,75000.00
`

// statusRecorder collects events; the callback may run concurrently.
type statusRecorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *statusRecorder) record(event Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *statusRecorder) forFile(name string) []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Event
	for _, event := range r.events {
		if event.File == name {
			out = append(out, event)
		}
	}
	return out
}

func TestIngest(t *testing.T) {
	t.Run("successful batch", func(t *testing.T) {
		eng := New(categorizer.NewRuleSet(nil), logging.NewMockLogger())
		recorder := &statusRecorder{}

		result, err := eng.Ingest(context.Background(), []FileInput{
			{Name: "stmt.csv", Reader: strings.NewReader(validCSV)},
		}, nil, recorder.record)
		require.NoError(t, err)
		require.Len(t, result.Transactions, 2)
		assert.Empty(t, result.Errors)
		assert.Empty(t, result.Skipped)
		assert.NotEmpty(t, result.BatchID)

		for _, tx := range result.Transactions {
			assert.NotEmpty(t, tx.ID)
			assert.NotEmpty(t, tx.Category)
			assert.Equal(t, "stmt.csv", tx.SourceFile)
		}

		events := recorder.forFile("stmt.csv")
		require.Len(t, events, 2)
		assert.Equal(t, StatusParsing, events[0].Status)
		assert.Equal(t, StatusSuccess, events[1].Status)
		assert.Equal(t, 2, events[1].Count)
	})

	t.Run("partial failure leaves siblings intact", func(t *testing.T) {
		eng := New(categorizer.NewRuleSet(nil), logging.NewMockLogger())
		recorder := &statusRecorder{}

		result, err := eng.Ingest(context.Background(), []FileInput{
			{Name: "good.csv", Reader: strings.NewReader(validCSV)},
			{Name: "bad.csv", Reader: strings.NewReader("not,a,statement\n1,2,3\n")},
			{Name: "notes.docx", Reader: strings.NewReader("word doc")},
		}, nil, recorder.record)
		require.NoError(t, err)

		assert.Len(t, result.Transactions, 2)
		require.Len(t, result.Errors, 1)
		assert.Equal(t, "bad.csv", result.Errors[0].File)
		assert.Equal(t, []string{"notes.docx"}, result.Skipped)

		badEvents := recorder.forFile("bad.csv")
		require.NotEmpty(t, badEvents)
		assert.Equal(t, StatusError, badEvents[len(badEvents)-1].Status)

		docxEvents := recorder.forFile("notes.docx")
		require.Len(t, docxEvents, 1)
		assert.Equal(t, StatusSkipped, docxEvents[0].Status)
	})

	t.Run("oversized batch is rejected outright", func(t *testing.T) {
		eng := New(categorizer.NewRuleSet(nil), logging.NewMockLogger())

		files := make([]FileInput, MaxBatchSize+1)
		for i := range files {
			files[i] = FileInput{Name: "stmt.csv", Reader: strings.NewReader(validCSV)}
		}
		recorder := &statusRecorder{}
		result, err := eng.Ingest(context.Background(), files, nil, recorder.record)
		require.Error(t, err)
		assert.Empty(t, result.Transactions)
		assert.Empty(t, recorder.events)
	})

	t.Run("empty batch is a no-op", func(t *testing.T) {
		eng := New(categorizer.NewRuleSet(nil), logging.NewMockLogger())
		result, err := eng.Ingest(context.Background(), nil, nil, nil)
		require.NoError(t, err)
		assert.Empty(t, result.Transactions)
	})

	t.Run("zero transactions is success with a message", func(t *testing.T) {
		eng := New(categorizer.NewRuleSet(nil), logging.NewMockLogger())
		recorder := &statusRecorder{}

		empty := "Date,Description,Amount\nnot a date,row,\n"
		result, err := eng.Ingest(context.Background(), []FileInput{
			{Name: "empty.csv", Reader: strings.NewReader(empty)},
		}, nil, recorder.record)
		require.NoError(t, err)
		assert.Empty(t, result.Transactions)
		assert.Empty(t, result.Errors)

		events := recorder.forFile("empty.csv")
		require.Len(t, events, 2)
		assert.Equal(t, StatusSuccess, events[1].Status)
		assert.Equal(t, "no transactions found", events[1].Message)
	})

	t.Run("custom rules from the snapshot win", func(t *testing.T) {
		rules := categorizer.NewRuleSet([]models.CustomRule{
			{Description: "ZOMATO ORDER", Category: "Eating Out"},
		})
		eng := New(rules, logging.NewMockLogger())

		result, err := eng.Ingest(context.Background(), []FileInput{
			{Name: "stmt.csv", Reader: strings.NewReader(validCSV)},
		}, nil, nil)
		require.NoError(t, err)
		require.Len(t, result.Transactions, 2)
		assert.Equal(t, "Eating Out", result.Transactions[0].Category)
	})

	t.Run("re-ingesting yields identical ids", func(t *testing.T) {
		eng := New(categorizer.NewRuleSet(nil), logging.NewMockLogger())

		first, err := eng.Ingest(context.Background(), []FileInput{
			{Name: "stmt.csv", Reader: strings.NewReader(validCSV)},
		}, nil, nil)
		require.NoError(t, err)

		second, err := eng.Ingest(context.Background(), []FileInput{
			{Name: "stmt.csv", Reader: strings.NewReader(validCSV)},
		}, nil, nil)
		require.NoError(t, err)

		ids := func(transactions []models.Transaction) map[string]bool {
			set := make(map[string]bool)
			for _, tx := range transactions {
				set[tx.ID] = true
			}
			return set
		}
		assert.Equal(t, ids(first.Transactions), ids(second.Transactions))
		assert.NotEqual(t, first.BatchID, second.BatchID)
	})
}

func TestFileError(t *testing.T) {
	inner := assert.AnError
	err := FileError{File: "x.csv", Err: inner}
	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "x.csv")
}
