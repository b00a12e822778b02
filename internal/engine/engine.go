// Package engine orchestrates a batch ingest: it fans files out to their
// format adapters, runs categorization and identity assignment on the
// results, and reports per-file status while keeping failures isolated.
package engine

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"fjacquet/statement-ledger/internal/categorizer"
	"fjacquet/statement-ledger/internal/factory"
	"fjacquet/statement-ledger/internal/identity"
	"fjacquet/statement-ledger/internal/logging"
	"fjacquet/statement-ledger/internal/models"
	"fjacquet/statement-ledger/internal/parser"
	"fjacquet/statement-ledger/internal/parsererror"
)

// MaxBatchSize is the largest number of files accepted in one Ingest call.
const MaxBatchSize = 5

// Status values reported through the StatusCallback. A file moves through
// parsing, possibly password, and ends in exactly one terminal status.
const (
	StatusParsing  = "parsing"
	StatusPassword = "password"
	StatusSuccess  = "success"
	StatusError    = "error"
	StatusSkipped  = "skipped"
)

// Event is one per-file status transition.
type Event struct {
	BatchID string
	File    string
	Status  string
	Message string
	Count   int
}

// StatusCallback receives status events as the batch progresses. It may be
// called concurrently from per-file workers.
type StatusCallback func(Event)

// FileInput is one file submitted to a batch. Content is read eagerly by
// the caller so the engine never touches the filesystem.
type FileInput struct {
	Name   string
	Reader io.Reader
}

// FileError records which file failed and why.
type FileError struct {
	File string
	Err  error
}

func (e FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.File, e.Err)
}

func (e FileError) Unwrap() error { return e.Err }

// Result aggregates a batch run. Transactions come from the files that
// succeeded; Errors and Skipped list the ones that did not.
type Result struct {
	BatchID      string
	Transactions []models.Transaction
	Errors       []FileError
	Skipped      []string
}

// Engine runs ingest batches.
type Engine struct {
	rules  categorizer.RuleSet
	logger logging.Logger
}

// New creates an engine with a snapshot of the custom rules. The snapshot
// is taken once; rule edits during a running batch do not affect it.
func New(rules categorizer.RuleSet, logger logging.Logger) *Engine {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Engine{rules: rules, logger: logger}
}

// Ingest processes up to MaxBatchSize files concurrently. Each file is
// parsed, categorized and identity-hashed in isolation: a failure in one
// file never affects its siblings. Batches over the limit are rejected
// outright with no file processed.
func (e *Engine) Ingest(ctx context.Context, files []FileInput, password parser.PasswordProvider, status StatusCallback) (Result, error) {
	result := Result{BatchID: uuid.New().String()}
	if len(files) == 0 {
		return result, nil
	}
	if len(files) > MaxBatchSize {
		return result, fmt.Errorf("batch of %d files exceeds the limit of %d", len(files), MaxBatchSize)
	}
	if status == nil {
		status = func(Event) {}
	}

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	for _, file := range files {
		wg.Add(1)
		go func(file FileInput) {
			defer wg.Done()
			transactions, err := e.processFile(ctx, file, password, result.BatchID, status)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				result.Transactions = append(result.Transactions, transactions...)
			case parsererror.IsUnsupportedFormat(err):
				result.Skipped = append(result.Skipped, file.Name)
			default:
				result.Errors = append(result.Errors, FileError{File: file.Name, Err: err})
			}
		}(file)
	}
	wg.Wait()

	e.logger.WithFields(
		logging.Field{Key: "batch_id", Value: result.BatchID},
		logging.Field{Key: "files", Value: len(files)},
		logging.Field{Key: "transactions", Value: len(result.Transactions)},
		logging.Field{Key: "errors", Value: len(result.Errors)},
		logging.Field{Key: "skipped", Value: len(result.Skipped)},
	).Info("batch finished")
	return result, nil
}

// processFile runs one file through its adapter. Panics in an adapter are
// recovered and reported as that file's error.
func (e *Engine) processFile(ctx context.Context, file FileInput, password parser.PasswordProvider, batchID string, status StatusCallback) (transactions []models.Transaction, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("parser panicked: %v", r)
			e.logger.WithField("file", file.Name).Error("recovered from parser panic")
		}
		if err != nil {
			if parsererror.IsUnsupportedFormat(err) {
				status(Event{BatchID: batchID, File: file.Name, Status: StatusSkipped, Message: err.Error()})
			} else {
				status(Event{BatchID: batchID, File: file.Name, Status: StatusError, Message: err.Error()})
			}
		}
	}()

	p, err := factory.ForFile(file.Name, e.logger)
	if err != nil {
		e.logger.WithField("file", file.Name).WithError(err).Warn("skipping unsupported file")
		return nil, err
	}

	status(Event{BatchID: batchID, File: file.Name, Status: StatusParsing})
	opts := parser.Options{
		FileName: file.Name,
		Password: password,
		OnPasswordPrompt: func() {
			status(Event{BatchID: batchID, File: file.Name, Status: StatusPassword})
		},
	}
	transactions, err = p.Parse(ctx, file.Reader, opts)
	if err != nil {
		return nil, err
	}

	sourceFile := filepath.Base(file.Name)
	for i := range transactions {
		transactions[i].SourceFile = sourceFile
	}
	categorizer.Apply(transactions, e.rules)
	identity.Assign(transactions)

	message := ""
	if len(transactions) == 0 {
		message = "no transactions found"
	}
	status(Event{BatchID: batchID, File: file.Name, Status: StatusSuccess, Message: message, Count: len(transactions)})
	return transactions, nil
}
