// Package csvparser parses delimited statement exports into transactions
// via the header mapper.
package csvparser

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"fjacquet/statement-ledger/internal/headermap"
	"fjacquet/statement-ledger/internal/logging"
	"fjacquet/statement-ledger/internal/models"
	"fjacquet/statement-ledger/internal/parser"
	"fjacquet/statement-ledger/internal/parsererror"
)

// candidateDelimiters are tried when sniffing; comma is the fallback when
// the delimiter cannot be detected (a non-fatal condition).
var candidateDelimiters = []rune{',', ';', '\t', '|'}

// Adapter implements parser.Parser for CSV statements.
type Adapter struct {
	parser.BaseParser
}

// NewAdapter creates a CSV statement adapter.
func NewAdapter(logger logging.Logger) *Adapter {
	return &Adapter{BaseParser: parser.NewBaseParser(logger)}
}

// Parse tokenizes the input with a sniffed delimiter, keys every row by the
// header labels, and delegates to the header mapper.
func (a *Adapter) Parse(ctx context.Context, r io.Reader, opts parser.Options) ([]models.Transaction, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading CSV statement: %w", err)
	}

	delimiter, detected := sniffDelimiter(data)
	if !detected {
		// Undetectable delimiter is a tokenizer diagnostic, not an error.
		a.Logger().Debug("Could not detect CSV delimiter, assuming comma",
			logging.Field{Key: "file", Value: opts.FileName})
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, &parsererror.ParseError{
			Parser: "CSV",
			Field:  "rows",
			Value:  opts.FileName,
			Err:    err,
		}
	}
	if len(rows) < 2 {
		return nil, &parsererror.InvalidFormatError{
			File:           opts.FileName,
			ExpectedFormat: "CSV with header row",
			Msg:            "file has no data rows",
		}
	}

	headers := rows[0]
	records := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		record := make(map[string]string, len(headers))
		for i, header := range headers {
			if i < len(row) {
				record[header] = row[i]
			}
		}
		records = append(records, record)
	}

	transactions, err := headermap.MapRows(headers, records)
	if err != nil {
		return nil, &parsererror.InvalidFormatError{
			File:           opts.FileName,
			ExpectedFormat: "bank statement CSV",
			Msg:            err.Error(),
		}
	}

	a.Logger().Info("Parsed CSV statement",
		logging.Field{Key: "file", Value: opts.FileName},
		logging.Field{Key: "delimiter", Value: string(delimiter)},
		logging.Field{Key: "count", Value: len(transactions)})

	return transactions, nil
}

// sniffDelimiter inspects the first line and picks the candidate occurring
// most often. The second result is false when nothing occurs at all.
func sniffDelimiter(data []byte) (rune, bool) {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	if !scanner.Scan() {
		return ',', false
	}
	firstLine := scanner.Text()

	best := ','
	bestCount := 0
	for _, candidate := range candidateDelimiters {
		if count := strings.Count(firstLine, string(candidate)); count > bestCount {
			best = candidate
			bestCount = count
		}
	}
	return best, bestCount > 0
}
