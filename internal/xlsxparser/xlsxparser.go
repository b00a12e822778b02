// Package xlsxparser parses XLSX workbook statements. Only the first sheet
// is read; rows are keyed by the header row and fed to the header mapper.
package xlsxparser

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"fjacquet/statement-ledger/internal/headermap"
	"fjacquet/statement-ledger/internal/logging"
	"fjacquet/statement-ledger/internal/models"
	"fjacquet/statement-ledger/internal/parser"
	"fjacquet/statement-ledger/internal/parsererror"
)

// headerScanRows bounds the preamble scan: statements often carry account
// metadata above the real header row.
const headerScanRows = 20

// Adapter implements parser.Parser for XLSX statements.
type Adapter struct {
	parser.BaseParser
}

// NewAdapter creates an XLSX statement adapter.
func NewAdapter(logger logging.Logger) *Adapter {
	return &Adapter{BaseParser: parser.NewBaseParser(logger)}
}

// Parse reads the first sheet, finds the header row, and maps all rows
// beneath it.
func (a *Adapter) Parse(ctx context.Context, r io.Reader, opts parser.Options) ([]models.Transaction, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading XLSX statement: %w", err)
	}

	workbook, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, &parsererror.InvalidFormatError{
			File:           opts.FileName,
			ExpectedFormat: "XLSX workbook",
			Msg:            err.Error(),
		}
	}
	defer func() {
		if err := workbook.Close(); err != nil {
			a.Logger().WithError(err).Warn("Failed to close workbook",
				logging.Field{Key: "file", Value: opts.FileName})
		}
	}()

	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		return nil, &parsererror.InvalidFormatError{
			File:           opts.FileName,
			ExpectedFormat: "XLSX workbook",
			Msg:            "workbook has no sheets",
		}
	}

	rows, err := workbook.GetRows(sheets[0])
	if err != nil {
		return nil, &parsererror.ParseError{
			Parser: "XLSX",
			Field:  "rows",
			Value:  opts.FileName,
			Err:    err,
		}
	}

	transactions, err := MapSheetRows(opts.FileName, rows)
	if err != nil {
		return nil, err
	}

	a.Logger().Info("Parsed XLSX statement",
		logging.Field{Key: "file", Value: opts.FileName},
		logging.Field{Key: "sheet", Value: sheets[0]},
		logging.Field{Key: "count", Value: len(transactions)})

	return transactions, nil
}

// MapSheetRows locates the header row within the preamble scan window and
// maps everything beneath it. Shared with the legacy XLS adapter.
func MapSheetRows(fileName string, rows [][]string) ([]models.Transaction, error) {
	headerIdx := -1
	var headers []string
	for i, row := range rows {
		if i >= headerScanRows {
			break
		}
		if _, err := headermap.MapHeaders(row); err == nil {
			headerIdx = i
			headers = row
			break
		}
	}
	if headerIdx < 0 {
		return nil, &parsererror.InvalidFormatError{
			File:           fileName,
			ExpectedFormat: "spreadsheet statement",
			Msg:            "no header row with date, description and an amount column found",
		}
	}

	records := make([]map[string]string, 0, len(rows)-headerIdx-1)
	for _, row := range rows[headerIdx+1:] {
		record := make(map[string]string, len(headers))
		for i, header := range headers {
			if i < len(row) {
				record[header] = row[i]
			}
		}
		records = append(records, record)
	}

	return headermap.MapRows(headers, records)
}
