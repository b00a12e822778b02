// Package xlsparser parses legacy binary XLS workbook statements.
package xlsparser

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/extrame/xls"

	"fjacquet/statement-ledger/internal/logging"
	"fjacquet/statement-ledger/internal/models"
	"fjacquet/statement-ledger/internal/parser"
	"fjacquet/statement-ledger/internal/parsererror"
	"fjacquet/statement-ledger/internal/xlsxparser"
)

// Adapter implements parser.Parser for legacy XLS statements.
type Adapter struct {
	parser.BaseParser
}

// NewAdapter creates an XLS statement adapter.
func NewAdapter(logger logging.Logger) *Adapter {
	return &Adapter{BaseParser: parser.NewBaseParser(logger)}
}

// Parse reads the first sheet of the workbook and delegates row mapping to
// the shared spreadsheet path.
func (a *Adapter) Parse(ctx context.Context, r io.Reader, opts parser.Options) ([]models.Transaction, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading XLS statement: %w", err)
	}

	workbook, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, &parsererror.InvalidFormatError{
			File:           opts.FileName,
			ExpectedFormat: "XLS workbook",
			Msg:            err.Error(),
		}
	}
	if workbook.NumSheets() == 0 {
		return nil, &parsererror.InvalidFormatError{
			File:           opts.FileName,
			ExpectedFormat: "XLS workbook",
			Msg:            "workbook has no sheets",
		}
	}

	sheet := workbook.GetSheet(0)
	if sheet == nil {
		return nil, &parsererror.DataExtractionError{
			File:      opts.FileName,
			FieldName: "sheet",
			Reason:    "could not read the first sheet",
		}
	}

	rows := make([][]string, 0, int(sheet.MaxRow)+1)
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			rows = append(rows, nil)
			continue
		}
		cells := make([]string, 0, row.LastCol())
		for col := 0; col < row.LastCol(); col++ {
			cells = append(cells, row.Col(col))
		}
		rows = append(rows, cells)
	}

	transactions, err := xlsxparser.MapSheetRows(opts.FileName, rows)
	if err != nil {
		return nil, err
	}

	a.Logger().Info("Parsed XLS statement",
		logging.Field{Key: "file", Value: opts.FileName},
		logging.Field{Key: "count", Value: len(transactions)})

	return transactions, nil
}
