// Package textparser parses plain-text statement exports by detecting a
// tabular header and reassembling the rows beneath it. The PDF adapter
// delegates here once it has reconstructed text from positioned fragments.
package textparser

import (
	"context"
	"fmt"
	"io"
	"strings"

	"fjacquet/statement-ledger/internal/layout"
	"fjacquet/statement-ledger/internal/logging"
	"fjacquet/statement-ledger/internal/models"
	"fjacquet/statement-ledger/internal/parser"
	"fjacquet/statement-ledger/internal/parsererror"
)

// Adapter implements parser.Parser for plain-text statements.
type Adapter struct {
	parser.BaseParser
}

// NewAdapter creates a text statement adapter.
func NewAdapter(logger logging.Logger) *Adapter {
	return &Adapter{BaseParser: parser.NewBaseParser(logger)}
}

// Parse reads the raw text and runs the layout detector and row assembler
// over its lines.
func (a *Adapter) Parse(ctx context.Context, r io.Reader, opts parser.Options) ([]models.Transaction, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading text statement: %w", err)
	}
	return a.FromText(opts.FileName, string(data))
}

// FromText parses an already-extracted text blob.
func (a *Adapter) FromText(fileName, text string) ([]models.Transaction, error) {
	lines := SplitLines(text)

	detected, ok := layout.Detect(lines)
	if !ok {
		return nil, &parsererror.InvalidFormatError{
			File:           fileName,
			ExpectedFormat: "tabular statement text",
			Msg:            "no header row with date, description and an amount column found",
		}
	}

	a.Logger().Debug("Detected statement layout",
		logging.Field{Key: "file", Value: fileName},
		logging.Field{Key: "header_line", Value: detected.HeaderIndex},
		logging.Field{Key: "columns", Value: len(detected.Columns)})

	transactions := layout.Assemble(detected, lines)

	a.Logger().Info("Parsed text statement",
		logging.Field{Key: "file", Value: fileName},
		logging.Field{Key: "count", Value: len(transactions)})

	return transactions, nil
}

// SplitLines splits raw statement text into trimmed, non-empty lines while
// preserving top-to-bottom order.
func SplitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		lines = append(lines, trimmed)
	}
	return lines
}
