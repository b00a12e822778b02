// Package pdfparser parses PDF bank statements. The text layer is
// reconstructed from positioned fragments and then handed to the plain-text
// statement path, so both formats share one layout detector.
package pdfparser

import (
	"context"
	"fmt"
	"io"

	"fjacquet/statement-ledger/internal/logging"
	"fjacquet/statement-ledger/internal/models"
	"fjacquet/statement-ledger/internal/parser"
	"fjacquet/statement-ledger/internal/textparser"
)

// Adapter implements parser.Parser for PDF statements.
type Adapter struct {
	parser.BaseParser
	extractor Extractor
	text      *textparser.Adapter
}

// NewAdapter creates a PDF statement adapter. A nil extractor selects the
// production one.
func NewAdapter(logger logging.Logger, extractor Extractor) *Adapter {
	if extractor == nil {
		extractor = NewRealExtractor()
	}
	return &Adapter{
		BaseParser: parser.NewBaseParser(logger),
		extractor:  extractor,
		text:       textparser.NewAdapter(logger),
	}
}

// Parse extracts the document's text, retrieving a password through the
// options when the document is encrypted, and delegates to the text path.
func (a *Adapter) Parse(ctx context.Context, r io.Reader, opts parser.Options) ([]models.Transaction, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading PDF statement: %w", err)
	}

	a.Logger().Debug("Extracting PDF text layer",
		logging.Field{Key: "file", Value: opts.FileName},
		logging.Field{Key: "bytes", Value: len(data)})

	text, err := a.extractor.ExtractText(ctx, data, opts)
	if err != nil {
		return nil, err
	}

	return a.text.FromText(opts.FileName, text)
}
