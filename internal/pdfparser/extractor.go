package pdfparser

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/dslipak/pdf"

	"fjacquet/statement-ledger/internal/parser"
	"fjacquet/statement-ledger/internal/parsererror"
)

// Extractor turns PDF bytes into reconstructed statement text. The
// interface exists for dependency injection: tests supply a mock and never
// need real PDF fixtures.
type Extractor interface {
	ExtractText(ctx context.Context, data []byte, opts parser.Options) (string, error)
}

// Whitespace reconstruction thresholds, in PDF points. A gap wider than
// smallGapPoints becomes one space; a gap wider than columnGapPoints
// becomes the column separator so downstream offset-based column detection
// sees distinct columns.
const (
	smallGapPoints  = 1.5
	columnGapPoints = 12.0
	columnSeparator = "   "
)

// RealExtractor is the production Extractor backed by the pdf library.
type RealExtractor struct{}

// NewRealExtractor creates a RealExtractor.
func NewRealExtractor() *RealExtractor {
	return &RealExtractor{}
}

// ExtractText opens the document, negotiating a password through the
// caller-supplied provider when the document is encrypted, and rebuilds a
// text blob from the positioned fragments of every page.
//
// Password semantics: the library first tries the empty password, then asks
// the callback. Exactly one interactive attempt is made; a second request
// means the supplied password was wrong and the extraction fails with a
// distinguishable error.
func (e *RealExtractor) ExtractText(ctx context.Context, data []byte, opts parser.Options) (string, error) {
	var (
		prompts   int
		cancelErr error
	)
	passwordFn := func() string {
		if opts.Password == nil || prompts >= 1 || cancelErr != nil {
			return "" // give up; the library reports an invalid password
		}
		prompts++
		if opts.OnPasswordPrompt != nil {
			opts.OnPasswordPrompt()
		}
		password, err := opts.Password(ctx, opts.FileName)
		if err != nil {
			cancelErr = err
			return ""
		}
		return password
	}

	reader, err := pdf.NewReaderEncrypted(bytes.NewReader(data), int64(len(data)), passwordFn)
	if err != nil {
		if err == pdf.ErrInvalidPassword {
			switch {
			case cancelErr != nil:
				return "", fmt.Errorf("password prompt cancelled for '%s': %w", opts.FileName, cancelErr)
			case prompts == 0:
				return "", &parsererror.PasswordRequiredError{File: opts.FileName}
			default:
				return "", &parsererror.IncorrectPasswordError{File: opts.FileName}
			}
		}
		return "", &parsererror.InvalidFormatError{
			File:           opts.FileName,
			ExpectedFormat: "PDF",
			Msg:            err.Error(),
		}
	}

	var pages []string
	for num := 1; num <= reader.NumPage(); num++ {
		page := reader.Page(num)
		if page.V.IsNull() {
			continue
		}
		pages = append(pages, linesFromFragments(page.Content().Text))
	}
	return strings.Join(pages, "\n"), nil
}

// linesFromFragments groups positioned text fragments into lines by rounded
// vertical coordinate, orders each line left to right, and re-inserts the
// whitespace the text layer never carries.
func linesFromFragments(fragments []pdf.Text) string {
	rows := make(map[int][]pdf.Text)
	var ys []int
	for _, fragment := range fragments {
		y := int(math.Round(fragment.Y))
		if _, seen := rows[y]; !seen {
			ys = append(ys, y)
		}
		rows[y] = append(rows[y], fragment)
	}

	// PDF user space has its origin at the bottom-left corner, so a larger
	// Y is higher on the page.
	sort.Sort(sort.Reverse(sort.IntSlice(ys)))

	lines := make([]string, 0, len(ys))
	for _, y := range ys {
		row := rows[y]
		sort.Slice(row, func(i, j int) bool { return row[i].X < row[j].X })

		var b strings.Builder
		var prevEnd float64
		for i, fragment := range row {
			if i > 0 {
				gap := fragment.X - prevEnd
				switch {
				case gap > columnGapPoints:
					b.WriteString(columnSeparator)
				case gap > smallGapPoints:
					b.WriteByte(' ')
				}
			}
			b.WriteString(fragment.S)
			prevEnd = fragment.X + fragment.W
		}
		lines = append(lines, b.String())
	}
	return strings.Join(lines, "\n")
}

// MockExtractor is an Extractor for tests; it returns canned text or a
// canned error instead of reading real PDF bytes.
type MockExtractor struct {
	MockText string
	MockErr  error
	// PromptFirst simulates an encrypted document: the password provider
	// is consulted once before MockText is returned, and WrongPassword
	// controls whether that attempt succeeds.
	PromptFirst   bool
	WrongPassword bool
}

// ExtractText returns the canned fixture, exercising the password flow
// when PromptFirst is set.
func (e *MockExtractor) ExtractText(ctx context.Context, data []byte, opts parser.Options) (string, error) {
	if e.PromptFirst {
		if opts.Password == nil {
			return "", &parsererror.PasswordRequiredError{File: opts.FileName}
		}
		if opts.OnPasswordPrompt != nil {
			opts.OnPasswordPrompt()
		}
		if _, err := opts.Password(ctx, opts.FileName); err != nil {
			return "", fmt.Errorf("password prompt cancelled for '%s': %w", opts.FileName, err)
		}
		if e.WrongPassword {
			return "", &parsererror.IncorrectPasswordError{File: opts.FileName}
		}
	}
	if e.MockErr != nil {
		return "", e.MockErr
	}
	return e.MockText, nil
}
