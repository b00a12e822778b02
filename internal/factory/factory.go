// Package factory dispatches files to the parser matching their extension.
package factory

import (
	"path/filepath"
	"strings"

	"fjacquet/statement-ledger/internal/csvparser"
	"fjacquet/statement-ledger/internal/logging"
	"fjacquet/statement-ledger/internal/parser"
	"fjacquet/statement-ledger/internal/parsererror"
	"fjacquet/statement-ledger/internal/pdfparser"
	"fjacquet/statement-ledger/internal/textparser"
	"fjacquet/statement-ledger/internal/xlsparser"
	"fjacquet/statement-ledger/internal/xlsxparser"
)

// SupportedExtensions lists the file types the pipeline accepts.
var SupportedExtensions = []string{".pdf", ".csv", ".txt", ".xlsx", ".xls"}

// IsSupported reports whether a file name has a supported extension.
func IsSupported(fileName string) bool {
	ext := strings.ToLower(filepath.Ext(fileName))
	for _, supported := range SupportedExtensions {
		if ext == supported {
			return true
		}
	}
	return false
}

// ForFile returns the parser matching a file's extension, or an
// UnsupportedFormatError (a warning-class condition) when none matches.
func ForFile(fileName string, logger logging.Logger) (parser.Parser, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	switch ext {
	case ".csv":
		return csvparser.NewAdapter(logger), nil
	case ".xlsx":
		return xlsxparser.NewAdapter(logger), nil
	case ".xls":
		return xlsparser.NewAdapter(logger), nil
	case ".txt":
		return textparser.NewAdapter(logger), nil
	case ".pdf":
		return pdfparser.NewAdapter(logger, nil), nil
	default:
		return nil, &parsererror.UnsupportedFormatError{File: fileName, Extension: ext}
	}
}
