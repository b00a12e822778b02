package parser

import (
	"fjacquet/statement-ledger/internal/logging"
)

// BaseParser provides the shared pieces of every adapter. Adapters embed it
// to inherit logger handling:
//
//	type Adapter struct {
//		parser.BaseParser
//		// adapter-specific fields
//	}
type BaseParser struct {
	logger logging.Logger
}

// NewBaseParser creates a BaseParser with the provided logger, falling back
// to the default logger when nil.
func NewBaseParser(logger logging.Logger) BaseParser {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return BaseParser{logger: logger}
}

// SetLogger replaces the adapter's logger.
func (b *BaseParser) SetLogger(logger logging.Logger) {
	if logger != nil {
		b.logger = logger
	}
}

// Logger returns the adapter's logger.
func (b *BaseParser) Logger() logging.Logger {
	return b.logger
}
