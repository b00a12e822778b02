// Package parser defines the contract every format adapter implements and
// the base type they embed.
package parser

import (
	"context"
	"io"

	"fjacquet/statement-ledger/internal/models"
)

// PasswordProvider supplies a password for an encrypted document. It may
// block on user interaction; an error means the user cancelled, which is a
// normal per-file failure and must not affect sibling files.
type PasswordProvider func(ctx context.Context, fileName string) (string, error)

// Options carries per-file parsing context.
type Options struct {
	// FileName is the originating file name, used for provenance and for
	// password prompts. Parsers do not touch the filesystem.
	FileName string

	// Password is consulted when a document turns out to be encrypted.
	// A nil provider makes encrypted documents a terminal error.
	Password PasswordProvider

	// OnPasswordPrompt, when set, is invoked just before the provider is
	// asked for a password, so callers can surface a status transition.
	OnPasswordPrompt func()
}

// Parser converts one source document into transaction records. The
// records carry date, description and exactly one of debit/credit;
// identity and category are assigned downstream.
type Parser interface {
	Parse(ctx context.Context, r io.Reader, opts Options) ([]models.Transaction, error)
}
