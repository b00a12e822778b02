package layout

import (
	"regexp"
	"strings"

	"fjacquet/statement-ledger/internal/amountutils"
	"fjacquet/statement-ledger/internal/dateutils"
	"fjacquet/statement-ledger/internal/models"
)

var collapseSpace = regexp.MustCompile(`\s+`)

type assemblerState int

const (
	stateIdle assemblerState = iota
	stateAccumulating
)

// Assembler folds statement lines into transaction records. A line whose
// date-column text normalizes to a valid date starts a new record; any
// other line while a record is pending is a continuation and is folded
// into the description. Groups that fail record validation are dropped
// without error.
type Assembler struct {
	layout  Layout
	state   assemblerState
	pending pendingRecord
	records []models.Transaction
}

type pendingRecord struct {
	date          string
	description   string
	debitRaw      string
	creditRaw     string
	continuations []string
}

// NewAssembler creates an Assembler for a detected layout.
func NewAssembler(layout Layout) *Assembler {
	return &Assembler{layout: layout, state: stateIdle}
}

// Assemble runs the lines strictly after the layout's header row through
// an assembler and returns the finished records in source order.
func Assemble(layout Layout, lines []string) []models.Transaction {
	a := NewAssembler(layout)
	for i := layout.HeaderIndex + 1; i < len(lines); i++ {
		a.Feed(lines[i])
	}
	return a.Finish()
}

// Feed consumes one line.
func (a *Assembler) Feed(line string) {
	dateCol, _ := a.layout.Column(KeyDate)
	date, ok := dateutils.Normalize(a.layout.Slice(line, dateCol))
	if ok {
		a.Flush()
		a.start(line, date)
		return
	}

	if a.state == stateAccumulating {
		cont := collapseSpace.ReplaceAllString(strings.TrimSpace(line), " ")
		if cont != "" {
			a.pending.continuations = append(a.pending.continuations, cont)
		}
	}
	// While idle, lines without a date are interstitial noise and are skipped.
}

func (a *Assembler) start(line, date string) {
	a.pending = pendingRecord{date: date}
	if col, ok := a.layout.Column(KeyDescription); ok {
		a.pending.description = a.layout.Slice(line, col)
	}
	if col, ok := a.layout.Column(KeyDebit); ok {
		a.pending.debitRaw = a.layout.Slice(line, col)
	}
	if col, ok := a.layout.Column(KeyCredit); ok {
		a.pending.creditRaw = a.layout.Slice(line, col)
	}
	a.state = stateAccumulating
}

// Flush finalizes the pending record, if any, and appends it to the output
// when it passes validation.
func (a *Assembler) Flush() {
	if a.state != stateAccumulating {
		return
	}
	a.state = stateIdle

	parts := append([]string{a.pending.description}, a.pending.continuations...)
	description := collapseSpace.ReplaceAllString(strings.TrimSpace(strings.Join(parts, " ")), " ")

	tx := models.Transaction{
		Date:        a.pending.date,
		Description: description,
	}
	if amount, ok := amountutils.Normalize(a.pending.debitRaw); ok {
		tx.Debit = &amount
	}
	if amount, ok := amountutils.Normalize(a.pending.creditRaw); ok {
		tx.Credit = &amount
	}

	if err := tx.Validate(); err != nil {
		// Row-level failures are dropped silently per the error policy.
		return
	}
	a.records = append(a.records, tx)
}

// Finish flushes the trailing record and returns everything assembled.
func (a *Assembler) Finish() []models.Transaction {
	a.Flush()
	return a.records
}
