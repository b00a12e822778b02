// Package layout reconstructs tabular transaction data from free-form
// statement text. The detector locates a header row and infers column
// boundaries from the horizontal offsets of the header labels; the
// assembler then walks the following lines and groups them into records.
package layout

import (
	"sort"
	"strings"
)

// Key identifies the semantic meaning of a detected column.
type Key string

const (
	KeyDate        Key = "date"
	KeyDescription Key = "description"
	KeyDebit       Key = "debit"
	KeyCredit      Key = "credit"
	KeyBalance     Key = "balance"
)

// headerScanWindow bounds how many non-empty lines are inspected before
// giving up on finding a header.
const headerScanWindow = 20

// headerAliases maps each semantic key to ordered lowercase substrings.
// The first alias found in a line wins; new aliases are additive.
var headerAliases = []struct {
	Key     Key
	Aliases []string
}{
	{KeyDate, []string{"txn date", "transaction date", "value date", "date"}},
	{KeyDescription, []string{"description", "narration", "particulars", "details", "transaction remarks", "remarks"}},
	{KeyDebit, []string{"withdrawal", "debit", "dr amount", "paid out", "money out"}},
	{KeyCredit, []string{"deposit", "credit", "cr amount", "paid in", "money in"}},
	{KeyBalance, []string{"balance", "closing"}},
}

// Column is one detected column span. Text for the column is the substring
// [Start, End) of a line; End < 0 means the column runs to end-of-line.
type Column struct {
	Key   Key
	Start int
	End   int
}

// Layout describes a detected tabular header.
type Layout struct {
	HeaderIndex int // index into the scanned line slice
	Columns     []Column
}

// Column returns the span for a semantic key, if the header contained it.
func (l Layout) Column(key Key) (Column, bool) {
	for _, col := range l.Columns {
		if col.Key == key {
			return col, true
		}
	}
	return Column{}, false
}

// Slice extracts a column's text from a line, clamped to the line's length.
func (l Layout) Slice(line string, col Column) string {
	if col.Start >= len(line) {
		return ""
	}
	end := col.End
	if end < 0 || end > len(line) {
		end = len(line)
	}
	return strings.TrimSpace(line[col.Start:end])
}

// Detect scans at most the first headerScanWindow non-empty lines for a
// header row. A line qualifies when it contains labels for date,
// description and at least one of debit/credit. The second result is false
// when no header is found.
func Detect(lines []string) (Layout, bool) {
	scanned := 0
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		scanned++
		if scanned > headerScanWindow {
			break
		}

		markers := findMarkers(line)
		if _, ok := markers[KeyDate]; !ok {
			continue
		}
		if _, ok := markers[KeyDescription]; !ok {
			continue
		}
		_, hasDebit := markers[KeyDebit]
		_, hasCredit := markers[KeyCredit]
		if !hasDebit && !hasCredit {
			continue
		}

		return Layout{HeaderIndex: i, Columns: columnsFromMarkers(markers)}, true
	}
	return Layout{}, false
}

// findMarkers locates the first alias occurrence per semantic key in a
// lowercased header candidate line, keyed by semantic key with the match
// offset as value.
func findMarkers(line string) map[Key]int {
	lower := strings.ToLower(line)
	markers := make(map[Key]int)
	for _, entry := range headerAliases {
		for _, alias := range entry.Aliases {
			if idx := strings.Index(lower, alias); idx >= 0 {
				markers[entry.Key] = idx
				break
			}
		}
	}
	return markers
}

// columnsFromMarkers sorts the found labels by horizontal offset and turns
// them into half-open spans; the last column extends to end-of-line.
func columnsFromMarkers(markers map[Key]int) []Column {
	columns := make([]Column, 0, len(markers))
	for key, offset := range markers {
		columns = append(columns, Column{Key: key, Start: offset})
	}
	sort.Slice(columns, func(i, j int) bool {
		return columns[i].Start < columns[j].Start
	})
	for i := range columns {
		if i+1 < len(columns) {
			columns[i].End = columns[i+1].Start
		} else {
			columns[i].End = -1
		}
	}
	return columns
}
