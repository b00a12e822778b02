// Package dateutils normalizes the date tokens found in bank statements into
// canonical ISO calendar dates (YYYY-MM-DD).
package dateutils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateLayoutISO is the canonical output layout for all normalized dates.
const DateLayoutISO = "2006-01-02"

// serialEpochOffset is the spreadsheet serial number of 1970-01-01 in the
// 1900 date system. Serials at or below it cannot be statement dates.
const serialEpochOffset = 25569

const secondsPerDay = 86400

var (
	strictDayFirst = regexp.MustCompile(`^(\d{1,2})[./-](\d{1,2})[./-](\d{2,4})$`)
	ordinalSuffix  = regexp.MustCompile(`(?i)(\d{1,2})(st|nd|rd|th)\b`)
	multiSpace     = regexp.MustCompile(`\s+`)
)

// fallbackLayouts are tried, in order, when the strict day-first pattern
// does not match. New layouts are additive at the end.
var fallbackLayouts = []string{
	DateLayoutISO,
	"2006/01/02",
	"02.01.2006",
	"2 Jan 2006",
	"02 Jan 2006",
	"Jan 2, 2006",
	"Jan 2 2006",
	"2 January 2006",
	"January 2, 2006",
	"2-Jan-2006",
	"2 Jan 06",
}

// NormalizeValue normalizes a raw cell value that may be a string, a
// spreadsheet date serial, or nil. The bool result is false when the value
// is not a usable date; callers treat that as "not a transaction row".
func NormalizeValue(raw interface{}) (string, bool) {
	switch v := raw.(type) {
	case nil:
		return "", false
	case string:
		return Normalize(v)
	case float64:
		return NormalizeSerial(v)
	case int:
		return NormalizeSerial(float64(v))
	case int64:
		return NormalizeSerial(float64(v))
	default:
		return "", false
	}
}

// NormalizeSerial interprets a spreadsheet date serial in the 1900 date
// system and converts it to an ISO date.
func NormalizeSerial(serial float64) (string, bool) {
	if serial <= serialEpochOffset {
		return "", false
	}
	seconds := int64((serial - serialEpochOffset) * secondsPerDay)
	return time.Unix(seconds, 0).UTC().Format(DateLayoutISO), true
}

// Normalize converts a textual date token to an ISO date.
//
// The primary pattern is day-first D[./-]M[./-]Y with a two-digit year
// promoted by adding 2000. When the parsed month exceeds 12 but the day
// does not, day and month are swapped; this recovers US-style dates that
// were misread as day-first. Tokens that fail the strict pattern get their
// ordinal suffixes stripped and are retried against a set of known layouts.
func Normalize(raw string) (string, bool) {
	cleaned := multiSpace.ReplaceAllString(strings.TrimSpace(raw), " ")
	if cleaned == "" {
		return "", false
	}

	if m := strictDayFirst.FindStringSubmatch(cleaned); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])

		if year < 100 {
			year += 2000
		}
		if month > 12 && day <= 12 {
			day, month = month, day
		}
		if day < 1 || day > 31 || month < 1 || month > 12 || year <= 1900 {
			return "", false
		}
		return fmt.Sprintf("%04d-%02d-%02d", year, month, day), true
	}

	// Numeric serials occasionally arrive as text from spreadsheet exports.
	if serial, err := strconv.ParseFloat(cleaned, 64); err == nil {
		return NormalizeSerial(serial)
	}

	stripped := ordinalSuffix.ReplaceAllString(cleaned, "$1")
	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, stripped); err == nil {
			if t.Year() <= 1900 {
				return "", false
			}
			return t.UTC().Format(DateLayoutISO), true
		}
	}

	return "", false
}
