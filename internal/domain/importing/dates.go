package importing

import (
	"math"
	"strings"
	"time"
)

const (
	dateLayout = "2006-01-02"

	// 9999-12-31, the last day a spreadsheet can represent.
	maxSerial = 2958465
)

var naiveDateLayouts = []string{
	dateLayout,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.000",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006/01/02",
	"2/1/2006",
	"2/1/2006 15:04:05",
	"2/1/2006 15:04",
	"2-1-2006",
	"2.1.2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"2 January 2006",
}

var zonedDateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02T15:04:05Z0700",
}

// SerialToDate converts a spreadsheet serial day number to a calendar date.
// Serial 1 is 1900-01-01. Spreadsheets count a 1900-02-29 that never existed,
// so serials above 60 are one day ahead of the real calendar; serial 60 itself
// lands on 1900-03-01. Fractions (time of day) are dropped.
func SerialToDate(serial float64) (time.Time, bool) {
	if math.IsNaN(serial) || math.IsInf(serial, 0) || serial < 1 || serial >= maxSerial+1 {
		return time.Time{}, false
	}

	days := int(math.Floor(serial))
	if days > 60 {
		days--
	}
	return time.Date(1899, time.December, 31+days, 0, 0, 0, 0, time.UTC), true
}

// ParseDate reads a date written as text. Values without a zone keep their
// calendar day as written; values with a zone are moved into loc first.
func ParseDate(value string, loc *time.Location) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}

	for _, layout := range naiveDateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, true
		}
	}
	for _, layout := range zonedDateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed.In(loc), true
		}
	}
	return time.Time{}, false
}

// FormatDate renders the calendar components of t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// IsDateColumn reports whether values written to column get date coercion.
func IsDateColumn(column string) bool {
	return strings.Contains(strings.ToLower(column), "date")
}
