// Package dates holds the calendar arithmetic shared by every reminder rule.
// All values are UTC; ISO dates without a time component are midnight UTC.
package dates

import (
	"fmt"
	"strings"
	"time"
)

const (
	ISOLayout     = "2006-01-02"
	displayLayout = "02/01/2006"
	daysPerYear   = 365.25
)

// fastParseDate parses "YYYY-MM-DD" without going through layout parsing.
// Returns zero time and false on invalid input, including impossible days
// such as February 30th.
func fastParseDate(s string) (time.Time, bool) {
	if len(s) != 10 || s[4] != '-' || s[7] != '-' {
		return time.Time{}, false
	}
	for i := 0; i < 10; i++ {
		if i == 4 || i == 7 {
			continue
		}
		if s[i] < '0' || s[i] > '9' {
			return time.Time{}, false
		}
	}
	y := int(s[0]-'0')*1000 + int(s[1]-'0')*100 + int(s[2]-'0')*10 + int(s[3]-'0')
	m := time.Month(int(s[5]-'0')*10 + int(s[6]-'0'))
	d := int(s[8]-'0')*10 + int(s[9]-'0')
	if m < 1 || m > 12 || d < 1 || d > 31 {
		return time.Time{}, false
	}
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	if t.Day() != d {
		return time.Time{}, false
	}
	return t, true
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// Parse accepts an ISO date or an ISO timestamp. Anything else is reported
// as unparseable rather than an error.
func Parse(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, ok := fastParseDate(s); ok {
		return t, true
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// Format renders t as an ISO date.
func Format(t time.Time) string {
	return t.UTC().Format(ISOLayout)
}

// Display renders t as dd/mm/yyyy.
func Display(t time.Time) string {
	return t.UTC().Format(displayLayout)
}

// DisplayISO renders an ISO string for messages, falling back to the raw
// input when it cannot be parsed.
func DisplayISO(s string) string {
	if t, ok := Parse(s); ok {
		return Display(t)
	}
	return s
}

func AddDays(t time.Time, days int) time.Time { return t.AddDate(0, 0, days) }

// AddMonths follows calendar overflow: Jan 31 + 1 month is Mar 3 (or 2).
func AddMonths(t time.Time, months int) time.Time { return t.AddDate(0, months, 0) }

func AddYears(t time.Time, years int) time.Time { return t.AddDate(years, 0, 0) }

// Later returns the later of two instants.
func Later(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func daysBetween(start, end time.Time) float64 {
	return end.Sub(start).Hours() / 24
}

// DaysUntil is the signed fractional number of days from now to t.
func DaysUntil(t, now time.Time) float64 {
	return daysBetween(now, t)
}

// YearsBetween measures elapsed time in 365.25-day years.
func YearsBetween(from, to time.Time) float64 {
	return daysBetween(from, to) / daysPerYear
}

// AgeDays returns the patient's age in fractional days, or false when the
// birth date is absent or unparseable.
func AgeDays(birthDate string, now time.Time) (float64, bool) {
	bd, ok := Parse(birthDate)
	if !ok {
		return 0, false
	}
	return daysBetween(bd, now), true
}

// AgeYears returns the patient's age in 365.25-day years.
func AgeYears(birthDate string, now time.Time) (float64, bool) {
	bd, ok := Parse(birthDate)
	if !ok {
		return 0, false
	}
	return YearsBetween(bd, now), true
}

// Span is a calendar offset expressed in months and days.
type Span struct {
	Months int
	Days   int
}

func Days(n int) Span   { return Span{Days: n} }
func Months(n int) Span { return Span{Months: n} }

// From advances t by the span.
func (s Span) From(t time.Time) time.Time {
	return t.AddDate(0, s.Months, s.Days)
}

func (s Span) String() string {
	switch {
	case s.Months != 0 && s.Days != 0:
		return fmt.Sprintf("%d months %d days", s.Months, s.Days)
	case s.Months != 0:
		return fmt.Sprintf("%d months", s.Months)
	default:
		return fmt.Sprintf("%d days", s.Days)
	}
}
