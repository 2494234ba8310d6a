package domain

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// DefaultReferenceYear anchors the age column. It is the year the sighting
// data was analysed, kept fixed so ages are reproducible across runs.
const DefaultReferenceYear = 2023

// Age returns the fractional years between ts and the reference year,
// counting whole months: R - (year + month/12).
func Age(referenceYear int, ts time.Time) float64 {
	return float64(referenceYear) - (float64(ts.Year()) + float64(ts.Month())/12)
}

// ParseTimestamp parses a date or date-time in any common layout, reading
// zoneless values as UTC. Empty, "NaN" and unparseable values report false.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "nan") {
		return time.Time{}, false
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// DaysBetween returns the signed number of days from start to end.
func DaysBetween(start, end time.Time) float64 {
	return end.Sub(start).Hours() / 24
}
