package domain

import (
	"fmt"
	"math"
	"strings"
)

// DurationMinutes converts canonical seconds to minutes.
func DurationMinutes(secs float64) float64 {
	return secs / 60
}

// DurationHours converts canonical seconds to hours. The division order
// matches DurationMinutes(secs)/60 so the unit chain compares equal.
func DurationHours(secs float64) float64 {
	return secs / 60 / 60
}

// DurationDays converts canonical seconds to days.
func DurationDays(secs float64) float64 {
	return secs / 60 / 60 / 24
}

// DurationScale selects how long an encounter may last and which unit its
// duration is plotted in.
type DurationScale int

const (
	Minute DurationScale = iota + 1
	Hour
	Day
	Millennium
)

// DurationScales lists every scale in ascending order.
var DurationScales = []DurationScale{Minute, Hour, Day, Millennium}

func (s DurationScale) String() string {
	switch s {
	case Minute:
		return "minute"
	case Hour:
		return "hour"
	case Day:
		return "day"
	case Millennium:
		return "millennium"
	default:
		return fmt.Sprintf("DurationScale(%d)", int(s))
	}
}

// ParseDurationScale accepts the scale names produced by String, plus the
// legacy spelling "millenia".
func ParseDurationScale(s string) (DurationScale, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "minute":
		return Minute, nil
	case "hour":
		return Hour, nil
	case "day":
		return Day, nil
	case "millennium", "millenia":
		return Millennium, nil
	default:
		return 0, fmt.Errorf("unknown duration scale %q", s)
	}
}

// BucketColumn returns the column that restricts rows to this scale, or ""
// for Millennium, which keeps every row.
func (s DurationScale) BucketColumn() string {
	switch s {
	case Minute:
		return DurationMinsColumn
	case Hour:
		return DurationHoursColumn
	case Day:
		return DurationDaysColumn
	case Millennium:
		return ""
	default:
		panic(fmt.Sprintf("domain: invalid %v", s))
	}
}

// BucketLimit is the inclusive upper bound applied to BucketColumn.
// Millennium is unbounded.
func (s DurationScale) BucketLimit() float64 {
	if s == Millennium {
		return math.Inf(1)
	}
	_ = s.BucketColumn()
	return 1
}

// AxisColumn is the duration column a histogram at this scale is drawn
// over: one unit finer than the bucket, so bars spread across the range.
func (s DurationScale) AxisColumn() string {
	switch s {
	case Minute:
		return DurationSecsColumn
	case Hour:
		return DurationMinsColumn
	case Day:
		return DurationHoursColumn
	case Millennium:
		return DurationDaysColumn
	default:
		panic(fmt.Sprintf("domain: invalid %v", s))
	}
}
