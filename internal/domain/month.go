package domain

import "fmt"

// monthNames is indexed by month number; index 0 is unused.
var monthNames = [13]string{
	"",
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// MonthName maps a month number to its English name.
func MonthName(n int) (string, error) {
	if n < 1 || n > 12 {
		return "", fmt.Errorf("month %d: %w", n, ErrOutOfRange)
	}
	return monthNames[n], nil
}

// MonthNumber is the inverse of MonthName. Matching is exact.
func MonthNumber(name string) (int, bool) {
	for i := 1; i < len(monthNames); i++ {
		if monthNames[i] == name {
			return i, true
		}
	}
	return 0, false
}

// MonthNames returns the twelve month names in calendar order.
func MonthNames() []string {
	out := make([]string, 12)
	copy(out, monthNames[1:])
	return out
}
