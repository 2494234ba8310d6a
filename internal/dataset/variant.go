package dataset

import (
	"fmt"
	"strings"

	"github.com/couchcryptid/dataset-explorer/internal/domain"
)

// Variant identifies which dataset schema a table follows.
type Variant int

const (
	Sightings Variant = iota + 1
	Listings
)

func (v Variant) String() string {
	switch v {
	case Sightings:
		return "sightings"
	case Listings:
		return "listings"
	default:
		return fmt.Sprintf("Variant(%d)", int(v))
	}
}

// ParseVariant maps a dataset kind to its Variant. "ufo" and "vehicles" are
// accepted as aliases.
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ufo", "sightings":
		return Sightings, nil
	case "vehicles", "listings":
		return Listings, nil
	default:
		return 0, fmt.Errorf("unknown dataset kind %q", s)
	}
}

// requiredColumns lists the columns Build cannot proceed without, after the
// legacy duration rename.
func (v Variant) requiredColumns() []string {
	switch v {
	case Sightings:
		return []string{domain.TimestampColumn, domain.DurationSecsColumn}
	case Listings:
		return []string{domain.ModelColumn}
	default:
		return nil
	}
}
