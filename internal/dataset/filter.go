package dataset

import (
	"fmt"
	"math"
	"slices"

	"github.com/couchcryptid/dataset-explorer/internal/domain"
)

// SightingFilter narrows a sightings table. Zero values match everything.
type SightingFilter struct {
	Country string
	Shape   string
	// MinHours is exclusive and MaxHours inclusive, matching the duration
	// slider the dashboard exposes.
	MinHours *float64
	MaxHours *float64
}

// FilterSightings returns the rows matching f. A bound on hours excludes rows
// with no duration.
func FilterSightings(t *Table, f SightingFilter) (*Table, error) {
	var preds []func(i int) bool

	if f.Country != "" {
		p, err := equals(t, domain.CountryColumn, f.Country)
		if err != nil {
			return nil, err
		}
		preds = append(preds, p)
	}
	if f.Shape != "" {
		p, err := equals(t, domain.ShapeColumn, f.Shape)
		if err != nil {
			return nil, err
		}
		preds = append(preds, p)
	}
	if f.MinHours != nil || f.MaxHours != nil {
		if f.MinHours != nil && f.MaxHours != nil && *f.MinHours > *f.MaxHours {
			return nil, fmt.Errorf("hours range %g-%g is empty", *f.MinHours, *f.MaxHours)
		}
		hours, err := t.Floats(domain.DurationHoursColumn)
		if err != nil {
			return nil, err
		}
		lo, hi := math.Inf(-1), math.Inf(1)
		if f.MinHours != nil {
			lo = *f.MinHours
		}
		if f.MaxHours != nil {
			hi = *f.MaxHours
		}
		preds = append(preds, func(i int) bool {
			h := hours[i]
			return !math.IsNaN(h) && (f.MinHours == nil || h > lo) && h <= hi
		})
	}

	return t.where(all(preds)), nil
}

// WithinScale keeps rows whose duration fits the scale's bucket. Millennium
// keeps every row.
func WithinScale(t *Table, scale domain.DurationScale) (*Table, error) {
	col := scale.BucketColumn()
	if col == "" {
		return t, nil
	}
	vals, err := t.Floats(col)
	if err != nil {
		return nil, err
	}
	limit := scale.BucketLimit()
	return t.where(func(i int) bool {
		return vals[i] <= limit
	}), nil
}

// ListingFilter narrows a listings table. Empty Brands matches every brand;
// the year bounds are inclusive.
type ListingFilter struct {
	Brands  []string
	MinYear *int
	MaxYear *int
}

// FilterListings returns the rows matching f. A year bound excludes rows with
// no model year.
func FilterListings(t *Table, f ListingFilter) (*Table, error) {
	var preds []func(i int) bool

	if len(f.Brands) > 0 {
		brands, valid, err := t.Strings(domain.BrandColumn)
		if err != nil {
			return nil, err
		}
		preds = append(preds, func(i int) bool {
			return valid[i] && slices.Contains(f.Brands, brands[i])
		})
	}
	if f.MinYear != nil || f.MaxYear != nil {
		if f.MinYear != nil && f.MaxYear != nil && *f.MinYear > *f.MaxYear {
			return nil, fmt.Errorf("year range %d-%d is empty", *f.MinYear, *f.MaxYear)
		}
		years, err := t.Floats(domain.ModelYearColumn)
		if err != nil {
			return nil, err
		}
		preds = append(preds, func(i int) bool {
			y := years[i]
			if math.IsNaN(y) {
				return false
			}
			if f.MinYear != nil && y < float64(*f.MinYear) {
				return false
			}
			return f.MaxYear == nil || y <= float64(*f.MaxYear)
		})
	}

	return t.where(all(preds)), nil
}

// Distinct returns the non-null values of a column in order of first
// appearance.
func Distinct(t *Table, col string) ([]string, error) {
	vals, valid, err := t.Strings(col)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var out []string
	for i, v := range vals {
		if valid[i] && !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out, nil
}

func equals(t *Table, col, want string) (func(i int) bool, error) {
	vals, valid, err := t.Strings(col)
	if err != nil {
		return nil, err
	}
	return func(i int) bool { return valid[i] && vals[i] == want }, nil
}

func all(preds []func(i int) bool) func(i int) bool {
	return func(i int) bool {
		for _, p := range preds {
			if !p(i) {
				return false
			}
		}
		return true
	}
}
