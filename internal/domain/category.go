package domain

import (
	"fmt"
	"strings"
)

// Category is a categorical column sightings can be split or colored by.
type Category int

const (
	Region Category = iota + 1
	Shape
	Season
	Month
	Country
)

func (c Category) String() string {
	switch c {
	case Region, Shape, Season, Month, Country:
		return c.Column()
	default:
		return fmt.Sprintf("Category(%d)", int(c))
	}
}

// Column returns the table column holding the category.
func (c Category) Column() string {
	switch c {
	case Region:
		return RegionColumn
	case Shape:
		return ShapeColumn
	case Season:
		return SeasonColumn
	case Month:
		return MonthColumn
	case Country:
		return CountryColumn
	default:
		panic(fmt.Sprintf("domain: invalid Category(%d)", int(c)))
	}
}

// ParseCategory accepts a column name ("ufo_shape") or the short form
// ("shape").
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case RegionColumn:
		return Region, nil
	case ShapeColumn, "shape":
		return Shape, nil
	case SeasonColumn:
		return Season, nil
	case MonthColumn:
		return Month, nil
	case CountryColumn:
		return Country, nil
	default:
		return 0, fmt.Errorf("unknown category %q", s)
	}
}
