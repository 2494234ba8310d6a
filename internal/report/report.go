// Package report assembles the tables a dashboard renders from a derived
// dataset and the user's current selection.
package report

import (
	"fmt"
	"time"

	"github.com/couchcryptid/dataset-explorer/internal/dataset"
	"github.com/couchcryptid/dataset-explorer/internal/domain"
)

// DefaultBins is the histogram resolution when a selection leaves it unset.
const DefaultBins = 20

// Selection is the set of widget values a report is computed for. Fields
// that do not apply to the table's variant are ignored.
type Selection struct {
	Sightings dataset.SightingFilter
	// Scale restricts the duration histogram and picks its axis.
	Scale domain.DurationScale
	// Split colors the duration histogram.
	Split domain.Category

	// ScatterScale and ScatterColor drive the age scatter, which is drawn
	// over the whole table rather than the filtered rows.
	ScatterScale domain.DurationScale
	ScatterColor domain.Category

	// MapShape limits the map to one shape; empty shows every sighting.
	// MapSize is the column bubbles are sized by.
	MapShape string
	MapSize  string

	Listings dataset.ListingFilter

	Bins int
}

// Report is everything a presentation layer needs to draw one view.
type Report struct {
	Dataset      string    `json:"dataset"`
	LoadedAt     time.Time `json:"loaded_at"`
	TotalRows    int       `json:"total_rows"`
	FilteredRows int       `json:"filtered_rows"`
	Columns      []string  `json:"columns"`
	NullAges     int       `json:"null_ages"`

	// Options lists the choices for the categorical selectors.
	Options map[string][]string `json:"options"`

	Histogram dataset.Histogram   `json:"histogram"`
	Means     []dataset.GroupMean `json:"means,omitempty"`
	Scatter   []dataset.Point     `json:"scatter,omitempty"`
	Map       []dataset.Point     `json:"map,omitempty"`
}

// Build computes the report for a table and selection.
func Build(t *dataset.Table, sel Selection) (Report, error) {
	if sel.Bins == 0 {
		sel.Bins = DefaultBins
	}
	r := Report{
		Dataset:   t.Variant().String(),
		LoadedAt:  t.LoadedAt(),
		TotalRows: t.Len(),
		Columns:   t.Columns(),
		Options:   make(map[string][]string),
	}

	var err error
	switch t.Variant() {
	case dataset.Sightings:
		err = buildSightings(&r, t, sel)
	case dataset.Listings:
		err = buildListings(&r, t, sel)
	default:
		err = fmt.Errorf("report: unsupported dataset %v", t.Variant())
	}
	if err != nil {
		return Report{}, err
	}
	return r, nil
}

func buildSightings(r *Report, t *dataset.Table, sel Selection) error {
	scale := orScale(sel.Scale)
	split := sel.Split
	if split == 0 {
		split = domain.Shape
	}

	nulls, err := t.NullCount(domain.AgeColumn)
	if err != nil {
		return err
	}
	r.NullAges = nulls

	for _, col := range []string{domain.CountryColumn, domain.ShapeColumn} {
		if !t.Has(col) {
			continue
		}
		if r.Options[col], err = dataset.Distinct(t, col); err != nil {
			return err
		}
	}

	filtered, err := dataset.FilterSightings(t, sel.Sightings)
	if err != nil {
		return fmt.Errorf("filter sightings: %w", err)
	}
	r.FilteredRows = filtered.Len()

	bucket, err := dataset.WithinScale(filtered, scale)
	if err != nil {
		return fmt.Errorf("duration bucket %s: %w", scale, err)
	}
	if r.Histogram, err = dataset.BuildHistogram(bucket, scale.AxisColumn(), split.Column(), sel.Bins); err != nil {
		return fmt.Errorf("duration histogram: %w", err)
	}

	if r.Scatter, err = sightingScatter(t, sel); err != nil {
		return fmt.Errorf("age scatter: %w", err)
	}
	if r.Map, err = sightingMap(t, sel); err != nil {
		return fmt.Errorf("sighting map: %w", err)
	}
	return nil
}

func sightingScatter(t *dataset.Table, sel Selection) ([]dataset.Point, error) {
	scale := orScale(sel.ScatterScale)
	color := sel.ScatterColor
	if color == 0 {
		color = domain.Country
	}
	bucket, err := dataset.WithinScale(t, scale)
	if err != nil {
		return nil, err
	}
	spec := dataset.PointSpec{
		X:     scale.AxisColumn(),
		Y:     domain.AgeColumn,
		Label: color.Column(),
	}
	if t.Has(domain.DescriptionColumn) {
		spec.Text = domain.DescriptionColumn
	}
	return dataset.Points(bucket, spec)
}

func sightingMap(t *dataset.Table, sel Selection) ([]dataset.Point, error) {
	if !t.Has(domain.LatitudeColumn) || !t.Has(domain.LongitudeColumn) {
		return nil, nil
	}
	size := sel.MapSize
	if size == "" {
		size = domain.DurationSecsColumn
	}
	if size != domain.DurationSecsColumn && size != domain.AgeColumn {
		return nil, fmt.Errorf("bubble size %q: want %s or %s", size, domain.DurationSecsColumn, domain.AgeColumn)
	}
	shown, err := dataset.FilterSightings(t, dataset.SightingFilter{Shape: sel.MapShape})
	if err != nil {
		return nil, err
	}
	return dataset.Points(shown, dataset.PointSpec{
		X:     domain.LongitudeColumn,
		Y:     domain.LatitudeColumn,
		Size:  size,
		Label: domain.ShapeColumn,
	})
}

func buildListings(r *Report, t *dataset.Table, sel Selection) error {
	brands, err := dataset.Distinct(t, domain.BrandColumn)
	if err != nil {
		return err
	}
	r.Options[domain.BrandColumn] = brands

	filtered, err := dataset.FilterListings(t, sel.Listings)
	if err != nil {
		return fmt.Errorf("filter listings: %w", err)
	}
	r.FilteredRows = filtered.Len()

	if r.Histogram, err = dataset.BuildHistogram(filtered, domain.PriceColumn, domain.BrandColumn, sel.Bins); err != nil {
		return fmt.Errorf("price histogram: %w", err)
	}
	if r.Means, err = dataset.GroupMeans(filtered); err != nil {
		return fmt.Errorf("model means: %w", err)
	}
	if t.Has(domain.OdometerColumn) {
		r.Scatter, err = dataset.Points(filtered, dataset.PointSpec{
			X:     domain.OdometerColumn,
			Y:     domain.PriceColumn,
			Label: domain.BrandColumn,
			Text:  domain.ModelColumn,
		})
		if err != nil {
			return fmt.Errorf("price scatter: %w", err)
		}
	}
	return nil
}

func orScale(s domain.DurationScale) domain.DurationScale {
	if s == 0 {
		return domain.Millennium
	}
	return s
}
