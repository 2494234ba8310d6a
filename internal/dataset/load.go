package dataset

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/couchcryptid/dataset-explorer/internal/domain"
)

// Options controls how a raw table is turned into a derived one.
type Options struct {
	Variant Variant
	// ReferenceYear anchors the age column. Zero means
	// domain.DefaultReferenceYear.
	ReferenceYear int
	// Sanitize decodes the stray HTML entities in the description column.
	Sanitize bool
}

func (o Options) referenceYear() int {
	if o.ReferenceYear == 0 {
		return domain.DefaultReferenceYear
	}
	return o.ReferenceYear
}

// nullTokens are the cell values read as missing.
var nullTokens = []string{"", "NA", "NaN", "nan", "null", "<nil>"}

// columnTypes pins the type of well-known columns instead of leaving them to
// detection: measures are always floats so a column of whole numbers and one
// with a blank cell load the same way, and text columns never turn numeric.
var columnTypes = map[string]series.Type{
	domain.LegacyDurationColumn: series.Float,
	domain.DurationSecsColumn:   series.Float,
	domain.MonthColumn:          series.Float,
	domain.LatitudeColumn:       series.Float,
	domain.LongitudeColumn:      series.Float,
	domain.PriceColumn:          series.Float,
	domain.OdometerColumn:       series.Float,
	domain.ModelYearColumn:      series.Float,

	domain.TimestampColumn:   series.String,
	domain.DocumentedColumn:  series.String,
	domain.DescriptionColumn: series.String,
	domain.CountryColumn:     series.String,
	domain.RegionColumn:      series.String,
	domain.SeasonColumn:      series.String,
	domain.ShapeColumn:       series.String,
	domain.ModelColumn:       series.String,
	domain.TypeColumn:        series.String,
	domain.BodyTypeColumn:    series.String,
	domain.ConditionColumn:   series.String,
}

// Load reads a CSV dataset and builds its derived table. Malformed CSV and
// schema problems are returned as errors; nothing is recovered.
func Load(r io.Reader, opts Options) (*Table, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w: %w", domain.ErrMalformedCSV, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("read csv: no header row: %w", domain.ErrSchema)
	}

	records, err = normalizeHeader(records)
	if err != nil {
		return nil, err
	}

	df := frameFromRecords(records)
	if df.Err != nil {
		return nil, fmt.Errorf("load records: %w", df.Err)
	}
	return Build(df, opts)
}

// normalizeHeader drops index columns and lower-cases the header row. It
// runs before the frame is built because the frame would silently rename
// blank and duplicate headers.
func normalizeHeader(records [][]string) ([][]string, error) {
	header := records[0]
	keep := make([]int, 0, len(header))
	names := make([]string, 0, len(header))
	seen := make(map[string]bool, len(header))
	for i, name := range header {
		if domain.IsIndexColumn(name) {
			continue
		}
		name = domain.NormalizeColumnName(name)
		if seen[name] {
			return nil, fmt.Errorf("duplicate column %q: %w", name, domain.ErrSchema)
		}
		seen[name] = true
		keep = append(keep, i)
		names = append(names, name)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no named columns: %w", domain.ErrSchema)
	}

	out := make([][]string, len(records))
	out[0] = names
	for r, rec := range records[1:] {
		row := make([]string, len(keep))
		for j, i := range keep {
			row[j] = rec[i]
		}
		out[r+1] = row
	}
	return out, nil
}

func frameFromRecords(records [][]string) dataframe.DataFrame {
	if len(records) == 1 {
		return emptyFrame(records[0])
	}
	return dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
		dataframe.NaNValues(nullTokens),
		dataframe.WithTypes(columnTypes),
	)
}

// emptyFrame builds a zero-row frame for a header-only file.
func emptyFrame(names []string) dataframe.DataFrame {
	cols := make([]series.Series, len(names))
	for i, name := range names {
		t, ok := columnTypes[name]
		if !ok {
			t = series.String
		}
		cols[i] = series.New([]string{}, t, name)
	}
	return dataframe.New(cols...)
}
