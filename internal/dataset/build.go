package dataset

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/couchcryptid/dataset-explorer/internal/domain"
)

// Build derives the enriched table from a raw frame. Steps run in a fixed
// order: drop index columns, lower-case names, rename the legacy duration
// column, map month numbers to names, derive durations, age and report lag,
// split listing models, and optionally sanitize descriptions. Rows are never
// dropped; per-row date problems become nulls.
func Build(raw dataframe.DataFrame, opts Options) (*Table, error) {
	if raw.Err != nil {
		return nil, fmt.Errorf("build: %w", raw.Err)
	}
	if opts.Variant != Sightings && opts.Variant != Listings {
		return nil, fmt.Errorf("build: %v", opts.Variant)
	}

	df, err := normalizeColumns(raw)
	if err != nil {
		return nil, err
	}
	if df, err = renameLegacyDuration(df); err != nil {
		return nil, err
	}
	for _, col := range opts.Variant.requiredColumns() {
		if !hasColumn(df, col) {
			return nil, fmt.Errorf("%s: missing column %q: %w", opts.Variant, col, domain.ErrSchema)
		}
	}
	if df, err = deriveMonth(df); err != nil {
		return nil, err
	}
	df = deriveDurations(df)

	switch opts.Variant {
	case Sightings:
		df = deriveAge(df, opts.referenceYear())
		df = deriveReportLag(df)
	case Listings:
		df = deriveBrandType(df)
	}

	if opts.Sanitize {
		df = sanitizeDescriptions(df)
	}
	if df.Err != nil {
		return nil, fmt.Errorf("build: %w", df.Err)
	}

	return newTable(opts.Variant, domain.Now(), df), nil
}

// normalizeColumns drops index columns and lower-cases the remaining names.
// Names that collide after lower-casing are a schema error.
func normalizeColumns(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	var drop []string
	seen := make(map[string]bool)
	for _, name := range df.Names() {
		if domain.IsIndexColumn(name) {
			drop = append(drop, name)
			continue
		}
		norm := domain.NormalizeColumnName(name)
		if seen[norm] {
			return df, fmt.Errorf("duplicate column %q: %w", norm, domain.ErrSchema)
		}
		seen[norm] = true
	}
	if len(drop) > 0 {
		df = df.Drop(drop)
	}
	for _, name := range df.Names() {
		if norm := domain.NormalizeColumnName(name); norm != name {
			df = df.Rename(norm, name)
		}
	}
	return df, df.Err
}

func renameLegacyDuration(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	if !hasColumn(df, domain.LegacyDurationColumn) {
		return df, nil
	}
	if hasColumn(df, domain.DurationSecsColumn) {
		return df, fmt.Errorf("both %q and %q present: %w",
			domain.LegacyDurationColumn, domain.DurationSecsColumn, domain.ErrSchema)
	}
	df = df.Rename(domain.DurationSecsColumn, domain.LegacyDurationColumn)
	return df, df.Err
}

// deriveMonth replaces month numbers with calendar names. A value that is
// missing, fractional or outside 1-12 fails the whole build. Values that are
// already month names are kept, so building a derived table again is safe.
func deriveMonth(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	if !hasColumn(df, domain.MonthColumn) {
		return df, nil
	}
	col := df.Col(domain.MonthColumn)
	names := make([]string, col.Len())
	for i := range names {
		name, err := monthAt(col, i)
		if err != nil {
			return df, fmt.Errorf("row %d: %w", i, err)
		}
		names[i] = name
	}
	return df.Mutate(series.New(names, series.String, domain.MonthColumn)), nil
}

func monthAt(col series.Series, i int) (string, error) {
	e := col.Elem(i)
	if e.IsNA() {
		return "", fmt.Errorf("month is null: %w", domain.ErrOutOfRange)
	}

	var f float64
	if col.Type() == series.String {
		s := strings.TrimSpace(e.String())
		if _, ok := domain.MonthNumber(s); ok {
			return s, nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return "", fmt.Errorf("month %q: %w", s, domain.ErrOutOfRange)
		}
		f = v
	} else {
		f = e.Float()
	}

	if math.IsNaN(f) {
		return "", fmt.Errorf("month is null: %w", domain.ErrOutOfRange)
	}
	if f != math.Trunc(f) {
		return "", fmt.Errorf("month %g: %w", f, domain.ErrOutOfRange)
	}
	return domain.MonthName(int(f))
}

func deriveDurations(df dataframe.DataFrame) dataframe.DataFrame {
	if !hasColumn(df, domain.DurationSecsColumn) {
		return df
	}
	secs := df.Col(domain.DurationSecsColumn).Float()
	mins := make([]float64, len(secs))
	hours := make([]float64, len(secs))
	days := make([]float64, len(secs))
	for i, s := range secs {
		mins[i] = domain.DurationMinutes(s)
		hours[i] = domain.DurationHours(s)
		days[i] = domain.DurationDays(s)
	}
	return df.
		Mutate(series.New(secs, series.Float, domain.DurationSecsColumn)).
		Mutate(series.New(mins, series.Float, domain.DurationMinsColumn)).
		Mutate(series.New(hours, series.Float, domain.DurationHoursColumn)).
		Mutate(series.New(days, series.Float, domain.DurationDaysColumn))
}

func deriveAge(df dataframe.DataFrame, referenceYear int) dataframe.DataFrame {
	stamps, valid := stringValues(df.Col(domain.TimestampColumn))
	ages := make([]float64, len(stamps))
	for i, s := range stamps {
		ages[i] = math.NaN()
		if !valid[i] {
			continue
		}
		if ts, ok := domain.ParseTimestamp(s); ok {
			ages[i] = domain.Age(referenceYear, ts)
		}
	}
	return df.Mutate(series.New(ages, series.Float, domain.AgeColumn))
}

// deriveReportLag adds the days between a sighting and its documentation,
// when the source carries a documented date.
func deriveReportLag(df dataframe.DataFrame) dataframe.DataFrame {
	if !hasColumn(df, domain.DocumentedColumn) {
		return df
	}
	stamps, stampValid := stringValues(df.Col(domain.TimestampColumn))
	docs, docValid := stringValues(df.Col(domain.DocumentedColumn))
	lags := make([]float64, len(stamps))
	for i := range stamps {
		lags[i] = math.NaN()
		if !stampValid[i] || !docValid[i] {
			continue
		}
		start, ok := domain.ParseTimestamp(stamps[i])
		if !ok {
			continue
		}
		end, ok := domain.ParseTimestamp(docs[i])
		if !ok {
			continue
		}
		lags[i] = domain.DaysBetween(start, end)
	}
	return df.Mutate(series.New(lags, series.Float, domain.ReportLagColumn))
}

// deriveBrandType splits the listing model into brand and type, replacing
// any type column the source already had.
// deriveBrandType splits model into brand and type. A listing's own type
// column (SUV, pickup) is kept as body_type before the split replaces it.
func deriveBrandType(df dataframe.DataFrame) dataframe.DataFrame {
	if hasColumn(df, domain.TypeColumn) && !hasColumn(df, domain.BodyTypeColumn) {
		body, bodyValid := stringValues(df.Col(domain.TypeColumn))
		df = df.Mutate(stringSeries(domain.BodyTypeColumn, body, bodyValid))
	}
	models, valid := stringValues(df.Col(domain.ModelColumn))
	brands := make([]string, len(models))
	kinds := make([]string, len(models))
	brandValid := make([]bool, len(models))
	kindValid := make([]bool, len(models))
	for i, m := range models {
		if !valid[i] {
			continue
		}
		brands[i], kinds[i] = domain.SplitModel(m)
		brandValid[i] = brands[i] != ""
		kindValid[i] = kinds[i] != ""
	}
	return df.
		Mutate(stringSeries(domain.BrandColumn, brands, brandValid)).
		Mutate(stringSeries(domain.TypeColumn, kinds, kindValid))
}

func sanitizeDescriptions(df dataframe.DataFrame) dataframe.DataFrame {
	if !hasColumn(df, domain.DescriptionColumn) {
		return df
	}
	texts, valid := stringValues(df.Col(domain.DescriptionColumn))
	for i := range texts {
		if valid[i] {
			texts[i] = domain.SanitizeDescription(texts[i])
		}
	}
	return df.Mutate(stringSeries(domain.DescriptionColumn, texts, valid))
}

func hasColumn(df dataframe.DataFrame, name string) bool {
	return slices.Contains(df.Names(), name)
}

// stringValues returns a column's cells as text plus a validity mask. Blank
// cells count as missing.
func stringValues(s series.Series) ([]string, []bool) {
	vals := s.Records()
	valid := make([]bool, len(vals))
	for i := range vals {
		valid[i] = !s.Elem(i).IsNA() && strings.TrimSpace(vals[i]) != ""
		if !valid[i] {
			vals[i] = ""
		}
	}
	return vals, valid
}

// stringSeries builds a text series, writing invalid cells as the frame's
// missing marker.
func stringSeries(name string, vals []string, valid []bool) series.Series {
	out := make([]string, len(vals))
	for i, v := range vals {
		if valid[i] {
			out[i] = v
		} else {
			out[i] = "NaN"
		}
	}
	return series.New(out, series.String, name)
}
