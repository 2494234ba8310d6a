package dataset

import (
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/couchcryptid/dataset-explorer/internal/domain"
)

// Table is an immutable derived dataset. Filters return new tables that
// share nothing mutable with their input.
type Table struct {
	variant  Variant
	loadedAt time.Time
	df       dataframe.DataFrame
	// origin maps each row to its position in the table as first built, so
	// record IDs survive filtering.
	origin []int
}

func newTable(v Variant, loadedAt time.Time, df dataframe.DataFrame) *Table {
	origin := make([]int, df.Nrow())
	for i := range origin {
		origin[i] = i
	}
	return &Table{variant: v, loadedAt: loadedAt, df: df, origin: origin}
}

func (t *Table) Variant() Variant { return t.variant }

// LoadedAt is when the table was built.
func (t *Table) LoadedAt() time.Time { return t.loadedAt }

// Len returns the number of rows.
func (t *Table) Len() int { return t.df.Nrow() }

// Columns returns the column names in table order.
func (t *Table) Columns() []string { return t.df.Names() }

// Has reports whether the table has a column.
func (t *Table) Has(col string) bool { return hasColumn(t.df, col) }

// Floats returns a copy of a numeric column with nulls as NaN.
func (t *Table) Floats(col string) ([]float64, error) {
	if !t.Has(col) {
		return nil, missingColumn(col)
	}
	return t.df.Col(col).Float(), nil
}

// Strings returns a copy of a column as text with a validity mask; invalid
// cells are returned as "".
func (t *Table) Strings(col string) ([]string, []bool, error) {
	if !t.Has(col) {
		return nil, nil, missingColumn(col)
	}
	vals, valid := stringValues(t.df.Col(col))
	return vals, valid, nil
}

// NullCount returns how many cells of a column are missing.
func (t *Table) NullCount(col string) (int, error) {
	if !t.Has(col) {
		return 0, missingColumn(col)
	}
	s := t.df.Col(col)
	n := 0
	if isNumeric(s.Type()) {
		for _, f := range s.Float() {
			if math.IsNaN(f) {
				n++
			}
		}
		return n, nil
	}
	_, valid := stringValues(s)
	for _, ok := range valid {
		if !ok {
			n++
		}
	}
	return n, nil
}

// Subset returns a new table holding the given rows, in the given order.
func (t *Table) Subset(rows []int) *Table {
	origin := make([]int, len(rows))
	for i, r := range rows {
		origin[i] = t.origin[r]
	}
	var df dataframe.DataFrame
	if len(rows) == 0 {
		df = emptyLike(t.df)
	} else {
		df = t.df.Subset(slices.Clone(rows))
	}
	return &Table{variant: t.variant, loadedAt: t.loadedAt, df: df, origin: origin}
}

// Frame returns a copy of the underlying dataframe.
func (t *Table) Frame() dataframe.DataFrame { return t.df.Copy() }

// where keeps the rows for which keep returns true.
func (t *Table) where(keep func(i int) bool) *Table {
	rows := make([]int, 0, t.Len())
	for i := range t.Len() {
		if keep(i) {
			rows = append(rows, i)
		}
	}
	if len(rows) == t.Len() {
		return t
	}
	return t.Subset(rows)
}

func emptyLike(df dataframe.DataFrame) dataframe.DataFrame {
	names := df.Names()
	types := df.Types()
	cols := make([]series.Series, len(names))
	for i, name := range names {
		cols[i] = series.New([]string{}, types[i], name)
	}
	return dataframe.New(cols...)
}

func isNumeric(t series.Type) bool {
	return t == series.Float || t == series.Int
}

func missingColumn(col string) error {
	return fmt.Errorf("column %q: %w", col, domain.ErrSchema)
}
