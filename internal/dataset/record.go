package dataset

import (
	"crypto/sha256"
	"encoding/hex"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/go-gota/gota/series"
)

// Record is one derived row in a form that marshals cleanly to JSON: nulls
// are nil and numbers are float64.
type Record struct {
	ID       string         `json:"id"`
	Dataset  string         `json:"dataset"`
	Row      int            `json:"row"`
	LoadedAt time.Time      `json:"loaded_at"`
	Values   map[string]any `json:"values"`
}

// Records converts every row of the table.
func (t *Table) Records() []Record {
	names := t.Columns()
	cols := make([]func(i int) any, len(names))
	for j, name := range names {
		cols[j] = cellReader(t.df.Col(name))
	}

	out := make([]Record, t.Len())
	for i := range out {
		values := make(map[string]any, len(names))
		for j, name := range names {
			values[name] = cols[j](i)
		}
		out[i] = Record{
			ID:       recordID(t.variant, t.origin[i], names, values),
			Dataset:  t.variant.String(),
			Row:      t.origin[i],
			LoadedAt: t.loadedAt,
			Values:   values,
		}
	}
	return out
}

func cellReader(s series.Series) func(i int) any {
	switch s.Type() {
	case series.Float, series.Int:
		floats := s.Float()
		return func(i int) any {
			if math.IsNaN(floats[i]) || math.IsInf(floats[i], 0) {
				return nil
			}
			return floats[i]
		}
	case series.Bool:
		return func(i int) any {
			e := s.Elem(i)
			if e.IsNA() {
				return nil
			}
			b, err := e.Bool()
			if err != nil {
				return nil
			}
			return b
		}
	default:
		vals, valid := stringValues(s)
		return func(i int) any {
			if !valid[i] {
				return nil
			}
			return vals[i]
		}
	}
}

// recordID hashes the dataset, the row's original position and its values,
// so replaying the same file yields the same IDs.
func recordID(v Variant, row int, names []string, values map[string]any) string {
	var b strings.Builder
	b.WriteString(v.String())
	b.WriteByte('|')
	b.WriteString(strconv.Itoa(row))
	for _, name := range names {
		b.WriteByte('|')
		switch x := values[name].(type) {
		case nil:
		case float64:
			b.WriteString(strconv.FormatFloat(x, 'g', -1, 64))
		case bool:
			b.WriteString(strconv.FormatBool(x))
		case string:
			b.WriteString(x)
		}
	}
	hash := sha256.Sum256([]byte(b.String()))
	return v.String() + "-" + hex.EncodeToString(hash[:8])
}
