package dataset

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/aclements/go-moremath/stats"

	"github.com/couchcryptid/dataset-explorer/internal/domain"
)

// Histogram counts a numeric column in equal-width bins, one count series
// per category.
type Histogram struct {
	Value    string `json:"value"`
	Category string `json:"category,omitempty"`
	// Edges holds len(bins)+1 bin boundaries. Every bin is closed on the
	// left; the last one is closed on the right as well.
	Edges  []float64        `json:"edges"`
	Series []CategoryCounts `json:"series"`
	// Skipped counts rows left out for a missing value or category.
	Skipped int `json:"skipped"`
}

// CategoryCounts is one category's per-bin counts.
type CategoryCounts struct {
	Category string `json:"category"`
	Counts   []int  `json:"counts"`
	Total    int    `json:"total"`
}

// BuildHistogram bins valueCol into the given number of bins between its
// minimum and maximum non-null value. When categoryCol is empty every row
// falls in a single unnamed category. Month categories come out in calendar
// order, others lexically.
func BuildHistogram(t *Table, valueCol, categoryCol string, bins int) (Histogram, error) {
	if bins <= 0 {
		return Histogram{}, fmt.Errorf("histogram: bins must be positive, got %d", bins)
	}
	values, err := t.Floats(valueCol)
	if err != nil {
		return Histogram{}, err
	}
	cats := make([]string, len(values))
	catValid := make([]bool, len(values))
	for i := range catValid {
		catValid[i] = true
	}
	if categoryCol != "" {
		if cats, catValid, err = t.Strings(categoryCol); err != nil {
			return Histogram{}, err
		}
	}

	h := Histogram{Value: valueCol, Category: categoryCol}
	lo, hi := math.Inf(1), math.Inf(-1)
	var kept []int
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) || !catValid[i] {
			h.Skipped++
			continue
		}
		kept = append(kept, i)
		lo, hi = min(lo, v), max(hi, v)
	}
	if len(kept) == 0 {
		return h, nil
	}
	if hi == lo {
		hi = lo + 1
	}

	h.Edges = make([]float64, bins+1)
	width := (hi - lo) / float64(bins)
	for i := range h.Edges {
		h.Edges[i] = lo + float64(i)*width
	}
	h.Edges[bins] = hi

	hists := make(map[string]*stats.LinearHist)
	for _, i := range kept {
		lh := hists[cats[i]]
		if lh == nil {
			lh = stats.NewLinearHist(lo, hi, bins)
			hists[cats[i]] = lh
		}
		lh.Add(values[i])
	}

	names := make([]string, 0, len(hists))
	for name := range hists {
		names = append(names, name)
	}
	slices.SortFunc(names, categoryOrder(categoryCol))

	for _, name := range names {
		low, counts, high := hists[name].Counts()
		cc := CategoryCounts{Category: name, Counts: make([]int, bins)}
		for b, c := range counts {
			cc.Counts[b] = int(c)
		}
		// Values equal to the maximum land past the last bin; rounding can
		// push the minimum below the first.
		cc.Counts[0] += int(low)
		cc.Counts[bins-1] += int(high)
		for _, c := range cc.Counts {
			cc.Total += c
		}
		h.Series = append(h.Series, cc)
	}
	return h, nil
}

func categoryOrder(categoryCol string) func(a, b string) int {
	if categoryCol != domain.MonthColumn {
		return cmp.Compare[string]
	}
	return func(a, b string) int {
		ma, okA := domain.MonthNumber(a)
		mb, okB := domain.MonthNumber(b)
		switch {
		case okA && okB:
			return cmp.Compare(ma, mb)
		case okA:
			return -1
		case okB:
			return 1
		default:
			return cmp.Compare(a, b)
		}
	}
}
