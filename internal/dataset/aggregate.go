package dataset

import (
	"cmp"
	"math"
	"slices"

	"github.com/aclements/go-moremath/stats"

	"github.com/couchcryptid/dataset-explorer/internal/domain"
)

// GroupMean is the average price and odometer of one (model, brand) group,
// each rounded to the nearest ten. A nil mean means every value in the
// group was missing.
type GroupMean struct {
	Model    string   `json:"model"`
	Brand    string   `json:"brand"`
	Count    int      `json:"count"`
	Price    *float64 `json:"price"`
	Odometer *float64 `json:"odometer"`
}

type groupKey struct{ model, brand string }

// GroupMeans groups a listings table by exact (model, brand) and averages
// price and odometer over the non-null values. Rows with a missing key are
// left out. Groups are sorted by model, then brand.
func GroupMeans(t *Table) ([]GroupMean, error) {
	models, modelValid, err := t.Strings(domain.ModelColumn)
	if err != nil {
		return nil, err
	}
	brands, brandValid, err := t.Strings(domain.BrandColumn)
	if err != nil {
		return nil, err
	}
	prices, err := t.Floats(domain.PriceColumn)
	if err != nil {
		return nil, err
	}
	odometers, err := t.Floats(domain.OdometerColumn)
	if err != nil {
		return nil, err
	}

	type acc struct {
		count           int
		prices, odomets []float64
	}
	groups := make(map[groupKey]*acc)
	for i := range models {
		if !modelValid[i] || !brandValid[i] {
			continue
		}
		k := groupKey{models[i], brands[i]}
		a := groups[k]
		if a == nil {
			a = &acc{}
			groups[k] = a
		}
		a.count++
		if !math.IsNaN(prices[i]) {
			a.prices = append(a.prices, prices[i])
		}
		if !math.IsNaN(odometers[i]) {
			a.odomets = append(a.odomets, odometers[i])
		}
	}

	out := make([]GroupMean, 0, len(groups))
	for k, a := range groups {
		out = append(out, GroupMean{
			Model:    k.model,
			Brand:    k.brand,
			Count:    a.count,
			Price:    roundedMean(a.prices),
			Odometer: roundedMean(a.odomets),
		})
	}
	slices.SortFunc(out, func(a, b GroupMean) int {
		return cmp.Or(cmp.Compare(a.Model, b.Model), cmp.Compare(a.Brand, b.Brand))
	})
	return out, nil
}

func roundedMean(xs []float64) *float64 {
	if len(xs) == 0 {
		return nil
	}
	m := domain.RoundToTen(stats.Mean(xs))
	return &m
}
