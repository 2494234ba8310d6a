package main

import (
	"fmt"

	"github.com/couchcryptid/dataset-explorer/internal/config"
	"github.com/couchcryptid/dataset-explorer/internal/dataset"
	"github.com/couchcryptid/dataset-explorer/internal/domain"
	"github.com/couchcryptid/dataset-explorer/internal/report"
)

// selectionFromConfig turns the REPORT_* settings into a report selection.
func selectionFromConfig(rc config.ReportConfig) (report.Selection, error) {
	scale, err := domain.ParseDurationScale(rc.DurationScale)
	if err != nil {
		return report.Selection{}, fmt.Errorf("REPORT_DURATION_SCALE: %w", err)
	}
	split, err := domain.ParseCategory(rc.Split)
	if err != nil {
		return report.Selection{}, fmt.Errorf("REPORT_SPLIT: %w", err)
	}
	scatterScale, err := domain.ParseDurationScale(rc.ScatterScale)
	if err != nil {
		return report.Selection{}, fmt.Errorf("REPORT_SCATTER_SCALE: %w", err)
	}
	scatterColor, err := domain.ParseCategory(rc.ScatterColor)
	if err != nil {
		return report.Selection{}, fmt.Errorf("REPORT_SCATTER_COLOR: %w", err)
	}

	return report.Selection{
		Sightings: dataset.SightingFilter{
			Country:  rc.Country,
			Shape:    rc.Shape,
			MinHours: rc.MinHours,
			MaxHours: rc.MaxHours,
		},
		Scale:        scale,
		Split:        split,
		ScatterScale: scatterScale,
		ScatterColor: scatterColor,
		MapShape:     rc.MapShape,
		MapSize:      rc.MapSize,
		Listings: dataset.ListingFilter{
			Brands:  rc.Brands,
			MinYear: rc.YearMin,
			MaxYear: rc.YearMax,
		},
		Bins: rc.Bins,
	}, nil
}
