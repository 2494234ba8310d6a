package domain

import (
	"regexp"
	"strings"
)

// Column names shared by the builder, filters, and aggregations.
const (
	LegacyDurationColumn = "length_of_encounter_seconds"
	DurationSecsColumn   = "duration_secs"
	DurationMinsColumn   = "duration_mins"
	DurationHoursColumn  = "duration_hours"
	DurationDaysColumn   = "duration_days"

	MonthColumn       = "month"
	AgeColumn         = "age"
	ReportLagColumn   = "report_lag_days"
	TimestampColumn   = "date_time"
	DocumentedColumn  = "date_documented"
	DescriptionColumn = "description"
	CountryColumn     = "country"
	RegionColumn      = "region"
	SeasonColumn      = "season"
	ShapeColumn       = "ufo_shape"
	LatitudeColumn    = "latitude"
	LongitudeColumn   = "longitude"

	ModelColumn     = "model"
	BrandColumn     = "brand"
	TypeColumn      = "type"
	BodyTypeColumn  = "body_type"
	PriceColumn     = "price"
	OdometerColumn  = "odometer"
	ModelYearColumn = "model_year"
	ConditionColumn = "condition"
)

// indexColumnRe matches the placeholder name pandas gives a written index.
var indexColumnRe = regexp.MustCompile(`^(?i:unnamed: \d+)$`)

// NormalizeColumnName lower-cases a header name and trims surrounding
// whitespace. Applying it twice gives the same result as applying it once.
func NormalizeColumnName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// IsIndexColumn reports whether a header names the unnamed index column
// introduced by the exporting tool.
func IsIndexColumn(name string) bool {
	name = strings.TrimSpace(name)
	return name == "" || indexColumnRe.MatchString(name)
}
