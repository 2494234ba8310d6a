// Package domain holds the scalar rules behind the derived sighting and
// listing tables: column naming, month names, duration units, age,
// free-text cleanup, and rounding.
//
// # Data Sources
//
// Two CSV exports are supported. Both are written by a dataframe tool and
// usually carry a leading unnamed index column ("" or "Unnamed: 0"), which
// is dropped at load.
//
// UFO sightings:
//
//	Date_time, date_documented, Year, Month, Hour, Season, Country_Code,
//	Country, Region, Locale, latitude, longitude, UFO_shape,
//	length_of_encounter_seconds, Encounter_Duration, Description
//
// Vehicle listings:
//
//	price, model_year, model, condition, cylinders, fuel, odometer,
//	transmission, type, paint_color, is_4wd, date_posted, days_listed
//
// # Conventions
//
// Column names:
//
//	Lower-cased exactly once, when the header is read. The legacy
//	"length_of_encounter_seconds" column is renamed to "duration_secs".
//
// Durations:
//
//	Seconds are canonical. Minutes, hours, and days are derived from the
//	seconds value with plain float division and no rounding:
//	mins = secs/60, hours = mins/60, days = hours/24.
//
// Months:
//
//	The numeric "month" column (1-12) is replaced by the English month
//	name. Any other value, including a missing one, fails the load with
//	[ErrOutOfRange].
//
// Age:
//
//	Fractional years between the sighting and a reference year:
//	age = R - (year + month/12). R defaults to [DefaultReferenceYear].
//	Timestamps that do not parse yield a null age.
//
// Description text:
//
//	The source encodes a few characters as bare numeric entities:
//	"&#44" (comma) and "&#39" (apostrophe) are deleted, "&#33"
//	(exclamation mark) becomes a period. See [SanitizeDescription].
//
// Vehicle model:
//
//	"<brand> <type...>", e.g. "ford f-150" or "chevrolet silverado 1500".
//	Split on the first whitespace character; see [SplitModel]. The
//	listing's own type column is kept as body_type.
package domain
