// Package dataset builds the derived table for a sighting or listing CSV and
// provides the filter and aggregation helpers presentation code runs over it.
//
// A Table is produced once per load by Load or Build and is never mutated
// afterwards: every filter returns a new Table, and every accessor returns a
// copy of the underlying column. Null numeric values are NaN; null text
// values are reported through the validity slice returned by Table.Strings.
package dataset
