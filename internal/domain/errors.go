package domain

import "errors"

var (
	// ErrOutOfRange marks a categorical code outside its valid range, such
	// as a month number that is not 1-12. It fails the whole load.
	ErrOutOfRange = errors.New("value out of range")

	// ErrSchema marks a header that cannot be used: missing required
	// columns or names that collide after lower-casing.
	ErrSchema = errors.New("invalid schema")

	// ErrMalformedCSV marks a source file that is not well-formed CSV.
	ErrMalformedCSV = errors.New("malformed csv")
)
