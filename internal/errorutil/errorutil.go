package errorutil

import "errors"

// ErrDataIntegrity is a base error type to use for failures that are due to
// unrecoverable data integrity issues.
var ErrDataIntegrity = errors.New("data integrity error")

// ErrRuntimeNotFound is returned when a trial's output has no line for the
// benchmark filter pattern.
var ErrRuntimeNotFound = errors.New("could not find runtime for benchmark pattern")

// ErrMalformedName is returned when a benchmark name doesn't have the
// segments needed to derive size, label or thread count.
var ErrMalformedName = errors.New("malformed benchmark name")

// ErrMissingColumn is returned when a CSV report lacks a required column.
var ErrMissingColumn = errors.New("missing column")

// ErrInvalidCSV wraps CSV decoding failures.
var ErrInvalidCSV = errors.New("is the input a valid CSV?")

// ErrDuplicateEntry is returned when a table cell is written twice.
var ErrDuplicateEntry = errors.New("index contains duplicate entries")

// ErrBaselineNotFound is returned when the baseline series or value used for
// normalization is missing or ambiguous.
var ErrBaselineNotFound = errors.New("baseline not found")
