package dataprocessing

import "errors"

var (
	// ErrColumnMissing reports an expected column absent from the input in strict mode
	ErrColumnMissing = errors.New("column missing")
	// ErrUnsupportedFormat reports an input extension other than .csv or .xlsx
	ErrUnsupportedFormat = errors.New("unsupported input format")
	// ErrEmptyInput reports an input without a header row
	ErrEmptyInput = errors.New("empty input")
)
