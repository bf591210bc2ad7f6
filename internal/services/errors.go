package services

import "errors"

// Service errors
var (
	ErrUnknownField = errors.New("unknown vocabulary field")
	ErrNoInput      = errors.New("no input")
)
