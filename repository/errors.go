package repository

import "errors"

var (
	// ErrNotFound is returned when no record matches the lookup.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a unique field is already taken.
	ErrConflict = errors.New("conflict: record already exists")

	// ErrInvalidInput is returned when a record is missing required fields.
	ErrInvalidInput = errors.New("invalid input")
)
