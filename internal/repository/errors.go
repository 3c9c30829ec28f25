package repository

import "errors"

var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("repository: not found")
	// ErrConflict indicates a unique-index violation on insert.
	ErrConflict = errors.New("repository: conflict")
)
