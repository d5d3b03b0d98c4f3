package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrStatusConflict is returned when a compare-and-swap status update
	// matched no row because the reservation was no longer in the expected
	// status. The caller re-reads to decide between an idempotent no-op and
	// an invalid transition.
	ErrStatusConflict = errors.New("reservation status changed concurrently")
)
