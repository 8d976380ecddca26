package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// Selection Errors.
	// These are no-op signals rather than failures; callers usually do nothing.

	// ErrEmptySelection indicates the selection was collapsed, blank, or
	// produced no positive-area rectangles.
	ErrEmptySelection = errors.New("empty selection")

	// ErrUnresolvedHost indicates the page host has no layout box yet.
	ErrUnresolvedHost = errors.New("page host not laid out")

	// Persistence Errors.

	// ErrPersistence indicates the highlight store rejected a write.
	// In-memory state is left untouched when this is returned.
	ErrPersistence = errors.New("persistence failure")
)
