package repositories

import "errors"

// ErrCafeNotFound is returned when no cafe has the requested ID.
var ErrCafeNotFound = errors.New("cafe not found")

// ErrDuplicateKey is returned when a write would give two cafes the same
// name or map URL. Nothing is written when it is returned.
var ErrDuplicateKey = errors.New("duplicate key")
