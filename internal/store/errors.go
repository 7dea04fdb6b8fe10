package store

import "errors"

var (
	// ErrNotFound is returned when the requested item id is not in the store.
	ErrNotFound = errors.New("requested item not found")
)
