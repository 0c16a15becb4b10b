package store

import "errors"

var (
	// ErrNotFound is returned when no document exists at the given key.
	ErrNotFound = errors.New("store: document not found")
	// ErrExists is returned by Create when the key is already taken.
	ErrExists = errors.New("store: document already exists")
	// ErrClosed is returned for operations on a closed store.
	ErrClosed = errors.New("store: closed")
	// ErrBadKey is returned for empty or malformed document keys.
	ErrBadKey = errors.New("store: bad document key")
)
