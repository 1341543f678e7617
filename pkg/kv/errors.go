package kv

import "errors"

var (
	// ErrNotFound is returned when a key does not exist in the store.
	ErrNotFound = errors.New("kv: key not found")

	// ErrLocked is returned by Lock when another holder owns the key.
	ErrLocked = errors.New("kv: key is locked")
)
