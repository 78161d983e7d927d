// Package repository declares the storage error contract shared by every
// backend implementation (Mongo and the in-memory store alike). Services
// match on these sentinels with errors.Is and translate them into their own
// domain errors.
package repository

import "errors"

var (
	// ErrNotFound means the referenced document does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict means a conditional read-modify-write lost to a concurrent
	// writer: the document exists but its guarded fields no longer match the
	// expected values.
	ErrConflict = errors.New("conflict")

	// ErrDuplicate means an insert violated a uniqueness constraint.
	ErrDuplicate = errors.New("duplicate")
)
