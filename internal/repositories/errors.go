package repositories

import "errors"

// Sentinel errors shared by every repository implementation. Services
// classify repository failures with errors.Is against these.
var (
	// ErrNotFound is returned by GetByID when no record has the given id.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateKey is returned by Create (and Update, for unique-field
	// renames) when the write violates the primary key or a unique index.
	ErrDuplicateKey = errors.New("duplicate key")
)
