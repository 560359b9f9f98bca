package model

import "errors"

// Sentinel errors for the model's failure taxonomy. All mutating operations
// wrap these with context via fmt.Errorf and %w.
var (
	// ErrInvalidArgument reports a nil or empty value where a field is mandatory.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrDuplicateKey reports an elementId (or other unique key) already registered.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrIllegalState reports an operation on an element whose attachment state
	// does not permit it: already attached to another model, already terminated,
	// or protected from removal.
	ErrIllegalState = errors.New("illegal state")

	// ErrNotFound reports a lookup or unlink against a key with no entry.
	ErrNotFound = errors.New("not found")
)
