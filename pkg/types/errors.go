package types

import "errors"

// Store operation errors. Engines wrap these with fmt.Errorf("%w: ...") so
// callers can match with errors.Is while still seeing the offending value.
var (
	// ErrNotFound reports that no record matches the given identifier.
	ErrNotFound = errors.New("record not found")

	// ErrConflict reports a uniqueness or referential-integrity violation:
	// a duplicate name, an already-existing association, or a delete blocked
	// by rows that still reference the record.
	ErrConflict = errors.New("conflict with existing records")

	// ErrBadRequest reports a malformed caller payload, such as an update
	// carrying no mutable fields or an extra column the kind does not have.
	ErrBadRequest = errors.New("bad request")
)

// ErrUnknownKind reports a catalog kind that is not in the registry. This is
// a configuration error (a programming mistake), not a data error, and is
// logged separately from the three errors above.
var ErrUnknownKind = errors.New("unknown catalog kind")

// Backend lifecycle errors.
var (
	ErrStoreDetached   = errors.New("store is not attached")
	ErrAlreadyAttached = errors.New("store is already attached")
	ErrInvalidID       = errors.New("invalid record ID")
)
