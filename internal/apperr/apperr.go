// Package apperr defines the sentinel errors shared across the service.
// Callers wrap them with fmt.Errorf("%w: ...") and match with errors.Is.
package apperr

import "errors"

var (
	// ErrValidation marks malformed input: bad event payloads, invalid
	// room participants, empty message bodies.
	ErrValidation = errors.New("validation error")

	// ErrNotFound marks a missing user, room or friend request.
	ErrNotFound = errors.New("not found")

	// ErrConflict marks a duplicate that could not be resolved by upsert.
	ErrConflict = errors.New("conflict")

	// ErrState marks a transition attempted on an already resolved
	// friend request.
	ErrState = errors.New("invalid state")

	// ErrPersistence marks an unreachable or failing store.
	ErrPersistence = errors.New("persistence error")
)
