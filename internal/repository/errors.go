// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as handlers
// to distinguish between failure scenarios without string matching: a
// missing row surfaces as sql.ErrNoRows, everything else gets a named
// sentinel here.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation on a
// resource owned by someone else. Handlers translate this into HTTP 403.
var ErrForbidden = errors.New("forbidden")

// ErrEmailExists is returned when registration collides with an existing
// account. Handlers translate this into HTTP 409.
var ErrEmailExists = errors.New("email already exists")

// ErrInvalidTransition is returned when a status change targets a
// reservation that is no longer pending. Accepted and denied are terminal;
// re-deciding is rejected rather than silently overwritten. Handlers
// translate this into HTTP 409.
var ErrInvalidTransition = errors.New("reservation already decided")

// ErrMissingReference is returned when an insert points at a user or
// restaurant that does not exist. Handlers translate this into HTTP 400.
var ErrMissingReference = errors.New("referenced row does not exist")
