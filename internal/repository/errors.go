// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers and the allocation workflow to distinguish between failure
// scenarios. ErrForbidden indicates that the current user is not
// authorized to act on a resource owned by someone else, ErrConflict
// signals that an operation cannot proceed because of dependent
// records, and ErrStateConflict reports that a conditional update
// found the row in a different state than the caller expected.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own. Handlers should translate this into an
// HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when a delete or update cannot be performed
// because of conflicting state, such as deleting a booth that still
// has active requests. Handlers should translate this into an HTTP
// 409 response.
var ErrConflict = errors.New("conflict")

// ErrStateConflict is returned by conditional updates when the row's
// current state does not match the expected state supplied by the
// caller. It always means the caller lost a race and should re-read
// before retrying; the row itself was left untouched.
var ErrStateConflict = errors.New("state conflict")
