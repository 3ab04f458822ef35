// Package allocation owns the transition rule applied across booths
// and requests: submission validation, the approve/reject decision and
// the at-most-one-accepted-per-booth guarantee. It does not own data;
// it drives the booth ledger and request store through their
// conditional-update entry points so that two racing writers on the
// same booth cannot both win.
package allocation

import "errors"

// The sentinels below are the full failure taxonomy of the workflow.
// ErrConflict and ErrBoothUnavailable are retryable after a re-read;
// the rest are terminal for the call and map to 4xx responses.
var (
	// ErrNotFound means the referenced request does not exist.
	ErrNotFound = errors.New("request not found")

	// ErrInvalidBooth means the booth does not exist or belongs to a
	// different expo than the submission implies.
	ErrInvalidBooth = errors.New("invalid booth")

	// ErrDuplicateRequest means the company already has a non-rejected
	// request on that booth.
	ErrDuplicateRequest = errors.New("duplicate request")

	// ErrAlreadyDecided means the request is no longer pending.
	ErrAlreadyDecided = errors.New("request already decided")

	// ErrConflict means a conditional update lost a race against a
	// concurrent decision. The caller should re-read and may retry.
	ErrConflict = errors.New("conflicting concurrent decision")

	// ErrBoothUnavailable means the booth was booked (or drifted) by
	// the time of the operation. Retryable against another booth.
	ErrBoothUnavailable = errors.New("booth unavailable")
)
