package errs

import "errors"

// Common sentinel errors for cross-layer signaling.
var (
	ErrNotFound  = errors.New("not_found")
	ErrForbidden = errors.New("forbidden")
	ErrInvalid   = errors.New("invalid")
	// ErrUnavailable reports a ledger source that cannot be reached.
	ErrUnavailable = errors.New("unavailable")
)
