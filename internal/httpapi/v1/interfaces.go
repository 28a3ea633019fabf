package v1

import "context"

// ReadyChecker is optionally implemented by ledger sources to indicate readiness.
type ReadyChecker interface {
	Ready(ctx context.Context) error
}
