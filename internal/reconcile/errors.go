// internal/reconcile/errors.go
package reconcile

import "errors"

var (
	// ErrConfiguration indicates the catalog search capability is missing or
	// unauthenticated. It aborts the whole run; per-entry failures never do.
	ErrConfiguration = errors.New("catalog search unavailable")
)
