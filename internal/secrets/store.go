// Package secrets adapts external secret storage behind a narrow retrieval
// interface. The relay resolves logical secret names via the datacenter
// registry and fetches values here; values are never cached beyond the
// current operation.
package secrets

import "context"

// Store retrieves secret values by logical name.
type Store interface {
	// Get returns the secret value, or sentinel.ErrNotFound (wrapped) when the
	// name has no value.
	Get(ctx context.Context, name string) (string, error)
}
