// Package ports defines the notification module's external collaborator
// interfaces. Interfaces live here when consumed by both the service and the
// transport layer.
package ports

//go:generate mockgen -source=ports.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"idrelay/internal/journal"
	"idrelay/internal/notification/models"
)

// Publisher hands a fully constructed payload to the downstream delivery
// system. The pipeline calls it exactly once per event and performs no retry
// or backoff; delivery failures surface to the caller.
type Publisher interface {
	Publish(ctx context.Context, payload models.Payload) error
}

// SecretStore retrieves a secret value by its logical name. Callers never
// cache the returned value beyond the current operation.
type SecretStore interface {
	Get(ctx context.Context, name string) (string, error)
}

// Journal records pipeline outcomes. Append failures are logged, never
// propagated into the dispatch path.
type Journal interface {
	Append(ctx context.Context, entry journal.Entry) error
}
