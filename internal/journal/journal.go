// Package journal keeps an append-only record of pipeline outcomes. It exists
// for operational visibility and caller-side idempotency checks; the pipeline
// never blocks dispatch on it.
package journal

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Status records how an event left the pipeline.
type Status string

const (
	StatusDispatched Status = "dispatched"
	StatusDropped    Status = "dropped"
	StatusFailed     Status = "failed"
)

// Entry is one pipeline outcome. Payload contents are never journaled; only
// routing facts are.
type Entry struct {
	ID         uuid.UUID
	UID        string
	EventName  string
	Kind       string
	DataCenter string
	Status     Status
	Reason     string
	Timestamp  time.Time
}

// Store is the journal persistence port.
type Store interface {
	// Append records an entry. Implementations must not mutate it.
	Append(ctx context.Context, entry Entry) error

	// ListByUID returns entries for one account, oldest first.
	ListByUID(ctx context.Context, uid string) ([]Entry, error)
}
