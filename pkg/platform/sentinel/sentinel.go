package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and collaborator adapters
// (secret store, dispatch journal, publisher transport) return these, optionally
// wrapped, so services can translate them into domain errors.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: named secret or journal entry does not exist
// - ErrConflict: concurrent write lost
// - ErrUnavailable: collaborator temporarily unreachable
//
// For validation errors (bad input, missing fields), use pkg/domain-errors.
var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrUnavailable = errors.New("unavailable")
)
