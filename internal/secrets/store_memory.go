package secrets

import (
	"context"
	"fmt"

	"idrelay/pkg/platform/sentinel"
)

// InMemoryStore serves secrets from a static map supplied at construction.
// Used for development and tests; the map is never mutated afterwards, so
// unsynchronized concurrent reads are safe.
type InMemoryStore struct {
	values map[string]string
}

func NewInMemoryStore(values map[string]string) *InMemoryStore {
	copied := make(map[string]string, len(values))
	for k, v := range values {
		copied[k] = v
	}
	return &InMemoryStore{values: copied}
}

func (s *InMemoryStore) Get(_ context.Context, name string) (string, error) {
	value, ok := s.values[name]
	if !ok {
		return "", fmt.Errorf("secret %q: %w", name, sentinel.ErrNotFound)
	}
	return value, nil
}
