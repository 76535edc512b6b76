package journal

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type InMemoryStoreSuite struct {
	suite.Suite
	store *InMemoryStore
	ctx   context.Context
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.store = NewInMemoryStore()
	s.ctx = context.Background()
}

func (s *InMemoryStoreSuite) entry(uid string, status Status) Entry {
	return Entry{
		ID:         uuid.New(),
		UID:        uid,
		EventName:  "accountUpdated",
		Kind:       "update",
		DataCenter: "us",
		Status:     status,
		Timestamp:  time.Now(),
	}
}

func (s *InMemoryStoreSuite) TestAppendAndList() {
	s.Require().NoError(s.store.Append(s.ctx, s.entry("123", StatusDispatched)))
	s.Require().NoError(s.store.Append(s.ctx, s.entry("123", StatusDropped)))
	s.Require().NoError(s.store.Append(s.ctx, s.entry("456", StatusDispatched)))

	entries, err := s.store.ListByUID(s.ctx, "123")
	s.Require().NoError(err)
	s.Len(entries, 2)
	s.Equal(StatusDispatched, entries[0].Status)
	s.Equal(StatusDropped, entries[1].Status)
	s.Equal(3, s.store.Len())
}

func (s *InMemoryStoreSuite) TestListUnknownUID() {
	entries, err := s.store.ListByUID(s.ctx, "missing")
	s.Require().NoError(err)
	s.Empty(entries)
}

func (s *InMemoryStoreSuite) TestConcurrentAppend() {
	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.store.Append(s.ctx, s.entry("123", StatusDispatched))
		}()
	}
	wg.Wait()
	s.Equal(50, s.store.Len())
}
