//go:build integration

package journal_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"idrelay/internal/journal"
	"idrelay/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *journal.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.store = journal.NewPostgresStore(s.postgres.DB)
	s.Require().NoError(s.store.Migrate(context.Background()))
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "dispatch_journal"))
}

func (s *PostgresStoreSuite) entry(uid string, status journal.Status, at time.Time) journal.Entry {
	return journal.Entry{
		ID:         uuid.New(),
		UID:        uid,
		EventName:  "accountUpdated",
		Kind:       "update",
		DataCenter: "us",
		Status:     status,
		Timestamp:  at,
	}
}

func (s *PostgresStoreSuite) TestAppendAndListRoundTrip() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	s.Require().NoError(s.store.Append(ctx, s.entry("123", journal.StatusDispatched, now)))
	s.Require().NoError(s.store.Append(ctx, s.entry("123", journal.StatusFailed, now.Add(time.Second))))
	s.Require().NoError(s.store.Append(ctx, s.entry("456", journal.StatusDropped, now)))

	entries, err := s.store.ListByUID(ctx, "123")
	s.Require().NoError(err)
	s.Require().Len(entries, 2)

	s.Equal(journal.StatusDispatched, entries[0].Status)
	s.Equal(journal.StatusFailed, entries[1].Status)
	s.Equal("accountUpdated", entries[0].EventName)
	s.Equal("us", entries[0].DataCenter)
	s.WithinDuration(now, entries[0].Timestamp, time.Millisecond)
}

func (s *PostgresStoreSuite) TestListUnknownUID() {
	entries, err := s.store.ListByUID(context.Background(), "missing")
	s.Require().NoError(err)
	s.Empty(entries)
}
