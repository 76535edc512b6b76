package journal

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// PostgresStore persists journal entries to PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore wraps an open database handle.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Open connects to PostgreSQL and verifies the connection.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// Migrate creates the journal table if it does not exist.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS dispatch_journal (
			id          UUID PRIMARY KEY,
			uid         TEXT NOT NULL,
			event_name  TEXT NOT NULL,
			kind        TEXT NOT NULL,
			data_center TEXT NOT NULL,
			status      TEXT NOT NULL,
			reason      TEXT NOT NULL DEFAULT '',
			created_at  TIMESTAMPTZ NOT NULL
		);
		CREATE INDEX IF NOT EXISTS dispatch_journal_uid_idx ON dispatch_journal (uid, created_at);
	`)
	if err != nil {
		return fmt.Errorf("migrate dispatch journal: %w", err)
	}
	return nil
}

func (s *PostgresStore) Append(ctx context.Context, entry Entry) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO dispatch_journal (id, uid, event_name, kind, data_center, status, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		entry.ID, entry.UID, entry.EventName, entry.Kind, entry.DataCenter,
		string(entry.Status), entry.Reason, entry.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("append journal entry: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListByUID(ctx context.Context, uid string) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, uid, event_name, kind, data_center, status, reason, created_at
		FROM dispatch_journal
		WHERE uid = $1
		ORDER BY created_at ASC`,
		uid,
	)
	if err != nil {
		return nil, fmt.Errorf("list journal entries: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var status string
		if err := rows.Scan(&e.ID, &e.UID, &e.EventName, &e.Kind, &e.DataCenter, &status, &e.Reason, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("scan journal entry: %w", err)
		}
		e.Status = Status(status)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate journal entries: %w", err)
	}
	return out, nil
}
