package storage

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"eventim-monitor/models"
)

// PostgresWriter persists the snapshot history to PostgreSQL. It is an
// optional sink: the monitor only constructs one when the operator enables
// it in configuration.
type PostgresWriter struct {
	db *sql.DB
}

// NewPostgresWriter opens a connection to PostgreSQL, runs schema migrations,
// and returns a ready-to-use PostgresWriter.
func NewPostgresWriter(dsn string) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	for i := 0; i < 10; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: ping failed after retries: %w", err)
	}

	pw := &PostgresWriter{db: db}
	if err := pw.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return pw, nil
}

func (pw *PostgresWriter) migrate() error {
	_, err := pw.db.Exec(`
		CREATE TABLE IF NOT EXISTS seat_snapshots (
			id                 SERIAL PRIMARY KEY,
			available_standard INTEGER     NOT NULL DEFAULT 0,
			available_premium  INTEGER     NOT NULL DEFAULT 0,
			sold               INTEGER     NOT NULL DEFAULT 0,
			captured_at        TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_seat_snapshots_captured_at ON seat_snapshots(captured_at);
	`)
	return err
}

// Append inserts one history row for the given snapshot.
func (pw *PostgresWriter) Append(snap models.Snapshot) error {
	capturedAt := snap.Timestamp
	if capturedAt.IsZero() {
		capturedAt = time.Now()
	}

	_, err := pw.db.Exec(`
		INSERT INTO seat_snapshots (available_standard, available_premium, sold, captured_at)
		VALUES ($1, $2, $3, $4)
	`, snap.AvailableStandard, snap.AvailablePremium, snap.Sold, capturedAt)
	if err != nil {
		return fmt.Errorf("postgres: insert snapshot: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}
