package sink

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// events is append-only: the pipeline never updates or deletes rows.
const eventsSchema = `
CREATE TABLE IF NOT EXISTS events (
	timestamp       TEXT NOT NULL,
	event_id        TEXT NOT NULL,
	location        TEXT NOT NULL,
	lat             DOUBLE PRECISION NOT NULL,
	lng             DOUBLE PRECISION NOT NULL,
	event_type      TEXT NOT NULL,
	summary         TEXT NOT NULL,
	people_affected BIGINT NOT NULL,
	severity_score  INT NOT NULL,
	donation_links  TEXT NOT NULL
)`

const insertEvent = `
INSERT INTO events (
	timestamp, event_id, location, lat, lng, event_type,
	summary, people_affected, severity_score, donation_links
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

type PostgresRowSink struct {
	db *sqlx.DB
}

func NewPostgresRowSink(db *sqlx.DB) (*PostgresRowSink, error) {
	if _, err := db.Exec(eventsSchema); err != nil {
		return nil, fmt.Errorf("create events table: %w", err)
	}
	return &PostgresRowSink{db: db}, nil
}

func (s *PostgresRowSink) AppendRow(ctx context.Context, values []any) error {
	if _, err := s.db.ExecContext(ctx, insertEvent, values...); err != nil {
		return fmt.Errorf("insert event row: %w", err)
	}
	return nil
}
