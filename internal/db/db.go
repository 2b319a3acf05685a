package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound          = errors.New("participant not found")
	ErrAlreadyRegistered = errors.New("participant already registered")
)

type DB struct {
	pool *pgxpool.Pool
}

func New(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Test connection
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

func (db *DB) Close() {
	db.pool.Close()
}

// RunMigrations runs database migrations and seeds the singleton settings row.
func (db *DB) RunMigrations(ctx context.Context) error {
	_, err := db.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS participants (
			id BIGSERIAL PRIMARY KEY,
			telegram_id BIGINT NOT NULL UNIQUE,
			full_name TEXT NOT NULL,
			group_name TEXT NOT NULL,
			preferences TEXT NOT NULL,
			recipient_id BIGINT,
			gift_given BOOLEAN NOT NULL DEFAULT FALSE,
			gift_received BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_participants_telegram_id ON participants(telegram_id);

		CREATE TABLE IF NOT EXISTS event_settings (
			id SMALLINT PRIMARY KEY CHECK (id = 1),
			registration_open BOOLEAN NOT NULL DEFAULT TRUE,
			event_started BOOLEAN NOT NULL DEFAULT FALSE
		);
		INSERT INTO event_settings (id, registration_open, event_started)
		VALUES (1, TRUE, FALSE)
		ON CONFLICT (id) DO NOTHING;
	`)
	return err
}
