package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bibbank/origination/internal/domain/port"
)

// PostgresStore keeps one session's records as rows of session_records.
type PostgresStore struct {
	pool      *pgxpool.Pool
	sessionID string
}

// NewPostgresStore returns the store for sessionID.
func NewPostgresStore(pool *pgxpool.Pool, sessionID string) *PostgresStore {
	return &PostgresStore{pool: pool, sessionID: sessionID}
}

func (s *PostgresStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	query := `
		SELECT value
		FROM session_records
		WHERE session_id = $1 AND key = $2
	`
	var value []byte
	err := s.pool.QueryRow(ctx, query, s.sessionID, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("select session record %s: %w", key, err)
	}
	return value, true, nil
}

// Set upserts the record.
func (s *PostgresStore) Set(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO session_records (session_id, key, value, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (session_id, key) DO UPDATE SET
			value      = EXCLUDED.value,
			updated_at = EXCLUDED.updated_at
	`
	tag, err := s.pool.Exec(ctx, query, s.sessionID, key, value)
	if err != nil {
		return fmt.Errorf("save session record %s: %w", key, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("failed to save session record %s", key)
	}
	return nil
}

func (s *PostgresStore) Clear(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM session_records WHERE session_id = $1`, s.sessionID); err != nil {
		return fmt.Errorf("delete session records: %w", err)
	}
	return nil
}

// PostgresFactory opens PostgreSQL-backed session stores.
type PostgresFactory struct {
	pool *pgxpool.Pool
}

// NewPostgresFactory returns the factory.
func NewPostgresFactory(pool *pgxpool.Pool) *PostgresFactory {
	return &PostgresFactory{pool: pool}
}

func (f *PostgresFactory) Open(_ context.Context, sessionID string) (port.SessionStore, error) {
	return NewPostgresStore(f.pool, sessionID), nil
}
