package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const saveKey = "default"

// PGStore keeps the snapshot in a single-row key/value table. Useful when
// the game runs on a host without durable local disk.
type PGStore struct {
	pool *pgxpool.Pool
}

func NewPGStore(ctx context.Context, databaseURL string) (*PGStore, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	cfg.MaxConns = 4
	cfg.MaxConnLifetime = 30 * time.Minute
	cfg.MaxConnIdleTime = 10 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	_, err = pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS saves (
			key        TEXT PRIMARY KEY,
			snapshot   TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure saves table: %w", err)
	}
	return &PGStore{pool: pool}, nil
}

func (s *PGStore) Load(ctx context.Context) ([]byte, bool, error) {
	var snapshot string
	err := s.pool.QueryRow(ctx, `SELECT snapshot FROM saves WHERE key = $1`, saveKey).Scan(&snapshot)
	if err == pgx.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return []byte(snapshot), true, nil
}

func (s *PGStore) Save(ctx context.Context, snapshot []byte) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO saves (key, snapshot, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET snapshot = EXCLUDED.snapshot, updated_at = now()
	`, saveKey, string(snapshot))
	return err
}

func (s *PGStore) Clear(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM saves WHERE key = $1`, saveKey)
	return err
}

func (s *PGStore) Close() {
	s.pool.Close()
}
