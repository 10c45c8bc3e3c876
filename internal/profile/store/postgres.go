package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"reminder-engine/internal/model"
	"reminder-engine/internal/profile"
)

type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// NewPool builds a pgx pool and verifies connectivity.
func NewPool(ctx context.Context, databaseURL string, maxConns, minConns int32) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	if maxConns > 0 {
		cfg.MaxConns = maxConns
	}
	if minConns > 0 {
		cfg.MinConns = minConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}

// EnsureSchema creates the overrides table when missing.
func (s *Postgres) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS profile_overrides (
		storage_key TEXT PRIMARY KEY,
		profile TEXT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`)
	if err != nil {
		return fmt.Errorf("create profile_overrides: %w", err)
	}
	return nil
}

func (s *Postgres) Get(ctx context.Context, patientID string) (model.ScheduleProfile, bool, error) {
	var raw string
	err := s.pool.QueryRow(ctx,
		`SELECT profile FROM profile_overrides WHERE storage_key = $1`, StorageKey(patientID),
	).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read profile override: %w", err)
	}
	p, ok := decode(raw)
	return p, ok, nil
}

func (s *Postgres) Set(ctx context.Context, patientID string, p model.ScheduleProfile) error {
	if !p.Valid() {
		return profile.ErrInvalidProfile
	}
	_, err := s.pool.Exec(ctx, `INSERT INTO profile_overrides (storage_key, profile, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (storage_key) DO UPDATE SET profile = EXCLUDED.profile, updated_at = now()`,
		StorageKey(patientID), string(p),
	)
	if err != nil {
		return fmt.Errorf("write profile override: %w", err)
	}
	return nil
}
