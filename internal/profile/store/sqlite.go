package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"reminder-engine/internal/model"
	"reminder-engine/internal/profile"
)

// SQLite persists overrides in a local SQLite file.
type SQLite struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLite opens (or creates) the database at path.
func NewSQLite(path string) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create sqlite dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	s := &SQLite{db: db}
	if err := s.init(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLite) init() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS profile_overrides (
		storage_key TEXT PRIMARY KEY,
		profile TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);`)
	if err != nil {
		return fmt.Errorf("create profile_overrides: %w", err)
	}
	return nil
}

func (s *SQLite) Get(ctx context.Context, patientID string) (model.ScheduleProfile, bool, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT profile FROM profile_overrides WHERE storage_key = ?`, StorageKey(patientID),
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read profile override: %w", err)
	}
	p, ok := decode(raw)
	return p, ok, nil
}

func (s *SQLite) Set(ctx context.Context, patientID string, p model.ScheduleProfile) error {
	if !p.Valid() {
		return profile.ErrInvalidProfile
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx, `INSERT INTO profile_overrides (storage_key, profile, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(storage_key) DO UPDATE SET profile = excluded.profile, updated_at = excluded.updated_at`,
		StorageKey(patientID), string(p), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("write profile override: %w", err)
	}
	return nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
