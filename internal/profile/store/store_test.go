package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reminder-engine/internal/model"
	"reminder-engine/internal/profile"
)

func TestStorageKey(t *testing.T) {
	assert.Equal(t, "vax_registry_profile:p-1", StorageKey("p-1"))
	assert.Equal(t, "vax_registry_profile:global", StorageKey(""))
}

func exerciseStore(t *testing.T, s profile.OverrideStore) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := s.Get(ctx, "p-1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "p-1", model.ProfileGlobal))
	got, ok, err := s.Get(ctx, "p-1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, model.ProfileGlobal, got)

	require.NoError(t, s.Set(ctx, "p-1", model.ProfileAustria))
	got, _, err = s.Get(ctx, "p-1")
	require.NoError(t, err)
	assert.Equal(t, model.ProfileAustria, got)

	_, ok, err = s.Get(ctx, "p-2")
	require.NoError(t, err)
	assert.False(t, ok, "overrides are per patient")

	assert.ErrorIs(t, s.Set(ctx, "p-1", "NOPE"), profile.ErrInvalidProfile)
}

func TestMemory(t *testing.T) {
	exerciseStore(t, NewMemory())
}

func TestMemoryIgnoresCorruptValue(t *testing.T) {
	s := NewMemory()
	s.values[StorageKey("p-1")] = "garbage"
	_, ok, err := s.Get(context.Background(), "p-1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLite(t *testing.T) {
	s, err := NewSQLite(filepath.Join(t.TempDir(), "nested", "profiles.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	exerciseStore(t, s)
}

func TestSQLitePersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.db")
	ctx := context.Background()

	s, err := NewSQLite(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "", model.ProfileGlobal))
	require.NoError(t, s.Close())

	reopened, err := NewSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })

	got, ok, err := reopened.Get(ctx, "")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, model.ProfileGlobal, got)
}
