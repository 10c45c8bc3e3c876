package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range keys {
		t.Setenv(k, "")
	}
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StoreMemory, cfg.ProfileStore)
	assert.Equal(t, 2*time.Second, cfg.FHIRTimeout)
	assert.False(t, cfg.IncludeOptional)
	assert.True(t, cfg.IsDev())
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("PROFILE_STORE", " Redis ")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("FHIR_TIMEOUT", "500ms")
	t.Setenv("INCLUDE_OPTIONAL", "true")
	t.Setenv("DB_MAX_CONNS", "4")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, StoreRedis, cfg.ProfileStore)
	assert.Equal(t, 500*time.Millisecond, cfg.FHIRTimeout)
	assert.True(t, cfg.IncludeOptional)
	assert.Equal(t, int32(4), cfg.DBMaxConns)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"memory", Config{ProfileStore: StoreMemory}, ""},
		{"redis without url", Config{ProfileStore: StoreRedis}, "REDIS_URL"},
		{"sqlite without path", Config{ProfileStore: StoreSQLite}, "SQLITE_PATH"},
		{"postgres without url", Config{ProfileStore: StorePostgres}, "DATABASE_URL"},
		{"postgres", Config{ProfileStore: StorePostgres, DatabaseURL: "postgres://x"}, ""},
		{"unknown store", Config{ProfileStore: "etcd"}, "PROFILE_STORE"},
		{"fhir without timeout", Config{ProfileStore: StoreMemory, FHIRBaseURL: "http://fhir"}, "FHIR_TIMEOUT"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}
