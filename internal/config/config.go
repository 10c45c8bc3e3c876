package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	StoreMemory   = "memory"
	StoreRedis    = "redis"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
)

type Config struct {
	Port            string        `mapstructure:"PORT"`
	Env             string        `mapstructure:"ENV"`
	LogLevel        string        `mapstructure:"LOG_LEVEL"`
	ProfileStore    string        `mapstructure:"PROFILE_STORE"`
	RedisURL        string        `mapstructure:"REDIS_URL"`
	SQLitePath      string        `mapstructure:"SQLITE_PATH"`
	DatabaseURL     string        `mapstructure:"DATABASE_URL"`
	DBMaxConns      int32         `mapstructure:"DB_MAX_CONNS"`
	DBMinConns      int32         `mapstructure:"DB_MIN_CONNS"`
	FHIRBaseURL     string        `mapstructure:"FHIR_BASE_URL"`
	FHIRTimeout     time.Duration `mapstructure:"FHIR_TIMEOUT"`
	FHIRCacheTTL    time.Duration `mapstructure:"FHIR_CACHE_TTL"`
	IncludeOptional bool          `mapstructure:"INCLUDE_OPTIONAL"`
}

var keys = []string{
	"PORT", "ENV", "LOG_LEVEL", "PROFILE_STORE", "REDIS_URL", "SQLITE_PATH",
	"DATABASE_URL", "DB_MAX_CONNS", "DB_MIN_CONNS", "FHIR_BASE_URL",
	"FHIR_TIMEOUT", "FHIR_CACHE_TTL", "INCLUDE_OPTIONAL",
}

// Load reads configuration from the environment and an optional .env file.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("PROFILE_STORE", StoreMemory)
	v.SetDefault("SQLITE_PATH", "data/profiles.db")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_MIN_CONNS", 1)
	v.SetDefault("FHIR_TIMEOUT", "2s")
	v.SetDefault("FHIR_CACHE_TTL", "5m")
	v.SetDefault("INCLUDE_OPTIONAL", false)

	// Bind env vars explicitly so Unmarshal picks them up
	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.ProfileStore = strings.ToLower(strings.TrimSpace(cfg.ProfileStore))
	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// Validate checks that the selected profile store has what it needs to
// connect.
func (c *Config) Validate() error {
	switch c.ProfileStore {
	case StoreMemory:
	case StoreRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required when PROFILE_STORE is %q", StoreRedis)
		}
	case StoreSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required when PROFILE_STORE is %q", StoreSQLite)
		}
	case StorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when PROFILE_STORE is %q", StorePostgres)
		}
	default:
		return fmt.Errorf("PROFILE_STORE must be %q, %q, %q or %q, got %q",
			StoreMemory, StoreRedis, StoreSQLite, StorePostgres, c.ProfileStore)
	}
	if c.FHIRBaseURL != "" && c.FHIRTimeout <= 0 {
		return fmt.Errorf("FHIR_TIMEOUT must be positive, got %s", c.FHIRTimeout)
	}
	return nil
}
