package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/valyala/fasthttp"

	"reminder-engine/internal/config"
	"reminder-engine/internal/engine"
	"reminder-engine/internal/fhirsource"
	"reminder-engine/internal/handler"
	"reminder-engine/internal/logging"
	"reminder-engine/internal/metrics"
	"reminder-engine/internal/profile"
	"reminder-engine/internal/profile/store"
	"reminder-engine/internal/service"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the reminder HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func runServer() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger := logging.New(cfg.Env, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	overrides, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	m := metrics.New(prometheus.DefaultRegisterer)
	opts := []service.Option{
		service.WithMetrics(m),
		service.WithLogger(logger),
		service.WithIncludeOptional(cfg.IncludeOptional),
	}
	if cfg.FHIRBaseURL != "" {
		opts = append(opts, service.WithSource(fhirsource.New(cfg.FHIRBaseURL, cfg.FHIRTimeout, cfg.FHIRCacheTTL, m)))
		logger.Info().Str("base_url", cfg.FHIRBaseURL).Msg("FHIR record source enabled")
	}
	svc := service.New(engine.Default(), overrides, opts...)
	h := handler.New(svc, logger, prometheus.DefaultGatherer)

	server := &fasthttp.Server{
		Handler:      h.Handle,
		Name:         "reminder-engine",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("port", cfg.Port).Str("profile_store", cfg.ProfileStore).Msg("reminder engine starting")
		errCh <- server.ListenAndServe(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.ShutdownWithContext(shutdownCtx)
}

// openStore connects the configured profile override store. The returned
// func releases its resources.
func openStore(ctx context.Context, cfg *config.Config) (profile.OverrideStore, func(), error) {
	switch cfg.ProfileStore {
	case config.StoreRedis:
		client, err := store.OpenRedis(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return store.NewRedis(client), func() { _ = client.Close() }, nil
	case config.StoreSQLite:
		s, err := store.NewSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { _ = s.Close() }, nil
	case config.StorePostgres:
		pool, err := store.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
		if err != nil {
			return nil, nil, err
		}
		s := store.NewPostgres(pool)
		if err := s.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return s, pool.Close, nil
	default:
		return store.NewMemory(), func() {}, nil
	}
}

// commandLogger is silent for one-shot commands unless LOG_LEVEL is raised.
func commandLogger(cfg *config.Config) zerolog.Logger {
	if cfg.LogLevel == "" || cfg.LogLevel == "info" {
		return zerolog.Nop()
	}
	return logging.New(cfg.Env, cfg.LogLevel)
}
