package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"reminder-engine/internal/model"
	"reminder-engine/internal/profile"
)

// Redis keeps overrides as plain string keys so several engine
// instances share them.
type Redis struct {
	client *redis.Client
}

func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

// OpenRedis parses url and verifies the connection.
func OpenRedis(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return client, nil
}

func (s *Redis) Get(ctx context.Context, patientID string) (model.ScheduleProfile, bool, error) {
	raw, err := s.client.Get(ctx, StorageKey(patientID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read profile override: %w", err)
	}
	p, ok := decode(raw)
	return p, ok, nil
}

func (s *Redis) Set(ctx context.Context, patientID string, p model.ScheduleProfile) error {
	if !p.Valid() {
		return profile.ErrInvalidProfile
	}
	if err := s.client.Set(ctx, StorageKey(patientID), string(p), 0).Err(); err != nil {
		return fmt.Errorf("write profile override: %w", err)
	}
	return nil
}
