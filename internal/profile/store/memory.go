// Package store holds the persistence adapters for profile overrides.
package store

import (
	"context"
	"sync"

	"reminder-engine/internal/model"
	"reminder-engine/internal/profile"
)

const storageKeyPrefix = "vax_registry_profile:"

// StorageKey is the key an override is persisted under. A blank patient id
// maps to the shared "global" slot.
func StorageKey(patientID string) string {
	if patientID == "" {
		patientID = "global"
	}
	return storageKeyPrefix + patientID
}

// decode accepts only the profile enumeration; anything else reads as unset.
func decode(raw string) (model.ScheduleProfile, bool) {
	p := model.ScheduleProfile(raw)
	return p, p.Valid()
}

var (
	_ profile.OverrideStore = (*Memory)(nil)
	_ profile.OverrideStore = (*Redis)(nil)
	_ profile.OverrideStore = (*SQLite)(nil)
	_ profile.OverrideStore = (*Postgres)(nil)
)

type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

func (s *Memory) Get(_ context.Context, patientID string) (model.ScheduleProfile, bool, error) {
	s.mu.RLock()
	raw, ok := s.values[StorageKey(patientID)]
	s.mu.RUnlock()
	if !ok {
		return "", false, nil
	}
	p, ok := decode(raw)
	return p, ok, nil
}

func (s *Memory) Set(_ context.Context, patientID string, p model.ScheduleProfile) error {
	if !p.Valid() {
		return profile.ErrInvalidProfile
	}
	s.mu.Lock()
	s.values[StorageKey(patientID)] = string(p)
	s.mu.Unlock()
	return nil
}
