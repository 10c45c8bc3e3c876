// Package service coordinates a reminder request: it looks up stored
// profile overrides, optionally loads records from the remote source, runs
// the engine and records metrics.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"reminder-engine/internal/catalog"
	"reminder-engine/internal/dates"
	"reminder-engine/internal/engine"
	"reminder-engine/internal/fhirsource"
	"reminder-engine/internal/metrics"
	"reminder-engine/internal/model"
	"reminder-engine/internal/profile"
)

var (
	ErrInvalidNow     = errors.New("invalid now")
	ErrSourceDisabled = errors.New("patient record source is not configured")
)

// RecordSource loads a patient's data from an external system.
type RecordSource interface {
	Fetch(ctx context.Context, patientID string) (*fhirsource.Patient, error)
}

type Service struct {
	engine          *engine.Engine
	store           profile.OverrideStore
	source          RecordSource
	metrics         *metrics.Metrics
	logger          zerolog.Logger
	includeOptional bool
	clock           func() time.Time
}

type Option func(*Service)

// WithSource enables patient lookups by id.
func WithSource(src RecordSource) Option {
	return func(s *Service) { s.source = src }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithLogger(l zerolog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithIncludeOptional is a server-wide floor: when set, optional families
// are included for every request, whatever the request asks for.
func WithIncludeOptional(v bool) Option {
	return func(s *Service) { s.includeOptional = v }
}

func WithClock(clock func() time.Time) Option {
	return func(s *Service) { s.clock = clock }
}

func New(e *engine.Engine, store profile.OverrideStore, opts ...Option) *Service {
	s := &Service{
		engine: e,
		store:  store,
		logger: zerolog.Nop(),
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// evaluationTime returns the request's pinned instant, or captures the
// clock once.
func (s *Service) evaluationTime(raw string) (time.Time, error) {
	if raw == "" {
		return s.clock().UTC(), nil
	}
	t, ok := dates.Parse(raw)
	if !ok {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidNow, raw)
	}
	return t, nil
}

// prepare copies the request and applies the stored override when the
// caller did not pick a valid profile. Store failures fall back to country
// inference.
func (s *Service) prepare(ctx context.Context, req *model.ReminderRequest) (*model.ReminderRequest, time.Time, error) {
	now, err := s.evaluationTime(req.Now)
	if err != nil {
		return nil, time.Time{}, err
	}
	out := *req
	out.IncludeOptional = req.IncludeOptional || s.includeOptional
	if p, err := profile.Parse(string(out.ScheduleProfile)); err == nil {
		out.ScheduleProfile = p
	}

	if out.ScheduleProfile.Valid() || s.store == nil {
		return &out, now, nil
	}
	stored, ok, err := s.store.Get(ctx, req.PatientID)
	switch {
	case err != nil:
		s.logger.Warn().Err(err).Str("patient_id", req.PatientID).Msg("profile override lookup failed")
	case ok:
		if out.ScheduleProfile != "" {
			s.logger.Debug().Str("patient_id", req.PatientID).Str("ignored", string(out.ScheduleProfile)).Msg("invalid request profile replaced by stored override")
		}
		out.ScheduleProfile = stored
	}
	if !out.ScheduleProfile.Valid() && !profile.Recognized(out.Country) {
		s.logger.Debug().Str("country", out.Country).Msg("unrecognized country, using default profile")
	}
	return &out, now, nil
}

// Evaluate computes the reminder envelope for one request.
func (s *Service) Evaluate(ctx context.Context, req *model.ReminderRequest) (*model.ReminderResponse, error) {
	prepared, now, err := s.prepare(ctx, req)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resp := s.engine.Process(prepared, now)
	s.metrics.ObserveCompute(time.Since(start))
	s.metrics.ObserveReminders(resp.CalculationResult.Reminders)
	s.metrics.AddUnmatched(countCode(resp.CalculationResult.Messages, model.CodeUnmatchedRecord))

	s.logger.Debug().
		Str("calculation_id", resp.CalculationMetadata.CalculationID).
		Str("profile", string(resp.CalculationMetadata.ScheduleProfile)).
		Int("records", len(req.Vaccinations)).
		Int("reminders", len(resp.CalculationResult.Reminders)).
		Msg("reminders computed")
	return resp, nil
}

func countCode(msgs []model.CalculationMessage, code string) int {
	n := 0
	for _, m := range msgs {
		if m.Code == code {
			n++
		}
	}
	return n
}

// Compare returns the patch from GLOBAL reminders to the resolved
// profile's reminders.
func (s *Service) Compare(ctx context.Context, req *model.ReminderRequest) (*model.CompareResponse, error) {
	prepared, now, err := s.prepare(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.engine.Compare(prepared, now)
}

// EvaluatePatient loads a patient from the record source and evaluates it.
func (s *Service) EvaluatePatient(ctx context.Context, patientID string, includeOptional bool, now string) (*model.ReminderResponse, error) {
	if s.source == nil {
		return nil, ErrSourceDisabled
	}
	p, err := s.source.Fetch(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("load patient %s: %w", patientID, err)
	}
	return s.Evaluate(ctx, &model.ReminderRequest{
		PatientID:       patientID,
		BirthDate:       p.BirthDate,
		Country:         p.Country,
		IncludeOptional: includeOptional,
		Now:             now,
		Vaccinations:    p.Vaccinations,
	})
}

// GetProfile returns the stored override; Profile is empty when unset.
func (s *Service) GetProfile(ctx context.Context, patientID string) (*model.ProfileResponse, error) {
	resp := &model.ProfileResponse{PatientID: patientID}
	if s.store == nil {
		return resp, nil
	}
	p, ok, err := s.store.Get(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("get profile override: %w", err)
	}
	if ok {
		resp.Profile = p
	}
	return resp, nil
}

// SetProfile validates and stores an override.
func (s *Service) SetProfile(ctx context.Context, patientID, raw string) error {
	p, err := profile.Parse(raw)
	if err != nil {
		return err
	}
	if s.store == nil {
		return errors.New("no profile store configured")
	}
	if err := s.store.Set(ctx, patientID, p); err != nil {
		return fmt.Errorf("set profile override: %w", err)
	}
	s.logger.Info().Str("patient_id", patientID).Str("profile", string(p)).Msg("profile override stored")
	return nil
}

func (s *Service) Profiles() []profile.Info {
	return profile.Infos()
}

func (s *Service) Catalog() []catalog.Entry {
	return s.engine.Catalog().Entries()
}
