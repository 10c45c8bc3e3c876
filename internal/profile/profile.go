// Package profile resolves which regional schedule variant applies to a
// patient. Override persistence lives in the store subpackage.
package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"reminder-engine/internal/model"
)

var ErrInvalidProfile = errors.New("invalid schedule profile")

type Reference struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

type Info struct {
	Key         model.ScheduleProfile `json:"key"`
	Label       string                `json:"label"`
	Description string                `json:"description"`
	References  []Reference           `json:"references"`
}

// Infos lists the supported profiles. GLOBAL is kept as a structural
// fallback; AUSTRIA is the only curated schedule.
func Infos() []Info {
	return []Info{
		{
			Key:         model.ProfileGlobal,
			Label:       "Global (generic)",
			Description: "Generic reminders. Schedules vary by country and personal risk.",
			References: []Reference{
				{Label: "European Vaccination Information Portal (EU)", URL: "https://vaccination-info.europa.eu/en"},
				{Label: "ECDC Vaccine Scheduler (EU/EEA)", URL: "https://vaccine-schedule.ecdc.europa.eu/"},
				{Label: "WHO - Vaccines and immunization", URL: "https://www.who.int/health-topics/vaccines-and-immunization"},
			},
		},
		{
			Key:         model.ProfileAustria,
			Label:       "Austria (Impfplan)",
			Description: "Uses Austrian schedule hints where implemented (best-effort).",
			References: []Reference{
				{Label: "Impfplan Österreich (Sozialministerium)", URL: "https://www.sozialministerium.gv.at/impfplan"},
				{Label: "ECDC Vaccine Scheduler (EU/EEA)", URL: "https://vaccine-schedule.ecdc.europa.eu/"},
				{Label: "Impfservice Wien (example local guidance)", URL: "https://impfservice.wien/"},
			},
		},
	}
}

// Parse accepts a profile name in any case.
func Parse(s string) (model.ScheduleProfile, error) {
	p := model.ScheduleProfile(strings.ToUpper(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidProfile, s)
	}
	return p, nil
}

// Resolve picks the profile for a patient. A valid override, in any case,
// always wins; otherwise the country text is used.
func Resolve(country string, override model.ScheduleProfile) model.ScheduleProfile {
	if p, err := Parse(string(override)); err == nil {
		return p
	}
	return Infer(country)
}

var austriaSpellings = []string{"austria", "österreich", "oesterreich"}

// Infer maps free-text country to a profile. Every input, recognized or
// not, yields AUSTRIA: it is the only curated schedule, and GLOBAL is never
// inferred. Keep it that way until a second curated profile exists.
func Infer(country string) model.ScheduleProfile {
	return model.ProfileAustria
}

// Recognized reports whether country names Austria explicitly. A blank
// country counts as recognized.
func Recognized(country string) bool {
	c := strings.ToLower(strings.TrimSpace(country))
	if c == "" || c == "at" || c == "aut" {
		return true
	}
	for _, s := range austriaSpellings {
		if strings.Contains(c, s) {
			return true
		}
	}
	return false
}

// OverrideStore persists a user's explicit profile choice per patient.
// Get reports false when nothing valid is stored.
type OverrideStore interface {
	Get(ctx context.Context, patientID string) (model.ScheduleProfile, bool, error)
	Set(ctx context.Context, patientID string, p model.ScheduleProfile) error
}
