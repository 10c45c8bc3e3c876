package rules

import (
	"time"

	"reminder-engine/internal/catalog"
	"reminder-engine/internal/dates"
	"reminder-engine/internal/model"
)

// History is the slice of a patient's records that matched one family,
// with the derived values every rule reads.
type History struct {
	Records []model.VaccinationRecord
	// Completed counts records whose status is "completed", dated or not.
	Completed int
	// LastCompleted is the greatest non-empty date among completed records,
	// compared as strings. Empty when there is none.
	LastCompleted string
}

func NewHistory(records []model.VaccinationRecord) History {
	h := History{Records: records}
	for _, r := range records {
		if !r.IsCompleted() {
			continue
		}
		h.Completed++
		if r.Date != "" && r.Date > h.LastCompleted {
			h.LastCompleted = r.Date
		}
	}
	return h
}

// Last parses LastCompleted. It reports false when there is no completed
// date or it cannot be interpreted.
func (h History) Last() (time.Time, bool) {
	if h.LastCompleted == "" {
		return time.Time{}, false
	}
	return dates.Parse(h.LastCompleted)
}

// Input is everything a rule may look at. Now is captured once per
// computation and never re-read.
type Input struct {
	Histories       map[model.FamilyKey]History
	Profile         model.ScheduleProfile
	BirthDate       time.Time
	HasBirthDate    bool
	AgeDays         float64
	AgeYears        float64
	Now             time.Time
	IncludeOptional bool
}

func NewInput(groups catalog.Groups, profile model.ScheduleProfile, birthDate string, now time.Time, includeOptional bool) *Input {
	in := &Input{
		Histories:       make(map[model.FamilyKey]History, len(groups)),
		Profile:         profile,
		Now:             now,
		IncludeOptional: includeOptional,
	}
	for key, records := range groups {
		in.Histories[key] = NewHistory(records)
	}
	if bd, ok := dates.Parse(birthDate); ok {
		in.BirthDate = bd
		in.HasBirthDate = true
		in.AgeDays, _ = dates.AgeDays(birthDate, now)
		in.AgeYears = dates.YearsBetween(bd, now)
	}
	return in
}

// History returns the family's history; the zero value when nothing matched.
func (in *Input) History(key model.FamilyKey) History {
	return in.Histories[key]
}

func (in *Input) ageYears() *float64 {
	if !in.HasBirthDate {
		return nil
	}
	age := in.AgeYears
	return &age
}

func (in *Input) austria() bool {
	return in.Profile == model.ProfileAustria
}
