// Package rules turns a patient's grouped vaccination records into
// per-family reminders. Each family is served by one of a few rule shapes
// parameterized with that family's constants.
package rules

import (
	"reminder-engine/internal/model"
)

// Rule evaluates one vaccine family. A nil reminder means the family does
// not apply to this patient and is omitted from the output.
type Rule interface {
	Family() model.FamilyKey
	Evaluate(in *Input) *model.Reminder
}

// classifyDays applies the day-distance rule to the signed number of days
// until a due date.
func classifyDays(until float64, windowDays int) model.ReminderStatus {
	switch {
	case until <= 0:
		return model.StatusDue
	case until <= float64(windowDays):
		return model.StatusDueSoon
	default:
		return model.StatusUpToDate
	}
}

// profileText holds a string with an AUSTRIA variant and a fallback used
// for every other profile.
type profileText struct {
	Austria string
	Other   string
}

func (t profileText) For(p model.ScheduleProfile) string {
	if p == model.ProfileAustria {
		return t.Austria
	}
	return t.Other
}

func intPtr(n int) *int { return &n }
