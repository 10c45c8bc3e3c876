package rules

import (
	"reminder-engine/internal/dates"
	"reminder-engine/internal/model"
)

// IntervalPolicy is one profile's booster spacing. Due-soon starts
// SoonLead years before the interval ends, but never before one year.
type IntervalPolicy struct {
	Years int
	// OlderYears replaces Years from the rule's OlderAge on; zero keeps Years.
	OlderYears int
	SoonLead   int
}

// BoosterTerms is what a booster message is written from.
type BoosterTerms struct {
	Status   model.ReminderStatus
	Profile  model.ScheduleProfile
	Interval int
	Older    bool
	Doses    int
	LastDose string
	DueDate  string
}

// BoosterRule covers single recurring doses measured from the most recent
// completed dose.
type BoosterRule struct {
	Key      model.FamilyKey
	Title    string
	Policies map[model.ScheduleProfile]IntervalPolicy
	OlderAge float64
	// AbsentStatus is reported when no dated completed dose exists.
	AbsentStatus model.ReminderStatus
	// OverdueStatus is reported once the interval has elapsed.
	OverdueStatus model.ReminderStatus
	// Detailed adds profile, age, interval and projected date fields.
	Detailed   bool
	CountDoses bool
	Absent     func(t BoosterTerms) string
	Describe   func(t BoosterTerms) string
}

func (r *BoosterRule) Family() model.FamilyKey { return r.Key }

func (r *BoosterRule) policy(p model.ScheduleProfile) IntervalPolicy {
	if pol, ok := r.Policies[p]; ok {
		return pol
	}
	return r.Policies[model.ProfileGlobal]
}

// interval resolves the years between boosters and the due-soon floor.
func (r *BoosterRule) interval(in *Input) (years, floor int, older bool) {
	pol := r.policy(in.Profile)
	years = pol.Years
	if pol.OlderYears > 0 && in.HasBirthDate && in.AgeYears >= r.OlderAge {
		years = pol.OlderYears
		older = true
	}
	floor = years - pol.SoonLead
	if floor < 1 {
		floor = 1
	}
	return years, floor, older
}

func (r *BoosterRule) Evaluate(in *Input) *model.Reminder {
	h := in.History(r.Key)
	years, floor, older := r.interval(in)
	terms := BoosterTerms{
		Profile:  in.Profile,
		Interval: years,
		Older:    older,
		Doses:    h.Completed,
		LastDose: h.LastCompleted,
	}
	rem := &model.Reminder{
		Key:          r.Key,
		Title:        r.Title,
		LastDoseDate: h.LastCompleted,
	}
	if r.Detailed {
		rem.ScheduleProfile = in.Profile
		rem.PatientAgeYears = in.ageYears()
		rem.IntervalYears = years
	}
	if r.CountDoses {
		rem.DosesRecorded = intPtr(h.Completed)
	}

	if h.LastCompleted == "" {
		terms.Status = r.AbsentStatus
		rem.Status = r.AbsentStatus
		rem.Message = r.Absent(terms)
		return rem
	}
	last, ok := h.Last()
	if !ok {
		rem.Status = model.StatusUnknown
		rem.Message = "A dose is recorded, but its date could not be interpreted reliably."
		return rem
	}

	due := dates.AddYears(last, years)
	elapsed := dates.YearsBetween(last, in.Now)
	switch {
	case elapsed >= float64(years) || !in.Now.Before(due):
		rem.Status = r.OverdueStatus
	case elapsed >= float64(floor):
		rem.Status = model.StatusDueSoon
	default:
		rem.Status = model.StatusUpToDate
	}
	if r.Detailed {
		rem.NextDueDate = dates.Format(due)
	}

	terms.Status = rem.Status
	terms.LastDose = dates.Display(last)
	terms.DueDate = dates.Display(due)
	rem.Message = r.Describe(terms)
	return rem
}
