package rules

import (
	"fmt"
	"strings"
	"time"

	"reminder-engine/internal/dates"
	"reminder-engine/internal/model"
)

// DoseStep anchors one dose of a series. The first dose is placed purely
// by age; later doses take the later of the age anchor and the minimum
// spacing after the previous dose.
type DoseStep struct {
	DueAge      dates.Span
	EarliestAge dates.Span
	Spacing     dates.Span
	AgeLabel    profileText
}

// SeriesRule covers age-gated multi-dose primary series.
type SeriesRule struct {
	Key                model.FamilyKey
	Title              string
	MaxAgeDays         float64
	WarningDays        int
	Steps              []DoseStep
	CompleteAgeLabel   profileText
	Hint               profileText
	NoBirthDateText    string
	CompleteText       string
	UnreadableLastText string
}

func (r *SeriesRule) Family() model.FamilyKey { return r.Key }

func (r *SeriesRule) target() int { return len(r.Steps) }

func (r *SeriesRule) Evaluate(in *Input) *model.Reminder {
	rem := &model.Reminder{
		Key:               r.Key,
		Title:             r.Title,
		ScheduleProfile:   in.Profile,
		PatientAgeYears:   in.ageYears(),
		SeriesTargetDoses: r.target(),
	}
	if !in.HasBirthDate {
		rem.Status = model.StatusUnknown
		rem.Message = r.NoBirthDateText
		return rem
	}
	if in.AgeDays > r.MaxAgeDays {
		return nil
	}

	h := in.History(r.Key)
	rem.DosesRecorded = intPtr(h.Completed)
	rem.LastDoseDate = h.LastCompleted

	if h.Completed >= r.target() {
		rem.Status = model.StatusUpToDate
		rem.Message = r.CompleteText
		rem.RecommendedAgeLabel = r.CompleteAgeLabel.For(in.Profile)
		return rem
	}

	next := h.Completed + 1
	step := r.Steps[h.Completed]
	rem.NextDoseNumber = next
	rem.RecommendedAgeLabel = step.AgeLabel.For(in.Profile)

	due, earliest, ok := r.schedule(step, in, h)
	if ok {
		rem.NextDueDate = dates.Format(due)
		rem.EarliestDueDate = dates.Format(earliest)
		rem.Status = classifyDays(dates.DaysUntil(due, in.Now), r.WarningDays)
	} else {
		rem.Status = model.StatusUnknown
	}
	rem.Message = r.message(rem, in.Profile, ok)
	return rem
}

// schedule computes the next dose's due and earliest dates. It fails when a
// previous dose is counted but its date cannot be read.
func (r *SeriesRule) schedule(step DoseStep, in *Input, h History) (due, earliest time.Time, ok bool) {
	byAge := step.DueAge.From(in.BirthDate)
	if h.Completed == 0 {
		return byAge, step.EarliestAge.From(in.BirthDate), true
	}
	last, ok := h.Last()
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	bySpacing := step.Spacing.From(last)
	return dates.Later(byAge, bySpacing), bySpacing, true
}

func (r *SeriesRule) message(rem *model.Reminder, p model.ScheduleProfile, scheduled bool) string {
	parts := []string{fmt.Sprintf("Dose %d of %d. %s", rem.NextDoseNumber, rem.SeriesTargetDoses, r.Hint.For(p))}
	if rem.LastDoseDate != "" {
		parts = append(parts, fmt.Sprintf("Last recorded dose: %s.", dates.DisplayISO(rem.LastDoseDate)))
	}
	if !scheduled {
		parts = append(parts, r.UnreadableLastText)
		return strings.Join(parts, " ")
	}
	parts = append(parts,
		fmt.Sprintf("Earliest (min interval) date: %s.", dates.DisplayISO(rem.EarliestDueDate)),
		fmt.Sprintf("Next dose due around: %s.", dates.DisplayISO(rem.NextDueDate)),
	)
	switch rem.Status {
	case model.StatusDue:
		parts = append(parts, "Status: due (best-effort calculation).")
	case model.StatusDueSoon:
		parts = append(parts, "Status: due soon (best-effort calculation).")
	case model.StatusUpToDate:
		parts = append(parts, "Status: not due yet (best-effort calculation).")
	}
	return strings.Join(parts, " ")
}
