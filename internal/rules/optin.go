package rules

import (
	"fmt"
	"strings"

	"reminder-engine/internal/dates"
	"reminder-engine/internal/model"
)

// OptInRule covers travel or risk-based two-dose series. It stays silent
// unless the caller asks for optional families or the patient already has
// a record for it.
type OptInRule struct {
	Key          model.FamilyKey
	Title        string
	Target       int
	MinSpacing   dates.Span
	Recommended  dates.Span
	AgeLabel     string
	Context      string
	CompleteText string
	NotStarted   string
}

func (r *OptInRule) Family() model.FamilyKey { return r.Key }

func (r *OptInRule) Evaluate(in *Input) *model.Reminder {
	h := in.History(r.Key)
	if !in.IncludeOptional && len(h.Records) == 0 {
		return nil
	}
	rem := &model.Reminder{
		Key:               r.Key,
		Title:             r.Title,
		DosesRecorded:     intPtr(h.Completed),
		LastDoseDate:      h.LastCompleted,
		ScheduleProfile:   in.Profile,
		PatientAgeYears:   in.ageYears(),
		SeriesTargetDoses: r.Target,
	}
	if h.Completed >= r.Target {
		rem.Status = model.StatusUpToDate
		rem.Message = r.CompleteText
		return rem
	}

	rem.RecommendedAgeLabel = r.AgeLabel
	last, ok := h.Last()
	if h.Completed == 0 || !ok {
		rem.Status = model.StatusUnknown
		rem.Message = r.NotStarted
		return rem
	}

	earliest := r.MinSpacing.From(last)
	recommended := r.Recommended.From(last)
	rem.NextDoseNumber = h.Completed + 1
	rem.EarliestDueDate = dates.Format(earliest)
	rem.NextDueDate = dates.Format(recommended)
	switch {
	case dates.DaysUntil(recommended, in.Now) <= 0:
		rem.Status = model.StatusDue
	case dates.DaysUntil(earliest, in.Now) <= 0:
		rem.Status = model.StatusDueSoon
	default:
		rem.Status = model.StatusUpToDate
	}
	rem.Message = strings.Join([]string{
		r.Context,
		fmt.Sprintf("Dose %d of %d.", rem.NextDoseNumber, r.Target),
		fmt.Sprintf("Last recorded dose: %s.", dates.Display(last)),
		fmt.Sprintf("Earliest (min interval) date: %s.", dates.Display(earliest)),
		fmt.Sprintf("Common target: %s (best-effort).", dates.Display(recommended)),
	}, " ")
	return rem
}
