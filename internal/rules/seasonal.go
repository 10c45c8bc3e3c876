package rules

import (
	"time"

	"reminder-engine/internal/dates"
	"reminder-engine/internal/model"
)

// SeasonalRule covers doses repeated every season. A season begins on
// StartMonth/StartDay each year; a dose on or after the current season's
// start counts for it.
type SeasonalRule struct {
	Key        model.FamilyKey
	Title      string
	StartMonth time.Month
	StartDay   int

	AbsentText     string
	UnreadableText string
	CurrentText    string
	PreviousText   string
}

func (r *SeasonalRule) Family() model.FamilyKey { return r.Key }

// SeasonStart returns the start of the season that contains now.
func (r *SeasonalRule) SeasonStart(now time.Time) time.Time {
	year := now.Year()
	start := time.Date(year, r.StartMonth, r.StartDay, 0, 0, 0, 0, time.UTC)
	if now.Before(start) {
		start = start.AddDate(-1, 0, 0)
	}
	return start
}

func (r *SeasonalRule) Evaluate(in *Input) *model.Reminder {
	h := in.History(r.Key)
	rem := &model.Reminder{
		Key:          r.Key,
		Title:        r.Title,
		LastDoseDate: h.LastCompleted,
	}
	if h.LastCompleted == "" {
		rem.Status = model.StatusUnknown
		rem.Message = r.AbsentText
		return rem
	}
	last, ok := h.Last()
	if !ok {
		rem.Status = model.StatusUnknown
		rem.Message = r.UnreadableText
		return rem
	}

	start := r.SeasonStart(in.Now)
	if last.Before(start) {
		rem.Status = model.StatusDue
		rem.Message = r.PreviousText
		rem.NextDueDate = dates.Format(start)
		return rem
	}
	rem.Status = model.StatusUpToDate
	rem.Message = r.CurrentText
	rem.NextDueDate = dates.Format(start.AddDate(1, 0, 0))
	return rem
}
