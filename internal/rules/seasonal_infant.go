package rules

import (
	"fmt"
	"time"

	"reminder-engine/internal/dates"
	"reminder-engine/internal/model"
)

// SeasonalInfantRule covers one-off passive immunization for infants in
// their first season. The season wraps the new year: SeasonStart through
// SeasonEnd inclusive.
type SeasonalInfantRule struct {
	Key             model.FamilyKey
	Title           string
	MaxAgeDays      float64
	SeasonStart     time.Month
	SeasonEnd       time.Month
	NoBirthDateText string
	RecordedText    string
	InSeasonText    string
	// OffSeasonFormat receives the displayed date of the next season start.
	OffSeasonFormat string
}

func (r *SeasonalInfantRule) Family() model.FamilyKey { return r.Key }

func (r *SeasonalInfantRule) Evaluate(in *Input) *model.Reminder {
	rem := &model.Reminder{
		Key:             r.Key,
		Title:           r.Title,
		ScheduleProfile: in.Profile,
		PatientAgeYears: in.ageYears(),
	}
	if !in.HasBirthDate {
		rem.Status = model.StatusUnknown
		rem.Message = r.NoBirthDateText
		return rem
	}
	if in.AgeDays >= r.MaxAgeDays {
		return nil
	}

	h := in.History(r.Key)
	rem.DosesRecorded = intPtr(h.Completed)
	if h.Completed >= 1 {
		rem.Status = model.StatusUpToDate
		rem.Message = r.RecordedText
		rem.LastDoseDate = h.LastCompleted
		return rem
	}

	if r.inSeason(in.Now.Month()) {
		rem.Status = model.StatusDue
		rem.Message = r.InSeasonText
		return rem
	}
	next := r.nextSeason(in.Now)
	rem.Status = model.StatusDueSoon
	rem.NextDueDate = dates.Format(next)
	rem.Message = fmt.Sprintf(r.OffSeasonFormat, dates.Display(next))
	return rem
}

func (r *SeasonalInfantRule) inSeason(m time.Month) bool {
	return m >= r.SeasonStart || m <= r.SeasonEnd
}

// nextSeason is the first day of the upcoming season start month.
func (r *SeasonalInfantRule) nextSeason(now time.Time) time.Time {
	year := now.Year()
	if now.Month() >= r.SeasonStart {
		year++
	}
	return time.Date(year, r.SeasonStart, 1, 0, 0, 0, 0, time.UTC)
}
