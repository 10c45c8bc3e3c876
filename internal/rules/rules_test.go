package rules

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reminder-engine/internal/catalog"
	"reminder-engine/internal/model"
)

var now = time.Date(2026, time.October, 18, 12, 0, 0, 0, time.UTC)

func done(date string) model.VaccinationRecord {
	return model.VaccinationRecord{Date: date, Status: model.StatusCompleted}
}

func input(key model.FamilyKey, birthDate string, records ...model.VaccinationRecord) *Input {
	groups := catalog.Groups{}
	if len(records) > 0 {
		groups[key] = records
	}
	return NewInput(groups, model.ProfileAustria, birthDate, now, false)
}

func TestNewHistory(t *testing.T) {
	h := NewHistory([]model.VaccinationRecord{
		{Date: "2020-05-01", Status: "COMPLETED"},
		{Date: "2023-01-10", Status: "completed"},
		{Date: "2025-01-01", Status: model.StatusScheduled},
		{Date: "", Status: "Completed"},
		{Date: "2021-12-31", Status: "completed"},
	})
	assert.Equal(t, 4, h.Completed)
	assert.Equal(t, "2023-01-10", h.LastCompleted)

	empty := NewHistory(nil)
	assert.Zero(t, empty.Completed)
	_, ok := empty.Last()
	assert.False(t, ok)
}

func TestDefaultOrder(t *testing.T) {
	var keys []model.FamilyKey
	for _, r := range Default() {
		keys = append(keys, r.Family())
	}
	assert.Equal(t, []model.FamilyKey{
		model.FamilyInfant6in1, model.FamilyRSVInfant, model.FamilyMMR, model.FamilyTetanus,
		model.FamilyTBE, model.FamilyInfluenza, model.FamilyCOVID, model.FamilyHepA,
	}, keys)
}

func TestInfantSeries(t *testing.T) {
	rule := infantSeries()

	t.Run("seventy days old with no records is due for dose one", func(t *testing.T) {
		rem := rule.Evaluate(input(rule.Key, "2026-08-09"))
		require.NotNil(t, rem)
		assert.Equal(t, model.StatusDue, rem.Status)
		assert.Equal(t, 1, rem.NextDoseNumber)
		assert.Equal(t, 3, rem.SeriesTargetDoses)
		assert.Equal(t, "2026-09-20", rem.EarliestDueDate)
		assert.Equal(t, "3 months (earliest 6 weeks)", rem.RecommendedAgeLabel)
		assert.Contains(t, rem.Message, "Dose 1 of 3.")
		assert.Contains(t, rem.Message, "Status: due")
	})

	t.Run("due soon inside warning window", func(t *testing.T) {
		rem := rule.Evaluate(input(rule.Key, "2026-08-20"))
		require.NotNil(t, rem)
		assert.Equal(t, model.StatusDueSoon, rem.Status)
		assert.Equal(t, "2026-10-20", rem.NextDueDate)
	})

	t.Run("no birth date is unknown", func(t *testing.T) {
		rem := rule.Evaluate(input(rule.Key, ""))
		require.NotNil(t, rem)
		assert.Equal(t, model.StatusUnknown, rem.Status)
		assert.Equal(t, 3, rem.SeriesTargetDoses)
		assert.Nil(t, rem.PatientAgeYears)
	})

	t.Run("older than two years is omitted", func(t *testing.T) {
		assert.Nil(t, rule.Evaluate(input(rule.Key, "2024-01-01")))
	})

	t.Run("unreadable previous dose is unknown", func(t *testing.T) {
		rem := rule.Evaluate(input(rule.Key, "2026-06-01", done("not-a-date")))
		require.NotNil(t, rem)
		assert.Equal(t, model.StatusUnknown, rem.Status)
		assert.Empty(t, rem.NextDueDate)
	})

	t.Run("global profile labels", func(t *testing.T) {
		in := NewInput(catalog.Groups{}, model.ProfileGlobal, "2026-08-09", now, false)
		rem := rule.Evaluate(in)
		require.NotNil(t, rem)
		assert.Equal(t, "2 months (varies by country)", rem.RecommendedAgeLabel)
		assert.Contains(t, rem.Message, "Infant schedules vary by country and product.")
	})
}

func TestInfantSeriesAnchorsShareProfiles(t *testing.T) {
	rule := infantSeries()

	t.Run("dose two is due in the sixth month of life", func(t *testing.T) {
		for _, p := range []model.ScheduleProfile{model.ProfileAustria, model.ProfileGlobal} {
			groups := catalog.Groups{rule.Key: {done("2026-08-01")}}
			rem := rule.Evaluate(NewInput(groups, p, "2026-06-01", now, false))
			require.NotNil(t, rem, p)
			assert.Equal(t, model.StatusDueSoon, rem.Status, p)
			assert.Equal(t, "2026-11-01", rem.NextDueDate, p)
		}
	})

	t.Run("dose three is due eleven months after birth", func(t *testing.T) {
		for _, p := range []model.ScheduleProfile{model.ProfileAustria, model.ProfileGlobal} {
			groups := catalog.Groups{rule.Key: {done("2026-01-01"), done("2026-03-01")}}
			rem := rule.Evaluate(NewInput(groups, p, "2025-11-01", now, false))
			require.NotNil(t, rem, p)
			assert.Equal(t, 3, rem.NextDoseNumber, p)
			assert.Equal(t, model.StatusDue, rem.Status, p)
			assert.Equal(t, "2026-10-01", rem.NextDueDate, p)
		}
	})
}

func TestInfantSeriesMonotonic(t *testing.T) {
	rule := infantSeries()
	doses := []model.VaccinationRecord{done("2026-08-01"), done("2026-10-05"), done("2027-04-06")}

	prev := -1
	for n := 0; n <= 3; n++ {
		rem := rule.Evaluate(input(rule.Key, "2026-06-01", doses[:n]...))
		require.NotNil(t, rem)
		rank := rem.Status.Rank()
		assert.GreaterOrEqual(t, rank, prev, "doses=%d", n)
		prev = rank
	}
	assert.Equal(t, model.StatusUpToDate.Rank(), prev)
}

func TestInfantSeriesCompleteIgnoresProximity(t *testing.T) {
	rule := infantSeries()
	rem := rule.Evaluate(input(rule.Key, "2026-01-01",
		done("2026-10-01"), done("2026-10-10"), done("2026-10-17"), done("2026-10-18")))
	require.NotNil(t, rem)
	assert.Equal(t, model.StatusUpToDate, rem.Status)
	assert.Equal(t, 4, *rem.DosesRecorded)
	assert.Equal(t, "3, 5, 11–12 months", rem.RecommendedAgeLabel)
}

func TestInfantSeriesSpacingFloor(t *testing.T) {
	rule := infantSeries()
	tests := []struct {
		name     string
		doses    []model.VaccinationRecord
		wantDue  string
		minimum  time.Time
		wantNext int
	}{
		{"dose two after late first dose", []model.VaccinationRecord{done("2026-09-20")}, "2026-11-15", time.Date(2026, 11, 15, 0, 0, 0, 0, time.UTC), 2},
		{"dose two age anchored", []model.VaccinationRecord{done("2026-08-01")}, "2026-11-01", time.Date(2026, 9, 26, 0, 0, 0, 0, time.UTC), 2},
		{"dose three age anchored", []model.VaccinationRecord{done("2026-08-01"), done("2026-10-05")}, "2027-05-01", time.Date(2027, 4, 5, 0, 0, 0, 0, time.UTC), 3},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rem := rule.Evaluate(input(rule.Key, "2026-06-01", tc.doses...))
			require.NotNil(t, rem)
			assert.Equal(t, tc.wantNext, rem.NextDoseNumber)
			assert.Equal(t, tc.wantDue, rem.NextDueDate)
			due, err := time.Parse("2006-01-02", rem.NextDueDate)
			require.NoError(t, err)
			assert.False(t, due.Before(tc.minimum))
			assert.LessOrEqual(t, rem.EarliestDueDate, rem.NextDueDate)
		})
	}
}

func TestRSVInfant(t *testing.T) {
	rule := rsvInfant()

	rem := rule.Evaluate(input(rule.Key, "2026-08-09"))
	require.NotNil(t, rem)
	assert.Equal(t, model.StatusDue, rem.Status, "October is in season")

	offSeason := NewInput(catalog.Groups{}, model.ProfileAustria, "2026-03-01", time.Date(2026, 5, 15, 9, 0, 0, 0, time.UTC), false)
	rem = rule.Evaluate(offSeason)
	require.NotNil(t, rem)
	assert.Equal(t, model.StatusDueSoon, rem.Status)
	assert.Equal(t, "2026-10-01", rem.NextDueDate)
	assert.Contains(t, rem.Message, "01/10/2026")

	rem = rule.Evaluate(input(rule.Key, "2026-08-09", done("2026-09-01")))
	require.NotNil(t, rem)
	assert.Equal(t, model.StatusUpToDate, rem.Status)
	assert.Equal(t, "2026-09-01", rem.LastDoseDate)

	assert.Nil(t, rule.Evaluate(input(rule.Key, "2025-09-01")))

	rem = rule.Evaluate(input(rule.Key, ""))
	require.NotNil(t, rem)
	assert.Equal(t, model.StatusUnknown, rem.Status)
}

func TestMMR(t *testing.T) {
	rule := mmr()
	tests := []struct {
		name    string
		records []model.VaccinationRecord
		want    model.ReminderStatus
		doses   int
	}{
		{"none", nil, model.StatusMissing, 0},
		{"one dose", []model.VaccinationRecord{done("1990-05-01")}, model.StatusDue, 1},
		{"scheduled second dose does not count", []model.VaccinationRecord{done("1990-05-01"), {Date: "2027-01-01", Status: model.StatusScheduled}}, model.StatusDue, 1},
		{"two doses", []model.VaccinationRecord{done("1990-05-01"), done("1995-05-01")}, model.StatusUpToDate, 2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rem := rule.Evaluate(input(rule.Key, "1986-10-18", tc.records...))
			require.NotNil(t, rem)
			assert.Equal(t, tc.want, rem.Status)
			require.NotNil(t, rem.DosesRecorded)
			assert.Equal(t, tc.doses, *rem.DosesRecorded)
			assert.Empty(t, rem.ScheduleProfile)
		})
	}
}

func TestTetanusScenarioC(t *testing.T) {
	rule := tetanus()

	rem := rule.Evaluate(input(rule.Key, "1986-10-18", done("2016-10-19")))
	require.NotNil(t, rem)
	assert.Equal(t, model.StatusDueSoon, rem.Status)
	assert.Equal(t, 10, rem.IntervalYears)
	assert.Equal(t, "2026-10-19", rem.NextDueDate)

	rem = rule.Evaluate(input(rule.Key, "1986-10-18", done("2016-10-18")))
	require.NotNil(t, rem)
	assert.Equal(t, model.StatusDue, rem.Status)
	assert.Contains(t, rem.Message, "Overdue: last recorded dose 18/10/2016.")
	assert.Contains(t, rem.Message, "Austria profile")
}

func TestTetanusAgeSwitch(t *testing.T) {
	rule := tetanus()

	younger := rule.Evaluate(input(rule.Key, "1966-10-20", done("2020-01-01")))
	require.NotNil(t, younger)
	assert.Equal(t, 10, younger.IntervalYears)
	assert.Equal(t, model.StatusUpToDate, younger.Status)

	older := rule.Evaluate(input(rule.Key, "1966-10-18", done("2020-01-01")))
	require.NotNil(t, older)
	assert.Equal(t, 5, older.IntervalYears)
	assert.Equal(t, model.StatusDue, older.Status)
	assert.Contains(t, older.Message, "60+ profile")
}

func TestTetanusGlobalProfile(t *testing.T) {
	rule := tetanus()
	in := NewInput(catalog.Groups{rule.Key: {done("2018-10-01")}}, model.ProfileGlobal, "1950-01-01", now, false)
	rem := rule.Evaluate(in)
	require.NotNil(t, rem)
	assert.Equal(t, 10, rem.IntervalYears, "no age switch outside Austria")
	assert.Equal(t, model.StatusDueSoon, rem.Status)
	assert.NotContains(t, rem.Message, "profile")
}

func TestTetanusMissing(t *testing.T) {
	rem := tetanus().Evaluate(input(model.FamilyTetanus, "1986-10-18"))
	require.NotNil(t, rem)
	assert.Equal(t, model.StatusMissing, rem.Status)
	assert.Equal(t, 10, rem.IntervalYears)
	assert.Empty(t, rem.NextDueDate)
}

func TestBoosterUnreadableDate(t *testing.T) {
	rem := tetanus().Evaluate(input(model.FamilyTetanus, "1986-10-18", done("31/12/2019")))
	require.NotNil(t, rem)
	assert.Equal(t, model.StatusUnknown, rem.Status)
}

func TestTBE(t *testing.T) {
	rule := tbe()

	rem := rule.Evaluate(input(rule.Key, "1986-10-18"))
	require.NotNil(t, rem)
	assert.Equal(t, model.StatusMissing, rem.Status)

	rem = rule.Evaluate(input(rule.Key, "1986-10-18", done("2021-05-01"), done("2022-06-01")))
	require.NotNil(t, rem)
	assert.Equal(t, model.StatusDueSoon, rem.Status)
	assert.Equal(t, 5, rem.IntervalYears)
	assert.Equal(t, 2, *rem.DosesRecorded)
	assert.Contains(t, rem.Message, "multi-dose primary series")

	rem = rule.Evaluate(input(rule.Key, "1960-01-01", done("2020-01-01"), done("2020-02-01"), done("2023-01-01")))
	require.NotNil(t, rem)
	assert.Equal(t, 3, rem.IntervalYears)
	assert.Equal(t, model.StatusDue, rem.Status)
	assert.NotContains(t, rem.Message, "multi-dose")
}

func TestInfluenza(t *testing.T) {
	rule := influenza()
	tests := []struct {
		name    string
		now     time.Time
		records []model.VaccinationRecord
		want    model.ReminderStatus
		nextDue string
	}{
		{"no dose", now, nil, model.StatusUnknown, ""},
		{"current season", now, []model.VaccinationRecord{done("2026-09-15")}, model.StatusUpToDate, "2027-08-01"},
		{"season start day counts", now, []model.VaccinationRecord{done("2026-08-01")}, model.StatusUpToDate, "2027-08-01"},
		{"previous season", now, []model.VaccinationRecord{done("2026-07-31")}, model.StatusDue, "2026-08-01"},
		{"winter uses last year's start", time.Date(2027, 1, 10, 0, 0, 0, 0, time.UTC), []model.VaccinationRecord{done("2026-09-01")}, model.StatusUpToDate, "2027-08-01"},
		{"unparseable", now, []model.VaccinationRecord{done("soon")}, model.StatusUnknown, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := NewInput(catalog.Groups{rule.Key: tc.records}, model.ProfileAustria, "", tc.now, false)
			rem := rule.Evaluate(in)
			require.NotNil(t, rem)
			assert.Equal(t, tc.want, rem.Status)
			assert.Equal(t, tc.nextDue, rem.NextDueDate)
		})
	}
}

func TestCOVID(t *testing.T) {
	rule := covid()

	rem := rule.Evaluate(input(rule.Key, ""))
	require.NotNil(t, rem)
	assert.Equal(t, model.StatusUnknown, rem.Status)

	rem = rule.Evaluate(input(rule.Key, "", done("2023-06-01")))
	require.NotNil(t, rem)
	assert.Equal(t, model.StatusDueSoon, rem.Status, "never escalates to due")
	assert.Empty(t, rem.NextDueDate)

	rem = rule.Evaluate(input(rule.Key, "", done("2026-03-01")))
	require.NotNil(t, rem)
	assert.Equal(t, model.StatusUpToDate, rem.Status)
}

func TestHepatitisA(t *testing.T) {
	rule := hepatitisA()

	assert.Nil(t, rule.Evaluate(input(rule.Key, "1986-10-18")), "hidden unless requested or recorded")

	optIn := NewInput(catalog.Groups{}, model.ProfileAustria, "1986-10-18", now, true)
	rem := rule.Evaluate(optIn)
	require.NotNil(t, rem)
	assert.Equal(t, model.StatusUnknown, rem.Status)
	assert.Equal(t, "Travel / risk-based", rem.RecommendedAgeLabel)

	rem = rule.Evaluate(input(rule.Key, "1986-10-18", model.VaccinationRecord{Date: "2027-01-01", Status: model.StatusScheduled}))
	require.NotNil(t, rem, "an existing record makes it visible")
	assert.Equal(t, model.StatusUnknown, rem.Status)

	tests := []struct {
		last string
		want model.ReminderStatus
	}{
		{"2025-09-01", model.StatusDue},
		{"2026-01-10", model.StatusDueSoon},
		{"2026-09-01", model.StatusUpToDate},
	}
	for _, tc := range tests {
		rem := rule.Evaluate(input(rule.Key, "1986-10-18", done(tc.last)))
		require.NotNil(t, rem)
		assert.Equal(t, tc.want, rem.Status, tc.last)
		assert.Equal(t, 2, rem.NextDoseNumber)
	}

	rem = rule.Evaluate(input(rule.Key, "1986-10-18", done("2019-01-01"), done("2019-08-01")))
	require.NotNil(t, rem)
	assert.Equal(t, model.StatusUpToDate, rem.Status)
}
