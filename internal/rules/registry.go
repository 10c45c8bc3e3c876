package rules

import (
	"fmt"
	"time"

	"reminder-engine/internal/dates"
	"reminder-engine/internal/model"
)

// Default returns the rules in evaluation order. The order is fixed and
// feeds the stable ranking, so output for equal statuses follows it.
func Default() []Rule {
	return []Rule{
		infantSeries(),
		rsvInfant(),
		mmr(),
		tetanus(),
		tbe(),
		influenza(),
		covid(),
		hepatitisA(),
	}
}

func infantSeries() *SeriesRule {
	return &SeriesRule{
		Key:         model.FamilyInfant6in1,
		Title:       "Pertussis / 6-in-1 infant series",
		MaxAgeDays:  730,
		WarningDays: 21,
		Steps: []DoseStep{
			{
				// First day of the third month of life.
				DueAge:      dates.Months(2),
				EarliestAge: dates.Days(42),
				AgeLabel:    profileText{Austria: "3 months (earliest 6 weeks)", Other: "2 months (varies by country)"},
			},
			{
				DueAge:   dates.Months(5),
				Spacing:  dates.Days(56),
				AgeLabel: profileText{Austria: "5 months", Other: "4 months (varies by country)"},
			},
			{
				DueAge:   dates.Months(11),
				Spacing:  dates.Months(6),
				AgeLabel: profileText{Austria: "11–12 months", Other: "12 months (varies by country)"},
			},
		},
		CompleteAgeLabel: profileText{Austria: "3, 5, 11–12 months", Other: "Infant series (varies)"},
		Hint: profileText{
			Austria: "Austria (best-effort): 2+1 schedule in the 3rd, 5th and 11th–12th month (minimum spacing applies).",
			Other:   "Infant schedules vary by country and product.",
		},
		NoBirthDateText:    "Birth date is not available, so the infant schedule cannot be calculated. If this patient is an infant, verify whether the 3-dose primary series has been started/completed per local guidance.",
		CompleteText:       "At least 3 doses are recorded for a pertussis-containing childhood vaccine in this registry (best-effort matching).",
		UnreadableLastText: "The date of the last recorded dose could not be interpreted, so the next dose cannot be scheduled.",
	}
}

func rsvInfant() *SeasonalInfantRule {
	return &SeasonalInfantRule{
		Key:             model.FamilyRSVInfant,
		Title:           "RSV (infant protection)",
		MaxAgeDays:      365,
		SeasonStart:     time.October,
		SeasonEnd:       time.March,
		NoBirthDateText: "Birth date is missing, so age-based RSV infant protection cannot be evaluated. RSV infant programmes are typically limited to the first RSV season / first year of life.",
		RecordedText:    "An RSV infant protection dose (nirsevimab/Beyfortus) is recorded in this registry.",
		InSeasonText:    "No RSV infant protection is recorded. RSV programmes are seasonal; if the infant is eligible, it is typically given before or during the RSV season (best-effort).",
		OffSeasonFormat: "No RSV infant protection is recorded. RSV programmes are seasonal; consider planning for the next RSV season (around %s; best-effort).",
	}
}

func mmr() *DoseCountRule {
	return &DoseCountRule{
		Key:          model.FamilyMMR,
		Title:        "Measles (MMR)",
		Target:       2,
		NoneText:     "No MMR/measles vaccination is recorded. If you are not sure you had 2 doses, discuss catch-up vaccination with your clinician.",
		PartialText:  "Only one dose is recorded. Many programs consider 2 doses needed for full protection; confirm whether you need a second dose.",
		CompleteText: "At least two doses are recorded in this registry.",
	}
}

// profileNote qualifies the interval in scheduled booster messages.
func profileNote(t BoosterTerms) string {
	switch {
	case t.Profile != model.ProfileAustria:
		return ""
	case t.Older:
		return ", 60+ profile"
	default:
		return ", Austria profile"
	}
}

func scheduledBoosterText(t BoosterTerms) string {
	switch t.Status {
	case model.StatusDue:
		return fmt.Sprintf("Overdue: last recorded dose %s. Next booster was due around %s (interval ~%d years%s).", t.LastDose, t.DueDate, t.Interval, profileNote(t))
	case model.StatusDueSoon:
		return fmt.Sprintf("Due soon: last recorded dose %s. Next booster is due around %s (interval ~%d years%s).", t.LastDose, t.DueDate, t.Interval, profileNote(t))
	default:
		return fmt.Sprintf("Up to date: last recorded dose %s. Next booster due around %s (interval ~%d years%s).", t.LastDose, t.DueDate, t.Interval, profileNote(t))
	}
}

func olderSuffix(t BoosterTerms) string {
	if t.Older {
		return " for people aged 60+"
	}
	return ""
}

func tetanus() *BoosterRule {
	return &BoosterRule{
		Key:   model.FamilyTetanus,
		Title: "Tetanus booster (Td/Tdap)",
		Policies: map[model.ScheduleProfile]IntervalPolicy{
			model.ProfileAustria: {Years: 10, OlderYears: 5, SoonLead: 1},
			model.ProfileGlobal:  {Years: 10, SoonLead: 3},
		},
		OlderAge:      60,
		AbsentStatus:  model.StatusMissing,
		OverdueStatus: model.StatusDue,
		Detailed:      true,
		Absent: func(t BoosterTerms) string {
			if t.Profile == model.ProfileAustria {
				return fmt.Sprintf("No tetanus/Td/Tdap vaccination is recorded. In Austria, boosters are commonly advised about every %d years%s (best-effort summary).", t.Interval, olderSuffix(t))
			}
			return "No tetanus/Td/Tdap vaccination is recorded. Boosters are commonly advised about every ~10 years (varies by country and situation)."
		},
		Describe: scheduledBoosterText,
	}
}

func tbe() *BoosterRule {
	return &BoosterRule{
		Key:   model.FamilyTBE,
		Title: "Tick-borne encephalitis (FSME/TBE)",
		Policies: map[model.ScheduleProfile]IntervalPolicy{
			model.ProfileAustria: {Years: 5, OlderYears: 3, SoonLead: 1},
			model.ProfileGlobal:  {Years: 5, SoonLead: 1},
		},
		OlderAge:      60,
		AbsentStatus:  model.StatusMissing,
		OverdueStatus: model.StatusDue,
		Detailed:      true,
		CountDoses:    true,
		Absent: func(t BoosterTerms) string {
			if t.Profile == model.ProfileAustria {
				return fmt.Sprintf("No FSME/TBE vaccination is recorded. In Austria, boosters after completing the primary series are often around every %d years%s (best-effort summary).", t.Interval, olderSuffix(t))
			}
			return "No FSME/TBE vaccination is recorded. If you spend time in tick-endemic areas, ask about vaccination. Boosters after a primary series are often in the 3–5 year range (varies by country/product)."
		},
		Describe: func(t BoosterTerms) string {
			msg := scheduledBoosterText(t)
			if t.Doses > 0 && t.Doses < 3 {
				msg += " (Note: some products use a multi-dose primary series; earlier boosters can be shorter.)"
			}
			return msg
		},
	}
}

func influenza() *SeasonalRule {
	return &SeasonalRule{
		Key:            model.FamilyInfluenza,
		Title:          "Influenza (flu)",
		StartMonth:     time.August,
		StartDay:       1,
		AbsentText:     "Flu vaccines are typically offered each season, especially for people at higher risk. If relevant to you, ask about the current season's vaccine.",
		UnreadableText: "A flu vaccine is recorded, but the date could not be interpreted reliably.",
		CurrentText:    "A flu vaccine for the current season is recorded.",
		PreviousText:   "Your last recorded flu vaccine is from a previous season. Flu vaccination is typically repeated each season.",
	}
}

func covid() *BoosterRule {
	return &BoosterRule{
		Key:   model.FamilyCOVID,
		Title: "COVID-19",
		Policies: map[model.ScheduleProfile]IntervalPolicy{
			model.ProfileGlobal: {Years: 1},
		},
		AbsentStatus:  model.StatusUnknown,
		OverdueStatus: model.StatusDueSoon,
		Absent: func(BoosterTerms) string {
			return "COVID-19 booster programs vary by country and risk group. If you are in a recommended group, ask about the latest booster guidance."
		},
		Describe: func(t BoosterTerms) string {
			if t.Status == model.StatusUpToDate {
				return "A recent COVID-19 dose is recorded."
			}
			return "Your last recorded COVID-19 dose is over ~12 months ago. Some programs offer boosters seasonally or for higher-risk people."
		},
	}
}

func hepatitisA() *OptInRule {
	return &OptInRule{
		Key:          model.FamilyHepA,
		Title:        "Hepatitis A (travel/optional)",
		Target:       2,
		MinSpacing:   dates.Months(6),
		Recommended:  dates.Months(12),
		AgeLabel:     "Travel / risk-based",
		Context:      "Hepatitis A is typically travel/risk-based in Austria.",
		CompleteText: "Hepatitis A vaccination is typically travel/risk-based in Austria. At least two completed doses are recorded in this registry.",
		NotStarted:   "Hepatitis A vaccination is typically travel/risk-based in Austria and not part of routine reminders. If travel or risk exposure applies, discuss vaccination with your clinician.",
	}
}
