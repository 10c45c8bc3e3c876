package model

// FamilyKey identifies a canonical vaccine family in the catalog.
type FamilyKey string

const (
	FamilyInfant6in1  FamilyKey = "INFANT_6IN1"
	FamilyRSVInfant   FamilyKey = "RSV_INFANT"
	FamilyRotavirus   FamilyKey = "ROTAVIRUS"
	FamilyPneumo      FamilyKey = "PNEUMO"
	FamilyMMR         FamilyKey = "MMR"
	FamilyVaricella   FamilyKey = "VARICELLA"
	FamilyHPV         FamilyKey = "HPV"
	FamilyMeningoACWY FamilyKey = "MENINGO_ACWY"
	FamilyMeningoB    FamilyKey = "MENINGO_B"
	FamilyTetanus     FamilyKey = "TETANUS"
	FamilyTBE         FamilyKey = "TBE"
	FamilyInfluenza   FamilyKey = "INFLUENZA"
	FamilyCOVID       FamilyKey = "COVID"
	FamilyRSVAdult    FamilyKey = "RSV_ADULT"
	FamilyZoster      FamilyKey = "ZOSTER"
	FamilyHepA        FamilyKey = "HEPA"
	FamilyHepB        FamilyKey = "HEPB"
)

// ScheduleProfile selects the regional variant of interval and age constants.
type ScheduleProfile string

const (
	ProfileGlobal  ScheduleProfile = "GLOBAL"
	ProfileAustria ScheduleProfile = "AUSTRIA"
)

func (p ScheduleProfile) Valid() bool {
	return p == ProfileGlobal || p == ProfileAustria
}

type ReminderStatus string

const (
	StatusDue      ReminderStatus = "due"
	StatusDueSoon  ReminderStatus = "due-soon"
	StatusMissing  ReminderStatus = "missing"
	StatusUnknown  ReminderStatus = "unknown"
	StatusUpToDate ReminderStatus = "up-to-date"
)

// Rank orders statuses by urgency; lower is more urgent.
func (s ReminderStatus) Rank() int {
	switch s {
	case StatusDue:
		return 0
	case StatusDueSoon:
		return 1
	case StatusMissing:
		return 2
	case StatusUnknown:
		return 3
	case StatusUpToDate:
		return 4
	}
	return 5
}

type Reminder struct {
	Key                 FamilyKey       `json:"key"`
	Status              ReminderStatus  `json:"status"`
	Title               string          `json:"title"`
	Message             string          `json:"message"`
	LastDoseDate        string          `json:"last_dose_date,omitempty"`
	DosesRecorded       *int            `json:"doses_recorded,omitempty"`
	RecommendedAgeLabel string          `json:"recommended_age_label,omitempty"`
	ScheduleProfile     ScheduleProfile `json:"schedule_profile,omitempty"`
	PatientAgeYears     *float64        `json:"patient_age_years,omitempty"`
	IntervalYears       int             `json:"interval_years,omitempty"`
	NextDueDate         string          `json:"next_due_date,omitempty"`
	NextDoseNumber      int             `json:"next_dose_number,omitempty"`
	SeriesTargetDoses   int             `json:"series_target_doses,omitempty"`
	EarliestDueDate     string          `json:"earliest_due_date,omitempty"`
}
