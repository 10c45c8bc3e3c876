package model

import "strings"

// VaccinationRecord is one recorded (or scheduled) dose as supplied by the
// caller. Fields are free text; nothing is validated or normalized here.
type VaccinationRecord struct {
	VaccineName   string `json:"vaccine_name,omitempty" yaml:"vaccine_name"`
	VaccineType   string `json:"vaccine_type,omitempty" yaml:"vaccine_type"`
	VaccineSystem string `json:"vaccine_system,omitempty" yaml:"vaccine_system"`
	VaccineCode   string `json:"vaccine_code,omitempty" yaml:"vaccine_code"`
	Date          string `json:"date,omitempty" yaml:"date"`
	Status        string `json:"status,omitempty" yaml:"status"`
}

// IsCompleted reports whether the record counts as an administered dose.
func (r VaccinationRecord) IsCompleted() bool {
	return strings.EqualFold(r.Status, StatusCompleted)
}

const (
	StatusCompleted = "completed"
	StatusScheduled = "scheduled"
)

type ReminderRequest struct {
	PatientID       string              `json:"patient_id,omitempty" yaml:"patient_id"`
	BirthDate       string              `json:"birth_date,omitempty" yaml:"birth_date"`
	Country         string              `json:"country,omitempty" yaml:"country"`
	ScheduleProfile ScheduleProfile     `json:"schedule_profile,omitempty" yaml:"schedule_profile"`
	IncludeOptional bool                `json:"include_optional,omitempty" yaml:"include_optional"`
	Now             string              `json:"now,omitempty" yaml:"now"`
	Vaccinations    []VaccinationRecord `json:"vaccinations" yaml:"vaccinations"`
}

type ProfileUpdateRequest struct {
	Profile string `json:"profile"`
}
