package fhirsource

import (
	"strings"

	"reminder-engine/internal/dates"
	"reminder-engine/internal/model"
)

type coding struct {
	System  string `json:"system"`
	Code    string `json:"code"`
	Display string `json:"display"`
}

type codeableConcept struct {
	Coding []coding `json:"coding"`
	Text   string   `json:"text"`
}

type address struct {
	Country string `json:"country"`
}

type patientResource struct {
	ResourceType string    `json:"resourceType"`
	ID           string    `json:"id"`
	BirthDate    string    `json:"birthDate"`
	Address      []address `json:"address"`
}

func (p patientResource) country() string {
	for _, a := range p.Address {
		if a.Country != "" {
			return a.Country
		}
	}
	return ""
}

type immunizationResource struct {
	ResourceType       string          `json:"resourceType"`
	Status             string          `json:"status"`
	VaccineCode        codeableConcept `json:"vaccineCode"`
	OccurrenceDateTime string          `json:"occurrenceDateTime"`
	OccurrenceString   string          `json:"occurrenceString"`
}

type bundle struct {
	Entry []struct {
		Resource immunizationResource `json:"resource"`
	} `json:"entry"`
}

func (b bundle) records() []model.VaccinationRecord {
	out := make([]model.VaccinationRecord, 0, len(b.Entry))
	for _, e := range b.Entry {
		if e.Resource.ResourceType != "" && e.Resource.ResourceType != "Immunization" {
			continue
		}
		out = append(out, e.Resource.record())
	}
	return out
}

// record maps an Immunization onto the engine's input shape. Timestamps
// are reduced to their UTC date so string ordering stays date ordering.
func (im immunizationResource) record() model.VaccinationRecord {
	r := model.VaccinationRecord{
		VaccineName: strings.TrimSpace(im.VaccineCode.Text),
		Status:      im.Status,
	}
	if len(im.VaccineCode.Coding) > 0 {
		c := im.VaccineCode.Coding[0]
		r.VaccineSystem = c.System
		r.VaccineCode = c.Code
		r.VaccineType = c.Display
		if r.VaccineName == "" {
			r.VaccineName = c.Display
		}
	}

	raw := im.OccurrenceDateTime
	if raw == "" {
		raw = im.OccurrenceString
	}
	if t, ok := dates.Parse(raw); ok {
		r.Date = dates.Format(t)
	} else {
		r.Date = raw
	}
	return r
}
