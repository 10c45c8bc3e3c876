package model

type ReminderResponse struct {
	CalculationMetadata CalculationMetadata `json:"calculation_metadata"`
	CalculationResult   CalculationResult   `json:"calculation_result"`
}

type CalculationMetadata struct {
	CalculationID          string          `json:"calculation_id"`
	PatientID              string          `json:"patient_id,omitempty"`
	ScheduleProfile        ScheduleProfile `json:"schedule_profile"`
	EvaluatedAt            string          `json:"evaluated_at"`
	CalculationStartedAt   string          `json:"calculation_started_at"`
	CalculationCompletedAt string          `json:"calculation_completed_at"`
	CalculationDurationMs  int64           `json:"calculation_duration_ms"`
}

type CalculationResult struct {
	Messages  []CalculationMessage `json:"messages"`
	Reminders []Reminder           `json:"reminders"`
}

// PatchOperation is one RFC 6902 operation.
type PatchOperation struct {
	Op    string      `json:"op"`
	Path  string      `json:"path"`
	Value interface{} `json:"value,omitempty"`
}

// CompareResponse shows how the resolved profile changes the baseline
// reminders. Revert undoes Patch.
type CompareResponse struct {
	Profile  ScheduleProfile  `json:"profile"`
	Baseline ScheduleProfile  `json:"baseline"`
	Patch    []PatchOperation `json:"patch"`
	Revert   []PatchOperation `json:"revert"`
}

type ProfileResponse struct {
	PatientID string          `json:"patient_id"`
	Profile   ScheduleProfile `json:"profile,omitempty"`
}

type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}
