package model

type CalculationMessage struct {
	ID      int    `json:"id"`
	Level   string `json:"level"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

const (
	LevelWarning = "WARNING"
	LevelInfo    = "INFO"
)

const (
	CodeUnmatchedRecord = "UNMATCHED_RECORD"
	CodeInvalidProfile  = "INVALID_PROFILE_OVERRIDE"
)
