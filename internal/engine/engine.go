// Package engine runs the family rules over a patient's records and ranks
// the resulting reminders.
package engine

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"reminder-engine/internal/catalog"
	"reminder-engine/internal/jsonpatch"
	"reminder-engine/internal/model"
	"reminder-engine/internal/profile"
	"reminder-engine/internal/rules"
)

type Engine struct {
	catalog *catalog.Catalog
	rules   []rules.Rule
}

func New(cat *catalog.Catalog, rs []rules.Rule) *Engine {
	return &Engine{catalog: cat, rules: rs}
}

// Default wires the built-in catalog and rule set.
func Default() *Engine {
	return New(catalog.Default(), rules.Default())
}

func (e *Engine) Catalog() *catalog.Catalog { return e.catalog }

// Result is the outcome of one computation.
type Result struct {
	Profile   model.ScheduleProfile
	Reminders []model.Reminder
	// Unmatched holds indexes into the request's vaccinations that no
	// family claimed.
	Unmatched []int
}

// Compute evaluates every rule against one snapshot of now and returns the
// reminders ordered by urgency.
func (e *Engine) Compute(req *model.ReminderRequest, now time.Time) Result {
	resolved := profile.Resolve(req.Country, req.ScheduleProfile)
	groups, unmatched := e.catalog.Group(req.Vaccinations)
	in := rules.NewInput(groups, resolved, req.BirthDate, now, req.IncludeOptional)

	reminders := make([]model.Reminder, 0, len(e.rules))
	for _, r := range e.rules {
		if rem := e.evaluate(r, in); rem != nil {
			reminders = append(reminders, *rem)
		}
	}
	Rank(reminders)

	return Result{Profile: resolved, Reminders: reminders, Unmatched: unmatched}
}

// evaluate isolates a rule so a fault in one family still yields an
// unknown reminder and leaves the others intact.
func (e *Engine) evaluate(r rules.Rule, in *rules.Input) (rem *model.Reminder) {
	defer func() {
		if rec := recover(); rec != nil {
			title := string(r.Family())
			if entry, ok := e.catalog.Get(r.Family()); ok {
				title = entry.Label
			}
			rem = &model.Reminder{
				Key:     r.Family(),
				Status:  model.StatusUnknown,
				Title:   title,
				Message: "This reminder could not be calculated from the recorded data.",
			}
		}
	}()
	return r.Evaluate(in)
}

// Rank orders reminders by status urgency, keeping evaluation order among
// equal statuses.
func Rank(reminders []model.Reminder) {
	sort.SliceStable(reminders, func(i, j int) bool {
		return reminders[i].Status.Rank() < reminders[j].Status.Rank()
	})
}

// Process computes reminders and wraps them in a response envelope with
// timing, identifiers and diagnostic messages.
func (e *Engine) Process(req *model.ReminderRequest, now time.Time) *model.ReminderResponse {
	start := time.Now()

	res := e.Compute(req, now)

	messages := make([]model.CalculationMessage, 0, len(res.Unmatched))
	for _, idx := range res.Unmatched {
		v := req.Vaccinations[idx]
		messages = append(messages, model.CalculationMessage{
			ID:      len(messages),
			Level:   model.LevelWarning,
			Code:    model.CodeUnmatchedRecord,
			Message: fmt.Sprintf("Record %d (%q) did not match any vaccine family", idx, recordLabel(v)),
		})
	}
	if _, err := profile.Parse(string(req.ScheduleProfile)); req.ScheduleProfile != "" && err != nil {
		messages = append(messages, model.CalculationMessage{
			ID:      len(messages),
			Level:   model.LevelInfo,
			Code:    model.CodeInvalidProfile,
			Message: fmt.Sprintf("Ignored unknown schedule profile %q; using %s", req.ScheduleProfile, res.Profile),
		})
	}

	elapsed := time.Since(start)
	completed := time.Now().UTC()

	return &model.ReminderResponse{
		CalculationMetadata: model.CalculationMetadata{
			CalculationID:          uuid.New().String(),
			PatientID:              req.PatientID,
			ScheduleProfile:        res.Profile,
			EvaluatedAt:            now.UTC().Format(time.RFC3339),
			CalculationStartedAt:   completed.Add(-elapsed).Format(time.RFC3339),
			CalculationCompletedAt: completed.Format(time.RFC3339),
			CalculationDurationMs:  elapsed.Milliseconds(),
		},
		CalculationResult: model.CalculationResult{
			Messages:  messages,
			Reminders: res.Reminders,
		},
	}
}

func recordLabel(v model.VaccinationRecord) string {
	switch {
	case v.VaccineName != "":
		return v.VaccineName
	case v.VaccineType != "":
		return v.VaccineType
	case v.VaccineCode != "":
		return v.VaccineSystem + "|" + v.VaccineCode
	}
	return ""
}

// Compare computes reminders under GLOBAL and under the patient's resolved
// profile and returns the patch between them.
func (e *Engine) Compare(req *model.ReminderRequest, now time.Time) (*model.CompareResponse, error) {
	resolved := e.Compute(req, now)

	baselineReq := *req
	baselineReq.ScheduleProfile = model.ProfileGlobal
	baseline := e.Compute(&baselineReq, now)

	fwd, bwd, err := jsonpatch.Reminders(baseline.Reminders, resolved.Reminders)
	if err != nil {
		return nil, fmt.Errorf("diff reminders: %w", err)
	}
	return &model.CompareResponse{
		Profile:  resolved.Profile,
		Baseline: model.ProfileGlobal,
		Patch:    fwd,
		Revert:   bwd,
	}, nil
}
