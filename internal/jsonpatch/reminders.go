package jsonpatch

import (
	"fmt"

	"github.com/goccy/go-json"

	"reminder-engine/internal/model"
)

// Keyed converts reminders into a JSON object keyed by family so patches
// address "/TETANUS/status" rather than shifting array indexes.
func Keyed(reminders []model.Reminder) (map[string]interface{}, error) {
	byKey := make(map[string]model.Reminder, len(reminders))
	for _, r := range reminders {
		byKey[string(r.Key)] = r
	}
	raw, err := json.Marshal(byKey)
	if err != nil {
		return nil, fmt.Errorf("encode reminders: %w", err)
	}
	var doc map[string]interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode reminders: %w", err)
	}
	return doc, nil
}

// Reminders returns the forward patch turning from into to, and the
// backward patch undoing it.
func Reminders(from, to []model.Reminder) (fwd, bwd []model.PatchOperation, err error) {
	a, err := Keyed(from)
	if err != nil {
		return nil, nil, err
	}
	b, err := Keyed(to)
	if err != nil {
		return nil, nil, err
	}
	fwd, bwd = DiffBoth(a, b, "")
	if fwd == nil {
		fwd = []model.PatchOperation{}
	}
	if bwd == nil {
		bwd = []model.PatchOperation{}
	}
	return fwd, bwd, nil
}
