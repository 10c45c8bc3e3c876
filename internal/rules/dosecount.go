package rules

import "reminder-engine/internal/model"

// DoseCountRule judges a family purely by how many doses are recorded.
type DoseCountRule struct {
	Key          model.FamilyKey
	Title        string
	Target       int
	NoneText     string
	PartialText  string
	CompleteText string
}

func (r *DoseCountRule) Family() model.FamilyKey { return r.Key }

func (r *DoseCountRule) Evaluate(in *Input) *model.Reminder {
	h := in.History(r.Key)
	rem := &model.Reminder{
		Key:           r.Key,
		Title:         r.Title,
		DosesRecorded: intPtr(h.Completed),
	}
	switch {
	case h.Completed == 0:
		rem.Status = model.StatusMissing
		rem.Message = r.NoneText
	case h.Completed < r.Target:
		rem.Status = model.StatusDue
		rem.Message = r.PartialText
		rem.LastDoseDate = h.LastCompleted
	default:
		rem.Status = model.StatusUpToDate
		rem.Message = r.CompleteText
		rem.LastDoseDate = h.LastCompleted
	}
	return rem
}
