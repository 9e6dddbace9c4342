package policy

import "slices"

// Verdict is the outcome of evaluating one document or pair.
type Verdict struct {
	Status   Status   `json:"status"`
	Action   string   `json:"action"`
	Problems []string `json:"problems"`
}

func newVerdict(action string) Verdict {
	return Verdict{
		Status:   Approved,
		Action:   action,
		Problems: []string{},
	}
}

// Escalate raises the verdict to at least the given status. The action is
// replaced when the status rises, or when a rejection follows a rejection.
func (v *Verdict) Escalate(to Status, action string) {
	switch {
	case to > v.Status:
		v.Status = to
		v.Action = action
	case to == Rejected && v.Status == Rejected:
		v.Action = action
	}
}

// AddProblem appends a problem unless it is already recorded.
func (v *Verdict) AddProblem(problem string) {
	if problem == "" || slices.Contains(v.Problems, problem) {
		return
	}
	v.Problems = append(v.Problems, problem)
}

// Flag escalates and records a problem in one step.
func (v *Verdict) Flag(to Status, action, problem string) {
	v.Escalate(to, action)
	v.AddProblem(problem)
}
