package policy

import "fmt"

// Status is the outcome of a review. Values are ordered by severity so that
// comparisons express escalation: Approved < NeedsReview < Rejected.
type Status int

// Review statuses.
const (
	Approved Status = iota
	NeedsReview
	Rejected
)

var statusNames = map[Status]string{
	Approved:    "approved",
	NeedsReview: "needs_review",
	Rejected:    "rejected",
}

var statusLabels = map[Status]string{
	Approved:    "OK",
	NeedsReview: "REVISAR",
	Rejected:    "RECHAZAR",
}

// String returns the machine name of the status.
func (s Status) String() string {
	if n, ok := statusNames[s]; ok {
		return n
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// Label returns the report label of the status.
func (s Status) Label() string {
	return statusLabels[s]
}

// Escalate returns the more severe of s and to. It never lowers severity.
func (s Status) Escalate(to Status) Status {
	return max(s, to)
}

// ParseStatus converts a machine name back into a Status.
func ParseStatus(name string) (Status, error) {
	for s, n := range statusNames {
		if n == name {
			return s, nil
		}
	}
	return Approved, fmt.Errorf("%w: %q", ErrInvalidStatus, name)
}

// MarshalText encodes the status as its machine name.
func (s Status) MarshalText() ([]byte, error) {
	if _, ok := statusNames[s]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrInvalidStatus, int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText decodes a machine name.
func (s *Status) UnmarshalText(data []byte) error {
	v, err := ParseStatus(string(data))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
