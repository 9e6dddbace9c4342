// Package documents implements content classification for submitted PDFs.
// It decides whether a file is a civil-registry original record, a certifying
// document that references one, or something unrelated, and extracts the
// tracking identifier used to link the two.
package documents

import (
	"encoding/json"
	"fmt"
	"slices"
)

// Role is the part a document plays in an apostille submission.
type Role string

// Document roles.
const (
	RoleOriginal     Role = "original"
	RoleCertificate  Role = "certificate"
	RoleUnclassified Role = "unclassified"
)

var roles = []Role{
	RoleOriginal,
	RoleCertificate,
	RoleUnclassified,
}

// Label returns the short registry name for the role (IF, CE or OTRO).
func (r Role) Label() string {
	switch r {
	case RoleOriginal:
		return "IF"
	case RoleCertificate:
		return "CE"
	default:
		return "OTRO"
	}
}

// UnmarshalJSON validates that the decoded string is a known role.
func (r *Role) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v := Role(raw)
	if !slices.Contains(roles, v) {
		return fmt.Errorf("%w: %q", ErrInvalidRole, raw)
	}
	*r = v
	return nil
}

// ClassifiedDocument is a submitted file together with its detected role and,
// when one could be recovered, its tracking identifier.
// Values are produced by Classify and are not modified afterwards.
type ClassifiedDocument struct {
	Name       string      `json:"name"`
	Role       Role        `json:"role"`
	Identifier *Identifier `json:"identifier,omitempty"`
	Raw        []byte      `json:"-"`
	Text       string      `json:"-"`
}

// Preview returns up to n characters of the extracted text for diagnostics.
func (d ClassifiedDocument) Preview(n int) string {
	runes := []rune(d.Text)
	if len(runes) <= n {
		return d.Text
	}
	return string(runes[:n])
}
