package workflow

import (
	"strings"

	"github.com/JaimeStill/revisor/internal/policy"
)

// Row kinds as shown in the report.
const (
	KindPair   = "Par IF+CE"
	KindSingle = "Individual"
)

const notApplicable = "—"

// Row is one line of the review report: a matched pair or a single document.
type Row struct {
	File               string        `json:"file"`
	Kind               string        `json:"kind"`
	Holder             string        `json:"holder"`
	DocumentType       string        `json:"document_type"`
	IssueDate          string        `json:"issue_date"`
	ReferencesOriginal string        `json:"references_original"`
	ReferenceFound     string        `json:"reference_found"`
	CertificateSigner  string        `json:"certificate_signer"`
	Signature          string        `json:"signature"`
	Signers            string        `json:"signers"`
	Status             policy.Status `json:"status"`
	Action             string        `json:"action"`
	Observation        string        `json:"observation"`
}

// Observation joins the oracle summary with the verdict problems.
func Observation(summary string, problems []string) string {
	summary = strings.TrimSpace(summary)
	if len(problems) == 0 {
		return summary
	}
	extra := strings.Join(problems, "; ")
	if summary == "" {
		return extra
	}
	return summary + " — " + extra
}

func errorRow(row Row, err error) Row {
	row.Status = policy.NeedsReview
	row.Action = "Error de análisis"
	row.Observation = "Error: " + err.Error()
	return row
}
