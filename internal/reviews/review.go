// Package reviews persists batch review runs and serves them over HTTP.
// A run stores its per-document rows alongside the generated spreadsheet,
// which is kept in blob storage under reviews/<id>/.
package reviews

import (
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/revisor/internal/policy"
	"github.com/JaimeStill/revisor/internal/workflow"
)

// Review is a persisted batch run with its status tallies.
type Review struct {
	ID          uuid.UUID     `json:"id"`
	Status      policy.Status `json:"status"`
	Total       int           `json:"total"`
	Pairs       int           `json:"pairs"`
	Orphans     int           `json:"orphans"`
	Approved    int           `json:"approved"`
	NeedsReview int           `json:"needs_review"`
	Rejected    int           `json:"rejected"`
	ReportKey   string        `json:"report_key"`
	CreatedAt   time.Time     `json:"created_at"`
}

// Item is one stored report row of a review.
type Item struct {
	ReviewID uuid.UUID `json:"review_id"`
	Position int       `json:"position"`
	workflow.Row
}

// Outcome returns the most severe status among rows.
// An empty run is Approved.
func Outcome(rows []workflow.Row) policy.Status {
	status := policy.Approved
	for _, r := range rows {
		status = status.Escalate(r.Status)
	}
	return status
}

func reportKey(id uuid.UUID, filename string) string {
	return "reviews/" + id.String() + "/" + filename
}
