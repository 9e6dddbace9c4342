package reviews

import (
	"net/url"
	"strings"
	"time"

	"github.com/JaimeStill/revisor/internal/policy"
	"github.com/JaimeStill/revisor/pkg/query"
	"github.com/JaimeStill/revisor/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "reviews", "r").
	Project("id", "ID").
	Project("status", "Status").
	Project("total", "Total").
	Project("pairs", "Pairs").
	Project("orphans", "Orphans").
	Project("approved", "Approved").
	Project("needs_review", "NeedsReview").
	Project("rejected", "Rejected").
	Project("report_key", "ReportKey").
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

var itemProjection = query.
	NewProjectionMap("public", "review_items", "i").
	Project("review_id", "ReviewID").
	Project("position", "Position").
	Project("file", "File").
	Project("kind", "Kind").
	Project("holder", "Holder").
	Project("document_type", "DocumentType").
	Project("issue_date", "IssueDate").
	Project("references_original", "ReferencesOriginal").
	Project("reference_found", "ReferenceFound").
	Project("certificate_signer", "CertificateSigner").
	Project("signature", "Signature").
	Project("signers", "Signers").
	Project("status", "Status").
	Project("action", "Action").
	Project("observation", "Observation")

var itemSort = query.SortField{Field: "Position"}

// Filters contains optional filtering criteria for review queries.
// Nil fields are ignored. Since is inclusive, Until exclusive.
type Filters struct {
	Status *string    `json:"status,omitempty"`
	Since  *time.Time `json:"since,omitempty"`
	Until  *time.Time `json:"until,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("Status", f.Status).
		WhereAtLeast("CreatedAt", f.Since).
		WhereBefore("CreatedAt", f.Until)
}

// FiltersFromQuery extracts filter values from URL query parameters.
// Unknown status names and unparsable times are ignored.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if s := values.Get("status"); s != "" {
		if _, err := policy.ParseStatus(s); err == nil {
			f.Status = &s
		}
	}

	f.Since = parseTime(values.Get("since"))
	f.Until = parseTime(values.Get("until"))

	return f
}

// parseTime accepts RFC 3339 or a bare YYYY-MM-DD date in UTC.
func parseTime(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, time.DateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// ItemFilters narrows the rows returned for a review.
// Statuses match any of the listed values; File is a substring match.
type ItemFilters struct {
	Statuses []string `json:"statuses,omitempty"`
	Kind     *string  `json:"kind,omitempty"`
	File     *string  `json:"file,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f ItemFilters) Apply(b *query.Builder) *query.Builder {
	statuses := make([]any, len(f.Statuses))
	for i, s := range f.Statuses {
		statuses[i] = s
	}
	return b.
		WhereIn("Status", statuses).
		WhereEquals("Kind", f.Kind).
		WhereContains("File", f.File)
}

// ItemFiltersFromQuery extracts item filters from URL query parameters.
// status accepts a comma-separated list of status names.
func ItemFiltersFromQuery(values url.Values) ItemFilters {
	var f ItemFilters

	for s := range strings.SplitSeq(values.Get("status"), ",") {
		s = strings.TrimSpace(s)
		if _, err := policy.ParseStatus(s); err == nil {
			f.Statuses = append(f.Statuses, s)
		}
	}

	if k := values.Get("kind"); k != "" {
		f.Kind = &k
	}

	if file := values.Get("file"); file != "" {
		f.File = &file
	}

	return f
}

func scanReview(s repository.Scanner) (Review, error) {
	var r Review
	var status string

	err := s.Scan(
		&r.ID,
		&status,
		&r.Total,
		&r.Pairs,
		&r.Orphans,
		&r.Approved,
		&r.NeedsReview,
		&r.Rejected,
		&r.ReportKey,
		&r.CreatedAt,
	)
	if err != nil {
		return r, err
	}

	r.Status, err = policy.ParseStatus(status)
	return r, err
}

func scanItem(s repository.Scanner) (Item, error) {
	var i Item
	var status string

	err := s.Scan(
		&i.ReviewID,
		&i.Position,
		&i.File,
		&i.Kind,
		&i.Holder,
		&i.DocumentType,
		&i.IssueDate,
		&i.ReferencesOriginal,
		&i.ReferenceFound,
		&i.CertificateSigner,
		&i.Signature,
		&i.Signers,
		&status,
		&i.Action,
		&i.Observation,
	)
	if err != nil {
		return i, err
	}

	i.Status, err = policy.ParseStatus(status)
	return i, err
}
