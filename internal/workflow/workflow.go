// Package workflow runs a review batch end to end: extract and classify
// every file, pair certificates with originals, then evaluate each pair and
// leftover document with the oracle, the signature checker and the policy.
package workflow

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/revisor/internal/documents"
	"github.com/JaimeStill/revisor/internal/extract"
	"github.com/JaimeStill/revisor/internal/pairing"
	"github.com/JaimeStill/revisor/internal/policy"
)

const previewLength = 300

// Input is one submitted PDF.
type Input struct {
	Name string
	Data []byte
}

// Classification records how a file was classified, for diagnostics.
type Classification struct {
	File       string         `json:"file"`
	Role       documents.Role `json:"role"`
	Identifier string         `json:"identifier"`
	Preview    string         `json:"preview"`
}

// Result is the outcome of a review run. Rows list pairs first, then
// orphans, in the order produced by pairing.
type Result struct {
	Rows            []Row            `json:"rows"`
	Classifications []Classification `json:"classifications"`
	Pairs           int              `json:"pairs"`
	Orphans         int              `json:"orphans"`
	CompletedAt     time.Time        `json:"completed_at"`
}

// Count returns the number of rows with the given status.
func (r *Result) Count(status policy.Status) int {
	n := 0
	for _, row := range r.Rows {
		if row.Status == status {
			n++
		}
	}
	return n
}

// Execute reviews a batch of documents. Failures on individual items become
// NeedsReview rows; only cancellation of ctx aborts the run.
func Execute(ctx context.Context, rt *Runtime, inputs []Input) (*Result, error) {
	if len(inputs) == 0 {
		return nil, ErrNoInputs
	}

	docs, classifications, err := classify(ctx, rt, inputs)
	if err != nil {
		return nil, err
	}

	paired := pairing.Pair(docs)

	rt.Logger.InfoContext(
		ctx, "pairing complete",
		"documents", len(docs),
		"pairs", len(paired.Pairs),
		"orphans", len(paired.Orphans),
	)

	tasks := make([]func(context.Context) Row, 0, len(paired.Pairs)+len(paired.Orphans))
	for _, p := range paired.Pairs {
		tasks = append(tasks, func(ctx context.Context) Row {
			return reviewPair(ctx, rt, p)
		})
	}
	for _, o := range paired.Orphans {
		tasks = append(tasks, func(ctx context.Context) Row {
			return reviewOrphan(ctx, rt, o)
		})
	}

	rows := make([]Row, len(tasks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workerCount(rt.Workers, len(tasks)))

	for i, task := range tasks {
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			rows[i] = task(gctx)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("review: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("review: %w", err)
	}

	return &Result{
		Rows:            rows,
		Classifications: classifications,
		Pairs:           len(paired.Pairs),
		Orphans:         len(paired.Orphans),
		CompletedAt:     time.Now(),
	}, nil
}

func classify(ctx context.Context, rt *Runtime, inputs []Input) ([]documents.ClassifiedDocument, []Classification, error) {
	textOf := rt.Text
	if textOf == nil {
		textOf = extract.Text
	}

	docs := make([]documents.ClassifiedDocument, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workerCount(rt.Workers, len(inputs)))

	for i, in := range inputs {
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			text := textOf(in.Data)
			docs[i] = documents.Classify(in.Name, in.Data, text)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, fmt.Errorf("classify: %w", err)
	}

	entries := make([]Classification, len(docs))
	for i, d := range docs {
		entries[i] = classification(d)
		rt.Logger.DebugContext(
			ctx, "document classified",
			"file", d.Name,
			"role", d.Role,
			"identifier", entries[i].Identifier,
		)
	}

	return docs, entries, nil
}

func classification(d documents.ClassifiedDocument) Classification {
	id := notApplicable
	if d.Identifier != nil {
		id = d.Identifier.String()
	}

	preview := strings.ReplaceAll(d.Preview(previewLength), "\n", " ")
	if strings.TrimSpace(preview) == "" {
		preview = "(sin texto extraíble)"
	}

	return Classification{
		File:       d.Name,
		Role:       d.Role,
		Identifier: id,
		Preview:    preview,
	}
}

func workerCount(limit, n int) int {
	if limit <= 0 {
		limit = runtime.NumCPU()
	}
	return max(min(limit, n), 1)
}
