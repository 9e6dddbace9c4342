package reviews

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/JaimeStill/revisor/internal/policy"
	"github.com/JaimeStill/revisor/internal/report"
	"github.com/JaimeStill/revisor/internal/workflow"
	"github.com/JaimeStill/revisor/pkg/pagination"
	"github.com/JaimeStill/revisor/pkg/query"
	"github.com/JaimeStill/revisor/pkg/repository"
	"github.com/JaimeStill/revisor/pkg/storage"
)

type repo struct {
	db         *sql.DB
	storage    storage.System
	rt         *workflow.Runtime
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a review repository implementing the System interface.
func New(
	db *sql.DB,
	store storage.System,
	rt *workflow.Runtime,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		storage:    store,
		rt:         rt,
		logger:     logger.With("system", "reviews"),
		pagination: pagination,
	}
}

func (r *repo) Handler(maxUploadSize int64) *Handler {
	return NewHandler(r, r.logger, r.pagination, maxUploadSize)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Review], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "ReportKey")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count reviews: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanReview)
	if err != nil {
		return nil, fmt.Errorf("query reviews: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Review, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	rv, err := repository.QueryOne(ctx, r.db, q, args, scanReview)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &rv, nil
}

func (r *repo) Items(ctx context.Context, id uuid.UUID, filters ItemFilters) ([]Item, error) {
	if _, err := r.Find(ctx, id); err != nil {
		return nil, err
	}

	qb := query.
		NewBuilder(itemProjection, itemSort).
		WhereEquals("ReviewID", id)

	filters.Apply(qb)

	q, args := qb.Build()
	items, err := repository.QueryMany(ctx, r.db, q, args, scanItem)
	if err != nil {
		return nil, fmt.Errorf("query review items: %w", err)
	}
	return items, nil
}

func (r *repo) Create(ctx context.Context, files []workflow.Input) (*Review, error) {
	if len(files) == 0 {
		return nil, ErrNoFiles
	}

	result, err := workflow.Execute(ctx, r.rt, files)
	if err != nil {
		return nil, fmt.Errorf("execute review: %w", err)
	}

	data, err := report.Write(result.Rows)
	if err != nil {
		return nil, fmt.Errorf("write report: %w", err)
	}

	id := uuid.New()
	key := reportKey(id, report.Filename)

	if err := r.storage.Upload(ctx, key, data, report.ContentType); err != nil {
		return nil, fmt.Errorf("upload report: %w", err)
	}

	insertQ := `
		INSERT INTO reviews(
			id, status, total, pairs, orphans,
			approved, needs_review, rejected, report_key
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, status, total, pairs, orphans,
				  approved, needs_review, rejected, report_key, created_at`

	insertArgs := []any{
		id,
		Outcome(result.Rows).String(),
		len(result.Rows),
		result.Pairs,
		result.Orphans,
		result.Count(policy.Approved),
		result.Count(policy.NeedsReview),
		result.Count(policy.Rejected),
		key,
	}

	itemQ := `
		INSERT INTO review_items(
			review_id, position, file, kind, holder, document_type, issue_date,
			references_original, reference_found, certificate_signer,
			signature, signers, status, action, observation
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	rv, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Review, error) {
		rv, err := repository.QueryOne(ctx, tx, insertQ, insertArgs, scanReview)
		if err != nil {
			return Review{}, err
		}

		err = repository.ExecEach(ctx, tx, itemQ, result.Rows, func(i int, row workflow.Row) []any {
			return []any{
				id, i,
				row.File, row.Kind, row.Holder, row.DocumentType, row.IssueDate,
				row.ReferencesOriginal, row.ReferenceFound, row.CertificateSigner,
				row.Signature, row.Signers, row.Status.String(), row.Action, row.Observation,
			}
		})
		if err != nil {
			return Review{}, fmt.Errorf("insert items: %w", err)
		}

		return rv, nil
	})

	if err != nil {
		if delErr := r.storage.Delete(ctx, key); delErr != nil {
			r.logger.Error("failed to clean up report after db error",
				"key", key,
				"error", delErr,
			)
		}
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("review created",
		"id", rv.ID,
		"status", rv.Status,
		"total", rv.Total,
		"approved", rv.Approved,
		"needs_review", rv.NeedsReview,
		"rejected", rv.Rejected,
	)
	return &rv, nil
}

func (r *repo) Report(ctx context.Context, id uuid.UUID) ([]byte, error) {
	rv, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	data, err := r.storage.Download(ctx, rv.ReportKey)
	if err != nil {
		return nil, fmt.Errorf("download report: %w", err)
	}
	return data, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	rv, err := r.Find(ctx, id)
	if err != nil {
		return err
	}

	_, err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM reviews WHERE id = $1",
			id,
		); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	if err := r.storage.Delete(ctx, rv.ReportKey); err != nil {
		r.logger.Error("failed to delete report blob",
			"key", rv.ReportKey,
			"error", err,
		)
	}

	r.logger.Info("review deleted", "id", id)
	return nil
}
