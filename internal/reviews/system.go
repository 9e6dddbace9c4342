package reviews

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/revisor/internal/workflow"
	"github.com/JaimeStill/revisor/pkg/pagination"
)

// System defines the public contract for review run operations.
type System interface {
	Handler(maxUploadSize int64) *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Review], error)

	Find(ctx context.Context, id uuid.UUID) (*Review, error)
	Items(ctx context.Context, id uuid.UUID, filters ItemFilters) ([]Item, error)
	Create(ctx context.Context, files []workflow.Input) (*Review, error)
	Report(ctx context.Context, id uuid.UUID) ([]byte, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
