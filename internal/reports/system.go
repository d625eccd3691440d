package reports

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/canopy/pkg/pagination"
)

// System defines the public contract for report operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Report], error)

	Find(ctx context.Context, id uuid.UUID) (*Report, error)
	Generate(ctx context.Context, cmd GenerateCommand) (*Report, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context) (*Stats, error)
}
