package cars

import (
	"context"
)

// UpdateParams carries a partial update; nil fields keep their prior values.
type UpdateParams struct {
	Brand       *string
	Model       *string
	Year        *int
	Price       *float64
	ImageURL    *string
	Description *string
}

type Repository interface {
	Create(ctx context.Context, car *Car) (*Car, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Car, error)
	Get(ctx context.Context, id, requesterID string) (*Car, error)
	Update(ctx context.Context, id, requesterID string, params UpdateParams) (*Car, error)
	MarkSold(ctx context.Context, id, requesterID string) (*Car, error)
	Delete(ctx context.Context, id, requesterID string) error
}
