package cars

import (
	"context"
	"time"

	"github.com/google/uuid"

	"carvault/internal/common"
	"carvault/internal/docstore"
)

// DocStoreRepository persists cars in a document store collection. Every
// mutating operation runs find-check-ownership-and-apply inside a single
// Mutate call, so a delete and an update on the same record can never
// interleave.
type DocStoreRepository struct {
	store *docstore.Store[Car]
}

func NewDocStoreRepository(store *docstore.Store[Car]) *DocStoreRepository {
	return &DocStoreRepository{store: store}
}

// findOwned locates a record and enforces ownership: a missing record is
// ErrorNotFound, someone else's record is ErrorForbidden.
func findOwned(items []Car, id, requesterID string) (int, error) {
	for i := range items {
		if items[i].ID == id {
			if items[i].CreatedBy != requesterID {
				return 0, common.ErrorForbidden
			}
			return i, nil
		}
	}

	return 0, common.ErrorNotFound
}

// Create assigns the ID and creation timestamp and appends the car. The
// owner comes from car.CreatedBy as set by the service, never from caller
// input.
func (r *DocStoreRepository) Create(ctx context.Context, car *Car) (*Car, error) {
	created := *car

	err := r.store.Mutate(ctx, func(items []Car) ([]Car, error) {
		created.ID = uuid.NewString()
		created.CreatedAt = time.Now().UTC()

		return append(items, created), nil
	})
	if err != nil {
		return nil, err
	}

	return &created, nil
}

// ListByOwner filters the collection down to one owner's cars, preserving
// insertion order.
func (r *DocStoreRepository) ListByOwner(ctx context.Context, ownerID string) ([]Car, error) {
	items, err := r.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	owned := make([]Car, 0, len(items))
	for i := range items {
		if items[i].CreatedBy == ownerID {
			owned = append(owned, items[i])
		}
	}

	return owned, nil
}

func (r *DocStoreRepository) Get(ctx context.Context, id, requesterID string) (*Car, error) {
	items, err := r.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	i, err := findOwned(items, id, requesterID)
	if err != nil {
		return nil, err
	}

	car := items[i]
	return &car, nil
}

// Update applies the non-nil fields of params, leaving the rest untouched,
// and stamps UpdatedAt. The ownership check precedes any field mutation.
func (r *DocStoreRepository) Update(ctx context.Context, id, requesterID string, params UpdateParams) (*Car, error) {
	var updated Car

	err := r.store.Mutate(ctx, func(items []Car) ([]Car, error) {
		i, err := findOwned(items, id, requesterID)
		if err != nil {
			return nil, err
		}

		car := &items[i]
		if params.Brand != nil {
			car.Brand = *params.Brand
		}
		if params.Model != nil {
			car.Model = *params.Model
		}
		if params.Year != nil {
			car.Year = *params.Year
		}
		if params.Price != nil {
			car.Price = *params.Price
		}
		if params.ImageURL != nil {
			car.ImageURL = *params.ImageURL
		}
		if params.Description != nil {
			car.Description = *params.Description
		}

		now := time.Now().UTC()
		car.UpdatedAt = &now

		updated = *car
		return items, nil
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

// MarkSold sets the sold flag. Re-marking an already-sold car is a no-op
// success.
func (r *DocStoreRepository) MarkSold(ctx context.Context, id, requesterID string) (*Car, error) {
	var sold Car

	err := r.store.Mutate(ctx, func(items []Car) ([]Car, error) {
		i, err := findOwned(items, id, requesterID)
		if err != nil {
			return nil, err
		}

		items[i].IsSell = true

		sold = items[i]
		return items, nil
	})
	if err != nil {
		return nil, err
	}

	return &sold, nil
}

// Delete removes the record from the collection.
func (r *DocStoreRepository) Delete(ctx context.Context, id, requesterID string) error {
	return r.store.Mutate(ctx, func(items []Car) ([]Car, error) {
		i, err := findOwned(items, id, requesterID)
		if err != nil {
			return nil, err
		}

		return append(items[:i], items[i+1:]...), nil
	})
}
