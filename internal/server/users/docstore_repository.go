package users

import (
	"context"
	"time"

	"github.com/google/uuid"

	"carvault/internal/common"
	"carvault/internal/docstore"
)

// DocStoreRepository persists users in a document store collection.
// No two users may share an email or a username (case-sensitive match).
type DocStoreRepository struct {
	store *docstore.Store[User]
}

func NewDocStoreRepository(store *docstore.Store[User]) *DocStoreRepository {
	return &DocStoreRepository{store: store}
}

// Create assigns the ID and creation timestamp and appends the user. The
// uniqueness check and the append run inside one Mutate call, so two
// concurrent registrations with the same email or username can never both
// pass the check.
func (r *DocStoreRepository) Create(ctx context.Context, user *User) (*User, error) {
	created := *user

	err := r.store.Mutate(ctx, func(items []User) ([]User, error) {
		for i := range items {
			if items[i].Email == created.Email || items[i].Username == created.Username {
				return nil, common.ErrorConflict
			}
		}

		created.ID = uuid.NewString()
		created.CreatedAt = time.Now().UTC()

		return append(items, created), nil
	})
	if err != nil {
		return nil, err
	}

	return &created, nil
}

func (r *DocStoreRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	items, err := r.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	for i := range items {
		if items[i].Email == email {
			user := items[i]
			return &user, nil
		}
	}

	return nil, common.ErrorNotFound
}

func (r *DocStoreRepository) FindByID(ctx context.Context, id string) (*User, error) {
	items, err := r.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	for i := range items {
		if items[i].ID == id {
			user := items[i]
			return &user, nil
		}
	}

	return nil, common.ErrorNotFound
}
