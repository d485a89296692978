package users

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"carvault/internal/common"
	"carvault/internal/docstore"
)

func newRepo(t *testing.T) *DocStoreRepository {
	t.Helper()

	backend, err := docstore.NewFileBackend(t.TempDir(), "users")
	require.NoError(t, err)

	return NewDocStoreRepository(docstore.New[User]("users", backend))
}

func TestCreate_AssignsServerFields(t *testing.T) {
	repo := newRepo(t)

	created, err := repo.Create(context.Background(), &User{
		Username:     "alice",
		Email:        "alice@x.com",
		PasswordHash: "digest",
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.False(t, created.CreatedAt.IsZero())

	found, err := repo.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, *created, *found)
}

func TestCreate_DuplicateEmailConflict(t *testing.T) {
	repo := newRepo(t)

	_, err := repo.Create(context.Background(), &User{Username: "alice", Email: "alice@x.com"})
	require.NoError(t, err)

	_, err = repo.Create(context.Background(), &User{Username: "other", Email: "alice@x.com"})
	require.ErrorIs(t, err, common.ErrorConflict)
}

func TestCreate_DuplicateUsernameConflict(t *testing.T) {
	repo := newRepo(t)

	_, err := repo.Create(context.Background(), &User{Username: "alice", Email: "alice@x.com"})
	require.NoError(t, err)

	_, err = repo.Create(context.Background(), &User{Username: "alice", Email: "other@x.com"})
	require.ErrorIs(t, err, common.ErrorConflict)
}

func TestCreate_ConcurrentSameEmailExactlyOneWins(t *testing.T) {
	repo := newRepo(t)

	const attempts = 10

	errs := make([]error, attempts)

	var wg sync.WaitGroup
	wg.Add(attempts)
	for i := 0; i < attempts; i++ {
		go func(i int) {
			defer wg.Done()
			_, errs[i] = repo.Create(context.Background(), &User{
				Username: "user-" + string(rune('a'+i)),
				Email:    "alice@x.com",
			})
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
			continue
		}
		require.ErrorIs(t, err, common.ErrorConflict)
	}
	require.Equal(t, 1, successes, "exactly one registration may win")
}

func TestFind_Missing(t *testing.T) {
	repo := newRepo(t)

	_, err := repo.FindByEmail(context.Background(), "nobody@x.com")
	require.ErrorIs(t, err, common.ErrorNotFound)

	_, err = repo.FindByID(context.Background(), "no-such-id")
	require.ErrorIs(t, err, common.ErrorNotFound)
}
