package docstore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"carvault/internal/common"
)

type record struct {
	ID    string `json:"id"`
	Count int    `json:"count"`
}

func newFileStore(t *testing.T) (*Store[record], string) {
	t.Helper()

	dir := t.TempDir()
	backend, err := NewFileBackend(dir, "records")
	require.NoError(t, err)

	return New[record]("records", backend), dir
}

func TestLoad_MissingSnapshotIsEmpty(t *testing.T) {
	store, _ := newFileStore(t)

	items, err := store.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, items)
	require.Empty(t, items)
}

func TestMutate_PersistsAcrossReopen(t *testing.T) {
	store, dir := newFileStore(t)

	err := store.Mutate(context.Background(), func(items []record) ([]record, error) {
		return append(items, record{ID: "r1", Count: 1}), nil
	})
	require.NoError(t, err)

	// A fresh store over the same directory must observe the write.
	backend, err := NewFileBackend(dir, "records")
	require.NoError(t, err)
	reopened := New[record]("records", backend)

	items, err := reopened.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "r1", items[0].ID)
}

func TestMutate_FnErrorAbortsWrite(t *testing.T) {
	store, _ := newFileStore(t)

	require.NoError(t, store.Mutate(context.Background(), func(items []record) ([]record, error) {
		return append(items, record{ID: "r1"}), nil
	}))

	boom := errors.New("boom")
	err := store.Mutate(context.Background(), func(items []record) ([]record, error) {
		return nil, boom
	})
	require.ErrorIs(t, err, boom)

	items, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
}

func TestLoad_CorruptSnapshotIsStorageError(t *testing.T) {
	store, dir := newFileStore(t)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "records.json"), []byte("{not json"), 0o660))

	_, err := store.Load(context.Background())
	require.ErrorIs(t, err, common.ErrorStorage)
}

func TestMutate_NoLostUpdates(t *testing.T) {
	store, _ := newFileStore(t)

	const writers = 50

	var wg sync.WaitGroup
	wg.Add(writers)
	for i := 0; i < writers; i++ {
		go func() {
			defer wg.Done()
			_ = store.Mutate(context.Background(), func(items []record) ([]record, error) {
				return append(items, record{Count: len(items)}), nil
			})
		}()
	}
	wg.Wait()

	items, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, items, writers, "each mutate must observe all prior writes")
}

func TestFileBackend_SaveLeavesNoTempFiles(t *testing.T) {
	store, dir := newFileStore(t)

	require.NoError(t, store.Mutate(context.Background(), func(items []record) ([]record, error) {
		return append(items, record{ID: "r1"}), nil
	}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "records.json", entries[0].Name())
}
