// Package docstore implements the durable document store: a named collection
// of records persisted as one JSON-array snapshot. All writes go through
// Mutate, which serializes the whole load/transform/persist cycle per
// collection, so concurrent read-modify-write operations can never lose each
// other's updates. The snapshot itself lives behind a pluggable Backend
// (local file, postgres row, S3 object).
package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"carvault/internal/common"
)

// Backend persists a collection's raw JSON snapshot in durable storage.
// Load returns (nil, nil) when no snapshot exists yet; the store treats
// that as an empty collection.
type Backend interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
}

// Store is a concurrency-safe document store over one collection of records.
// Within a single process, a per-collection mutex establishes a total order
// over Mutate calls. Cross-process access is out of scope.
type Store[T any] struct {
	name    string
	backend Backend
	mu      sync.Mutex
}

func New[T any](name string, backend Backend) *Store[T] {
	return &Store[T]{name: name, backend: backend}
}

// Load reads the entire collection. A missing snapshot yields an empty,
// non-nil collection.
func (s *Store[T]) Load(ctx context.Context) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load(ctx)
}

// Mutate runs one serialized read-modify-write cycle: load the collection,
// apply fn to produce its replacement, persist the result. fn returning an
// error aborts the cycle without writing. Values computed by fn flow out
// through closure capture:
//
//	var created User
//	err := store.Mutate(ctx, func(users []User) ([]User, error) {
//	    created = ...
//	    return append(users, created), nil
//	})
func (s *Store[T]) Mutate(ctx context.Context, fn func(items []T) ([]T, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load(ctx)
	if err != nil {
		return err
	}

	next, err := fn(items)
	if err != nil {
		return err
	}

	raw, err := json.MarshalIndent(next, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", common.ErrorStorage, s.name, err)
	}

	if err := s.backend.Save(ctx, raw); err != nil {
		return fmt.Errorf("%w: save %s: %v", common.ErrorStorage, s.name, err)
	}

	return nil
}

func (s *Store[T]) load(ctx context.Context) ([]T, error) {
	raw, err := s.backend.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: load %s: %v", common.ErrorStorage, s.name, err)
	}

	if len(raw) == 0 {
		return []T{}, nil
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", common.ErrorStorage, s.name, err)
	}

	return items, nil
}
