package docstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FileBackend stores the collection snapshot as a single JSON file under a
// data directory, one file per collection.
type FileBackend struct {
	path string
}

// NewFileBackend creates the data directory if needed and returns a backend
// persisting the collection at dir/<name>.json.
func NewFileBackend(dir, name string) (*FileBackend, error) {
	if err := os.MkdirAll(dir, 0o770); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return &FileBackend{path: filepath.Join(dir, name+".json")}, nil
}

func (b *FileBackend) Load(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(b.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return data, nil
}

// Save replaces the snapshot atomically: the data is written to a temporary
// file in the same directory and renamed over the previous snapshot, so a
// crash mid-write never leaves a truncated or corrupt file behind.
func (b *FileBackend) Save(_ context.Context, data []byte) error {
	dir := filepath.Dir(b.path)

	tmp, err := os.CreateTemp(dir, filepath.Base(b.path)+".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Chmod(tmp.Name(), 0o660); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), b.path)
}
