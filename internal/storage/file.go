package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gosimple/slug"
)

// FileStore keeps every key in its own JSON file inside a directory.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("error creating storage directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (f *FileStore) Dir() string { return f.dir }

func (f *FileStore) path(key string) string {
	name := slug.Make(key)
	if name == "" {
		name = "_"
	}
	return filepath.Join(f.dir, name+".json")
}

func (f *FileStore) Get(key string) ([]byte, error) {
	data, err := os.ReadFile(f.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error reading %q: %w", key, err)
	}
	return data, nil
}

// Set replaces the file atomically so a crash never leaves half a record.
func (f *FileStore) Set(key string, value []byte) error {
	tmp, err := os.CreateTemp(f.dir, ".kv-*")
	if err != nil {
		return fmt.Errorf("error creating temporary file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		return fmt.Errorf("error writing %q: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("error writing %q: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), f.path(key)); err != nil {
		return fmt.Errorf("error replacing %q: %w", key, err)
	}
	return nil
}

func (f *FileStore) Close() error { return nil }
