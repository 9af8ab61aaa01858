package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileExt is appended to the key to form the file name.
const FileExt = ".json"

// File stores each key as one file inside a directory.
type File struct {
	dir string
}

// NewFile creates dir if needed.
func NewFile(dir string) (*File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating storage dir: %w", err)
	}
	return &File{dir: dir}, nil
}

func (f *File) Dir() string { return f.dir }

// Path returns the file backing key.
func (f *File) Path(key string) string {
	return filepath.Join(f.dir, key+FileExt)
}

func (f *File) Get(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(f.Path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", key, err)
	}
	return data, nil
}

// Put replaces the file atomically so readers never see a partial blob.
func (f *File) Put(_ context.Context, key string, value []byte) error {
	tmp, err := os.CreateTemp(f.dir, "."+key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", key, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("syncing %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", key, err)
	}
	if err := os.Rename(tmpName, f.Path(key)); err != nil {
		return fmt.Errorf("replacing %s: %w", key, err)
	}
	return nil
}

func (f *File) Close() error { return nil }
