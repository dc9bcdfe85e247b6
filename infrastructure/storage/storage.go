// Package storage persists uploaded resume documents as opaque blobs.
package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotFound indicates the requested object does not exist.
var ErrNotFound = errors.New("object not found")

// ObjectStore stores raw document bytes under caller-chosen keys.
type ObjectStore interface {
	// Put writes an object, overwriting any previous content at the key.
	Put(ctx context.Context, key string, data []byte) error

	// Get reads an object, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Delete removes an object. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// Filesystem implements ObjectStore on a local directory tree.
type Filesystem struct {
	root string
}

// NewFilesystem creates a filesystem object store rooted at dir.
func NewFilesystem(dir string) (*Filesystem, error) {
	if dir == "" {
		return nil, errors.New("storage directory is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage directory: %w", err)
	}
	return &Filesystem{root: dir}, nil
}

// Root returns the store's root directory.
func (f *Filesystem) Root() string { return f.root }

// Put writes an object, creating intermediate directories as needed.
func (f *Filesystem) Put(_ context.Context, key string, data []byte) error {
	path, err := f.resolve(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create object directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write object %s: %w", key, err)
	}
	return nil
}

// Get reads an object's bytes.
func (f *Filesystem) Get(_ context.Context, key string) ([]byte, error) {
	path, err := f.resolve(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return nil, fmt.Errorf("read object %s: %w", key, err)
	}
	return data, nil
}

// Delete removes an object if it exists.
func (f *Filesystem) Delete(_ context.Context, key string) error {
	path, err := f.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete object %s: %w", key, err)
	}
	return nil
}

// resolve maps a key onto the root and rejects keys that would escape it.
func (f *Filesystem) resolve(key string) (string, error) {
	if key == "" {
		return "", errors.New("object key is empty")
	}
	cleaned := filepath.Clean(filepath.FromSlash(key))
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) || filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("object key escapes storage root: %s", key)
	}
	return filepath.Join(f.root, cleaned), nil
}
