package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Local stores each key as <root>/<key>.json. Writes go to a temporary file
// that is renamed into place, so readers never observe a partial value.
type Local struct {
	root string
	perm fs.FileMode
}

// LocalOption configures a Local store.
type LocalOption func(*Local)

// WithFileMode sets the permission bits for stored files (default 0600).
func WithFileMode(perm fs.FileMode) LocalOption {
	return func(l *Local) {
		l.perm = perm
	}
}

// NewLocal creates the root directory if needed and returns a store rooted there.
func NewLocal(root string, opts ...LocalOption) (*Local, error) {
	if root == "" {
		return nil, ErrInvalidRoot
	}
	root = filepath.Clean(root)

	if err := os.MkdirAll(root, 0o700); err != nil {
		return nil, errors.Join(ErrInvalidRoot, err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, errors.Join(ErrInvalidRoot, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrInvalidRoot, root)
	}

	l := &Local{root: root, perm: 0o600}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Root returns the directory the store writes into.
func (l *Local) Root() string {
	return l.root
}

func (l *Local) Get(_ context.Context, key string) ([]byte, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}

	b, err := os.ReadFile(l.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("storage: read %q: %w", key, err)
	}
	return b, nil
}

func (l *Local) Set(_ context.Context, key string, value []byte) error {
	if err := ValidateKey(key); err != nil {
		return err
	}

	tmp := filepath.Join(l.root, ".tmp-"+uuid.NewString())
	if err := os.WriteFile(tmp, value, l.perm); err != nil {
		return fmt.Errorf("storage: write %q: %w", key, err)
	}
	if err := os.Rename(tmp, l.path(key)); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("storage: commit %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (l *Local) Delete(_ context.Context, key string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}

	err := os.Remove(l.path(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("storage: delete %q: %w", key, err)
	}
	return nil
}

func (l *Local) path(key string) string {
	return filepath.Join(l.root, key+".json")
}
