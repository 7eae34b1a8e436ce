package store

import (
	"context"
	"os"
	"path/filepath"
	"sync"
)

// Store is the interface for the place scrape results are written to.
// Names are file names including their extension.
type Store interface {
	Set(ctx context.Context, name string, value []byte) error
	// Location describes where name is stored, for user-facing messages.
	Location(name string) string
}

// LocalStore is a file-based implementation of Store.
type LocalStore struct {
	dir string
	mu  sync.Mutex
}

// NewLocal creates a new LocalStore with the specified directory.
func NewLocal(dir string) (*LocalStore, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &LocalStore{dir: dir}, nil
}

// Set creates or overwrites the named file.
func (s *LocalStore) Set(_ context.Context, name string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return os.WriteFile(s.path(name), value, 0644)
}

// Location returns the path of the named file, relative when the store
// writes to the working directory.
func (s *LocalStore) Location(name string) string {
	if s.dir == "." {
		return name
	}
	return s.path(name)
}

func (s *LocalStore) path(name string) string {
	return filepath.Join(s.dir, name)
}
