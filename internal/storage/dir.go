package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// DirStore keeps every file as a direct child of a single flat directory.
// This is the default backend.
type DirStore struct {
	root string
}

// NewDirStore creates the backing directory if it does not exist and
// returns a store rooted there. The directory is created exactly once, at
// startup; handlers assume it exists for the rest of the process lifetime.
func NewDirStore(root string) (*DirStore, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(absRoot, 0755); err != nil {
		return nil, err
	}
	return &DirStore{root: absRoot}, nil
}

// Root returns the absolute backing directory.
func (d *DirStore) Root() string { return d.root }

// path forms the storage location from the raw filename. The name is used
// as given; names containing separators or parent segments can address
// entries outside the root (known gap, kept deliberately).
func (d *DirStore) path(filename string) string {
	return filepath.Join(d.root, filename)
}

func (d *DirStore) Write(_ context.Context, filename string, data []byte) error {
	f, err := os.Create(d.path(filename))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCreateFailed, err)
	}

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", filename, err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return fmt.Errorf("flush %s: %w", filename, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", filename, err)
	}
	return nil
}

func (d *DirStore) Read(_ context.Context, filename string) ([]byte, error) {
	data, err := os.ReadFile(d.path(filename))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

func (d *DirStore) List(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(d.root)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}
