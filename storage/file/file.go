// Package file provides a storage.Store backed by flat JSON files.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/docsgate/docsgate/storage"
)

// Store persists each collection as one pretty-printed JSON array file under
// a data directory. Every mutation rewrites the whole file; the write goes
// through a temp file and rename so readers never observe a partial file.
type Store struct {
	dir string
}

var _ storage.Store = (*Store)(nil)

// New creates the data directory if needed and returns a file Store.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("creating storage directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path(collection string) string {
	return filepath.Join(s.dir, collection+".json")
}

func (s *Store) Load(ctx context.Context, collection string) ([]byte, error) {
	data, err := os.ReadFile(s.path(collection))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading collection file: %w", err)
	}
	return data, nil
}

func (s *Store) Save(ctx context.Context, collection string, data []byte) error {
	tmp, err := os.CreateTemp(s.dir, collection+"-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing collection file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing collection file: %w", err)
	}
	if err := os.Rename(tmpName, s.path(collection)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing collection file: %w", err)
	}
	return nil
}

func (s *Store) Close() error { return nil }
