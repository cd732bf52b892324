// Package bolt provides a storage.Store backed by a bbolt database.
package bolt

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/docsgate/docsgate/storage"
)

var bucketName = []byte("collections")

// Store is the managed durable backend: collection snapshots live as values
// in a single bbolt bucket keyed by collection name. Selected when a bolt
// path is configured; otherwise the file or memory backends are used.
type Store struct {
	db *bbolt.DB
}

var _ storage.Store = (*Store)(nil)

// Open opens (or creates) the bbolt database at path.
func Open(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("opening bolt db: %w", err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing bolt bucket: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Load(ctx context.Context, collection string) ([]byte, error) {
	var data []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(bucketName).Get([]byte(collection))
		if v != nil {
			data = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("reading collection: %w", err)
	}
	return data, nil
}

func (s *Store) Save(ctx context.Context, collection string, data []byte) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketName).Put([]byte(collection), data)
	})
	if err != nil {
		return fmt.Errorf("writing collection: %w", err)
	}
	return nil
}

// Close closes the underlying bbolt database.
func (s *Store) Close() error {
	return s.db.Close()
}
