// Package storage provides the persistence abstraction for the portal's
// JSON collections. A Store persists whole-collection snapshots; Collection
// layers the typed record operations on top, so the three backends only
// differ in where the bytes live.
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/docsgate/docsgate/internal/util"
)

// Store persists named collections as raw JSON array snapshots. Save must
// replace the entire collection atomically from the caller's point of view;
// Load returns nil data when the collection does not exist yet.
type Store interface {
	Load(ctx context.Context, collection string) ([]byte, error)
	Save(ctx context.Context, collection string, data []byte) error
	Close() error
}

// Entity is implemented by record types managed through a Collection.
// StampNew is called once on insert to assign the identity fields.
type Entity interface {
	EntityID() string
	StampNew(id string, createdAt time.Time)
}

// NewID returns a fresh record identifier: unix milliseconds plus a random
// lowercase suffix. Collision probability is negligible at this scale.
func NewID() (string, error) {
	suffix, err := util.RandomSuffix(9)
	if err != nil {
		return "", fmt.Errorf("generating record id: %w", err)
	}
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), suffix), nil
}
