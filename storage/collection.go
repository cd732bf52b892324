package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"
)

// Collection is a typed view over one named collection in a Store. Every
// mutation reads the full snapshot, edits it in memory, and writes it back,
// so a failed request can never leave a partially written collection behind.
// There is no cross-writer coordination: last writer wins, which is
// acceptable for an admin-scale directory.
//
// T is instantiated with a pointer type, e.g. Collection[*directory.User].
type Collection[T Entity] struct {
	name   string
	store  Store
	logger *slog.Logger
}

// NewCollection creates a typed view over the named collection.
func NewCollection[T Entity](store Store, name string, logger *slog.Logger) *Collection[T] {
	return &Collection[T]{
		name:   name,
		store:  store,
		logger: logger.With("collection", name),
	}
}

// Name returns the collection name.
func (c *Collection[T]) Name() string { return c.name }

// All returns every record in the collection. Read or decode failures
// degrade to an empty result: the error is logged, never surfaced, keeping
// read paths available even over a corrupt snapshot.
func (c *Collection[T]) All(ctx context.Context) []T {
	data, err := c.store.Load(ctx, c.name)
	if err != nil {
		c.logger.Error("loading collection, returning empty", "error", err)
		return nil
	}
	if len(data) == 0 {
		return nil
	}
	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		c.logger.Error("decoding collection, returning empty", "error", err)
		return nil
	}
	return records
}

// Find returns the first record satisfying pred.
func (c *Collection[T]) Find(ctx context.Context, pred func(T) bool) (T, bool) {
	for _, rec := range c.All(ctx) {
		if pred(rec) {
			return rec, true
		}
	}
	var zero T
	return zero, false
}

// Get returns the record with the given id.
func (c *Collection[T]) Get(ctx context.Context, id string) (T, bool) {
	return c.Find(ctx, func(rec T) bool { return rec.EntityID() == id })
}

// Insert assigns a fresh identifier and creation timestamp to rec, appends
// it, and persists the collection. The stored record is returned.
func (c *Collection[T]) Insert(ctx context.Context, rec T) (T, error) {
	return c.InsertPruned(ctx, rec, nil)
}

// InsertPruned is Insert with housekeeping: records failing keep are dropped
// in the same snapshot write. A nil keep retains everything.
func (c *Collection[T]) InsertPruned(ctx context.Context, rec T, keep func(T) bool) (T, error) {
	var zero T
	id, err := NewID()
	if err != nil {
		return zero, err
	}
	rec.StampNew(id, time.Now().UTC())

	records := c.All(ctx)
	if keep != nil {
		kept := records[:0]
		for _, r := range records {
			if keep(r) {
				kept = append(kept, r)
			}
		}
		records = kept
	}
	records = append(records, rec)
	if err := c.save(ctx, records); err != nil {
		return zero, err
	}
	return rec, nil
}

// Update applies mutate to the record with the given id and persists the
// collection. Returns false when no record has that id.
func (c *Collection[T]) Update(ctx context.Context, id string, mutate func(T)) (T, bool, error) {
	var zero T
	records := c.All(ctx)
	for _, rec := range records {
		if rec.EntityID() != id {
			continue
		}
		mutate(rec)
		if err := c.save(ctx, records); err != nil {
			return zero, false, err
		}
		return rec, true, nil
	}
	return zero, false, nil
}

// Delete removes the record with the given id. Returns true if a record was
// removed.
func (c *Collection[T]) Delete(ctx context.Context, id string) (bool, error) {
	records := c.All(ctx)
	kept := records[:0]
	removed := false
	for _, rec := range records {
		if rec.EntityID() == id {
			removed = true
			continue
		}
		kept = append(kept, rec)
	}
	if !removed {
		return false, nil
	}
	if err := c.save(ctx, kept); err != nil {
		return false, err
	}
	return true, nil
}

func (c *Collection[T]) save(ctx context.Context, records []T) error {
	if records == nil {
		records = []T{}
	}
	// Pretty-printed to keep the file backend's on-disk layout inspectable.
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding collection %s: %w", c.name, err)
	}
	if err := c.store.Save(ctx, c.name, data); err != nil {
		return fmt.Errorf("persisting collection %s: %w", c.name, err)
	}
	return nil
}
