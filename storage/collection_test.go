package storage_test

import (
	"context"
	"io"
	"log/slog"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docsgate/docsgate/storage"
	"github.com/docsgate/docsgate/storage/memory"
)

type note struct {
	ID        string    `json:"id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
}

func (n *note) EntityID() string { return n.ID }

func (n *note) StampNew(id string, createdAt time.Time) {
	n.ID = id
	n.CreatedAt = createdAt
}

func newNotes(t *testing.T) *storage.Collection[*note] {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return storage.NewCollection[*note](memory.New(), "notes", logger)
}

func TestNewIDFormat(t *testing.T) {
	id, err := storage.NewID()
	require.NoError(t, err)
	require.Regexp(t, regexp.MustCompile(`^\d{13}-[a-z0-9]{9}$`), id)
}

func TestCollectionInsertAndGet(t *testing.T) {
	ctx := context.Background()
	notes := newNotes(t)

	rec, err := notes.Insert(ctx, &note{Body: "hello"})
	require.NoError(t, err)
	require.NotEmpty(t, rec.ID)
	require.False(t, rec.CreatedAt.IsZero())

	got, ok := notes.Get(ctx, rec.ID)
	require.True(t, ok)
	assert.Equal(t, "hello", got.Body)

	_, ok = notes.Get(ctx, "missing")
	assert.False(t, ok)
}

func TestCollectionInsertPruned(t *testing.T) {
	ctx := context.Background()
	notes := newNotes(t)

	_, err := notes.Insert(ctx, &note{Body: "old"})
	require.NoError(t, err)
	_, err = notes.Insert(ctx, &note{Body: "keep"})
	require.NoError(t, err)

	rec, err := notes.InsertPruned(ctx, &note{Body: "new"}, func(n *note) bool {
		return n.Body != "old"
	})
	require.NoError(t, err)

	all := notes.All(ctx)
	require.Len(t, all, 2)
	bodies := []string{all[0].Body, all[1].Body}
	assert.Contains(t, bodies, "keep")
	assert.Contains(t, bodies, "new")
	assert.NotEmpty(t, rec.ID)
}

func TestCollectionUpdate(t *testing.T) {
	ctx := context.Background()
	notes := newNotes(t)

	rec, err := notes.Insert(ctx, &note{Body: "before"})
	require.NoError(t, err)

	updated, ok, err := notes.Update(ctx, rec.ID, func(n *note) { n.Body = "after" })
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "after", updated.Body)

	// The mutation must survive a re-read.
	got, ok := notes.Get(ctx, rec.ID)
	require.True(t, ok)
	assert.Equal(t, "after", got.Body)

	_, ok, err = notes.Update(ctx, "missing", func(n *note) {})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCollectionDelete(t *testing.T) {
	ctx := context.Background()
	notes := newNotes(t)

	rec, err := notes.Insert(ctx, &note{Body: "doomed"})
	require.NoError(t, err)

	removed, err := notes.Delete(ctx, rec.ID)
	require.NoError(t, err)
	require.True(t, removed)
	assert.Empty(t, notes.All(ctx))

	removed, err = notes.Delete(ctx, rec.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestCollectionCorruptSnapshotReadsEmpty(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	notes := storage.NewCollection[*note](store, "notes", logger)

	require.NoError(t, store.Save(ctx, "notes", []byte("{not json")))

	assert.Empty(t, notes.All(ctx))

	// A write over the corrupt snapshot starts the collection fresh.
	rec, err := notes.Insert(ctx, &note{Body: "recovered"})
	require.NoError(t, err)
	all := notes.All(ctx)
	require.Len(t, all, 1)
	assert.Equal(t, rec.ID, all[0].ID)
}
