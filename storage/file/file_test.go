package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := New(filepath.Join(t.TempDir(), "data"))
	require.NoError(t, err)

	// Missing collection reads as empty, not as an error.
	data, err := store.Load(ctx, "users")
	require.NoError(t, err)
	assert.Nil(t, data)

	payload := []byte(`[{"id":"1"}]`)
	require.NoError(t, store.Save(ctx, "users", payload))

	data, err = store.Load(ctx, "users")
	require.NoError(t, err)
	assert.Equal(t, payload, data)
}

func TestFileStoreSaveReplacesAtomically(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "data")
	store, err := New(dir)
	require.NoError(t, err)

	require.NoError(t, store.Save(ctx, "users", []byte("first")))
	require.NoError(t, store.Save(ctx, "users", []byte("second")))

	data, err := store.Load(ctx, "users")
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), data)

	// No temp files left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "users.json", entries[0].Name())
}

func TestFileStoreCollectionsAreIndependent(t *testing.T) {
	ctx := context.Background()
	store, err := New(filepath.Join(t.TempDir(), "data"))
	require.NoError(t, err)

	require.NoError(t, store.Save(ctx, "users", []byte("u")))
	require.NoError(t, store.Save(ctx, "one-time-passcodes", []byte("o")))

	data, err := store.Load(ctx, "users")
	require.NoError(t, err)
	assert.Equal(t, []byte("u"), data)

	data, err = store.Load(ctx, "one-time-passcodes")
	require.NoError(t, err)
	assert.Equal(t, []byte("o"), data)
}
