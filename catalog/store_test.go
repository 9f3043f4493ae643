package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// storeContract exercises the behavior every Store must share
func storeContract(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	list, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	require.NoError(t, store.Put(ctx,
		Article{Slug: "old", Title: "Old", Date: "2019-03-01", Images: []string{}, Tags: []string{"archive"}},
		Article{Slug: "undated", Title: "Undated", Date: "Unknown"},
		Article{Slug: "new", Title: "New", Date: "2025-11-06", Images: []string{"https://cdn/x.png"}, Tags: []string{"journalism"}},
	))

	list, err = store.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "new", list[0].Slug)
	assert.Equal(t, "old", list[1].Slug)
	assert.Equal(t, "undated", list[2].Slug)

	got, err := store.Get(ctx, "new")
	require.NoError(t, err)
	assert.Equal(t, []string{"https://cdn/x.png"}, got.Images)
	assert.Equal(t, []string{"journalism"}, got.Tags)

	require.NoError(t, store.Put(ctx, Article{Slug: "old", Title: "Old, revised", Date: "2019-03-01"}))
	got, err = store.Get(ctx, "old")
	require.NoError(t, err)
	assert.Equal(t, "Old, revised", got.Title)

	require.NoError(t, store.Delete(ctx, "undated"))
	assert.ErrorIs(t, store.Delete(ctx, "undated"), ErrNotFound)

	_, err = store.Get(ctx, "undated")
	assert.ErrorIs(t, err, ErrNotFound)

	list, err = store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestJSONStore(t *testing.T) {
	storeContract(t, NewJSONStore(filepath.Join(t.TempDir(), "journalism.json")))
}

func TestJSONStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journalism.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := NewJSONStore(path).List(context.Background())
	assert.Error(t, err)
}

func TestSQLiteStore(t *testing.T) {
	store, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	storeContract(t, store)
}
