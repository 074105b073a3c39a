// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package knowledge

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/swat-chat/pkg/types"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "cache", "manual.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func samplePages() []types.Page {
	return []types.Page{
		{Number: 1, Content: "SWaT Operation Manual"},
		{Number: 2, Content: "P1: raw water intake"},
		{Number: 3, Content: "P2: chemical dosing"},
	}
}

func TestPagesEmptyCache(t *testing.T) {
	store := testStore(t)

	pages, ok, err := store.Pages(context.Background(), Source{Path: "manual.pdf", ModTime: time.Now(), Size: 10})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, pages)
}

func TestReplaceThenPages(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()
	src := Source{Path: "manual.pdf", ModTime: time.Date(2026, 1, 2, 3, 4, 5, 6, time.UTC), Size: 1234}

	require.NoError(t, store.Replace(ctx, src, samplePages()))

	pages, ok, err := store.Pages(ctx, src)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, samplePages(), pages)
}

func TestPagesInvalidatedByChange(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()
	src := Source{Path: "manual.pdf", ModTime: time.Now(), Size: 1234}
	require.NoError(t, store.Replace(ctx, src, samplePages()))

	newer := src
	newer.ModTime = src.ModTime.Add(time.Second)
	_, ok, err := store.Pages(ctx, newer)
	require.NoError(t, err)
	assert.False(t, ok, "modification time change invalidates the cache")

	resized := src
	resized.Size = 99
	_, ok, err = store.Pages(ctx, resized)
	require.NoError(t, err)
	assert.False(t, ok, "size change invalidates the cache")
}

func TestReplaceOverwrites(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()
	src := Source{Path: "manual.pdf", ModTime: time.Now(), Size: 1}
	require.NoError(t, store.Replace(ctx, src, samplePages()))

	src.Size = 2
	replacement := []types.Page{{Number: 1, Content: "revised"}}
	require.NoError(t, store.Replace(ctx, src, replacement))

	pages, ok, err := store.Pages(ctx, src)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, replacement, pages)
}

func TestReplaceEmptyPageSet(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()
	src := Source{Path: "blank.pdf", ModTime: time.Now(), Size: 5}
	require.NoError(t, store.Replace(ctx, src, nil))

	pages, ok, err := store.Pages(ctx, src)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, pages)
}

func TestStorePersistsAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "manual.db")
	src := Source{Path: "manual.pdf", ModTime: time.Now(), Size: 42}

	store, err := NewStore(dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Replace(context.Background(), src, samplePages()))
	require.NoError(t, store.Close())

	reopened, err := NewStore(dbPath)
	require.NoError(t, err)
	defer reopened.Close()

	pages, ok, err := reopened.Pages(context.Background(), src)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Len(t, pages, 3)
}

func TestSourceOf(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manual.pdf")
	require.NoError(t, os.WriteFile(path, []byte("12345"), 0o644))

	src, err := SourceOf(path)
	require.NoError(t, err)
	assert.Equal(t, path, src.Path)
	assert.Equal(t, int64(5), src.Size)
	assert.False(t, src.ModTime.IsZero())

	_, err = SourceOf(filepath.Join(t.TempDir(), "absent.pdf"))
	assert.True(t, os.IsNotExist(err))
}
