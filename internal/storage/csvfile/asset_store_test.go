package csvfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gbm-asset-lab/internal/domain"
	"gbm-asset-lab/internal/storage"
)

func testRecord(symbol string) *domain.AssetRecord {
	return &domain.AssetRecord{
		Symbol: symbol,
		Dates: []time.Time{
			time.Date(2021, 1, 4, 0, 0, 0, 0, time.UTC),
			time.Date(2021, 1, 5, 0, 0, 0, 0, time.UTC),
		},
		Paths: domain.PathSet{{100.123, 101.987}, {99.5, 98.25}},
	}
}

func TestAssetStore_PutWritesFile(t *testing.T) {
	dir := t.TempDir()
	store := NewAssetStore(dir)

	path, err := store.Put(context.Background(), testRecord("ABCDE"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "ABCDE.csv"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"date,close_0,close_1\n2021-01-04,100.12,99.50\n2021-01-05,101.99,98.25\n",
		string(content))
}

func TestAssetStore_MissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "does-not-exist")
	store := NewAssetStore(dir)

	_, err := store.Put(context.Background(), testRecord("ABCDE"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, statErr := os.Stat(dir)
	assert.True(t, os.IsNotExist(statErr), "output directory must not be created")
}

func TestAssetStore_OverwriteSameSymbol(t *testing.T) {
	store := NewAssetStore(t.TempDir())
	ctx := context.Background()

	first := testRecord("SAME")
	second := testRecord("SAME")
	second.Dates = second.Dates[:1]
	second.Paths = domain.PathSet{{7}}

	_, err := store.Put(ctx, first)
	require.NoError(t, err)
	_, err = store.Put(ctx, second)
	require.NoError(t, err)

	got, err := store.Get(ctx, "SAME")
	require.NoError(t, err)
	require.Len(t, got.Dates, 1)
	require.Len(t, got.Paths, 1)
	assert.Equal(t, 7.0, got.Paths[0][0])
}

func TestAssetStore_GetRoundTrip(t *testing.T) {
	store := NewAssetStore(t.TempDir())
	ctx := context.Background()
	rec := testRecord("RTRIP")

	_, err := store.Put(ctx, rec)
	require.NoError(t, err)

	got, err := store.Get(ctx, "RTRIP")
	require.NoError(t, err)
	assert.Equal(t, "RTRIP", got.Symbol)
	require.Len(t, got.Paths, 2)
	for i := range rec.Paths {
		for k := range rec.Paths[i] {
			assert.InDelta(t, rec.Paths[i][k], got.Paths[i][k], 0.01)
		}
	}
}

func TestAssetStore_GetNotFound(t *testing.T) {
	store := NewAssetStore(t.TempDir())

	_, err := store.Get(context.Background(), "NOPE")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestAssetStore_List(t *testing.T) {
	dir := t.TempDir()
	store := NewAssetStore(dir)
	ctx := context.Background()

	for _, sym := range []string{"ZZZZZ", "AAAAA"} {
		_, err := store.Put(ctx, testRecord(sym))
		require.NoError(t, err)
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "AAAAA.png"), []byte("x"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.csv"), 0o755))

	symbols, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"AAAAA", "ZZZZZ"}, symbols)
}

func TestAssetStore_InvalidInput(t *testing.T) {
	store := NewAssetStore(t.TempDir())

	_, err := store.Put(context.Background(), &domain.AssetRecord{})
	assert.ErrorIs(t, err, storage.ErrInvalidInput)
}
