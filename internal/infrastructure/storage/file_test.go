package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"umapedia/internal/infrastructure/config"
	"umapedia/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	common.InitTestLogger()
	os.Exit(m.Run())
}

func TestFileStoreRoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	payload := []byte(`[{"id":"a","name":"にんじん"}]`)
	require.NoError(t, store.WriteCollection(ctx, CollectionIngredients, payload))

	got, err := store.ReadCollection(ctx, CollectionIngredients)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestFileStoreMissingCollection(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	// 從未寫入過的集合視為空，不是錯誤
	got, err := store.ReadCollection(context.Background(), CollectionRecipes)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestFileStoreCollectionsAreIsolated(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.WriteCollection(ctx, CollectionIngredients, []byte(`[1]`)))
	require.NoError(t, store.WriteCollection(ctx, CollectionFridge, []byte(`[2]`)))

	a, err := store.ReadCollection(ctx, CollectionIngredients)
	require.NoError(t, err)
	b, err := store.ReadCollection(ctx, CollectionFridge)
	require.NoError(t, err)
	assert.Equal(t, []byte(`[1]`), a)
	assert.Equal(t, []byte(`[2]`), b)
}

func TestFileStoreOverwriteReplacesWholeCollection(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.WriteCollection(ctx, CollectionMealPlans, []byte(`["old"]`)))
	require.NoError(t, store.WriteCollection(ctx, CollectionMealPlans, []byte(`["new"]`)))

	got, err := store.ReadCollection(ctx, CollectionMealPlans)
	require.NoError(t, err)
	assert.Equal(t, []byte(`["new"]`), got)

	// 暫存檔不應殘留
	leftovers, err := filepath.Glob(filepath.Join(dir, "*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestFileStoreCancelledContext(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = store.ReadCollection(ctx, CollectionIngredients)
	assert.Error(t, err)
	assert.Error(t, store.WriteCollection(ctx, CollectionIngredients, []byte(`[]`)))
}

func TestNewStoreUnknownBackend(t *testing.T) {
	_, err := NewStore(&config.StorageConfig{Backend: "unknown"})
	assert.Error(t, err)
}
