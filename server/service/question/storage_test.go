package question

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrygo/smartstudy/store"
)

func TestFileStorage(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.json")
	s := NewFileStorage(path)

	_, ok, err := s.GetItem(ctx, FavoritesKey)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.SetItem(ctx, FavoritesKey, `["a"]`))
	require.NoError(t, s.SetItem(ctx, HistoryKey, `[]`))

	v, ok, err := NewFileStorage(path).GetItem(ctx, FavoritesKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `["a"]`, v)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestFileStorageCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o600))

	_, _, err := NewFileStorage(path).GetItem(context.Background(), FavoritesKey)
	assert.Error(t, err)
}

func TestRepositoryWithFileStorage(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.json")

	r := newTestRepository(t, NewFileStorage(path))
	r.ToggleFavorite(ctx, "lit-02")
	require.NoError(t, r.Close(ctx))

	reloaded := newTestRepository(t, NewFileStorage(path))
	assert.Equal(t, []string{"lit-02"}, ids(reloaded.FavoriteQuestions()))
}

type memoryKV struct {
	mu    sync.Mutex
	items map[string]string
}

func (m *memoryKV) GetKV(_ context.Context, find *store.FindKV) (*store.KV, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.items[find.Key]
	if !ok {
		return nil, nil
	}
	return &store.KV{Key: find.Key, Value: v}, nil
}

func (m *memoryKV) UpsertKV(_ context.Context, upsert *store.UpsertKV) (*store.KV, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[upsert.Key] = upsert.Value
	return &store.KV{Key: upsert.Key, Value: upsert.Value}, nil
}

func TestStoreStorage(t *testing.T) {
	ctx := context.Background()
	kv := &memoryKV{items: make(map[string]string)}
	s := NewStoreStorage(kv)

	_, ok, err := s.GetItem(ctx, FavoritesKey)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.SetItem(ctx, FavoritesKey, `["x"]`))
	assert.Equal(t, `["x"]`, kv.items["storage/userFavorites"])

	v, ok, err := s.GetItem(ctx, FavoritesKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `["x"]`, v)
}
