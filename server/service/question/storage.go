package question

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/hrygo/smartstudy/store"
)

// Keys of the persisted user state.
const (
	FavoritesKey = "userFavorites"
	HistoryKey   = "studyHistory"
	StatsKey     = "questionStats"
)

// LocalStorage is a string key/value store for user state. Values are whole
// JSON documents rewritten on every change.
type LocalStorage interface {
	GetItem(ctx context.Context, key string) (string, bool, error)
	SetItem(ctx context.Context, key, value string) error
}

// MemoryStorage keeps items in memory.
type MemoryStorage struct {
	mu    sync.RWMutex
	items map[string]string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{items: make(map[string]string)}
}

func (s *MemoryStorage) GetItem(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.items[key]
	return v, ok, nil
}

func (s *MemoryStorage) SetItem(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = value
	return nil
}

// FileStorage keeps all items in a single JSON object on disk.
type FileStorage struct {
	path string
	mu   sync.Mutex
}

func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

func (s *FileStorage) GetItem(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.read()
	if err != nil {
		return "", false, err
	}
	v, ok := items[key]
	return v, ok, nil
}

func (s *FileStorage) SetItem(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.read()
	if err != nil {
		return err
	}
	items[key] = value

	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode storage file: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".storage-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp storage file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write storage file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close storage file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace storage file: %w", err)
	}
	return nil
}

func (s *FileStorage) read() (map[string]string, error) {
	items := make(map[string]string)
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return items, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read storage file: %w", err)
	}
	if len(data) == 0 {
		return items, nil
	}
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to decode storage file %s: %w", s.path, err)
	}
	return items, nil
}

// KVStore is the part of the store used by StoreStorage.
type KVStore interface {
	GetKV(ctx context.Context, find *store.FindKV) (*store.KV, error)
	UpsertKV(ctx context.Context, upsert *store.UpsertKV) (*store.KV, error)
}

// StoreStorage keeps items in the database key/value table.
type StoreStorage struct {
	store  KVStore
	prefix string
}

func NewStoreStorage(s KVStore) *StoreStorage {
	return &StoreStorage{store: s, prefix: "storage/"}
}

func (s *StoreStorage) GetItem(ctx context.Context, key string) (string, bool, error) {
	kv, err := s.store.GetKV(ctx, &store.FindKV{Key: s.prefix + key})
	if err != nil {
		return "", false, fmt.Errorf("failed to get %s: %w", key, err)
	}
	if kv == nil {
		return "", false, nil
	}
	return kv.Value, true, nil
}

func (s *StoreStorage) SetItem(ctx context.Context, key, value string) error {
	if _, err := s.store.UpsertKV(ctx, &store.UpsertKV{Key: s.prefix + key, Value: value}); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}
