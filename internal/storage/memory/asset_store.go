package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"gbm-asset-lab/internal/domain"
	"gbm-asset-lab/internal/storage"
)

// AssetStore is an in-memory implementation of storage.AssetStore.
type AssetStore struct {
	mu     sync.RWMutex
	data   map[string]*domain.AssetRecord // keyed by symbol
	writes int
}

// NewAssetStore creates a new in-memory asset store.
func NewAssetStore() *AssetStore {
	return &AssetStore{
		data: make(map[string]*domain.AssetRecord),
	}
}

// Put stores a copy of the record, replacing any record with the same symbol.
func (s *AssetStore) Put(_ context.Context, rec *domain.AssetRecord) (string, error) {
	if rec == nil || rec.Symbol == "" {
		return "", storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[rec.Symbol] = copyRecord(rec)
	s.writes++
	return rec.Symbol, nil
}

// Get retrieves a record by symbol. Returns ErrNotFound if not exists.
func (s *AssetStore) Get(_ context.Context, symbol string) (*domain.AssetRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, exists := s.data[symbol]
	if !exists {
		return nil, storage.ErrNotFound
	}
	return copyRecord(rec), nil
}

// List returns stored symbols in ascending order.
func (s *AssetStore) List(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	symbols := make([]string, 0, len(s.data))
	for sym := range s.data {
		symbols = append(symbols, sym)
	}
	sort.Strings(symbols)
	return symbols, nil
}

// Writes returns the number of successful Put calls, overwrites included.
func (s *AssetStore) Writes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writes
}

func copyRecord(rec *domain.AssetRecord) *domain.AssetRecord {
	out := &domain.AssetRecord{
		Symbol: rec.Symbol,
		Dates:  append([]time.Time(nil), rec.Dates...),
		Paths:  make(domain.PathSet, len(rec.Paths)),
	}
	for i, p := range rec.Paths {
		out.Paths[i] = append(domain.Path{}, p...)
	}
	if rec.Volume != nil {
		out.Volume = append([]int64{}, rec.Volume...)
	}
	return out
}

var _ storage.AssetStore = (*AssetStore)(nil)
