// Package csvfile stores asset tables as <dir>/<symbol>.csv files.
package csvfile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gbm-asset-lab/internal/domain"
	"gbm-asset-lab/internal/reporting"
	"gbm-asset-lab/internal/storage"
)

// Extension is the file suffix of stored tables.
const Extension = ".csv"

// AssetStore implements storage.AssetStore on a flat directory.
// The directory must already exist; it is never created.
type AssetStore struct {
	dir string
}

// NewAssetStore creates a store rooted at dir.
func NewAssetStore(dir string) *AssetStore {
	return &AssetStore{dir: dir}
}

// Compile-time interface check.
var _ storage.AssetStore = (*AssetStore)(nil)

// Dir returns the output directory.
func (s *AssetStore) Dir() string {
	return s.dir
}

// PathFor returns the file path used for symbol.
func (s *AssetStore) PathFor(symbol string) string {
	return filepath.Join(s.dir, symbol+Extension)
}

// Put writes the record to <dir>/<symbol>.csv, truncating any existing file.
func (s *AssetStore) Put(_ context.Context, rec *domain.AssetRecord) (string, error) {
	if rec == nil || rec.Symbol == "" {
		return "", storage.ErrInvalidInput
	}

	path := s.PathFor(rec.Symbol)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}

	if err := reporting.WriteCSV(f, rec); err != nil {
		f.Close()
		return "", fmt.Errorf("write %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", path, err)
	}

	return path, nil
}

// Get reads <dir>/<symbol>.csv. Returns ErrNotFound if the file is absent.
func (s *AssetStore) Get(_ context.Context, symbol string) (*domain.AssetRecord, error) {
	path := s.PathFor(symbol)
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	rec, err := reporting.ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	rec.Symbol = symbol
	return rec, nil
}

// List returns the symbols of all tables in the directory, sorted.
func (s *AssetStore) List(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", s.dir, err)
	}

	var symbols []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, Extension) {
			continue
		}
		symbols = append(symbols, strings.TrimSuffix(name, Extension))
	}
	sort.Strings(symbols)
	return symbols, nil
}
