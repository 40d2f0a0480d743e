package storage

import (
	"context"

	"gbm-asset-lab/internal/domain"
)

// AssetStore persists generated asset tables.
type AssetStore interface {
	// Put writes the record under its symbol. An existing record with the
	// same symbol is overwritten. Returns the location written.
	Put(ctx context.Context, rec *domain.AssetRecord) (string, error)

	// Get reads a record back by symbol. Returns ErrNotFound if absent.
	Get(ctx context.Context, symbol string) (*domain.AssetRecord, error)

	// List returns stored symbols in ascending order.
	List(ctx context.Context) ([]string, error)
}
