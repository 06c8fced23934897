// Package catalog loads the product catalog snapshot from a YAML file or
// Postgres.
package catalog

import (
	"context"

	"github.com/yanqian/skinsight/internal/domain/products"
	apperrors "github.com/yanqian/skinsight/pkg/errors"
)

// Source yields the raw catalog rows in their canonical order.
type Source interface {
	Products(ctx context.Context) ([]products.CatalogProduct, error)
}

// Load reads src once and freezes it into a validated snapshot.
func Load(ctx context.Context, src Source) (*products.Catalog, error) {
	items, err := src.Products(ctx)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeCatalog, "failed to read product catalog", err)
	}
	snapshot, err := products.NewCatalog(items)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeCatalog, "product catalog is invalid", err)
	}
	return snapshot, nil
}

// MemorySource serves a fixed product list.
type MemorySource struct {
	items []products.CatalogProduct
}

// NewMemorySource wraps items.
func NewMemorySource(items []products.CatalogProduct) *MemorySource {
	return &MemorySource{items: items}
}

// Products returns a copy of the stored list.
func (s *MemorySource) Products(context.Context) ([]products.CatalogProduct, error) {
	return append([]products.CatalogProduct(nil), s.items...), nil
}

var _ Source = (*MemorySource)(nil)
