package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yanqian/skinsight/internal/domain/products"
)

const selectProducts = `
	SELECT id, brand, name, category, key_ingredients, concerns, regional_availability
	FROM catalog_products
	ORDER BY position, id
`

// PostgresSource reads the catalog from the catalog_products table.
type PostgresSource struct {
	pool *pgxpool.Pool
}

// NewPostgresSource constructs the source.
func NewPostgresSource(pool *pgxpool.Pool) *PostgresSource {
	return &PostgresSource{pool: pool}
}

// Products loads every row ordered by position.
func (s *PostgresSource) Products(ctx context.Context) ([]products.CatalogProduct, error) {
	rows, err := s.pool.Query(ctx, selectProducts)
	if err != nil {
		return nil, fmt.Errorf("query catalog: %w", err)
	}
	defer rows.Close()

	var out []products.CatalogProduct
	for rows.Next() {
		item, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func scanProduct(row pgx.Row) (products.CatalogProduct, error) {
	var (
		item         products.CatalogProduct
		category     string
		availability []byte
	)
	if err := row.Scan(&item.ID, &item.Brand, &item.Name, &category, &item.KeyIngredients, &item.Concerns, &availability); err != nil {
		return products.CatalogProduct{}, fmt.Errorf("scan catalog row: %w", err)
	}
	item.Category = products.Category(category)
	if len(availability) > 0 {
		if err := json.Unmarshal(availability, &item.RegionalAvailability); err != nil {
			return products.CatalogProduct{}, fmt.Errorf("decode availability for %s: %w", item.ID, err)
		}
	}
	return item, nil
}

var _ Source = (*PostgresSource)(nil)
