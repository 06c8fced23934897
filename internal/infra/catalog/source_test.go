package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/skinsight/internal/domain/products"
	apperrors "github.com/yanqian/skinsight/pkg/errors"
)

func TestLoadBundledCatalog(t *testing.T) {
	t.Parallel()

	snapshot, err := Load(context.Background(), NewYAMLSource(filepath.Join("..", "..", "..", "configs", "catalog.yaml")))
	require.NoError(t, err)
	require.Greater(t, snapshot.Len(), 10)
	for _, category := range products.RequiredCategories {
		require.NotEmpty(t, snapshot.Filter(products.CatalogQuery{Category: category}), category)
	}

	first := snapshot.Products()[0]
	require.Equal(t, "cerave-hydrating-cleanser", first.ID)
	require.True(t, first.AvailableIn("sg"))
}

func TestYAMLSourceErrors(t *testing.T) {
	t.Parallel()

	_, err := Load(context.Background(), NewYAMLSource(filepath.Join(t.TempDir(), "missing.yaml")))
	require.True(t, apperrors.IsCode(err, apperrors.CodeCatalog))

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("products: [\n"), 0o600))
	_, err = Load(context.Background(), NewYAMLSource(path))
	require.True(t, apperrors.IsCode(err, apperrors.CodeCatalog))
}

func TestLoadRejectsIncompleteCatalog(t *testing.T) {
	t.Parallel()

	src := NewMemorySource([]products.CatalogProduct{
		{ID: "only-cleanser", Brand: "CeraVe", Name: "Hydrating Facial Cleanser", Category: products.CategoryCleansers},
	})
	_, err := Load(context.Background(), src)
	require.True(t, apperrors.IsCode(err, apperrors.CodeCatalog))
	require.ErrorContains(t, err, "no serums")
}

func TestDecodeYAMLFields(t *testing.T) {
	t.Parallel()

	items, err := decodeYAML([]byte(`
products:
  - id: p1
    brand: Biore
    name: UV Aqua Rich
    category: sunscreens
    keyIngredients: [hyaluronic acid]
    concerns: [oiliness]
    regionalAvailability:
      - {countryCode: SG, available: true}
      - {countryCode: US, available: false}
`))
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, products.CategorySunscreens, items[0].Category)
	require.Equal(t, []string{"oiliness"}, items[0].Concerns)
	require.True(t, items[0].AvailableIn("SG"))
	require.False(t, items[0].AvailableIn("US"))
}

func TestPostgresSource(t *testing.T) {
	dsn := os.Getenv("CATALOG_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("CATALOG_TEST_POSTGRES_DSN not set")
	}
	pool, err := NewPool(context.Background(), dsn, PoolOptions{MaxConns: 2})
	require.NoError(t, err)
	defer pool.Close()

	items, err := NewPostgresSource(pool).Products(context.Background())
	require.NoError(t, err)
	for _, item := range items {
		require.NotEmpty(t, item.ID)
	}
}
