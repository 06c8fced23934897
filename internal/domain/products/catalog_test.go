package products

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewCatalogValidation(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		mutate  func([]CatalogProduct) []CatalogProduct
		wantErr string
	}{
		{name: "missing id", mutate: func(p []CatalogProduct) []CatalogProduct { p[0].ID = " "; return p }, wantErr: "id is required"},
		{name: "unknown category", mutate: func(p []CatalogProduct) []CatalogProduct { p[0].Category = "lipstick"; return p }, wantErr: "unknown category"},
		{name: "missing brand", mutate: func(p []CatalogProduct) []CatalogProduct { p[0].Brand = ""; return p }, wantErr: "brand and name"},
		{
			name: "missing required category",
			mutate: func(p []CatalogProduct) []CatalogProduct {
				out := p[:0]
				for _, item := range p {
					if item.Category != CategorySunscreens {
						out = append(out, item)
					}
				}
				return out
			},
			wantErr: "no sunscreens",
		},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewCatalog(tc.mutate(fixtureProducts()))
			require.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestNewCatalogKeepsFirstDuplicate(t *testing.T) {
	t.Parallel()

	items := fixtureProducts()
	dup := items[0]
	dup.Name = "Impostor"
	items = append(items, dup)

	catalog, err := NewCatalog(items)
	require.NoError(t, err)
	require.Equal(t, len(fixtureProducts()), catalog.Len())
	require.Equal(t, "Hydrating Facial Cleanser", catalog.Products()[0].Name)
}

func TestCatalogIsReadOnly(t *testing.T) {
	t.Parallel()

	catalog := fixtureCatalog(t)
	listed := catalog.Products()
	listed[0].Name = "mutated"
	listed[0].Concerns[0] = "mutated"

	again := catalog.Products()
	require.Equal(t, "Hydrating Facial Cleanser", again[0].Name)
	require.Equal(t, "dryness", again[0].Concerns[0])
}

func TestCatalogFilter(t *testing.T) {
	t.Parallel()

	catalog := fixtureCatalog(t)

	sunscreens := catalog.Filter(CatalogQuery{Category: CategorySunscreens})
	require.Len(t, sunscreens, 2)

	sg := catalog.Filter(CatalogQuery{Category: CategorySunscreens, Region: "sg"})
	require.Len(t, sg, 1)
	require.Equal(t, "biore-aqua", sg[0].ID)

	require.Len(t, catalog.Filter(CatalogQuery{}), catalog.Len())
	require.NotEmpty(t, catalog.Fingerprint())
}
