package products

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// Catalog is an immutable snapshot of the product catalog. Iteration order is
// the order products were supplied in, and every tie-break relies on it.
type Catalog struct {
	products    []CatalogProduct
	fingerprint string
}

// NewCatalog validates and snapshots products. Duplicate IDs keep the first
// occurrence. Every required category must be present.
func NewCatalog(items []CatalogProduct) (*Catalog, error) {
	seen := make(map[string]struct{}, len(items))
	products := make([]CatalogProduct, 0, len(items))
	categories := make(map[Category]struct{})
	hash := sha256.New()
	for i, item := range items {
		id := strings.TrimSpace(item.ID)
		if id == "" {
			return nil, fmt.Errorf("catalog product %d: id is required", i)
		}
		if !item.Category.Valid() {
			return nil, fmt.Errorf("catalog product %s: unknown category %q", id, item.Category)
		}
		if strings.TrimSpace(item.Name) == "" || strings.TrimSpace(item.Brand) == "" {
			return nil, fmt.Errorf("catalog product %s: brand and name are required", id)
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		item.ID = id
		products = append(products, cloneProduct(item))
		categories[item.Category] = struct{}{}
		hash.Write([]byte(id + "|"))
	}
	for _, required := range RequiredCategories {
		if _, ok := categories[required]; !ok {
			return nil, fmt.Errorf("catalog has no %s", required)
		}
	}
	return &Catalog{
		products:    products,
		fingerprint: hex.EncodeToString(hash.Sum(nil))[:16],
	}, nil
}

// Len returns the number of products.
func (c *Catalog) Len() int {
	return len(c.products)
}

// Fingerprint identifies the catalog contents for cache keys.
func (c *Catalog) Fingerprint() string {
	return c.fingerprint
}

// Products returns a copy of every product in catalog order.
func (c *Catalog) Products() []CatalogProduct {
	out := make([]CatalogProduct, 0, len(c.products))
	for _, p := range c.products {
		out = append(out, cloneProduct(p))
	}
	return out
}

// Filter returns products matching q in catalog order. Empty fields match all.
func (c *Catalog) Filter(q CatalogQuery) []CatalogProduct {
	out := []CatalogProduct{}
	for _, p := range c.products {
		if q.Category != "" && p.Category != q.Category {
			continue
		}
		if q.Region != "" && !p.AvailableIn(q.Region) {
			continue
		}
		out = append(out, cloneProduct(p))
	}
	return out
}

// Names lists "Brand Name" for every product, used as prompt context.
func (c *Catalog) Names() []string {
	out := make([]string, 0, len(c.products))
	for _, p := range c.products {
		out = append(out, p.Brand+" "+p.Name)
	}
	return out
}

func (c *Catalog) each(fn func(CatalogProduct) bool) {
	for _, p := range c.products {
		if !fn(p) {
			return
		}
	}
}

func cloneProduct(p CatalogProduct) CatalogProduct {
	p.KeyIngredients = append([]string(nil), p.KeyIngredients...)
	p.Concerns = append([]string(nil), p.Concerns...)
	p.RegionalAvailability = append([]RegionalAvailability(nil), p.RegionalAvailability...)
	return p
}
