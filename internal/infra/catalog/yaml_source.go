package catalog

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/yanqian/skinsight/internal/domain/products"
)

type catalogFile struct {
	Products []products.CatalogProduct `yaml:"products"`
}

// YAMLSource reads the catalog from a YAML document with a top-level
// "products" list.
type YAMLSource struct {
	path string
}

// NewYAMLSource constructs a file-backed source.
func NewYAMLSource(path string) *YAMLSource {
	return &YAMLSource{path: path}
}

// Products parses the file on every call.
func (s *YAMLSource) Products(context.Context) ([]products.CatalogProduct, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	return decodeYAML(data)
}

func decodeYAML(data []byte) ([]products.CatalogProduct, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse catalog file: %w", err)
	}
	return file.Products, nil
}

var _ Source = (*YAMLSource)(nil)
