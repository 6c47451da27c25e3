package catalog

import (
	"bytes"
	"fmt"
	"os"

	"github.com/sareefinder/backend/internal/domain"
	"gopkg.in/yaml.v3"
)

// catalogFile is the on-disk layout of a catalog file
type catalogFile struct {
	Items []domain.CatalogItem `yaml:"items"`
}

// Load returns the catalog at path, or the built-in seed catalog when path is empty
func Load(path string) (*Catalog, error) {
	if path == "" {
		return NewCatalog(Seed())
	}
	return LoadFile(path)
}

// LoadFile reads a YAML catalog file of the form:
//
//	items:
//	  - id: "1"
//	    name: Banarasi Silk Saree
//	    color: Red
//	    ...
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML catalog data; unknown fields are rejected
func Parse(data []byte) (*Catalog, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	var file catalogFile
	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	return NewCatalog(file.Items)
}
