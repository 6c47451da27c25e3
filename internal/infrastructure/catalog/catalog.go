// Package catalog holds the immutable saree catalog and its sources.
package catalog

import (
	"fmt"
	"strings"

	"github.com/sareefinder/backend/internal/domain"
)

// Catalog is an ordered, read-only collection of catalog items
type Catalog struct {
	items []domain.CatalogItem
	index map[string]int
}

// NewCatalog validates items and stores a private copy of them.
// IDs must be unique; name, color, material and occasion must be set.
func NewCatalog(items []domain.CatalogItem) (*Catalog, error) {
	stored := make([]domain.CatalogItem, len(items))
	index := make(map[string]int, len(items))

	for i, item := range items {
		item.ID = strings.TrimSpace(item.ID)
		if err := validateItem(item); err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		if _, dup := index[item.ID]; dup {
			return nil, fmt.Errorf("%w: %q", domain.ErrDuplicateItem, item.ID)
		}
		index[item.ID] = i
		stored[i] = item
	}

	return &Catalog{items: stored, index: index}, nil
}

func validateItem(item domain.CatalogItem) error {
	switch {
	case item.ID == "":
		return fmt.Errorf("%w: missing id", domain.ErrInvalidItem)
	case strings.TrimSpace(item.Name) == "":
		return fmt.Errorf("%w: %q has no name", domain.ErrInvalidItem, item.ID)
	case strings.TrimSpace(item.Color) == "":
		return fmt.Errorf("%w: %q has no color", domain.ErrInvalidItem, item.ID)
	case strings.TrimSpace(item.Material) == "":
		return fmt.Errorf("%w: %q has no material", domain.ErrInvalidItem, item.ID)
	case strings.TrimSpace(item.Occasion) == "":
		return fmt.Errorf("%w: %q has no occasion", domain.ErrInvalidItem, item.ID)
	}
	return nil
}

// Items returns a copy of the catalog in catalog order
func (c *Catalog) Items() []domain.CatalogItem {
	items := make([]domain.CatalogItem, len(c.items))
	copy(items, c.items)
	return items
}

// Get returns the item with the given ID
func (c *Catalog) Get(id string) (domain.CatalogItem, error) {
	i, ok := c.index[id]
	if !ok {
		return domain.CatalogItem{}, fmt.Errorf("%w: %q", domain.ErrItemNotFound, id)
	}
	return c.items[i], nil
}

// Len returns the number of items
func (c *Catalog) Len() int {
	return len(c.items)
}

// FacetValues lists distinct facet values in order of first appearance.
// Values are compared case-insensitively; the first spelling is kept.
func (c *Catalog) FacetValues() domain.FacetOptions {
	colors := newOrderedSet()
	materials := newOrderedSet()
	occasions := newOrderedSet()

	for _, item := range c.items {
		colors.add(item.Color)
		materials.add(item.Material)
		occasions.add(item.Occasion)
	}

	return domain.FacetOptions{
		Colors:    colors.values,
		Materials: materials.values,
		Occasions: occasions.values,
	}
}

type orderedSet struct {
	seen   map[string]bool
	values []string
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: make(map[string]bool), values: []string{}}
}

func (s *orderedSet) add(v string) {
	key := strings.ToLower(v)
	if s.seen[key] {
		return
	}
	s.seen[key] = true
	s.values = append(s.values, v)
}
