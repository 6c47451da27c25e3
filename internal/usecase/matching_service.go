package usecase

import (
	"strings"

	"github.com/sareefinder/backend/internal/domain"
)

// MatchConfig holds configuration for the matching service
type MatchConfig struct {
	// Synonym tables; nil selects the built-in table for that facet
	Colors    *FacetTable
	Materials *FacetTable
	Occasions *FacetTable

	Composer ComposerConfig
}

// MatchingService turns free-text queries into catalog recommendations.
// It holds only immutable state and is safe for concurrent use.
type MatchingService struct {
	catalog  []domain.CatalogItem
	tables   []*FacetTable
	composer *ResponseComposer
}

// NewMatchingService creates a matcher over a snapshot of the given catalog
func NewMatchingService(catalog []domain.CatalogItem, config MatchConfig) *MatchingService {
	colors := config.Colors
	if colors == nil {
		colors = DefaultColorTable()
	}
	materials := config.Materials
	if materials == nil {
		materials = DefaultMaterialTable()
	}
	occasions := config.Occasions
	if occasions == nil {
		occasions = DefaultOccasionTable()
	}

	snapshot := make([]domain.CatalogItem, len(catalog))
	copy(snapshot, catalog)

	return &MatchingService{
		catalog:  snapshot,
		tables:   []*FacetTable{colors, materials, occasions},
		composer: NewResponseComposer(config.Composer),
	}
}

// Evaluate extracts facets from the query, filters the catalog and composes the reply.
// Any input, including an empty string, produces a result.
func (s *MatchingService) Evaluate(query string) domain.MatchResult {
	selection := s.extractLowered(strings.ToLower(query))
	filtered := FilterCatalog(s.catalog, selection)
	return s.composer.Compose(s.catalog, filtered, selection)
}

// Extract returns the facet values recognized in the query
func (s *MatchingService) Extract(query string) domain.FacetSelection {
	return s.extractLowered(strings.ToLower(query))
}

// Tables returns the synonym tables in facet order
func (s *MatchingService) Tables() []*FacetTable {
	return s.tables
}

func (s *MatchingService) extractLowered(lowered string) domain.FacetSelection {
	var selection domain.FacetSelection
	for _, table := range s.tables {
		value, ok := extractFacet(lowered, table)
		if !ok {
			continue
		}
		switch table.Facet() {
		case domain.FacetColor:
			selection.Color = value
		case domain.FacetMaterial:
			selection.Material = value
		case domain.FacetOccasion:
			selection.Occasion = value
		}
	}
	return selection
}

// ExtractFacet returns the first canonical value of the table that has a synonym
// contained in the query. Matching is case-insensitive.
func ExtractFacet(query string, table *FacetTable) (string, bool) {
	return extractFacet(strings.ToLower(query), table)
}

func extractFacet(lowered string, table *FacetTable) (string, bool) {
	if table == nil || lowered == "" {
		return "", false
	}
	for _, entry := range table.entries {
		for _, synonym := range entry.Synonyms {
			if strings.Contains(lowered, synonym) {
				return entry.Canonical, true
			}
		}
	}
	return "", false
}

// FilterCatalog keeps the items that satisfy every matched facet, in catalog order.
// Color and occasion compare for equality; material matches when the item's material
// contains the facet value (so "Chanderi Silk" satisfies "silk").
func FilterCatalog(items []domain.CatalogItem, selection domain.FacetSelection) []domain.CatalogItem {
	material := strings.ToLower(selection.Material)

	filtered := make([]domain.CatalogItem, 0, len(items))
	for _, item := range items {
		if selection.Color != "" && !strings.EqualFold(item.Color, selection.Color) {
			continue
		}
		if material != "" && !strings.Contains(strings.ToLower(item.Material), material) {
			continue
		}
		if selection.Occasion != "" && !strings.EqualFold(item.Occasion, selection.Occasion) {
			continue
		}
		filtered = append(filtered, item)
	}

	return filtered
}
