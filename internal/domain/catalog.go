package domain

// CatalogItem represents one saree available for recommendation
type CatalogItem struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Price       string `json:"price" yaml:"price"` // Formatted, e.g. "₹12,999"
	Image       string `json:"image" yaml:"image"`
	Color       string `json:"color" yaml:"color"`
	Material    string `json:"material" yaml:"material"`
	Occasion    string `json:"occasion" yaml:"occasion"`
	Link        string `json:"link" yaml:"link"`
}

// Facet is one of the query dimensions recognized by the matcher
type Facet string

const (
	FacetColor    Facet = "color"
	FacetMaterial Facet = "material"
	FacetOccasion Facet = "occasion"
)

// Facets lists every facet in the order used for extraction and response text
var Facets = []Facet{FacetColor, FacetMaterial, FacetOccasion}

// FacetSelection holds the canonical value extracted for each facet.
// An empty string means the facet was not matched.
type FacetSelection struct {
	Color    string `json:"color,omitempty"`
	Material string `json:"material,omitempty"`
	Occasion string `json:"occasion,omitempty"`
}

// Value returns the canonical value for a facet and whether it was matched
func (s FacetSelection) Value(f Facet) (string, bool) {
	var v string
	switch f {
	case FacetColor:
		v = s.Color
	case FacetMaterial:
		v = s.Material
	case FacetOccasion:
		v = s.Occasion
	}
	return v, v != ""
}

// Matched returns the facets that carry a value, in Facets order
func (s FacetSelection) Matched() []Facet {
	var matched []Facet
	for _, f := range Facets {
		if _, ok := s.Value(f); ok {
			matched = append(matched, f)
		}
	}
	return matched
}

// IsEmpty reports whether no facet was matched
func (s FacetSelection) IsEmpty() bool {
	return s.Color == "" && s.Material == "" && s.Occasion == ""
}

// MatchOutcome identifies which response branch produced a MatchResult
type MatchOutcome string

const (
	OutcomeExact    MatchOutcome = "exact"    // At least one facet matched and items survived
	OutcomeFallback MatchOutcome = "fallback" // Filter emptied the set; first items substituted
	OutcomePopular  MatchOutcome = "popular"  // No facet matched; full catalog returned
	OutcomeUpstream MatchOutcome = "upstream" // Produced by the external assistant
)

// MatchResult is the output of one query evaluation
type MatchResult struct {
	ResponseText    string         `json:"responseText"`
	Recommendations []CatalogItem  `json:"recommendations"`
	Facets          FacetSelection `json:"facets"`
	Outcome         MatchOutcome   `json:"outcome"`
	Source          string         `json:"source"` // "matcher", "assistant" or "cache"
}

// FacetOptions lists the distinct facet values present in a catalog
type FacetOptions struct {
	Colors    []string `json:"colors"`
	Materials []string `json:"materials"`
	Occasions []string `json:"occasions"`
}
