package usecase

import (
	"fmt"
	"strings"

	"github.com/sareefinder/backend/internal/domain"
)

// SynonymEntry maps one canonical facet value to the phrases that select it
type SynonymEntry struct {
	Canonical string
	Synonyms  []string
}

// FacetTable is an ordered synonym table for a single facet.
// Entries are matched in declaration order; the first hit wins.
type FacetTable struct {
	facet   domain.Facet
	entries []SynonymEntry
}

// SynonymOverlap records a synonym declared under two canonical values of one facet
type SynonymOverlap struct {
	Facet    domain.Facet
	Synonym  string
	Winner   string // Declared first, selected by extraction
	Shadowed string // Never selected through this synonym
}

// NewFacetTable validates and normalizes a synonym table.
// Canonical values and synonyms are lower-cased; the canonical value is added to its own
// synonym set when missing.
func NewFacetTable(facet domain.Facet, entries []SynonymEntry) (*FacetTable, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: %s table has no entries", domain.ErrInvalidSynonymTable, facet)
	}

	seen := make(map[string]bool, len(entries))
	normalized := make([]SynonymEntry, 0, len(entries))

	for _, entry := range entries {
		canonical := strings.ToLower(strings.TrimSpace(entry.Canonical))
		if canonical == "" {
			return nil, fmt.Errorf("%w: %s table has an empty canonical value", domain.ErrInvalidSynonymTable, facet)
		}
		if seen[canonical] {
			return nil, fmt.Errorf("%w: %s value %q declared twice", domain.ErrInvalidSynonymTable, facet, canonical)
		}
		seen[canonical] = true

		synonyms := make([]string, 0, len(entry.Synonyms)+1)
		hasSelf := false
		for _, synonym := range entry.Synonyms {
			synonym = strings.ToLower(strings.TrimSpace(synonym))
			if synonym == "" {
				return nil, fmt.Errorf("%w: %s value %q has an empty synonym", domain.ErrInvalidSynonymTable, facet, canonical)
			}
			if synonym == canonical {
				hasSelf = true
			}
			synonyms = append(synonyms, synonym)
		}
		if !hasSelf {
			synonyms = append([]string{canonical}, synonyms...)
		}

		normalized = append(normalized, SynonymEntry{Canonical: canonical, Synonyms: synonyms})
	}

	return &FacetTable{facet: facet, entries: normalized}, nil
}

// MustFacetTable is like NewFacetTable but panics on an invalid table
func MustFacetTable(facet domain.Facet, entries []SynonymEntry) *FacetTable {
	table, err := NewFacetTable(facet, entries)
	if err != nil {
		panic(err)
	}
	return table
}

// Facet returns the facet this table resolves
func (t *FacetTable) Facet() domain.Facet {
	return t.facet
}

// Canonicals returns the canonical values in declaration order
func (t *FacetTable) Canonicals() []string {
	values := make([]string, len(t.entries))
	for i, entry := range t.entries {
		values[i] = entry.Canonical
	}
	return values
}

// Overlaps lists synonyms shared by more than one canonical value
func (t *FacetTable) Overlaps() []SynonymOverlap {
	owner := make(map[string]string)
	var overlaps []SynonymOverlap

	for _, entry := range t.entries {
		for _, synonym := range entry.Synonyms {
			first, ok := owner[synonym]
			if !ok {
				owner[synonym] = entry.Canonical
				continue
			}
			if first != entry.Canonical {
				overlaps = append(overlaps, SynonymOverlap{
					Facet:    t.facet,
					Synonym:  synonym,
					Winner:   first,
					Shadowed: entry.Canonical,
				})
			}
		}
	}

	return overlaps
}

// DefaultColorTable returns the built-in color synonyms
func DefaultColorTable() *FacetTable {
	return MustFacetTable(domain.FacetColor, []SynonymEntry{
		{"red", []string{"red", "crimson", "maroon", "ruby"}},
		{"blue", []string{"blue", "navy", "azure", "indigo"}},
		{"green", []string{"green", "emerald", "olive", "jade"}},
		{"yellow", []string{"yellow", "gold", "amber", "mustard"}},
		{"pink", []string{"pink", "rose", "fuchsia", "magenta"}},
		{"purple", []string{"purple", "violet", "lavender", "mauve"}},
		{"orange", []string{"orange", "peach", "coral", "tangerine"}},
		{"black", []string{"black", "ebony", "jet", "onyx"}},
		{"white", []string{"white", "ivory", "cream", "pearl"}},
		{"beige", []string{"beige", "tan", "khaki", "sand"}},
		{"teal", []string{"teal", "turquoise", "aqua", "cyan"}},
		{"lavender", []string{"lavender", "lilac", "periwinkle", "wisteria"}},
	})
}

// DefaultMaterialTable returns the built-in material synonyms
func DefaultMaterialTable() *FacetTable {
	return MustFacetTable(domain.FacetMaterial, []SynonymEntry{
		{"silk", []string{"silk", "pure silk", "raw silk", "mulberry silk"}},
		{"cotton", []string{"cotton", "handloom cotton", "organic cotton", "khadi cotton"}},
		{"georgette", []string{"georgette", "pure georgette", "crepe georgette"}},
		{"chiffon", []string{"chiffon", "pure chiffon", "silk chiffon"}},
		{"linen", []string{"linen", "pure linen", "linen blend", "linen cotton"}},
		{"organza", []string{"organza", "silk organza", "tissue organza"}},
		{"chanderi", []string{"chanderi", "chanderi silk", "chanderi cotton"}},
		{"banarasi", []string{"banarasi", "banarasi silk", "pure banarasi"}},
		{"kanjivaram", []string{"kanjivaram", "kanjeevaram", "kanchipuram", "pure kanjivaram"}},
		{"patola", []string{"patola", "patola silk", "patan patola"}},
		{"bhagalpuri", []string{"bhagalpuri", "bhagalpuri silk", "bhagalpur silk"}},
	})
}

// DefaultOccasionTable returns the built-in occasion synonyms
func DefaultOccasionTable() *FacetTable {
	return MustFacetTable(domain.FacetOccasion, []SynonymEntry{
		{"wedding", []string{"wedding", "marriage", "bridal", "bride", "shaadi"}},
		{"festival", []string{"festival", "festive", "celebration", "diwali", "pongal", "navratri", "durga puja"}},
		{"casual", []string{"casual", "daily", "everyday", "regular", "simple"}},
		{"party", []string{"party", "evening", "cocktail", "reception", "function"}},
		{"office", []string{"office", "work", "formal", "professional", "business"}},
		{"reception", []string{"reception", "engagement", "ceremony", "function"}},
		{"puja", []string{"puja", "prayer", "temple", "religious", "worship"}},
		{"engagement", []string{"engagement", "roka", "ceremony", "pre-wedding"}},
	})
}
