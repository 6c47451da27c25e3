package usecase

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/sareefinder/backend/internal/domain"
)

const defaultFallbackLimit = 5

const (
	noMatchesResponse = "I couldn't find exact matches for your request. Here are some popular saree options you might like. " +
		"You can be more specific about color, material, or occasion for more tailored results."
	popularResponse = "Here are some popular saree recommendations. " +
		"You can be more specific about color, material, or occasion for more tailored results."
	matchedResponseFormat = "Here are %d saree recommendations that match your request for %s. " +
		"I've selected these based on your preferences."
)

// responseVariations restate the result count; each takes one %d
var responseVariations = []string{
	"I found %d beautiful sarees that match your preferences. Take a look!",
	"Based on your request, I've selected %d sarees that you might love.",
	"Here are %d stunning sarees that align with what you're looking for.",
	"I've curated %d sarees that match your criteria perfectly.",
}

// ComposerConfig controls fallback size and the optional wording variation
type ComposerConfig struct {
	FallbackLimit        int
	EnableVariation      bool
	VariationProbability float64
	VariationSeed        uint64 // 0 seeds from the clock
}

// ResponseComposer builds the reply text for a filtered catalog
type ResponseComposer struct {
	fallbackLimit int
	variation     bool
	probability   float64

	mu  sync.Mutex
	rng *rand.Rand
}

// NewResponseComposer creates a composer with the given configuration
func NewResponseComposer(config ComposerConfig) *ResponseComposer {
	limit := config.FallbackLimit
	if limit <= 0 {
		limit = defaultFallbackLimit
	}

	c := &ResponseComposer{
		fallbackLimit: limit,
		variation:     config.EnableVariation && config.VariationProbability > 0,
		probability:   config.VariationProbability,
	}

	if c.variation {
		seed := config.VariationSeed
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}
		c.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}

	return c
}

// Compose selects the response branch for a query outcome.
// catalog is the unfiltered catalog; filtered is the result of FilterCatalog.
func (c *ResponseComposer) Compose(
	catalog []domain.CatalogItem,
	filtered []domain.CatalogItem,
	selection domain.FacetSelection,
) domain.MatchResult {
	if len(filtered) == 0 {
		limit := min(c.fallbackLimit, len(catalog))
		fallback := make([]domain.CatalogItem, limit)
		copy(fallback, catalog[:limit])

		return domain.MatchResult{
			ResponseText:    noMatchesResponse,
			Recommendations: fallback,
			Facets:          selection,
			Outcome:         domain.OutcomeFallback,
		}
	}

	if selection.IsEmpty() {
		return domain.MatchResult{
			ResponseText:    popularResponse,
			Recommendations: filtered,
			Facets:          selection,
			Outcome:         domain.OutcomePopular,
		}
	}

	text, ok := c.variationText(len(filtered))
	if !ok {
		matched := selection.Matched()
		parts := make([]string, 0, len(matched))
		for _, facet := range matched {
			value, _ := selection.Value(facet)
			parts = append(parts, fmt.Sprintf("%s %s", value, facet))
		}
		text = fmt.Sprintf(matchedResponseFormat, len(filtered), strings.Join(parts, " and "))
	}

	return domain.MatchResult{
		ResponseText:    text,
		Recommendations: filtered,
		Facets:          selection,
		Outcome:         domain.OutcomeExact,
	}
}

func (c *ResponseComposer) variationText(count int) (string, bool) {
	if !c.variation {
		return "", false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.rng.Float64() >= c.probability {
		return "", false
	}
	template := responseVariations[c.rng.IntN(len(responseVariations))]
	return fmt.Sprintf(template, count), true
}
