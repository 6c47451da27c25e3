package assistant

import (
	"fmt"
	"strings"

	"github.com/sareefinder/backend/internal/domain"
)

// ResolveRecommendations looks up the reply's IDs in the catalog.
// Unknown and repeated IDs are skipped and reported in missing.
func ResolveRecommendations(reply *domain.AssistantReply, catalog domain.CatalogRepository) (items []domain.CatalogItem, missing []string) {
	if reply == nil {
		return nil, nil
	}

	seen := make(map[string]bool, len(reply.RecommendationIDs))
	for _, id := range reply.RecommendationIDs {
		id = strings.TrimSpace(id)
		if seen[id] {
			continue
		}
		seen[id] = true

		item, err := catalog.Get(id)
		if err != nil {
			missing = append(missing, id)
			continue
		}
		items = append(items, item)
	}

	return items, missing
}

// ToMatchResult converts an assistant reply into a MatchResult.
// A reply that resolves to no catalog items is an error so callers can fall back.
func ToMatchResult(reply *domain.AssistantReply, catalog domain.CatalogRepository) (*domain.MatchResult, error) {
	items, missing := ResolveRecommendations(reply, catalog)
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: reply referenced no known items (unknown: %v)", domain.ErrAssistantFailure, missing)
	}

	text := strings.TrimSpace(reply.ResponseText)
	if text == "" {
		text = fmt.Sprintf("Here are %d saree recommendations based on your request.", len(items))
	}

	return &domain.MatchResult{
		ResponseText:    text,
		Recommendations: items,
		Outcome:         domain.OutcomeUpstream,
		Source:          "assistant",
	}, nil
}
