package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations.
// Values are opaque bytes; callers own the encoding.
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// CatalogRepository provides read-only access to the product catalog
type CatalogRepository interface {
	Items() []CatalogItem
	Get(id string) (CatalogItem, error)
	FacetValues() FacetOptions
}

// AssistantReply is the answer of an external recommendation service
type AssistantReply struct {
	ResponseText      string   `json:"responseText"`
	RecommendationIDs []string `json:"recommendationIds"`
}

// AssistantClient defines the interface for an external recommendation service
type AssistantClient interface {
	Recommend(ctx context.Context, query string) (*AssistantReply, error)
}
