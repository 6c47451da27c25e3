package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"
	"github.com/sareefinder/backend/internal/domain"
	"github.com/sareefinder/backend/internal/infrastructure/assistant"
	"github.com/sareefinder/backend/internal/metrics"
)

// RecommendationServiceConfig holds configuration for the recommendation service
type RecommendationServiceConfig struct {
	CacheTTL           time.Duration
	SimulatedLatency   time.Duration
	MaxQueryLength     int
	EnableDebugLogging bool
}

// RecommendationService answers recommendation queries with caching.
// The external assistant is optional; the local matcher always backs it up.
type RecommendationService struct {
	cache        domain.CacheRepository
	assistant    domain.AssistantClient
	catalog      domain.CatalogRepository
	matcher      *MatchingService
	preprocessor *QueryPreprocessor
	cacheTTL     time.Duration
	latency      time.Duration
	debug        bool
	logger       zerolog.Logger
}

// NewRecommendationService creates a new recommendation service with dependencies.
// assistantClient may be nil.
func NewRecommendationService(
	cache domain.CacheRepository,
	assistantClient domain.AssistantClient,
	catalog domain.CatalogRepository,
	matcher *MatchingService,
	config RecommendationServiceConfig,
	logger zerolog.Logger,
) *RecommendationService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 10 * time.Minute
	}

	return &RecommendationService{
		cache:        cache,
		assistant:    assistantClient,
		catalog:      catalog,
		matcher:      matcher,
		preprocessor: NewQueryPreprocessor(config.MaxQueryLength),
		cacheTTL:     cacheTTL,
		latency:      config.SimulatedLatency,
		debug:        config.EnableDebugLogging,
		logger:       logger.With().Str("component", "recommendation").Logger(),
	}
}

// Recommend returns recommendations for a free-text query.
// Flow: validate -> check cache -> simulated latency -> assistant or matcher -> cache -> return
func (s *RecommendationService) Recommend(
	ctx context.Context,
	request *domain.SearchRequest,
) (*domain.MatchResult, error) {
	if request == nil {
		return nil, domain.ErrInvalidRequest
	}

	query, err := s.preprocessor.PreprocessQuery(request.Query)
	if err != nil {
		return nil, err
	}

	cacheKey := s.preprocessor.CacheKey(query)

	if cached, err := s.getFromCache(ctx, cacheKey); err == nil {
		metrics.RecordCacheHit()
		cached.Source = "cache"
		return cached, nil
	}
	metrics.RecordCacheMiss()

	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	result := s.askAssistant(ctx, query)
	if result == nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		local := s.matcher.Evaluate(query)
		local.Source = "matcher"
		result = &local
	}

	for _, facet := range result.Facets.Matched() {
		metrics.RecordFacetMatch(string(facet))
	}
	metrics.RecordEvaluation(string(result.Outcome), result.Source)

	if s.debug {
		s.logger.Debug().
			Str("query", query).
			Str("outcome", string(result.Outcome)).
			Str("source", result.Source).
			Interface("facets", result.Facets).
			Int("results", len(result.Recommendations)).
			Msg("query evaluated")
	}

	if err := s.setInCache(ctx, cacheKey, result); err != nil {
		s.logger.Warn().Err(err).Msg("failed to cache recommendation")
	}

	return result, nil
}

// askAssistant returns nil when no assistant is configured or it failed
func (s *RecommendationService) askAssistant(ctx context.Context, query string) *domain.MatchResult {
	if s.assistant == nil {
		return nil
	}

	reply, err := s.assistant.Recommend(ctx, query)
	if err != nil {
		metrics.RecordAssistantRequest("error")
		s.logger.Warn().Err(err).Msg("assistant unavailable, using local matcher")
		return nil
	}

	result, err := assistant.ToMatchResult(reply, s.catalog)
	if err != nil {
		metrics.RecordAssistantRequest("error")
		s.logger.Warn().Err(err).Msg("assistant reply unusable, using local matcher")
		return nil
	}

	metrics.RecordAssistantRequest("ok")
	result.Facets = s.matcher.Extract(query)
	return result
}

// wait applies the configured artificial latency
func (s *RecommendationService) wait(ctx context.Context) error {
	if s.latency <= 0 {
		return nil
	}

	timer := time.NewTimer(s.latency)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// getFromCache retrieves a recommendation result from cache
func (s *RecommendationService) getFromCache(ctx context.Context, key string) (*domain.MatchResult, error) {
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	var result domain.MatchResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, domain.ErrCacheMiss
	}

	return &result, nil
}

// setInCache stores a recommendation result in cache
func (s *RecommendationService) setInCache(ctx context.Context, key string, result *domain.MatchResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return s.cache.Set(ctx, key, data, s.cacheTTL)
}
