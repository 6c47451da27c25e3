package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/sareefinder/backend/config"
	httpDelivery "github.com/sareefinder/backend/internal/delivery/http"
	"github.com/sareefinder/backend/internal/domain"
	"github.com/sareefinder/backend/internal/infrastructure/assistant"
	"github.com/sareefinder/backend/internal/infrastructure/cache"
	"github.com/sareefinder/backend/internal/infrastructure/catalog"
	"github.com/sareefinder/backend/internal/observability"
	"github.com/sareefinder/backend/internal/usecase"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(observability.LogConfig{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})

	if err := run(cfg, logger); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}

func run(cfg *config.Config, logger zerolog.Logger) error {
	log := observability.Component(logger, "server")

	log.Info().
		Str("version", "1.0.0").
		Str("environment", cfg.Server.Environment).
		Str("port", cfg.Server.Port).
		Str("cache_type", cfg.Cache.Type).
		Dur("cache_ttl", cfg.Cache.TTL).
		Msg("starting SareeFinder backend")

	items, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	log.Info().Int("items", items.Len()).Str("path", cfg.Catalog.Path).Msg("catalog loaded")

	matchConfig := usecase.MatchConfig{
		Colors:    usecase.DefaultColorTable(),
		Materials: usecase.DefaultMaterialTable(),
		Occasions: usecase.DefaultOccasionTable(),
		Composer: usecase.ComposerConfig{
			FallbackLimit:        cfg.Matching.FallbackLimit,
			EnableVariation:      cfg.Matching.EnableVariation,
			VariationProbability: cfg.Matching.VariationProbability,
			VariationSeed:        cfg.Matching.VariationSeed,
		},
	}
	matcher := usecase.NewMatchingService(items.Items(), matchConfig)

	for _, table := range matcher.Tables() {
		for _, overlap := range table.Overlaps() {
			log.Warn().
				Str("facet", string(overlap.Facet)).
				Str("synonym", overlap.Synonym).
				Str("selected", overlap.Winner).
				Str("unreachable_via", overlap.Shadowed).
				Msg("synonym declared under two values; first declaration wins")
		}
	}

	log.Info().
		Int("fallback_limit", cfg.Matching.FallbackLimit).
		Bool("variation", cfg.Matching.EnableVariation).
		Bool("debug", cfg.Matching.EnableDebugLogging).
		Msg("matcher configured")

	store, closeStore, err := newCache(cfg.Cache)
	if err != nil {
		return err
	}
	defer closeStore()

	var assistantClient domain.AssistantClient
	if cfg.Assistant.Enabled() {
		client := assistant.NewClient(assistant.ClientConfig{
			APIKey:            cfg.Assistant.APIKey,
			BaseURL:           cfg.Assistant.BaseURL,
			Timeout:           cfg.Assistant.Timeout,
			RequestsPerSecond: cfg.Assistant.RequestsPerSecond,
			Burst:             cfg.Assistant.Burst,
			Logger:            logger,
		})
		if cfg.Server.Environment == "development" {
			client.SetDebug(true)
		}
		assistantClient = client
		log.Info().Str("base_url", cfg.Assistant.BaseURL).Msg("assistant enabled")
	} else {
		log.Info().Msg("assistant disabled, using local matcher only")
	}

	recommendations := usecase.NewRecommendationService(
		store,
		assistantClient,
		items,
		matcher,
		usecase.RecommendationServiceConfig{
			CacheTTL:           cfg.Cache.TTL,
			SimulatedLatency:   cfg.Assistant.SimulatedLatency,
			EnableDebugLogging: cfg.Matching.EnableDebugLogging,
		},
		logger,
	)
	chat := usecase.NewChatService(store, recommendations, usecase.ChatServiceConfig{
		ConversationTTL: cfg.Chat.ConversationTTL,
		MaxMessages:     cfg.Chat.MaxMessages,
	}, logger)

	handler := httpDelivery.NewHandler(recommendations, chat, items, logger)
	router := httpDelivery.SetupRouter(cfg, handler, logger)

	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", server.Addr).Msg("server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info().Msg("server stopped cleanly")
	return nil
}

// newCache builds the configured cache backend and its close function
func newCache(cfg config.CacheConfig) (domain.CacheRepository, func(), error) {
	switch cfg.Type {
	case "redis":
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		redisCache, err := cache.NewRedisCache(ctx, cfg.RedisURL, "")
		if err != nil {
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		return redisCache, func() { _ = redisCache.Close() }, nil
	default:
		memoryCache := cache.NewMemoryCache(time.Minute)
		return memoryCache, func() { _ = memoryCache.Close() }, nil
	}
}
