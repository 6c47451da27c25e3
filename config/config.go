package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Catalog   CatalogConfig   `mapstructure:"catalog"`
	Matching  MatchingConfig  `mapstructure:"matching"`
	Assistant AssistantConfig `mapstructure:"assistant"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Chat      ChatConfig      `mapstructure:"chat"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Log       LogConfig       `mapstructure:"log"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// CatalogConfig points at an optional catalog file
type CatalogConfig struct {
	Path string `mapstructure:"path"` // Empty uses the built-in catalog
}

// MatchingConfig holds matcher configuration
type MatchingConfig struct {
	FallbackLimit        int     `mapstructure:"fallback_limit"`
	EnableVariation      bool    `mapstructure:"enable_variation"`
	VariationProbability float64 `mapstructure:"variation_probability"`
	VariationSeed        uint64  `mapstructure:"variation_seed"`
	EnableDebugLogging   bool    `mapstructure:"enable_debug_logging"`
}

// AssistantConfig holds external assistant configuration
type AssistantConfig struct {
	BaseURL           string        `mapstructure:"base_url"` // Empty disables the assistant
	APIKey            string        `mapstructure:"api_key"`
	Timeout           time.Duration `mapstructure:"timeout"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	Burst             int           `mapstructure:"burst"`
	SimulatedLatency  time.Duration `mapstructure:"simulated_latency"`
}

// Enabled reports whether an external assistant is configured
func (c AssistantConfig) Enabled() bool {
	return c.BaseURL != ""
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	Type     string        `mapstructure:"type"` // "memory" or "redis"
	RedisURL string        `mapstructure:"redis_url"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// ChatConfig holds conversation storage configuration
type ChatConfig struct {
	ConversationTTL time.Duration `mapstructure:"conversation_ttl"`
	MaxMessages     int           `mapstructure:"max_messages"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"` // Requests per minute
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "json" or "console"
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/sareefinder/")

	// SAREEFINDER_SERVER_PORT -> server.port
	v.SetEnvPrefix("SAREEFINDER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// loadEnvFile loads a .env file from the working directory if present.
// Variables already set in the environment win.
func loadEnvFile() error {
	if err := godotenv.Load(".env"); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return nil
}

// setDefaults sets default configuration values.
// Every key needs a default so that environment overrides are seen by Unmarshal.
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:5173"})

	v.SetDefault("catalog.path", "")

	// Matching defaults
	v.SetDefault("matching.fallback_limit", 5)
	v.SetDefault("matching.enable_variation", false)
	v.SetDefault("matching.variation_probability", 0.5)
	v.SetDefault("matching.variation_seed", 0)
	v.SetDefault("matching.enable_debug_logging", false)

	// Assistant defaults
	v.SetDefault("assistant.base_url", "")
	v.SetDefault("assistant.api_key", "")
	v.SetDefault("assistant.timeout", "10s")
	v.SetDefault("assistant.requests_per_second", 2)
	v.SetDefault("assistant.burst", 5)
	v.SetDefault("assistant.simulated_latency", "0s")

	// Cache defaults
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.redis_url", "")
	v.SetDefault("cache.ttl", "10m")

	// Chat defaults
	v.SetDefault("chat.conversation_ttl", "30m")
	v.SetDefault("chat.max_messages", 100)

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 100)

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Cache.Type != "memory" && config.Cache.Type != "redis" {
		return fmt.Errorf("cache type must be 'memory' or 'redis', got: %s", config.Cache.Type)
	}

	if config.Cache.Type == "redis" && config.Cache.RedisURL == "" {
		return fmt.Errorf("redis URL is required when cache type is 'redis'")
	}

	if config.Chat.ConversationTTL <= 0 {
		return fmt.Errorf("chat conversation TTL must be positive, got: %s", config.Chat.ConversationTTL)
	}

	if config.Chat.MaxMessages <= 0 {
		return fmt.Errorf("chat max messages must be positive, got: %d", config.Chat.MaxMessages)
	}

	if config.Matching.FallbackLimit <= 0 {
		return fmt.Errorf("matching fallback limit must be positive, got: %d", config.Matching.FallbackLimit)
	}

	if p := config.Matching.VariationProbability; p < 0 || p > 1 {
		return fmt.Errorf("variation probability must be within [0, 1], got: %g", p)
	}

	if config.Assistant.Enabled() && config.Assistant.APIKey == "" {
		return fmt.Errorf("assistant API key is required when base URL is set (set SAREEFINDER_ASSISTANT_API_KEY)")
	}

	if config.Log.Format != "json" && config.Log.Format != "console" {
		return fmt.Errorf("log format must be 'json' or 'console', got: %s", config.Log.Format)
	}

	return nil
}
