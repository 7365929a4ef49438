// Package config provides configuration management for the application.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/SAACyberV99/VibeFlix/internal/constants"
	"github.com/SAACyberV99/VibeFlix/pkg/security"
)

const (
	// Default configuration file name
	defaultConfigFile = "config.json"
	// Default dotenv file name
	defaultEnvFile = ".env"
)

// Config holds the application configuration.
// It supports loading from a .env file, environment variables and JSON files.
type Config struct {
	// Catalog service
	TMDBAPIKey       string        `json:"TMDB_API_KEY"`
	TMDBBaseURL      string        `json:"TMDB_BASE_URL"`
	TMDBImageBaseURL string        `json:"TMDB_IMAGE_BASE_URL"`
	HTTPTimeout      time.Duration `json:"HTTP_TIMEOUT"`

	// Server
	Port     string `json:"PORT"`
	LogLevel string `json:"LOG_LEVEL"`
	Locale   string `json:"LOCALE"`

	// Sessions
	SessionCapacity int           `json:"SESSION_CAPACITY"`
	SessionTTL      time.Duration `json:"SESSION_TTL"`

	// Incoming request limits
	RateLimitRPS   float64 `json:"RATE_LIMIT_RPS"`
	RateLimitBurst int     `json:"RATE_LIMIT_BURST"`
}

// Default returns a configuration populated with default values.
func Default() *Config {
	return &Config{
		TMDBAPIKey:       constants.PlaceholderAPIKey,
		TMDBBaseURL:      constants.TMDBBaseURL,
		TMDBImageBaseURL: constants.TMDBImageBaseURL,
		Port:             constants.DefaultPort,
		LogLevel:         constants.DefaultLogLevel,
		Locale:           constants.DefaultLocale,
		SessionCapacity:  constants.DefaultSessionCapacity,
		SessionTTL:       constants.DefaultSessionTTL,
		RateLimitRPS:     constants.DefaultRateLimitRPS,
		RateLimitBurst:   constants.DefaultRateLimitBurst,
	}
}

// Load reads configuration from an optional .env file, an optional JSON file and
// environment variables. Environment variables take precedence over file values.
// Returns an error if the configuration is invalid.
func Load() (*Config, error) {
	// Missing .env is the normal case outside development
	if err := godotenv.Load(getEnvOrDefault("ENV_FILE", defaultEnvFile)); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}

	cfg := Default()

	configFile := getEnvOrDefault("CONFIG_FILE", defaultConfigFile)
	if err := cfg.loadFromFile(configFile); err != nil {
		// Ignore file not found errors
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	if err := cfg.loadFromEnv(); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromEnv loads configuration from environment variables.
func (c *Config) loadFromEnv() error {
	setString(&c.TMDBAPIKey, "TMDB_API_KEY")
	setString(&c.TMDBBaseURL, "TMDB_BASE_URL")
	setString(&c.TMDBImageBaseURL, "TMDB_IMAGE_BASE_URL")
	setString(&c.Port, "PORT")
	setString(&c.LogLevel, "LOG_LEVEL")
	setString(&c.Locale, "LOCALE")

	if err := setDuration(&c.HTTPTimeout, "HTTP_TIMEOUT"); err != nil {
		return err
	}
	if err := setDuration(&c.SessionTTL, "SESSION_TTL"); err != nil {
		return err
	}
	if err := setInt(&c.SessionCapacity, "SESSION_CAPACITY"); err != nil {
		return err
	}
	if err := setInt(&c.RateLimitBurst, "RATE_LIMIT_BURST"); err != nil {
		return err
	}
	if v := os.Getenv("RATE_LIMIT_RPS"); v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("RATE_LIMIT_RPS: %w", err)
		}
		c.RateLimitRPS = rps
	}
	return nil
}

// loadFromFile loads configuration from a JSON file.
// Durations in the file are strings such as "24h".
func (c *Config) loadFromFile(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return err
	}

	type alias Config
	aux := struct {
		*alias
		HTTPTimeout string `json:"HTTP_TIMEOUT"`
		SessionTTL  string `json:"SESSION_TTL"`
	}{alias: (*alias)(c)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return fmt.Errorf("decode %s: %w", filename, err)
	}
	if aux.HTTPTimeout != "" {
		if c.HTTPTimeout, err = time.ParseDuration(aux.HTTPTimeout); err != nil {
			return fmt.Errorf("HTTP_TIMEOUT: %w", err)
		}
	}
	if aux.SessionTTL != "" {
		if c.SessionTTL, err = time.ParseDuration(aux.SessionTTL); err != nil {
			return fmt.Errorf("SESSION_TTL: %w", err)
		}
	}
	return nil
}

// Validate checks if the configuration is valid.
// A placeholder credential is not an error: the server starts and shows setup instructions.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT must not be empty")
	}
	if c.TMDBBaseURL == "" {
		return fmt.Errorf("TMDB_BASE_URL must not be empty")
	}
	if c.HTTPTimeout < 0 {
		return fmt.Errorf("HTTP_TIMEOUT must not be negative")
	}
	if c.SessionCapacity <= 0 {
		return fmt.Errorf("SESSION_CAPACITY must be positive, got %d", c.SessionCapacity)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	if c.RateLimitRPS < 0 || c.RateLimitBurst < 0 {
		return fmt.Errorf("rate limit values must not be negative")
	}
	if c.TMDBImageBaseURL == "" {
		c.TMDBImageBaseURL = constants.TMDBImageBaseURL
	}
	if c.Locale == "" {
		c.Locale = constants.DefaultLocale
	}
	return nil
}

// NeedsSetup reports whether the catalog credential is still missing or the placeholder.
func (c *Config) NeedsSetup() bool {
	return security.NewAPIKeyValidator(constants.PlaceholderAPIKey).IsPlaceholder(c.TMDBAPIKey)
}

// RateLimitEnabled reports whether incoming requests are throttled.
func (c *Config) RateLimitEnabled() bool {
	return c.RateLimitRPS > 0
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

func setDuration(dst *time.Duration, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = d
	return nil
}

// getEnvOrDefault returns environment variable value or default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
