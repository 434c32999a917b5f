// Package config loads application configuration from an optional TOML file
// and environment variables.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// StoreState describes whether the Region Store can be used at all.
type StoreState string

const (
	// StoreOK means a valid connection string is configured.
	StoreOK StoreState = "STORE_OK"
	// StoreUnavailable means the connection string is absent or invalid.
	// It is decided once at startup and never changes for the process lifetime.
	StoreUnavailable StoreState = "STORE_UNAVAILABLE"
)

// Config holds all application settings.
// Precedence: environment variable, then config file, then built-in default.
type Config struct {
	DatabaseURL   string `toml:"database_url"`    // Postgres URL, postgres:// or postgresql://
	AppPort       string `toml:"app_port"`        // Port for the HTTP server
	AIProvider    string `toml:"ai_provider"`     // googleai or openai
	GeminiAPIKey  string `toml:"gemini_api_key"`  // Key for the googleai provider
	AIModel       string `toml:"ai_model"`        // Model for text, vision and chat
	OpenAIBaseURL string `toml:"openai_base_url"` // Base URL of an OpenAI-compatible server
	OpenAIAPIKey  string `toml:"openai_api_key"`  // Token for the openai provider
	LogLevel      string `toml:"log_level"`       // debug, info, warn or error
	MaxUploadMB   int    `toml:"max_upload_mb"`   // Request body limit for image uploads
}

// Defaults returns a Config populated with built-in default values.
func Defaults() *Config {
	return &Config{
		AppPort:     "8080",
		AIProvider:  "googleai",
		AIModel:     "gemini-2.0-flash",
		LogLevel:    "info",
		MaxUploadMB: 10,
	}
}

// Load builds the configuration. When CONFIG_FILE names an existing TOML file
// its values are applied over the defaults; environment variables are applied last.
func Load() (*Config, error) {
	cfg := Defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.DatabaseURL = getEnv("DATABASE_URL", cfg.DatabaseURL)
	cfg.AppPort = getEnv("APP_PORT", cfg.AppPort)
	cfg.AIProvider = getEnv("AI_PROVIDER", cfg.AIProvider)
	cfg.GeminiAPIKey = getEnv("GEMINI_API_KEY", cfg.GeminiAPIKey)
	cfg.AIModel = getEnv("AI_MODEL", cfg.AIModel)
	cfg.OpenAIBaseURL = getEnv("OPENAI_BASE_URL", cfg.OpenAIBaseURL)
	cfg.OpenAIAPIKey = getEnv("OPENAI_API_KEY", cfg.OpenAIAPIKey)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)

	if v := os.Getenv("MAX_UPLOAD_MB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid MAX_UPLOAD_MB %q: %w", v, err)
		}
		cfg.MaxUploadMB = n
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.MaxUploadMB <= 0 {
		return fmt.Errorf("max upload size must be positive, got %d MB", c.MaxUploadMB)
	}
	return nil
}

func (c *Config) loadFile(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if _, err := toml.DecodeFile(path, c); err != nil {
		return fmt.Errorf("decoding config file %s: %w", path, err)
	}
	return nil
}

// StoreState reports whether DatabaseURL is usable.
func (c *Config) StoreState() StoreState {
	if strings.HasPrefix(c.DatabaseURL, "postgres://") || strings.HasPrefix(c.DatabaseURL, "postgresql://") {
		return StoreOK
	}
	return StoreUnavailable
}

// SlogLevel converts LogLevel to a slog.Level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// MaxUploadBytes is MaxUploadMB in bytes.
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
