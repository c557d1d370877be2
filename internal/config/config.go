package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds the whole application configuration, populated from
// environment variables
type Config struct {
	App    AppConfig
	Log    LogConfig
	Seed   SeedConfig
	Render RenderConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
}

type LogConfig struct {
	Level      string // debug, info, warn, error
	File       string // empty disables the rotating file sink
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// =====================================================
// SEED CONFIGURATION
// =====================================================

type SeedConfig struct {
	Enabled bool
	File    string // overrides the embedded sample catalog
}

// =====================================================
// RENDER CONFIGURATION
// =====================================================

// RenderConfig switches the optional formatters; disabled ones fall back to raw text
type RenderConfig struct {
	DiffEnabled     bool
	MarkdownEnabled bool
}

var validEnvironments = map[string]bool{
	"development": true,
	"staging":     true,
	"production":  true,
}

// Load reads the config from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Prompt Catalog API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Log: LogConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			File:       getEnv("LOG_FILE", ""),
			MaxSizeMB:  getEnvInt("LOG_MAX_SIZE_MB", 100),
			MaxBackups: getEnvInt("LOG_MAX_BACKUPS", 3),
			MaxAgeDays: getEnvInt("LOG_MAX_AGE_DAYS", 28),
		},
		Seed: SeedConfig{
			Enabled: getEnvBool("SEED_ENABLED", true),
			File:    getEnv("SEED_FILE", ""),
		},
		Render: RenderConfig{
			DiffEnabled:     getEnvBool("RENDER_DIFF_ENABLED", true),
			MarkdownEnabled: getEnvBool("RENDER_MARKDOWN_ENABLED", true),
		},
	}

	// Validate critical config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that the config is usable
func (c *Config) Validate() error {
	if !validEnvironments[c.App.Environment] {
		return fmt.Errorf("APP_ENV must be one of development, staging, production (got %q)", c.App.Environment)
	}

	port, err := strconv.Atoi(c.App.Port)
	if err != nil || port <= 0 || port > 65535 {
		return fmt.Errorf("APP_PORT must be a port number (got %q)", c.App.Port)
	}

	if c.Log.File != "" && (c.Log.MaxSizeMB <= 0 || c.Log.MaxBackups < 0 || c.Log.MaxAgeDays < 0) {
		return fmt.Errorf("log rotation settings must not be negative")
	}

	return nil
}

// IsProduction reports whether the app runs in production
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	valueStr := strings.TrimSpace(os.Getenv(key))
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
