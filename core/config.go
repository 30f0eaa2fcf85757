// Package core holds configuration loading and shared file-path utilities
// for the icon pipeline.
package core

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration values. Everything has a sensible default
// so the tool runs with zero configuration; only the upstream generation
// API key is required, and only when generation is requested.
type Config struct {
	// Background removal
	RemovalEngine  string        // "rembg" (fast) or "rmbg2" (high quality)
	RemovalModel   string        // session model name for the rembg engine
	RemovalTimeout time.Duration // wall-clock timeout per removal call
	MaxConcurrent  int           // inference worker count (memory bound)

	// Output
	OutputDir string

	// Icon generation
	IconTimeout time.Duration // removal timeout inside icon batches
	PresetsFile string        // optional YAML file overriding platform presets

	// Upstream generation (optional cloud provider)
	OpenAIAPIKey string
	ImageModel   string
	ImageBaseURL string
	GenTimeout   time.Duration

	// Run history
	HistoryDBPath  string
	HistoryEnabled bool

	// Logging
	LogFile     string
	Development bool
}

// LoadConfig loads configuration from environment variables. A .env file in
// the working directory is honored when present.
func LoadConfig() (*Config, error) {
	// Missing .env is fine; explicit env vars always win.
	_ = godotenv.Load()

	cfg := &Config{
		RemovalEngine:  GetEnvOrDefault("BG_REMOVAL_ENGINE", "rembg"),
		RemovalModel:   GetEnvOrDefault("REMBG_MODEL", "isnet-general-use"),
		RemovalTimeout: ParseDurationEnv("BG_REMOVAL_TIMEOUT", 120),
		MaxConcurrent:  ParseIntEnv("BG_REMOVAL_WORKERS", 2),

		OutputDir: GetEnvOrDefault("ICONFORGE_OUTPUT_DIR", "./iconforge-output"),

		IconTimeout: ParseDurationEnv("ICON_REMOVAL_TIMEOUT", 60),
		PresetsFile: os.Getenv("ICONFORGE_PRESETS"),

		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
		ImageModel:   GetEnvOrDefault("IMAGE_MODEL", "dall-e-3"),
		ImageBaseURL: os.Getenv("IMAGE_BASE_URL"),
		GenTimeout:   ParseDurationEnv("IMAGE_GEN_TIMEOUT", 60),

		HistoryDBPath:  GetEnvOrDefault("ICONFORGE_DB", "./iconforge.sqlite"),
		HistoryEnabled: ParseBoolEnv("ICONFORGE_HISTORY", true),

		LogFile:     GetEnvOrDefault("ICONFORGE_LOG_FILE", "iconforge.log"),
		Development: ParseBoolEnv("ICONFORGE_DEV", false),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks configuration invariants that would otherwise surface as
// confusing runtime failures.
func (c *Config) Validate() error {
	if c.RemovalEngine != "rembg" && c.RemovalEngine != "rmbg2" {
		return fmt.Errorf("core: BG_REMOVAL_ENGINE must be \"rembg\" or \"rmbg2\", got %q", c.RemovalEngine)
	}
	if c.MaxConcurrent < 1 {
		return fmt.Errorf("core: BG_REMOVAL_WORKERS must be >= 1, got %d", c.MaxConcurrent)
	}
	if c.RemovalTimeout <= 0 {
		return fmt.Errorf("core: BG_REMOVAL_TIMEOUT must be positive, got %v", c.RemovalTimeout)
	}
	if c.IconTimeout <= 0 {
		return fmt.Errorf("core: ICON_REMOVAL_TIMEOUT must be positive, got %v", c.IconTimeout)
	}
	return nil
}

// EnsureOutputDir creates the output directory if it does not exist and
// returns its path.
func (c *Config) EnsureOutputDir() (string, error) {
	if err := os.MkdirAll(c.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("core: failed to create output directory %s: %w", c.OutputDir, err)
	}
	return c.OutputDir, nil
}
