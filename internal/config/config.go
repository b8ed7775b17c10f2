// Package config provides configuration loading and validation for the
// scoring service and CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Defaults for values not set in the config file or environment.
const (
	DefaultListenAddr = ":8000"
	DefaultTimeoutMS  = 5000
)

// Config represents the service configuration. It can be loaded from a
// JSON file, with environment variables filling in secrets; all fields are
// optional and fall back to defaults.
type Config struct {
	// Credentials and endpoints
	APIKey      string `json:"api_key,omitempty"`      // Gemini API key (env GEMINI_API_KEY)
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL (env DATABASE_URL)
	ListenAddr  string `json:"listen_addr,omitempty"`  // HTTP listen address for the server

	// Scoring behavior
	SkillRatioWeight  float64 `json:"skill_ratio_weight,omitempty"` // Taxonomy ratio weight (0.0-1.0)
	SimilarityWeight  float64 `json:"similarity_weight,omitempty"`  // Similarity weight (0.0-1.0)
	WeightsVersion    string  `json:"weights_version,omitempty"`    // Label recorded on every FitScore
	TimeoutMS         int     `json:"timeout_ms,omitempty"`         // Per-request scoring timeout
	DisableGenerative bool    `json:"disable_generative,omitempty"` // Turn off the generative adapter

	// Diagnostics
	Verbose bool `json:"verbose,omitempty"` // Print detailed debug information
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv fills credential fields from the environment when the config file
// left them empty. Environment values never override explicit config.
func (c *Config) FromEnv() {
	if c.APIKey == "" {
		c.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if c.DatabaseURL == "" {
		c.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if c.ListenAddr == "" {
		if port := os.Getenv("PORT"); port != "" {
			c.ListenAddr = ":" + port
		}
	}
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.SkillRatioWeight < 0 || c.SkillRatioWeight > 1 {
		return fmt.Errorf("config error: 'skill_ratio_weight' must be in [0,1]")
	}
	if c.SimilarityWeight < 0 || c.SimilarityWeight > 1 {
		return fmt.Errorf("config error: 'similarity_weight' must be in [0,1]")
	}
	if c.SkillRatioWeight != 0 || c.SimilarityWeight != 0 {
		if c.SkillRatioWeight+c.SimilarityWeight <= 0 {
			return fmt.Errorf("config error: weights must sum to a positive value")
		}
		if c.WeightsVersion == "" {
			return fmt.Errorf("config error: custom weights require 'weights_version'")
		}
	}
	if c.TimeoutMS < 0 {
		return fmt.Errorf("config error: 'timeout_ms' must be non-negative")
	}
	return nil
}

// Addr returns the HTTP listen address, defaulted.
func (c *Config) Addr() string {
	if c.ListenAddr == "" {
		return DefaultListenAddr
	}
	return c.ListenAddr
}

// Timeout returns the per-request scoring timeout, defaulted.
func (c *Config) Timeout() time.Duration {
	ms := c.TimeoutMS
	if ms <= 0 {
		ms = DefaultTimeoutMS
	}
	return time.Duration(ms) * time.Millisecond
}
