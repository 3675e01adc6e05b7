// Package config provides configuration loading and validation for the CLI
// and the HTTP server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config represents settings that can be loaded from a JSON file, from the
// environment, or be supplied via CLI flags. All fields are optional;
// missing values use defaults.
type Config struct {
	// Paths
	Transcript string `json:"transcript,omitempty"` // Path to transcript text or PDF file
	Rubric     string `json:"rubric,omitempty"`     // Path to rubric file (json, xlsx, txt, csv, md)

	// Scoring inputs
	DurationSeconds int `json:"duration_seconds,omitempty"` // Recording duration; zero disables pace scoring

	// Service
	APIKey          string `json:"api_key,omitempty"`           // Gemini API key
	LanguageToolURL string `json:"languagetool_url,omitempty"`  // LanguageTool base URL; empty uses the grammar fallback
	ModelLite       string `json:"model_lite,omitempty"`        // Override for the scoring model
	ModelStandard   string `json:"model_standard,omitempty"`    // Override for the standard model
	ModelAdvanced   string `json:"model_advanced,omitempty"`    // Override for the rubric formatting model
	MaxRetries      int    `json:"max_retries,omitempty"`       // Orchestrator retry bound
	MaxScoreRetries int    `json:"max_score_retries,omitempty"` // Scoring self-correction bound

	// Server
	Port           int      `json:"port,omitempty"`            // HTTP listen port
	AllowedOrigins []string `json:"allowed_origins,omitempty"` // CORS allowlist

	// Behavior
	Verbose bool `json:"verbose,omitempty"` // Print detailed metric and score breakdowns
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

// FromEnv builds a Config from environment variables. Callers typically load
// a .env file first and then let flags override the result.
func FromEnv() Config {
	cfg := Config{
		APIKey:          os.Getenv("GEMINI_API_KEY"),
		LanguageToolURL: os.Getenv("LANGUAGETOOL_URL"),
		ModelLite:       os.Getenv("MODEL_LITE"),
		ModelStandard:   os.Getenv("MODEL_STANDARD"),
		ModelAdvanced:   os.Getenv("MODEL_ADVANCED"),
	}
	if port, err := strconv.Atoi(os.Getenv("PORT")); err == nil {
		cfg.Port = port
	}
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
			}
		}
	}
	return cfg
}

// Validate checks that the configuration has valid values.
// Required fields are checked later, after flag merging.
func (c *Config) Validate() error {
	if c.DurationSeconds < 0 {
		return fmt.Errorf("config error: 'duration_seconds' must be non-negative")
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("config error: 'max_retries' must be non-negative")
	}
	if c.MaxScoreRetries < 0 {
		return fmt.Errorf("config error: 'max_score_retries' must be non-negative")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be in 0-65535")
	}

	if c.Transcript != "" {
		if _, err := os.Stat(c.Transcript); os.IsNotExist(err) {
			return fmt.Errorf("config error: transcript file not found: %s", c.Transcript)
		}
	}
	if c.Rubric != "" {
		if _, err := os.Stat(c.Rubric); os.IsNotExist(err) {
			return fmt.Errorf("config error: rubric file not found: %s", c.Rubric)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. This is used to apply config file values as defaults for CLI
// flags and environment values.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Transcript == "" {
		result.Transcript = defaults.Transcript
	}
	if result.Rubric == "" {
		result.Rubric = defaults.Rubric
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.LanguageToolURL == "" {
		result.LanguageToolURL = defaults.LanguageToolURL
	}
	if result.ModelLite == "" {
		result.ModelLite = defaults.ModelLite
	}
	if result.ModelStandard == "" {
		result.ModelStandard = defaults.ModelStandard
	}
	if result.ModelAdvanced == "" {
		result.ModelAdvanced = defaults.ModelAdvanced
	}
	if len(result.AllowedOrigins) == 0 {
		result.AllowedOrigins = defaults.AllowedOrigins
	}

	if result.DurationSeconds == 0 {
		result.DurationSeconds = defaults.DurationSeconds
	}
	if result.MaxRetries == 0 {
		result.MaxRetries = defaults.MaxRetries
	}
	if result.MaxScoreRetries == 0 {
		result.MaxScoreRetries = defaults.MaxScoreRetries
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
