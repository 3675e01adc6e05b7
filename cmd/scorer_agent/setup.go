package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/transcript-scorer/internal/config"
	"github.com/jonathan/transcript-scorer/internal/llm"
	"github.com/jonathan/transcript-scorer/internal/metrics"
)

// resolveConfig merges a config file (if given), environment values, and
// leaves flag overrides to each command.
func resolveConfig(path string) (config.Config, error) {
	var cfg config.Config
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return cfg, err
		}
		cfg = *loaded
	}
	return cfg.MergeWithDefaults(config.FromEnv()), nil
}

// newLLMClient builds the Gemini client with any model tier overrides from
// the config.
func newLLMClient(ctx context.Context, cfg config.Config) (*llm.GeminiClient, error) {
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable or --api-key flag is required")
	}

	modelCfg := llm.DefaultConfig()
	if cfg.ModelLite != "" {
		modelCfg = modelCfg.WithModel(llm.TierLite, cfg.ModelLite)
	}
	if cfg.ModelStandard != "" {
		modelCfg = modelCfg.WithModel(llm.TierStandard, cfg.ModelStandard)
	}
	if cfg.ModelAdvanced != "" {
		modelCfg = modelCfg.WithModel(llm.TierAdvanced, cfg.ModelAdvanced)
	}

	return llm.NewClient(ctx, modelCfg, apiKey)
}

// newMetricsEngine builds the deterministic metrics engine. Without a
// LanguageTool endpoint the grammar sub-score uses its fixed fallback.
func newMetricsEngine(cfg config.Config) *metrics.Engine {
	var grammar metrics.GrammarChecker
	if cfg.LanguageToolURL != "" {
		grammar = metrics.NewLanguageToolChecker(cfg.LanguageToolURL)
	}
	return metrics.NewEngine(grammar, metrics.NewVaderAnalyzer())
}
