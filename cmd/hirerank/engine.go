package main

import (
	"context"
	"fmt"

	"github.com/sha9506/HireRank/internal/config"
	"github.com/sha9506/HireRank/internal/engine"
	"github.com/sha9506/HireRank/internal/llm"
	"github.com/sha9506/HireRank/internal/scoring"
	"github.com/sha9506/HireRank/internal/taxonomy"
)

// loadConfig merges an optional config file with the environment.
func loadConfig(path string) (*config.Config, error) {
	cfg := &config.Config{}
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	cfg.FromEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildEngine assembles a scoring engine from configuration. The returned
// client is nil when no API key is configured, which runs the engine in
// taxonomy-only mode; the caller owns closing a non-nil client.
func buildEngine(ctx context.Context, cfg *config.Config) (*engine.Engine, llm.Client, error) {
	table, err := taxonomy.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load taxonomy: %w", err)
	}

	var client llm.Client
	if cfg.APIKey != "" {
		client, err = llm.NewClient(ctx, llm.DefaultConfig(), cfg.APIKey)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create AI client: %w", err)
		}
	}

	weights := scoring.Weights{}
	if cfg.SkillRatioWeight != 0 || cfg.SimilarityWeight != 0 {
		weights = scoring.Weights{
			SkillRatio: cfg.SkillRatioWeight,
			Similarity: cfg.SimilarityWeight,
			Version:    cfg.WeightsVersion,
		}
	}

	eng := engine.New(table, client, engine.Options{
		Weights:           weights,
		DisableGenerative: cfg.DisableGenerative,
		Timeout:           cfg.Timeout(),
	})
	return eng, client, nil
}
