// Package scoring aggregates the taxonomy, similarity, and generative
// signals into the final fit score and canonical skill breakdown.
package scoring

import "fmt"

// Default weights for the score combination. These are presentation-era
// defaults, not derived domain truth; callers may tune them, but every
// FitScore records which weight configuration produced it.
const (
	defaultSkillRatioWeight = 0.5
	defaultSimilarityWeight = 0.5

	// DefaultWeightsVersion identifies the default weight configuration.
	DefaultWeightsVersion = "v1"
)

// Weights is the similarity/taxonomy split used by Aggregate. The two
// weights must be non-negative and sum to a positive value.
type Weights struct {
	SkillRatio float64
	Similarity float64
	Version    string
}

// DefaultWeights returns the versioned default 0.5/0.5 split.
func DefaultWeights() Weights {
	return Weights{
		SkillRatio: defaultSkillRatioWeight,
		Similarity: defaultSimilarityWeight,
		Version:    DefaultWeightsVersion,
	}
}

// Validate checks that the weights are usable.
func (w Weights) Validate() error {
	if w.SkillRatio < 0 || w.Similarity < 0 {
		return fmt.Errorf("weights must be non-negative, got %f/%f", w.SkillRatio, w.Similarity)
	}
	if w.SkillRatio+w.Similarity <= 0 {
		return fmt.Errorf("weights must sum to a positive value")
	}
	if w.Version == "" {
		return fmt.Errorf("weights version is required")
	}
	return nil
}
