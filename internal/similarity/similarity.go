// Package similarity computes semantic closeness between a resume and a
// job description using embedding vectors from the LLM provider.
package similarity

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/sha9506/HireRank/internal/llm"
	"github.com/sha9506/HireRank/internal/types"
)

// Scorer produces a [0,1] similarity score between two texts. Embeddings
// for identical texts are cached for the lifetime of the Scorer, so one
// Scorer should live for a single scoring request.
type Scorer struct {
	embedder llm.Embedder
	cache    map[string][]float32
}

// NewScorer creates a Scorer backed by the given embedder.
func NewScorer(embedder llm.Embedder) *Scorer {
	return &Scorer{
		embedder: embedder,
		cache:    make(map[string][]float32),
	}
}

// Score embeds both texts and returns their cosine similarity rescaled to
// [0,1]. Failures are reported in the result rather than returned, so the
// caller can degrade to taxonomy-only scoring.
func (s *Scorer) Score(ctx context.Context, resumeText, jobText string) types.SimilarityResult {
	if strings.TrimSpace(resumeText) == "" || strings.TrimSpace(jobText) == "" {
		return types.SimilarityResult{Err: fmt.Errorf("similarity requires both texts to be non-empty")}
	}

	resumeVec, err := s.embed(ctx, resumeText)
	if err != nil {
		return types.SimilarityResult{Err: fmt.Errorf("failed to embed resume: %w", err)}
	}
	jobVec, err := s.embed(ctx, jobText)
	if err != nil {
		return types.SimilarityResult{Err: fmt.Errorf("failed to embed job description: %w", err)}
	}

	cos, err := Cosine(resumeVec, jobVec)
	if err != nil {
		return types.SimilarityResult{Err: err}
	}

	return types.SimilarityResult{OK: true, Score: Rescale(cos)}
}

func (s *Scorer) embed(ctx context.Context, text string) ([]float32, error) {
	if vec, ok := s.cache[text]; ok {
		return vec, nil
	}
	vec, err := s.embedder.EmbedText(ctx, text)
	if err != nil {
		return nil, err
	}
	s.cache[text] = vec
	return vec, nil
}

// Cosine returns the cosine similarity of two vectors in [-1,1].
func Cosine(a, b []float32) (float64, error) {
	if len(a) == 0 || len(b) == 0 {
		return 0, fmt.Errorf("cosine similarity of empty vector")
	}
	if len(a) != len(b) {
		return 0, fmt.Errorf("vector length mismatch: %d vs %d", len(a), len(b))
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0, fmt.Errorf("cosine similarity of zero vector")
	}

	cos := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	// Floating point rounding can push the value just outside [-1,1].
	return math.Max(-1, math.Min(1, cos)), nil
}

// Rescale maps a cosine value in [-1,1] onto [0,1].
func Rescale(cos float64) float64 {
	return (cos + 1) / 2
}
