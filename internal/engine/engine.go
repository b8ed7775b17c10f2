// Package engine orchestrates the fit scoring pipeline: it fans out to the
// taxonomy matcher, the similarity scorer, and the generative adapter,
// then aggregates whatever signals succeeded into a single FitScore.
package engine

import (
	"context"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sha9506/HireRank/internal/inference"
	"github.com/sha9506/HireRank/internal/llm"
	"github.com/sha9506/HireRank/internal/rationale"
	"github.com/sha9506/HireRank/internal/scoring"
	"github.com/sha9506/HireRank/internal/similarity"
	"github.com/sha9506/HireRank/internal/taxonomy"
	"github.com/sha9506/HireRank/internal/types"
)

// DefaultTimeout bounds one scoring request end to end.
const DefaultTimeout = 5000 * time.Millisecond

// Options configures a scoring engine instance.
type Options struct {
	// Weights is the similarity/taxonomy score split. Zero value means
	// the versioned defaults.
	Weights scoring.Weights
	// DisableGenerative turns the generative adapter off. The default is
	// enabled whenever an AI client is available.
	DisableGenerative bool
	// Timeout bounds one Score call. Zero means DefaultTimeout.
	Timeout time.Duration
	// Brackets selects the rationale template thresholds. Zero value means
	// the 80/60/40 defaults.
	Brackets rationale.Brackets
}

// Engine produces FitScores. It is safe for concurrent use; all per-request
// state lives in Score.
type Engine struct {
	table  *taxonomy.Table
	client llm.Client
	opts   Options
}

// New creates an Engine. client may be nil, in which case the engine runs
// in taxonomy-only mode: no similarity, no generative analysis, template
// rationale.
func New(table *taxonomy.Table, client llm.Client, opts Options) *Engine {
	if opts.Weights == (scoring.Weights{}) {
		opts.Weights = scoring.DefaultWeights()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Brackets == (rationale.Brackets{}) {
		opts.Brackets = rationale.DefaultBrackets()
	}
	return &Engine{table: table, client: client, opts: opts}
}

// Table exposes the engine's taxonomy table, mainly so callers can derive
// expected skills from a job title before building a JobRequirement.
func (e *Engine) Table() *taxonomy.Table {
	return e.table
}

// Score ranks a resume profile against a job requirement. The only failure
// it surfaces is an InputError for a job with no expected skills; every
// signal outage degrades to a lower-fidelity score instead.
func (e *Engine) Score(ctx context.Context, profile types.ResumeProfile, job types.JobRequirement) (*types.FitScore, error) {
	expected := dedupe(job.ExpectedSkills)
	if len(expected) == 0 {
		expected = dedupe(e.table.ExpectedSkillsForTitle(job.Title))
	}
	if len(expected) == 0 {
		return nil, &types.InputError{
			Field:   "expected_skills",
			Message: "job requirement has no expected skills to score against",
		}
	}

	ctx, cancel := context.WithTimeout(ctx, e.opts.Timeout)
	defer cancel()

	tax := e.table.Match(profile.RawText, expected)

	var (
		sim types.SimilarityResult
		gen types.GenerativeResult
	)

	// Both signals are optional; the goroutines record failures in their
	// results rather than returning them, so the group never aborts early.
	g, gctx := errgroup.WithContext(ctx)
	if e.client != nil {
		g.Go(func() error {
			scorer := similarity.NewScorer(e.client)
			sim = scorer.Score(gctx, profile.RawText, jobText(job))
			return nil
		})
	}
	if e.client != nil && !e.opts.DisableGenerative {
		g.Go(func() error {
			adapter := inference.NewAdapter(e.client, inference.Options{Timeout: e.opts.Timeout})
			gen = adapter.Analyze(gctx, inference.Input{
				ResumeText:     profile.RawText,
				JobTitle:       job.Title,
				JobDescription: job.Description,
				ExpectedSkills: expected,
			})
			return nil
		})
	}
	_ = g.Wait()

	fit := scoring.Aggregate(expected, tax, sim, gen, e.opts.Weights)

	var gen4rationale llm.Generator
	if e.client != nil {
		gen4rationale = e.client
	}
	writer := rationale.NewWriter(gen4rationale, e.opts.Brackets, e.opts.Timeout)
	fit.Rationale = writer.Compose(ctx, fit, job.Title)

	return fit, nil
}

// jobText is the text the similarity scorer embeds for the job side.
func jobText(job types.JobRequirement) string {
	if job.Description == "" {
		return job.Title
	}
	return job.Title + "\n" + job.Description
}

// dedupe removes duplicate and blank skills while preserving order.
func dedupe(skills []string) []string {
	seen := make(map[string]struct{}, len(skills))
	var out []string
	for _, skill := range skills {
		key := strings.ToLower(strings.TrimSpace(skill))
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, skill)
	}
	return out
}
