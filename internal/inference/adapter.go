// Package inference adapts the generative AI capability into a skill
// analysis signal: given a resume and job context, it asks the model which
// expected skills the candidate demonstrates and how they categorize.
package inference

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/sha9506/HireRank/internal/llm"
	"github.com/sha9506/HireRank/internal/prompts"
	"github.com/sha9506/HireRank/internal/schemas"
	"github.com/sha9506/HireRank/internal/types"
)

// DefaultTimeout bounds a single analysis call, including the retry.
const DefaultTimeout = 5000 * time.Millisecond

// responseSchema validates the model's JSON contract before unmarshaling.
// Anything that fails here is treated as a full signal failure.
const responseSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["matched_role", "skill_match", "skill_missing"],
	"properties": {
		"matched_role": {"type": "string"},
		"role_confidence": {"type": "string"},
		"skill_match": {
			"type": "object",
			"additionalProperties": {"type": "array", "items": {"type": "string"}}
		},
		"skill_missing": {
			"type": "object",
			"additionalProperties": {"type": "array", "items": {"type": "string"}}
		}
	}
}`

// Input carries the resume and job context for one analysis call.
type Input struct {
	ResumeText     string
	JobTitle       string
	JobDescription string
	ExpectedSkills []string
}

// Options configures the adapter.
type Options struct {
	// Timeout bounds the whole analysis call. Zero means DefaultTimeout.
	Timeout time.Duration
	// Tier selects the model tier. Empty means llm.TierStandard.
	Tier llm.ModelTier
}

// Adapter turns generative model calls into GenerativeResult signals.
type Adapter struct {
	gen  llm.Generator
	opts Options
}

// NewAdapter creates an Adapter over the given generator.
func NewAdapter(gen llm.Generator, opts Options) *Adapter {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Tier == "" {
		opts.Tier = llm.TierStandard
	}
	return &Adapter{gen: gen, opts: opts}
}

// analysisResponse mirrors the JSON contract the prompt demands.
type analysisResponse struct {
	MatchedRole    string              `json:"matched_role"`
	RoleConfidence string              `json:"role_confidence"`
	SkillMatch     map[string][]string `json:"skill_match"`
	SkillMissing   map[string][]string `json:"skill_missing"`
}

// Analyze runs one generative analysis. Failures of any kind (API error,
// timeout, malformed or schema-violating JSON) are reported in the result
// with OK=false so the engine can degrade to taxonomy-only scoring.
func (a *Adapter) Analyze(ctx context.Context, in Input) types.GenerativeResult {
	ctx, cancel := context.WithTimeout(ctx, a.opts.Timeout)
	defer cancel()

	prompt, err := buildPrompt(in)
	if err != nil {
		return types.GenerativeResult{Err: err}
	}

	responseText, err := a.generateWithRetry(ctx, prompt)
	if err != nil {
		return types.GenerativeResult{Err: &APICallError{
			Message: "failed to generate analysis",
			Cause:   err,
		}}
	}

	return parseResponse(responseText)
}

// generateWithRetry calls the model, retrying exactly once when the first
// attempt fails with a transient network error.
func (a *Adapter) generateWithRetry(ctx context.Context, prompt string) (string, error) {
	responseText, err := a.gen.GenerateJSON(ctx, prompt, a.opts.Tier)
	if err == nil {
		return responseText, nil
	}
	if !isTransient(err) || ctx.Err() != nil {
		return "", err
	}
	return a.gen.GenerateJSON(ctx, prompt, a.opts.Tier)
}

func buildPrompt(in Input) (string, error) {
	template, err := prompts.Get("analysis.json", "analyze-fit")
	if err != nil {
		return "", err
	}
	return prompts.Format(template, map[string]string{
		"ResumeText":     in.ResumeText,
		"JobTitle":       in.JobTitle,
		"JobDescription": in.JobDescription,
		"ExpectedSkills": strings.Join(in.ExpectedSkills, ", "),
	}), nil
}

func parseResponse(responseText string) types.GenerativeResult {
	cleaned := llm.CleanJSONBlock(responseText)

	if err := schemas.ValidateJSONString(responseSchema, cleaned); err != nil {
		return types.GenerativeResult{Err: &ParseError{
			Message: "response violates analysis schema",
			Cause:   err,
		}}
	}

	var resp analysisResponse
	if err := json.Unmarshal([]byte(cleaned), &resp); err != nil {
		return types.GenerativeResult{Err: &ParseError{
			Message: "response is not valid JSON",
			Cause:   err,
		}}
	}

	confidence := strings.ToLower(strings.TrimSpace(resp.RoleConfidence))
	switch confidence {
	case "high", "medium", "low":
	default:
		confidence = "low"
	}

	matchedCats := normalizeCategories(resp.SkillMatch)
	missingCats := normalizeCategories(resp.SkillMissing)

	return types.GenerativeResult{
		OK:          true,
		Matched:     flatten(matchedCats),
		Missing:     flatten(missingCats),
		MatchedCats: matchedCats,
		MissingCats: missingCats,
		MatchedRole: resp.MatchedRole,
		Confidence:  confidence,
	}
}

// normalizeCategories maps the wire category names onto the canonical ones
// and drops empty buckets. Unknown category names are kept as-is: the
// generative scheme is role-adaptive.
func normalizeCategories(cats map[string][]string) map[string][]string {
	out := make(map[string][]string, len(cats))
	for name, skills := range cats {
		if len(skills) == 0 {
			continue
		}
		canonical := strings.ToLower(strings.TrimSpace(name))
		if canonical == "infra" {
			canonical = string(types.CategoryInfrastructure)
		}
		out[canonical] = append(out[canonical], skills...)
	}
	return out
}

// flatten collapses a category map into one deduplicated skill list, sorted
// for deterministic output.
func flatten(cats map[string][]string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, skills := range cats {
		for _, skill := range skills {
			key := strings.ToLower(skill)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, skill)
		}
	}
	sort.Strings(out)
	return out
}
