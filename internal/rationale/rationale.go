// Package rationale produces the one-sentence explanation attached to a
// fit score. It prefers a generated sentence and falls back to a fixed
// template keyed by score bracket, which can never fail.
package rationale

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sha9506/HireRank/internal/llm"
	"github.com/sha9506/HireRank/internal/prompts"
	"github.com/sha9506/HireRank/internal/types"
)

// DefaultTimeout bounds the generative attempt.
const DefaultTimeout = 5000 * time.Millisecond

// Brackets holds the score thresholds that select the template wording.
// The defaults are presentation-era constants, configurable pending a
// documented derivation.
type Brackets struct {
	Excellent int
	Good      int
	Moderate  int
}

// DefaultBrackets returns the 80/60/40 thresholds.
func DefaultBrackets() Brackets {
	return Brackets{Excellent: 80, Good: 60, Moderate: 40}
}

// Writer composes rationale sentences. A nil generator skips the generative
// tier and always uses the template.
type Writer struct {
	gen      llm.Generator
	brackets Brackets
	timeout  time.Duration
}

// NewWriter creates a Writer. gen may be nil for template-only operation.
func NewWriter(gen llm.Generator, brackets Brackets, timeout time.Duration) *Writer {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Writer{gen: gen, brackets: brackets, timeout: timeout}
}

// Compose returns a one-sentence rationale for the fit score. The
// generative attempt is best-effort; any failure falls through to the
// template, so Compose itself never fails.
func (w *Writer) Compose(ctx context.Context, fit *types.FitScore, jobTitle string) string {
	if w.gen != nil {
		if sentence, err := w.generate(ctx, fit, jobTitle); err == nil && sentence != "" {
			return sentence
		}
	}
	return Template(fit, w.brackets)
}

func (w *Writer) generate(ctx context.Context, fit *types.FitScore, jobTitle string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	template, err := prompts.Get("rationale.json", "one-line-rationale")
	if err != nil {
		return "", err
	}
	prompt := prompts.Format(template, map[string]string{
		"Score":         strconv.Itoa(fit.Score),
		"JobTitle":      jobTitle,
		"SkillsFound":   strings.Join(fit.SkillsFound, ", "),
		"SkillsMissing": strings.Join(fit.SkillsMissing, ", "),
	})

	sentence, err := w.gen.GenerateContent(ctx, prompt, llm.TierLite)
	if err != nil {
		return "", err
	}
	sentence = strings.TrimSpace(sentence)
	// Guard against the model returning prose blocks instead of a sentence.
	if sentence == "" || strings.Count(sentence, "\n") > 0 {
		return "", fmt.Errorf("generated rationale is not a single sentence")
	}
	return sentence, nil
}

// Template composes the fallback rationale from the score bracket and the
// found/missing counts. Pure string formatting, it cannot fail.
func Template(fit *types.FitScore, brackets Brackets) string {
	var lead string
	switch {
	case fit.Score >= brackets.Excellent:
		lead = "Excellent match"
	case fit.Score >= brackets.Good:
		lead = "Good match"
	case fit.Score >= brackets.Moderate:
		lead = "Moderate match"
	default:
		lead = "Needs review"
	}

	return fmt.Sprintf("%s: scored %d/100 with %d of %d expected skills found and %d missing.",
		lead, fit.Score, len(fit.SkillsFound),
		len(fit.SkillsFound)+len(fit.SkillsMissing), len(fit.SkillsMissing))
}
