package scoring

import (
	"math"
	"strings"

	"github.com/sha9506/HireRank/internal/types"
)

// Aggregate combines the three signals into a FitScore. The taxonomy result
// is always present; similarity and generative results may be failed, in
// which case the score degrades to the signals that did succeed. The
// returned FitScore has no rationale; callers attach one afterwards.
func Aggregate(expected []string, tax types.TaxonomyResult, sim types.SimilarityResult, gen types.GenerativeResult, weights Weights) *types.FitScore {
	fit := &types.FitScore{
		Score:          computeScore(tax.Ratio, sim, weights),
		SkillRatio:     tax.Ratio,
		Similarity:     sim.Score,
		SimilarityOK:   sim.OK,
		WeightsVersion: weights.Version,
	}

	if gen.OK {
		fit.Provenance = types.ProvenanceGenerative
		fit.MatchedRole = gen.MatchedRole
		fit.SkillsFound, fit.SkillsMissing, fit.Breakdown = generativeBreakdown(expected, gen)
	} else {
		fit.Provenance = types.ProvenanceTaxonomy
		fit.SkillsFound = append([]string(nil), tax.Found...)
		fit.SkillsMissing = append([]string(nil), tax.Missing...)
		fit.Breakdown = taxonomyBreakdown(tax)
	}

	return fit
}

// computeScore applies the weighted combination. When the similarity signal
// failed, the full weight shifts to the taxonomy ratio so optional-signal
// outages never zero out half the score.
func computeScore(ratio float64, sim types.SimilarityResult, weights Weights) int {
	var combined float64
	if sim.OK {
		combined = (weights.SkillRatio*ratio + weights.Similarity*sim.Score) /
			(weights.SkillRatio + weights.Similarity)
	} else {
		combined = ratio
	}

	score := int(math.Round(100 * combined))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// taxonomyBreakdown groups the taxonomy partition by its fixed categories.
func taxonomyBreakdown(tax types.TaxonomyResult) map[string]types.CategorySkills {
	breakdown := make(map[string]types.CategorySkills)

	for _, skill := range tax.Found {
		cat := categoryFor(tax.Categories, skill)
		bucket := breakdown[cat]
		bucket.Found = append(bucket.Found, skill)
		breakdown[cat] = bucket
	}
	for _, skill := range tax.Missing {
		cat := categoryFor(tax.Categories, skill)
		bucket := breakdown[cat]
		bucket.Missing = append(bucket.Missing, skill)
		breakdown[cat] = bucket
	}

	return breakdown
}

func categoryFor(categories map[string]types.Category, skill string) string {
	if cat, ok := categories[skill]; ok && cat != "" {
		return string(cat)
	}
	return string(types.CategoryOther)
}

// generativeBreakdown reconciles the generative signal against the expected
// skill set. Membership in found/missing is decided per expected skill so
// the partition invariant holds even when the model drops or invents
// skills; categorization follows the model's role-adaptive buckets, with
// unlisted skills going to the reserved other bucket.
func generativeBreakdown(expected []string, gen types.GenerativeResult) (found, missing []string, breakdown map[string]types.CategorySkills) {
	matched := toLowerSet(gen.Matched)
	matchedCat := categoryIndex(gen.MatchedCats)
	missingCat := categoryIndex(gen.MissingCats)

	breakdown = make(map[string]types.CategorySkills)
	seen := make(map[string]struct{}, len(expected))

	for _, skill := range expected {
		key := strings.ToLower(strings.TrimSpace(skill))
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		_, isFound := matched[key]
		cat := string(types.CategoryOther)
		if isFound {
			if c, ok := matchedCat[key]; ok {
				cat = c
			}
			found = append(found, skill)
			bucket := breakdown[cat]
			bucket.Found = append(bucket.Found, skill)
			breakdown[cat] = bucket
		} else {
			if c, ok := missingCat[key]; ok {
				cat = c
			}
			missing = append(missing, skill)
			bucket := breakdown[cat]
			bucket.Missing = append(bucket.Missing, skill)
			breakdown[cat] = bucket
		}
	}

	return found, missing, breakdown
}

func toLowerSet(skills []string) map[string]struct{} {
	set := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		set[strings.ToLower(strings.TrimSpace(s))] = struct{}{}
	}
	return set
}

// categoryIndex inverts a category -> skills map into skill -> category.
func categoryIndex(cats map[string][]string) map[string]string {
	index := make(map[string]string)
	for cat, skills := range cats {
		for _, s := range skills {
			index[strings.ToLower(strings.TrimSpace(s))] = cat
		}
	}
	return index
}
