// Package types provides type definitions for structured data used throughout the HireRank system.
package types

// Category is a skill taxonomy bucket. The fixed set below applies whenever
// categorization comes from the taxonomy matcher; generative categorization
// is role-adaptive and may use names outside this set.
type Category string

// Fixed taxonomy categories. CategoryOther is the reserved bucket for skills
// that no taxonomy entry claims; skills are never silently dropped.
const (
	CategoryFrontend       Category = "frontend"
	CategoryBackend        Category = "backend"
	CategoryDatabase       Category = "database"
	CategoryInfrastructure Category = "infrastructure"
	CategoryDomainSpecific Category = "domain-specific"
	CategorySoftSkill      Category = "soft-skill"
	CategoryOther          Category = "other"
)

// Provenance identifies which signal source produced the canonical
// categorization in a FitScore. It is all-or-nothing per request: the
// taxonomy and generative category schemes are never blended.
type Provenance string

// Provenance values.
const (
	ProvenanceTaxonomy   Provenance = "taxonomy"
	ProvenanceGenerative Provenance = "generative"
)

// CategorySkills holds the found and missing skills for one category bucket.
type CategorySkills struct {
	Found   []string `json:"found"`
	Missing []string `json:"missing"`
}

// FitScore is the aggregated scoring result and the engine's sole externally
// visible artifact. It is created fresh per request and never updated.
type FitScore struct {
	// Score is the final fitness score in [0,100].
	Score int `json:"score"`
	// SkillsFound and SkillsMissing partition the expected skill set:
	// their intersection is empty and their union equals the expected skills.
	SkillsFound   []string `json:"skills_found"`
	SkillsMissing []string `json:"skills_missing"`
	// Breakdown maps each category to its found/missing skills. It partitions
	// SkillsFound+SkillsMissing with no duplicates and no drops.
	Breakdown map[string]CategorySkills `json:"breakdown"`
	// Provenance records whether Breakdown came from the taxonomy matcher or
	// the generative adapter.
	Provenance Provenance `json:"provenance"`
	// MatchedRole is the role the generative adapter resolved the job title
	// to, when available.
	MatchedRole string `json:"matched_role,omitempty"`
	// SkillRatio is the taxonomy match ratio (matched expected / total
	// expected) that fed the score.
	SkillRatio float64 `json:"skill_ratio"`
	// Similarity is the semantic similarity sub-score in [0,1], zero when the
	// embedding capability was unavailable.
	Similarity float64 `json:"similarity"`
	// SimilarityOK reports whether the similarity signal contributed.
	SimilarityOK bool `json:"similarity_ok"`
	// WeightsVersion identifies the scoring weight configuration used.
	WeightsVersion string `json:"weights_version"`
	// Rationale is a short human-readable explanation of the score.
	Rationale string `json:"rationale"`
}
