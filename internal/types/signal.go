package types

// TaxonomyResult is the deterministic keyword-matching signal. It has no
// failure mode: absence of a skill is not an error, so OK is always true.
type TaxonomyResult struct {
	OK         bool                `json:"ok"`
	Found      []string            `json:"found"`
	Missing    []string            `json:"missing"`
	Categories map[string]Category `json:"categories"` // expected skill -> category
	Ratio      float64             `json:"ratio"`      // matched expected / total expected, in [0,1]
}

// SimilarityResult is the semantic embedding closeness signal.
// A failed embedding call yields OK=false and Score 0.
type SimilarityResult struct {
	OK    bool    `json:"ok"`
	Score float64 `json:"score"` // in [0,1]
	Err   error   `json:"-"`
}

// GenerativeResult is the role-aware signal from the generative capability.
// Categories are role-adaptive and need not come from the fixed taxonomy set.
type GenerativeResult struct {
	OK          bool                `json:"ok"`
	Matched     []string            `json:"matched"`
	Missing     []string            `json:"missing"`
	MatchedCats map[string][]string `json:"matched_categories"` // category -> matched skills
	MissingCats map[string][]string `json:"missing_categories"` // category -> missing skills
	MatchedRole string              `json:"matched_role"`
	Confidence  string              `json:"confidence"` // high / medium / low
	Err         error               `json:"-"`
}
