package types

// SkillMention is a single detected occurrence of a taxonomy skill in resume
// text, recording where the match was found.
type SkillMention struct {
	Skill string `json:"skill"` // canonical skill name
	Start int    `json:"start"` // byte offset of the match in RawText
	End   int    `json:"end"`
}

// CandidateInfo holds optional structured fields extracted from resume text
// by the upstream extraction collaborator.
type CandidateInfo struct {
	Name            string   `json:"name,omitempty"`
	Email           string   `json:"email,omitempty"`
	Phone           string   `json:"phone,omitempty"`
	Education       []string `json:"education,omitempty"`
	ExperienceYears float64  `json:"experience_years,omitempty"`
}

// ResumeProfile is the extracted candidate signal for one scoring request.
// It is owned exclusively by that request and never mutated after creation.
type ResumeProfile struct {
	RawText  string         `json:"raw_text"`
	Skills   []string       `json:"skills"`
	Mentions []SkillMention `json:"mentions,omitempty"`
	Info     CandidateInfo  `json:"info"`
}
