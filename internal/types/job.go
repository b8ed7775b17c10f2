package types

import "github.com/go-playground/validator/v10"

// JobRequirement describes the target job for one scoring request.
// Immutable per request. ExpectedSkills may be supplied explicitly; when
// empty the engine derives it from the title via the taxonomy.
type JobRequirement struct {
	Title          string   `json:"title" validate:"required,min=1"`
	Description    string   `json:"description,omitempty"`
	ExpectedSkills []string `json:"expected_skills,omitempty"`
}

// AnalyzeRequest is the transport-level payload for scoring a resume.
// The resume text arrives pre-extracted; document parsing is the upstream
// extraction collaborator's job.
type AnalyzeRequest struct {
	ResumeText     string   `json:"resume_text" validate:"required,min=50"`
	JobTitle       string   `json:"job_title" validate:"required,min=1"`
	JobDescription string   `json:"job_description,omitempty"`
	JobURL         string   `json:"job_url,omitempty" validate:"omitempty,url"`
	ExpectedSkills []string `json:"expected_skills,omitempty"`
}

// Validate validates the JobRequirement using the validator.
func (j *JobRequirement) Validate() error {
	validate := validator.New()
	return validate.Struct(j)
}

// Validate validates the AnalyzeRequest using the validator.
func (r *AnalyzeRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
