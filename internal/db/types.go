package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/sha9506/HireRank/internal/types"
)

// Analysis is one stored scoring result.
type Analysis struct {
	ID             uuid.UUID           `json:"id"`
	CandidateName  string              `json:"candidate_name"`
	JobTitle       string              `json:"job_title"`
	JobDescription string              `json:"job_description,omitempty"`
	ResumeFilename string              `json:"resume_filename,omitempty"`
	Skills         []string            `json:"skills"`
	Score          int                 `json:"score"`
	Fit            types.FitScore      `json:"fit"`
	CandidateInfo  types.CandidateInfo `json:"candidate_info"`
	Remarks        string              `json:"remarks"`
	CreatedAt      time.Time           `json:"created_at"`
}

// AnalysisCreateInput carries the fields stored for a new analysis. Score
// is taken from Fit; the column exists for sorting.
type AnalysisCreateInput struct {
	CandidateName  string
	JobTitle       string
	JobDescription string
	ResumeFilename string
	Skills         []string
	Fit            types.FitScore
	CandidateInfo  types.CandidateInfo
}

// Statistics summarizes stored analyses, optionally per job title.
type Statistics struct {
	TotalAnalyses int     `json:"total_analyses"`
	AverageScore  float64 `json:"average_score"`
	HighestScore  int     `json:"highest_score"`
	LowestScore   int     `json:"lowest_score"`
}
