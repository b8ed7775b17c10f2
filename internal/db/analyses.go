package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Default result limits, mirroring the query parameters the API exposes.
const (
	DefaultRankingsLimit      = 100
	DefaultHistoryLimit       = 100
	DefaultTopPerformersLimit = 3
)

// StoreAnalysis persists a scoring result and returns its ID.
func (db *DB) StoreAnalysis(ctx context.Context, input *AnalysisCreateInput) (uuid.UUID, error) {
	skillsJSON, err := json.Marshal(input.Skills)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal skills: %w", err)
	}
	fitJSON, err := json.Marshal(input.Fit)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal fit score: %w", err)
	}
	infoJSON, err := json.Marshal(input.CandidateInfo)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal candidate info: %w", err)
	}

	var id uuid.UUID
	err = db.pool.QueryRow(ctx,
		`INSERT INTO analyses (candidate_name, job_title, job_description,
		                       resume_filename, skills, score, fit, candidate_info)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id`,
		input.CandidateName, input.JobTitle, input.JobDescription,
		input.ResumeFilename, skillsJSON, input.Fit.Score, fitJSON, infoJSON,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to store analysis: %w", err)
	}
	return id, nil
}

const analysisColumns = `id, candidate_name, job_title, job_description,
	resume_filename, skills, score, fit, candidate_info, remarks, created_at`

// GetAnalysis retrieves one analysis by ID. Returns (nil, nil) when the ID
// does not exist.
func (db *DB) GetAnalysis(ctx context.Context, id uuid.UUID) (*Analysis, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+analysisColumns+` FROM analyses WHERE id = $1`, id)

	analysis, err := scanAnalysis(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}
	return analysis, nil
}

// GetRankings returns analyses sorted by score descending, optionally
// filtered by job title.
func (db *DB) GetRankings(ctx context.Context, jobTitle string, limit int) ([]Analysis, error) {
	if limit <= 0 {
		limit = DefaultRankingsLimit
	}

	var rows pgx.Rows
	var err error
	if jobTitle != "" {
		rows, err = db.pool.Query(ctx,
			`SELECT `+analysisColumns+` FROM analyses
			 WHERE job_title = $1
			 ORDER BY score DESC, created_at DESC
			 LIMIT $2`, jobTitle, limit)
	} else {
		rows, err = db.pool.Query(ctx,
			`SELECT `+analysisColumns+` FROM analyses
			 ORDER BY score DESC, created_at DESC
			 LIMIT $1`, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query rankings: %w", err)
	}
	return collectAnalyses(rows)
}

// GetHistory returns analyses newest first.
func (db *DB) GetHistory(ctx context.Context, limit int) ([]Analysis, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	rows, err := db.pool.Query(ctx,
		`SELECT `+analysisColumns+` FROM analyses
		 ORDER BY created_at DESC
		 LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	return collectAnalyses(rows)
}

// GetTopPerformers returns the highest scoring analyses across all jobs.
func (db *DB) GetTopPerformers(ctx context.Context, limit int) ([]Analysis, error) {
	if limit <= 0 {
		limit = DefaultTopPerformersLimit
	}
	return db.GetRankings(ctx, "", limit)
}

// UpdateRemarks sets the recruiter remarks on an analysis. Returns false
// when the ID does not exist.
func (db *DB) UpdateRemarks(ctx context.Context, id uuid.UUID, remarks string) (bool, error) {
	tag, err := db.pool.Exec(ctx,
		`UPDATE analyses SET remarks = $1 WHERE id = $2`, remarks, id)
	if err != nil {
		return false, fmt.Errorf("failed to update remarks: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// DeleteAnalysis removes an analysis. Returns false when the ID does not
// exist.
func (db *DB) DeleteAnalysis(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := db.pool.Exec(ctx, `DELETE FROM analyses WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete analysis: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// GetStatistics summarizes scores, optionally filtered by job title.
// An empty store yields all-zero statistics, not an error.
func (db *DB) GetStatistics(ctx context.Context, jobTitle string) (*Statistics, error) {
	var stats Statistics
	var err error
	if jobTitle != "" {
		err = db.pool.QueryRow(ctx,
			`SELECT COUNT(*),
			        COALESCE(ROUND(AVG(score), 2), 0),
			        COALESCE(MAX(score), 0),
			        COALESCE(MIN(score), 0)
			 FROM analyses WHERE job_title = $1`, jobTitle,
		).Scan(&stats.TotalAnalyses, &stats.AverageScore, &stats.HighestScore, &stats.LowestScore)
	} else {
		err = db.pool.QueryRow(ctx,
			`SELECT COUNT(*),
			        COALESCE(ROUND(AVG(score), 2), 0),
			        COALESCE(MAX(score), 0),
			        COALESCE(MIN(score), 0)
			 FROM analyses`,
		).Scan(&stats.TotalAnalyses, &stats.AverageScore, &stats.HighestScore, &stats.LowestScore)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to compute statistics: %w", err)
	}
	return &stats, nil
}

func collectAnalyses(rows pgx.Rows) ([]Analysis, error) {
	defer rows.Close()

	var analyses []Analysis
	for rows.Next() {
		analysis, err := scanAnalysis(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan analysis: %w", err)
		}
		analyses = append(analyses, *analysis)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read analyses: %w", err)
	}
	return analyses, nil
}

func scanAnalysis(row pgx.Row) (*Analysis, error) {
	var a Analysis
	var skillsJSON, fitJSON, infoJSON []byte

	err := row.Scan(&a.ID, &a.CandidateName, &a.JobTitle, &a.JobDescription,
		&a.ResumeFilename, &skillsJSON, &a.Score, &fitJSON, &infoJSON,
		&a.Remarks, &a.CreatedAt)
	if err != nil {
		return nil, err
	}

	if skillsJSON != nil {
		_ = json.Unmarshal(skillsJSON, &a.Skills)
	}
	if fitJSON != nil {
		_ = json.Unmarshal(fitJSON, &a.Fit)
	}
	if infoJSON != nil {
		_ = json.Unmarshal(infoJSON, &a.CandidateInfo)
	}

	return &a, nil
}
