package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/sha9506/HireRank/internal/db"
	"github.com/sha9506/HireRank/internal/extraction"
	"github.com/sha9506/HireRank/internal/types"
)

// AnalyzeResponse is the body returned by POST /analyses. ID is set only
// when the result was persisted.
type AnalyzeResponse struct {
	ID            uuid.UUID           `json:"id,omitempty"`
	CandidateInfo types.CandidateInfo `json:"candidate_info"`
	Skills        []string            `json:"skills"`
	Fit           types.FitScore      `json:"fit"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{"status": "ok", "database": "disabled"}
	if s.store != nil {
		status["database"] = "ok"
		if err := s.store.Ping(r.Context()); err != nil {
			status["status"] = "degraded"
			status["database"] = "unreachable"
		}
	}
	jsonResponse(w, http.StatusOK, status)
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req types.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handleError(w, &ValidationError{Message: "invalid JSON body"})
		return
	}
	if err := req.Validate(); err != nil {
		handleError(w, &ValidationError{Message: err.Error()})
		return
	}

	// A job URL substitutes for an inline description.
	if req.JobDescription == "" && req.JobURL != "" {
		description, err := s.fetcher.Fetch(r.Context(), req.JobURL)
		if err != nil {
			handleError(w, err)
			return
		}
		req.JobDescription = description
	}

	profile := extraction.ExtractProfile(s.engine.Table(), req.ResumeText)
	fit, err := s.engine.Score(r.Context(), profile, types.JobRequirement{
		Title:          req.JobTitle,
		Description:    req.JobDescription,
		ExpectedSkills: req.ExpectedSkills,
	})
	if err != nil {
		handleError(w, err)
		return
	}

	resp := AnalyzeResponse{
		CandidateInfo: profile.Info,
		Skills:        profile.Skills,
		Fit:           *fit,
	}

	if s.store != nil {
		id, err := s.store.StoreAnalysis(r.Context(), &db.AnalysisCreateInput{
			CandidateName:  profile.Info.Name,
			JobTitle:       req.JobTitle,
			JobDescription: req.JobDescription,
			Skills:         profile.Skills,
			Fit:            *fit,
			CandidateInfo:  profile.Info,
		})
		if err != nil {
			handleError(w, err)
			return
		}
		resp.ID = id
	}

	jsonResponse(w, http.StatusCreated, resp)
}

func (s *Server) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	id, ok := s.analysisID(w, r)
	if !ok {
		return
	}

	analysis, err := s.requireStore(w)
	if err != nil {
		return
	}
	got, dbErr := analysis.GetAnalysis(r.Context(), id)
	if dbErr != nil {
		handleError(w, dbErr)
		return
	}
	if got == nil {
		handleError(w, &NotFoundError{ID: id})
		return
	}
	jsonResponse(w, http.StatusOK, got)
}

func (s *Server) handleDeleteAnalysis(w http.ResponseWriter, r *http.Request) {
	id, ok := s.analysisID(w, r)
	if !ok {
		return
	}
	store, err := s.requireStore(w)
	if err != nil {
		return
	}

	deleted, dbErr := store.DeleteAnalysis(r.Context(), id)
	if dbErr != nil {
		handleError(w, dbErr)
		return
	}
	if !deleted {
		handleError(w, &NotFoundError{ID: id})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleUpdateRemarks(w http.ResponseWriter, r *http.Request) {
	id, ok := s.analysisID(w, r)
	if !ok {
		return
	}
	store, err := s.requireStore(w)
	if err != nil {
		return
	}

	var body struct {
		Remarks string `json:"remarks"`
	}
	if decodeErr := json.NewDecoder(r.Body).Decode(&body); decodeErr != nil {
		handleError(w, &ValidationError{Field: "remarks", Message: "invalid JSON body"})
		return
	}

	updated, dbErr := store.UpdateRemarks(r.Context(), id, body.Remarks)
	if dbErr != nil {
		handleError(w, dbErr)
		return
	}
	if !updated {
		handleError(w, &NotFoundError{ID: id})
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (s *Server) handleRankings(w http.ResponseWriter, r *http.Request) {
	store, err := s.requireStore(w)
	if err != nil {
		return
	}
	rankings, dbErr := store.GetRankings(r.Context(),
		r.URL.Query().Get("job_title"), queryLimit(r, db.DefaultRankingsLimit))
	if dbErr != nil {
		handleError(w, dbErr)
		return
	}
	jsonResponse(w, http.StatusOK, listBody(rankings))
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	store, err := s.requireStore(w)
	if err != nil {
		return
	}
	history, dbErr := store.GetHistory(r.Context(), queryLimit(r, db.DefaultHistoryLimit))
	if dbErr != nil {
		handleError(w, dbErr)
		return
	}
	jsonResponse(w, http.StatusOK, listBody(history))
}

func (s *Server) handleTopPerformers(w http.ResponseWriter, r *http.Request) {
	store, err := s.requireStore(w)
	if err != nil {
		return
	}
	top, dbErr := store.GetTopPerformers(r.Context(), queryLimit(r, db.DefaultTopPerformersLimit))
	if dbErr != nil {
		handleError(w, dbErr)
		return
	}
	jsonResponse(w, http.StatusOK, listBody(top))
}

func (s *Server) handleStatistics(w http.ResponseWriter, r *http.Request) {
	store, err := s.requireStore(w)
	if err != nil {
		return
	}
	stats, dbErr := store.GetStatistics(r.Context(), r.URL.Query().Get("job_title"))
	if dbErr != nil {
		handleError(w, dbErr)
		return
	}
	jsonResponse(w, http.StatusOK, stats)
}

// requireStore writes a 503 and returns an error when persistence is not
// configured.
func (s *Server) requireStore(w http.ResponseWriter) (Store, error) {
	if s.store == nil {
		err := &NoDatabaseError{}
		handleError(w, err)
		return nil, err
	}
	return s.store, nil
}

// analysisID parses the {id} path value, writing a 400 on failure.
func (s *Server) analysisID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handleError(w, &ValidationError{Field: "id", Message: "must be a UUID"})
		return uuid.Nil, false
	}
	return id, true
}

// queryLimit parses the limit query parameter, falling back to def.
func queryLimit(r *http.Request, def int) int {
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil && limit > 0 {
			return limit
		}
	}
	return def
}

// listBody keeps empty result sets as [] rather than null.
func listBody(analyses []db.Analysis) map[string]any {
	if analyses == nil {
		analyses = []db.Analysis{}
	}
	return map[string]any{
		"results": analyses,
		"count":   len(analyses),
	}
}
