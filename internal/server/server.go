// Package server exposes the fit scoring engine and the analyses store over
// HTTP.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/sha9506/HireRank/internal/db"
	"github.com/sha9506/HireRank/internal/engine"
	"github.com/sha9506/HireRank/internal/jobdesc"
	"github.com/sha9506/HireRank/internal/server/ratelimit"
)

// Store is the persistence surface the server needs. *db.DB satisfies it; a
// nil Store runs the server in score-only mode where every persistence
// endpoint returns 503.
type Store interface {
	StoreAnalysis(ctx context.Context, input *db.AnalysisCreateInput) (uuid.UUID, error)
	GetAnalysis(ctx context.Context, id uuid.UUID) (*db.Analysis, error)
	GetRankings(ctx context.Context, jobTitle string, limit int) ([]db.Analysis, error)
	GetHistory(ctx context.Context, limit int) ([]db.Analysis, error)
	GetTopPerformers(ctx context.Context, limit int) ([]db.Analysis, error)
	UpdateRemarks(ctx context.Context, id uuid.UUID, remarks string) (bool, error)
	DeleteAnalysis(ctx context.Context, id uuid.UUID) (bool, error)
	GetStatistics(ctx context.Context, jobTitle string) (*db.Statistics, error)
	Ping(ctx context.Context) error
}

// Server hosts the scoring API.
type Server struct {
	engine  *engine.Engine
	store   Store
	fetcher *jobdesc.Fetcher
	limiter *ratelimit.Limiter
	addr    string
}

// Options configures a Server.
type Options struct {
	// Addr is the listen address, e.g. ":8000".
	Addr string
	// Store persists analyses. Nil disables persistence endpoints.
	Store Store
	// Fetcher retrieves job postings by URL. Nil uses a default fetcher.
	Fetcher *jobdesc.Fetcher
	// RateLimit configures request limiting. Nil loads from the environment.
	RateLimit *ratelimit.Config
}

// New creates a Server around a scoring engine.
func New(eng *engine.Engine, opts Options) *Server {
	if opts.Addr == "" {
		opts.Addr = ":8000"
	}
	if opts.Fetcher == nil {
		opts.Fetcher = jobdesc.NewFetcher(nil)
	}
	rateLimitConfig := opts.RateLimit
	if rateLimitConfig == nil {
		rateLimitConfig = ratelimit.LoadConfig()
	}

	return &Server{
		engine:  eng,
		store:   opts.Store,
		fetcher: opts.Fetcher,
		limiter: ratelimit.NewLimiter(rateLimitConfig),
		addr:    opts.Addr,
	}
}

// Handler builds the full route table with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /analyses", s.handleAnalyze)
	mux.HandleFunc("GET /analyses/{id}", s.handleGetAnalysis)
	mux.HandleFunc("DELETE /analyses/{id}", s.handleDeleteAnalysis)
	mux.HandleFunc("PATCH /analyses/{id}/remarks", s.handleUpdateRemarks)
	mux.HandleFunc("GET /rankings", s.handleRankings)
	mux.HandleFunc("GET /history", s.handleHistory)
	mux.HandleFunc("GET /top-performers", s.handleTopPerformers)
	mux.HandleFunc("GET /statistics", s.handleStatistics)

	return s.withRateLimit(s.withLogging(s.withCORS(mux)))
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully.
func (s *Server) Start() error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("listening on %s", s.addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-stop:
		log.Printf("received %s, shutting down", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s.limiter.Stop()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}

// withCORS adds permissive CORS headers and answers preflight requests.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withLogging logs each request with its duration.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s (%s)", r.Method, r.URL.Path, time.Since(start))
	})
}

// withRateLimit enforces per-client token bucket limits.
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := clientIP(r)
		allowed, info := s.limiter.Allow(clientID, r.URL.Path, r.Method)
		if info.Limit > 0 {
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		}
		if !allowed {
			if info.RetryAfter > 0 {
				w.Header().Set("Retry-After", strconv.Itoa(int(info.RetryAfter.Seconds())+1))
			}
			errorResponse(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP resolves the client address, honoring X-Forwarded-For from
// proxies.
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return forwarded
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// jsonResponse writes a JSON body with the given status.
func jsonResponse(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

// errorResponse writes a JSON error body.
func errorResponse(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"error": message})
}

// handleError maps an error to its HTTP status and writes it. Internal
// errors are logged and masked.
func handleError(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status == http.StatusInternalServerError {
		log.Printf("internal error: %v", err)
		errorResponse(w, status, "internal server error")
		return
	}
	errorResponse(w, status, err.Error())
}
