// Package server provides the HTTP REST API over the evaluation store.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/intern-eval/internal/acquisition"
	"github.com/jonathan/intern-eval/internal/evaluation"
	"github.com/jonathan/intern-eval/internal/export"
	"github.com/jonathan/intern-eval/internal/server/middleware"
	"github.com/jonathan/intern-eval/internal/server/ratelimit"
	"github.com/jonathan/intern-eval/internal/types"
)

// maxBodyBytes bounds request bodies; reference texts are plain notes
const maxBodyBytes = 1 << 20

// EvaluationStore is the subset of *evaluation.Store the API uses
type EvaluationStore interface {
	Snapshot() evaluation.State
	Generate(ctx context.Context, referenceText string, names []string) error
	UpdateScore(candidateID, criterionID string, score int) (bool, error)
	SetRecommendation(candidateID, text string) bool
	Reset()
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	store       EvaluationStore
	parser      acquisition.ReviewParser
	logger      *zap.Logger
	rateLimiter *ratelimit.Limiter
	exportOpts  export.Options
	now         func() time.Time
}

// Config holds server configuration
type Config struct {
	Port           int
	AILimitPerHour int
	Export         export.Options
}

// New creates a new server instance
func New(cfg Config, store EvaluationStore, parser acquisition.ReviewParser, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		store:       store,
		parser:      parser,
		logger:      logger,
		rateLimiter: ratelimit.NewLimiter(ratelimit.LoadConfig(cfg.AILimitPerHour)),
		exportOpts:  cfg.Export,
		now:         time.Now,
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // generation waits on the AI service
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler returns the routed handler wrapped in middleware
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	mux.HandleFunc("GET /evaluation", s.handleGetEvaluation)
	mux.HandleFunc("POST /evaluation/generate", s.handleGenerate)
	mux.HandleFunc("PUT /evaluation/candidates/{candidate_id}/criteria/{criterion_id}/score", s.handleUpdateScore)
	mux.HandleFunc("PUT /evaluation/candidates/{candidate_id}/recommendation", s.handleSetRecommendation)
	mux.HandleFunc("POST /evaluation/reset", s.handleReset)
	mux.HandleFunc("GET /evaluation/export", s.handleExport)
	mux.HandleFunc("GET /evaluation/sample", s.handleSample)

	mux.HandleFunc("POST /reviews/parse", s.handleParseReviews)

	return middleware.RequestID(
		middleware.Logging(s.logger)(
			s.withCORS(s.withRateLimit(mux)),
		),
	)
}

// Start listens until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	defer s.rateLimiter.Stop()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+middleware.RequestIDHeader)
		w.Header().Set("Access-Control-Expose-Headers", "Content-Disposition, "+middleware.RequestIDHeader)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit rejects requests over the client's budget with 429
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(clientID(r), r.URL.Path, r.Method)
		if info.Limit > 0 {
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
		}
		if !allowed {
			s.rateLimitResponse(w, r, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientID is the remote IP; X-Forwarded-For is not trusted
func clientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	retryAfter := int(info.RetryAfter.Seconds())
	if retryAfter > 0 {
		w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
	}

	s.logger.Warn("rate limit exceeded",
		zap.String("path", r.URL.Path),
		zap.String("client", clientID(r)),
		zap.Int("limit", info.Limit),
		zap.String("request_id", middleware.GetRequestID(r.Context())))

	s.jsonResponse(w, http.StatusTooManyRequests, types.RateLimitResponse{
		Error:      "rate_limit_exceeded",
		Message:    "Rate limit exceeded. Please try again later.",
		Limit:      info.Limit,
		RetryAfter: retryAfter,
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Warn("failed to encode JSON response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, types.ErrorResponse{Error: message})
}
