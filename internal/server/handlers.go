package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/jonathan/intern-eval/internal/evaluation"
	"github.com/jonathan/intern-eval/internal/export"
	"github.com/jonathan/intern-eval/internal/prompts"
	"github.com/jonathan/intern-eval/internal/server/middleware"
	"github.com/jonathan/intern-eval/internal/types"
)

// validatable is implemented by every request body type
type validatable interface {
	Validate() error
}

// decodeBody reads a JSON body into dst and validates it. It writes the
// error response itself and reports whether the handler may continue.
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, dst validatable) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if err := dst.Validate(); err != nil {
		s.writeError(w, r, newValidationError(err))
		return false
	}
	return true
}

// writeError maps err to a status. Acquisition failures expose only the
// generic user message; the detail goes to the log.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	body := types.ErrorResponse{Error: err.Error()}

	var failure *evaluation.Failure
	switch {
	case errors.As(err, &failure):
		body.Kind = string(failure.Kind)
	case status == http.StatusBadGateway || status == http.StatusServiceUnavailable:
		body.Error = evaluation.UserMessage
	case status == http.StatusInternalServerError:
		body.Error = "Internal server error"
	}

	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			zap.String("path", r.URL.Path),
			zap.String("request_id", middleware.GetRequestID(r.Context())),
			zap.Error(err))
	}
	s.jsonResponse(w, status, body)
}

func (s *Server) handleGetEvaluation(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.store.Snapshot())
}

// handleGenerate acquires a template and builds the candidate forms.
// The acquisition is not cancelled when the client goes away.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req types.GenerateRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	names := evaluation.ResolveNames(req.CandidateNames, req.CandidateCount)
	if err := s.store.Generate(context.WithoutCancel(r.Context()), req.ReferenceText, names); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, s.store.Snapshot())
}

func (s *Server) handleUpdateScore(w http.ResponseWriter, r *http.Request) {
	candidateID := r.PathValue("candidate_id")
	criterionID := r.PathValue("criterion_id")

	var req types.UpdateScoreRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	updated, err := s.store.UpdateScore(candidateID, criterionID, req.Score)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if !updated {
		s.writeError(w, r, &ErrNotFound{Resource: "criterion", ID: candidateID + "/" + criterionID})
		return
	}

	s.jsonResponse(w, http.StatusOK, s.store.Snapshot())
}

func (s *Server) handleSetRecommendation(w http.ResponseWriter, r *http.Request) {
	candidateID := r.PathValue("candidate_id")

	var req types.RecommendationRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	if !s.store.SetRecommendation(candidateID, req.Text) {
		s.writeError(w, r, &ErrNotFound{Resource: "candidate", ID: candidateID})
		return
	}

	s.jsonResponse(w, http.StatusOK, s.store.Snapshot())
}

func (s *Server) handleReset(w http.ResponseWriter, _ *http.Request) {
	s.store.Reset()
	s.jsonResponse(w, http.StatusOK, s.store.Snapshot())
}

// handleExport downloads the current candidates as CSV, 204 when empty
func (s *Server) handleExport(w http.ResponseWriter, _ *http.Request) {
	content := export.ToCSV(s.store.Snapshot().Candidates, s.exportOpts)
	if content == "" {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", export.MIMEType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.FileName(s.now())))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(content)); err != nil {
		s.logger.Warn("failed to write export", zap.Error(err))
	}
}

func (s *Server) handleSample(w http.ResponseWriter, _ *http.Request) {
	text, err := prompts.Get(prompts.SampleReference)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Sample text unavailable")
		return
	}
	s.jsonResponse(w, http.StatusOK, types.SampleResponse{ReferenceText: text})
}

func (s *Server) handleParseReviews(w http.ResponseWriter, r *http.Request) {
	var req types.ParseReviewsRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	candidates, err := s.parser.ParseReviews(context.WithoutCancel(r.Context()), req.RawText)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, types.ParseReviewsResponse{Candidates: candidates})
}
