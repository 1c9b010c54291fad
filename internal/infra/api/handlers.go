package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"ai-video-pipeline/internal/domain"
	"ai-video-pipeline/internal/domain/model"
	"ai-video-pipeline/internal/infra/logging"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, label, message string) {
	writeJSON(w, code, struct {
		Error   string `json:"error"`
		Message string `json:"message,omitempty"`
	}{Error: label, Message: message})
}

func writeValidationError(w http.ResponseWriter, details map[string][]string) {
	writeJSON(w, http.StatusBadRequest, struct {
		Error   string              `json:"error"`
		Details map[string][]string `json:"details"`
	}{Error: "Invalid request", Details: details})
}

// decodePipelineRequest parses and validates the body. The orchestrator is
// never invoked when this returns false.
func (s *Server) decodePipelineRequest(w http.ResponseWriter, r *http.Request) (*model.PipelineRequest, bool) {
	var req model.PipelineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "malformed JSON body")
		return nil, false
	}
	if details := req.FieldErrors(); len(details) > 0 {
		writeValidationError(w, details)
		return nil, false
	}
	return &req, true
}

func (s *Server) handlePipeline(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodePipelineRequest(w, r)
	if !ok {
		return
	}

	ctx := logging.WithProject(r.Context(), req.ProjectName)
	resp, err := s.uc.Run(ctx, req)
	if err != nil {
		logging.With(ctx, s.log).Error().Err(err).Msg("pipeline run failed")
		writeError(w, http.StatusInternalServerError, "Pipeline failed", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePipelineAsync(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodePipelineRequest(w, r)
	if !ok {
		return
	}

	id, err := s.uc.Submit(req)
	if err != nil {
		if errors.Is(err, domain.ErrQueueFull) {
			writeError(w, http.StatusServiceUnavailable, "Pipeline busy", "run queue is full, retry later")
			return
		}
		logging.With(r.Context(), s.log).Error().Err(err).Msg("pipeline submit failed")
		writeError(w, http.StatusInternalServerError, "Pipeline failed", err.Error())
		return
	}
	writeJSON(w, http.StatusAccepted, struct {
		RunID string `json:"runId"`
	}{RunID: id})
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	run, err := s.uc.GetRun(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Not found", "no run with id "+id)
			return
		}
		writeError(w, http.StatusInternalServerError, "Pipeline failed", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, run)
}

func (s *Server) handleStages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Stages []model.PipelineStage `json:"stages"`
	}{Stages: model.CatalogStages()})
}

func (s *Server) handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "malformed JSON body")
		return
	}
	if !s.auth.CheckPassword(body.Password) {
		writeError(w, http.StatusUnauthorized, "Unauthorized", "wrong password")
		return
	}
	token, err := s.auth.Mint(w)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Pipeline failed", "could not mint session")
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Token string `json:"token"`
	}{Token: token})
}

func (s *Server) handleAdminRuns(w http.ResponseWriter, r *http.Request) {
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	runs, err := s.uc.ListRuns(r.Context(), offset, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Pipeline failed", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Runs []*model.PipelineRun `json:"runs"`
	}{Runs: runs})
}

// requireAdmin guards the admin endpoints with the session JWT.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.auth.Enabled() {
			writeError(w, http.StatusForbidden, "Forbidden", "admin auth is not configured")
			return
		}
		if _, err := s.auth.ParseFromRequest(r); err != nil {
			writeError(w, http.StatusUnauthorized, "Unauthorized", "missing or invalid session")
			return
		}
		next.ServeHTTP(w, r)
	})
}
