package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/rowminer/pkg/buildinfo"
	"github.com/matzehuels/rowminer/pkg/core/row"
	"github.com/matzehuels/rowminer/pkg/errors"
	rowio "github.com/matzehuels/rowminer/pkg/io"
	"github.com/matzehuels/rowminer/pkg/pipeline"
)

// MissingRequest is the body of POST /v1/missing.
type MissingRequest struct {
	MaxNumber int     `json:"max_number"`
	RowLength int     `json:"row_length"`
	Rows      [][]int `json:"rows,omitempty"`
	Generate  int     `json:"generate,omitempty"`
	Seed      uint64  `json:"seed,omitempty"`
	Limit     int     `json:"limit,omitempty"`
	Store     string  `json:"store,omitempty"`
}

// MissingResponse is the body of a successful POST /v1/missing.
type MissingResponse struct {
	RunID     string         `json:"run_id"`
	Config    string         `json:"config"`
	Observed  int            `json:"observed"`
	Distinct  int            `json:"distinct"`
	Count     int            `json:"count"`
	Missing   [][]int        `json:"missing"`
	Truncated bool           `json:"truncated"`
	CacheHit  bool           `json:"cache_hit"`
	Stats     pipeline.Stats `json:"stats"`
}

// UniverseResponse is the body of GET /v1/universe.
type UniverseResponse struct {
	MaxNumber int    `json:"max_number"`
	RowLength int    `json:"row_length"`
	Size      uint64 `json:"size"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Code  errors.Code `json:"code,omitempty"`
	Error string      `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Get())
}

func (s *Server) handleUniverse(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	n, err := intParam(q.Get("max"), "max")
	if err != nil {
		s.writeError(w, err)
		return
	}
	k, err := intParam(q.Get("length"), "length")
	if err != nil {
		s.writeError(w, err)
		return
	}
	cfg, err := row.NewConfig(n, k)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, UniverseResponse{
		MaxNumber: n,
		RowLength: k,
		Size:      cfg.UniverseSize(),
	})
}

func (s *Server) handleMissing(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req MissingRequest
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode request"))
		return
	}

	opts := pipeline.Options{
		MaxNumber: req.MaxNumber,
		RowLength: req.RowLength,
		Rows:      req.Rows,
		Generate:  req.Generate,
		Seed:      req.Seed,
		Limit:     req.Limit,
		Store:     req.Store,
		Workers:   s.cfg.Workers,
		Logger:    s.logger.With("request_id", middleware.GetReqID(r.Context())),
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		s.writeError(w, err)
		return
	}
	if size := opts.Config().UniverseSize(); size > s.cfg.MaxUniverse {
		s.writeError(w, errors.New(errors.ErrCodeInvalidInput,
			"universe of %s has %d rows, server limit is %d", opts.Config(), size, s.cfg.MaxUniverse))
		return
	}

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, MissingResponse{
		RunID:     res.RunID,
		Config:    res.Config.String(),
		Observed:  res.Observed,
		Distinct:  res.Distinct,
		Count:     len(res.Missing),
		Missing:   rowio.Tuples(res.Missing),
		Truncated: res.Truncated,
		CacheHit:  res.CacheHit,
		Stats:     res.Stats,
	})
}

func intParam(v, name string) (int, error) {
	if v == "" {
		return 0, errors.New(errors.ErrCodeInvalidInput, "missing query parameter %q", name)
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidInput, err, "query parameter %q", name)
	}
	return n, nil
}

// statusFor maps an error to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.IsPrecondition(err):
		return http.StatusBadRequest
	case errors.Is(err, errors.ErrCodeInvalidPath):
		return http.StatusBadRequest
	case errors.Is(err, errors.ErrCodeCanceled), errors.Is(err, errors.ErrCodeTimeout):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= 500 {
		s.logger.Error("request failed", "err", err)
	}
	writeJSON(w, status, ErrorResponse{
		Code:  errors.GetCode(err),
		Error: errors.UserMessage(err),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
