package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/dd0wney/cluso-hpo/pkg/logging"
	"github.com/dd0wney/cluso-hpo/pkg/query"
)

// Error codes not produced by query.CodeFor.
const (
	codeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	codeUnavailable      = "UNAVAILABLE"
	codeNotFound         = "NOT_FOUND"
	codeInvalidQuery     = "INVALID_QUERY"
)

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Warn("failed to encode response", logging.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, code, message string) {
	s.respondJSON(w, status, ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Code:    code,
	})
}

// respondServiceError maps a query.Service error onto the wire. Internal
// failures are reported without detail.
func (s *Server) respondServiceError(w http.ResponseWriter, err error) {
	s.respondError(w, query.StatusFor(err), query.CodeFor(err), query.PublicMessage(err))
}

// requireGET rejects every method but GET with 405.
func (s *Server) requireGET(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodGet {
		return true
	}
	w.Header().Set("Allow", http.MethodGet)
	s.respondError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "Method not allowed")
	return false
}

// loaded returns the query service, or answers 503 while the ontology is
// still loading.
func (s *Server) loaded(w http.ResponseWriter) (*serviceState, bool) {
	st := s.state.Load()
	if st == nil {
		w.Header().Set("Retry-After", "5")
		s.respondError(w, http.StatusServiceUnavailable, codeUnavailable, "ontology is still loading")
		return nil, false
	}
	return st, true
}

// intParam reads an optional integer query parameter. A present but
// malformed value is an invalid query.
func (s *Server) intParam(w http.ResponseWriter, r *http.Request, name string, def int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, codeInvalidQuery, name+": must be an integer")
		return 0, false
	}
	return v, true
}
