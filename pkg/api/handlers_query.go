package api

import (
	"net/http"
	"strings"

	"github.com/dd0wney/cluso-hpo/pkg/query"
)

// Suffixes selecting the neighbour endpoints under /api/node/.
const (
	parentsSuffix  = "/parents"
	childrenSuffix = "/children"
)

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if !s.requireGET(w, r) {
		return
	}
	st, ok := s.loaded(w)
	if !ok {
		return
	}
	s.respondJSON(w, http.StatusOK, st.svc.Stats())
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if !s.requireGET(w, r) {
		return
	}
	st, ok := s.loaded(w)
	if !ok {
		return
	}

	page, ok := s.intParam(w, r, "page", 1)
	if !ok {
		return
	}
	pageSize, ok := s.intParam(w, r, "page_size", s.cfg.Query.DefaultPageSize)
	if !ok {
		return
	}

	resp, err := st.svc.Search(query.SearchRequest{
		Query:    r.URL.Query().Get("q"),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, resp)
}

// handleNode serves /api/node/{id}, /api/node/{id}/parents and
// /api/node/{id}/children. The id may contain slashes, so the suffix is
// split off the remainder of the path.
func (s *Server) handleNode(w http.ResponseWriter, r *http.Request) {
	if !s.requireGET(w, r) {
		return
	}
	st, ok := s.loaded(w)
	if !ok {
		return
	}

	rest := r.PathValue("rest")
	switch {
	case strings.HasSuffix(rest, parentsSuffix):
		resp, err := st.svc.Parents(strings.TrimSuffix(rest, parentsSuffix))
		if err != nil {
			s.respondServiceError(w, err)
			return
		}
		s.respondJSON(w, http.StatusOK, resp)

	case strings.HasSuffix(rest, childrenSuffix):
		resp, err := st.svc.Children(strings.TrimSuffix(rest, childrenSuffix))
		if err != nil {
			s.respondServiceError(w, err)
			return
		}
		s.respondJSON(w, http.StatusOK, resp)

	default:
		term, err := st.svc.Term(rest)
		if err != nil {
			s.respondServiceError(w, err)
			return
		}
		s.respondJSON(w, http.StatusOK, term)
	}
}

func (s *Server) handleSubgraph(w http.ResponseWriter, r *http.Request) {
	if !s.requireGET(w, r) {
		return
	}
	st, ok := s.loaded(w)
	if !ok {
		return
	}

	depth, ok := s.intParam(w, r, "depth", s.cfg.Query.DefaultDepth)
	if !ok {
		return
	}

	resp, err := st.svc.Subgraph(query.SubgraphRequest{
		ID:     r.PathValue("rest"),
		Depth:  depth,
		Layout: r.URL.Query().Get("layout"),
	})
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGraphQL(w http.ResponseWriter, r *http.Request) {
	st, ok := s.loaded(w)
	if !ok {
		return
	}
	st.graphql.ServeHTTP(w, r)
}

func (s *Server) handleDocs(w http.ResponseWriter, r *http.Request) {
	if !s.requireGET(w, r) {
		return
	}
	s.respondJSON(w, http.StatusOK, DocsResponse{
		Service: "hpo",
		Version: s.version,
		Routes:  s.routes(),
	})
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.respondError(w, http.StatusNotFound, codeNotFound, "Not found")
}
