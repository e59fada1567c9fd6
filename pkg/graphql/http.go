package graphql

import (
	"encoding/json"
	"net/http"

	"github.com/graphql-go/graphql"

	"github.com/dd0wney/cluso-hpo/pkg/logging"
	"github.com/dd0wney/cluso-hpo/pkg/metrics"
	"github.com/dd0wney/cluso-hpo/pkg/query"
)

// Response is the GraphQL wire envelope.
type Response struct {
	Data   any     `json:"data,omitempty"`
	Errors []Error `json:"errors,omitempty"`
}

// Error is one entry of Response.Errors.
type Error struct {
	Message    string         `json:"message"`
	Path       []any          `json:"path,omitempty"`
	Extensions map[string]any `json:"extensions,omitempty"`
}

// HandlerOptions configures a Handler. Zero values are usable.
type HandlerOptions struct {
	MaxDepth int
	Metrics  *metrics.Registry
	Logger   logging.Logger
}

// Handler serves POST /graphql.
type Handler struct {
	schema   graphql.Schema
	maxDepth int
	metrics  *metrics.Registry
	logger   logging.Logger
}

// NewHandler builds the schema over svc and wraps it for HTTP.
func NewHandler(svc *query.Service, opts HandlerOptions) (*Handler, error) {
	schema, err := NewSchema(svc)
	if err != nil {
		return nil, err
	}
	if opts.MaxDepth == 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewNopLogger()
	}
	return &Handler{
		schema:   schema,
		maxDepth: opts.MaxDepth,
		metrics:  opts.Metrics,
		logger:   opts.Logger.With(logging.Component("graphql")),
	}, nil
}

// Schema returns the executable schema.
func (h *Handler) Schema() graphql.Schema {
	return h.schema
}

// ServeHTTP handles HTTP requests for GraphQL queries. Resolver failures
// are reported in the errors array with status 200, as GraphQL clients
// expect; only transport problems use HTTP status codes.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeJSON(w, http.StatusMethodNotAllowed, Response{Errors: []Error{{Message: "Method not allowed"}}})
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, Response{Errors: []Error{{Message: "Invalid request body"}}})
		return
	}
	if req.Query == "" {
		writeJSON(w, http.StatusBadRequest, Response{Errors: []Error{{Message: "Missing query"}}})
		return
	}

	result := Execute(r.Context(), h.schema, req, h.maxDepth)

	response := Response{Data: result.Data}
	if result.HasErrors() {
		response.Errors = make([]Error, len(result.Errors))
		for i, err := range result.Errors {
			response.Errors[i] = Error{
				Message:    err.Message,
				Path:       err.Path,
				Extensions: err.Extensions,
			}
		}
		if h.metrics != nil {
			h.metrics.GraphQLErrorsTotal.Add(float64(len(result.Errors)))
		}
		h.logger.Debug("graphql errors",
			logging.Count(len(result.Errors)),
			logging.String("first_error", result.Errors[0].Message),
		)
	}

	writeJSON(w, http.StatusOK, response)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
