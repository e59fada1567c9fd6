package query

import (
	"errors"
	"net/http"

	"github.com/dd0wney/cluso-hpo/pkg/graph"
	"github.com/dd0wney/cluso-hpo/pkg/metrics"
)

// StatusFor maps an error from the service to an HTTP status code.
func StatusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case graph.IsNotFound(err):
		return http.StatusNotFound
	case graph.IsInvalidQuery(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// CodeFor is the machine readable code sent alongside StatusFor.
func CodeFor(err error) string {
	switch StatusFor(err) {
	case http.StatusOK:
		return ""
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusBadRequest:
		return "INVALID_QUERY"
	default:
		return "INTERNAL_ERROR"
	}
}

// PublicMessage is the text safe to show a client. Internal failures are
// never described.
func PublicMessage(err error) string {
	switch StatusFor(err) {
	case http.StatusNotFound:
		return "Node not found"
	case http.StatusBadRequest:
		var qe *graph.QueryError
		if errors.As(err, &qe) && qe.Context != "" {
			return qe.Context
		}
		return "Invalid query"
	case http.StatusOK:
		return ""
	default:
		return "Internal server error"
	}
}

// statusLabel classifies err for the queries_total metric.
func statusLabel(err error) string {
	switch StatusFor(err) {
	case http.StatusOK:
		return metrics.StatusSuccess
	case http.StatusNotFound:
		return metrics.StatusNotFound
	case http.StatusBadRequest:
		return metrics.StatusInvalid
	default:
		return metrics.StatusError
	}
}
