package middleware

import (
	"encoding/json"
	"net/http"
)

// DefaultMaxBodyBytes bounds GraphQL request documents.
const DefaultMaxBodyBytes int64 = 1 << 20

// BodySizeLimit creates middleware that rejects bodies larger than maxBytes.
// A declared Content-Length is checked up front; chunked bodies are capped
// by http.MaxBytesReader and fail on read.
func BodySizeLimit(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > maxBytes {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusRequestEntityTooLarge)
				_ = json.NewEncoder(w).Encode(map[string]any{
					"error":   http.StatusText(http.StatusRequestEntityTooLarge),
					"message": "Request body too large",
					"code":    "BODY_TOO_LARGE",
				})
				return
			}

			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}
