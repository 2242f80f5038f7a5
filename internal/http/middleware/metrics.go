package middleware

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/inletdocs/pdf-insight-api/internal/metrics"
)

// Metrics counts completed requests by method, route pattern and status.
// The chi route pattern is used instead of the raw path to keep the
// label cardinality bounded.
func Metrics(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rw := &responseWriter{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			next.ServeHTTP(rw, r)

			path := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					path = pattern
				}
			}

			m.HTTPRequests.WithLabelValues(
				r.Method,
				path,
				strconv.Itoa(rw.statusCode),
			).Inc()
		})
	}
}
