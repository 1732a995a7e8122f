package middleware

import (
	"net/http"
	"strconv"

	"github.com/mlorentedev/reword/internal/metrics"
)

// Metrics records request count by method, route, and status code.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		metrics.RequestsTotal.WithLabelValues(r.Method, routeLabel(r.URL.Path), strconv.Itoa(sw.status)).Inc()
	})
}

// routeLabel collapses static asset paths into one label to bound cardinality.
func routeLabel(path string) string {
	switch path {
	case "/rewrite", "/healthz", "/metrics":
		return path
	default:
		return "static"
	}
}
