package middleware

import "net/http"

// Chain wraps the handler with the full middleware stack.
// Order: RequestID → Logging → Metrics → MaxBytes → mux
func Chain(handler http.Handler, maxBodyBytes int64) http.Handler {
	h := handler
	h = MaxBytes(maxBodyBytes)(h)
	h = Metrics(h)
	h = Logging(h)
	h = RequestID(h)
	return h
}

// MaxBytes limits the request body to n bytes.
func MaxBytes(n int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, n)
			next.ServeHTTP(w, r)
		})
	}
}
