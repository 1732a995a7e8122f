package server

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mlorentedev/reword/internal/adapter"
	"github.com/mlorentedev/reword/internal/handler"
	"github.com/mlorentedev/reword/internal/middleware"
)

// Options carries the per-process settings the routes need.
type Options struct {
	PublicDir       string
	MaxBodyBytes    int64
	UpstreamTimeout time.Duration
	Version         string
}

// SetupMux wires handlers with the full middleware chain.
// Any path not claimed by an API route is served from PublicDir.
func SetupMux(rw adapter.Rewriter, opts Options) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /rewrite", handler.Rewrite(rw, opts.UpstreamTimeout))
	mux.HandleFunc("GET /healthz", handler.Health(rw, opts.Version))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.Handle("/", handler.Static(opts.PublicDir))

	maxBody := opts.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = 1 << 20
	}
	return middleware.Chain(mux, maxBody)
}
