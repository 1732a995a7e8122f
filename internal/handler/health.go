package handler

import (
	"net/http"

	"github.com/mlorentedev/reword/internal/adapter"
	"github.com/mlorentedev/reword/internal/metrics"
)

type adapterStatus struct {
	Name      string `json:"name"`
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

type healthResponse struct {
	Status  string        `json:"status"`
	Version string        `json:"version"`
	Adapter adapterStatus `json:"adapter"`
}

// Health reports process liveness and whether the model adapter looks usable.
// The process is "ok" even when the adapter is not; requests would still be answered.
func Health(rw adapter.Rewriter, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ok, reason := rw.Available(r.Context())
		s := adapterStatus{Name: rw.Name(), Available: ok}
		gauge := 1.0
		if !ok {
			s.Reason = reason
			gauge = 0
		}
		metrics.AdapterAvailable.WithLabelValues(s.Name).Set(gauge)

		writeJSON(w, http.StatusOK, healthResponse{
			Status:  "ok",
			Version: version,
			Adapter: s,
		})
	}
}
