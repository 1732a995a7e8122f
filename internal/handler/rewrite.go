package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/mlorentedev/reword/internal/adapter"
	"github.com/mlorentedev/reword/internal/metrics"
	"github.com/mlorentedev/reword/internal/middleware"
)

// MaxTextLength is the number of characters forwarded to the model.
const MaxTextLength = 12000

const rewriteDirective = "Rewrite the text below following your editing rules."

var errTrailingData = errors.New("unexpected data after JSON value")

// rewriteRequest keeps text untyped so non-string values are rejected
// the same way as a missing field.
type rewriteRequest struct {
	Text any `json:"text"`
}

type rewriteResponse struct {
	Text string `json:"text"`
}

// Rewrite handles POST /rewrite. A positive timeout bounds the upstream call.
func Rewrite(rw adapter.Rewriter, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := decodeText(r)
		if err != nil {
			var maxBytesErr *http.MaxBytesError
			if errors.As(err, &maxBytesErr) {
				writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
				return
			}
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		text := clampText(v)
		if text == "" {
			writeError(w, http.StatusBadRequest, "text required")
			return
		}
		metrics.InputChars.Observe(float64(utf8.RuneCountInString(text)))

		ctx := r.Context()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		start := time.Now()
		out, err := rw.Rewrite(ctx, buildPrompt(text))
		elapsed := time.Since(start)

		if err != nil {
			metrics.RewriteDuration.WithLabelValues(rw.Name(), metrics.OutcomeError).Observe(elapsed.Seconds())
			slog.Warn("rewrite failed",
				"request_id", middleware.RequestIDFromContext(r.Context()),
				"adapter", rw.Name(),
				"error", err,
			)
			writeError(w, http.StatusInternalServerError, errorMessage(err))
			return
		}

		out = trimText(out)
		if out == "" {
			metrics.RewriteDuration.WithLabelValues(rw.Name(), metrics.OutcomeEmpty).Observe(elapsed.Seconds())
			writeError(w, http.StatusInternalServerError, "empty model response")
			return
		}

		metrics.RewriteDuration.WithLabelValues(rw.Name(), metrics.OutcomeOK).Observe(elapsed.Seconds())
		writeJSON(w, http.StatusOK, rewriteResponse{Text: out})
	}
}

// decodeText returns the text field of a JSON request body. Bodies that are
// not application/json, empty, or not a JSON object yield a nil value.
// Anything but whitespace after the first JSON value is an error.
func decodeText(r *http.Request) (any, error) {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mt != "application/json" {
		return nil, nil
	}

	dec := json.NewDecoder(r.Body)
	var req rewriteRequest
	err = dec.Decode(&req)
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.Is(err, io.EOF):
		return nil, nil
	case err != nil && !errors.As(err, &typeErr):
		return nil, err
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errTrailingData
		}
		return nil, err
	}
	return req.Text, nil
}

// clampText returns the trimmed string truncated to MaxTextLength characters,
// or "" when v is not a string or is blank.
func clampText(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	s = trimText(s)
	if s == "" {
		return ""
	}
	t := truncateRunes(s, MaxTextLength)
	if len(t) < len(s) {
		metrics.ClampedTotal.Inc()
	}
	return t
}

// trimText strips leading and trailing white space, counting a byte order
// mark as white space.
func trimText(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '\ufeff'
	})
}

func truncateRunes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

func buildPrompt(text string) string {
	return rewriteDirective + "\n\nTEXT:\n" + text
}

func errorMessage(err error) string {
	if msg := err.Error(); msg != "" {
		return msg
	}
	return "error"
}
