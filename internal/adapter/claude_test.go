package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestClaudeAdapterRewrite(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/v1/messages" {
			t.Errorf("expected /v1/messages, got %s", r.URL.Path)
		}
		if got := r.Header.Get("x-api-key"); got != "sk-test" {
			t.Errorf("x-api-key: got %q, want %q", got, "sk-test")
		}
		if got := r.Header.Get("anthropic-version"); got != "2023-06-01" {
			t.Errorf("anthropic-version: got %q, want %q", got, "2023-06-01")
		}

		var req claudeMessagesRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
			return
		}
		if req.System != "Edit for clarity." {
			t.Errorf("system: got %q, want %q", req.System, "Edit for clarity.")
		}
		if req.MaxTokens != 8192 {
			t.Errorf("max_tokens: got %d, want 8192", req.MaxTokens)
		}
		if len(req.Messages) != 1 || req.Messages[0].Role != "user" {
			t.Errorf("messages: got %+v, want one user message", req.Messages)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(claudeMessagesResponse{
			Content: []claudeContentBlock{
				{Type: "text", Text: "Hello "},
				{Type: "tool_use"},
				{Type: "text", Text: "world.\n"},
			},
		})
	}))
	defer srv.Close()

	a := &ClaudeAdapter{
		BaseURL: srv.URL,
		APIKey:  "sk-test",
		Model:   "claude-sonnet-4-5-20250929",
		System:  "Edit for clarity.",
		Client:  &http.Client{Timeout: 5 * time.Second},
	}

	got, err := a.Rewrite(context.Background(), "TEXT:\nhelo wrld")
	if err != nil {
		t.Fatalf("Rewrite: %v", err)
	}
	if got != "Hello world." {
		t.Errorf("got %q, want %q", got, "Hello world.")
	}
}

func TestClaudeAdapterRewriteAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]any{
			"type":  "error",
			"error": map[string]any{"type": "rate_limit_error", "message": "rate limited"},
		})
	}))
	defer srv.Close()

	a := &ClaudeAdapter{BaseURL: srv.URL, APIKey: "sk-test", Model: "m", Client: srv.Client()}

	_, err := a.Rewrite(context.Background(), "hello")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.Error() != "claude: API error: rate limited" {
		t.Errorf("error: got %q", err.Error())
	}
}

func TestClaudeAdapterRewriteUnexpectedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer srv.Close()

	a := &ClaudeAdapter{BaseURL: srv.URL, APIKey: "sk-test", Model: "m", Client: srv.Client()}

	_, err := a.Rewrite(context.Background(), "hello")
	if err == nil || err.Error() != "claude: unexpected status 502" {
		t.Errorf("error: got %v, want %q", err, "claude: unexpected status 502")
	}
}

func TestClaudeAdapterMaxTokens(t *testing.T) {
	var got int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req claudeMessagesRequest
		json.NewDecoder(r.Body).Decode(&req)
		got = req.MaxTokens
		json.NewEncoder(w).Encode(claudeMessagesResponse{Content: []claudeContentBlock{{Type: "text", Text: "ok"}}})
	}))
	defer srv.Close()

	a := &ClaudeAdapter{BaseURL: srv.URL + "/", APIKey: "k", Model: "m", MaxTokens: 1024, Client: srv.Client()}
	if _, err := a.Rewrite(context.Background(), "hello"); err != nil {
		t.Fatalf("Rewrite: %v", err)
	}
	if got != 1024 {
		t.Errorf("max_tokens: got %d, want 1024", got)
	}
}

func TestClaudeAdapterAvailable(t *testing.T) {
	ok, reason := (&ClaudeAdapter{}).Available(context.Background())
	if ok || reason != "no API key" {
		t.Errorf("without key: got (%v, %q), want (false, %q)", ok, reason, "no API key")
	}
	if ok, _ := (&ClaudeAdapter{APIKey: "k"}).Available(context.Background()); !ok {
		t.Error("expected available with API key")
	}
}

func TestClaudeAdapterName(t *testing.T) {
	a := &ClaudeAdapter{Model: "claude-sonnet-4-5-20250929"}
	if a.Name() != "Claude (claude-sonnet-4-5-20250929)" {
		t.Errorf("got %q", a.Name())
	}
}
