package adapter

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// probeTimeout bounds the /v1/models check made by Available.
const probeTimeout = 2 * time.Second

// OpenAIAdapter talks to any server exposing /v1/chat/completions
// (llama-server, Ollama, vLLM, OpenAI).
type OpenAIAdapter struct {
	BaseURL   string
	APIKey    string
	Model     string
	System    string
	MaxTokens int
	Client    *http.Client
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens,omitempty"`
}

type chatChoice struct {
	Message chatMessage `json:"message"`
}

type chatResponse struct {
	Choices []chatChoice `json:"choices"`
}

func (o *OpenAIAdapter) Name() string {
	return fmt.Sprintf("OpenAI-compatible (%s)", o.Model)
}

func (o *OpenAIAdapter) Rewrite(ctx context.Context, prompt string) (string, error) {
	var msgs []chatMessage
	if o.System != "" {
		msgs = append(msgs, chatMessage{Role: "system", Content: o.System})
	}
	msgs = append(msgs, chatMessage{Role: "user", Content: prompt})

	var resp chatResponse
	err := postJSON(ctx, o.Client, o.url("/v1/chat/completions"), o.header(), chatRequest{
		Model:     o.Model,
		Messages:  msgs,
		MaxTokens: o.MaxTokens,
	}, &resp)
	if err != nil {
		return "", fmt.Errorf("openai: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai: empty response choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// Available probes GET /v1/models. The probe ends with ctx or after probeTimeout.
func (o *OpenAIAdapter) Available(ctx context.Context) (bool, string) {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.url("/v1/models"), nil)
	if err != nil {
		return false, "invalid base URL"
	}
	req.Header = o.header()

	resp, err := httpClient(o.Client).Do(req)
	if err != nil {
		return false, "model server unreachable"
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return false, fmt.Sprintf("model server returned %d", resp.StatusCode)
	}
	return true, ""
}

func (o *OpenAIAdapter) url(path string) string {
	return strings.TrimSuffix(strings.TrimRight(o.BaseURL, "/"), "/v1") + path
}

func (o *OpenAIAdapter) header() http.Header {
	h := http.Header{}
	if o.APIKey != "" {
		h.Set("Authorization", "Bearer "+o.APIKey)
	}
	return h
}
