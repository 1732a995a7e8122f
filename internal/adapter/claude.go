package adapter

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

const (
	claudeDefaultBaseURL   = "https://api.anthropic.com"
	claudeAPIVersion       = "2023-06-01"
	claudeDefaultMaxTokens = 8192
)

// ClaudeAdapter sends rewrites to the Anthropic Messages API.
// MaxTokens caps the reply length; zero means 8192.
type ClaudeAdapter struct {
	BaseURL   string
	APIKey    string
	Model     string
	System    string
	MaxTokens int
	Client    *http.Client
}

type claudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type claudeMessagesRequest struct {
	Model     string          `json:"model"`
	System    string          `json:"system,omitempty"`
	Messages  []claudeMessage `json:"messages"`
	MaxTokens int             `json:"max_tokens"`
}

type claudeContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type claudeMessagesResponse struct {
	Content []claudeContentBlock `json:"content"`
}

func (c *ClaudeAdapter) Name() string {
	return fmt.Sprintf("Claude (%s)", c.Model)
}

func (c *ClaudeAdapter) Rewrite(ctx context.Context, prompt string) (string, error) {
	h := http.Header{}
	h.Set("x-api-key", c.APIKey)
	h.Set("anthropic-version", claudeAPIVersion)

	var resp claudeMessagesResponse
	err := postJSON(ctx, c.Client, c.endpoint(), h, claudeMessagesRequest{
		Model:     c.Model,
		System:    c.System,
		Messages:  []claudeMessage{{Role: "user", Content: prompt}},
		MaxTokens: c.maxTokens(),
	}, &resp)
	if err != nil {
		return "", fmt.Errorf("claude: %w", err)
	}

	var b strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	return strings.TrimSpace(b.String()), nil
}

// Available only checks for a credential; the Messages API has no free probe.
func (c *ClaudeAdapter) Available(context.Context) (bool, string) {
	if c.APIKey == "" {
		return false, "no API key"
	}
	return true, ""
}

func (c *ClaudeAdapter) endpoint() string {
	base := c.BaseURL
	if base == "" {
		base = claudeDefaultBaseURL
	}
	return strings.TrimRight(base, "/") + "/v1/messages"
}

func (c *ClaudeAdapter) maxTokens() int {
	if c.MaxTokens > 0 {
		return c.MaxTokens
	}
	return claudeDefaultMaxTokens
}
