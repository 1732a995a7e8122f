package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// maxErrorBody bounds how much of a failed response is read for its message.
const maxErrorBody = 64 << 10

// apiError is the {"error":{"message":...}} envelope both Anthropic and
// OpenAI-compatible servers return on failure.
type apiError struct {
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// postJSON sends in as a JSON POST to url and decodes a 200 response into out.
// Any other status becomes an error carrying the provider's message when the
// body has one.
func postJSON(ctx context.Context, client *http.Client, url string, header http.Header, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	for k, vs := range header {
		req.Header[k] = vs
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient(client).Do(req)
	if err != nil {
		return fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return statusError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func statusError(resp *http.Response) error {
	var e apiError
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxErrorBody)).Decode(&e); err == nil && e.Error != nil && e.Error.Message != "" {
		return fmt.Errorf("API error: %s", e.Error.Message)
	}
	return fmt.Errorf("unexpected status %d", resp.StatusCode)
}

func httpClient(c *http.Client) *http.Client {
	if c != nil {
		return c
	}
	return http.DefaultClient
}
