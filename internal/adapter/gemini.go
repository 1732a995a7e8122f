package adapter

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// contentGenerator is the slice of *genai.GenerativeModel the adapter uses.
type contentGenerator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// GeminiAdapter calls the Gemini API through the official Go SDK.
type GeminiAdapter struct {
	model  string
	apiKey string
	client *genai.Client
	gen    contentGenerator
}

// NewGeminiAdapter builds a client bound to one model and system instruction.
// Extra options are passed to genai.NewClient after the API key.
func NewGeminiAdapter(ctx context.Context, apiKey, model, systemInstruction string, opts ...option.ClientOption) (*GeminiAdapter, error) {
	if apiKey == "" {
		return nil, errors.New("gemini: missing API key")
	}
	if model == "" {
		return nil, errors.New("gemini: missing model")
	}

	client, err := genai.NewClient(ctx, append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}

	gm := client.GenerativeModel(model)
	if systemInstruction != "" {
		gm.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(systemInstruction)}}
	}

	return &GeminiAdapter{
		model:  model,
		apiKey: apiKey,
		client: client,
		gen:    gm,
	}, nil
}

func (g *GeminiAdapter) Name() string {
	return fmt.Sprintf("Gemini (%s)", g.model)
}

// Rewrite sends prompt as a single user-role turn and returns the text of the first candidate.
func (g *GeminiAdapter) Rewrite(ctx context.Context, prompt string) (string, error) {
	resp, err := g.gen.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	return strings.TrimSpace(responseText(resp)), nil
}

func (g *GeminiAdapter) Available(context.Context) (bool, string) {
	if g.apiKey == "" {
		return false, "no API key"
	}
	return true, ""
}

// Close releases the underlying SDK connections.
func (g *GeminiAdapter) Close() error {
	if g.client == nil {
		return nil
	}
	return g.client.Close()
}

// responseText concatenates the text parts of the first candidate.
// A response without candidates yields "".
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	c := resp.Candidates[0]
	if c == nil || c.Content == nil {
		return ""
	}

	var b strings.Builder
	for _, p := range c.Content.Parts {
		if t, ok := p.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	return b.String()
}
