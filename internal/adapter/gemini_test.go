package adapter

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/generative-ai-go/genai"
)

type fakeGenerator struct {
	resp  *genai.GenerateContentResponse
	err   error
	calls int
	parts []genai.Part
}

func (f *fakeGenerator) GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error) {
	f.calls++
	f.parts = parts
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return f.resp, f.err
}

func candidate(parts ...genai.Part) *genai.Candidate {
	return &genai.Candidate{Content: &genai.Content{Role: "model", Parts: parts}}
}

func TestGeminiAdapterRewrite(t *testing.T) {
	gen := &fakeGenerator{resp: &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{candidate(genai.Text("  Hello"), genai.Text(" world.\n"))},
	}}
	g := &GeminiAdapter{model: "gemini-3-pro-preview", apiKey: "k", gen: gen}

	got, err := g.Rewrite(context.Background(), "TEXT:\nhelo wrld")
	if err != nil {
		t.Fatalf("Rewrite: %v", err)
	}
	if got != "Hello world." {
		t.Errorf("got %q, want %q", got, "Hello world.")
	}
	if gen.calls != 1 {
		t.Errorf("calls: got %d, want 1", gen.calls)
	}
	if len(gen.parts) != 1 {
		t.Fatalf("parts: got %d, want 1", len(gen.parts))
	}
	if text, ok := gen.parts[0].(genai.Text); !ok || !strings.Contains(string(text), "helo wrld") {
		t.Errorf("part: got %#v, want text containing the prompt", gen.parts[0])
	}
}

func TestGeminiAdapterRewriteError(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("rate limited")}
	g := &GeminiAdapter{model: "m", apiKey: "k", gen: gen}

	_, err := g.Rewrite(context.Background(), "hello")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "rate limited") {
		t.Errorf("error: got %q, want it to contain %q", err.Error(), "rate limited")
	}
}

func TestGeminiAdapterRewriteContextCancel(t *testing.T) {
	gen := &fakeGenerator{}
	g := &GeminiAdapter{model: "m", apiKey: "k", gen: gen}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.Rewrite(ctx, "hello")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestResponseText(t *testing.T) {
	tests := []struct {
		name string
		resp *genai.GenerateContentResponse
		want string
	}{
		{"nil response", nil, ""},
		{"no candidates", &genai.GenerateContentResponse{}, ""},
		{"nil content", &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}}, ""},
		{
			"skips non-text parts",
			&genai.GenerateContentResponse{Candidates: []*genai.Candidate{
				candidate(genai.Text("a"), genai.Blob{MIMEType: "image/png"}, genai.Text("b")),
			}},
			"ab",
		},
		{
			"first candidate only",
			&genai.GenerateContentResponse{Candidates: []*genai.Candidate{
				candidate(genai.Text("first")),
				candidate(genai.Text("second")),
			}},
			"first",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := responseText(tt.resp); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewGeminiAdapterValidation(t *testing.T) {
	if _, err := NewGeminiAdapter(context.Background(), "", "gemini-3-pro-preview", "rules"); err == nil {
		t.Error("expected error for missing API key, got nil")
	}
	if _, err := NewGeminiAdapter(context.Background(), "k", "", "rules"); err == nil {
		t.Error("expected error for missing model, got nil")
	}
}

func TestGeminiAdapterAvailableAndName(t *testing.T) {
	g := &GeminiAdapter{model: "gemini-3-pro-preview", apiKey: "k"}
	if ok, reason := g.Available(context.Background()); !ok || reason != "" {
		t.Errorf("Available: got (%v, %q), want (true, \"\")", ok, reason)
	}
	if g.Name() != "Gemini (gemini-3-pro-preview)" {
		t.Errorf("got %q, want %q", g.Name(), "Gemini (gemini-3-pro-preview)")
	}
	if ok, reason := (&GeminiAdapter{}).Available(context.Background()); ok || reason != "no API key" {
		t.Errorf("Available without key: got (%v, %q), want (false, %q)", ok, reason, "no API key")
	}
	if err := (&GeminiAdapter{}).Close(); err != nil {
		t.Errorf("Close without client: %v", err)
	}
}

func TestNewGeminiAdapterSetsSystemInstruction(t *testing.T) {
	g, err := NewGeminiAdapter(context.Background(), "k", "gemini-3-pro-preview", "Fix grammar only.")
	if err != nil {
		t.Fatalf("NewGeminiAdapter: %v", err)
	}
	t.Cleanup(func() { g.Close() })

	gm, ok := g.gen.(*genai.GenerativeModel)
	if !ok {
		t.Fatalf("generator: got %T, want *genai.GenerativeModel", g.gen)
	}
	if gm.SystemInstruction == nil || len(gm.SystemInstruction.Parts) != 1 {
		t.Fatalf("system instruction: got %+v, want one part", gm.SystemInstruction)
	}
	if got := gm.SystemInstruction.Parts[0]; got != genai.Text("Fix grammar only.") {
		t.Errorf("system instruction part: got %#v, want %q", got, "Fix grammar only.")
	}
}

func TestNewGeminiAdapterEmptySystemInstruction(t *testing.T) {
	g, err := NewGeminiAdapter(context.Background(), "k", "gemini-3-pro-preview", "")
	if err != nil {
		t.Fatalf("NewGeminiAdapter: %v", err)
	}
	t.Cleanup(func() { g.Close() })

	if gm := g.gen.(*genai.GenerativeModel); gm.SystemInstruction != nil {
		t.Errorf("system instruction: got %+v, want nil", gm.SystemInstruction)
	}
}
