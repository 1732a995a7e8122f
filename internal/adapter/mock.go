package adapter

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// mockTextMarker separates the instruction from the user text in a rewrite prompt.
const mockTextMarker = "TEXT:\n"

// MockAdapter returns simulated responses with a configurable delay.
// Used for development and testing without a real LLM backend.
type MockAdapter struct {
	Delay time.Duration
}

func (m *MockAdapter) Name() string { return "Mock" }

// Rewrite echoes the user text section of prompt with its first letter capitalised.
func (m *MockAdapter) Rewrite(ctx context.Context, prompt string) (string, error) {
	if m.Delay > 0 {
		select {
		case <-time.After(m.Delay):
		case <-ctx.Done():
			return "", fmt.Errorf("mock: %w", ctx.Err())
		}
	}

	text := prompt
	if i := strings.LastIndex(text, mockTextMarker); i >= 0 {
		text = text[i+len(mockTextMarker):]
	}

	text = strings.TrimSpace(text)
	if len(text) > 0 && text[0] >= 'a' && text[0] <= 'z' {
		text = strings.ToUpper(text[:1]) + text[1:]
	}
	return text, nil
}

func (m *MockAdapter) Available(context.Context) (bool, string) { return true, "" }
