package adapter

import "context"

// Rewriter is the boundary to an external text-generation provider.
// Implementations fix the system instruction and model at construction
// and are safe for concurrent use.
type Rewriter interface {
	Name() string
	Rewrite(ctx context.Context, prompt string) (string, error)
	// Available reports whether the provider looks usable and, when it
	// does not, a short reason for the health endpoint.
	Available(ctx context.Context) (bool, string)
}
