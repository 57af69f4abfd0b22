// Package generate abstracts the external text-generation service used for
// work summaries. Providers stream text fragments to a handler in arrival
// order; callers hold no retry or rate-limit logic around them.
package generate

import (
	"context"
	"fmt"
)

// Handler receives one streamed text fragment. Returning an error stops
// the stream.
type Handler func(fragment string) error

// Provider is one text-generation backend.
type Provider interface {
	Name() string
	StreamWithHandler(ctx context.Context, prompt string, handler Handler) error
}

// Options configures provider construction. APIKey falls back to the
// provider's standard environment variable when empty.
type Options struct {
	Model  string
	APIKey string
}

// New constructs the named provider ("anthropic" or "openai").
func New(provider string, opts Options) (Provider, error) {
	switch provider {
	case "anthropic":
		return NewAnthropicProvider(opts), nil
	case "openai":
		return NewOpenAIProvider(opts), nil
	default:
		return nil, fmt.Errorf("unknown generation provider %q", provider)
	}
}
