package openrouter

import (
	"context"
	"errors"
)

// ErrAPIKeyMissing indicates the OpenRouter credential is not configured.
// This is fatal at construction time, never a runtime extraction failure.
var ErrAPIKeyMissing = errors.New("openrouter: API key is required")

// IOpenRouter defines the interface for the OpenRouter chat completion client.
// Implementations are safe for concurrent use.
type IOpenRouter interface {
	// ChatCompletion sends a chat completion request to OpenRouter
	ChatCompletion(ctx context.Context, req *Request) (*Response, error)

	// Model returns the model being used
	Model() string
}

// New creates a new OpenRouter client with the given configuration
func New(cfg Config) (IOpenRouter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return newClientImpl(cfg), nil
}
