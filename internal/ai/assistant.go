package ai

import (
	"context"
	"fmt"
)

// Generator is the narrow capability the core consumes from a generative
// text provider. Implementations hide the concrete SDK so the pipeline can
// run against deterministic stand-ins in tests.
type Generator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	Model() string
}

// TransportError marks a provider or network failure. Callers may retry;
// the core itself never does.
type TransportError struct {
	Provider string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s transport failure: %v", e.Provider, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
