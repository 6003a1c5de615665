// Package completion wraps the language-model collaborators behind a single
// Complete capability. The enrichment stage is the only consumer; it maps
// any error from here to the documented fallback value for the operation.
package completion

import (
	"context"
	"errors"
)

// Request carries one completion call. Each enrichment operation fixes its
// own system instruction, token budget, and temperature.
type Request struct {
	System      string
	User        string
	MaxTokens   int
	Temperature float32
}

type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// ErrDisabled is returned by the no-op completer selected when no model
// credential is configured. Callers treat it like any other failure.
var ErrDisabled = errors.New("completion: collaborator disabled")

// Disabled is the no-op Completer.
type Disabled struct{}

func (Disabled) Complete(context.Context, Request) (string, error) {
	return "", ErrDisabled
}
