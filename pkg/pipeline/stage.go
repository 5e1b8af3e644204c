// Package pipeline provides the stage contracts and shared types for the
// crop, capture and export pipeline.
package pipeline

import (
	"context"
)

// Stage represents one asynchronous step: decode, draw, capture or encode.
// Each call resolves exactly once with a result or an error.
type Stage[In, Out any] interface {
	// Execute runs the stage with the given input and returns the output.
	Execute(ctx context.Context, input In) (Out, error)
}

// StageFunc is a function adapter for Stage interface.
type StageFunc[In, Out any] func(ctx context.Context, input In) (Out, error)

// Execute implements Stage interface.
func (f StageFunc[In, Out]) Execute(ctx context.Context, input In) (Out, error) {
	return f(ctx, input)
}
