package ports

import "context"

// Executor runs exactly one shell command line to completion and classifies it.
// It returns the captured stdout, or a *domain.CommandError.
type Executor interface {
	Execute(ctx context.Context, line string) (string, error)
}

// ExecutorFunc adapts a plain function to Executor.
type ExecutorFunc func(ctx context.Context, line string) (string, error)

// Execute calls f(ctx, line).
func (f ExecutorFunc) Execute(ctx context.Context, line string) (string, error) {
	return f(ctx, line)
}
