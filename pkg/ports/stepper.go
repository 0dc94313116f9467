package ports

import (
	"context"

	"github.com/aretw0/unshell/pkg/domain"
)

// Stepper is a live procedure instance the engine can advance.
// Both the synchronous and the asynchronous script variants are driven through it.
type Stepper interface {
	// Advance resumes the procedure with input and blocks until it yields the
	// next command or finishes. The first call receives the zero Result.
	Advance(ctx context.Context, input domain.Result) (domain.Step, error)

	// Close releases a procedure that was not driven to completion.
	// It is safe to call after the procedure finished.
	Close()
}
