package runtime

import (
	"context"
	"fmt"

	"github.com/aretw0/unshell/pkg/domain"
)

type asyncOutcome struct {
	step domain.Step
	err  error
}

// asyncStepper runs an AsyncProcedure on its own goroutine. Advance and the
// yield closure hand values over unbuffered channels, so exactly one side runs.
type asyncStepper struct {
	cancel context.CancelFunc
	inputs chan domain.Result
	steps  chan asyncOutcome
	done   bool
}

func newAsyncStepper(ctx context.Context, proc domain.AsyncProcedure, args []any) *asyncStepper {
	pctx, cancel := context.WithCancel(ctx)
	s := &asyncStepper{
		cancel: cancel,
		inputs: make(chan domain.Result),
		steps:  make(chan asyncOutcome),
	}
	go s.run(pctx, proc, args)
	return s
}

func (s *asyncStepper) run(ctx context.Context, proc domain.AsyncProcedure, args []any) {
	// The body starts on the first Advance, like a generator.
	select {
	case <-s.inputs:
	case <-ctx.Done():
		return
	}

	yield := func(yctx context.Context, cmd domain.Command) (domain.Result, error) {
		select {
		case s.steps <- asyncOutcome{step: domain.Yielded(cmd)}:
		case <-ctx.Done():
			return domain.Result{}, domain.ErrAborted
		case <-yctx.Done():
			return domain.Result{}, abortErr(ctx, yctx)
		}
		select {
		case in := <-s.inputs:
			return in, nil
		case <-ctx.Done():
			return domain.Result{}, domain.ErrAborted
		case <-yctx.Done():
			return domain.Result{}, abortErr(ctx, yctx)
		}
	}

	final, err := proc(ctx, yield, args...)
	out := asyncOutcome{step: domain.Finished(final)}
	if err != nil {
		out = asyncOutcome{err: fmt.Errorf("%w: %w", domain.ErrScriptFailed, err)}
	}
	select {
	case s.steps <- out:
	case <-ctx.Done():
	}
}

func (s *asyncStepper) Advance(ctx context.Context, input domain.Result) (domain.Step, error) {
	if s.done {
		return domain.Finished(domain.Command{}), nil
	}

	select {
	case s.inputs <- input:
	case <-ctx.Done():
		return domain.Step{}, ctx.Err()
	}

	select {
	case out := <-s.steps:
		if out.err != nil || out.step.Done {
			s.done = true
		}
		return out.step, out.err
	case <-ctx.Done():
		return domain.Step{}, ctx.Err()
	}
}

func (s *asyncStepper) Close() {
	s.cancel()
}

// abortErr reports ErrAborted once the driver closed the procedure, even when
// yieldCtx is the procedure context itself.
func abortErr(procCtx, yieldCtx context.Context) error {
	if procCtx.Err() != nil {
		return domain.ErrAborted
	}
	return yieldCtx.Err()
}
