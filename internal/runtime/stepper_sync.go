package runtime

import (
	"context"
	"fmt"
	"iter"

	"github.com/aretw0/unshell/pkg/domain"
)

// unwind is panicked through a suspended procedure when the run is closed early.
type unwind struct{}

// syncStepper runs a Procedure as a coroutine. The driver stores the resume
// value before pulling the next command; the yield closure reads it back.
type syncStepper struct {
	next  func() (domain.Command, bool)
	stop  func()
	input domain.Result
	final domain.Command
	err   error
	done  bool
}

func newSyncStepper(proc domain.Procedure, args []any) *syncStepper {
	s := &syncStepper{}
	seq := func(yield func(domain.Command) bool) {
		defer func() {
			if r := recover(); r != nil {
				if _, ok := r.(unwind); !ok {
					panic(r)
				}
			}
		}()
		s.final, s.err = proc(func(cmd domain.Command) domain.Result {
			if !yield(cmd) {
				panic(unwind{})
			}
			return s.input
		}, args...)
	}
	s.next, s.stop = iter.Pull(seq)
	return s
}

func (s *syncStepper) Advance(ctx context.Context, input domain.Result) (domain.Step, error) {
	if s.done {
		return domain.Finished(domain.Command{}), nil
	}
	if err := ctx.Err(); err != nil {
		return domain.Step{}, err
	}

	s.input = input
	if cmd, ok := s.next(); ok {
		return domain.Yielded(cmd), nil
	}

	s.done = true
	if s.err != nil {
		return domain.Step{}, fmt.Errorf("%w: %w", domain.ErrScriptFailed, s.err)
	}
	return domain.Finished(s.final), nil
}

func (s *syncStepper) Close() {
	s.stop()
}
