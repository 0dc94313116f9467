package runtime

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/unshell/pkg/domain"
	"github.com/aretw0/unshell/pkg/ports"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Engine is the procedure driver. It advances a procedure, hands every valid
// command to the executor and feeds the captured output back, one command at a time.
type Engine struct {
	executor ports.Executor
	logger   *slog.Logger
	hooks    domain.LifecycleHooks
	newRunID func() string
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLogger sets the structured logger used for debug traces.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
// Command hooks fire from several goroutines while a batch runs.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithRunIDGenerator overrides how run correlation IDs are produced.
func WithRunIDGenerator(gen func() string) EngineOption {
	return func(e *Engine) {
		if gen != nil {
			e.newRunID = gen
		}
	}
}

// NewEngine creates a driver on top of executor.
func NewEngine(executor ports.Executor, opts ...EngineOption) *Engine {
	e := &Engine{
		executor: executor,
		logger:   slog.New(slog.DiscardHandler),
		newRunID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run starts script with args and drives it to completion.
//
// Empty commands are skipped and the procedure is resumed with the previous
// result. A terminal command is executed once and its output is discarded.
// The first executor error aborts the run and is returned unchanged.
func (e *Engine) Run(ctx context.Context, script any, args ...any) (err error) {
	stepper, variant, err := Start(ctx, script, args...)
	if err != nil {
		return err
	}
	defer stepper.Close()

	runID := e.newRunID()
	logger := e.logger.With("run_id", runID, "variant", variant.String())
	started := time.Now()
	executed := 0

	logger.Debug("run started")
	if e.hooks.OnRunStart != nil {
		e.hooks.OnRunStart(ctx, &domain.RunEvent{
			EventBase: domain.EventBase{Timestamp: started, Type: domain.EventRunStart, RunID: runID},
			Variant:   variant.String(),
		})
	}
	defer func() {
		logger.Debug("run finished", "commands", executed, "err", err)
		if e.hooks.OnRunFinish != nil {
			e.hooks.OnRunFinish(ctx, &domain.RunEvent{
				EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventRunFinish, RunID: runID},
				Variant:   variant.String(),
				Commands:  executed,
				Duration:  time.Since(started),
				Err:       err,
			})
		}
	}()

	var last domain.Result
	for {
		step, err := stepper.Advance(ctx, last)
		if err != nil {
			return err
		}

		if !step.Command.Valid() {
			if step.Done {
				return nil
			}
			logger.Debug("skipping empty command")
			continue
		}

		res, err := e.execute(ctx, runID, step.Command)
		if err != nil {
			return err
		}
		executed++

		if step.Done {
			return nil
		}
		last = res
	}
}

func (e *Engine) execute(ctx context.Context, runID string, cmd domain.Command) (domain.Result, error) {
	if !cmd.IsBatch() {
		out, err := e.executeLine(ctx, runID, cmd.Line(), false)
		if err != nil {
			return domain.Result{}, err
		}
		return domain.NewResult(out), nil
	}

	lines := cmd.Lines()
	outputs := make([]string, len(lines))
	g, gctx := errgroup.WithContext(ctx)
	for i, line := range lines {
		g.Go(func() error {
			out, err := e.executeLine(gctx, runID, line, true)
			if err != nil {
				return err
			}
			outputs[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return domain.Result{}, err
	}
	return domain.NewBatchResult(outputs), nil
}

func (e *Engine) executeLine(ctx context.Context, runID, line string, batch bool) (string, error) {
	base := domain.EventBase{Type: domain.EventCommandStart, RunID: runID, Timestamp: time.Now()}
	if e.hooks.OnCommandStart != nil {
		e.hooks.OnCommandStart(ctx, &domain.CommandEvent{EventBase: base, Command: line, Batch: batch})
	}

	e.logger.Debug("executing command", "run_id", runID, "command", line, "batch", batch)
	started := time.Now()
	out, err := e.executor.Execute(ctx, line)
	elapsed := time.Since(started)

	if e.hooks.OnCommandReturn != nil {
		ev := &domain.CommandEvent{
			EventBase: domain.EventBase{Type: domain.EventCommandReturn, RunID: runID, Timestamp: time.Now()},
			Command:   line,
			Batch:     batch,
			Output:    out,
			Duration:  elapsed,
		}
		if err != nil {
			ev.IsError = true
			ev.Output = err.Error()
		}
		e.hooks.OnCommandReturn(ctx, ev)
	}
	return out, err
}
