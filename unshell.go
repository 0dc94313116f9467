package unshell

import (
	"context"
	"io"
	"log/slog"

	"github.com/aretw0/unshell/internal/presentation/console"
	"github.com/aretw0/unshell/internal/runtime"
	"github.com/aretw0/unshell/pkg/adapters/process"
	"github.com/aretw0/unshell/pkg/domain"
	"github.com/aretw0/unshell/pkg/ports"
)

// Engine is the high-level entry point for the unshell library.
// It wraps the internal runtime and a shell executor.
type Engine struct {
	runtime  *runtime.Engine
	executor ports.Executor
	shell    process.Shell
	notifier ports.Notifier
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithShell changes how command lines are spawned (default /bin/sh -c).
func WithShell(shell process.Shell) Option {
	return func(e *Engine) {
		e.shell = shell
	}
}

// WithNotifier sets where progress lines are reported (default Stdout).
func WithNotifier(n ports.Notifier) Option {
	return func(e *Engine) {
		e.notifier = n
	}
}

// WithOutput prints progress lines to w without colors.
func WithOutput(w io.Writer) Option {
	return func(e *Engine) {
		e.notifier = console.New(w, console.ColorNever)
	}
}

// WithExecutor replaces the shell executor altogether.
// WithShell and WithNotifier are ignored when it is set.
func WithExecutor(executor ports.Executor) Option {
	return func(e *Engine) {
		e.executor = executor
	}
}

// New initializes a new Engine.
func New(opts ...Option) *Engine {
	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.logger == nil {
		eng.logger = slog.New(slog.DiscardHandler)
	}

	if eng.executor == nil {
		if eng.notifier == nil {
			eng.notifier = console.New(nil, console.ColorAuto)
		}
		runnerOpts := []process.RunnerOption{
			process.WithNotifier(eng.notifier),
			process.WithLogger(eng.logger),
		}
		if eng.shell != nil {
			runnerOpts = append(runnerOpts, process.WithShell(eng.shell))
		}
		eng.executor = process.NewRunner(runnerOpts...)
	}

	eng.runtime = runtime.NewEngine(eng.executor,
		runtime.WithLogger(eng.logger),
		runtime.WithLifecycleHooks(eng.hooks),
	)
	return eng
}

// Run drives script to completion. script must be a domain.Procedure or a
// domain.AsyncProcedure (or a func with the same signature); anything else
// fails with domain.ErrInvalidScript.
func (e *Engine) Run(ctx context.Context, script any, args ...any) error {
	return e.runtime.Run(ctx, script, args...)
}

// Run drives script with a default Engine printing to Stdout.
func Run(ctx context.Context, script any, args ...any) error {
	return New().Run(ctx, script, args...)
}
