package cli

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/aretw0/unshell/internal/config"
	"github.com/aretw0/unshell/internal/logging"
	"github.com/aretw0/unshell/pkg/domain"
)

// SignalContext wraps a context and captures the signal that cancelled it.
type SignalContext struct {
	context.Context
	Cancel func()
	stop   sync.Once
	sigCh  chan os.Signal
	sigVal os.Signal
	mu     sync.Mutex
}

// NewSignalContext creates a context that is cancelled on SIGINT or SIGTERM.
// Unlike signal.NotifyContext it remembers which signal arrived.
func NewSignalContext(parent context.Context) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{
		Context: ctx,
		Cancel:  cancel,
		sigCh:   make(chan os.Signal, 1),
	}

	signal.Notify(sc.sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sc.sigCh:
			sc.mu.Lock()
			sc.sigVal = sig
			sc.mu.Unlock()
			sc.Cancel()
		case <-sc.Context.Done():
		}
		sc.stop.Do(func() {
			signal.Stop(sc.sigCh)
		})
	}()

	return sc
}

// Signal returns the signal that caused the context to be cancelled, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sigVal
}

// createLogger configures the application logger on w, normally Stderr,
// so that Stdout only carries the command progress lines.
func createLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	return logging.New(logging.Options{
		Level:  cfg.SlogLevel(),
		Format: cfg.LogFormat,
		Output: w,
	})
}

func createDebugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnCommandStart: func(ctx context.Context, e *domain.CommandEvent) {
			logger.Debug("Command Start", "run_id", e.RunID, "command", e.Command, "batch", e.Batch)
		},
		OnCommandReturn: func(ctx context.Context, e *domain.CommandEvent) {
			if e.IsError {
				logger.Debug("Command Return (Error)", "run_id", e.RunID, "command", e.Command, "err", e.Output)
			} else {
				logger.Debug("Command Return (Success)", "run_id", e.RunID, "command", e.Command, "duration", e.Duration)
			}
		},
	}
}

// chainHooks fans every event out to each set of hooks, in order.
func chainHooks(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRunStart: func(ctx context.Context, e *domain.RunEvent) {
			for _, h := range sets {
				if h.OnRunStart != nil {
					h.OnRunStart(ctx, e)
				}
			}
		},
		OnRunFinish: func(ctx context.Context, e *domain.RunEvent) {
			for _, h := range sets {
				if h.OnRunFinish != nil {
					h.OnRunFinish(ctx, e)
				}
			}
		},
		OnCommandStart: func(ctx context.Context, e *domain.CommandEvent) {
			for _, h := range sets {
				if h.OnCommandStart != nil {
					h.OnCommandStart(ctx, e)
				}
			}
		},
		OnCommandReturn: func(ctx context.Context, e *domain.CommandEvent) {
			for _, h := range sets {
				if h.OnCommandReturn != nil {
					h.OnCommandReturn(ctx, e)
				}
			}
		},
	}
}

func isInterrupted(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, domain.ErrAborted)
}
