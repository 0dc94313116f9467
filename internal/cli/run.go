package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/aretw0/unshell/internal/adapters/http"
	"github.com/aretw0/unshell/internal/config"
	"github.com/aretw0/unshell/internal/metrics"
	"github.com/aretw0/unshell/internal/presentation/console"
	"github.com/aretw0/unshell/pkg/domain"
	"github.com/spf13/afero"
)

// RunOptions contains all the configuration for the run command.
type RunOptions struct {
	ScriptPath string
	Args       []string
	ConfigPath string
	// Configure applies command-line overrides on top of the loaded configuration.
	Configure func(*config.Config)

	Stdout  io.Writer
	Stderr  io.Writer
	Fs      afero.Fs
	Environ []string
}

func (o *RunOptions) setDefaults() {
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.Stderr == nil {
		o.Stderr = os.Stderr
	}
	if o.Fs == nil {
		o.Fs = afero.NewOsFs()
	}
	if o.Environ == nil {
		o.Environ = os.Environ()
	}
}

// LoadConfig resolves the configuration the same way Run does.
func LoadConfig(opts RunOptions) (*config.Config, error) {
	opts.setDefaults()
	cfg, err := config.Load(opts.Fs, opts.ConfigPath, opts.Environ)
	if err != nil {
		return nil, err
	}
	if opts.Configure != nil {
		opts.Configure(cfg)
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// Run resolves the script at opts.ScriptPath and drives it to completion.
// Failures are reported on the console before being returned.
// When ctx is a *SignalContext the signal that stopped the run is logged.
func Run(ctx context.Context, opts RunOptions) error {
	opts.setDefaults()
	sc, _ := ctx.(*SignalContext)

	cfg, err := LoadConfig(opts)
	if err != nil {
		console.New(opts.Stdout, console.ColorAuto).Errorf("%v", err)
		return err
	}

	logger := createLogger(cfg, opts.Stderr)
	out := console.New(opts.Stdout, console.ColorMode(cfg.Color))

	script, err := resolveScript(newResolvers(opts.Fs, logger), opts.ScriptPath)
	if err != nil {
		logger.Error("failed to resolve script", "path", opts.ScriptPath, "err", err)
		out.Errorf(MsgInvalidScriptPath)
		return err
	}

	hooks := []domain.LifecycleHooks{createDebugHooks(logger)}
	if cfg.MetricsAddr != "" {
		m := metrics.New()
		srv, err := http.Listen(cfg.MetricsAddr, http.NewHandler(m.Registry), logger)
		if err != nil {
			out.Errorf("metrics: %v", err)
			return fmt.Errorf("failed to start metrics server: %w", err)
		}
		defer shutdown(srv, logger)
		hooks = append(hooks, m.Hooks())
	}

	engine, err := newEngine(cfg, out, logger, chainHooks(hooks...))
	if err != nil {
		out.Errorf("%v", err)
		return err
	}

	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	args := make([]any, len(opts.Args))
	for i, a := range opts.Args {
		args[i] = a
	}

	if err := engine.Run(ctx, script, args...); err != nil {
		switch {
		case isInterrupted(err):
			attrs := []any{"path", opts.ScriptPath, "err", err}
			if sc != nil && sc.Signal() != nil {
				attrs = append(attrs, "signal", sc.Signal().String())
			}
			logger.Warn("run interrupted", attrs...)
		case errors.Is(err, context.DeadlineExceeded):
			logger.Error("run timed out", "path", opts.ScriptPath, "timeout", cfg.Timeout)
		default:
			logger.Error("run failed", "path", opts.ScriptPath, "err", err)
		}
		out.Errorf(domain.MsgNoOutput)
		return err
	}
	return nil
}

func shutdown(srv *http.Server, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Warn("metrics server shutdown", "err", err)
	}
}
