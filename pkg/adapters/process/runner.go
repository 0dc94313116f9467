package process

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/unshell/pkg/domain"
	"github.com/aretw0/unshell/pkg/ports"
)

// Runner implements ports.Executor on top of a Shell.
// It announces each line through its Notifier and classifies the outcome.
type Runner struct {
	shell    Shell
	notifier ports.Notifier
	logger   *slog.Logger
}

// RunnerOption configures the runner.
type RunnerOption func(*Runner)

// WithShell sets the shell lines are spawned through.
func WithShell(shell Shell) RunnerOption {
	return func(r *Runner) {
		r.shell = shell
	}
}

// WithNotifier sets where progress lines are reported.
func WithNotifier(n ports.Notifier) RunnerOption {
	return func(r *Runner) {
		r.notifier = n
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) RunnerOption {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRunner creates a new Process Runner using /bin/sh -c by default.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{
		shell:    DefaultShell(),
		notifier: nopNotifier{},
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Execute spawns line and classifies the outcome, in this order:
//
//  1. stderr is not empty and the exit status is not zero: the command failed
//     with "<line>: <stderr>".
//  2. stdout is not empty: the command succeeded and stdout is returned.
//  3. otherwise: the command failed with domain.MsgNoOutput.
//
// A nonzero exit status alone is therefore reported as case 3.
func (r *Runner) Execute(ctx context.Context, line string) (string, error) {
	r.notifier.Command(line)

	out, err := r.shell.Spawn(ctx, line)
	if err != nil {
		return "", fmt.Errorf("spawn %q: %w", line, err)
	}
	r.logger.Debug("command exited", "command", line, "exit_code", out.ExitCode,
		"stdout_bytes", len(out.Stdout), "stderr_bytes", len(out.Stderr))

	if out.Stderr != "" && out.ExitCode != 0 {
		cerr := &domain.CommandError{Command: line, Stderr: out.Stderr, ExitCode: out.ExitCode}
		r.notifier.Failure(cerr.Error())
		return "", cerr
	}

	if out.Stdout != "" {
		r.notifier.Output(out.Stdout)
		return out.Stdout, nil
	}

	return "", &domain.CommandError{
		Command:  line,
		Stderr:   out.Stderr,
		ExitCode: out.ExitCode,
		NoOutput: true,
	}
}

type nopNotifier struct{}

func (nopNotifier) Command(string) {}
func (nopNotifier) Output(string)  {}
func (nopNotifier) Failure(string) {}
