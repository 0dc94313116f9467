package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"slices"
	"time"
)

// Outcome is what a spawned command left behind.
type Outcome struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Shell spawns one command line and waits for it.
// An error means the line could not be run at all, not that it failed.
type Shell interface {
	Spawn(ctx context.Context, line string) (Outcome, error)
}

// ExecShell runs lines as "<Path> <Args...> <line>", i.e. through a real shell
// so expansion, pipes and redirections behave exactly as typed.
type ExecShell struct {
	Path string
	Args []string
	// Dir is the working directory; empty means the current one.
	Dir string
	// Env is appended to the inherited environment.
	Env []string
	// WaitDelay bounds how long output pipes are drained after a cancelled child exits.
	WaitDelay time.Duration
}

// DefaultShell returns /bin/sh -c.
func DefaultShell() *ExecShell {
	return &ExecShell{Path: "/bin/sh", Args: []string{"-c"}, WaitDelay: 2 * time.Second}
}

func (s *ExecShell) Spawn(ctx context.Context, line string) (Outcome, error) {
	args := append(slices.Clone(s.Args), line)
	cmd := exec.CommandContext(ctx, s.Path, args...)
	cmd.Dir = s.Dir
	cmd.Env = append(cmd.Environ(), s.Env...)
	cmd.WaitDelay = s.WaitDelay
	setProcessGroup(cmd)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	out := Outcome{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: exitCodeFrom(err, cmd.ProcessState),
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return out, ctxErr
	}
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return out, fmt.Errorf("run %s: %w", s.Path, err)
		}
	}
	return out, nil
}

func exitCodeFrom(waitErr error, state *os.ProcessState) int {
	if state != nil {
		return state.ExitCode()
	}
	if waitErr == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(waitErr, &exitErr) && exitErr.ProcessState != nil {
		return exitErr.ProcessState.ExitCode()
	}
	return -1
}
