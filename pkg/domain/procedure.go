package domain

import "context"

// Yield suspends a synchronous procedure with a command and returns the result
// of running it. An invalid command is skipped and the previous result comes back.
type Yield func(cmd Command) Result

// Procedure is a synchronous script. The command it returns is the terminal
// command, executed once after the procedure finished. Return Command{} for none.
type Procedure func(yield Yield, args ...any) (Command, error)

// AsyncYield is the asynchronous counterpart of Yield. It returns ErrAborted
// (or the context error) when the run stops before the command could be resumed.
type AsyncYield func(ctx context.Context, cmd Command) (Result, error)

// AsyncProcedure is a script that may block on I/O between suspension points.
// It runs on its own goroutine and must return once yield reports an error.
type AsyncProcedure func(ctx context.Context, yield AsyncYield, args ...any) (Command, error)

// Step is the outcome of advancing a procedure once.
// When Done is false, Command was yielded and the procedure waits to be resumed.
// When Done is true, the procedure finished and Command is its terminal payload,
// possibly absent.
type Step struct {
	Command Command
	Done    bool
}

// Yielded builds the step of a procedure suspended on cmd.
func Yielded(cmd Command) Step {
	return Step{Command: cmd}
}

// Finished builds the completion step carrying an optional terminal command.
func Finished(cmd Command) Step {
	return Step{Command: cmd, Done: true}
}
