package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidScript is returned when the value handed to the engine is not a procedure.
var ErrInvalidScript = errors.New("unshell: invalid script")

// ErrCommandFailed is matched by every *CommandError.
var ErrCommandFailed = errors.New("command failed")

// ErrScriptFailed wraps an error returned by the procedure body itself.
var ErrScriptFailed = errors.New("script failed")

// ErrAborted is returned by AsyncYield once the run stopped driving the procedure.
var ErrAborted = errors.New("run aborted")

// MsgNoOutput is the message of a command that neither printed nor failed loudly.
const MsgNoOutput = "something went wrong"

// CommandError describes a command the executor classified as failed.
// NoOutput is set when the command printed nothing on stdout without failing
// loudly (stderr empty or exit status zero); the message is then MsgNoOutput.
type CommandError struct {
	Command  string
	Stderr   string
	ExitCode int
	NoOutput bool
}

func (e *CommandError) Error() string {
	if e.NoOutput {
		return MsgNoOutput
	}
	return fmt.Sprintf("%s: %s", e.Command, e.Stderr)
}

func (e *CommandError) Unwrap() error {
	return ErrCommandFailed
}
