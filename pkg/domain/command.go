package domain

import "strings"

// Command is what a procedure hands to the engine at each suspension point.
// It is either a single shell command line or a batch of lines that run concurrently.
// The zero value is an absent command.
type Command struct {
	lines []string
	batch bool
}

// Cmd builds a single shell command line.
func Cmd(line string) Command {
	return Command{lines: []string{line}}
}

// Batch builds a command whose lines run concurrently.
// The result fed back to the procedure keeps the order given here.
func Batch(lines ...string) Command {
	return Command{lines: append([]string(nil), lines...), batch: true}
}

// Valid reports whether the command should be executed.
// An absent command, an empty line and an empty batch are skipped.
func (c Command) Valid() bool {
	if c.batch {
		return len(c.lines) > 0
	}
	return len(c.lines) == 1 && c.lines[0] != ""
}

// IsBatch reports whether the command was built with Batch.
func (c Command) IsBatch() bool {
	return c.batch
}

// Line returns the single command line, or "" for batches and absent commands.
func (c Command) Line() string {
	if c.batch || len(c.lines) == 0 {
		return ""
	}
	return c.lines[0]
}

// Lines returns a copy of every line carried by the command.
func (c Command) Lines() []string {
	return append([]string(nil), c.lines...)
}

func (c Command) String() string {
	if !c.batch {
		return c.Line()
	}
	return "[" + strings.Join(c.lines, ", ") + "]"
}

// Result is the captured standard output of a Command.
// For a batch it holds one output per line, in the order of the batch.
// The zero value is the absent result handed to a procedure before anything ran.
type Result struct {
	outputs []string
	batch   bool
	set     bool
}

// NewResult wraps the output of a single command.
func NewResult(output string) Result {
	return Result{outputs: []string{output}, set: true}
}

// NewBatchResult wraps the ordered outputs of a batch.
func NewBatchResult(outputs []string) Result {
	return Result{outputs: append([]string(nil), outputs...), batch: true, set: true}
}

// IsZero reports whether no command has produced this result yet.
func (r Result) IsZero() bool {
	return !r.set
}

// IsBatch reports whether the result came from a batch command.
func (r Result) IsBatch() bool {
	return r.batch
}

// Output returns the stdout of a single command.
// For a batch it returns the outputs concatenated in order.
func (r Result) Output() string {
	return strings.Join(r.outputs, "")
}

// Outputs returns a copy of every captured output.
func (r Result) Outputs() []string {
	return append([]string(nil), r.outputs...)
}

func (r Result) String() string {
	return r.Output()
}
