package ports

// Notifier receives the observable progress lines of the executor.
type Notifier interface {
	// Command announces a line about to be spawned.
	Command(line string)
	// Output reports the captured stdout of a successful line.
	Output(stdout string)
	// Failure reports a line classified as failed, formatted "<line>: <stderr>".
	Failure(msg string)
}
