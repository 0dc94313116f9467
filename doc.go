/*
Package unshell runs scripts made of shell commands.

A script is a procedure that yields shell command lines one at a time. The
engine runs every line through a shell, captures its standard output and hands
it back to the procedure before asking for the next line. A procedure may also
return a terminal command, executed once after it finished.

# Procedures

Synchronous procedures receive a yield function:

	script := domain.Procedure(func(yield domain.Yield, args ...any) (domain.Command, error) {
		user := yield(domain.Cmd("whoami"))
		dates := yield(domain.Batch("date", "date -u"))
		return domain.Cmd("echo " + user.Output() + dates.Outputs()[1]), nil
	})

	if err := unshell.Run(ctx, script); err != nil {
		log.Fatal(err)
	}

Asynchronous procedures run on their own goroutine and may block between
suspension points; their yield takes a context and reports domain.ErrAborted
once the run stopped.

# Failures

A command fails when it writes to standard error and exits with a non-zero
status, or when it prints nothing at all. The first failure aborts the run and
is returned as a *domain.CommandError.

# Progress

Every command is announced as "• <command>", every captured output as
"➜ <stdout>" and every failure as "<command>: <stderr>".
*/
package unshell
