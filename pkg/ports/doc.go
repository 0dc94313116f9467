/*
Package ports defines the interfaces between the unshell engine and the outside world.

# Key Interfaces

  - Executor: spawns one command line and classifies its outcome.
  - Stepper: a live procedure the engine advances one suspension point at a time.
  - Notifier: the console progress lines emitted around each command.
  - ScriptResolver: turns a script path into a procedure factory.
*/
package ports
