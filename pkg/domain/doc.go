/*
Package domain contains the value types shared by the unshell engine and its adapters.

It is kept free of I/O: no process spawning, no console, no script loading.

# Key Entities

  - Command: a shell command line, or a batch of lines to run concurrently.
  - Result: the captured stdout fed back into a procedure.
  - Procedure / AsyncProcedure: the two script variants the engine can drive.
  - Step: the tagged outcome of advancing a procedure (yielded, or finished with an optional terminal command).
  - CommandError: the classification of a failed command.
*/
package domain
