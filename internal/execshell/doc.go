// Package execshell runs external tools (git) for clean-my-branch.
//
// ShellExecutor wraps a CommandRunner with structured logging and lifecycle
// observers, converting non-zero exit codes into CommandFailedError values so
// callers can decide whether a failure is fatal. OSCommandRunner is the
// os/exec backed runner used outside of tests.
package execshell
