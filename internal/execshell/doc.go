// Package execshell provides structured helpers for invoking the git binary.
//
// It wraps os/exec with lifecycle logging via ShellExecutor, exposes
// OSCommandRunner for default process execution, and defines the CommandRunner
// abstraction that lets callers substitute fakes in tests.
package execshell
