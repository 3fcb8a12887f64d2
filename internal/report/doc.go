// Package report defines the failure kinds, the diagnostic printer, and the
// process exit-code mapping shared by every command.
//
// Each kind carries a message template so callers construct errors and
// diagnostics from the kind rather than from ambient string constants, and
// only the process entry point translates errors into exit codes.
package report
