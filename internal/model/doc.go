// Package model defines the shared CLI-boundary types for reframe-stack.
//
// This package contains pure data structures with no external dependencies.
// It defines the exit codes (ExitCode) the binary reports to the OS and a
// custom error type (CLIError) that carries an exit code from the point of
// failure to the top-level command executor. Domain packages (compose,
// runner) return their own typed errors and never reference exit codes;
// the translation happens once, at the CLI boundary.
package model
