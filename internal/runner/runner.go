package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Invocation describes a single external process call: the program to
// launch, its ordered argument list, and the directory it runs in.
// Invocations are constructed transiently per action and never retained.
type Invocation struct {
	// Binary is the program name, resolved via PATH unless absolute.
	Binary string

	// Args is the ordered argument list, not including the program name.
	Args []string

	// Dir is the working directory for the process. Empty means the
	// calling process's own working directory.
	Dir string
}

// String renders the invocation as a single shell-like line for trace
// output. It is not quoted and not meant to be re-parseable.
func (inv Invocation) String() string {
	return strings.Join(append([]string{inv.Binary}, inv.Args...), " ")
}

// Result holds the raw outcome of one completed process execution.
type Result struct {
	// RunID is a generated UUID identifying this invocation in traces.
	RunID string

	// ExitCode is the process exit status. Negative when the process
	// terminated without reporting one (e.g., killed by a signal).
	ExitCode int

	// Stdout and Stderr hold the fully captured output streams.
	Stdout []byte
	Stderr []byte
}

// Runner executes external processes. It is a single-method interface so
// tests can substitute a fake and exercise every calling path without
// spawning real subprocesses.
type Runner interface {
	// Run executes the invocation synchronously, blocking until the
	// process exits, and captures both output streams in full (no
	// streaming). A non-zero exit status is not an error at this level:
	// it is reported inside the Result. Run returns an error only when
	// the process could not be started at all (binary missing, not
	// executable, permissions).
	Run(ctx context.Context, inv Invocation) (*Result, error)
}

// ExecRunner is the production Runner backed by os/exec.
type ExecRunner struct {
	// Debugf, when non-nil, receives one trace line when an invocation
	// starts and one when it completes. The CLI wires this to its
	// verbose logger; domain packages never import the CLI directly.
	Debugf func(format string, args ...any)
}

// Run implements Runner using exec.CommandContext. The context is plumbed
// through so that killing the controller also kills the child process,
// but no deadline is ever attached: a hung external process blocks its
// caller indefinitely.
func (r *ExecRunner) Run(ctx context.Context, inv Invocation) (*Result, error) {
	runID := uuid.New().String()
	r.debugf("run %s: %s (dir %q)", runID, inv, inv.Dir)

	cmd := exec.CommandContext(ctx, inv.Binary, inv.Args...)
	cmd.Dir = inv.Dir

	// Capture the two streams separately. Merging happens later in
	// MergeOutput, whose separator rule needs to see stdout on its own.
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()

	exitCode := 0
	if runErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(runErr, &exitErr) {
			// The process never ran: binary not found, permission
			// denied, or a similar launch failure.
			r.debugf("run %s: start failed: %v", runID, runErr)
			return nil, runErr
		}
		// ExitCode reports -1 when the process was signal-terminated.
		exitCode = exitErr.ExitCode()
	}

	r.debugf("run %s: exit %d", runID, exitCode)

	return &Result{
		RunID:    runID,
		ExitCode: exitCode,
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
	}, nil
}

// debugf forwards to Debugf when it is set.
func (r *ExecRunner) debugf(format string, args ...any) {
	if r.Debugf != nil {
		r.Debugf(format, args...)
	}
}

// StartError reports that an external program could not be launched at
// all. It wraps the underlying platform error, whose text already names
// the binary (e.g. `exec: "docker": executable file not found in $PATH`).
type StartError struct {
	// Binary is the program that failed to launch.
	Binary string

	// Err is the underlying platform error.
	Err error
}

// Error returns the fixed message shape callers display to users.
func (e *StartError) Error() string {
	return fmt.Sprintf("Command failed to start: %v", e.Err)
}

// Unwrap returns the underlying platform error.
func (e *StartError) Unwrap() error {
	return e.Err
}

// ExitError reports that an external program ran and exited non-zero.
type ExitError struct {
	// Code is the exit status. Negative means the process terminated
	// without one, rendered as "unknown".
	Code int

	// Output is the normalized combined output of the failed command.
	Output string
}

// Error returns the fixed message shape callers display to users:
// "Command failed (exit <code or 'unknown'>)" followed by the output on
// the next line.
func (e *ExitError) Error() string {
	code := "unknown"
	if e.Code >= 0 {
		code = strconv.Itoa(e.Code)
	}
	return fmt.Sprintf("Command failed (exit %s)\n%s", code, e.Output)
}

// Checked runs the invocation and folds the raw result into the
// success-text-or-error shape the actions expose: a launch failure
// becomes a *StartError, a non-zero exit becomes an *ExitError carrying
// the normalized output, and a zero exit yields the normalized output
// text, which may be empty.
func Checked(ctx context.Context, r Runner, inv Invocation) (string, error) {
	res, err := r.Run(ctx, inv)
	if err != nil {
		return "", &StartError{Binary: inv.Binary, Err: err}
	}

	text := MergeOutput(res.Stdout, res.Stderr)
	if res.ExitCode != 0 {
		return "", &ExitError{Code: res.ExitCode, Output: text}
	}
	return text, nil
}
