// Package runner executes external processes for reframe-stack.
//
// The Runner interface is the single seam between the action layer and
// the operating system: one method that runs a program with arguments in
// a directory and reports the exit code plus both captured streams.
// ExecRunner is the os/exec-backed production implementation; tests
// substitute fakes that never launch anything.
//
// Checked layers the user-facing contract on top of the raw seam:
//   - launch failure → StartError ("Command failed to start: <cause>")
//   - non-zero exit → ExitError ("Command failed (exit N)" + output)
//   - zero exit → the normalized combined output text (possibly empty)
//
// MergeOutput defines "normalized": both streams decoded lossily, stderr
// appended after stdout with at most one separating newline, surrounding
// whitespace trimmed.
package runner
