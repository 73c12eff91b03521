// Package compose locates the Reframe compose file and drives the local
// stack through external docker invocations.
//
// This package handles:
//   - Compose file discovery: an upward walk from the working directory
//     through its ancestors (Locate)
//   - The five stack actions the desktop shell calls: docker version,
//     compose file path, ps, up, down (Stack methods)
//   - The dual-CLI fallback between the modern plugin form
//     ("docker compose") and the legacy standalone binary
//     ("docker-compose")
//
// All Docker operations are performed via os/exec calls through the
// runner package rather than the Docker Engine SDK. Everything the shell
// needs is, by contract, one compose CLI invocation executed in the
// compose file's parent directory; no daemon socket is ever opened.
package compose
