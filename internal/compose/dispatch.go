package compose

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/reframe-media/reframe-stack/internal/runner"
)

// Default binary names for the two Docker Compose distributions found in
// the wild: the modern plugin subcommand and the legacy standalone binary.
const (
	DefaultDockerBinary = "docker"
	DefaultLegacyBinary = "docker-compose"
)

// legacyRetrySignatures are the error-text fragments identifying a docker
// binary whose CLI surface does not support the compose plugin form (or
// one of the flags the actions pass). Matching is case-insensitive
// against the full ExitError message. Substring matching on
// human-readable CLI output is a known fragility — localized or reworded
// docker releases could break it — but it is the only signal the CLI
// offers without probing.
var legacyRetrySignatures = []string{
	"is not a docker command",
	"unknown command",
	"unknown shorthand flag",
	"unknown flag: --no-build",
}

// Stack drives the Reframe compose stack through external invocations.
// Its five exported methods map one-to-one onto the actions exposed to
// the desktop shell. All string fields default sensibly when empty, so
// tests can construct a Stack with just a Runner.
type Stack struct {
	// Runner executes external processes. Tests substitute a fake.
	Runner runner.Runner

	// ComposeFile is the slash-separated relative path located by
	// walking ancestors of the working directory.
	// Empty means DefaultComposeFile.
	ComposeFile string

	// DockerBinary is the primary program for every invocation.
	// Empty means DefaultDockerBinary.
	DockerBinary string

	// LegacyBinary is the fallback program, invoked at most once per
	// action. Empty means DefaultLegacyBinary.
	LegacyBinary string
}

// DockerVersion runs `docker --version` directly: no compose subcommand,
// no file discovery, and the controller's own working directory. The
// desktop shell uses this as its "is docker installed" probe.
func (s *Stack) DockerVersion(ctx context.Context) (string, error) {
	return runner.Checked(ctx, s.Runner, runner.Invocation{
		Binary: s.dockerBinary(),
		Args:   []string{"--version"},
	})
}

// FilePath resolves and returns the compose file path. The result is
// display text for the caller; the file itself is never opened.
func (s *Stack) FilePath() (string, error) {
	return Locate(s.ComposeFile)
}

// PS lists the stack's containers via `compose ps`.
func (s *Stack) PS(ctx context.Context) (string, error) {
	return s.runCompose(ctx, "ps")
}

// Up starts the stack detached, removing orphaned containers left behind
// by earlier compose file revisions. build selects between `--build`
// (rebuild images first — the desktop shell's default) and `--no-build`.
func (s *Stack) Up(ctx context.Context, build bool) (string, error) {
	args := []string{"up", "-d", "--remove-orphans"}
	if build {
		args = append(args, "--build")
	} else {
		args = append(args, "--no-build")
	}
	return s.runCompose(ctx, args...)
}

// Down stops and removes the stack's containers and networks.
func (s *Stack) Down(ctx context.Context) (string, error) {
	return s.runCompose(ctx, "down")
}

// runCompose locates the compose file, then runs the requested compose
// operation in the file's parent directory: first in the plugin form
// (`docker compose -f <path> ...args`), then — only when the primary
// attempt failed in a way that identifies a missing plugin — exactly once
// more in the legacy form (`docker-compose -f <path> ...args`). The
// fallback attempt's outcome, success or failure, is final. Any other
// primary failure propagates unchanged: a retry must not mask genuine
// compose errors such as a container that failed to start.
func (s *Stack) runCompose(ctx context.Context, args ...string) (string, error) {
	path, err := Locate(s.ComposeFile)
	if err != nil {
		return "", err
	}

	dir := filepath.Dir(path)
	if dir == path {
		// Cannot happen for a path produced by Locate; guards a future
		// caller handing in the filesystem root.
		return "", fmt.Errorf("compose file %s has no parent directory", path)
	}

	primary := runner.Invocation{
		Binary: s.dockerBinary(),
		Args:   append([]string{"compose", "-f", path}, args...),
		Dir:    dir,
	}
	out, err := runner.Checked(ctx, s.Runner, primary)
	if err == nil {
		return out, nil
	}
	if !retryWithLegacy(err) {
		return "", err
	}

	legacy := runner.Invocation{
		Binary: s.legacyBinary(),
		Args:   append([]string{"-f", path}, args...),
		Dir:    dir,
	}
	return runner.Checked(ctx, s.Runner, legacy)
}

// retryWithLegacy decides whether a failed primary attempt warrants the
// one permitted fallback to the legacy binary. It is a pure function of
// the primary error: true when the docker binary itself never launched,
// or when its error text carries one of the unsupported-CLI signatures.
func retryWithLegacy(err error) bool {
	var startErr *runner.StartError
	if errors.As(err, &startErr) {
		return true
	}

	var exitErr *runner.ExitError
	if !errors.As(err, &exitErr) {
		return false
	}

	msg := strings.ToLower(exitErr.Error())
	for _, sig := range legacyRetrySignatures {
		if strings.Contains(msg, sig) {
			return true
		}
	}
	return false
}

func (s *Stack) dockerBinary() string {
	if s.DockerBinary == "" {
		return DefaultDockerBinary
	}
	return s.DockerBinary
}

func (s *Stack) legacyBinary() string {
	if s.LegacyBinary == "" {
		return DefaultLegacyBinary
	}
	return s.LegacyBinary
}
