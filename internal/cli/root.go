// Package cli implements the cobra-based CLI commands for reframe-stack.
//
// Each subcommand (docker-version, path, ps, up, down, serve) is defined in
// its own file within this package. This file defines the root command that
// serves as the parent for all subcommands and handles global flags.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/reframe-media/reframe-stack/internal/compose"
	"github.com/reframe-media/reframe-stack/internal/config"
	"github.com/reframe-media/reframe-stack/internal/model"
	"github.com/reframe-media/reframe-stack/internal/runner"
)

// Global flag variables shared across all subcommands.
// These are bound to cobra persistent flags on the root command,
// which makes them available to every subcommand automatically.
var (
	// jsonOutput controls whether command output is formatted as JSON.
	// When true, all output uses structured JSON format for machine consumption.
	// When false (default), output uses human-readable text format.
	jsonOutput bool

	// verbose enables detailed logging output for debugging.
	// When true, additional information about operations is printed to stderr.
	verbose bool

	// configPath overrides the default settings file location.
	// Empty means <user config dir>/reframe-stack/config.yml, which may
	// be absent; an explicitly given path must exist.
	configPath string
)

// version, commit, and date are set at build time via ldflags.
// They are injected from the main package to display version information.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// NewRootCommand creates and configures the root cobra command.
// This is the entry point for the entire CLI application.
//
// The root command itself does not perform any action — it only provides
// help text and global flags. Actual functionality is provided by
// subcommands (docker-version, path, ps, up, down, serve).
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		// Use is the one-line usage pattern shown in help output.
		Use:   "reframe-stack",
		Short: "Backend for driving the Reframe container stack",
		Long: `reframe-stack is the backend the Reframe desktop shell uses to drive the
local container stack (api, worker, redis). It locates the checkout's
infra/docker-compose.yml by walking upward from the current directory and
shells out to docker compose, falling back to the legacy docker-compose
binary when the compose plugin is unavailable.

Every command works standalone too, so the same actions the shell invokes
can be run by hand from a terminal inside the checkout.`,

		// SilenceUsage prevents cobra from printing usage on every error.
		// We handle error output ourselves for cleaner UX.
		SilenceUsage: true,

		// SilenceErrors prevents cobra from printing errors automatically.
		// We format errors ourselves (text or JSON based on --json flag).
		SilenceErrors: true,

		// Version is displayed when --version flag is used.
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),
	}

	// PersistentFlags are inherited by all subcommands. This is the cobra
	// mechanism for global flags — any flag defined here is automatically
	// available in every subcommand without re-declaration.
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Settings file path (default: <user config dir>/reframe-stack/config.yml)")

	// Register subcommands. Each subcommand is defined in its own file
	// (up.go, down.go, etc.) and returns a *cobra.Command.
	rootCmd.AddCommand(NewDockerVersionCommand())
	rootCmd.AddCommand(NewPathCommand())
	rootCmd.AddCommand(NewPSCommand())
	rootCmd.AddCommand(NewUpCommand())
	rootCmd.AddCommand(NewDownCommand())
	rootCmd.AddCommand(NewServeCommand())

	return rootCmd
}

// Execute runs the root command and handles exit codes.
// This is the main entry point called from main.go.
//
// It inspects errors returned by cobra commands and translates them
// into appropriate OS exit codes. Domain errors (compose file not found,
// docker not launchable, command exited non-zero) are mapped here, once,
// at the CLI boundary; the domain packages themselves never reference
// exit codes.
func Execute(rootCmd *cobra.Command) {
	if err := rootCmd.Execute(); err != nil {
		cliErr := toCLIError(err)
		printError(cliErr.Message, cliErr.Err)
		os.Exit(int(cliErr.Code))
	}
}

// toCLIError translates any error reaching the top-level executor into a
// CLIError carrying the documented exit code: compose file not found → 2,
// docker (or docker-compose) not launchable → 3, external command exited
// non-zero → 4, invalid settings → 5 (pre-wrapped by loadSettings), and
// anything else → 1. Domain error messages already embed their cause, so
// they become the CLIError message verbatim.
func toCLIError(err error) *model.CLIError {
	var cliErr *model.CLIError
	if errors.As(err, &cliErr) {
		return cliErr
	}

	var notFound *compose.NotFoundError
	if errors.As(err, &notFound) {
		return model.NewCLIError(model.ExitComposeFileNotFound, err.Error())
	}

	var startErr *runner.StartError
	if errors.As(err, &startErr) {
		return model.NewCLIError(model.ExitDockerUnavailable, err.Error())
	}

	var exitErr *runner.ExitError
	if errors.As(err, &exitErr) {
		return model.NewCLIError(model.ExitCommandFailed, err.Error())
	}

	return model.NewCLIError(model.ExitGeneralError, err.Error())
}

// printError outputs an error message in the appropriate format
// (JSON or text) based on the --json global flag.
func printError(message string, underlying error) {
	if jsonOutput {
		// JSON error format matches what the desktop shell parses.
		errObj := map[string]interface{}{
			"error": map[string]interface{}{
				"message": message,
			},
		}
		if underlying != nil {
			if errMap, ok := errObj["error"].(map[string]interface{}); ok {
				errMap["detail"] = underlying.Error()
			}
		}
		// json.MarshalIndent produces human-readable JSON with indentation.
		// We write to stderr for errors, even in JSON mode, because stdout
		// is reserved for successful command output.
		data, _ := json.MarshalIndent(errObj, "", "  ")
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		// Text format: "Error: <message>" on stderr.
		if underlying != nil {
			fmt.Fprintf(os.Stderr, "Error: %s: %v\n", message, underlying)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %s\n", message)
		}
	}
}

// VerboseLog prints a message to stderr only when verbose mode is enabled.
// This is used throughout the CLI for debug/trace output that helps
// users understand what operations are being performed.
func VerboseLog(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[verbose] "+format+"\n", args...)
	}
}

// IsJSONOutput returns whether the --json flag is set.
// Subcommands use this to decide their output format.
func IsJSONOutput() bool {
	return jsonOutput
}

// loadSettings resolves and loads the settings file. The default location
// is allowed to be absent (compiled-in defaults apply); a file requested
// explicitly via --config must exist. Settings problems carry the invalid
// settings exit code so scripts can tell them apart from stack failures.
func loadSettings() (*config.Config, error) {
	path := configPath
	if path == "" {
		defaultPath, err := config.DefaultPath()
		if err != nil {
			// No resolvable user config dir (e.g. HOME unset). Run on
			// compiled-in defaults rather than failing the action.
			VerboseLog("No user config dir (%v); using built-in defaults", err)
			return &config.Config{}, nil
		}
		path = defaultPath
	} else if _, err := os.Stat(path); err != nil {
		// Only the default location may be absent.
		return nil, model.WrapCLIError(model.ExitInvalidSettings,
			fmt.Sprintf("settings file %q is not readable", path), err)
	}

	VerboseLog("Settings file: %s", path)

	cfg, err := config.Load(path)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitInvalidSettings, "invalid settings", err)
	}
	return cfg, nil
}

// newStack builds the compose.Stack all action commands drive, wiring the
// real process runner's trace output to the --verbose logger. Empty
// settings fields select the stack's compiled-in defaults.
func newStack(cfg *config.Config) *compose.Stack {
	return &compose.Stack{
		Runner:       &runner.ExecRunner{Debugf: VerboseLog},
		ComposeFile:  cfg.ComposeFile,
		DockerBinary: cfg.DockerBinary,
		LegacyBinary: cfg.LegacyComposeBinary,
	}
}
