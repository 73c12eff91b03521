// Package cli — up.go implements the "reframe-stack up" command.
//
// The up command starts the Reframe stack in detached mode, removing
// orphaned containers left behind by earlier compose file revisions.
// Images are rebuilt first by default; --build=false skips the rebuild
// and passes --no-build instead.
package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// upFlags holds the flag values for the up command.
// These are bound to cobra flags in NewUpCommand.
type upFlags struct {
	// build selects between rebuilding images before starting (true,
	// the default) and starting from existing images (false).
	build bool
}

// NewUpCommand creates the "up" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewUpCommand() *cobra.Command {
	flags := &upFlags{}

	cmd := &cobra.Command{
		Use:   "up",
		Short: "Start the Reframe stack",
		Long: `Start all services of the Reframe stack in detached mode.

Runs "docker compose up -d --remove-orphans --build" against the located
compose file. Orphaned containers from earlier compose file revisions are
removed. Pass --build=false to start from existing images without
rebuilding (compose receives --no-build).

Examples:
  reframe-stack up
  reframe-stack up --build=false
  reframe-stack up --json`,

		// No positional arguments are accepted.
		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runUp(cmd.Context(), flags)
		},
	}

	// Register command-specific flags. The build flag defaults to true,
	// matching the desktop shell's behavior when the toggle is untouched.
	cmd.Flags().BoolVar(&flags.build, "build", true, "Rebuild images before starting (use --build=false to skip)")

	return cmd
}

// runUp is the main logic function for the up command.
func runUp(ctx context.Context, flags *upFlags) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}
	st := newStack(cfg)

	VerboseLog("Starting stack (build=%t)", flags.build)

	out, err := st.Up(ctx, flags.build)
	if err != nil {
		return err
	}

	printUpResult(out, flags.build)
	return nil
}

// printUpResult outputs the up command result in text or JSON format.
// Unlike the shared printActionResult, the JSON form also reports which
// build mode was requested.
func printUpResult(output string, build bool) {
	if IsJSONOutput() {
		result := map[string]interface{}{
			"action": "up",
			"build":  build,
			"output": output,
		}
		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(data))
		return
	}

	printActionResultText(output)
}
