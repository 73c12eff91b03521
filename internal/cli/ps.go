// Package cli — ps.go implements the "reframe-stack ps" command.
//
// The ps command lists the stack's containers by running "compose ps" in
// the compose file's parent directory. The compose output is passed
// through verbatim — reframe-stack does not parse or reformat the table,
// it only merges the two output streams into one readable blob.
package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// NewPSCommand creates the "ps" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewPSCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ps",
		Short: "List the stack's containers",
		Long: `List the containers of the Reframe stack.

Runs "docker compose ps" against the located compose file, falling back to
the legacy docker-compose binary when the compose plugin is unavailable.
The compose output is shown as-is.

Examples:
  reframe-stack ps
  reframe-stack ps --json`,

		// No positional arguments are accepted.
		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runPS(cmd.Context())
		},
	}

	return cmd
}

// runPS is the main logic function for the ps command.
func runPS(ctx context.Context) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}
	st := newStack(cfg)

	out, err := st.PS(ctx)
	if err != nil {
		return err
	}

	printActionResult("ps", out)
	return nil
}

// printActionResult outputs a stack action's merged compose output in text
// or JSON format, depending on the global --json flag.
//
// This is a shared helper used by the ps and down commands; up has its own
// variant that also reports the build flag.
func printActionResult(action, output string) {
	if IsJSONOutput() {
		printActionResultJSON(action, output)
	} else {
		printActionResultText(output)
	}
}

// printActionResultJSON outputs the action result as structured JSON.
func printActionResultJSON(action, output string) {
	result := map[string]interface{}{
		"action": action,
		"output": output,
	}

	data, _ := json.MarshalIndent(result, "", "  ")
	fmt.Println(string(data))
}

// printActionResultText outputs the merged compose output verbatim.
// Compose occasionally produces no output at all (e.g. an already-stopped
// stack), in which case nothing is printed.
func printActionResultText(output string) {
	if output != "" {
		fmt.Println(output)
	}
}
