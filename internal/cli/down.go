// Package cli — down.go implements the "reframe-stack down" command.
//
// The down command stops the Reframe stack and removes its containers and
// networks by running "compose down". Volumes are left in place, so the
// stack's data survives a restart.
package cli

import (
	"context"

	"github.com/spf13/cobra"
)

// NewDownCommand creates the "down" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewDownCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Stop the Reframe stack",
		Long: `Stop the Reframe stack and remove its containers and networks.

Runs "docker compose down" against the located compose file. Named volumes
are preserved, so databases and caches keep their data across restarts.

Examples:
  reframe-stack down
  reframe-stack down --json`,

		// No positional arguments are accepted.
		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runDown(cmd.Context())
		},
	}

	return cmd
}

// runDown is the main logic function for the down command.
func runDown(ctx context.Context) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}
	st := newStack(cfg)

	out, err := st.Down(ctx)
	if err != nil {
		return err
	}

	printActionResult("down", out)
	return nil
}
