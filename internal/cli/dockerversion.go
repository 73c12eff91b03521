// Package cli — dockerversion.go implements the "reframe-stack
// docker-version" command.
//
// The command runs "docker --version" directly: no compose subcommand and
// no compose file discovery, so it works from any directory. The desktop
// shell uses it as its "is docker installed" probe before offering stack
// actions.
package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// NewDockerVersionCommand creates the "docker-version" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewDockerVersionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docker-version",
		Short: "Report the installed docker version",
		Long: `Report the installed docker version by running "docker --version".

Unlike the stack commands, this does not look for the compose file, so it
works from any directory. A failure here usually means docker is not
installed or not on PATH.

Examples:
  reframe-stack docker-version
  reframe-stack docker-version --json`,

		// No positional arguments are accepted.
		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runDockerVersion(cmd.Context())
		},
	}

	return cmd
}

// runDockerVersion is the main logic function for the docker-version
// command. It builds the stack from settings and runs the version probe.
func runDockerVersion(ctx context.Context) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}
	st := newStack(cfg)

	out, err := st.DockerVersion(ctx)
	if err != nil {
		return err
	}

	printDockerVersionResult(out)
	return nil
}

// printDockerVersionResult outputs the version line in text or JSON
// format, depending on the global --json flag.
func printDockerVersionResult(version string) {
	if IsJSONOutput() {
		result := map[string]interface{}{
			"version": version,
		}
		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(data))
		return
	}

	fmt.Println(version)
}
