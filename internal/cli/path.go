// Package cli — path.go implements the "reframe-stack path" command.
//
// The path command resolves and prints the absolute path of the compose
// file, found by walking from the current directory upward through its
// ancestors. It runs no external process; the desktop shell uses it to
// show which checkout a window is operating on.
package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// NewPathCommand creates the "path" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewPathCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "path",
		Short: "Print the resolved compose file path",
		Long: `Print the absolute path of the compose file that stack commands will use.

The file is located by checking the current directory and then each parent
for infra/docker-compose.yml (or the path configured in the settings file).
Nothing is cached: the walk runs fresh on every call.

Examples:
  reframe-stack path
  reframe-stack path --json`,

		// No positional arguments are accepted.
		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runPath()
		},
	}

	return cmd
}

// runPath is the main logic function for the path command.
// It resolves the compose file location without launching any process.
func runPath() error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}
	st := newStack(cfg)

	path, err := st.FilePath()
	if err != nil {
		return err
	}

	VerboseLog("Located compose file: %s", path)

	printPathResult(path)
	return nil
}

// printPathResult outputs the resolved path in text or JSON format,
// depending on the global --json flag.
func printPathResult(path string) {
	if IsJSONOutput() {
		result := map[string]interface{}{
			"path": path,
		}
		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(data))
		return
	}

	fmt.Println(path)
}
