package compose

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultComposeFile is the relative path searched for when the settings
// file does not override it: the compose file of a Reframe checkout.
const DefaultComposeFile = "infra/docker-compose.yml"

// NotFoundError reports that the compose file was absent from the working
// directory and every one of its ancestors up to the filesystem root.
type NotFoundError struct {
	// RelPath is the slash-separated relative path that was searched for.
	RelPath string
}

// Error returns the fixed guidance message shown to users.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("could not locate %s; run from inside the project checkout", e.RelPath)
}

// Locate walks from the process's current working directory upward
// through its ancestors and returns the absolute path of the first
// <dir>/<relPath> that exists as a regular file. relPath is
// slash-separated (the form settings files use) and converted to the
// platform separator here; empty means DefaultComposeFile.
//
// Nothing is cached: every call re-walks the filesystem, so the result
// self-corrects when the working directory changes between calls.
func Locate(relPath string) (string, error) {
	if relPath == "" {
		relPath = DefaultComposeFile
	}

	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("unable to read working directory: %w", err)
	}

	rel := filepath.FromSlash(relPath)
	for {
		candidate := filepath.Join(dir, rel)
		// A directory at the candidate path does not count; keep walking.
		if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached the filesystem root without a match.
			return "", &NotFoundError{RelPath: relPath}
		}
		dir = parent
	}
}
