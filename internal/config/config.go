// Package config loads and validates the optional reframe-stack settings
// file.
//
// The file is plain YAML, read-only to this program, and entirely
// optional: a missing file yields a zero Config whose empty fields select
// the compiled-in defaults downstream (infra/docker-compose.yml, docker,
// docker-compose). There is deliberately no environment-variable
// configuration.
package config

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the parsed settings. All fields are optional; zero values
// represent defaults.
type Config struct {
	// ComposeFile is the slash-separated relative path of the compose
	// file, searched for by walking ancestors of the working directory.
	ComposeFile string `yaml:"compose_file"`

	// DockerBinary overrides the primary program name (docker).
	DockerBinary string `yaml:"docker_binary"`

	// LegacyComposeBinary overrides the fallback program name
	// (docker-compose).
	LegacyComposeBinary string `yaml:"legacy_compose_binary"`
}

// DefaultPath returns the per-user settings location:
// <user config dir>/reframe-stack/config.yml.
func DefaultPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving user config dir: %w", err)
	}
	return filepath.Join(base, "reframe-stack", "config.yml"), nil
}

// Load reads and validates the settings file at path. A missing file is
// not an error here — callers that require the file to exist (an explicit
// --config flag) check for it themselves.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading settings: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing settings: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the compose file walk cannot use.
func (c *Config) Validate() error {
	if c.ComposeFile == "" {
		return nil
	}
	if filepath.IsAbs(filepath.FromSlash(c.ComposeFile)) {
		return fmt.Errorf("compose_file must be a relative path, got %q", c.ComposeFile)
	}
	// The path is joined to every ancestor during the walk, so it must
	// not climb out of the directory it is joined to.
	clean := path.Clean(c.ComposeFile)
	if clean == ".." || strings.HasPrefix(clean, "../") {
		return fmt.Errorf("compose_file must not escape the checkout, got %q", c.ComposeFile)
	}
	return nil
}
