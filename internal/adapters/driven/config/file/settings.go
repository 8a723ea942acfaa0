// Package file loads and saves repocat settings from a TOML file in the
// user's config directory.
package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Settings holds user configuration. Every field is optional; zero
// values fall back to working defaults downstream.
type Settings struct {
	// Token is the GitHub access token. Flag and environment take
	// precedence over this value.
	Token string `toml:"token"`

	// Extensions overrides the allow-listed file suffixes.
	Extensions []string `toml:"extensions"`

	// Exclude overrides the pruned path segment.
	Exclude string `toml:"exclude"`

	// Concurrency caps simultaneous file content fetches.
	Concurrency int64 `toml:"concurrency"`

	// InlineContent fences file contents under their tree line instead
	// of appending them after the tree.
	InlineContent bool `toml:"inline_content"`

	// MinRemaining is the quota floor for the pre-flight guard.
	MinRemaining int `toml:"min_remaining"`

	// RequestsPerSecond throttles outgoing API calls. Zero disables
	// the throttle.
	RequestsPerSecond float64 `toml:"requests_per_second"`
}

// DefaultPath returns ~/.repocat/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".repocat", "config.toml"), nil
}

// Load reads settings from path, or from DefaultPath when path is empty.
// A missing file yields zero settings.
func Load(path string) (Settings, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return Settings{}, err
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Settings{}, nil
	}
	if err != nil {
		return Settings{}, err
	}

	var s Settings
	if err := toml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return s, nil
}

// Save writes settings to path, creating the config directory if needed.
func Save(path string, s Settings) error {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	data, err := toml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
