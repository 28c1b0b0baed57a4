// Package state persists the order of a registry to a YAML file.
package state

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.lepak.sg/stacklist/freqlist"
	"gopkg.in/yaml.v3"
)

// Version is the state file format written by Save.
const Version = 1

var ErrUnsupportedVersion = errors.New("unsupported state file version")

// State is the on-disk document: a format version and the snapshot of
// the source order.
type State struct {
	Version                   int `yaml:"version"`
	freqlist.Snapshot[string] `yaml:",inline"`
}

// GetStatePath returns the path for the state file.
// If dir is empty, uses the default ~/.stacklist
func GetStatePath(dir string) string {
	if dir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "./.stacklist/state.yaml"
		}
		dir = filepath.Join(homeDir, ".stacklist")
	}
	return filepath.Join(dir, "state.yaml")
}

// Load reads the state from path.
// Returns an empty State if the file doesn't exist (not an error)
func Load(path string) (*State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &State{Version: Version}, nil
		}
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	var st State
	if err := yaml.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("failed to parse state file: %w", err)
	}
	if st.Version > Version {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, st.Version)
	}

	return &st, nil
}

// Save writes st to path, creating its directory if needed.
// The file is replaced atomically.
func Save(st *State, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	st.Version = Version
	data, err := yaml.Marshal(st)
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".state-*.yaml")
	if err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write state file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}

	return nil
}
