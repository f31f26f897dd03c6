// Package state records what mgas itself installed, so later runs can tell a
// managed gh apart from one the user installed by other means.
package state

import (
	"encoding/json"
	"os"
	"path/filepath"

	apperrors "mgas/internal/errors"
	"mgas/internal/logger"
)

// FileName is the state file kept inside the managed install directory.
const FileName = "state.json"

// ToolState is the saved state of one installed tool.
type ToolState struct {
	Version     string `json:"version"`      // Release version, without the leading "v"
	Tag         string `json:"tag"`          // Release tag it came from
	Asset       string `json:"asset"`        // Archive the binary was extracted from
	InstallPath string `json:"install_path"` // Absolute path of the executable
}

// State maps tool names to their ToolState.
type State struct {
	Tools map[string]ToolState `json:"tools"`
}

// PathIn returns the state file location for an install directory.
func PathIn(installDir string) string {
	return filepath.Join(installDir, FileName)
}

// Load reads the state file at path. A missing file yields an empty State.
func Load(path string) (*State, error) {
	st := &State{Tools: make(map[string]ToolState)}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return st, nil
		}
		return nil, apperrors.Wrapf(err, "failed to read state file %s", path)
	}
	if err := json.Unmarshal(data, st); err != nil {
		return nil, apperrors.NewParseError(path, "", "", err.Error())
	}
	if st.Tools == nil {
		st.Tools = make(map[string]ToolState)
	}
	return st, nil
}

// Save writes st to path as indented JSON.
func (st *State) Save(path string) error {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal state")
	}
	logger.Debug("[DEBUG] Writing state to %s:\n%s\n", path, string(data))

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return apperrors.Wrapf(err, "failed to create %s", filepath.Dir(path))
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return apperrors.Wrapf(err, "failed to write state file %s", path)
	}
	return nil
}
