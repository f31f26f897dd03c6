package installer

import (
	"os"

	apperrors "mgas/internal/errors"
	"mgas/internal/logger"
	"mgas/internal/state"
)

// Uninstall removes the managed gh and forgets it in the state file. Only a
// binary recorded as installed by mgas is removed; a gh installed some other
// way is never touched. It reports whether anything was removed.
func (i *Installer) Uninstall() (bool, error) {
	path := state.PathIn(i.dir)
	st, err := state.Load(path)
	if err != nil {
		return false, err
	}
	ts, ok := st.Tools[ToolName]
	if !ok {
		logger.Info("[INFO] No managed gh installation recorded in %s\n", i.dir)
		return false, nil
	}

	logger.Info("[INFO] Removing %s\n", ts.InstallPath)
	if err := os.Remove(ts.InstallPath); err != nil && !os.IsNotExist(err) {
		return false, apperrors.Wrapf(err, "failed to remove %s", ts.InstallPath)
	}

	delete(st.Tools, ToolName)
	if err := st.Save(path); err != nil {
		return false, err
	}
	return true, nil
}
