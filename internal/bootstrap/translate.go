package bootstrap

import (
	"strings"

	apperrors "mgas/internal/errors"
	"mgas/internal/runner"
)

// Interpretation of git's exit codes and output for the bootstrap sequence.
// "nothing to commit" is matched in English only; git translates it under
// other locales, in which case a clean tree is reported as a failure.

const nothingToCommitMarker = "nothing to commit"

// processFailed reports whether err is a non-zero exit, as opposed to a
// process that could not be started at all.
func processFailed(err error) bool {
	var perr *apperrors.ProcessError
	return apperrors.As(err, &perr)
}

// workTreeResult interprets `git rev-parse --is-inside-work-tree` by exit
// code alone: zero means the folder is already in a repository, non-zero
// means it is not. Failing to start git is returned as an error.
func workTreeResult(_ runner.Result, err error) (bool, error) {
	if err != nil {
		if processFailed(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// remoteExistsResult interprets `git remote get-url <name>`: exit 0 means the
// remote exists, a non-zero exit means it does not.
func remoteExistsResult(err error) (bool, error) {
	if err == nil {
		return true, nil
	}
	if processFailed(err) {
		return false, nil
	}
	return false, err
}

// commitResult interprets `git commit`: a failure that only says there was
// nothing to commit counts as success.
func commitResult(err error) error {
	if err == nil {
		return nil
	}
	var perr *apperrors.ProcessError
	if apperrors.As(err, &perr) && strings.Contains(strings.ToLower(perr.Output()), nothingToCommitMarker) {
		return nil
	}
	return err
}
