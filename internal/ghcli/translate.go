package ghcli

import (
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"

	apperrors "mgas/internal/errors"
	"mgas/internal/runner"
)

// All interpretation of gh's human-readable output lives in this file.
// The markers are English; gh does not localize them today, but if it ever
// does these are the strings to revisit.

const (
	activeAccountMarker = "Active account"
	noActiveAccount     = "No active account"
)

var (
	loggedInPattern = regexp.MustCompile(`Logged in to \S+ (?:account|as) (\S+)`)
	versionPattern  = regexp.MustCompile(`gh version (\S+)`)
)

// statusOutput picks the stream gh wrote its status report to. Releases
// before 2.40 wrote it to stderr.
func statusOutput(res runner.Result) string {
	if strings.TrimSpace(res.Stdout) != "" {
		return res.Stdout
	}
	return res.Stderr
}

// statusLine reduces `gh auth status` output to one line: the first line
// mentioning the active account, else the first line, else a fixed message.
func statusLine(output string) string {
	if output == "" {
		return noActiveAccount
	}
	lines := strings.Split(strings.ReplaceAll(output, "\r\n", "\n"), "\n")
	for _, line := range lines {
		if strings.Contains(line, activeAccountMarker) {
			return strings.TrimSpace(line)
		}
	}
	return lines[0]
}

// activeUsername extracts the login of the active account from
// `gh auth status` output. It understands the multi-account layout
//
//	✓ Logged in to github.com account alice (keyring)
//	- Active account: true
//
// a single "Active account: alice" marker line, and the single-account
// layout of older releases ("Logged in to github.com as alice").
func activeUsername(output string) string {
	var current, first string
	sawMarker := false

	for _, line := range strings.Split(output, "\n") {
		if m := loggedInPattern.FindStringSubmatch(line); m != nil {
			current = m[1]
			if first == "" {
				first = current
			}
			continue
		}

		idx := strings.Index(line, activeAccountMarker+":")
		if idx < 0 {
			continue
		}
		sawMarker = true
		value := strings.TrimSpace(line[idx+len(activeAccountMarker)+1:])
		switch strings.ToLower(value) {
		case "true":
			if current != "" {
				return current
			}
		case "false", "":
		default:
			return strings.Fields(value)[0]
		}
	}

	if !sawMarker {
		return first
	}
	return ""
}

// parseVersion reads the version number from `gh --version`.
func parseVersion(output string) (*semver.Version, error) {
	m := versionPattern.FindStringSubmatch(output)
	if m == nil {
		return nil, apperrors.Errorf("unrecognized gh --version output: %q", strings.TrimSpace(output))
	}
	v, err := semver.NewVersion(m[1])
	if err != nil {
		return nil, apperrors.Wrapf(err, "invalid gh version %q", m[1])
	}
	return v, nil
}
