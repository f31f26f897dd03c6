package ghcli

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/cli/safeexec"

	apperrors "mgas/internal/errors"
	"mgas/internal/logger"
)

// ExecutableName is the file name of the GitHub CLI on this platform.
func ExecutableName() string {
	if runtime.GOOS == "windows" {
		return "gh.exe"
	}
	return "gh"
}

// WellKnownLocations lists the places the GitHub CLI installers put gh on the
// given platform, for when it is installed but not on PATH.
func WellKnownLocations(goos string) []string {
	switch goos {
	case "windows":
		var paths []string
		for _, env := range []struct{ name, rel string }{
			{"ProgramFiles", filepath.Join("GitHub CLI", "gh.exe")},
			{"ProgramFiles(x86)", filepath.Join("GitHub CLI", "gh.exe")},
			{"LocalAppData", filepath.Join("Microsoft", "WindowsApps", "gh.exe")},
		} {
			// An unset variable would turn the candidate into a relative path.
			if base := os.Getenv(env.name); base != "" {
				paths = append(paths, filepath.Join(base, env.rel))
			}
		}
		return paths
	case "darwin":
		return []string{"/opt/homebrew/bin/gh", "/usr/local/bin/gh"}
	default:
		return []string{"/usr/bin/gh", "/usr/local/bin/gh", "/home/linuxbrew/.linuxbrew/bin/gh", "/snap/bin/gh"}
	}
}

// ResolverOptions configures a Resolver. Zero values select the defaults.
type ResolverOptions struct {
	// Override is checked before anything else.
	Override string
	// ExtraPaths are checked after the well-known locations.
	ExtraPaths []string
	// LookPath searches PATH; defaults to safeexec.LookPath.
	LookPath func(file string) (string, error)
	// WellKnown replaces the platform's well-known locations when non-nil.
	WellKnown []string
}

// Resolver locates the gh executable and remembers where it found it.
// The remembered path is reused only while it still exists on disk.
type Resolver struct {
	override  string
	extra     []string
	lookPath  func(string) (string, error)
	wellKnown []string
	cached    string
}

// NewResolver creates a Resolver.
func NewResolver(opts ResolverOptions) *Resolver {
	r := &Resolver{
		override:  opts.Override,
		extra:     opts.ExtraPaths,
		lookPath:  opts.LookPath,
		wellKnown: opts.WellKnown,
	}
	if r.lookPath == nil {
		r.lookPath = safeexec.LookPath
	}
	if r.wellKnown == nil {
		r.wellKnown = WellKnownLocations(runtime.GOOS)
	}
	return r
}

// Resolve returns the path of gh, or false when it cannot be found.
func (r *Resolver) Resolve() (string, bool) {
	if r.cached != "" {
		if fileExists(r.cached) {
			return r.cached, true
		}
		logger.Debug("[DEBUG] Cached gh path %s no longer exists, searching again\n", r.cached)
		r.cached = ""
	}

	for _, candidate := range r.candidates() {
		if candidate != "" && fileExists(candidate) {
			logger.Debug("[DEBUG] Resolved gh at %s\n", candidate)
			r.cached = candidate
			return candidate, true
		}
	}
	return "", false
}

// Ensure returns the path of gh or a *errors.ToolNotFoundError.
func (r *Resolver) Ensure() (string, error) {
	if path, ok := r.Resolve(); ok {
		return path, nil
	}
	return "", apperrors.NewToolNotFoundError("gh", r.Locations())
}

// Locations returns every fixed location the resolver checks, in order,
// excluding the PATH search.
func (r *Resolver) Locations() []string {
	var out []string
	if r.override != "" {
		out = append(out, r.override)
	}
	out = append(out, r.wellKnown...)
	return append(out, r.extra...)
}

// candidates builds the search order: override, PATH, well-known, extra.
func (r *Resolver) candidates() []string {
	var out []string
	if r.override != "" {
		out = append(out, r.override)
	}
	if path, err := r.lookPath(ExecutableName()); err == nil {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
		out = append(out, path)
	}
	out = append(out, r.wellKnown...)
	return append(out, r.extra...)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
