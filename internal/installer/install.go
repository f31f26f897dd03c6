// Package installer downloads the GitHub CLI from its GitHub releases and
// places it in the managed install directory, where the gh resolver looks
// for it.
package installer

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/otiai10/copy"

	apperrors "mgas/internal/errors"
	"mgas/internal/logger"
	"mgas/internal/state"
)

// ToolName is the state key for the managed gh.
const ToolName = "gh"

// Options configures an Installer. Zero values fall back to the GitHub API,
// the cli/cli repository, http.DefaultClient and the running platform.
type Options struct {
	Dir        string
	APIURL     string
	Repository string
	HTTPClient *http.Client
	GOOS       string
	GOARCH     string
}

// Installer installs and removes the managed gh.
type Installer struct {
	dir    string
	apiURL string
	repo   string
	client *http.Client
	goos   string
	goarch string
}

// Result describes a completed installation.
type Result struct {
	Version *semver.Version
	Tag     string
	Asset   string
	Path    string
}

// New creates an Installer.
func New(opts Options) *Installer {
	i := &Installer{
		dir:    opts.Dir,
		apiURL: opts.APIURL,
		repo:   opts.Repository,
		client: opts.HTTPClient,
		goos:   opts.GOOS,
		goarch: opts.GOARCH,
	}
	if i.apiURL == "" {
		i.apiURL = DefaultAPIURL
	}
	if i.repo == "" {
		i.repo = GhRepository
	}
	if i.client == nil {
		i.client = http.DefaultClient
	}
	if i.goos == "" {
		i.goos = runtime.GOOS
	}
	if i.goarch == "" {
		i.goarch = runtime.GOARCH
	}
	return i
}

// Dir returns the managed install directory.
func (i *Installer) Dir() string {
	return i.dir
}

// ExecutablePath returns where the managed gh lives once installed.
func (i *Installer) ExecutablePath() string {
	return filepath.Join(i.dir, i.executableName())
}

// executableName is gh or gh.exe depending on the target platform.
func (i *Installer) executableName() string {
	if i.goos == "windows" {
		return "gh.exe"
	}
	return "gh"
}

// Install downloads the release with the given tag (latest when empty),
// extracts gh from it and copies it into the install directory. The
// installation is recorded in the state file next to the binary.
func (i *Installer) Install(ctx context.Context, tag string) (*Result, error) {
	if i.dir == "" {
		return nil, apperrors.NewConfigError("install_dir", nil, "must not be empty")
	}
	if tag != "" && !strings.HasPrefix(tag, "v") {
		tag = "v" + tag
	}

	release, err := fetchRelease(ctx, i.client, releaseURL(i.apiURL, i.repo, tag))
	if err != nil {
		return nil, err
	}
	version, err := semver.NewVersion(release.TagName)
	if err != nil {
		return nil, apperrors.Wrapf(err, "release tag %q is not a version", release.TagName)
	}
	asset, err := SelectAsset(release, i.goos, i.goarch)
	if err != nil {
		return nil, err
	}

	tmp, err := os.MkdirTemp("", "mgas-gh-*")
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to create download directory")
	}
	defer func() {
		if rerr := os.RemoveAll(tmp); rerr != nil {
			logger.Warn("[WARN] Failed to remove %s: %v\n", tmp, rerr)
		}
	}()

	archive := filepath.Join(tmp, filepath.Base(asset.Name))
	logger.Info("[INFO] Downloading %s\n", asset.Name)
	if err := downloadFile(ctx, i.client, asset.BrowserDownloadURL, archive); err != nil {
		return nil, err
	}

	extracted := filepath.Join(tmp, "extracted")
	if err := ExtractArchive(archive, extracted); err != nil {
		return nil, apperrors.Wrapf(err, "failed to extract %s", asset.Name)
	}
	binary, err := findExecutable(extracted, i.executableName())
	if err != nil {
		return nil, err
	}

	dest := i.ExecutablePath()
	if err := os.MkdirAll(i.dir, 0o755); err != nil {
		return nil, apperrors.Wrapf(err, "cannot create install directory %s", i.dir)
	}
	if err := copy.Copy(binary, dest, copy.Options{
		PermissionControl: copy.AddPermission(0o755),
		Sync:              true,
	}); err != nil {
		return nil, apperrors.Wrapf(err, "failed to copy %s to %s", binary, dest)
	}

	if err := i.record(state.ToolState{
		Version:     version.String(),
		Tag:         release.TagName,
		Asset:       asset.Name,
		InstallPath: dest,
	}); err != nil {
		return nil, err
	}

	logger.Info("[INFO] Installed gh %s to %s\n", version, dest)
	return &Result{Version: version, Tag: release.TagName, Asset: asset.Name, Path: dest}, nil
}

// Installed returns the recorded state of the managed gh, if any.
func (i *Installer) Installed() (state.ToolState, bool, error) {
	st, err := state.Load(state.PathIn(i.dir))
	if err != nil {
		return state.ToolState{}, false, err
	}
	ts, ok := st.Tools[ToolName]
	return ts, ok, nil
}

// record stores ts as the managed gh in the state file.
func (i *Installer) record(ts state.ToolState) error {
	path := state.PathIn(i.dir)
	st, err := state.Load(path)
	if err != nil {
		return err
	}
	st.Tools[ToolName] = ts
	return st.Save(path)
}
