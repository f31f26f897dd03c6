package installer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	apperrors "mgas/internal/errors"
	"mgas/internal/logger"
)

const (
	// DefaultAPIURL is the GitHub REST endpoint releases are fetched from.
	DefaultAPIURL = "https://api.github.com"
	// GhRepository is the repository gh is released from.
	GhRepository = "cli/cli"
)

// Release is the subset of a GitHub release the installer reads.
type Release struct {
	TagName string  `json:"tag_name"`
	Assets  []Asset `json:"assets"`
}

// Asset is one downloadable file of a release.
type Asset struct {
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"`
}

// supportedArchives lists the archive suffixes the extractor handles, in
// order of preference when a release ships more than one for a platform.
var supportedArchives = []string{".tar.gz", ".tgz", ".zip", ".tar.xz", ".tar.bz2", ".7z"}

// releaseURL returns the API URL for tag, or for the latest release when tag is empty.
func releaseURL(apiURL, repo, tag string) string {
	base := strings.TrimSuffix(apiURL, "/")
	if tag == "" {
		return fmt.Sprintf("%s/repos/%s/releases/latest", base, repo)
	}
	return fmt.Sprintf("%s/repos/%s/releases/tags/%s", base, repo, tag)
}

// fetchRelease reads release metadata from the GitHub API.
func fetchRelease(ctx context.Context, client *http.Client, url string) (*Release, error) {
	logger.Debug("[DEBUG] Fetching GitHub release from URL: %s\n", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to build release request")
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, apperrors.Wrapf(err, "failed to fetch release %s", url)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			logger.Warn("[WARN] Failed to close HTTP response body: %v\n", cerr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.Errorf("GitHub release fetch failed: %s: HTTP status %d", url, resp.StatusCode)
	}

	var release Release
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, apperrors.Wrap(err, "failed to decode GitHub release JSON")
	}
	logger.Debug("[DEBUG] Release tag: %s with %d assets\n", release.TagName, len(release.Assets))
	return &release, nil
}

// platformName maps GOOS to the spelling gh uses in asset names.
func platformName(goos string) string {
	if goos == "darwin" {
		return "macos"
	}
	return goos
}

// SelectAsset picks the archive for goos/goarch, e.g. gh_2.62.0_linux_amd64.tar.gz
// or gh_2.62.0_macOS_arm64.zip. Installers such as .msi, .deb and .rpm are
// never chosen.
func SelectAsset(release *Release, goos, goarch string) (Asset, error) {
	platform := "_" + platformName(strings.ToLower(goos)) + "_" + strings.ToLower(goarch)

	for _, suffix := range supportedArchives {
		for _, asset := range release.Assets {
			name := strings.ToLower(asset.Name)
			if strings.Contains(name, platform) && strings.HasSuffix(name, suffix) {
				logger.Debug("[DEBUG] Found matching asset: %s\n", asset.Name)
				return asset, nil
			}
		}
	}
	return Asset{}, apperrors.Errorf("no matching asset found for OS=%s ARCH=%s in release %s", goos, goarch, release.TagName)
}
