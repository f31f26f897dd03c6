package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "mgas/internal/errors"
	"mgas/internal/ghcli"
)

// isolate points HOME and the XDG directories at a temp dir and clears the
// MGAS_* overrides.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("XDG_DATA_HOME", "")
	for _, key := range []string{EnvProfilesFile, EnvSettingsFile, EnvGhPath, EnvInstallDir, EnvGitProtocol} {
		t.Setenv(key, "")
	}
	return home
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaultsWhenDefaultFileMissing(t *testing.T) {
	home := isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, DefaultProfilesFileName), cfg.ProfilesFile)
	assert.Equal(t, filepath.Join(home, DefaultSettingsFileName), cfg.SettingsFile)
	assert.Equal(t, filepath.Join(home, ".local", "share", "mgas", "bin"), cfg.InstallDir)
	assert.Equal(t, ghcli.ProtocolHTTPS, cfg.Protocol())
	assert.Empty(t, cfg.GhPath)
}

func TestLoadReadsDefaultLocation(t *testing.T) {
	isolate(t)
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	require.NoError(t, os.MkdirAll(filepath.Join(xdg, "mgas"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(xdg, "mgas", FileName), []byte("git_protocol: ssh\n"), 0o644))

	path, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(xdg, "mgas", FileName), path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ghcli.ProtocolSSH, cfg.Protocol())
}

func TestLoadExplicitFileMustExist(t *testing.T) {
	isolate(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidConfiguration))
}

func TestLoadFileValues(t *testing.T) {
	home := isolate(t)
	path := writeConfig(t, `
profiles_file: ~/accounts.json
settings_file: /etc/mgas/settings.json
gh_path: /opt/gh/bin/gh
search_paths:
  - ~/bin/gh
install_dir: /opt/mgas
git_protocol: SSH
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "accounts.json"), cfg.ProfilesFile)
	assert.Equal(t, "/etc/mgas/settings.json", cfg.SettingsFile)
	assert.Equal(t, "/opt/gh/bin/gh", cfg.GhPath)
	assert.Equal(t, []string{filepath.Join(home, "bin", "gh")}, cfg.SearchPaths)
	assert.Equal(t, "/opt/mgas", cfg.InstallDir)
	assert.Equal(t, "ssh", cfg.GitProtocol)
}

func TestLoadEmptyFileKeepsDefaults(t *testing.T) {
	home := isolate(t)

	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, DefaultProfilesFileName), cfg.ProfilesFile)
}

func TestLoadEnvironmentOverridesFile(t *testing.T) {
	isolate(t)
	path := writeConfig(t, "profiles_file: /from/file.json\ngit_protocol: https\n")
	t.Setenv(EnvProfilesFile, "/from/env.json")
	t.Setenv(EnvGitProtocol, "ssh")
	t.Setenv(EnvGhPath, "/env/gh")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/from/env.json", cfg.ProfilesFile)
	assert.Equal(t, "ssh", cfg.GitProtocol)
	assert.Equal(t, "/env/gh", cfg.GhPath)
}

func TestLoadRejectsInvalidFiles(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown key", "profile_file: typo.json\n"},
		{"bad protocol", "git_protocol: ftp\n"},
		{"not yaml", "profiles_file: [unterminated\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.True(t, apperrors.Is(err, apperrors.ErrInvalidConfiguration))
		})
	}
}

func TestExpandHome(t *testing.T) {
	home := isolate(t)

	tests := []struct {
		in   string
		want string
	}{
		{"~", home},
		{"~/x/y.json", filepath.Join(home, "x", "y.json")},
		{"/abs/path", "/abs/path"},
		{"relative/~", "relative/~"},
		{"", ""},
	}
	for _, tt := range tests {
		got, err := ExpandHome(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, tt.in)
	}
}
