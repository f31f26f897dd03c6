package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	apperrors "mgas/internal/errors"
	"mgas/internal/ghcli"
	"mgas/internal/logger"
)

// New returns a Config holding the defaults. Paths still contain "~" until
// Finalize expands them.
func New() *Config {
	installDir := "~/.local/share/mgas/bin"
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		installDir = filepath.Join(dataHome, "mgas", "bin")
	}
	return &Config{
		ProfilesFile: "~/" + DefaultProfilesFileName,
		SettingsFile: "~/" + DefaultSettingsFileName,
		InstallDir:   installDir,
		GitProtocol:  DefaultGitProtocol,
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/mgas/config.yaml, falling back to
// ~/.config/mgas/config.yaml.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "mgas", FileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", apperrors.Wrap(err, "failed to determine home directory")
	}
	return filepath.Join(home, ".config", "mgas", FileName), nil
}

// Load builds the effective configuration: defaults, then the YAML file,
// then environment overrides. An empty configFile means the default location,
// which may be absent. An explicitly named file must exist.
func Load(configFile string) (*Config, error) {
	cfg := New()

	explicit := configFile != ""
	if !explicit {
		path, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		configFile = path
	}

	raw, err := os.ReadFile(configFile)
	switch {
	case err == nil:
		logger.Debug("[DEBUG] Loading config from %s\n", configFile)
		if err := cfg.parse(configFile, raw); err != nil {
			return nil, err
		}
	case os.IsNotExist(err) && !explicit:
		logger.Debug("[DEBUG] No config file at %s, using defaults\n", configFile)
	default:
		return nil, apperrors.NewConfigError("config", configFile, err.Error())
	}

	cfg.LoadFromEnvironment()
	if err := cfg.Finalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// parse overlays the YAML document on top of c. Unknown keys are rejected so
// typos do not silently fall back to defaults.
func (c *Config) parse(path string, raw []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && err != io.EOF {
		return apperrors.NewConfigError("config", path, err.Error())
	}
	return nil
}

// LoadFromEnvironment applies the MGAS_* overrides. Empty variables are ignored.
func (c *Config) LoadFromEnvironment() {
	c.ProfilesFile = getEnvString(EnvProfilesFile, c.ProfilesFile)
	c.SettingsFile = getEnvString(EnvSettingsFile, c.SettingsFile)
	c.GhPath = getEnvString(EnvGhPath, c.GhPath)
	c.InstallDir = getEnvString(EnvInstallDir, c.InstallDir)
	c.GitProtocol = getEnvString(EnvGitProtocol, c.GitProtocol)
}

// Finalize expands "~" in every path and validates the result.
func (c *Config) Finalize() error {
	fields := []struct {
		name  string
		value *string
	}{
		{"profiles_file", &c.ProfilesFile},
		{"settings_file", &c.SettingsFile},
		{"gh_path", &c.GhPath},
		{"install_dir", &c.InstallDir},
	}
	for _, f := range fields {
		expanded, err := ExpandHome(*f.value)
		if err != nil {
			return apperrors.NewConfigError(f.name, *f.value, err.Error())
		}
		*f.value = expanded
	}
	for i, p := range c.SearchPaths {
		expanded, err := ExpandHome(p)
		if err != nil {
			return apperrors.NewConfigError("search_paths", p, err.Error())
		}
		c.SearchPaths[i] = expanded
	}
	return c.Validate()
}

// Validate checks the values that cannot be defaulted.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.ProfilesFile) == "" {
		return apperrors.NewConfigError("profiles_file", nil, "must not be empty")
	}
	if strings.TrimSpace(c.SettingsFile) == "" {
		return apperrors.NewConfigError("settings_file", nil, "must not be empty")
	}
	if strings.TrimSpace(c.InstallDir) == "" {
		return apperrors.NewConfigError("install_dir", nil, "must not be empty")
	}
	protocol, err := ghcli.ParseProtocol(c.GitProtocol)
	if err != nil {
		return err
	}
	c.GitProtocol = string(protocol)
	return nil
}

// Protocol returns the configured default git protocol.
func (c *Config) Protocol() ghcli.Protocol {
	return ghcli.Protocol(c.GitProtocol)
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, `~\`) {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, path[2:]), nil
}

// getEnvString returns the value of key, or defaultValue when unset or empty.
func getEnvString(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}
