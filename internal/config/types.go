package config

// Config holds the user-level settings of mgas. It is loaded from an optional
// YAML file, then overridden from the environment.
type Config struct {
	ProfilesFile string   `yaml:"profiles_file"` // JSON document of stored profiles
	SettingsFile string   `yaml:"settings_file"` // JSON document holding the default commit message
	GhPath       string   `yaml:"gh_path"`       // Explicit gh executable, searched first
	SearchPaths  []string `yaml:"search_paths"`  // Extra gh candidates, searched last
	InstallDir   string   `yaml:"install_dir"`   // Where `mgas gh install` puts gh
	GitProtocol  string   `yaml:"git_protocol"`  // Default protocol for `profile add`
}

// Defaults used when neither the file nor the environment sets a value.
const (
	DefaultProfilesFileName = ".github_accounts.json"
	DefaultSettingsFileName = ".github_account_switcher_settings.json"
	DefaultGitProtocol      = "https"

	// Name of the config file inside the mgas config directory.
	FileName = "config.yaml"
)

// Environment variables that override file values.
const (
	EnvProfilesFile = "MGAS_PROFILES_FILE"
	EnvSettingsFile = "MGAS_SETTINGS_FILE"
	EnvGhPath       = "MGAS_GH_PATH"
	EnvInstallDir   = "MGAS_INSTALL_DIR"
	EnvGitProtocol  = "MGAS_GIT_PROTOCOL"
)
