package cmd

import (
	"slices"

	"mgas/internal/ghcli"
	"mgas/internal/installer"
	"mgas/internal/logger"
	"mgas/internal/prompt"
	"mgas/internal/runner"
	"mgas/internal/store"
)

// Constructors for the collaborators commands use; tests replace them.
var (
	newRunner   = func() runner.Runner { return runner.NewExecRunner() }
	newPrompter = func() prompt.Prompter { return prompt.NewSurvey() }
	lookGit     = func() (string, error) { return runner.LookPath("git") }
)

// newInstaller returns an Installer for the managed install directory.
func newInstaller() *installer.Installer {
	return installer.New(installer.Options{Dir: cfg.InstallDir})
}

// newGhCLI builds the gh gateway. The managed install location is searched
// after the configured extra paths.
func newGhCLI() *ghcli.CLI {
	extra := append(slices.Clone(cfg.SearchPaths), newInstaller().ExecutablePath())
	resolver := ghcli.NewResolver(ghcli.ResolverOptions{
		Override:   cfg.GhPath,
		ExtraPaths: extra,
	})
	return ghcli.New(resolver, newRunner())
}

// loadProfiles opens the profile document named by the config.
func loadProfiles() (*store.ProfileStore, error) {
	return store.LoadProfiles(cfg.ProfilesFile)
}

// loadSettings opens the settings document named by the config.
func loadSettings() (*store.SettingsStore, error) {
	settings, err := store.LoadSettings(cfg.SettingsFile)
	if err != nil {
		return nil, err
	}
	logger.Debug("[DEBUG] Using settings document %s\n", settings.Path())
	return settings, nil
}
