package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"mgas/internal/config"
	"mgas/internal/logger"
)

var (
	// debug enables debug logging (--debug).
	debug bool
	// configPath is the YAML config file (--config); empty means the default location.
	configPath string
	// cfg is loaded in PersistentPreRunE and shared by every subcommand.
	cfg *config.Config
)

// rootCmd is the base command for `mgas`.
var rootCmd = &cobra.Command{
	Use:   "mgas",
	Short: "Multi-GitHub Account Switcher",
	Long: `mgas keeps several GitHub identities side by side.

Each profile stores a GitHub login plus the name and email used for commits.
mgas authenticates profiles with the GitHub CLI (gh), switches which one gh
uses, and turns a local folder into a new GitHub repository owned by a profile.`,
	SilenceUsage:  true,
	SilenceErrors: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger.Init(debug)

		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
		logger.Debug("[DEBUG] profiles=%s settings=%s install_dir=%s\n", cfg.ProfilesFile, cfg.SettingsFile, cfg.InstallDir)
		return nil
	},
}

// init registers the global flags.
func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default $XDG_CONFIG_HOME/mgas/config.yaml)")
}

// Execute runs the command tree. Ctrl-C cancels the context handed to
// commands, which terminates any running gh or git child. Any error is
// printed once and the process exits with status 1.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		logger.Error("[ERROR] %s\n", userMessage(err))
		os.Exit(1)
	}
}
