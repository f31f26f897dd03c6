package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"mgas/internal/logger"
	"mgas/internal/store"
)

// settingsCmd groups the settings subcommands.
var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change mgas settings",
}

// settingsGetCmd prints the effective settings.
var settingsGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the current settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "initial_commit_message: %s\n", settings.CommitMessage())
		return nil
	},
}

// settingsSetMessageCmd changes the default commit message used by init.
// An empty message restores the built-in default.
var settingsSetMessageCmd = &cobra.Command{
	Use:   "set-commit-message <message>",
	Short: "Set the default initial commit message",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings()
		if err != nil {
			return err
		}
		if err := settings.SetCommitMessage(args[0]); err != nil {
			return err
		}
		if settings.CommitMessage() == store.DefaultCommitMessage {
			logger.Info("[INFO] Commit message set to the default: %s\n", store.DefaultCommitMessage)
			return nil
		}
		logger.Info("[INFO] Commit message set to: %s\n", settings.CommitMessage())
		return nil
	},
}

// init registers the settings commands with the root command.
func init() {
	settingsCmd.AddCommand(settingsGetCmd, settingsSetMessageCmd)
	rootCmd.AddCommand(settingsCmd)
}
