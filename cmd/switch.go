package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	apperrors "mgas/internal/errors"
	"mgas/internal/logger"
)

// switchCmd makes a stored profile the account gh uses.
var switchCmd = &cobra.Command{
	Use:   "switch <label>",
	Short: "Make a profile the active gh account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		profiles, err := loadProfiles()
		if err != nil {
			return err
		}
		p, err := lookupProfile(profiles, args[0])
		if err != nil {
			return err
		}

		gh := newGhCLI()
		if err := gh.SwitchActiveUser(cmd.Context(), p.Username); err != nil {
			return failed("Switch failed", err)
		}
		logger.Info("[INFO] Switched to %s (%s)\n", p.Label, p.Username)

		status, err := gh.QueryAuthStatus(cmd.Context())
		if err != nil {
			logger.Warn("[WARN] Could not read gh status: %s\n", detail(err))
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), status)
		return nil
	},
}

// statusCmd prints which account gh is using.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the active gh account",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		status, err := newGhCLI().QueryAuthStatus(cmd.Context())
		switch {
		case apperrors.Is(err, apperrors.ErrToolNotFound):
			status = "GitHub CLI not installed"
		case err != nil:
			return failed("Error checking status", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), status)
		return nil
	},
}

// init registers switch and status with the root command.
func init() {
	rootCmd.AddCommand(switchCmd, statusCmd)
}
