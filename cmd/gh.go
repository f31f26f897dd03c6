package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"mgas/internal/ghcli"
	"mgas/internal/logger"
)

// installTag is the release requested with `gh install --tag`.
var installTag string

// ghCmd groups commands about the GitHub CLI itself.
var ghCmd = &cobra.Command{
	Use:   "gh",
	Short: "Locate, inspect or install the GitHub CLI",
}

// ghWhereCmd prints the gh executable mgas resolves, and notes when mgas installed it.
var ghWhereCmd = &cobra.Command{
	Use:   "where",
	Short: "Print the gh executable mgas will use",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := newGhCLI().Resolver().Ensure()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)

		managed, ok, err := newInstaller().Installed()
		if err != nil {
			logger.Debug("[DEBUG] Could not read install state: %v\n", err)
			return nil
		}
		if ok && managed.InstallPath == path {
			logger.Info("[INFO] Installed by mgas (%s)\n", managed.Tag)
		}
		return nil
	},
}

// ghVersionCmd prints the gh version and warns when it predates `gh auth switch`.
var ghVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the gh version and whether it can switch accounts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := newGhCLI().Version(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "gh %s\n", v)
		if !ghcli.SupportsAuthSwitch(v) {
			logger.Warn("[WARN] gh %s cannot switch accounts; 'mgas switch' and 'mgas init' need gh %s or newer. Run 'mgas gh install'.\n",
				v, ghcli.MinimumSwitchVersion)
		}
		return nil
	},
}

// ghInstallCmd downloads gh from GitHub releases into the managed install directory.
var ghInstallCmd = &cobra.Command{
	Use:   "install",
	Short: "Download gh from GitHub releases into the managed install directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		inst := newInstaller()
		res, err := inst.Install(cmd.Context(), installTag)
		if err != nil {
			return failed("Install failed", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), res.Path)
		return nil
	},
}

// ghUninstallCmd removes the gh that ghInstallCmd placed, leaving other installs alone.
var ghUninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Remove the gh installed by 'mgas gh install'",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		inst := newInstaller()
		removed, err := inst.Uninstall()
		if err != nil {
			return err
		}
		if removed {
			logger.Info("[INFO] Removed managed gh from %s\n", inst.Dir())
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "Nothing to remove in %s\n", inst.Dir())
		}
		return nil
	},
}

// init registers the gh commands with the root command.
func init() {
	ghInstallCmd.Flags().StringVar(&installTag, "tag", "", "Release tag to install, e.g. v2.62.0 (default: latest)")

	ghCmd.AddCommand(ghWhereCmd, ghVersionCmd, ghInstallCmd, ghUninstallCmd)
	rootCmd.AddCommand(ghCmd)
}
