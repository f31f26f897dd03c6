package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	apperrors "mgas/internal/errors"
	"mgas/internal/ghcli"
	"mgas/internal/logger"
	"mgas/internal/prompt"
	"mgas/internal/store"
)

// Flags of `profile add` and `profile remove`.
var (
	addUsername   string
	addName       string
	addEmail      string
	addProtocol   string
	addTokenStdin bool

	removeYes bool
)

// profileCmd groups the profile subcommands.
var profileCmd = &cobra.Command{
	Use:     "profile",
	Aliases: []string{"profiles"},
	Short:   "Manage stored GitHub profiles",
}

// profileAddCmd authenticates a GitHub account with gh and stores it.
var profileAddCmd = &cobra.Command{
	Use:   "add <label>",
	Short: "Authenticate a GitHub account and save it as a profile",
	Long: `Authenticate a GitHub account with a personal access token and save it.

The token is handed to 'gh auth login --with-token' and never stored by mgas.
It is read from stdin with --token-stdin, otherwise prompted for.
Adding an existing label replaces that profile.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p := store.Profile{
			Label:    strings.TrimSpace(args[0]),
			Username: strings.TrimSpace(addUsername),
			Name:     strings.TrimSpace(addName),
			Email:    strings.TrimSpace(addEmail),
		}
		if err := p.Validate(); err != nil {
			return err
		}

		protocol := cfg.Protocol()
		if addProtocol != "" {
			parsed, err := ghcli.ParseProtocol(addProtocol)
			if err != nil {
				return err
			}
			protocol = parsed
		}

		profiles, err := loadProfiles()
		if err != nil {
			return err
		}

		var token string
		if addTokenStdin {
			token, err = prompt.ReadToken(cmd.InOrStdin())
		} else {
			token, err = newPrompter().Secret(fmt.Sprintf("Personal access token for %s:", p.Username))
		}
		if err != nil {
			return err
		}

		gh := newGhCLI()
		if err := gh.AuthenticateWithToken(cmd.Context(), protocol, token); err != nil {
			return failed("Authentication failed", err)
		}
		if err := gh.ConfigureGitIntegration(cmd.Context()); err != nil {
			logger.Warn("[WARN] gh auth setup-git failed, continuing: %s\n", detail(err))
		}

		if err := profiles.Upsert(p); err != nil {
			return err
		}
		logger.Info("[INFO] Saved profile '%s' (%s)\n", p.Label, p.Username)
		return nil
	},
}

// profileListCmd prints every stored profile, marking the one gh is using.
var profileListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List stored profiles",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		profiles, err := loadProfiles()
		if err != nil {
			return err
		}
		list := profiles.List()
		if len(list) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "No profiles saved in %s. Add one with 'mgas profile add'.\n", profiles.Path())
			return nil
		}

		active, err := newGhCLI().ActiveUsername(cmd.Context())
		if err != nil {
			logger.Debug("[DEBUG] Could not determine active account: %v\n", err)
			active = ""
		}
		renderProfiles(cmd.OutOrStdout(), list, active)
		return nil
	},
}

// renderProfiles writes profiles as a table; the row whose username matches
// active gets a marker.
func renderProfiles(w io.Writer, profiles []store.Profile, active string) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"ACTIVE", "LABEL", "USERNAME", "NAME", "EMAIL"})
	for _, p := range profiles {
		marker := ""
		if active != "" && strings.EqualFold(p.Username, active) {
			marker = "*"
		}
		t.AppendRow(table.Row{marker, p.Label, p.Username, p.Name, p.Email})
	}
	t.Render()
}

// profileShowCmd prints a single profile.
var profileShowCmd = &cobra.Command{
	Use:   "show <label>",
	Short: "Show one profile",
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
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "label:    %s\n", p.Label)
		fmt.Fprintf(out, "username: %s\n", p.Username)
		fmt.Fprintf(out, "name:     %s\n", p.Name)
		fmt.Fprintf(out, "email:    %s\n", p.Email)
		return nil
	},
}

// profileRemoveCmd deletes a profile. The gh login itself is left alone.
var profileRemoveCmd = &cobra.Command{
	Use:     "remove <label>",
	Aliases: []string{"rm"},
	Short:   "Remove a stored profile",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		label := args[0]
		profiles, err := loadProfiles()
		if err != nil {
			return err
		}
		if _, ok := profiles.Get(label); !ok {
			logger.Warn("[WARN] No profile named '%s'\n", label)
			return nil
		}

		if !removeYes {
			ok, err := newPrompter().Confirm(fmt.Sprintf("Remove profile '%s'?", label), false)
			if err != nil {
				return err
			}
			if !ok {
				logger.Info("[INFO] Kept profile '%s'\n", label)
				return nil
			}
		}

		if err := profiles.Remove(label); err != nil {
			return err
		}
		logger.Info("[INFO] Removed profile '%s'\n", label)
		return nil
	},
}

// lookupProfile returns the profile stored under label or a ConfigError.
func lookupProfile(profiles *store.ProfileStore, label string) (store.Profile, error) {
	p, ok := profiles.Get(label)
	if !ok {
		return store.Profile{}, apperrors.NewConfigError("profile", label, "no such profile")
	}
	return p, nil
}

// init wires the profile flags and registers the profile commands.
func init() {
	profileAddCmd.Flags().StringVarP(&addUsername, "username", "u", "", "GitHub login")
	profileAddCmd.Flags().StringVarP(&addName, "name", "n", "", "Name used for commits")
	profileAddCmd.Flags().StringVarP(&addEmail, "email", "e", "", "Email used for commits")
	profileAddCmd.Flags().StringVar(&addProtocol, "protocol", "", "Git protocol gh configures: https or ssh (default from config)")
	profileAddCmd.Flags().BoolVar(&addTokenStdin, "token-stdin", false, "Read the personal access token from stdin")
	_ = profileAddCmd.MarkFlagRequired("username")
	_ = profileAddCmd.MarkFlagRequired("name")
	_ = profileAddCmd.MarkFlagRequired("email")

	profileRemoveCmd.Flags().BoolVarP(&removeYes, "yes", "y", false, "Do not ask for confirmation")

	profileCmd.AddCommand(profileAddCmd, profileListCmd, profileShowCmd, profileRemoveCmd)
	rootCmd.AddCommand(profileCmd)
}
