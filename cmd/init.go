package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"mgas/internal/bootstrap"
	apperrors "mgas/internal/errors"
	"mgas/internal/logger"
	"mgas/internal/store"
)

// Flags of `init`.
var (
	initProfile string
	initName    string
	initPrivate bool
	initPublic  bool
	initMessage string
)

// initCmd publishes a local folder as a new GitHub repository.
var initCmd = &cobra.Command{
	Use:   "init <folder>",
	Short: "Create a GitHub repository from a local folder",
	Long: `Create a GitHub repository from a local folder under a stored profile.

The folder is turned into a git repository if needed, committed with the
profile's name and email, then created on GitHub and pushed as 'origin'.
A folder that already has an 'origin' remote is refused.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		profiles, err := loadProfiles()
		if err != nil {
			return err
		}
		p, err := lookupProfile(profiles, initProfile)
		if err != nil {
			return err
		}

		message := initMessage
		if !cmd.Flags().Changed("message") {
			settings, err := loadSettings()
			if err != nil {
				return err
			}
			message = settings.CommitMessage()
			if strings.TrimSpace(message) == "" {
				logger.Warn("[WARN] Stored commit message in %s is empty, using the default\n", settings.Path())
				message = store.DefaultCommitMessage
			}
		}

		private := initPrivate
		if !initPrivate && !initPublic {
			private, err = newPrompter().Confirm("Make the repository private?", false)
			if err != nil {
				return err
			}
		}

		git, err := lookGit()
		if err != nil {
			return err
		}

		b := bootstrap.New(newGhCLI(), newRunner(), bootstrap.Options{
			GitPath: git,
			Observer: func(s bootstrap.Step) {
				logger.Info("[INFO] %s%s\n", strings.ToUpper(string(s[:1])), s[1:])
			},
		})
		err = b.Run(cmd.Context(), bootstrap.Request{
			Folder:        args[0],
			Profile:       p,
			RepoName:      initName,
			Private:       private,
			CommitMessage: message,
		})
		if apperrors.Is(err, apperrors.ErrProcessFailed) {
			return failed("Git error", err)
		}
		if err != nil {
			return err
		}
		logger.Info("[INFO] Repository created and pushed as %s\n", p.Username)
		return nil
	},
}

// init wires the init flags and registers the command.
func init() {
	initCmd.Flags().StringVarP(&initProfile, "profile", "p", "", "Label of the profile that owns the repository")
	initCmd.Flags().StringVar(&initName, "name", "", "Repository name (default: folder name)")
	initCmd.Flags().BoolVar(&initPrivate, "private", false, "Create a private repository")
	initCmd.Flags().BoolVar(&initPublic, "public", false, "Create a public repository")
	initCmd.Flags().StringVarP(&initMessage, "message", "m", "", "Commit message (default from settings)")
	_ = initCmd.MarkFlagRequired("profile")
	initCmd.MarkFlagsMutuallyExclusive("private", "public")

	rootCmd.AddCommand(initCmd)
}
