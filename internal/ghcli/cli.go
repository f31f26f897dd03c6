// Package ghcli is the gateway to the GitHub CLI (gh).
//
// It locates gh (see Resolver), runs its auth and repo subcommands through a
// runner.Runner and turns the results into domain outcomes: a missing gh is a
// *errors.ToolNotFoundError, a non-zero exit a *errors.ProcessError carrying
// everything gh printed.
package ghcli

import (
	"context"
	"strings"

	"github.com/Masterminds/semver/v3"

	apperrors "mgas/internal/errors"
	"mgas/internal/logger"
	"mgas/internal/runner"
)

// Hostname is the only host mgas authenticates against.
const Hostname = "github.com"

// Protocol is the transport gh configures git to use.
type Protocol string

const (
	ProtocolHTTPS Protocol = "https"
	ProtocolSSH   Protocol = "ssh"
)

// ParseProtocol accepts "https" or "ssh" in any case.
func ParseProtocol(s string) (Protocol, error) {
	switch p := Protocol(strings.ToLower(strings.TrimSpace(s))); p {
	case ProtocolHTTPS, ProtocolSSH:
		return p, nil
	}
	return "", apperrors.NewConfigError("git protocol", s, "must be https or ssh")
}

// CLI runs gh subcommands.
type CLI struct {
	resolver *Resolver
	runner   runner.Runner
}

// New creates a CLI that finds gh with resolver and starts it with r.
func New(resolver *Resolver, r runner.Runner) *CLI {
	return &CLI{resolver: resolver, runner: r}
}

// Resolver returns the resolver used to locate gh.
func (c *CLI) Resolver() *Resolver {
	return c.resolver
}

// run resolves gh and runs it with args.
func (c *CLI) run(ctx context.Context, stdin string, args ...string) (runner.Result, error) {
	gh, err := c.resolver.Ensure()
	if err != nil {
		return runner.Result{}, err
	}
	return c.runner.Run(ctx, runner.Command{Name: gh, Args: args, Stdin: stdin})
}

// AuthenticateWithToken logs gh in to github.com non-interactively, feeding
// the personal access token on stdin.
func (c *CLI) AuthenticateWithToken(ctx context.Context, protocol Protocol, token string) error {
	if _, err := ParseProtocol(string(protocol)); err != nil {
		return err
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return apperrors.NewConfigError("token", nil, "personal access token is required")
	}

	logger.Debug("[DEBUG] Authenticating with gh over %s\n", protocol)
	_, err := c.run(ctx, token+"\n",
		"auth", "login",
		"--hostname", Hostname,
		"--git-protocol", string(protocol),
		"--with-token",
	)
	return err
}

// ConfigureGitIntegration registers gh as git's credential helper.
// Callers treat a failure as advisory.
func (c *CLI) ConfigureGitIntegration(ctx context.Context) error {
	_, err := c.run(ctx, "", "auth", "setup-git")
	return err
}

// SwitchActiveUser makes username the account gh uses by default.
func (c *CLI) SwitchActiveUser(ctx context.Context, username string) error {
	if strings.TrimSpace(username) == "" {
		return apperrors.NewConfigError("username", nil, "must not be empty")
	}
	_, err := c.run(ctx, "", "auth", "switch", "--hostname", Hostname, "--user", username)
	return err
}

// QueryAuthStatus returns a one-line summary of who gh is logged in as.
func (c *CLI) QueryAuthStatus(ctx context.Context) (string, error) {
	res, err := c.run(ctx, "", "auth", "status")
	if err != nil {
		return "", err
	}
	return statusLine(statusOutput(res)), nil
}

// ActiveUsername returns the login of the active account, or "" when gh
// reports none.
func (c *CLI) ActiveUsername(ctx context.Context) (string, error) {
	res, err := c.run(ctx, "", "auth", "status")
	if err != nil {
		return "", err
	}
	return activeUsername(statusOutput(res)), nil
}

// CreateRemoteRepository creates name on GitHub from folder, adds it as the
// "origin" remote and pushes the current branch.
func (c *CLI) CreateRemoteRepository(ctx context.Context, folder, name string, private bool) error {
	if strings.TrimSpace(name) == "" {
		return apperrors.NewConfigError("repository name", nil, "must not be empty")
	}

	visibility := "--public"
	if private {
		visibility = "--private"
	}

	_, err := c.run(ctx, "",
		"repo", "create", name,
		visibility,
		"--source", folder,
		"--remote", "origin",
		"--push",
		"--confirm",
	)
	return err
}

// Version returns the installed gh version.
func (c *CLI) Version(ctx context.Context) (*semver.Version, error) {
	res, err := c.run(ctx, "", "--version")
	if err != nil {
		return nil, err
	}
	return parseVersion(res.Stdout)
}
