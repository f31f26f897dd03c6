package ghcli

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "mgas/internal/errors"
	"mgas/internal/runner/runnertest"
)

func newTestCLI(t *testing.T) (*CLI, *runnertest.Fake, string) {
	t.Helper()
	gh := touch(t, filepath.Join(t.TempDir(), "bin", "gh"))
	fake := runnertest.NewFake()
	r := NewResolver(ResolverOptions{LookPath: notOnPath, WellKnown: []string{gh}})
	return New(r, fake), fake, gh
}

func TestParseProtocol(t *testing.T) {
	p, err := ParseProtocol(" HTTPS ")
	require.NoError(t, err)
	assert.Equal(t, ProtocolHTTPS, p)

	p, err = ParseProtocol("ssh")
	require.NoError(t, err)
	assert.Equal(t, ProtocolSSH, p)

	_, err = ParseProtocol("ftp")
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidConfiguration))
}

func TestAuthenticateWithTokenFeedsStdin(t *testing.T) {
	cli, fake, gh := newTestCLI(t)

	require.NoError(t, cli.AuthenticateWithToken(context.Background(), ProtocolSSH, "  ghp_abc  "))

	require.Len(t, fake.Calls, 1)
	call := fake.Calls[0]
	assert.Equal(t, gh, call.Name)
	assert.Equal(t, []string{"auth", "login", "--hostname", "github.com", "--git-protocol", "ssh", "--with-token"}, call.Args)
	assert.Equal(t, "ghp_abc\n", call.Stdin)
}

func TestAuthenticateWithTokenValidatesBeforeRunning(t *testing.T) {
	cli, fake, _ := newTestCLI(t)

	err := cli.AuthenticateWithToken(context.Background(), ProtocolHTTPS, "   ")
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidConfiguration))

	err = cli.AuthenticateWithToken(context.Background(), Protocol("git"), "ghp_abc")
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidConfiguration))

	assert.Empty(t, fake.Calls)
}

func TestAuthenticateWithTokenFailureCarriesOutput(t *testing.T) {
	cli, fake, _ := newTestCLI(t)
	fake.On("auth login").Fails(1, "", "error validating token: HTTP 401\n")

	err := cli.AuthenticateWithToken(context.Background(), ProtocolHTTPS, "bad")
	require.Error(t, err)

	var perr *apperrors.ProcessError
	require.True(t, apperrors.As(err, &perr))
	assert.Equal(t, "error validating token: HTTP 401", perr.Detail())
}

func TestOperationsRequireGh(t *testing.T) {
	fake := runnertest.NewFake()
	cli := New(NewResolver(ResolverOptions{LookPath: notOnPath, WellKnown: []string{}}), fake)
	ctx := context.Background()

	checks := map[string]error{
		"login":  cli.AuthenticateWithToken(ctx, ProtocolHTTPS, "tok"),
		"setup":  cli.ConfigureGitIntegration(ctx),
		"switch": cli.SwitchActiveUser(ctx, "alice"),
		"create": cli.CreateRemoteRepository(ctx, "/src", "demo", true),
	}
	_, checks["status"] = cli.QueryAuthStatus(ctx)
	_, checks["version"] = cli.Version(ctx)

	for name, err := range checks {
		assert.True(t, apperrors.Is(err, apperrors.ErrToolNotFound), name)
	}
	assert.Empty(t, fake.Calls)
}

func TestConfigureGitIntegration(t *testing.T) {
	cli, fake, _ := newTestCLI(t)

	require.NoError(t, cli.ConfigureGitIntegration(context.Background()))
	assert.Equal(t, []string{"auth setup-git"}, fake.Args())
}

func TestSwitchActiveUser(t *testing.T) {
	cli, fake, _ := newTestCLI(t)

	require.NoError(t, cli.SwitchActiveUser(context.Background(), "alice"))
	assert.Equal(t, []string{"auth switch --hostname github.com --user alice"}, fake.Args())

	fake.On("auth switch").Fails(1, "", "no accounts matched that criteria")
	err := cli.SwitchActiveUser(context.Background(), "bob")
	assert.True(t, apperrors.Is(err, apperrors.ErrProcessFailed))
}

func TestQueryAuthStatus(t *testing.T) {
	tests := []struct {
		name   string
		stdout string
		expect string
	}{
		{
			name:   "marker line is returned verbatim",
			stdout: "Active account: alice (keyring)\nOther: x",
			expect: "Active account: alice (keyring)",
		},
		{
			name:   "marker line is trimmed",
			stdout: "github.com\n  ✓ Logged in to github.com account alice (keyring)\n  - Active account: true\n",
			expect: "- Active account: true",
		},
		{
			name:   "first line without marker",
			stdout: "github.com\n  ✓ Logged in to github.com as alice\n",
			expect: "github.com",
		},
		{
			name:   "empty output",
			expect: "No active account",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cli, fake, _ := newTestCLI(t)
			fake.On("auth status").Returns(tt.stdout)

			got, err := cli.QueryAuthStatus(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.expect, got)
			assert.Equal(t, []string{"auth status"}, fake.Args())
		})
	}
}

func TestQueryAuthStatusFailure(t *testing.T) {
	cli, fake, _ := newTestCLI(t)
	fake.On("auth status").Fails(1, "", "You are not logged into any GitHub hosts.")

	_, err := cli.QueryAuthStatus(context.Background())
	assert.True(t, apperrors.Is(err, apperrors.ErrProcessFailed))
}

func TestCLIActiveUsername(t *testing.T) {
	cli, fake, _ := newTestCLI(t)
	fake.On("auth status").Returns(`github.com
  ✓ Logged in to github.com account alice (keyring)
  - Active account: false
  - Git operations protocol: https

  ✓ Logged in to github.com account work-bob (keyring)
  - Active account: true
  - Git operations protocol: ssh
`)

	got, err := cli.ActiveUsername(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "work-bob", got)
}

func TestCreateRemoteRepositoryVisibility(t *testing.T) {
	cli, fake, _ := newTestCLI(t)
	ctx := context.Background()

	require.NoError(t, cli.CreateRemoteRepository(ctx, "/src/demo", "demo", true))
	require.NoError(t, cli.CreateRemoteRepository(ctx, "/src/demo", "demo", false))

	assert.Equal(t, []string{
		"repo create demo --private --source /src/demo --remote origin --push --confirm",
		"repo create demo --public --source /src/demo --remote origin --push --confirm",
	}, fake.Args())

	err := cli.CreateRemoteRepository(ctx, "/src/demo", " ", false)
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidConfiguration))
	assert.Len(t, fake.Calls, 2)
}

func TestVersion(t *testing.T) {
	cli, fake, _ := newTestCLI(t)
	fake.On("--version").Returns("gh version 2.45.0 (2024-03-04)\nhttps://github.com/cli/cli/releases/tag/v2.45.0\n")

	v, err := cli.Version(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2.45.0", v.String())
	assert.True(t, SupportsAuthSwitch(v))
}
