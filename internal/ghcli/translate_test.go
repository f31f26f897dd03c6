package ghcli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mgas/internal/runner"
)

func TestStatusOutputFallsBackToStderr(t *testing.T) {
	assert.Equal(t, "out", statusOutput(runner.Result{Stdout: "out", Stderr: "err"}))
	assert.Equal(t, "err", statusOutput(runner.Result{Stdout: " \n", Stderr: "err"}))
}

func TestStatusLineHandlesCRLF(t *testing.T) {
	assert.Equal(t, "github.com", statusLine("github.com\r\n  Logged in\r\n"))
}

func TestActiveUsername(t *testing.T) {
	tests := []struct {
		name   string
		output string
		expect string
	}{
		{
			name: "multi account layout",
			output: `github.com
  ✓ Logged in to github.com account alice (keyring)
  - Active account: true
  ✓ Logged in to github.com account bob (keyring)
  - Active account: false
`,
			expect: "alice",
		},
		{
			name:   "marker with name",
			output: "Active account: alice (keyring)\nOther: x",
			expect: "alice",
		},
		{
			name:   "single account layout of older releases",
			output: "github.com\n  ✓ Logged in to github.com as carol (oauth_token)\n  ✓ Git operations for github.com configured to use https protocol.\n",
			expect: "carol",
		},
		{
			name: "no account active",
			output: `github.com
  ✓ Logged in to github.com account alice (keyring)
  - Active account: false
`,
			expect: "",
		},
		{
			name:   "empty",
			output: "",
			expect: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, activeUsername(tt.output))
		})
	}
}

func TestParseVersion(t *testing.T) {
	v, err := parseVersion("gh version 2.39.2 (2023-11-14)\nhttps://github.com/cli/cli/releases/tag/v2.39.2\n")
	require.NoError(t, err)
	assert.Equal(t, "2.39.2", v.String())
	assert.False(t, SupportsAuthSwitch(v))

	v, err = parseVersion("gh version 2.40.0 (2023-12-07)")
	require.NoError(t, err)
	assert.True(t, SupportsAuthSwitch(v))

	_, err = parseVersion("hub version 2.14.2")
	assert.Error(t, err)
}
