package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessErrorMatchesSentinel(t *testing.T) {
	err := NewProcessError("gh", []string{"auth", "switch"}, 1, "", "no such user\n", nil)

	require.True(t, Is(err, ErrProcessFailed))
	assert.Equal(t, "no such user", err.Detail())
	assert.Contains(t, err.Error(), "gh auth switch failed (exit status 1)")

	var target *ProcessError
	wrapped := Wrap(err, "switching account")
	require.True(t, As(wrapped, &target))
	assert.Equal(t, 1, target.ExitCode)
}

func TestProcessErrorWithCause(t *testing.T) {
	err := NewProcessError("git", []string{"commit"}, -1, "", "", New("signal: killed"))

	assert.True(t, Is(err, ErrProcessFailed))
	assert.Contains(t, err.Unwrap().Error(), "signal: killed")
}

func TestProcessErrorDetailFallbacks(t *testing.T) {
	tests := []struct {
		name   string
		err    *ProcessError
		expect string
	}{
		{
			name:   "stderr wins",
			err:    NewProcessError("gh", nil, 1, "out", "err", nil),
			expect: "err",
		},
		{
			name:   "stdout when stderr blank",
			err:    NewProcessError("gh", nil, 1, "out\n", "  ", nil),
			expect: "out",
		},
		{
			name:   "error text when both blank",
			err:    NewProcessError("gh", []string{"status"}, 2, "", "", nil),
			expect: "gh status failed (exit status 2)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, tt.err.Detail())
		})
	}
}

func TestCategorySentinels(t *testing.T) {
	assert.True(t, Is(NewToolNotFoundError("gh", []string{"/usr/bin/gh"}), ErrToolNotFound))
	assert.True(t, Is(NewRemoteConflictError("/tmp/x", "origin"), ErrRemoteConflict))
	assert.True(t, Is(NewParseError("a.json", "work", "email", "missing"), ErrInvalidDocument))
	assert.True(t, Is(NewConfigError("git_protocol", "ftp", "unsupported"), ErrInvalidConfiguration))

	assert.False(t, Is(NewRemoteConflictError("/tmp/x", "origin"), ErrProcessFailed))
}

func TestParseErrorMessages(t *testing.T) {
	assert.Equal(t,
		`a.json: entry "work" field "email": missing: invalid document`,
		NewParseError("a.json", "work", "email", "missing").Error())
	assert.Equal(t,
		`a.json: entry "work": not an object: invalid document`,
		NewParseError("a.json", "work", "", "not an object").Error())
	assert.Equal(t,
		"a.json: top level is not an object: invalid document",
		NewParseError("a.json", "", "", "top level is not an object").Error())
}

func TestRemoteConflictMessage(t *testing.T) {
	assert.Equal(t, "this repository already has a remote named 'origin'",
		NewRemoteConflictError("/src", "origin").Error())
}
