package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "mgas/internal/errors"
)

func TestReadToken(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"newline terminated", "ghp_abc123\n", "ghp_abc123"},
		{"no newline", "ghp_abc123", "ghp_abc123"},
		{"surrounding whitespace", "  ghp_abc123 \r\n", "ghp_abc123"},
		{"only first line", "ghp_first\nghp_second\n", "ghp_first"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadToken(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadTokenEmpty(t *testing.T) {
	for _, input := range []string{"", "\n", "   \n"} {
		_, err := ReadToken(strings.NewReader(input))
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.ErrInvalidConfiguration))
	}
}
