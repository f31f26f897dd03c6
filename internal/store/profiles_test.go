package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "mgas/internal/errors"
)

func writeDoc(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "accounts.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadProfilesMissingFile(t *testing.T) {
	s, err := LoadProfiles(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Empty(t, s.List())
}

func TestLoadProfilesEmptyFile(t *testing.T) {
	s, err := LoadProfiles(writeDoc(t, "  \n"))
	require.NoError(t, err)
	assert.Empty(t, s.List())
}

func TestLoadProfilesPreservesDocumentOrder(t *testing.T) {
	path := writeDoc(t, `{
    "work": {"username": "alice", "name": "Alice A", "email": "a@x.com"},
    "home": {"username": "al", "name": "Al", "email": "al@home.org", "extra": 1}
}`)

	s, err := LoadProfiles(path)
	require.NoError(t, err)

	want := []Profile{
		{Label: "work", Username: "alice", Name: "Alice A", Email: "a@x.com"},
		{Label: "home", Username: "al", Name: "Al", Email: "al@home.org"},
	}
	if diff := cmp.Diff(want, s.List()); diff != "" {
		t.Errorf("List() mismatch (-want +got):\n%s", diff)
	}

	p, ok := s.Get("home")
	require.True(t, ok)
	assert.Equal(t, "al", p.Username)

	_, ok = s.Get("missing")
	assert.False(t, ok)
}

func TestRemoveThenReloadIsEmpty(t *testing.T) {
	path := writeDoc(t, `{"work": {"username":"alice","name":"Alice A","email":"a@x.com"}}`)

	s, err := LoadProfiles(path)
	require.NoError(t, err)
	require.NoError(t, s.Remove("work"))

	reloaded, err := LoadProfiles(path)
	require.NoError(t, err)
	assert.Empty(t, reloaded.List())
}

func TestRemoveAbsentLabelIsNotAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "accounts.json")
	s, err := LoadProfiles(path)
	require.NoError(t, err)

	require.NoError(t, s.Remove("ghost"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{}\n", string(data))
}

func TestUpsertReplacesEntireProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "accounts.json")
	s, err := LoadProfiles(path)
	require.NoError(t, err)

	require.NoError(t, s.Upsert(Profile{Label: "work", Username: "alice", Name: "Alice A", Email: "a@x.com"}))
	require.NoError(t, s.Upsert(Profile{Label: "home", Username: "al", Name: "Al", Email: "al@home.org"}))
	require.NoError(t, s.Upsert(Profile{Label: "work", Username: "alice2", Name: "Alice B", Email: "b@x.com"}))

	reloaded, err := LoadProfiles(path)
	require.NoError(t, err)

	want := []Profile{
		{Label: "work", Username: "alice2", Name: "Alice B", Email: "b@x.com"},
		{Label: "home", Username: "al", Name: "Al", Email: "al@home.org"},
	}
	if diff := cmp.Diff(want, reloaded.List()); diff != "" {
		t.Errorf("reloaded profiles mismatch (-want +got):\n%s", diff)
	}
}

func TestUpsertRemoveRoundTrip(t *testing.T) {
	type op struct {
		remove  bool
		profile Profile
	}
	ops := []op{
		{profile: Profile{Label: "a", Username: "ua", Name: "A", Email: "a@a"}},
		{profile: Profile{Label: "b", Username: "ub", Name: "B", Email: "b@b"}},
		{profile: Profile{Label: "c", Username: "uc", Name: "C", Email: "c@c"}},
		{remove: true, profile: Profile{Label: "b"}},
		{profile: Profile{Label: "a", Username: "ua2", Name: "A2", Email: "a2@a"}},
		{remove: true, profile: Profile{Label: "zzz"}},
		{profile: Profile{Label: "b", Username: "ub", Name: "B \"quoted\" <tag>", Email: "b@b"}},
		{profile: Profile{Label: "ünïcode label", Username: "u", Name: "Zoë", Email: "z@z"}},
	}

	path := filepath.Join(t.TempDir(), "nested", "dir", "accounts.json")
	s, err := LoadProfiles(path)
	require.NoError(t, err)

	for i, o := range ops {
		if o.remove {
			require.NoError(t, s.Remove(o.profile.Label), "op %d", i)
		} else {
			require.NoError(t, s.Upsert(o.profile), "op %d", i)
		}

		reloaded, err := LoadProfiles(path)
		require.NoError(t, err, "op %d", i)
		if diff := cmp.Diff(s.List(), reloaded.List()); diff != "" {
			t.Fatalf("op %d: reload mismatch (-memory +disk):\n%s", i, diff)
		}
	}
}

func TestUpsertRejectsBlankFields(t *testing.T) {
	s, err := LoadProfiles(filepath.Join(t.TempDir(), "accounts.json"))
	require.NoError(t, err)

	err = s.Upsert(Profile{Label: "work", Username: "alice", Name: "  ", Email: "a@x.com"})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidConfiguration))
	assert.Empty(t, s.List())
}

func TestUpsertFailedWriteLeavesStateUnchanged(t *testing.T) {
	dir := t.TempDir()
	parent := filepath.Join(dir, "sub")

	s, err := LoadProfiles(filepath.Join(parent, "accounts.json"))
	require.NoError(t, err)

	// Occupy the parent directory's name with a regular file so the write fails.
	require.NoError(t, os.WriteFile(parent, []byte("x"), 0o644))

	err = s.Upsert(Profile{Label: "work", Username: "alice", Name: "Alice", Email: "a@x.com"})
	require.Error(t, err)
	assert.Empty(t, s.List())
	_, ok := s.Get("work")
	assert.False(t, ok)
}

func TestPersistedDocumentFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "accounts.json")
	s, err := LoadProfiles(path)
	require.NoError(t, err)
	require.NoError(t, s.Upsert(Profile{Label: "work", Username: "alice", Name: "Alice A", Email: "a@x.com"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{
    "work": {
        "username": "alice",
        "name": "Alice A",
        "email": "a@x.com"
    }
}
`, string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestLoadProfilesRejectsMalformedDocuments(t *testing.T) {
	tests := []struct {
		name    string
		content string
		label   string
		field   string
	}{
		{name: "top level array", content: `[]`},
		{name: "invalid json", content: `{"work": `, label: "work"},
		{name: "trailing data", content: `{} {}`},
		{name: "entry not object", content: `{"work": "alice"}`, label: "work"},
		{name: "entry null", content: `{"work": null}`, label: "work"},
		{name: "missing email", content: `{"work": {"username":"alice","name":"Alice"}}`, label: "work", field: "email"},
		{name: "null username", content: `{"work": {"username":null,"name":"A","email":"a@x"}}`, label: "work", field: "username"},
		{name: "non string name", content: `{"work": {"username":"alice","name":42,"email":"a@x.com"}}`, label: "work", field: "name"},
		{
			name:    "duplicate label",
			content: `{"work": {"username":"a","name":"A","email":"a@a"}, "work": {"username":"b","name":"B","email":"b@b"}}`,
			label:   "work",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadProfiles(writeDoc(t, tt.content))
			require.Error(t, err)

			var perr *apperrors.ParseError
			require.True(t, apperrors.As(err, &perr), "expected ParseError, got %T: %v", err, err)
			assert.Equal(t, tt.label, perr.Label)
			assert.Equal(t, tt.field, perr.Field)
			assert.True(t, apperrors.Is(err, apperrors.ErrInvalidDocument))
		})
	}
}
