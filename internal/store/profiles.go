// Package store persists the two documents mgas owns: the profile document
// (label -> identity) and the settings document (default commit message).
//
// Both documents are small JSON objects that are loaded once and rewritten
// wholesale on every mutation, using write-to-temp and rename so a crash
// never leaves a half-written file behind.
package store

import (
	"encoding/json"

	apperrors "mgas/internal/errors"
	"mgas/internal/logger"
)

// Profile is one stored GitHub identity.
// Label is the user-chosen key; Username is the GitHub login gh switches to;
// Name and Email become the local git authorship.
type Profile struct {
	Label    string
	Username string
	Name     string
	Email    string
}

// Validate checks that every field is filled in.
func (p Profile) Validate() error {
	fields := []struct {
		name  string
		value string
	}{
		{"label", p.Label},
		{"username", p.Username},
		{"name", p.Name},
		{"email", p.Email},
	}
	for _, f := range fields {
		if isBlank(f.value) {
			return apperrors.NewConfigError(f.name, nil, "must not be empty")
		}
	}
	return nil
}

// profileEntry is the on-disk value stored under each label.
type profileEntry struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email"`
}

// requiredProfileFields lists the keys every entry must carry.
var requiredProfileFields = []string{"username", "name", "email"}

// ProfileStore holds every profile keyed by label, in insertion order.
type ProfileStore struct {
	path     string
	order    []string
	profiles map[string]Profile
}

// LoadProfiles reads the profile document at path.
// A missing file yields an empty store; a malformed file yields a *errors.ParseError.
func LoadProfiles(path string) (*ProfileStore, error) {
	s := &ProfileStore{
		path:     path,
		profiles: make(map[string]Profile),
	}

	data, found, err := readDocument(path)
	if err != nil || !found {
		return s, err
	}

	labels, raw, err := decodeObject(path, data)
	if err != nil {
		return nil, err
	}

	for _, label := range labels {
		p, err := decodeProfile(path, label, raw[label])
		if err != nil {
			return nil, err
		}
		s.order = append(s.order, label)
		s.profiles[label] = p
	}

	logger.Debug("[DEBUG] Loaded %d profiles from %s\n", len(s.order), path)
	return s, nil
}

// decodeProfile validates a single entry: it must be an object whose
// required fields are present and hold strings. Unknown fields are ignored.
func decodeProfile(path, label string, raw json.RawMessage) (Profile, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return Profile{}, apperrors.NewParseError(path, label, "", "entry is not an object")
	}

	values := make(map[string]string, len(requiredProfileFields))
	for _, name := range requiredProfileFields {
		v, ok := fields[name]
		if !ok {
			return Profile{}, apperrors.NewParseError(path, label, name, "missing required field")
		}
		s, ok := decodeString(v)
		if !ok {
			return Profile{}, apperrors.NewParseError(path, label, name, "must be a string")
		}
		values[name] = s
	}

	return Profile{
		Label:    label,
		Username: values["username"],
		Name:     values["name"],
		Email:    values["email"],
	}, nil
}

// Path returns the backing document path.
func (s *ProfileStore) Path() string {
	return s.path
}

// List returns every profile in insertion order.
func (s *ProfileStore) List() []Profile {
	out := make([]Profile, 0, len(s.order))
	for _, label := range s.order {
		out = append(out, s.profiles[label])
	}
	return out
}

// Get returns the profile stored under label.
func (s *ProfileStore) Get(label string) (Profile, bool) {
	p, ok := s.profiles[label]
	return p, ok
}

// Upsert inserts p or replaces every field of the existing profile with the
// same label, then rewrites the document. A replaced profile keeps its position.
// If the write fails the in-memory state is left unchanged.
func (s *ProfileStore) Upsert(p Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}

	prev, existed := s.profiles[p.Label]
	s.profiles[p.Label] = p
	if !existed {
		s.order = append(s.order, p.Label)
	}

	if err := s.persist(); err != nil {
		if existed {
			s.profiles[p.Label] = prev
		} else {
			delete(s.profiles, p.Label)
			s.order = s.order[:len(s.order)-1]
		}
		return err
	}

	logger.Debug("[DEBUG] Upserted profile %s (replaced=%t)\n", p.Label, existed)
	return nil
}

// Remove deletes the profile stored under label, if any, and rewrites the document.
func (s *ProfileStore) Remove(label string) error {
	prev, existed := s.profiles[label]
	prevOrder := s.order

	if existed {
		delete(s.profiles, label)
		order := make([]string, 0, len(s.order))
		for _, l := range s.order {
			if l != label {
				order = append(order, l)
			}
		}
		s.order = order
	}

	if err := s.persist(); err != nil {
		if existed {
			s.profiles[label] = prev
			s.order = prevOrder
		}
		return err
	}
	return nil
}

// persist rewrites the whole document.
func (s *ProfileStore) persist() error {
	data, err := encodeObject(s.order, func(label string) any {
		p := s.profiles[label]
		return profileEntry{Username: p.Username, Name: p.Name, Email: p.Email}
	})
	if err != nil {
		return err
	}
	return writeFileAtomic(s.path, data)
}
