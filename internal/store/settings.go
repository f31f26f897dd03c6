package store

import (
	"encoding/json"
	"slices"

	apperrors "mgas/internal/errors"
	"mgas/internal/logger"
)

// DefaultCommitMessage is used whenever no commit message is configured.
const DefaultCommitMessage = "Initial commit from Multi-GitHub Account Switcher"

const commitMessageKey = "initial_commit_message"

// Settings is the single settings record of an installation.
type Settings struct {
	InitialCommitMessage string
}

// DefaultSettings returns the fixed defaults that stored values are merged over.
func DefaultSettings() Settings {
	return Settings{InitialCommitMessage: DefaultCommitMessage}
}

// SettingsStore loads and persists the settings document.
// Keys it does not recognize are kept and written back unchanged.
type SettingsStore struct {
	path     string
	settings Settings
	keys     []string
	extra    map[string]json.RawMessage
}

// LoadSettings reads the settings document at path and merges it over the
// defaults: stored values win, missing keys fall back.
func LoadSettings(path string) (*SettingsStore, error) {
	s := &SettingsStore{
		path:     path,
		settings: DefaultSettings(),
		extra:    make(map[string]json.RawMessage),
	}

	data, found, err := readDocument(path)
	if err != nil || !found {
		return s, err
	}

	keys, raw, err := decodeObject(path, data)
	if err != nil {
		return nil, err
	}

	for _, key := range keys {
		if key == commitMessageKey {
			msg, ok := decodeString(raw[key])
			if !ok {
				return nil, apperrors.NewParseError(path, "", key, "must be a string")
			}
			s.settings.InitialCommitMessage = msg
		} else {
			s.extra[key] = raw[key]
		}
		s.keys = append(s.keys, key)
	}

	logger.Debug("[DEBUG] Loaded settings from %s\n", path)
	return s, nil
}

// Path returns the backing document path.
func (s *SettingsStore) Path() string {
	return s.path
}

// Settings returns the effective settings.
func (s *SettingsStore) Settings() Settings {
	return s.settings
}

// CommitMessage returns the effective default commit message.
func (s *SettingsStore) CommitMessage() string {
	return s.settings.InitialCommitMessage
}

// SetCommitMessage stores message, or DefaultCommitMessage when message is
// blank, and rewrites the document immediately.
func (s *SettingsStore) SetCommitMessage(message string) error {
	if isBlank(message) {
		message = DefaultCommitMessage
	}

	prev := s.settings.InitialCommitMessage
	s.settings.InitialCommitMessage = message
	if err := s.persist(); err != nil {
		s.settings.InitialCommitMessage = prev
		return err
	}
	return nil
}

// persist rewrites the document, keeping unknown keys in their original order.
func (s *SettingsStore) persist() error {
	keys := s.keys
	if !slices.Contains(keys, commitMessageKey) {
		keys = append(append([]string(nil), keys...), commitMessageKey)
	}

	data, err := encodeObject(keys, func(key string) any {
		if key == commitMessageKey {
			return s.settings.InitialCommitMessage
		}
		return s.extra[key]
	})
	if err != nil {
		return err
	}
	if err := writeFileAtomic(s.path, data); err != nil {
		return err
	}
	s.keys = keys
	return nil
}

