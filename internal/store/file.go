package store

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	apperrors "mgas/internal/errors"
	"mgas/internal/logger"
)

// documentIndent matches the four-space indentation the documents have
// always been written with.
const documentIndent = "    "

// readDocument reads the file at path. A missing file is reported as
// (nil, false, nil) so callers can start from an empty document.
func readDocument(path string) ([]byte, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug("[DEBUG] %s does not exist, starting empty\n", path)
			return nil, false, nil
		}
		return nil, false, apperrors.Wrapf(err, "failed to read %s", path)
	}
	return data, true, nil
}

// decodeObject parses a single top-level JSON object and returns its keys in
// document order together with the raw value of each key. Whitespace-only
// input is treated as an empty object.
func decodeObject(path string, data []byte) ([]string, map[string]json.RawMessage, error) {
	values := make(map[string]json.RawMessage)
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, values, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, nil, apperrors.NewParseError(path, "", "", err.Error())
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, nil, apperrors.NewParseError(path, "", "", "top level is not an object")
	}

	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, apperrors.NewParseError(path, "", "", err.Error())
		}
		key := tok.(string) // object keys are always strings
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, nil, apperrors.NewParseError(path, key, "", err.Error())
		}
		if _, dup := values[key]; dup {
			return nil, nil, apperrors.NewParseError(path, key, "", "duplicate key")
		}
		keys = append(keys, key)
		values[key] = raw
	}

	// Closing brace, then nothing but whitespace.
	if _, err := dec.Token(); err != nil {
		return nil, nil, apperrors.NewParseError(path, "", "", err.Error())
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, nil, apperrors.NewParseError(path, "", "", "unexpected data after top-level object")
	}
	return keys, values, nil
}

// encodeObject renders keys in the given order as an indented JSON object.
func encodeObject(keys []string, value func(key string) any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("{")
	for i, key := range keys {
		if i > 0 {
			buf.WriteString(",")
		}
		buf.WriteString("\n" + documentIndent)

		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		v, err := json.MarshalIndent(value(key), documentIndent, documentIndent)
		if err != nil {
			return nil, apperrors.Wrapf(err, "failed to encode %q", key)
		}
		buf.Write(k)
		buf.WriteString(": ")
		buf.Write(v)
	}
	if len(keys) > 0 {
		buf.WriteString("\n")
	}
	buf.WriteString("}\n")
	return buf.Bytes(), nil
}

// writeFileAtomic replaces path with data by writing a temporary file in the
// same directory and renaming it over the target. Missing parent directories
// are created.
func writeFileAtomic(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return apperrors.Wrapf(err, "failed to create directory %s", dir)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return apperrors.Wrapf(err, "failed to create temporary file for %s", path)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return apperrors.Wrapf(err, "failed to write %s", tmpName)
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return apperrors.Wrapf(err, "failed to sync %s", tmpName)
	}
	if err = tmp.Close(); err != nil {
		return apperrors.Wrapf(err, "failed to close %s", tmpName)
	}
	if err = os.Chmod(tmpName, 0o644); err != nil {
		return apperrors.Wrapf(err, "failed to chmod %s", tmpName)
	}
	if err = os.Rename(tmpName, path); err != nil {
		return apperrors.Wrapf(err, "failed to replace %s", path)
	}

	logger.Debug("[DEBUG] Wrote %s:\n%s", path, data)
	return nil
}

// isBlank reports whether s is empty after trimming whitespace.
func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// decodeString decodes a JSON string value. null is rejected, since
// json.Unmarshal would otherwise leave the zero value in place.
func decodeString(raw json.RawMessage) (string, bool) {
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}
