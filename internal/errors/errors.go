// Package errors defines the failure taxonomy shared by the stores, the gh
// gateway and the repository bootstrapper.
//
// Every failure that reaches a command belongs to one of a few categories,
// and each category maps to a distinct user-facing message:
//   - tool not found: gh (or git) could not be located
//   - process failure: a child process exited non-zero
//   - remote conflict: the target folder already has an "origin" remote
//   - parse error: a profile or settings document is malformed
//   - configuration error: invalid flags, config file or environment
//
// Sentinels can be tested with Is; the typed errors carry the details.
package errors

import (
	"fmt"
	"strings"

	pkgerrors "github.com/pkg/errors"
)

// Sentinel errors that can be used with Is() for error type checking
var (
	// ErrToolNotFound indicates an external executable could not be located
	ErrToolNotFound = pkgerrors.New("tool not found")

	// ErrProcessFailed indicates a child process exited with a non-zero status
	ErrProcessFailed = pkgerrors.New("process failed")

	// ErrRemoteConflict indicates the folder already has an origin remote
	ErrRemoteConflict = pkgerrors.New("remote already exists")

	// ErrInvalidDocument indicates a profile or settings document could not be parsed
	ErrInvalidDocument = pkgerrors.New("invalid document")

	// ErrInvalidConfiguration indicates invalid user supplied configuration
	ErrInvalidConfiguration = pkgerrors.New("invalid configuration")
)

// New creates a new error with the given message.
func New(message string) error {
	return pkgerrors.New(message)
}

// Errorf creates a new formatted error.
func Errorf(format string, args ...any) error {
	return pkgerrors.Errorf(format, args...)
}

// Wrap wraps an error with a message for better context.
func Wrap(err error, message string) error {
	return pkgerrors.Wrap(err, message)
}

// Wrapf wraps an error with a formatted message for better context.
func Wrapf(err error, format string, args ...any) error {
	return pkgerrors.Wrapf(err, format, args...)
}

// Is reports whether target is in err's chain.
func Is(err, target error) bool {
	return pkgerrors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return pkgerrors.As(err, target)
}

// ToolNotFoundError reports an executable that could not be found in any of
// the searched locations.
type ToolNotFoundError struct {
	Tool     string
	Searched []string
}

// Error lists the locations that were searched.
func (e *ToolNotFoundError) Error() string {
	if len(e.Searched) == 0 {
		return fmt.Sprintf("%s: %s", e.Tool, ErrToolNotFound)
	}
	return fmt.Sprintf("%s: %s (searched PATH, %s)", e.Tool, ErrToolNotFound, strings.Join(e.Searched, ", "))
}

// Unwrap returns ErrToolNotFound.
func (e *ToolNotFoundError) Unwrap() error {
	return ErrToolNotFound
}

// NewToolNotFoundError creates a ToolNotFoundError.
func NewToolNotFoundError(tool string, searched []string) *ToolNotFoundError {
	return &ToolNotFoundError{Tool: tool, Searched: searched}
}

// ProcessError represents a child process that ran but exited non-zero.
// It captures the command line and everything the process printed so the
// caller can show it to the user.
type ProcessError struct {
	Command  string
	Args     []string
	ExitCode int
	Stdout   string
	Stderr   string
	Err      error
}

// Error implements the error interface with a detailed, user-friendly error message.
func (e *ProcessError) Error() string {
	msg := fmt.Sprintf("%s %s failed", e.Command, strings.Join(e.Args, " "))
	if e.ExitCode != 0 {
		msg = fmt.Sprintf("%s (exit status %d)", msg, e.ExitCode)
	}
	if detail := strings.TrimSpace(e.Stderr); detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, detail)
	}
	return msg
}

// Unwrap returns the underlying error, which always matches ErrProcessFailed.
func (e *ProcessError) Unwrap() error {
	if e.Err == nil {
		return ErrProcessFailed
	}
	return e.Err
}

// Output returns stdout and stderr concatenated.
func (e *ProcessError) Output() string {
	return e.Stdout + e.Stderr
}

// Detail returns the most useful text to display: stderr, else stdout, else
// the error itself.
func (e *ProcessError) Detail() string {
	if s := strings.TrimSpace(e.Stderr); s != "" {
		return s
	}
	if s := strings.TrimSpace(e.Stdout); s != "" {
		return s
	}
	return e.Error()
}

// NewProcessError creates a ProcessError whose chain contains ErrProcessFailed.
func NewProcessError(command string, args []string, exitCode int, stdout, stderr string, cause error) *ProcessError {
	err := ErrProcessFailed
	if cause != nil {
		err = pkgerrors.Wrap(ErrProcessFailed, cause.Error())
	}
	return &ProcessError{
		Command:  command,
		Args:     args,
		ExitCode: exitCode,
		Stdout:   stdout,
		Stderr:   stderr,
		Err:      err,
	}
}

// RemoteConflictError is returned when a folder already has a remote with the
// name the bootstrapper wants to create.
type RemoteConflictError struct {
	Folder string
	Remote string
}

// Error implements the error interface.
func (e *RemoteConflictError) Error() string {
	return fmt.Sprintf("this repository already has a remote named '%s'", e.Remote)
}

// Unwrap returns ErrRemoteConflict.
func (e *RemoteConflictError) Unwrap() error {
	return ErrRemoteConflict
}

// NewRemoteConflictError creates a RemoteConflictError.
func NewRemoteConflictError(folder, remote string) *RemoteConflictError {
	return &RemoteConflictError{Folder: folder, Remote: remote}
}

// ParseError describes a malformed entry in a JSON document.
// Label and Field are empty when the problem is not tied to one entry.
type ParseError struct {
	Path  string
	Label string
	Field string
	Err   error
}

// Error names the document, then the entry and field when known.
func (e *ParseError) Error() string {
	switch {
	case e.Label != "" && e.Field != "":
		return fmt.Sprintf("%s: entry %q field %q: %v", e.Path, e.Label, e.Field, e.Err)
	case e.Label != "":
		return fmt.Sprintf("%s: entry %q: %v", e.Path, e.Label, e.Err)
	case e.Field != "":
		return fmt.Sprintf("%s: field %q: %v", e.Path, e.Field, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a ParseError whose chain contains ErrInvalidDocument.
func NewParseError(path, label, field, detail string) *ParseError {
	return &ParseError{
		Path:  path,
		Label: label,
		Field: field,
		Err:   pkgerrors.Wrap(ErrInvalidDocument, detail),
	}
}

// ConfigError represents an error in the application configuration.
type ConfigError struct {
	Parameter string
	Value     any
	Err       error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("configuration error for %s = %v: %v", e.Parameter, e.Value, e.Err)
	}
	return fmt.Sprintf("configuration error for %s: %v", e.Parameter, e.Err)
}

// Unwrap returns the underlying error.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a ConfigError whose chain contains ErrInvalidConfiguration.
func NewConfigError(parameter string, value any, detail string) *ConfigError {
	return &ConfigError{
		Parameter: parameter,
		Value:     value,
		Err:       pkgerrors.Wrap(ErrInvalidConfiguration, detail),
	}
}
