// Package runner starts external programs (gh, git) and captures their output.
//
// It is the single place where child processes are created, which keeps two
// platform concerns out of the rest of the code: executable lookup goes through
// safeexec so the current directory is never searched on Windows, and every
// child is started without a visible console window.
package runner

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/cli/safeexec"

	apperrors "mgas/internal/errors"
	"mgas/internal/logger"
)

// Command describes one child process invocation.
type Command struct {
	// Name is the executable, either an absolute path or a name looked up on PATH.
	Name string
	Args []string
	// Dir is the working directory; empty means the current directory.
	Dir string
	// Stdin, when non-empty, is written to the child's standard input.
	Stdin string
}

// String renders the command line for logs. Stdin is never included.
func (c Command) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// Result holds what a finished process printed and how it exited.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Runner runs a command to completion.
//
// A nil error means the process exited with status 0. A non-zero exit is
// reported as *errors.ProcessError and the Result still carries the captured
// output. Any other error means the process could not be started.
type Runner interface {
	Run(ctx context.Context, c Command) (Result, error)
}

// ExecRunner is the default Runner backed by os/exec.
type ExecRunner struct{}

// NewExecRunner creates a new ExecRunner.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run implements Runner.
func (r *ExecRunner) Run(ctx context.Context, c Command) (Result, error) {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	if c.Stdin != "" {
		cmd.Stdin = strings.NewReader(c.Stdin)
	}
	hideWindow(cmd)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logger.Debug("[DEBUG] Running command: %s\n", c)
	err := cmd.Run()

	res := Result{Stdout: stdout.String(), Stderr: stderr.String()}
	if err != nil {
		var exitErr *exec.ExitError
		if apperrors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			logger.Debug("[DEBUG] %s exited with status %d\nstdout: %s\nstderr: %s\n", c, res.ExitCode, res.Stdout, res.Stderr)
			return res, apperrors.NewProcessError(c.Name, c.Args, res.ExitCode, res.Stdout, res.Stderr, nil)
		}
		return res, apperrors.Wrapf(err, "failed to start %s", c.Name)
	}
	return res, nil
}

// LookPath finds an executable on PATH and reports a *errors.ToolNotFoundError
// when it is missing.
func LookPath(name string) (string, error) {
	path, err := safeexec.LookPath(name)
	if err != nil {
		logger.Debug("[DEBUG] %s not found on PATH: %v\n", name, err)
		return "", apperrors.NewToolNotFoundError(name, nil)
	}
	return path, nil
}
