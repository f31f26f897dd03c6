// Package bootstrap turns a local folder into a freshly pushed GitHub
// repository owned by a stored profile.
//
// The sequence is linear and never retries:
//  1. switch gh's active account to the profile's username
//  2. make sure the folder is a git work tree (git init if not)
//  3. refuse to continue if an "origin" remote already exists
//  4. set user.name and user.email for the folder
//  5. stage everything and commit; "nothing to commit" is fine
//  6. create the GitHub repository from the folder and push
//
// A failure at any step stops the sequence. Nothing is rolled back, so a
// folder can be left initialized without a remote.
package bootstrap

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	apperrors "mgas/internal/errors"
	"mgas/internal/logger"
	"mgas/internal/runner"
	"mgas/internal/store"
)

// RemoteName is the remote the bootstrapper creates and refuses to overwrite.
const RemoteName = "origin"

// Gateway is the subset of the gh gateway the bootstrapper needs.
type Gateway interface {
	SwitchActiveUser(ctx context.Context, username string) error
	CreateRemoteRepository(ctx context.Context, folder, name string, private bool) error
}

// Step identifies a stage of the sequence.
type Step string

// Steps in the order Run performs them.
const (
	StepSwitchUser      Step = "switch active account"
	StepEnsureWorkTree  Step = "prepare git repository"
	StepCheckRemote     Step = "check for existing origin"
	StepConfigureAuthor Step = "configure commit author"
	StepCommit          Step = "commit files"
	StepCreateRemote    Step = "create GitHub repository and push"
)

// Request describes one bootstrap.
type Request struct {
	Folder        string
	Profile       store.Profile
	RepoName      string // defaults to the folder's base name
	Private       bool
	CommitMessage string
}

// Options configures a Bootstrapper.
type Options struct {
	// GitPath is the git executable; empty means look it up on PATH.
	GitPath string
	// Observer, when set, is called as each step starts.
	Observer func(Step)
}

// Bootstrapper runs the bootstrap sequence.
type Bootstrapper struct {
	gateway  Gateway
	runner   runner.Runner
	gitPath  string
	observer func(Step)
}

// New creates a Bootstrapper.
func New(gateway Gateway, r runner.Runner, opts Options) *Bootstrapper {
	return &Bootstrapper{
		gateway:  gateway,
		runner:   r,
		gitPath:  opts.GitPath,
		observer: opts.Observer,
	}
}

// Run executes the sequence for req. It returns nil on success, a
// *errors.RemoteConflictError when origin already exists, a
// *errors.ToolNotFoundError when gh or git is missing, or a
// *errors.ProcessError from the step that failed.
func (b *Bootstrapper) Run(ctx context.Context, req Request) error {
	req, err := b.prepare(req)
	if err != nil {
		return err
	}
	git, err := b.git()
	if err != nil {
		return err
	}
	folder := req.Folder

	b.step(StepSwitchUser)
	if err := b.gateway.SwitchActiveUser(ctx, req.Profile.Username); err != nil {
		return err
	}

	b.step(StepEnsureWorkTree)
	isRepo, err := workTreeResult(b.runGit(ctx, git, folder, "rev-parse", "--is-inside-work-tree"))
	if err != nil {
		return err
	}
	if !isRepo {
		logger.Debug("[DEBUG] %s is not a work tree, running git init\n", folder)
		if _, err := b.runGit(ctx, git, folder, "init"); err != nil {
			return err
		}
	}

	b.step(StepCheckRemote)
	_, err = b.runGit(ctx, git, folder, "remote", "get-url", RemoteName)
	exists, err := remoteExistsResult(err)
	if err != nil {
		return err
	}
	if exists {
		return apperrors.NewRemoteConflictError(folder, RemoteName)
	}

	b.step(StepConfigureAuthor)
	if _, err := b.runGit(ctx, git, folder, "config", "user.name", req.Profile.Name); err != nil {
		return err
	}
	if _, err := b.runGit(ctx, git, folder, "config", "user.email", req.Profile.Email); err != nil {
		return err
	}

	b.step(StepCommit)
	if _, err := b.runGit(ctx, git, folder, "add", "-A"); err != nil {
		return err
	}
	_, err = b.runGit(ctx, git, folder, "commit", "-m", req.CommitMessage)
	if err := commitResult(err); err != nil {
		return err
	}

	b.step(StepCreateRemote)
	return b.gateway.CreateRemoteRepository(ctx, folder, req.RepoName, req.Private)
}

// prepare validates req and fills in defaults before anything is executed.
func (b *Bootstrapper) prepare(req Request) (Request, error) {
	if err := req.Profile.Validate(); err != nil {
		return req, err
	}
	if strings.TrimSpace(req.CommitMessage) == "" {
		return req, apperrors.NewConfigError("commit message", nil, "must not be empty")
	}

	abs, err := filepath.Abs(req.Folder)
	if err != nil {
		return req, apperrors.NewConfigError("folder", req.Folder, err.Error())
	}
	info, err := os.Stat(abs)
	if err != nil {
		return req, apperrors.NewConfigError("folder", req.Folder, "does not exist")
	}
	if !info.IsDir() {
		return req, apperrors.NewConfigError("folder", req.Folder, "is not a directory")
	}
	req.Folder = abs

	if strings.TrimSpace(req.RepoName) == "" {
		req.RepoName = filepath.Base(abs)
	}
	return req, nil
}

// git returns the git executable, looking it up on PATH once.
func (b *Bootstrapper) git() (string, error) {
	if b.gitPath != "" {
		return b.gitPath, nil
	}
	path, err := runner.LookPath("git")
	if err != nil {
		return "", err
	}
	b.gitPath = path
	return path, nil
}

// runGit runs git against folder with -C.
func (b *Bootstrapper) runGit(ctx context.Context, git, folder string, args ...string) (runner.Result, error) {
	return b.runner.Run(ctx, runner.Command{
		Name: git,
		Args: append([]string{"-C", folder}, args...),
	})
}

// step reports s to the debug log and the observer.
func (b *Bootstrapper) step(s Step) {
	logger.Debug("[DEBUG] bootstrap: %s\n", s)
	if b.observer != nil {
		b.observer(s)
	}
}
