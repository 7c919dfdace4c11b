// Package git implements version control operations by running the git CLI.
package git

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.trai.ch/zerr"
)

const remote = "origin"

// Client implements ports.VCS for module checkouts below a workspace root.
type Client struct {
	binary string
	root   string
}

// New creates a Client running binary (usually "git") for checkouts below root.
func New(binary, root string) *Client {
	if binary == "" {
		binary = "git"
	}
	return &Client{binary: binary, root: root}
}

func (c *Client) dir(module string) string {
	return filepath.Join(c.root, module)
}

// IsCloned reports whether module has a git checkout in the workspace.
func (c *Client) IsCloned(module string) bool {
	_, err := os.Stat(filepath.Join(c.dir(module), ".git"))
	return err == nil
}

// Clone clones fetchURL into the module directory and sets a distinct push URL when given.
func (c *Client) Clone(ctx context.Context, module, fetchURL, pushURL string) error {
	if _, err := c.exec(ctx, c.root, "clone", "--quiet", fetchURL, c.dir(module)); err != nil {
		return zerr.With(err, "url", fetchURL)
	}
	if pushURL != "" && pushURL != fetchURL {
		if _, err := c.git(ctx, module, "remote", "set-url", "--push", remote, pushURL); err != nil {
			return zerr.With(err, "url", pushURL)
		}
	}
	return nil
}

// Fetch updates remote-tracking branches and tags.
func (c *Client) Fetch(ctx context.Context, module string) error {
	_, err := c.git(ctx, module, "fetch", "--quiet", "--prune", "--tags", remote)
	return err
}

// Pull fast-forwards the current branch.
func (c *Client) Pull(ctx context.Context, module string) error {
	_, err := c.git(ctx, module, "pull", "--quiet", "--ff-only")
	return err
}

// HardReset discards staged and unstaged changes.
func (c *Client) HardReset(ctx context.Context, module string) error {
	_, err := c.git(ctx, module, "reset", "--quiet", "--hard", "HEAD")
	return err
}

// Clean removes untracked files and directories.
func (c *Client) Clean(ctx context.Context, module string) error {
	_, err := c.git(ctx, module, "clean", "--quiet", "-fd")
	return err
}

// SubmoduleUpdate initializes and updates submodules recursively.
func (c *Client) SubmoduleUpdate(ctx context.Context, module string) error {
	_, err := c.git(ctx, module, "submodule", "--quiet", "update", "--init", "--recursive")
	return err
}

// Checkout moves the checkout to treeish. A branch that only exists on the remote
// is created locally tracking it.
func (c *Client) Checkout(ctx context.Context, module, treeish string) error {
	if _, err := c.git(ctx, module, "checkout", "--quiet", treeish); err != nil {
		return zerr.With(err, "treeish", treeish)
	}
	return nil
}

// HasLocalChanges reports uncommitted changes, untracked files included.
func (c *Client) HasLocalChanges(ctx context.Context, module string) (bool, error) {
	out, err := c.git(ctx, module, "status", "--porcelain")
	if err != nil {
		return false, err
	}
	return out != "", nil
}

// HasLocalBranch reports whether branch exists locally.
func (c *Client) HasLocalBranch(ctx context.Context, module, branch string) (bool, error) {
	return c.probe(ctx, module, "show-ref", "--verify", "--quiet", "refs/heads/"+branch)
}

// HasRemoteBranch reports whether branch exists on the remote, as of the last fetch.
func (c *Client) HasRemoteBranch(ctx context.Context, module, branch string) (bool, error) {
	return c.probe(ctx, module, "show-ref", "--verify", "--quiet", "refs/remotes/"+remote+"/"+branch)
}

// CurrentLocalTreeish returns the current branch name, or the commit hash on a detached HEAD.
func (c *Client) CurrentLocalTreeish(ctx context.Context, module string) (string, error) {
	out, err := c.git(ctx, module, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", err
	}
	if out == "HEAD" {
		return c.CurrentCommitHash(ctx, module)
	}
	return out, nil
}

// IsOnBranch reports whether HEAD points to a branch.
func (c *Client) IsOnBranch(ctx context.Context, module string) (bool, error) {
	return c.probe(ctx, module, "symbolic-ref", "--quiet", "HEAD")
}

// RemoteCommitHash returns the commit of the remote-tracking branch.
func (c *Client) RemoteCommitHash(ctx context.Context, module, branch string) (string, error) {
	return c.git(ctx, module, "rev-parse", remote+"/"+branch)
}

// CurrentCommitHash returns the commit of HEAD.
func (c *Client) CurrentCommitHash(ctx context.Context, module string) (string, error) {
	return c.git(ctx, module, "rev-parse", "HEAD")
}

// DefaultBranch returns the branch the remote HEAD points to.
func (c *Client) DefaultBranch(ctx context.Context, module string) (string, error) {
	out, err := c.git(ctx, module, "symbolic-ref", "--short", "refs/remotes/"+remote+"/HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimPrefix(out, remote+"/"), nil
}

func (c *Client) git(ctx context.Context, module string, args ...string) (string, error) {
	out, err := c.exec(ctx, c.dir(module), args...)
	if err != nil {
		return "", zerr.With(err, "module", module)
	}
	return out, nil
}

// probe runs a query whose exit status 1 means "no".
func (c *Client) probe(ctx context.Context, module string, args ...string) (bool, error) {
	_, stderr, err := c.run(ctx, c.dir(module), args...)
	if err == nil {
		return true, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
		return false, nil
	}
	return false, zerr.With(commandError(err, args, stderr), "module", module)
}

func (c *Client) exec(ctx context.Context, dir string, args ...string) (string, error) {
	stdout, stderr, err := c.run(ctx, dir, args...)
	if err != nil {
		return "", commandError(err, args, stderr)
	}
	return stdout, nil
}

func (c *Client) run(ctx context.Context, dir string, args ...string) (stdout, stderr string, err error) {
	fullArgs := append([]string{"-C", dir}, args...)
	//nolint:gosec // arguments are built from workspace state, not shell input
	cmd := exec.CommandContext(ctx, c.binary, fullArgs...)
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")

	var out, errOut bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errOut

	err = cmd.Run()
	return strings.TrimSpace(out.String()), strings.TrimSpace(errOut.String()), err
}

func commandError(err error, args []string, stderr string) error {
	gitErr := zerr.Wrap(err, "git command failed")
	gitErr = zerr.With(gitErr, "command", strings.Join(args, " "))
	return zerr.With(gitErr, "stderr", stderr)
}
