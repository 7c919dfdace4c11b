package git_test

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tangle/internal/adapters/git"
)

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	t.Setenv("GIT_AUTHOR_NAME", "tangle")
	t.Setenv("GIT_AUTHOR_EMAIL", "tangle@example.com")
	t.Setenv("GIT_COMMITTER_NAME", "tangle")
	t.Setenv("GIT_COMMITTER_EMAIL", "tangle@example.com")
}

func gitCmd(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", append([]string{"-C", dir}, args...)...)
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, string(out))
}

// newUpstream creates a repository with a main and a release branch.
func newUpstream(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	gitCmd(t, dir, "init", "--quiet", "-b", "main")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "module.yaml"), []byte("default:\n"), 0o600))
	gitCmd(t, dir, "add", ".")
	gitCmd(t, dir, "commit", "--quiet", "-m", "initial")
	gitCmd(t, dir, "branch", "release")
	return dir
}

func TestClient_CloneAndInspect(t *testing.T) {
	requireGit(t)
	ctx := context.Background()
	upstream := newUpstream(t)
	workspace := t.TempDir()
	c := git.New("git", workspace)

	assert.False(t, c.IsCloned("core"))
	require.NoError(t, c.Clone(ctx, "core", upstream, ""))
	assert.True(t, c.IsCloned("core"))

	onBranch, err := c.IsOnBranch(ctx, "core")
	require.NoError(t, err)
	assert.True(t, onBranch)

	current, err := c.CurrentLocalTreeish(ctx, "core")
	require.NoError(t, err)
	assert.Equal(t, "main", current)

	def, err := c.DefaultBranch(ctx, "core")
	require.NoError(t, err)
	assert.Equal(t, "main", def)

	hasRelease, err := c.HasRemoteBranch(ctx, "core", "release")
	require.NoError(t, err)
	assert.True(t, hasRelease)

	hasGhost, err := c.HasRemoteBranch(ctx, "core", "ghost")
	require.NoError(t, err)
	assert.False(t, hasGhost)

	local, err := c.HasLocalBranch(ctx, "core", "release")
	require.NoError(t, err)
	assert.False(t, local)

	head, err := c.CurrentCommitHash(ctx, "core")
	require.NoError(t, err)
	remoteHead, err := c.RemoteCommitHash(ctx, "core", "main")
	require.NoError(t, err)
	assert.Equal(t, head, remoteHead)
}

func TestClient_CheckoutAndPull(t *testing.T) {
	requireGit(t)
	ctx := context.Background()
	upstream := newUpstream(t)
	c := git.New("git", t.TempDir())
	require.NoError(t, c.Clone(ctx, "core", upstream, ""))

	require.NoError(t, c.Checkout(ctx, "core", "release"))
	current, err := c.CurrentLocalTreeish(ctx, "core")
	require.NoError(t, err)
	assert.Equal(t, "release", current)

	gitCmd(t, upstream, "checkout", "--quiet", "release")
	require.NoError(t, os.WriteFile(filepath.Join(upstream, "CHANGES"), []byte("1\n"), 0o600))
	gitCmd(t, upstream, "add", ".")
	gitCmd(t, upstream, "commit", "--quiet", "-m", "change")

	require.NoError(t, c.Fetch(ctx, "core"))
	require.NoError(t, c.Pull(ctx, "core"))
	require.NoError(t, c.SubmoduleUpdate(ctx, "core"))

	head, err := c.CurrentCommitHash(ctx, "core")
	require.NoError(t, err)
	remoteHead, err := c.RemoteCommitHash(ctx, "core", "release")
	require.NoError(t, err)
	assert.Equal(t, remoteHead, head)
}

func TestClient_DetachedHead(t *testing.T) {
	requireGit(t)
	ctx := context.Background()
	c := git.New("git", t.TempDir())
	require.NoError(t, c.Clone(ctx, "core", newUpstream(t), ""))

	head, err := c.CurrentCommitHash(ctx, "core")
	require.NoError(t, err)
	require.NoError(t, c.Checkout(ctx, "core", head))

	onBranch, err := c.IsOnBranch(ctx, "core")
	require.NoError(t, err)
	assert.False(t, onBranch)

	current, err := c.CurrentLocalTreeish(ctx, "core")
	require.NoError(t, err)
	assert.Equal(t, head, current)
}

func TestClient_LocalChanges(t *testing.T) {
	requireGit(t)
	ctx := context.Background()
	workspace := t.TempDir()
	c := git.New("git", workspace)
	require.NoError(t, c.Clone(ctx, "core", newUpstream(t), ""))

	dirty, err := c.HasLocalChanges(ctx, "core")
	require.NoError(t, err)
	assert.False(t, dirty)

	require.NoError(t, os.WriteFile(filepath.Join(workspace, "core", "module.yaml"), []byte("edited\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(workspace, "core", "scratch.txt"), []byte("x\n"), 0o600))

	dirty, err = c.HasLocalChanges(ctx, "core")
	require.NoError(t, err)
	assert.True(t, dirty)

	require.NoError(t, c.HardReset(ctx, "core"))
	require.NoError(t, c.Clean(ctx, "core"))

	dirty, err = c.HasLocalChanges(ctx, "core")
	require.NoError(t, err)
	assert.False(t, dirty)
}

func TestClient_CheckoutUnknownTreeish(t *testing.T) {
	requireGit(t)
	ctx := context.Background()
	c := git.New("git", t.TempDir())
	require.NoError(t, c.Clone(ctx, "core", newUpstream(t), ""))

	err := c.Checkout(ctx, "core", "no-such-branch")
	require.Error(t, err)
	assert.ErrorContains(t, err, "git command failed")
}
