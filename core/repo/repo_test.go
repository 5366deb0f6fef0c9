package repo

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// newUpstream creates a library repository with one commit on master.
// The returned URL points at its .git directory so it satisfies the origin check.
func newUpstream(t *testing.T) (*git.Repository, string, string) {
	t.Helper()
	dir := t.TempDir()
	upstream, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	commitFile(t, upstream, dir, "device-types/Acme/ABC-1.yaml", "model: ABC-1\n")
	return upstream, dir, filepath.Join(dir, ".git")
}

func commitFile(t *testing.T, repository *git.Repository, dir, rel, content string) {
	t.Helper()
	path := filepath.Join(dir, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	worktree, err := repository.Worktree()
	require.NoError(t, err)
	_, err = worktree.Add(rel)
	require.NoError(t, err)
	_, err = worktree.Commit("add "+rel, &git.CommitOptions{
		Author: &object.Signature{Name: "Test", Email: "test@example.com", When: time.Now()},
	})
	require.NoError(t, err)
}

func TestSync_CloneThenPull(t *testing.T) {
	upstream, upstreamDir, url := newUpstream(t)
	checkout := filepath.Join(t.TempDir(), "repo")

	r := New(Config{URL: url, Branch: "master", Path: checkout}, zap.NewNop())

	require.NoError(t, r.Sync(context.Background()))
	assert.FileExists(t, filepath.Join(checkout, "device-types/Acme/ABC-1.yaml"))
	first, err := r.Head()
	require.NoError(t, err)

	// Nothing new upstream
	require.NoError(t, r.Sync(context.Background()))
	same, err := r.Head()
	require.NoError(t, err)
	assert.Equal(t, first, same)

	commitFile(t, upstream, upstreamDir, "device-types/Acme/ABC-2.yaml", "model: ABC-2\n")
	require.NoError(t, r.Sync(context.Background()))
	assert.FileExists(t, filepath.Join(checkout, "device-types/Acme/ABC-2.yaml"))

	updated, err := r.Head()
	require.NoError(t, err)
	assert.NotEqual(t, first, updated)
}

func TestSync_SwitchBranch(t *testing.T) {
	upstream, upstreamDir, url := newUpstream(t)

	worktree, err := upstream.Worktree()
	require.NoError(t, err)
	require.NoError(t, worktree.Checkout(&git.CheckoutOptions{Branch: plumbing.NewBranchReferenceName("develop"), Create: true}))
	commitFile(t, upstream, upstreamDir, "device-types/Acme/DEV.yaml", "model: DEV\n")
	require.NoError(t, worktree.Checkout(&git.CheckoutOptions{Branch: plumbing.NewBranchReferenceName("master")}))

	checkout := filepath.Join(t.TempDir(), "repo")
	require.NoError(t, New(Config{URL: url, Branch: "master", Path: checkout}, nil).Sync(context.Background()))
	assert.NoFileExists(t, filepath.Join(checkout, "device-types/Acme/DEV.yaml"))

	r := New(Config{URL: url, Branch: "develop", Path: checkout}, nil)
	require.NoError(t, r.Sync(context.Background()))
	assert.FileExists(t, filepath.Join(checkout, "device-types/Acme/DEV.yaml"))

	head, err := r.Head()
	require.NoError(t, err)
	developRef, err := upstream.Reference(plumbing.NewBranchReferenceName("develop"), true)
	require.NoError(t, err)
	assert.Equal(t, developRef.Hash().String(), head)
}

func TestSync_InvalidOrigin(t *testing.T) {
	dir := t.TempDir()
	repository, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	_, err = repository.CreateRemote(&config.RemoteConfig{
		Name: "origin",
		URLs: []string{"https://example.com/library"},
	})
	require.NoError(t, err)

	r := New(Config{URL: "https://example.com/library", Branch: "master", Path: dir}, nil)
	err = r.Sync(context.Background())
	assert.ErrorIs(t, err, ErrInvalidOrigin)
}

func TestSync_NotARepository(t *testing.T) {
	r := New(Config{Branch: "master", Path: t.TempDir()}, nil)
	assert.Error(t, r.Sync(context.Background()))
}

func TestSync_CloneFailure(t *testing.T) {
	checkout := filepath.Join(t.TempDir(), "repo")
	r := New(Config{URL: filepath.Join(t.TempDir(), "missing.git"), Branch: "master", Path: checkout}, nil)
	assert.Error(t, r.Sync(context.Background()))
}
