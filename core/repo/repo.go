package repo

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"go.uber.org/zap"
)

const remoteName = "origin"

// ErrInvalidOrigin is returned when the origin of an existing checkout does not end with .git.
var ErrInvalidOrigin = errors.New("origin url does not end with .git")

// Repository keeps a local checkout of the library up to date.
type Repository struct {
	cfg    Config
	logger *zap.Logger
}

// New creates a Repository for cfg.
func New(cfg Config, logger *zap.Logger) *Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Repository{cfg: cfg, logger: logger}
}

// Path returns the checkout directory.
func (r *Repository) Path() string {
	return r.cfg.Path
}

// Sync clones the library when the checkout directory does not exist. Otherwise it
// fetches origin, checks out the configured branch and resets it to the fetched head.
func (r *Repository) Sync(ctx context.Context) error {
	if _, err := os.Stat(r.cfg.Path); os.IsNotExist(err) {
		return r.clone(ctx)
	}
	return r.pull(ctx)
}

// Head returns the commit hash currently checked out.
func (r *Repository) Head() (string, error) {
	repository, err := git.PlainOpen(r.cfg.Path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", r.cfg.Path, err)
	}
	ref, err := repository.Head()
	if err != nil {
		return "", fmt.Errorf("failed to resolve HEAD: %w", err)
	}
	return ref.Hash().String(), nil
}

func (r *Repository) clone(ctx context.Context) error {
	_, err := git.PlainCloneContext(ctx, r.cfg.Path, false, &git.CloneOptions{
		URL:           r.cfg.URL,
		RemoteName:    remoteName,
		ReferenceName: plumbing.NewBranchReferenceName(r.cfg.Branch),
	})
	if err != nil {
		return fmt.Errorf("failed to clone %s: %w", r.cfg.URL, err)
	}
	r.logger.Info("Library cloned", zap.String("url", r.cfg.URL), zap.String("branch", r.cfg.Branch), zap.String("path", r.cfg.Path))
	return nil
}

func (r *Repository) pull(ctx context.Context) error {
	r.logger.Info("Library already present, updating", zap.String("path", r.cfg.Path))

	repository, err := git.PlainOpen(r.cfg.Path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", r.cfg.Path, err)
	}

	remote, err := repository.Remote(remoteName)
	if err != nil {
		return fmt.Errorf("failed to read remote %s: %w", remoteName, err)
	}
	urls := remote.Config().URLs
	if len(urls) == 0 || !strings.HasSuffix(urls[0], ".git") {
		return fmt.Errorf("%w: %v", ErrInvalidOrigin, urls)
	}
	origin := urls[0]

	// The configured branch is fetched explicitly so a checkout cloned for another
	// branch can switch to it.
	refSpec := gitconfig.RefSpec(fmt.Sprintf("+refs/heads/%[1]s:refs/remotes/%[2]s/%[1]s", r.cfg.Branch, remoteName))
	err = repository.FetchContext(ctx, &git.FetchOptions{RemoteName: remoteName, RefSpecs: []gitconfig.RefSpec{refSpec}})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return fmt.Errorf("failed to fetch %s: %w", origin, err)
	}

	worktree, err := repository.Worktree()
	if err != nil {
		return fmt.Errorf("failed to open worktree: %w", err)
	}

	remoteRef, err := repository.Reference(plumbing.NewRemoteReferenceName(remoteName, r.cfg.Branch), true)
	if err != nil {
		return fmt.Errorf("branch %s not found on %s: %w", r.cfg.Branch, origin, err)
	}

	branch := plumbing.NewBranchReferenceName(r.cfg.Branch)
	checkout := &git.CheckoutOptions{Branch: branch, Force: true}
	if _, err := repository.Reference(branch, true); err != nil {
		checkout.Hash = remoteRef.Hash()
		checkout.Create = true
	}
	if err := worktree.Checkout(checkout); err != nil {
		return fmt.Errorf("failed to checkout %s: %w", r.cfg.Branch, err)
	}

	// The checkout is managed by this tool, so it always follows origin.
	if err := worktree.Reset(&git.ResetOptions{Commit: remoteRef.Hash(), Mode: git.HardReset}); err != nil {
		return fmt.Errorf("failed to update %s to %s: %w", r.cfg.Branch, remoteRef.Hash(), err)
	}

	r.logger.Info("Library updated", zap.String("url", origin), zap.String("branch", r.cfg.Branch))
	return nil
}
