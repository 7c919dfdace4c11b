// Package updater decides which version-control operations bring a module checkout
// to the revision requested by the resolver.
package updater

import (
	"context"

	"go.trai.ch/tangle/internal/core/domain"
	"go.trai.ch/tangle/internal/core/ports"
	"go.trai.ch/zerr"
)

// Options configures an Updater.
type Options struct {
	// Policy decides what happens to checkouts with local changes.
	Policy domain.LocalChangesPolicy
	// DefaultBranch is used when the remote does not report its default branch.
	DefaultBranch string
}

// Updater synchronizes module checkouts. It implements resolver.Syncer.
type Updater struct {
	vcs       ports.VCS
	catalogue ports.Catalogue
	logger    ports.Logger
	opts      Options
	stats     *domain.RunStats
}

// New creates an Updater counting its synchronizations in stats.
func New(vcs ports.VCS, catalogue ports.Catalogue, logger ports.Logger, opts Options, stats *domain.RunStats) *Updater {
	if opts.Policy == "" {
		opts.Policy = domain.LocalChangesFail
	}
	if opts.DefaultBranch == "" {
		opts.DefaultBranch = "master"
	}
	if stats == nil {
		stats = domain.NewRunStats()
	}
	return &Updater{
		vcs:       vcs,
		catalogue: catalogue,
		logger:    logger,
		opts:      opts,
		stats:     stats,
	}
}

// Sync clones, cleans, fetches and checks out req.Module.
func (u *Updater) Sync(ctx context.Context, req domain.SyncRequest) error {
	module := req.Module

	if !u.vcs.IsCloned(module) {
		if err := u.clone(ctx, module); err != nil {
			return err
		}
	} else {
		keep, err := u.handleLocalChanges(ctx, module)
		if err != nil {
			return err
		}
		if keep {
			return nil
		}
	}

	if err := u.vcs.Fetch(ctx, module); err != nil {
		return wrap(err, "fetch failed", module)
	}

	treeish, err := u.chooseTreeish(ctx, req)
	if err != nil {
		return err
	}

	if err := u.vcs.Checkout(ctx, module, treeish); err != nil {
		return zerr.With(wrap(err, "checkout failed", module), "treeish", treeish)
	}

	if err := u.pullIfTracking(ctx, module, treeish); err != nil {
		return err
	}

	if err := u.vcs.SubmoduleUpdate(ctx, module); err != nil {
		return wrap(err, "submodule update failed", module)
	}

	u.stats.AddSynced()
	u.logger.Debug("module synchronized", "module", module, "treeish", treeish)
	return nil
}

func (u *Updater) clone(ctx context.Context, module string) error {
	record, err := u.catalogue.Lookup(module)
	if err != nil {
		return err
	}
	pushURL := record.PushURL
	if pushURL == "" {
		pushURL = record.FetchURL
	}

	u.logger.Info("cloning module", "module", module, "url", record.FetchURL)
	if err := u.vcs.Clone(ctx, module, record.FetchURL, pushURL); err != nil {
		return wrap(err, "clone failed", module)
	}
	return nil
}

// handleLocalChanges applies the local changes policy. It reports true when the
// checkout must be left untouched.
func (u *Updater) handleLocalChanges(ctx context.Context, module string) (bool, error) {
	dirty, err := u.vcs.HasLocalChanges(ctx, module)
	if err != nil {
		return false, wrap(err, "failed to inspect working tree", module)
	}
	if !dirty {
		return false, nil
	}

	switch u.opts.Policy {
	case domain.LocalChangesKeep:
		if u.stats.Once("keep:" + module) {
			u.logger.Warn("module has local changes, leaving it as is", "module", module)
		}
		return true, nil
	case domain.LocalChangesReset:
		u.logger.Warn("discarding local changes", "module", module)
		if err := u.vcs.HardReset(ctx, module); err != nil {
			return false, wrap(err, "reset failed", module)
		}
		if err := u.vcs.Clean(ctx, module); err != nil {
			return false, wrap(err, "clean failed", module)
		}
		return false, nil
	default:
		return false, zerr.With(domain.ErrLocalChanges, "module", module)
	}
}

// chooseTreeish picks the explicit treeish, else the first forced branch present on
// the remote, else the current branch, else the default branch.
func (u *Updater) chooseTreeish(ctx context.Context, req domain.SyncRequest) (string, error) {
	if req.Treeish != "" {
		return req.Treeish, nil
	}

	for _, branch := range req.ForcedBranches {
		if branch == "" || branch == domain.CurrentBranchPlaceholder {
			continue
		}
		ok, err := u.vcs.HasRemoteBranch(ctx, req.Module, branch)
		if err != nil {
			return "", wrap(err, "failed to query remote branches", req.Module)
		}
		if ok {
			return branch, nil
		}
	}

	onBranch, err := u.vcs.IsOnBranch(ctx, req.Module)
	if err != nil {
		return "", wrap(err, "failed to read HEAD", req.Module)
	}
	if onBranch {
		current, err := u.vcs.CurrentLocalTreeish(ctx, req.Module)
		if err != nil {
			return "", wrap(err, "failed to read current branch", req.Module)
		}
		return current, nil
	}

	branch, err := u.vcs.DefaultBranch(ctx, req.Module)
	if err != nil || branch == "" {
		return u.opts.DefaultBranch, nil //nolint:nilerr // fall back to the configured default
	}
	return branch, nil
}

func (u *Updater) pullIfTracking(ctx context.Context, module, treeish string) error {
	onBranch, err := u.vcs.IsOnBranch(ctx, module)
	if err != nil {
		return wrap(err, "failed to read HEAD", module)
	}
	if !onBranch {
		return nil
	}

	remote, err := u.vcs.HasRemoteBranch(ctx, module, treeish)
	if err != nil {
		return wrap(err, "failed to query remote branches", module)
	}
	if !remote {
		return nil
	}

	if err := u.vcs.Pull(ctx, module); err != nil {
		return wrap(err, "pull failed", module)
	}
	return nil
}

func wrap(err error, msg, module string) error {
	return zerr.With(zerr.Wrap(err, msg), "module", module)
}
