package ports

import "context"

// VCS is the version-control collaborator. Every operation works on the
// checkout of one module inside the workspace.
//
//go:generate go run go.uber.org/mock/mockgen -source=vcs.go -destination=mocks/mock_vcs.go -package=mocks
type VCS interface {
	IsCloned(module string) bool
	Clone(ctx context.Context, module, fetchURL, pushURL string) error
	Fetch(ctx context.Context, module string) error
	Checkout(ctx context.Context, module, treeish string) error
	Pull(ctx context.Context, module string) error
	HardReset(ctx context.Context, module string) error
	Clean(ctx context.Context, module string) error
	SubmoduleUpdate(ctx context.Context, module string) error

	HasLocalChanges(ctx context.Context, module string) (bool, error)
	HasLocalBranch(ctx context.Context, module, branch string) (bool, error)
	HasRemoteBranch(ctx context.Context, module, branch string) (bool, error)
	// CurrentLocalTreeish returns the checked-out branch, or the commit hash on a detached HEAD.
	CurrentLocalTreeish(ctx context.Context, module string) (string, error)
	// IsOnBranch reports whether HEAD points to a local branch.
	IsOnBranch(ctx context.Context, module string) (bool, error)
	RemoteCommitHash(ctx context.Context, module, branch string) (string, error)
	CurrentCommitHash(ctx context.Context, module string) (string, error)
	// DefaultBranch returns the branch the remote HEAD points to.
	DefaultBranch(ctx context.Context, module string) (string, error)
}
