package domain

// SyncRequest asks for a module checkout to be moved to a treeish.
type SyncRequest struct {
	Module string
	// Treeish is the pinned revision, empty when the module is unpinned.
	Treeish string
	// ForcedBranches are tried in order for unpinned modules.
	ForcedBranches []string
}

// LocalChangesPolicy decides what happens to a checkout with uncommitted changes.
type LocalChangesPolicy string

const (
	// LocalChangesFail aborts the update.
	LocalChangesFail LocalChangesPolicy = "fail"
	// LocalChangesReset discards the changes with a hard reset and clean.
	LocalChangesReset LocalChangesPolicy = "reset"
	// LocalChangesKeep leaves the checkout untouched.
	LocalChangesKeep LocalChangesPolicy = "keep"
)

// ParseLocalChangesPolicy converts s to a policy, defaulting to LocalChangesFail.
func ParseLocalChangesPolicy(s string) LocalChangesPolicy {
	switch LocalChangesPolicy(s) {
	case LocalChangesReset:
		return LocalChangesReset
	case LocalChangesKeep:
		return LocalChangesKeep
	default:
		return LocalChangesFail
	}
}
