package ports

// Hasher fingerprints the working tree of a module.
//
//go:generate go run go.uber.org/mock/mockgen -destination=mocks/hasher_mock.go -package=mocks -source=hasher.go
type Hasher interface {
	// HashTree computes a fingerprint of every file below root, skipping VCS metadata.
	HashTree(root string) (string, error)
}
