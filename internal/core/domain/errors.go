package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

var (
	// ErrCyclicConfigurations is returned when configuration inheritance forms a cycle.
	ErrCyclicConfigurations = zerr.New("cyclic configuration hierarchy")

	// ErrDuplicateConfiguration is returned when a module declares the same configuration twice.
	ErrDuplicateConfiguration = zerr.New("duplicate configuration")

	// ErrAmbiguousDefault is returned when a module has several configurations and none is the default.
	ErrAmbiguousDefault = zerr.New("default configuration is ambiguous")

	// ErrConfigurationNotFound is returned when a requested configuration is not declared by a module.
	ErrConfigurationNotFound = zerr.New("configuration not found")

	// ErrDuplicateDependency is returned when a module is added twice without a removal in between.
	ErrDuplicateDependency = zerr.New("duplicate dependency")

	// ErrInvalidRemoval is returned when a removal directive matches nothing added before it.
	ErrInvalidRemoval = zerr.New("removal of a dependency that was never added")

	// ErrTreeishConflict is returned when two dependents pin the same module to different treeishes.
	ErrTreeishConflict = zerr.New("treeish conflict")

	// ErrCycleDetected is returned when the build graph contains a cycle.
	ErrCycleDetected = zerr.New("cycle detected")

	// ErrModuleSpecNotFound is returned by loaders when a module has no module.yaml.
	ErrModuleSpecNotFound = zerr.New("module.yaml not found")

	// ErrInvalidModuleSpec is returned when module.yaml cannot be interpreted.
	ErrInvalidModuleSpec = zerr.New("invalid module.yaml")

	// ErrUnknownModule is returned when a module is not listed in the workspace catalogue.
	ErrUnknownModule = zerr.New("module is not in the catalogue")

	// ErrLocalChanges is returned when a checkout has local changes and the policy forbids touching it.
	ErrLocalChanges = zerr.New("module has local changes")

	// ErrWorkspaceNotFound is returned when no workspace root encloses the working directory.
	ErrWorkspaceNotFound = zerr.New("not inside a tangle workspace")

	// ErrBuildFailed is returned when at least one module build failed.
	ErrBuildFailed = zerr.New("build failed")
)

// SectionError annotates an error with the path of module.yaml sections it was raised in.
// Each layer that returns the error upward prepends its own segment.
type SectionError struct {
	Path []string
	Err  error
}

// InSection prepends segment to the section path of err.
func InSection(err error, segment string) error {
	if err == nil {
		return nil
	}
	if se, ok := err.(*SectionError); ok {
		path := make([]string, 0, len(se.Path)+1)
		path = append(path, segment)
		path = append(path, se.Path...)
		return &SectionError{Path: path, Err: se.Err}
	}
	return &SectionError{Path: []string{segment}, Err: err}
}

// Error implements the error interface.
func (e *SectionError) Error() string {
	return "section " + e.Section() + ": " + e.Err.Error()
}

// Section returns the dotted section path.
func (e *SectionError) Section() string {
	return strings.Join(e.Path, ".")
}

// Unwrap returns the underlying error.
func (e *SectionError) Unwrap() error {
	return e.Err
}
