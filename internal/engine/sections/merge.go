// Package sections merges the per-configuration sections of module.yaml into
// the effective dependency, install and build data of a (module, configuration).
package sections

import (
	"slices"

	"go.trai.ch/tangle/internal/core/domain"
	"go.trai.ch/zerr"
)

// DefaultsSection is the section path segment of the shared defaults block.
const DefaultsSection = "default"

// DependencyLayer is a raw deps section together with the configuration that declared it.
type DependencyLayer struct {
	Configuration string
	Section       domain.DependencySection
}

// MergeDependencies folds defaults, then parents in hierarchy order, then current
// into one duplicate-free dependency list.
//
// A removal directive removes every accumulated entry of the same name whose treeish
// and configuration match; an unspecified or "*" value matches anything. Adding a
// name that is already present fails with ErrDuplicateDependency.
func MergeDependencies(
	current DependencyLayer,
	defaults domain.DependencySection,
	parents []DependencyLayer,
) (domain.EffectiveDependencySet, error) {
	layers := make([]DependencyLayer, 0, len(parents)+2)
	layers = append(layers, DependencyLayer{Configuration: DefaultsSection, Section: defaults})
	layers = append(layers, parents...)
	layers = append(layers, current)

	var result domain.EffectiveDependencySet
	for _, layer := range layers {
		items, err := applyDependencySection(result.Items, layer.Section)
		if err != nil {
			return domain.EffectiveDependencySet{}, domain.InSection(domain.InSection(err, "deps"), layer.Configuration)
		}
		result.Items = items
		if len(layer.Section.Force) > 0 {
			result.ForcedBranches = slices.Clone(layer.Section.Force)
		}
	}
	return result, nil
}

func applyDependencySection(items []domain.Dep, section domain.DependencySection) ([]domain.Dep, error) {
	for _, decl := range section.Items {
		if decl.Removal {
			before := len(items)
			items = slices.DeleteFunc(items, func(d domain.Dep) bool {
				return removalMatches(decl.Dep, d)
			})
			if len(items) == before {
				return nil, zerr.With(domain.ErrInvalidRemoval, "module", decl.Dep.String())
			}
			continue
		}

		if slices.ContainsFunc(items, func(d domain.Dep) bool { return d.Name == decl.Dep.Name }) {
			return nil, zerr.With(domain.ErrDuplicateDependency, "module", decl.Dep.Name)
		}
		items = append(items, decl.Dep)
	}
	return items, nil
}

func removalMatches(removal, entry domain.Dep) bool {
	return removal.Name == entry.Name &&
		wildcardMatches(removal.Treeish, entry.Treeish) &&
		wildcardMatches(removal.Configuration, entry.Configuration)
}

func wildcardMatches(pattern, value string) bool {
	return pattern == "" || pattern == domain.AnyValue || pattern == value
}

// MergeInstall folds defaults, then parents in hierarchy order, then current into
// first-seen-order unions. Artifacts always include the install files.
// CurrentConfigurationArtifacts only takes the defaults and the current section
// into account, never the parents.
func MergeInstall(
	current domain.InstallSection,
	defaults domain.InstallSection,
	parents []domain.InstallSection,
) domain.EffectiveInstallSet {
	var result domain.EffectiveInstallSet

	sections := make([]domain.InstallSection, 0, len(parents)+2)
	sections = append(sections, defaults)
	sections = append(sections, parents...)
	sections = append(sections, current)

	for _, s := range sections {
		result.InstallFiles = union(result.InstallFiles, s.InstallFiles)
		result.Artifacts = union(result.Artifacts, s.InstallFiles, s.Artifacts)
		result.ExternalModules = union(result.ExternalModules, s.ExternalModules)
		result.NuGetPackages = union(result.NuGetPackages, s.NuGetPackages)
	}

	for _, s := range []domain.InstallSection{defaults, current} {
		result.CurrentConfigurationArtifacts = union(result.CurrentConfigurationArtifacts, s.InstallFiles, s.Artifacts)
	}

	return result
}

func union(acc []string, lists ...[]string) []string {
	for _, list := range lists {
		for _, v := range list {
			if !slices.Contains(acc, v) {
				acc = append(acc, v)
			}
		}
	}
	return acc
}

// MergeBuild overlays the configuration's build settings on the defaults.
// A configuration command replaces the default command; environment entries are merged.
func MergeBuild(current, defaults domain.BuildSettings) domain.BuildSettings {
	result := domain.BuildSettings{Cmd: slices.Clone(defaults.Cmd)}
	if len(current.Cmd) > 0 {
		result.Cmd = slices.Clone(current.Cmd)
	}
	if len(defaults.Environment)+len(current.Environment) > 0 {
		result.Environment = make(map[string]string, len(defaults.Environment)+len(current.Environment))
		for k, v := range defaults.Environment {
			result.Environment[k] = v
		}
		for k, v := range current.Environment {
			result.Environment[k] = v
		}
	}
	return result
}
