package sections

import (
	"slices"
	"sync"

	"go.trai.ch/tangle/internal/core/domain"
	"go.trai.ch/tangle/internal/core/ports"
	"go.trai.ch/zerr"
)

// Provider computes effective sections on demand and caches decoded module specs.
// It is safe for concurrent use.
type Provider struct {
	loader ports.ModuleLoader

	mu      sync.Mutex
	modules map[string]*moduleEntry
}

type moduleEntry struct {
	spec      *domain.ModuleSpec
	hierarchy *domain.Hierarchy
}

// NewProvider creates a Provider reading module specs through loader.
func NewProvider(loader ports.ModuleLoader) *Provider {
	return &Provider{
		loader:  loader,
		modules: make(map[string]*moduleEntry),
	}
}

// Forget drops the cached module spec, e.g. after its checkout moved.
func (p *Provider) Forget(module string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.modules, module)
}

func (p *Provider) module(name string) (*moduleEntry, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if entry, ok := p.modules[name]; ok {
		return entry, nil
	}

	spec, err := p.loader.Load(name)
	if err != nil {
		return nil, domain.InSection(err, name)
	}
	if spec == nil {
		spec = &domain.ModuleSpec{
			Name:        name,
			Descriptors: []domain.ConfigurationDescriptor{{Name: domain.DefaultConfiguration}},
		}
	}

	hierarchy, err := domain.NewHierarchy(spec.Descriptors)
	if err != nil {
		return nil, domain.InSection(err, name)
	}

	entry := &moduleEntry{spec: spec, hierarchy: hierarchy}
	p.modules[name] = entry
	return entry, nil
}

// resolve returns the module entry and the configuration to use, applying the default
// when configuration is empty.
func (p *Provider) resolve(module, configuration string) (*moduleEntry, string, error) {
	entry, err := p.module(module)
	if err != nil {
		return nil, "", err
	}
	if configuration == "" {
		configuration, err = entry.hierarchy.Default()
		if err != nil {
			return nil, "", domain.InSection(zerr.With(err, "module", module), module)
		}
	}
	if !entry.hierarchy.Has(configuration) {
		err := zerr.With(domain.ErrConfigurationNotFound, "configuration", configuration)
		return nil, "", zerr.With(err, "module", module)
	}
	return entry, configuration, nil
}

// ancestorsInOrder returns the declared ancestors of configuration in topological order.
func (e *moduleEntry) ancestorsInOrder(configuration string) []string {
	ancestors := e.hierarchy.AllAncestorsOf(configuration)
	var ordered []string
	for _, name := range e.hierarchy.TopologicalOrder() {
		if slices.Contains(ancestors, name) {
			ordered = append(ordered, name)
		}
	}
	return ordered
}

// DefaultConfiguration returns the default configuration of module.
func (p *Provider) DefaultConfiguration(module string) (string, error) {
	entry, err := p.module(module)
	if err != nil {
		return "", err
	}
	def, err := entry.hierarchy.Default()
	if err != nil {
		return "", zerr.With(err, "module", module)
	}
	return def, nil
}

// Ancestors returns every configuration configuration inherits from, in topological order.
func (p *Provider) Ancestors(module, configuration string) ([]string, error) {
	entry, configuration, err := p.resolve(module, configuration)
	if err != nil {
		return nil, err
	}
	return entry.ancestorsInOrder(configuration), nil
}

// Configurations returns the declared configurations of module.
func (p *Provider) Configurations(module string) ([]string, error) {
	entry, err := p.module(module)
	if err != nil {
		return nil, err
	}
	return entry.hierarchy.Names(), nil
}

// Dependencies returns the effective dependency set of a (module, configuration).
func (p *Provider) Dependencies(module, configuration string) (domain.EffectiveDependencySet, error) {
	entry, configuration, err := p.resolve(module, configuration)
	if err != nil {
		return domain.EffectiveDependencySet{}, err
	}

	var parents []DependencyLayer
	for _, name := range entry.ancestorsInOrder(configuration) {
		parents = append(parents, DependencyLayer{Configuration: name, Section: entry.spec.Sections[name].Deps})
	}

	deps, err := MergeDependencies(
		DependencyLayer{Configuration: configuration, Section: entry.spec.Sections[configuration].Deps},
		entry.spec.Defaults.Deps,
		parents,
	)
	if err != nil {
		return domain.EffectiveDependencySet{}, domain.InSection(err, module)
	}
	return deps, nil
}

// Install returns the effective install set of a (module, configuration).
func (p *Provider) Install(module, configuration string) (domain.EffectiveInstallSet, error) {
	entry, configuration, err := p.resolve(module, configuration)
	if err != nil {
		return domain.EffectiveInstallSet{}, err
	}

	var parents []domain.InstallSection
	for _, name := range entry.ancestorsInOrder(configuration) {
		parents = append(parents, entry.spec.Sections[name].Install)
	}

	return MergeInstall(entry.spec.Sections[configuration].Install, entry.spec.Defaults.Install, parents), nil
}

// BuildSettings returns the build settings of a (module, configuration).
func (p *Provider) BuildSettings(module, configuration string) (domain.BuildSettings, error) {
	entry, configuration, err := p.resolve(module, configuration)
	if err != nil {
		return domain.BuildSettings{}, err
	}

	settings := entry.spec.Defaults.Build
	for _, name := range entry.ancestorsInOrder(configuration) {
		settings = MergeBuild(entry.spec.Sections[name].Build, settings)
	}
	return MergeBuild(entry.spec.Sections[configuration].Build, settings), nil
}
