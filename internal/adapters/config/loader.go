// Package config decodes module.yaml files and the workspace module catalogue.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/tangle/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	// ModuleFile is the per-module configuration file name.
	ModuleFile = "module.yaml"

	defaultsKey = "default"
	defaultMark = "*default"
)

// Loader implements ports.ModuleLoader by reading <root>/<module>/module.yaml.
type Loader struct {
	root string
}

// NewLoader creates a Loader for the workspace at root.
func NewLoader(root string) *Loader {
	return &Loader{root: root}
}

// Load reads and decodes the module.yaml of module. It returns nil when the module
// has no module.yaml.
func (l *Loader) Load(module string) (*domain.ModuleSpec, error) {
	dir := filepath.Join(l.root, module)
	if _, err := os.Stat(dir); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, zerr.With(domain.ErrModuleSpecNotFound, "module", module)
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to stat module directory"), "module", module)
	}

	data, err := os.ReadFile(filepath.Join(dir, ModuleFile)) //nolint:gosec // path is built from the workspace root
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to read module.yaml"), "module", module)
	}

	return Parse(module, data)
}

// Parse decodes the module.yaml content of module.
func Parse(module string, data []byte) (*domain.ModuleSpec, error) {
	doc, err := decodeDocument(data)
	if err != nil {
		return nil, zerr.With(errors.Join(domain.ErrInvalidModuleSpec, err), "module", module)
	}

	spec := &domain.ModuleSpec{
		Name:     module,
		Sections: make(map[string]domain.ConfigurationSections),
	}

	for _, entry := range doc.Entries {
		if strings.TrimSpace(entry.Key) == defaultsKey {
			sections, err := parseSections(entry.Value)
			if err != nil {
				return nil, domain.InSection(err, defaultsKey)
			}
			spec.Defaults = sections
			continue
		}

		descriptor, err := parseKey(entry.Key, entry.Value.Line())
		if err != nil {
			return nil, err
		}
		sections, err := parseSections(entry.Value)
		if err != nil {
			return nil, domain.InSection(err, descriptor.Name)
		}
		spec.Descriptors = append(spec.Descriptors, descriptor)
		spec.Sections[descriptor.Name] = sections
	}

	if len(spec.Descriptors) == 0 {
		spec.Descriptors = []domain.ConfigurationDescriptor{{Name: domain.DefaultConfiguration}}
	}
	return spec, nil
}

// parseKey decodes a configuration key of the form "name [> parent, parent] [*default]".
func parseKey(key string, line int) (domain.ConfigurationDescriptor, error) {
	var d domain.ConfigurationDescriptor

	key = strings.TrimSpace(key)
	if rest, ok := strings.CutSuffix(key, defaultMark); ok {
		d.IsDefault = true
		key = strings.TrimSpace(rest)
	}

	name, parents, _ := strings.Cut(key, ">")
	d.Name = strings.TrimSpace(name)
	if d.Name == "" {
		return d, invalid("configuration name is empty", line)
	}
	for _, p := range strings.Split(parents, ",") {
		if p = strings.TrimSpace(p); p != "" {
			d.Parents = append(d.Parents, p)
		}
	}
	return d, nil
}

func parseSections(node domain.Node) (domain.ConfigurationSections, error) {
	var s domain.ConfigurationSections

	switch n := node.(type) {
	case domain.ScalarNode:
		if n.Value == "" {
			return s, nil
		}
		return s, invalid("configuration body must be a mapping", n.Line())
	case domain.SequenceNode:
		return s, invalid("configuration body must be a mapping", n.Line())
	case domain.MappingNode:
		for _, entry := range n.Entries {
			var err error
			switch entry.Key {
			case "deps":
				err = parseDeps(entry.Value, &s.Deps)
			case "force":
				s.Deps.Force = append(s.Deps.Force, parseBranches(entry.Value)...)
			case "install":
				err = parseInstall(entry.Value, &s.Install)
			case "artifacts":
				var artifacts []string
				artifacts, err = scalars(entry.Value)
				s.Install.Artifacts = append(s.Install.Artifacts, artifacts...)
			case "build":
				err = parseBuild(entry.Value, &s.Build)
			default:
				err = zerr.With(invalid("unknown section", entry.Value.Line()), "section", entry.Key)
			}
			if err != nil {
				return s, domain.InSection(err, entry.Key)
			}
		}
	}
	return s, nil
}

func parseDeps(node domain.Node, section *domain.DependencySection) error {
	for _, item := range items(node) {
		switch n := item.(type) {
		case domain.ScalarNode:
			dep, removal := domain.ParseDep(n.Value)
			if dep.Name == "" {
				return invalid("dependency name is empty", n.Line())
			}
			section.Items = append(section.Items, domain.DependencyDecl{Dep: dep, Removal: removal})
		case domain.MappingNode:
			force, ok := n.Get("force")
			if !ok || len(n.Entries) != 1 {
				return invalid("dependency mapping may only hold force", n.Line())
			}
			section.Force = append(section.Force, parseBranches(force)...)
		default:
			return invalid("dependency must be a string", item.Line())
		}
	}
	return nil
}

func parseInstall(node domain.Node, section *domain.InstallSection) error {
	for _, item := range items(node) {
		switch n := item.(type) {
		case domain.ScalarNode:
			if n.Value != "" {
				section.InstallFiles = append(section.InstallFiles, n.Value)
			}
		case domain.MappingNode:
			for _, entry := range n.Entries {
				values, err := scalars(entry.Value)
				if err != nil {
					return err
				}
				switch entry.Key {
				case "nuget":
					section.NuGetPackages = append(section.NuGetPackages, values...)
				case "module":
					section.ExternalModules = append(section.ExternalModules, values...)
				default:
					return zerr.With(invalid("unknown install kind", n.Line()), "kind", entry.Key)
				}
			}
		default:
			return invalid("install entry must be a string or a mapping", item.Line())
		}
	}
	return nil
}

func parseBuild(node domain.Node, build *domain.BuildSettings) error {
	mapping, ok := node.(domain.MappingNode)
	if !ok {
		return invalid("build must be a mapping", node.Line())
	}

	for _, entry := range mapping.Entries {
		switch entry.Key {
		case "cmd":
			switch n := entry.Value.(type) {
			case domain.ScalarNode:
				build.Cmd = []string{"sh", "-c", n.Value}
			default:
				cmd, err := scalars(n)
				if err != nil {
					return err
				}
				build.Cmd = cmd
			}
		case "env":
			env, ok := entry.Value.(domain.MappingNode)
			if !ok {
				return invalid("env must be a mapping", entry.Value.Line())
			}
			build.Environment = make(map[string]string, len(env.Entries))
			for _, kv := range env.Entries {
				value, ok := kv.Value.(domain.ScalarNode)
				if !ok {
					return invalid("env values must be strings", kv.Value.Line())
				}
				build.Environment[kv.Key] = value.Value
			}
		default:
			return zerr.With(invalid("unknown build key", entry.Value.Line()), "key", entry.Key)
		}
	}
	return nil
}

// parseBranches accepts a comma separated scalar or a sequence of branch names.
func parseBranches(node domain.Node) []string {
	var out []string
	for _, item := range items(node) {
		scalar, ok := item.(domain.ScalarNode)
		if !ok {
			continue
		}
		for _, b := range strings.Split(scalar.Value, ",") {
			if b = strings.TrimSpace(b); b != "" {
				out = append(out, b)
			}
		}
	}
	return out
}

// items views a scalar as a one-element sequence.
func items(node domain.Node) []domain.Node {
	switch n := node.(type) {
	case domain.SequenceNode:
		return n.Items
	case domain.ScalarNode:
		if n.Value == "" {
			return nil
		}
		return []domain.Node{n}
	default:
		return []domain.Node{n}
	}
}

func scalars(node domain.Node) ([]string, error) {
	var out []string
	for _, item := range items(node) {
		scalar, ok := item.(domain.ScalarNode)
		if !ok {
			return nil, invalid("expected a string", item.Line())
		}
		out = append(out, scalar.Value)
	}
	return out, nil
}

func invalid(msg string, line int) error {
	return zerr.With(zerr.Wrap(domain.ErrInvalidModuleSpec, msg), "line", line)
}
