package domain

// ModuleRecord is a workspace catalogue entry.
type ModuleRecord struct {
	Name     string `yaml:"name"`
	FetchURL string `yaml:"url"`
	PushURL  string `yaml:"pushurl"`
}

// DependencyDecl is one raw item of a deps section.
type DependencyDecl struct {
	Dep     Dep
	Removal bool
}

// DependencySection is the raw deps section of one configuration, as written in module.yaml.
type DependencySection struct {
	Force []string
	Items []DependencyDecl
}

// InstallSection is the raw install and artifacts declaration of one configuration.
type InstallSection struct {
	InstallFiles    []string
	Artifacts       []string
	ExternalModules []string
	NuGetPackages   []string
}

// BuildSettings describes how a configuration of a module is built.
type BuildSettings struct {
	Cmd         []string
	Environment map[string]string
}

// ConfigurationSections groups every section declared for one configuration.
type ConfigurationSections struct {
	Deps    DependencySection
	Install InstallSection
	Build   BuildSettings
}

// ModuleSpec is the decoded module.yaml of one module.
type ModuleSpec struct {
	Name        string
	Descriptors []ConfigurationDescriptor
	Defaults    ConfigurationSections
	Sections    map[string]ConfigurationSections
}

// EffectiveDependencySet is the merged, duplicate-free dependency list of a (module, configuration).
type EffectiveDependencySet struct {
	ForcedBranches []string
	Items          []Dep
}

// EffectiveInstallSet is the merged install metadata of a (module, configuration).
type EffectiveInstallSet struct {
	InstallFiles                  []string
	Artifacts                     []string
	CurrentConfigurationArtifacts []string
	ExternalModules               []string
	NuGetPackages                 []string
}
