package sections_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tangle/internal/core/domain"
	"go.trai.ch/tangle/internal/engine/sections"
	"go.trai.ch/zerr"
)

func add(line string) domain.DependencyDecl {
	dep, removal := domain.ParseDep(line)
	return domain.DependencyDecl{Dep: dep, Removal: removal}
}

func layer(configuration string, items ...domain.DependencyDecl) sections.DependencyLayer {
	return sections.DependencyLayer{
		Configuration: configuration,
		Section:       domain.DependencySection{Items: items},
	}
}

func requireMetadata(t *testing.T, err error, key, want string) {
	t.Helper()
	var zErr *zerr.Error
	require.True(t, errors.As(err, &zErr), "expected *zerr.Error in chain, got %T", err)
	got, ok := zErr.Metadata()[key].(string)
	require.True(t, ok, "metadata %q missing", key)
	assert.Equal(t, want, got)
}

func TestMergeDependencies_Order(t *testing.T) {
	defaults := domain.DependencySection{Items: []domain.DependencyDecl{add("logging")}}
	parents := []sections.DependencyLayer{
		layer("sdk", add("core@dev")),
		layer("client", add("ui/client")),
	}

	got, err := sections.MergeDependencies(layer("full-build", add("net")), defaults, parents)
	require.NoError(t, err)

	assert.Equal(t, []domain.Dep{
		{Name: "logging"},
		{Name: "core", Treeish: "dev"},
		{Name: "ui", Configuration: "client"},
		{Name: "net"},
	}, got.Items)
}

func TestMergeDependencies_AddRemoveReAdd(t *testing.T) {
	got, err := sections.MergeDependencies(
		layer("full-build", add("-moduleA"), add("moduleA@release/full-build")),
		domain.DependencySection{Items: []domain.DependencyDecl{add("moduleA/client")}},
		nil,
	)
	require.NoError(t, err)

	assert.Equal(t, []domain.Dep{{Name: "moduleA", Treeish: "release", Configuration: "full-build"}}, got.Items)
}

func TestMergeDependencies_Duplicate(t *testing.T) {
	_, err := sections.MergeDependencies(
		layer("full-build", add("moduleA")),
		domain.DependencySection{Items: []domain.DependencyDecl{add("moduleA")}},
		nil,
	)
	require.Error(t, err)
	assert.ErrorContains(t, err, "duplicate dependency")
	requireMetadata(t, err, "module", "moduleA")

	var se *domain.SectionError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "full-build.deps", se.Section())
}

func TestMergeDependencies_DuplicateAcrossConfigurations(t *testing.T) {
	_, err := sections.MergeDependencies(
		layer("full-build", add("moduleA/full-build")),
		domain.DependencySection{},
		[]sections.DependencyLayer{layer("client", add("moduleA/client"))},
	)
	assert.ErrorContains(t, err, "duplicate dependency")
}

func TestMergeDependencies_InvalidRemoval(t *testing.T) {
	_, err := sections.MergeDependencies(layer("client", add("-ghost")), domain.DependencySection{}, nil)
	require.Error(t, err)
	assert.ErrorContains(t, err, "never added")

	var se *domain.SectionError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "client.deps", se.Section())
}

func TestMergeDependencies_RemovalMatching(t *testing.T) {
	defaults := domain.DependencySection{Items: []domain.DependencyDecl{add("core@dev/client")}}

	tests := []struct {
		name    string
		removal string
		wantErr bool
	}{
		{"NameOnly", "-core", false},
		{"Wildcards", "-core@*/*", false},
		{"ExactTreeish", "-core@dev", false},
		{"ExactConfiguration", "-core/client", false},
		{"OtherTreeish", "-core@release", true},
		{"OtherConfiguration", "-core/server", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := sections.MergeDependencies(layer("full-build", add(tt.removal)), defaults, nil)
			if tt.wantErr {
				assert.ErrorContains(t, err, "never added")
				return
			}
			require.NoError(t, err)
			assert.Empty(t, got.Items)
		})
	}
}

func TestMergeDependencies_ForcedBranches(t *testing.T) {
	defaults := domain.DependencySection{Force: []string{domain.CurrentBranchPlaceholder}}
	parent := sections.DependencyLayer{
		Configuration: "client",
		Section:       domain.DependencySection{Force: []string{"release"}},
	}

	got, err := sections.MergeDependencies(layer("full-build"), defaults, []sections.DependencyLayer{parent})
	require.NoError(t, err)
	assert.Equal(t, []string{"release"}, got.ForcedBranches)

	current := sections.DependencyLayer{
		Configuration: "full-build",
		Section:       domain.DependencySection{Force: []string{"hotfix", "master"}},
	}
	got, err = sections.MergeDependencies(current, defaults, []sections.DependencyLayer{parent})
	require.NoError(t, err)
	assert.Equal(t, []string{"hotfix", "master"}, got.ForcedBranches)
}

func TestMergeInstall(t *testing.T) {
	defaults := domain.InstallSection{
		InstallFiles: []string{"bin/core.dll"},
		Artifacts:    []string{"bin/core.pdb"},
	}
	parents := []domain.InstallSection{{
		InstallFiles:  []string{"bin/client.dll"},
		NuGetPackages: []string{"Client.Package"},
	}}
	current := domain.InstallSection{
		InstallFiles:    []string{"bin/full.dll", "bin/core.dll"},
		Artifacts:       []string{"bin/full.pdb"},
		ExternalModules: []string{"vendored-sdk"},
	}

	got := sections.MergeInstall(current, defaults, parents)

	assert.Equal(t, []string{"bin/core.dll", "bin/client.dll", "bin/full.dll"}, got.InstallFiles)
	assert.Equal(t, []string{"bin/core.dll", "bin/core.pdb", "bin/client.dll", "bin/full.dll", "bin/full.pdb"}, got.Artifacts)
	assert.Equal(t, []string{"bin/core.dll", "bin/core.pdb", "bin/full.dll", "bin/full.pdb"}, got.CurrentConfigurationArtifacts)
	assert.NotContains(t, got.CurrentConfigurationArtifacts, "bin/client.dll")
	assert.Equal(t, []string{"vendored-sdk"}, got.ExternalModules)
	assert.Equal(t, []string{"Client.Package"}, got.NuGetPackages)

	for _, f := range got.InstallFiles {
		assert.Contains(t, got.Artifacts, f)
	}
}

func TestMergeBuild(t *testing.T) {
	defaults := domain.BuildSettings{Cmd: []string{"make"}, Environment: map[string]string{"CC": "gcc", "V": "1"}}
	current := domain.BuildSettings{Environment: map[string]string{"CC": "clang"}}

	got := sections.MergeBuild(current, defaults)

	assert.Equal(t, []string{"make"}, got.Cmd)
	assert.Equal(t, map[string]string{"CC": "clang", "V": "1"}, got.Environment)

	got = sections.MergeBuild(domain.BuildSettings{Cmd: []string{"ninja"}}, defaults)
	assert.Equal(t, []string{"ninja"}, got.Cmd)
}
