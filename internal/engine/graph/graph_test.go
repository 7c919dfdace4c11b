package graph_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tangle/internal/core/domain"
	"go.trai.ch/tangle/internal/core/ports/mocks"
	"go.trai.ch/tangle/internal/engine/graph"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

type fakeSource struct {
	deps      map[string][]string
	ancestors map[string][]string
	artifacts map[string][]string
}

func (f *fakeSource) Dependencies(module, configuration string) (domain.EffectiveDependencySet, error) {
	var set domain.EffectiveDependencySet
	for _, line := range f.deps[module+"/"+configuration] {
		dep, _ := domain.ParseDep(line)
		set.Items = append(set.Items, dep)
	}
	return set, nil
}

func (f *fakeSource) DefaultConfiguration(string) (string, error) {
	return domain.DefaultConfiguration, nil
}

func (f *fakeSource) Ancestors(module, configuration string) ([]string, error) {
	return f.ancestors[module+"/"+configuration], nil
}

func (f *fakeSource) Install(module, configuration string) (domain.EffectiveInstallSet, error) {
	return domain.EffectiveInstallSet{CurrentConfigurationArtifacts: f.artifacts[module+"/"+configuration]}, nil
}

func node(name, configuration string) domain.Dep {
	return domain.Dep{Name: name, Configuration: configuration}
}

func closureOf(root string, configs map[string][]string, order ...string) *domain.Closure {
	c := domain.NewClosure(domain.Dep{Name: root, Configuration: domain.DefaultConfiguration})
	for _, name := range append([]string{root}, order...) {
		e := c.Entry(name)
		for _, cfg := range configs[name] {
			e.AddConfiguration(cfg)
		}
	}
	return c
}

type graphMocks struct {
	vcs      *mocks.MockVCS
	hasher   *mocks.MockHasher
	verifier *mocks.MockVerifier
}

func setup(t *testing.T, source graph.Source) (*graph.Builder, graphMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := graphMocks{
		vcs:      mocks.NewMockVCS(ctrl),
		hasher:   mocks.NewMockHasher(ctrl),
		verifier: mocks.NewMockVerifier(ctrl),
	}
	m.vcs.EXPECT().CurrentCommitHash(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, module string) (string, error) { return "c-" + module, nil },
	).AnyTimes()
	m.vcs.EXPECT().HasLocalChanges(gomock.Any(), gomock.Any()).Return(false, nil).AnyTimes()
	return graph.NewBuilder(source, m.vcs, m.hasher, m.verifier, "/ws"), m
}

func TestBuilder_BuildOrderAndEdges(t *testing.T) {
	source := &fakeSource{deps: map[string][]string{
		"app/full-build":  {"core", "ui@dev/client"},
		"ui/client":       {"core/full-build"},
		"core/full-build": {},
	}}
	closure := closureOf("app", map[string][]string{
		"app":  {"full-build"},
		"core": {"full-build"},
		"ui":   {"client"},
	}, "core", "ui")

	b, _ := setup(t, source)
	g, err := b.Build(context.Background(), closure, nil, graph.Options{})
	require.NoError(t, err)

	assert.Equal(t, []domain.Dep{
		node("core", "full-build"),
		node("ui", "client"),
		node("app", "full-build"),
	}, g.BuildOrder)
	assert.Equal(t, []domain.Dep{node("core", "full-build"), node("ui", "client")}, g.Edges[node("app", "full-build")])
	assert.Equal(t, "c-ui", g.CommitHashesByModule["ui"])
	assert.Len(t, g.ChangedModules, 3, "an empty cache marks everything changed")
}

func TestBuilder_CoveredConfigurationsCollapse(t *testing.T) {
	source := &fakeSource{
		deps: map[string][]string{
			"app/full-build":  {"core/full-build", "ui"},
			"ui/full-build":   {"core/client"},
			"core/full-build": {},
		},
		ancestors: map[string][]string{"core/full-build": {"client"}},
	}
	closure := closureOf("app", map[string][]string{
		"app":  {"full-build"},
		"core": {"full-build", "client"},
		"ui":   {"full-build"},
	}, "core", "ui")

	b, _ := setup(t, source)
	g, err := b.Build(context.Background(), closure, nil, graph.Options{})
	require.NoError(t, err)

	assert.NotContains(t, g.BuildOrder, node("core", "client"))
	assert.Equal(t, []domain.Dep{node("core", "full-build")}, g.Edges[node("ui", "full-build")])
}

func TestBuilder_Cycle(t *testing.T) {
	source := &fakeSource{deps: map[string][]string{
		"app/full-build": {"a"},
		"a/full-build":   {"b"},
		"b/full-build":   {"a"},
	}}
	closure := closureOf("app", map[string][]string{"app": {"full-build"}, "a": {"full-build"}, "b": {"full-build"}}, "a", "b")

	b, _ := setup(t, source)
	_, err := b.Build(context.Background(), closure, nil, graph.Options{})
	require.Error(t, err)

	var zErr *zerr.Error
	require.True(t, errors.As(err, &zErr))
	assert.Equal(t, "app/full-build -> a/full-build -> b/full-build -> a/full-build", zErr.Metadata()["cycle"])
}

func TestBuilder_ChangedModules(t *testing.T) {
	source := &fakeSource{
		deps: map[string][]string{
			"app/full-build":  {"core"},
			"core/full-build": {"base"},
		},
		artifacts: map[string][]string{"base/full-build": {"bin/base.so"}},
	}
	closure := closureOf("app", map[string][]string{
		"app": {"full-build"}, "core": {"full-build"}, "base": {"full-build"},
	}, "core", "base")

	upToDate := domain.BuildCache{
		"base/full-build": {"base": "c-base"},
		"core/full-build": {"core": "c-core", "base": "c-base"},
		"app/full-build":  {"app": "c-app", "core": "c-core", "base": "c-base"},
	}

	t.Run("UpToDate", func(t *testing.T) {
		b, m := setup(t, source)
		m.verifier.EXPECT().VerifyOutputs(filepath.Join("/ws", "base"), []string{"bin/base.so"}).Return(true, nil)

		g, err := b.Build(context.Background(), closure, upToDate, graph.Options{})
		require.NoError(t, err)
		assert.Empty(t, g.ChangedModules)
	})

	t.Run("StaleDependencyPropagates", func(t *testing.T) {
		stale := upToDate.Clone()
		stale["core/full-build"]["core"] = "old"

		b, m := setup(t, source)
		m.verifier.EXPECT().VerifyOutputs(gomock.Any(), gomock.Any()).Return(true, nil)

		g, err := b.Build(context.Background(), closure, stale, graph.Options{})
		require.NoError(t, err)
		assert.Equal(t, []domain.Dep{node("core", "full-build"), node("app", "full-build")}, g.ChangedModules)
	})

	t.Run("MissingArtifacts", func(t *testing.T) {
		b, m := setup(t, source)
		m.verifier.EXPECT().VerifyOutputs(gomock.Any(), gomock.Any()).Return(false, nil)

		g, err := b.Build(context.Background(), closure, upToDate, graph.Options{})
		require.NoError(t, err)
		assert.Len(t, g.ChangedModules, 3)
	})

	t.Run("Force", func(t *testing.T) {
		b, _ := setup(t, source)

		g, err := b.Build(context.Background(), closure, upToDate, graph.Options{Force: true})
		require.NoError(t, err)
		assert.Len(t, g.ChangedModules, 3)
	})
}

func TestBuilder_DirtyTreeFingerprint(t *testing.T) {
	source := &fakeSource{deps: map[string][]string{}}
	closure := closureOf("app", map[string][]string{"app": {"full-build"}})

	ctrl := gomock.NewController(t)
	vcs := mocks.NewMockVCS(ctrl)
	hasher := mocks.NewMockHasher(ctrl)
	vcs.EXPECT().CurrentCommitHash(gomock.Any(), "app").Return("abc", nil)
	vcs.EXPECT().HasLocalChanges(gomock.Any(), "app").Return(true, nil)
	hasher.EXPECT().HashTree(filepath.Join("/ws", "app")).Return("f00d", nil)

	b := graph.NewBuilder(source, vcs, hasher, mocks.NewMockVerifier(ctrl), "/ws")
	g, err := b.Build(context.Background(), closure, nil, graph.Options{})
	require.NoError(t, err)
	assert.Equal(t, "abc+f00d", g.CommitHashesByModule["app"])
}

func TestBuilder_ExcludeRoot(t *testing.T) {
	source := &fakeSource{deps: map[string][]string{
		"app/full-build": {"core"},
	}}
	closure := closureOf("app", map[string][]string{
		"app":  {"full-build"},
		"core": {"full-build"},
	}, "core")

	b, _ := setup(t, source)
	g, err := b.Build(context.Background(), closure, nil, graph.Options{ExcludeRoot: true})
	require.NoError(t, err)

	assert.Equal(t, []domain.Dep{node("core", "full-build")}, g.BuildOrder)
	assert.Equal(t, []domain.Dep{node("core", "full-build")}, g.ChangedModules)
	assert.Equal(t, "c-app", g.CommitHashesByModule["app"])
}
