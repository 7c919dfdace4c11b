package domain_test

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tangle/internal/core/domain"
	"go.trai.ch/zerr"
)

func diamond() []domain.ConfigurationDescriptor {
	// full-build inherits from client and server, both inherit from sdk.
	return []domain.ConfigurationDescriptor{
		{Name: "full-build", Parents: []string{"client", "server"}},
		{Name: "client", Parents: []string{"sdk"}},
		{Name: "server", Parents: []string{"sdk"}},
		{Name: "sdk"},
	}
}

func TestHierarchy_TopologicalOrder_Diamond(t *testing.T) {
	h, err := domain.NewHierarchy(diamond())
	require.NoError(t, err)

	assert.Equal(t, []string{"sdk", "client", "server", "full-build"}, h.TopologicalOrder())
}

func TestHierarchy_AllAncestorsOf(t *testing.T) {
	h, err := domain.NewHierarchy(diamond())
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"client", "server", "sdk"}, h.AllAncestorsOf("full-build"))
	assert.Equal(t, []string{"sdk"}, h.AllAncestorsOf("client"))
	assert.Empty(t, h.AllAncestorsOf("sdk"))
	assert.True(t, h.IsAncestor("sdk", "full-build"))
	assert.False(t, h.IsAncestor("full-build", "sdk"))
	assert.Equal(t, []string{"client", "server"}, h.ParentsOf("full-build"))
}

func TestHierarchy_UnknownParentDoesNotBlock(t *testing.T) {
	h, err := domain.NewHierarchy([]domain.ConfigurationDescriptor{
		{Name: "client", Parents: []string{"ghost"}},
		{Name: "full-build", Parents: []string{"client"}},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"client", "full-build"}, h.TopologicalOrder())
	assert.Equal(t, []string{"client", "ghost"}, h.AllAncestorsOf("full-build"))
}

func TestHierarchy_Cycle(t *testing.T) {
	_, err := domain.NewHierarchy([]domain.ConfigurationDescriptor{
		{Name: "a", Parents: []string{"b"}},
		{Name: "b", Parents: []string{"c"}},
		{Name: "c", Parents: []string{"a"}},
	})
	require.Error(t, err)
	assert.ErrorContains(t, err, "cyclic configuration hierarchy")

	var zErr *zerr.Error
	require.True(t, errors.As(err, &zErr))
	cycle, ok := zErr.Metadata()["cycle"].(string)
	require.True(t, ok)
	assert.Equal(t, "a -> b -> c -> a", cycle)
}

func TestHierarchy_SelfParent(t *testing.T) {
	_, err := domain.NewHierarchy([]domain.ConfigurationDescriptor{
		{Name: "a", Parents: []string{"a"}},
	})
	assert.ErrorContains(t, err, "cyclic configuration hierarchy")
}

func TestHierarchy_DuplicateName(t *testing.T) {
	_, err := domain.NewHierarchy([]domain.ConfigurationDescriptor{{Name: "a"}, {Name: "a"}})
	assert.ErrorContains(t, err, "duplicate configuration")
}

func TestHierarchy_Default(t *testing.T) {
	tests := []struct {
		name        string
		descriptors []domain.ConfigurationDescriptor
		want        string
		wantErr     bool
	}{
		{
			name: "ExplicitMarkWins",
			descriptors: []domain.ConfigurationDescriptor{
				{Name: "full-build"},
				{Name: "client", IsDefault: true},
			},
			want: "client",
		},
		{
			name: "FullBuildByName",
			descriptors: []domain.ConfigurationDescriptor{
				{Name: "client"},
				{Name: "full-build"},
			},
			want: "full-build",
		},
		{
			name:        "SoleDescriptor",
			descriptors: []domain.ConfigurationDescriptor{{Name: "client"}},
			want:        "client",
		},
		{
			name: "Ambiguous",
			descriptors: []domain.ConfigurationDescriptor{
				{Name: "client"},
				{Name: "server"},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := domain.NewHierarchy(tt.descriptors)
			require.NoError(t, err)

			got, err := h.Default()
			if tt.wantErr {
				assert.ErrorContains(t, err, "ambiguous")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHierarchy_TopologicalOrder_RandomDAGs(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))

	for run := 0; run < 50; run++ {
		n := 1 + rng.IntN(12)
		descriptors := make([]domain.ConfigurationDescriptor, n)
		for i := range n {
			d := domain.ConfigurationDescriptor{Name: fmt.Sprintf("c%d", i)}
			// Parents always have a lower index, so the input is acyclic.
			for j := 0; j < i; j++ {
				if rng.IntN(3) == 0 {
					d.Parents = append(d.Parents, fmt.Sprintf("c%d", j))
				}
			}
			descriptors[i] = d
		}
		rng.Shuffle(len(descriptors), func(i, j int) {
			descriptors[i], descriptors[j] = descriptors[j], descriptors[i]
		})

		h, err := domain.NewHierarchy(descriptors)
		require.NoError(t, err)

		order := h.TopologicalOrder()
		require.Len(t, order, n)
		for _, d := range descriptors {
			child := slices.Index(order, d.Name)
			for _, p := range d.Parents {
				assert.Less(t, slices.Index(order, p), child, "%s must precede %s", p, d.Name)
			}
		}
	}
}
