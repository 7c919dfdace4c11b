package updater_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tangle/internal/core/domain"
	"go.trai.ch/tangle/internal/core/ports/mocks"
	"go.trai.ch/tangle/internal/engine/updater"
	"go.uber.org/mock/gomock"
)

type updaterMocks struct {
	vcs       *mocks.MockVCS
	catalogue *mocks.MockCatalogue
	logger    *mocks.MockLogger
}

func setup(t *testing.T, opts updater.Options) (*updater.Updater, updaterMocks, *domain.RunStats) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := updaterMocks{
		vcs:       mocks.NewMockVCS(ctrl),
		catalogue: mocks.NewMockCatalogue(ctrl),
		logger:    mocks.NewMockLogger(ctrl),
	}
	m.logger.EXPECT().Debug(gomock.Any(), gomock.Any()).AnyTimes()
	m.logger.EXPECT().Info(gomock.Any(), gomock.Any()).AnyTimes()
	m.logger.EXPECT().Warn(gomock.Any(), gomock.Any()).AnyTimes()

	stats := domain.NewRunStats()
	return updater.New(m.vcs, m.catalogue, m.logger, opts, stats), m, stats
}

// expectTail expects the operations that follow a successful checkout of treeish.
func expectTail(m updaterMocks, module, treeish string, tracking bool) {
	m.vcs.EXPECT().Checkout(gomock.Any(), module, treeish).Return(nil)
	m.vcs.EXPECT().IsOnBranch(gomock.Any(), module).Return(tracking, nil)
	if tracking {
		m.vcs.EXPECT().HasRemoteBranch(gomock.Any(), module, treeish).Return(true, nil)
		m.vcs.EXPECT().Pull(gomock.Any(), module).Return(nil)
	}
	m.vcs.EXPECT().SubmoduleUpdate(gomock.Any(), module).Return(nil)
}

func TestSync_ClonesMissingModule(t *testing.T) {
	u, m, stats := setup(t, updater.Options{})

	m.vcs.EXPECT().IsCloned("core").Return(false)
	m.catalogue.EXPECT().Lookup("core").Return(domain.ModuleRecord{Name: "core", FetchURL: "git@host:core.git"}, nil)
	m.vcs.EXPECT().Clone(gomock.Any(), "core", "git@host:core.git", "git@host:core.git").Return(nil)
	m.vcs.EXPECT().Fetch(gomock.Any(), "core").Return(nil)
	expectTail(m, "core", "release", false)

	err := u.Sync(context.Background(), domain.SyncRequest{Module: "core", Treeish: "release"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Synced())
}

func TestSync_UnknownModule(t *testing.T) {
	u, m, _ := setup(t, updater.Options{})

	m.vcs.EXPECT().IsCloned("ghost").Return(false)
	m.catalogue.EXPECT().Lookup("ghost").Return(domain.ModuleRecord{}, domain.ErrUnknownModule)

	err := u.Sync(context.Background(), domain.SyncRequest{Module: "ghost"})
	assert.ErrorIs(t, err, domain.ErrUnknownModule)
}

func TestSync_TreeishChoice(t *testing.T) {
	tests := []struct {
		name   string
		req    domain.SyncRequest
		expect func(m updaterMocks)
		want   string
	}{
		{
			name: "FirstForcedBranchOnRemote",
			req:  domain.SyncRequest{Module: "core", ForcedBranches: []string{"hotfix", "release"}},
			expect: func(m updaterMocks) {
				m.vcs.EXPECT().HasRemoteBranch(gomock.Any(), "core", "hotfix").Return(false, nil)
				m.vcs.EXPECT().HasRemoteBranch(gomock.Any(), "core", "release").Return(true, nil)
			},
			want: "release",
		},
		{
			name: "CurrentBranch",
			req:  domain.SyncRequest{Module: "core", ForcedBranches: []string{"hotfix"}},
			expect: func(m updaterMocks) {
				m.vcs.EXPECT().HasRemoteBranch(gomock.Any(), "core", "hotfix").Return(false, nil)
				m.vcs.EXPECT().IsOnBranch(gomock.Any(), "core").Return(true, nil)
				m.vcs.EXPECT().CurrentLocalTreeish(gomock.Any(), "core").Return("feature", nil)
			},
			want: "feature",
		},
		{
			name: "RemoteDefaultBranchOnDetachedHead",
			req:  domain.SyncRequest{Module: "core"},
			expect: func(m updaterMocks) {
				m.vcs.EXPECT().IsOnBranch(gomock.Any(), "core").Return(false, nil)
				m.vcs.EXPECT().DefaultBranch(gomock.Any(), "core").Return("main", nil)
			},
			want: "main",
		},
		{
			name: "ConfiguredDefaultBranch",
			req:  domain.SyncRequest{Module: "core"},
			expect: func(m updaterMocks) {
				m.vcs.EXPECT().IsOnBranch(gomock.Any(), "core").Return(false, nil)
				m.vcs.EXPECT().DefaultBranch(gomock.Any(), "core").Return("", errors.New("no origin/HEAD"))
			},
			want: "trunk",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, m, _ := setup(t, updater.Options{DefaultBranch: "trunk"})

			m.vcs.EXPECT().IsCloned("core").Return(true)
			m.vcs.EXPECT().HasLocalChanges(gomock.Any(), "core").Return(false, nil)
			m.vcs.EXPECT().Fetch(gomock.Any(), "core").Return(nil)
			tt.expect(m)
			expectTail(m, "core", tt.want, true)

			require.NoError(t, u.Sync(context.Background(), tt.req))
		})
	}
}

func TestSync_LocalChangesPolicy(t *testing.T) {
	t.Run("Fail", func(t *testing.T) {
		u, m, _ := setup(t, updater.Options{Policy: domain.LocalChangesFail})
		m.vcs.EXPECT().IsCloned("core").Return(true)
		m.vcs.EXPECT().HasLocalChanges(gomock.Any(), "core").Return(true, nil)

		err := u.Sync(context.Background(), domain.SyncRequest{Module: "core"})
		assert.ErrorContains(t, err, "local changes")
	})

	t.Run("Reset", func(t *testing.T) {
		u, m, _ := setup(t, updater.Options{Policy: domain.LocalChangesReset})
		m.vcs.EXPECT().IsCloned("core").Return(true)
		m.vcs.EXPECT().HasLocalChanges(gomock.Any(), "core").Return(true, nil)
		gomock.InOrder(
			m.vcs.EXPECT().HardReset(gomock.Any(), "core").Return(nil),
			m.vcs.EXPECT().Clean(gomock.Any(), "core").Return(nil),
			m.vcs.EXPECT().Fetch(gomock.Any(), "core").Return(nil),
		)
		expectTail(m, "core", "v1", false)

		require.NoError(t, u.Sync(context.Background(), domain.SyncRequest{Module: "core", Treeish: "v1"}))
	})

	t.Run("Keep", func(t *testing.T) {
		u, m, stats := setup(t, updater.Options{Policy: domain.LocalChangesKeep})
		m.vcs.EXPECT().IsCloned("core").Return(true).Times(2)
		m.vcs.EXPECT().HasLocalChanges(gomock.Any(), "core").Return(true, nil).Times(2)

		require.NoError(t, u.Sync(context.Background(), domain.SyncRequest{Module: "core", Treeish: "v1"}))
		require.NoError(t, u.Sync(context.Background(), domain.SyncRequest{Module: "core", Treeish: "v1"}))
		assert.Equal(t, int64(0), stats.Synced())
	})
}

func TestSync_FetchFailure(t *testing.T) {
	u, m, _ := setup(t, updater.Options{})
	fetchErr := errors.New("connection refused")

	m.vcs.EXPECT().IsCloned("core").Return(true)
	m.vcs.EXPECT().HasLocalChanges(gomock.Any(), "core").Return(false, nil)
	m.vcs.EXPECT().Fetch(gomock.Any(), "core").Return(fetchErr)

	err := u.Sync(context.Background(), domain.SyncRequest{Module: "core"})
	assert.ErrorIs(t, err, fetchErr)
}
