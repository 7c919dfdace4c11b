package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tangle/internal/core/domain"
)

func TestInSection_PrependsSegments(t *testing.T) {
	base := errors.New("boom")

	err := domain.InSection(base, "deps")
	err = domain.InSection(err, "full-build")
	err = domain.InSection(err, "core")

	var se *domain.SectionError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "core.full-build.deps", se.Section())
	assert.Equal(t, "section core.full-build.deps: boom", err.Error())
	assert.ErrorIs(t, err, base)
}

func TestInSection_Nil(t *testing.T) {
	assert.NoError(t, domain.InSection(nil, "deps"))
}
