package domain_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/tangle/internal/core/domain"
)

func TestRunStats_Counters(t *testing.T) {
	stats := domain.NewRunStats()

	var wg sync.WaitGroup
	for range 10 {
		wg.Go(func() {
			stats.AddSynced()
			stats.AddCached()
			stats.AddBuilt(time.Second)
		})
	}
	wg.Wait()

	assert.Equal(t, int64(10), stats.Synced())
	assert.Equal(t, int64(10), stats.Cached())
	assert.Equal(t, int64(10), stats.Built())
	assert.Equal(t, 10*time.Second, stats.BuildTime())
}

func TestRunStats_Once(t *testing.T) {
	stats := domain.NewRunStats()

	assert.True(t, stats.Once("patch:core"))
	assert.False(t, stats.Once("patch:core"))
	assert.True(t, stats.Once("patch:sdk"))

	// A new run starts with an empty set.
	assert.True(t, domain.NewRunStats().Once("patch:core"))
}
