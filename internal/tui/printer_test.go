package tui_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vito/progrock"
	"go.trai.ch/tangle/internal/tui"
	"google.golang.org/protobuf/types/known/timestamppb"
)

func TestPrinter_PrintsFinishedBuildsOnce(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	failure := "exit status 1"

	feed := tui.NewFeed()
	require.NoError(t, feed.WriteStatus(&progrock.StatusUpdate{Vertexes: []*progrock.Vertex{
		{Id: "1", Name: "core/full-build", Started: timestamppb.New(start)},
	}}))
	require.NoError(t, feed.WriteStatus(&progrock.StatusUpdate{Vertexes: []*progrock.Vertex{
		{
			Id: "1", Name: "core/full-build",
			Started: timestamppb.New(start), Completed: timestamppb.New(start.Add(2 * time.Second)),
		},
		{
			Id: "2", Name: "util/full-build",
			Started: timestamppb.New(start), Completed: timestamppb.New(start), Cached: true,
		},
	}}))
	require.NoError(t, feed.WriteStatus(&progrock.StatusUpdate{Vertexes: []*progrock.Vertex{
		{
			Id: "1", Name: "core/full-build",
			Started: timestamppb.New(start), Completed: timestamppb.New(start.Add(2 * time.Second)),
		},
		{
			Id: "3", Name: "app/full-build",
			Started: timestamppb.New(start), Completed: timestamppb.New(start.Add(time.Second)), Error: &failure,
		},
	}}))
	require.NoError(t, feed.Close())

	var out bytes.Buffer
	p := tui.NewPrinter(feed, &out)
	require.NoError(t, p.Start(context.Background()))
	require.NoError(t, p.Wait())

	assert.Equal(t, "✓ core/full-build (2s)\n= util/full-build\n✗ app/full-build (1s)\n", out.String())
}
