//nolint:testpackage // Test needs access to unexported fields
package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vito/progrock"
	"google.golang.org/protobuf/types/known/timestamppb"
)

func completed(id, name string, cached bool, failure string) *progrock.Vertex {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	v := &progrock.Vertex{
		Id:        id,
		Name:      name,
		Started:   timestamppb.New(start),
		Completed: timestamppb.New(start.Add(1500 * time.Millisecond)),
		Cached:    cached,
	}
	if failure != "" {
		v.Error = &failure
	}
	return v
}

func TestModel_Update_TapeUpdate(t *testing.T) {
	feed := NewFeed()
	m := NewModel(feed)

	_, cmd := m.Update(MsgTapeUpdate{Update: &progrock.StatusUpdate{
		Vertexes: []*progrock.Vertex{
			{Id: "1", Name: "core/full-build"},
			{Id: "2", Name: "util/full-build"},
		},
		Logs: []*progrock.VertexLog{
			{Vertex: "1", Data: []byte("compiling\nlinking core.so\n")},
			{Vertex: "unknown", Data: []byte("ignored")},
		},
	}})
	assert.NotNil(t, cmd, "the model keeps reading the tape")

	m.Update(MsgTapeUpdate{Update: &progrock.StatusUpdate{
		Vertexes: []*progrock.Vertex{
			completed("1", "core/full-build", false, ""),
			completed("2", "util/full-build", true, ""),
			completed("3", "app/full-build", false, "exit status 2"),
		},
	}})

	require.Len(t, m.vertices, 3)
	assert.Equal(t, VertexState{ID: "1", Name: "core/full-build", Status: statusCompleted, LastLog: "linking core.so"}, m.vertices[0])
	assert.Equal(t, statusCached, m.vertices[1].Status)
	assert.Equal(t, statusFailed, m.vertices[2].Status)
}

func TestModel_Update_TapeEndedQuits(t *testing.T) {
	m := NewModel(NewFeed())

	_, cmd := m.Update(MsgTapeEnded{})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModel_Update_WindowSize(t *testing.T) {
	m := NewModel(NewFeed())

	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	assert.Equal(t, 100, m.width)
	assert.Equal(t, 40, m.height)
}

func TestModel_View(t *testing.T) {
	m := NewModel(nil)
	m.width = 30
	m.vertices = []VertexState{
		{ID: "1", Name: "core/full-build", Status: statusCompleted},
		{ID: "2", Name: "sdk/client", Status: statusRunning, LastLog: "a very long line of compiler output"},
		{ID: "3", Name: "app/full-build", Status: statusFailed},
	}

	output := m.View()

	assert.Contains(t, output, "✓")
	assert.Contains(t, output, "✗")
	assert.Contains(t, output, "core/full-build")
	assert.Contains(t, output, "a very long lin…")
	assert.NotContains(t, output, "compiler output")
}

func TestModel_View_Overflow(t *testing.T) {
	m := NewModel(nil)
	m.height = 2
	m.vertices = []VertexState{
		{ID: "1", Name: "first", Status: statusCompleted},
		{ID: "2", Name: "second", Status: statusCompleted},
		{ID: "3", Name: "third", Status: statusCompleted},
	}

	output := m.View()

	assert.NotContains(t, output, "first")
	assert.Contains(t, output, "second")
	assert.Contains(t, output, "third")
}
