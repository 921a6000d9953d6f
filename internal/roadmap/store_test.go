package roadmap_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vacmar/portfolio/internal/roadmap"
)

func validNode(id int) roadmap.Node {
	return roadmap.Node{
		ID:       id,
		Title:    "Node",
		Status:   roadmap.StatusPlanned,
		Kind:     roadmap.KindLearning,
		Position: roadmap.Point{X: 50, Y: 50},
	}
}

func TestNewStore_RejectsInvalidNodes(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*roadmap.Node)
	}{
		{"zero id", func(n *roadmap.Node) { n.ID = 0 }},
		{"empty title", func(n *roadmap.Node) { n.Title = "" }},
		{"bad status", func(n *roadmap.Node) { n.Status = "paused" }},
		{"bad kind", func(n *roadmap.Node) { n.Kind = "course" }},
		{"x above surface", func(n *roadmap.Node) { n.Position.X = 100.5 }},
		{"negative y", func(n *roadmap.Node) { n.Position.Y = -1 }},
		{"progress over 100", func(n *roadmap.Node) { n.Progress = intPtr(120) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := validNode(1)
			tt.mutate(&n)
			_, err := roadmap.NewStore([]roadmap.Node{n})
			require.ErrorIs(t, err, roadmap.ErrInvalidNode)
		})
	}
}

func TestNewStore_RejectsDuplicateIDs(t *testing.T) {
	_, err := roadmap.NewStore([]roadmap.Node{validNode(3), validNode(3)})
	require.ErrorIs(t, err, roadmap.ErrDuplicateID)
}

func TestStore_LookupReturnsCopies(t *testing.T) {
	n := validNode(1)
	n.Connections = []int{2}
	store, err := roadmap.NewStore([]roadmap.Node{n, validNode(2)})
	require.NoError(t, err)

	got, ok := store.Lookup(1)
	require.True(t, ok)
	got.Connections[0] = 99

	again, _ := store.Lookup(1)
	assert.Equal(t, []int{2}, again.Connections)

	_, ok = store.Lookup(42)
	assert.False(t, ok)
}

func TestStore_ConnectionsSkipDanglingIDs(t *testing.T) {
	a := validNode(1)
	a.Connections = []int{2, 77, 3}
	store, err := roadmap.NewStore([]roadmap.Node{a, validNode(2), validNode(3)})
	require.NoError(t, err)

	assert.Equal(t, []int{2, 3}, ids(store.Connections(1)))
	assert.Nil(t, store.Connections(77))
}

func TestStore_DefaultRoadmapStats(t *testing.T) {
	store := defaultStore(t)
	require.Equal(t, 13, store.Len())
	assert.Equal(t, roadmap.Stats{Completed: 5, Current: 3, Planned: 5}, store.Stats())
}

func TestNode_Detail(t *testing.T) {
	store := defaultStore(t)

	elevatr, ok := store.Lookup(7)
	require.True(t, ok)
	assert.Equal(t, "26% Complete", elevatr.Detail())
	assert.Equal(t, "★", elevatr.Glyph(0))
	assert.True(t, elevatr.HasLinks())

	frontend, _ := store.Lookup(1)
	assert.Equal(t, "Jan 2024", frontend.Detail())
	assert.Equal(t, "3", frontend.Glyph(2))
	assert.False(t, frontend.HasProgress())
}
