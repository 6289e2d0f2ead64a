package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryRegisterAndGet(t *testing.T) {
	r := NewRegistry()
	p := &Player{ID: "p1", Position: Vector3{Y: 10}}
	r.Register(p)

	got, ok := r.Get("p1")
	require.True(t, ok)
	assert.Equal(t, "p1", got.ID)
	assert.Equal(t, 10.0, got.Position.Y)
	assert.Equal(t, 1, r.Count())
}

func TestRegistryGetReturnsCopy(t *testing.T) {
	r := NewRegistry()
	r.Register(&Player{ID: "p1"})

	got, ok := r.Get("p1")
	require.True(t, ok)
	got.Position.X = 99

	again, _ := r.Get("p1")
	assert.Equal(t, 0.0, again.Position.X)
}

func TestRegistryRegisterOverwritesSameID(t *testing.T) {
	r := NewRegistry()
	r.Register(&Player{ID: "p1", Color: "#ff0000"})
	r.Register(&Player{ID: "p1", Color: "#00ff00"})

	assert.Equal(t, 1, r.Count())
	got, _ := r.Get("p1")
	assert.Equal(t, "#00ff00", got.Color)
}

func TestRegistryUpdateTransform(t *testing.T) {
	r := NewRegistry()
	r.Register(&Player{ID: "p1"})

	tr := Transform{
		Position: Vector3{X: 1, Y: 2, Z: 3},
		Rotation: Vector3{Y: 1.5},
		Velocity: Vector3{X: -4},
		OnFloor:  true,
	}
	assert.True(t, r.UpdateTransform("p1", tr))

	got, _ := r.Get("p1")
	assert.Equal(t, tr.Position, got.Position)
	assert.Equal(t, tr.Rotation, got.Rotation)
	assert.Equal(t, tr.Velocity, got.Velocity)
	assert.True(t, got.OnFloor)
}

func TestRegistryUpdateTransformAbsentIsNoop(t *testing.T) {
	r := NewRegistry()

	assert.False(t, r.UpdateTransform("ghost", Transform{Position: Vector3{X: 1}}))
	assert.Equal(t, 0, r.Count())
}

func TestRegistryRemoveIdempotent(t *testing.T) {
	r := NewRegistry()
	r.Register(&Player{ID: "p1"})

	r.Remove("p1")
	assert.Equal(t, 0, r.Count())
	r.Remove("p1") // second remove is a no-op
	r.Remove("never-existed")
	assert.Equal(t, 0, r.Count())
}

func TestRegistrySnapshotExcludes(t *testing.T) {
	r := NewRegistry()
	r.Register(&Player{ID: "a"})
	r.Register(&Player{ID: "b"})
	r.Register(&Player{ID: "c"})

	snap := r.Snapshot("b")
	require.Len(t, snap, 2)
	for _, p := range snap {
		assert.NotEqual(t, "b", p.ID)
	}

	all := r.Snapshot("")
	assert.Len(t, all, 3)
}

func TestRegistrySnapshotJoinOrder(t *testing.T) {
	r := NewRegistry()
	r.Register(&Player{ID: "a"})
	r.Register(&Player{ID: "b"})
	r.Register(&Player{ID: "c"})
	r.Remove("b")
	r.Register(&Player{ID: "d"})

	snap := r.Snapshot("")
	require.Len(t, snap, 3)
	assert.Equal(t, "a", snap[0].ID)
	assert.Equal(t, "c", snap[1].ID)
	assert.Equal(t, "d", snap[2].ID)
}

func TestRegistrySnapshotEmptyIsNotNil(t *testing.T) {
	r := NewRegistry()
	snap := r.Snapshot("")
	require.NotNil(t, snap)
	assert.Len(t, snap, 0)
}

func TestNewIDUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := NewID()
		require.NotEmpty(t, id)
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}
