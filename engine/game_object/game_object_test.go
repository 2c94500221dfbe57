package game_object

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-gallery/common"
	"github.com/Carmen-Shannon/oxy-gallery/engine/light"
	"github.com/Carmen-Shannon/oxy-gallery/engine/model"
	"github.com/Carmen-Shannon/oxy-gallery/engine/renderer/material"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupHierarchy(t *testing.T) {
	top := NewGameObject(WithName("top"), WithPosition(0, 7, 0))
	bottom := NewGameObject(WithName("bottom"), WithPosition(0, -2, 0))
	group := NewGroup("diamond", top, bottom)

	require.Len(t, group.Children(), 2)
	assert.Same(t, group, top.Parent())
	assert.Nil(t, group.Parent())

	assert.True(t, group.Remove(bottom))
	assert.False(t, group.Remove(bottom))
	assert.Nil(t, bottom.Parent())
	assert.Len(t, group.Children(), 1)
}

func TestAddReparentsAndRejectsCycles(t *testing.T) {
	a := NewGroup("a")
	b := NewGroup("b")
	child := NewGameObject(WithName("child"))

	a.Add(child)
	b.Add(child)
	assert.Empty(t, a.Children())
	assert.Same(t, b, child.Parent())

	child.Add(b)
	assert.Empty(t, child.Children())
	a.Add(a)
	assert.Empty(t, a.Children())
}

func TestWorldMatrixComposesParentRotation(t *testing.T) {
	child := NewGameObject(WithPosition(15, 0, 0))
	group := NewGroup("g", child)
	group.SetRotation(0, math.Pi/2, 0)

	world := child.WorldMatrix()
	p := common.TransformPoint(world[:], [3]float32{0, 0, 0})

	// Rotating +X by 90 degrees about Y lands on -Z.
	assert.InDelta(t, 0, p[0], 1e-5)
	assert.InDelta(t, -15, p[2], 1e-5)
}

func TestMirroredChildFlipsApex(t *testing.T) {
	bottom := NewGameObject(WithPosition(0, -2, 0), WithRotation(math.Pi, 0, 0))
	world := bottom.WorldMatrix()
	apex := common.TransformPoint(world[:], [3]float32{0, 4.5, 0})

	assert.InDelta(t, -6.5, apex[1], 1e-5)
	assert.InDelta(t, 0, apex[2], 1e-5)
}

func TestCloneSharesMeshAndMaterial(t *testing.T) {
	cone := model.NewCone(5, 9, 6, 1)
	mat := material.NewMaterial("center")
	top := NewGameObject(WithModel(cone), WithMaterial(mat), WithPosition(0, 7, 0))

	bottom := top.Clone()
	bottom.SetPosition(0, -2, 0)

	assert.NotEqual(t, top.ID(), bottom.ID())
	assert.Same(t, top.Model(), bottom.Model())
	assert.Same(t, top.Material(), bottom.Material())
	_, y, _ := top.Position()
	assert.Equal(t, float32(7), y)
}

func TestTraverseSkipsSubtree(t *testing.T) {
	leaf := NewGameObject(WithName("leaf"))
	inner := NewGroup("inner", leaf)
	root := NewGroup("root", inner, NewGameObject(WithName("other")))

	var visited []string
	root.Traverse(func(g GameObject) bool {
		visited = append(visited, g.Name())
		return g.Name() != "inner"
	})
	assert.Equal(t, []string{"root", "inner", "other"}, visited)
}

func TestSyncToLight(t *testing.T) {
	l := light.NewLight(light.LightTypePoint)
	marker := NewGameObject(WithLight(l), WithUniformScale(0.05))

	l.SetPosition(0, 3, 100)
	marker.SyncToLight()
	x, y, z := marker.Position()
	assert.Equal(t, [3]float32{0, 3, 100}, [3]float32{x, y, z})

	sx, _, _ := marker.Scale()
	assert.Equal(t, float32(0.05), sx)
}
