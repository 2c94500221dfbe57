package game_object

import (
	"github.com/Carmen-Shannon/oxy-gallery/engine/light"
	"github.com/Carmen-Shannon/oxy-gallery/engine/model"
	"github.com/Carmen-Shannon/oxy-gallery/engine/renderer/material"
)

// GameObjectBuilderOption is a functional option for configuring a GameObject via NewGameObject.
type GameObjectBuilderOption func(*gameObject)

// WithName sets the node name.
//
// Parameters:
//   - name: the name
//
// Returns:
//   - GameObjectBuilderOption: a function that sets the name
func WithName(name string) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.name = name
	}
}

// WithEnabled sets whether the node starts enabled.
//
// Parameters:
//   - enabled: true to draw the node
//
// Returns:
//   - GameObjectBuilderOption: a function that sets the enabled state
func WithEnabled(enabled bool) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.enabled.Store(enabled)
	}
}

// WithModel sets the mesh drawn at this node.
//
// Parameters:
//   - m: the mesh
//
// Returns:
//   - GameObjectBuilderOption: a function that sets the model
func WithModel(m model.Model) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.mdl = m
	}
}

// WithMaterial sets the material the mesh is drawn with. The material is shared, not copied.
//
// Parameters:
//   - m: the material
//
// Returns:
//   - GameObjectBuilderOption: a function that sets the material
func WithMaterial(m material.Material) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.mat = m
	}
}

// WithPosition sets the local translation.
//
// Parameters:
//   - x, y, z: the translation
//
// Returns:
//   - GameObjectBuilderOption: a function that sets the position
func WithPosition(x, y, z float32) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.position = [3]float32{x, y, z}
	}
}

// WithRotation sets the local XYZ Euler rotation in radians.
//
// Parameters:
//   - rx, ry, rz: the rotation
//
// Returns:
//   - GameObjectBuilderOption: a function that sets the rotation
func WithRotation(rx, ry, rz float32) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.rotation = [3]float32{rx, ry, rz}
	}
}

// WithScale sets the local scale.
//
// Parameters:
//   - sx, sy, sz: the scale
//
// Returns:
//   - GameObjectBuilderOption: a function that sets the scale
func WithScale(sx, sy, sz float32) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.scale = [3]float32{sx, sy, sz}
	}
}

// WithUniformScale sets the same scale on every axis.
//
// Parameters:
//   - s: the scale
//
// Returns:
//   - GameObjectBuilderOption: a function that sets the scale
func WithUniformScale(s float32) GameObjectBuilderOption {
	return WithScale(s, s, s)
}

// WithLight attaches a light that this node follows. The node's translation is copied
// from the light whenever SyncToLight runs, which makes it a visual marker for the light.
//
// Parameters:
//   - l: the light
//
// Returns:
//   - GameObjectBuilderOption: a function that attaches the light
func WithLight(l light.Light) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.attached = l
		if l != nil {
			g.position = l.Position()
		}
	}
}
