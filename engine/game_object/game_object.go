package game_object

import (
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-gallery/common"
	"github.com/Carmen-Shannon/oxy-gallery/engine/light"
	"github.com/Carmen-Shannon/oxy-gallery/engine/model"
	"github.com/Carmen-Shannon/oxy-gallery/engine/renderer/material"
)

var nextID atomic.Uint64

// gameObject is the implementation of the GameObject interface.
type gameObject struct {
	mu *sync.Mutex

	id       uint64
	name     string
	enabled  atomic.Bool
	mdl      model.Model
	mat      material.Material
	attached light.Light

	parent   *gameObject
	children []*gameObject

	position [3]float32
	rotation [3]float32 // XYZ Euler, radians
	scale    [3]float32
}

// GameObject is a node in the scene graph. A node with a Model and Material is drawn;
// a node without one is a pivot that groups its children under a shared transform.
// Transforms are local to the parent and composed as T * Rx * Ry * Rz * S.
type GameObject interface {
	// ID returns the process-unique identifier assigned at construction.
	//
	// Returns:
	//   - uint64: the ID
	ID() uint64

	// Name returns the node name.
	//
	// Returns:
	//   - string: the name
	Name() string

	// Enabled reports whether the node and its subtree are drawn.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// Model returns the mesh drawn at this node, or nil for a pivot.
	//
	// Returns:
	//   - model.Model: the mesh
	Model() model.Model

	// Material returns the shared material the mesh is drawn with, or nil.
	//
	// Returns:
	//   - material.Material: the material
	Material() material.Material

	// Light returns the light this node follows, or nil.
	//
	// Returns:
	//   - light.Light: the attached light
	Light() light.Light

	// Position returns the local translation.
	//
	// Returns:
	//   - x, y, z: the translation
	Position() (x, y, z float32)

	// Rotation returns the local XYZ Euler rotation in radians.
	//
	// Returns:
	//   - rx, ry, rz: the rotation
	Rotation() (rx, ry, rz float32)

	// Scale returns the local scale.
	//
	// Returns:
	//   - sx, sy, sz: the scale
	Scale() (sx, sy, sz float32)

	// Parent returns the parent node, or nil for a root.
	//
	// Returns:
	//   - GameObject: the parent
	Parent() GameObject

	// Children returns a snapshot of the direct children in insertion order.
	//
	// Returns:
	//   - []GameObject: the children
	Children() []GameObject

	// Add attaches children to this node, detaching them from any previous parent.
	// Adding a node to itself or to one of its own descendants is ignored.
	//
	// Parameters:
	//   - children: the nodes to attach
	Add(children ...GameObject)

	// Remove detaches a direct child.
	//
	// Parameters:
	//   - child: the node to detach
	//
	// Returns:
	//   - bool: false if child was not a direct child
	Remove(child GameObject) bool

	// Clone returns a copy of this node sharing its Model and Material, without
	// children or parent. The copy gets a new ID.
	//
	// Returns:
	//   - GameObject: the copy
	Clone() GameObject

	// LocalMatrix returns the column-major local transform.
	//
	// Returns:
	//   - [16]float32: the local matrix
	LocalMatrix() [16]float32

	// WorldMatrix returns the column-major transform composed through every ancestor.
	//
	// Returns:
	//   - [16]float32: the world matrix
	WorldMatrix() [16]float32

	// Traverse visits this node and then its descendants depth-first. Returning false
	// from visit skips the visited node's subtree.
	//
	// Parameters:
	//   - visit: the callback
	Traverse(visit func(GameObject) bool)

	// SyncToLight copies the attached light's position into this node's translation.
	// No-op without an attached light.
	SyncToLight()

	SetName(name string)
	SetEnabled(enabled bool)
	SetModel(m model.Model)
	SetMaterial(m material.Material)
	SetPosition(x, y, z float32)
	SetRotation(rx, ry, rz float32)
	SetScale(sx, sy, sz float32)
}

var _ GameObject = &gameObject{}

// NewGameObject creates a new GameObject with the given options applied.
// The node starts enabled with unit scale at the parent origin.
//
// Parameters:
//   - options: a variadic list of GameObjectBuilderOption functions
//
// Returns:
//   - GameObject: the configured node
func NewGameObject(options ...GameObjectBuilderOption) GameObject {
	obj := &gameObject{
		mu:    &sync.Mutex{},
		id:    nextID.Add(1),
		scale: [3]float32{1, 1, 1},
	}
	obj.enabled.Store(true)
	for _, option := range options {
		option(obj)
	}
	return obj
}

// NewGroup creates a named pivot node holding the given children.
//
// Parameters:
//   - name: the group name
//   - children: the nodes to attach
//
// Returns:
//   - GameObject: the group
func NewGroup(name string, children ...GameObject) GameObject {
	g := NewGameObject(WithName(name))
	g.Add(children...)
	return g
}

func (g *gameObject) ID() uint64 {
	return g.id
}

func (g *gameObject) Name() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.name
}

func (g *gameObject) Enabled() bool {
	return g.enabled.Load()
}

func (g *gameObject) Model() model.Model {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.mdl
}

func (g *gameObject) Material() material.Material {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.mat
}

func (g *gameObject) Light() light.Light {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.attached
}

func (g *gameObject) Position() (x, y, z float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.position[0], g.position[1], g.position[2]
}

func (g *gameObject) Rotation() (rx, ry, rz float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rotation[0], g.rotation[1], g.rotation[2]
}

func (g *gameObject) Scale() (sx, sy, sz float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.scale[0], g.scale[1], g.scale[2]
}

func (g *gameObject) Parent() GameObject {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.parent == nil {
		return nil
	}
	return g.parent
}

func (g *gameObject) Children() []GameObject {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]GameObject, len(g.children))
	for i, c := range g.children {
		out[i] = c
	}
	return out
}

func (g *gameObject) Add(children ...GameObject) {
	for _, c := range children {
		child, ok := c.(*gameObject)
		if !ok || child == nil || child.isAncestorOf(g) {
			continue
		}
		if old := child.currentParent(); old != nil {
			old.Remove(child)
		}

		g.mu.Lock()
		g.children = append(g.children, child)
		g.mu.Unlock()

		child.mu.Lock()
		child.parent = g
		child.mu.Unlock()
	}
}

func (g *gameObject) Remove(child GameObject) bool {
	c, ok := child.(*gameObject)
	if !ok {
		return false
	}

	g.mu.Lock()
	idx := -1
	for i, existing := range g.children {
		if existing == c {
			idx = i
			break
		}
	}
	if idx >= 0 {
		g.children = append(g.children[:idx], g.children[idx+1:]...)
	}
	g.mu.Unlock()

	if idx < 0 {
		return false
	}
	c.mu.Lock()
	c.parent = nil
	c.mu.Unlock()
	return true
}

func (g *gameObject) Clone() GameObject {
	g.mu.Lock()
	defer g.mu.Unlock()
	clone := &gameObject{
		mu:       &sync.Mutex{},
		id:       nextID.Add(1),
		name:     g.name,
		mdl:      g.mdl,
		mat:      g.mat,
		attached: g.attached,
		position: g.position,
		rotation: g.rotation,
		scale:    g.scale,
	}
	clone.enabled.Store(g.enabled.Load())
	return clone
}

func (g *gameObject) LocalMatrix() [16]float32 {
	g.mu.Lock()
	defer g.mu.Unlock()
	var m [16]float32
	common.BuildModelMatrix(m[:], g.position, g.rotation, g.scale)
	return m
}

func (g *gameObject) WorldMatrix() [16]float32 {
	world := g.LocalMatrix()
	for p := g.currentParent(); p != nil; p = p.currentParent() {
		parent := p.LocalMatrix()
		common.Mul4(world[:], parent[:], world[:])
	}
	return world
}

func (g *gameObject) Traverse(visit func(GameObject) bool) {
	if !visit(g) {
		return
	}
	for _, c := range g.Children() {
		c.Traverse(visit)
	}
}

func (g *gameObject) SyncToLight() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.attached == nil {
		return
	}
	g.position = g.attached.Position()
}

func (g *gameObject) SetName(name string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.name = name
}

func (g *gameObject) SetEnabled(enabled bool) {
	g.enabled.Store(enabled)
}

func (g *gameObject) SetModel(m model.Model) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.mdl = m
}

func (g *gameObject) SetMaterial(m material.Material) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.mat = m
}

func (g *gameObject) SetPosition(x, y, z float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.position = [3]float32{x, y, z}
}

func (g *gameObject) SetRotation(rx, ry, rz float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rotation = [3]float32{rx, ry, rz}
}

func (g *gameObject) SetScale(sx, sy, sz float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.scale = [3]float32{sx, sy, sz}
}

func (g *gameObject) currentParent() *gameObject {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.parent
}

// isAncestorOf reports whether g is other or one of other's ancestors.
func (g *gameObject) isAncestorOf(other *gameObject) bool {
	for n := other; n != nil; n = n.currentParent() {
		if n == g {
			return true
		}
	}
	return false
}
