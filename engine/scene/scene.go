package scene

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-gallery/common"
	"github.com/Carmen-Shannon/oxy-gallery/engine/camera"
	"github.com/Carmen-Shannon/oxy-gallery/engine/game_object"
	"github.com/Carmen-Shannon/oxy-gallery/engine/light"
)

// Drawable is a node with geometry paired with its world transform, resolved for one frame.
type Drawable struct {
	Object game_object.GameObject
	World  [16]float32
}

// Scene is the render-traversal root. It owns the camera, the lights and their markers,
// the named visual groups, and the environment cube map used for the background and for
// reflections.
type Scene interface {
	// Name retrieves the name of the scene.
	//
	// Returns:
	//   - string: the scene name
	Name() string

	// Camera retrieves the camera the scene is drawn through.
	//
	// Returns:
	//   - camera.Camera: the scene camera
	Camera() camera.Camera

	// SetCamera replaces the scene camera. Nil is ignored.
	//
	// Parameters:
	//   - cam: the new camera
	SetCamera(cam camera.Camera)

	// Root returns the top-level node every other node hangs from.
	//
	// Returns:
	//   - game_object.GameObject: the root node
	Root() game_object.GameObject

	// Add attaches nodes directly under the root.
	//
	// Parameters:
	//   - objects: the nodes to attach
	Add(objects ...game_object.GameObject)

	// AddGroup attaches a node under the root and registers it as a visual group, making it
	// visible to the animation updater. A group with the same name replaces the earlier one.
	//
	// Parameters:
	//   - group: the group pivot
	AddGroup(group game_object.GameObject)

	// Group looks up a registered visual group by name.
	//
	// Parameters:
	//   - name: the group name
	//
	// Returns:
	//   - game_object.GameObject: the group, nil when absent
	//   - bool: true if the group is registered
	Group(name string) (game_object.GameObject, bool)

	// Groups returns the registered visual groups in registration order.
	//
	// Returns:
	//   - []game_object.GameObject: a snapshot of the groups
	Groups() []game_object.GameObject

	// Remove detaches a node from the root, unregistering it if it was a group.
	//
	// Parameters:
	//   - object: the node to detach
	//
	// Returns:
	//   - bool: true if the node was a direct child of the root
	Remove(object game_object.GameObject) bool

	// AddLight registers a light. A non-nil marker is attached under the root and follows
	// the light's position on every SyncMarkers call.
	//
	// Parameters:
	//   - l: the light
	//   - marker: optional visual marker, built with game_object.WithLight(l)
	AddLight(l light.Light, marker game_object.GameObject)

	// Lights returns every registered light in registration order.
	//
	// Returns:
	//   - []light.Light: a snapshot of the lights
	Lights() []light.Light

	// PointLights returns the enabled point lights.
	//
	// Returns:
	//   - []light.Light: the point lights
	PointLights() []light.Light

	// Ambient returns the summed color*intensity of the enabled ambient lights.
	//
	// Returns:
	//   - [3]float32: the ambient term
	Ambient() [3]float32

	// Background retrieves the environment cube map, nil when none is set.
	//
	// Returns:
	//   - *common.CubeMap: the environment map
	Background() *common.CubeMap

	// SetBackground sets the environment cube map.
	//
	// Parameters:
	//   - cm: the environment map
	SetBackground(cm *common.CubeMap)

	// SyncMarkers moves every light-attached node to its light's current position.
	SyncMarkers()

	// Drawables collects the enabled nodes that carry both a model and a material, together
	// with their world matrices. Disabled nodes hide their whole subtree.
	//
	// Returns:
	//   - []Drawable: the nodes to draw this frame
	Drawables() []Drawable

	// Count returns the number of nodes below the root.
	//
	// Returns:
	//   - int: the node count
	Count() int
}

type scene struct {
	mu *sync.RWMutex

	name string
	cam  camera.Camera
	root game_object.GameObject

	groups     []game_object.GameObject
	lights     []light.Light
	markers    []game_object.GameObject
	background *common.CubeMap
}

var _ Scene = &scene{}

// NewScene creates a new Scene drawn through the given camera. The camera is required and
// NewScene panics if it is nil.
//
// Parameters:
//   - name: the name of the scene
//   - cam: the camera to attach (must not be nil)
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, cam camera.Camera, options ...SceneBuilderOption) Scene {
	if cam == nil {
		panic("scene: NewScene requires a non-nil Camera")
	}

	s := &scene{
		mu:   &sync.RWMutex{},
		name: name,
		cam:  cam,
		root: game_object.NewGroup(name),
	}

	for _, option := range options {
		option(s)
	}

	return s
}

func (s *scene) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

func (s *scene) Camera() camera.Camera {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cam
}

func (s *scene) SetCamera(cam camera.Camera) {
	if cam == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cam = cam
}

func (s *scene) Root() game_object.GameObject {
	return s.root
}

func (s *scene) Add(objects ...game_object.GameObject) {
	s.root.Add(objects...)
}

func (s *scene) AddGroup(group game_object.GameObject) {
	if group == nil {
		return
	}
	s.mu.Lock()
	for i, g := range s.groups {
		if g.Name() == group.Name() {
			s.root.Remove(g)
			s.groups = append(s.groups[:i], s.groups[i+1:]...)
			break
		}
	}
	s.groups = append(s.groups, group)
	s.mu.Unlock()

	s.root.Add(group)
}

func (s *scene) Group(name string) (game_object.GameObject, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, g := range s.groups {
		if g.Name() == name {
			return g, true
		}
	}
	return nil, false
}

func (s *scene) Groups() []game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]game_object.GameObject, len(s.groups))
	copy(out, s.groups)
	return out
}

func (s *scene) Remove(object game_object.GameObject) bool {
	if object == nil {
		return false
	}
	s.mu.Lock()
	for i, g := range s.groups {
		if g.ID() == object.ID() {
			s.groups = append(s.groups[:i], s.groups[i+1:]...)
			break
		}
	}
	for i, m := range s.markers {
		if m.ID() == object.ID() {
			s.markers = append(s.markers[:i], s.markers[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	return s.root.Remove(object)
}

func (s *scene) AddLight(l light.Light, marker game_object.GameObject) {
	if l == nil {
		return
	}
	s.mu.Lock()
	s.lights = append(s.lights, l)
	if marker != nil {
		s.markers = append(s.markers, marker)
	}
	s.mu.Unlock()

	if marker != nil {
		marker.SyncToLight()
		s.root.Add(marker)
	}
}

func (s *scene) Lights() []light.Light {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]light.Light, len(s.lights))
	copy(out, s.lights)
	return out
}

func (s *scene) PointLights() []light.Light {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []light.Light
	for _, l := range s.lights {
		if l.Type() == light.LightTypePoint && l.Enabled() {
			out = append(out, l)
		}
	}
	return out
}

func (s *scene) Ambient() [3]float32 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var sum [3]float32
	for _, l := range s.lights {
		if l.Type() != light.LightTypeAmbient || !l.Enabled() {
			continue
		}
		c, k := l.Color(), l.Intensity()
		sum[0] += c[0] * k
		sum[1] += c[1] * k
		sum[2] += c[2] * k
	}
	return sum
}

func (s *scene) Background() *common.CubeMap {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.background
}

func (s *scene) SetBackground(cm *common.CubeMap) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.background = cm
}

func (s *scene) SyncMarkers() {
	s.mu.RLock()
	markers := make([]game_object.GameObject, len(s.markers))
	copy(markers, s.markers)
	s.mu.RUnlock()

	for _, m := range markers {
		m.SyncToLight()
	}
}

func (s *scene) Drawables() []Drawable {
	var out []Drawable
	s.root.Traverse(func(obj game_object.GameObject) bool {
		if !obj.Enabled() {
			return false
		}
		if obj.Model() != nil && obj.Material() != nil {
			out = append(out, Drawable{Object: obj, World: obj.WorldMatrix()})
		}
		return true
	})
	return out
}

func (s *scene) Count() int {
	n := -1
	s.root.Traverse(func(game_object.GameObject) bool {
		n++
		return true
	})
	return n
}
