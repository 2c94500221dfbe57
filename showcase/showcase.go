// Package showcase composes the gallery scenes: three refracting diamonds, or a single
// loaded mesh, orbited by a point light inside an environment cube map.
package showcase

import (
	"github.com/Carmen-Shannon/oxy-gallery/common"
	"github.com/Carmen-Shannon/oxy-gallery/engine/animator"
	"github.com/Carmen-Shannon/oxy-gallery/engine/camera"
	"github.com/Carmen-Shannon/oxy-gallery/engine/game_object"
	"github.com/Carmen-Shannon/oxy-gallery/engine/light"
	"github.com/Carmen-Shannon/oxy-gallery/engine/model"
	"github.com/Carmen-Shannon/oxy-gallery/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-gallery/engine/scene"
	"github.com/Carmen-Shannon/oxy-gallery/engine/viewport"
	"github.com/Carmen-Shannon/oxy-gallery/log"
	"github.com/chewxy/math32"
)

var logger = log.New("showcase")

// Scene constants.
const (
	CameraDistance = 30
	CameraFov      = 50
	CameraNear     = 1
	CameraFar      = 1000

	DiamondSpacing = 15
	DiamondRadius  = 5
	DiamondHeight  = 9
	DiamondSides   = 6
	DiamondTopY    = 7
	DiamondBottomY = -2

	LightIntensity = 1.5
	MarkerScale    = 0.05
)

// Group names of the diamonds scene, center first.
var DiamondGroups = [3]string{"diamond", "diamond2", "diamond3"}

// Context holds everything a running showcase scene needs.
type Context struct {
	Scene      scene.Scene
	Camera     camera.Camera
	Materials  *material.MaterialSet
	Updater    animator.Animator
	Viewport   viewport.Controller
	PointLight light.Light
}

// NewDiamonds builds the three-diamond scene. Each diamond is a group of two cones sharing
// one material: an apex-up top and an apex-down bottom. The center group sits at the
// origin with the others DiamondSpacing to either side.
//
// Parameters:
//   - width: the initial viewport width
//   - height: the initial viewport height
//   - env: the environment cube map, nil for none
//
// Returns:
//   - *Context: the scene context
func NewDiamonds(width, height int, env *common.CubeMap) *Context {
	c := newContext("diamonds", width, height, env, DefaultMaterials())

	cone := model.NewCone(DiamondRadius, DiamondHeight, DiamondSides, 1)
	placements := []struct {
		material string
		x        float32
	}{
		{MaterialCenter, 0},
		{MaterialLeft, DiamondSpacing},
		{MaterialRight, -DiamondSpacing},
	}
	for i, p := range placements {
		c.Scene.AddGroup(newDiamond(DiamondGroups[i], cone, c.Materials.MustGet(p.material), p.x))
	}

	logger.Infof("diamonds scene ready with %d groups", len(c.Scene.Groups()))
	return c
}

// NewWolf builds the model scene without its mesh. LoadModel inserts the mesh once loaded.
//
// Parameters:
//   - width: the initial viewport width
//   - height: the initial viewport height
//   - env: the environment cube map, nil for none
//
// Returns:
//   - *Context: the scene context
func NewWolf(width, height int, env *common.CubeMap) *Context {
	return newContext("wolf", width, height, env, WolfMaterials())
}

func newContext(name string, width, height int, env *common.CubeMap, materials *material.MaterialSet) *Context {
	cam := camera.NewCamera(
		camera.WithFov(CameraFov),
		camera.WithViewport(width, height),
		camera.WithNear(CameraNear),
		camera.WithFar(CameraFar),
		camera.WithPosition(0, 0, -CameraDistance),
		camera.WithTarget(0, 0, 0),
		camera.WithController(camera.NewCameraController()),
	)

	sc := scene.NewScene(name, cam, scene.WithBackground(env))

	sc.AddLight(light.NewLight(light.LightTypeAmbient,
		light.WithName("ambient"),
		light.WithHexColor(0xffffff),
	), nil)

	point := light.NewLight(light.LightTypePoint,
		light.WithName("point"),
		light.WithHexColor(0xffffff),
		light.WithIntensity(LightIntensity),
		light.WithPosition(animator.DefaultOrbitRadius, 0, 0),
	)
	sc.AddLight(point, newMarker(point, materials.MustGet(MaterialMarker)))

	c := &Context{
		Scene:      sc,
		Camera:     cam,
		Materials:  materials,
		Updater:    animator.NewAnimator(),
		Viewport:   viewport.NewController(cam),
		PointLight: point,
	}
	c.Viewport.OnResize(width, height, 1)
	return c
}

func newDiamond(name string, cone model.Model, m material.Material, x float32) game_object.GameObject {
	top := game_object.NewGameObject(
		game_object.WithName(name+"_top"),
		game_object.WithModel(cone),
		game_object.WithMaterial(m),
		game_object.WithPosition(0, DiamondTopY, 0),
	)
	bottom := game_object.NewGameObject(
		game_object.WithName(name+"_bottom"),
		game_object.WithModel(cone),
		game_object.WithMaterial(m),
		game_object.WithPosition(0, DiamondBottomY, 0),
		game_object.WithRotation(math32.Pi, 0, 0),
	)
	group := game_object.NewGroup(name, top, bottom)
	group.SetPosition(x, 0, 0)
	return group
}

func newMarker(l light.Light, m material.Material) game_object.GameObject {
	return game_object.NewGameObject(
		game_object.WithName("light_marker"),
		game_object.WithModel(model.NewSphere(10, 16, 8)),
		game_object.WithMaterial(m),
		game_object.WithUniformScale(MarkerScale),
		game_object.WithLight(l),
	)
}
