package showcase

import (
	"context"
	"fmt"

	"github.com/Carmen-Shannon/oxy-gallery/engine/game_object"
	"github.com/Carmen-Shannon/oxy-gallery/engine/loader"
	"github.com/Carmen-Shannon/oxy-gallery/engine/model"
	"github.com/Carmen-Shannon/oxy-gallery/engine/scene"
	"github.com/chewxy/math32"
)

// Display pose of a loaded mesh.
const (
	ModelGroup = "wolf"
	ModelScale = 0.3
)

// ModelRotation is the corrective Euler rotation applied to a loaded mesh.
var ModelRotation = [3]float32{-math32.Pi / 2, 0, 0}

// Poster hands work to the frame thread. engine.Engine satisfies it.
type Poster interface {
	// Post queues fn to run on the frame thread.
	//
	// Parameters:
	//   - fn: the work
	Post(fn func(scene.Scene))
}

// LoadModel loads the mesh at path on the loader's worker pool and posts its insertion to
// the frame thread. A failed load is logged and leaves the scene untouched.
//
// Parameters:
//   - ctx: cancels remote reads
//   - l: the loader
//   - path: the mesh file or URL
//   - post: where the insertion is queued
//
// Returns:
//   - <-chan error: receives nil once the insertion is posted or the load error
func (c *Context) LoadModel(ctx context.Context, l loader.Loader, path string, post Poster) <-chan error {
	done := make(chan error, 1)
	pending := l.LoadAsync(ctx, path)

	go func() {
		res := <-pending
		if res.Err != nil {
			logger.Errorf("model %s failed to load, continuing without it: %v", path, res.Err)
			done <- res.Err
			return
		}
		group, err := c.PrepareModel(res.Model)
		if err != nil {
			logger.Errorf("model %s rejected, continuing without it: %v", path, err)
			done <- err
			return
		}
		post.Post(func(sc scene.Scene) {
			sc.AddGroup(group)
			logger.Infof("inserted model %s (%d vertices)", path, res.Model.VertexCount())
		})
		done <- nil
	}()
	return done
}

// PrepareModel validates m, recomputes its normals and wraps it in the display pose. The
// returned group is the animated pivot; below it a pose node carries ModelRotation and
// ModelScale, and the mesh itself is recentered on its bounding-box center.
//
// Parameters:
//   - m: the loaded mesh
//
// Returns:
//   - game_object.GameObject: the ModelGroup pivot
//   - error: error if the mesh fails validation
func (c *Context) PrepareModel(m model.Model) (game_object.GameObject, error) {
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("invalid mesh %s: %w", m.Name(), err)
	}
	mat, ok := c.Materials.Get(MaterialWolf)
	if !ok {
		return nil, fmt.Errorf("no %q material for mesh %s", MaterialWolf, m.Name())
	}
	m.ComputeVertexNormals()

	center := m.Center()
	logger.Debugf("recentered mesh %s by (%.3f, %.3f, %.3f)", m.Name(), center[0], center[1], center[2])
	mesh := game_object.NewGameObject(
		game_object.WithName(ModelGroup+"_mesh"),
		game_object.WithModel(m),
		game_object.WithMaterial(mat),
	)
	pose := game_object.NewGameObject(
		game_object.WithName(ModelGroup+"_pose"),
		game_object.WithRotation(ModelRotation[0], ModelRotation[1], ModelRotation[2]),
		game_object.WithUniformScale(ModelScale),
	)
	pose.Add(mesh)
	return game_object.NewGroup(ModelGroup, pose), nil
}
