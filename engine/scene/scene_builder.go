package scene

import (
	"github.com/Carmen-Shannon/oxy-gallery/common"
	"github.com/Carmen-Shannon/oxy-gallery/engine/game_object"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithObjects attaches initial nodes under the root.
//
// Parameters:
//   - objects: the nodes to add
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithObjects(objects ...game_object.GameObject) SceneBuilderOption {
	return func(s *scene) {
		s.root.Add(objects...)
	}
}

// WithGroups registers initial visual groups.
//
// Parameters:
//   - groups: the group pivots
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithGroups(groups ...game_object.GameObject) SceneBuilderOption {
	return func(s *scene) {
		for _, g := range groups {
			if g == nil {
				continue
			}
			s.groups = append(s.groups, g)
			s.root.Add(g)
		}
	}
}

// WithBackground sets the initial environment cube map.
//
// Parameters:
//   - cm: the environment map
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithBackground(cm *common.CubeMap) SceneBuilderOption {
	return func(s *scene) {
		s.background = cm
	}
}
