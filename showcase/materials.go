package showcase

import "github.com/Carmen-Shannon/oxy-gallery/engine/renderer/material"

// Material names used by the showcase scenes.
const (
	MaterialCenter = "center"
	MaterialLeft   = "left"
	MaterialRight  = "right"
	MaterialWolf   = "wolf"
	MaterialMarker = "marker"
)

// DefaultMaterials returns the three diamond materials and the light marker material.
// Every material refracts the environment map.
//
// Returns:
//   - *material.MaterialSet: the materials keyed by name
func DefaultMaterials() *material.MaterialSet {
	return material.NewMaterialSet(
		material.NewMaterial(MaterialCenter,
			material.WithHexColor(0xf5f5f5),
			material.WithRefractionRatio(0.9),
		),
		material.NewMaterial(MaterialLeft,
			material.WithHexColor(0xb0c4de),
			material.WithRefractionRatio(0.985),
		),
		material.NewMaterial(MaterialRight,
			material.WithHexColor(0xffa07a),
			material.WithRefractionRatio(0.98),
			material.WithReflectivity(0.9),
		),
		markerMaterial(),
	)
}

// WolfMaterials returns the material for the loaded mesh and the light marker material.
//
// Returns:
//   - *material.MaterialSet: the materials keyed by name
func WolfMaterials() *material.MaterialSet {
	return material.NewMaterialSet(
		material.NewMaterial(MaterialWolf,
			material.WithShading(material.ShadingPhysical),
			material.WithHexColor(0xffffff),
			material.WithTransmission(1),
			material.WithRoughness(0.05),
			material.WithIOR(1.5),
			material.WithReflectivity(0.5),
		),
		markerMaterial(),
	)
}

func markerMaterial() material.Material {
	return material.NewMaterial(MaterialMarker,
		material.WithShading(material.ShadingUnlit),
		material.WithHexColor(0xffffff),
		material.WithEnvMap(false),
	)
}
