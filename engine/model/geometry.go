package model

import "github.com/chewxy/math32"

// NewCone builds a closed cone with its apex on +Y and its base centered on -Y, spanning
// height/2 above and below the origin. Side normals follow the slant; the base faces -Y.
//
// Parameters:
//   - radius: base radius
//   - height: apex-to-base height
//   - radialSegments: number of segments around the axis (minimum 3)
//   - heightSegments: number of rings along the height (minimum 1)
//
// Returns:
//   - Model: the cone mesh
func NewCone(radius, height float32, radialSegments, heightSegments int) Model {
	radialSegments = max(radialSegments, 3)
	heightSegments = max(heightSegments, 1)

	var positions, normals [][3]float32
	var indices []uint32

	half := height / 2
	slope := radius / height

	// Side rings run from the apex (y = 0) down to the base (y = heightSegments).
	rings := make([][]uint32, heightSegments+1)
	for y := 0; y <= heightSegments; y++ {
		v := float32(y) / float32(heightSegments)
		r := v * radius
		rings[y] = make([]uint32, radialSegments+1)
		for x := 0; x <= radialSegments; x++ {
			theta := float32(x) / float32(radialSegments) * 2 * math32.Pi
			sin, cos := math32.Sin(theta), math32.Cos(theta)

			rings[y][x] = uint32(len(positions))
			positions = append(positions, [3]float32{r * sin, -v*height + half, r * cos})
			normals = append(normals, normalize([3]float32{sin, slope, cos}))
		}
	}
	for y := 0; y < heightSegments; y++ {
		for x := 0; x < radialSegments; x++ {
			a, b := rings[y][x], rings[y+1][x]
			c, d := rings[y+1][x+1], rings[y][x+1]
			if y != 0 {
				indices = append(indices, a, b, d)
			}
			indices = append(indices, b, c, d)
		}
	}

	// Base cap: one center vertex per segment so each wedge keeps a clean -Y normal.
	centers := uint32(len(positions))
	for x := 0; x < radialSegments; x++ {
		positions = append(positions, [3]float32{0, -half, 0})
		normals = append(normals, [3]float32{0, -1, 0})
	}
	rim := uint32(len(positions))
	for x := 0; x <= radialSegments; x++ {
		theta := float32(x) / float32(radialSegments) * 2 * math32.Pi
		positions = append(positions, [3]float32{radius * math32.Sin(theta), -half, radius * math32.Cos(theta)})
		normals = append(normals, [3]float32{0, -1, 0})
	}
	for x := uint32(0); x < uint32(radialSegments); x++ {
		indices = append(indices, rim+x+1, rim+x, centers+x)
	}

	return NewModel(
		WithName("cone"),
		WithPositions(positions),
		WithNormals(normals),
		WithIndices(indices),
	)
}

// NewSphere builds a UV sphere centered on the origin.
//
// Parameters:
//   - radius: sphere radius
//   - widthSegments: segments around the equator (minimum 3)
//   - heightSegments: segments from pole to pole (minimum 2)
//
// Returns:
//   - Model: the sphere mesh
func NewSphere(radius float32, widthSegments, heightSegments int) Model {
	widthSegments = max(widthSegments, 3)
	heightSegments = max(heightSegments, 2)

	var positions, normals [][3]float32
	var indices []uint32

	grid := make([][]uint32, heightSegments+1)
	for iy := 0; iy <= heightSegments; iy++ {
		v := float32(iy) / float32(heightSegments)
		grid[iy] = make([]uint32, widthSegments+1)
		for ix := 0; ix <= widthSegments; ix++ {
			u := float32(ix) / float32(widthSegments)
			p := [3]float32{
				-radius * math32.Cos(u*2*math32.Pi) * math32.Sin(v*math32.Pi),
				radius * math32.Cos(v*math32.Pi),
				radius * math32.Sin(u*2*math32.Pi) * math32.Sin(v*math32.Pi),
			}
			grid[iy][ix] = uint32(len(positions))
			positions = append(positions, p)
			normals = append(normals, normalize(p))
		}
	}
	for iy := 0; iy < heightSegments; iy++ {
		for ix := 0; ix < widthSegments; ix++ {
			a, b := grid[iy][ix+1], grid[iy][ix]
			c, d := grid[iy+1][ix], grid[iy+1][ix+1]
			if iy != 0 {
				indices = append(indices, a, b, d)
			}
			if iy != heightSegments-1 {
				indices = append(indices, b, c, d)
			}
		}
	}

	return NewModel(
		WithName("sphere"),
		WithPositions(positions),
		WithNormals(normals),
		WithIndices(indices),
	)
}

func normalize(v [3]float32) [3]float32 {
	l := math32.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
	if l == 0 {
		return v
	}
	return [3]float32{v[0] / l, v[1] / l, v[2] / l}
}
