package model

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// ErrDegenerateGeometry is wrapped by every Validate failure.
var ErrDegenerateGeometry = errors.New("degenerate geometry")

// minTriangleArea2 is twice the smallest triangle area counted as non-degenerate.
const minTriangleArea2 = 1e-12

func (m *model) Validate() error {
	switch {
	case len(m.positions) == 0:
		return fmt.Errorf("%w: %s has no vertices", ErrDegenerateGeometry, m.name)
	case len(m.indices) == 0:
		return fmt.Errorf("%w: %s has no indices", ErrDegenerateGeometry, m.name)
	case len(m.indices)%3 != 0:
		return fmt.Errorf("%w: %s index count %d is not a multiple of 3", ErrDegenerateGeometry, m.name, len(m.indices))
	}

	for i, p := range m.positions {
		for _, c := range p {
			if math32.IsNaN(c) || math32.IsInf(c, 0) {
				return fmt.Errorf("%w: %s vertex %d is not finite", ErrDegenerateGeometry, m.name, i)
			}
		}
	}

	n := uint32(len(m.positions))
	nonZero := 0
	for t := 0; t < len(m.indices); t += 3 {
		a, b, c := m.indices[t], m.indices[t+1], m.indices[t+2]
		if a >= n || b >= n || c >= n {
			return fmt.Errorf("%w: %s triangle %d references a vertex out of range", ErrDegenerateGeometry, m.name, t/3)
		}
		if faceNormal(m.positions[a], m.positions[b], m.positions[c]).Len() > minTriangleArea2 {
			nonZero++
		}
	}
	if nonZero == 0 {
		return fmt.Errorf("%w: %s has no triangle with non-zero area", ErrDegenerateGeometry, m.name)
	}
	return nil
}

func (m *model) ComputeVertexNormals() {
	acc := make([]mgl32.Vec3, len(m.positions))
	for t := 0; t+2 < len(m.indices); t += 3 {
		a, b, c := m.indices[t], m.indices[t+1], m.indices[t+2]
		if int(a) >= len(acc) || int(b) >= len(acc) || int(c) >= len(acc) {
			continue
		}
		// The unnormalized cross product weights each face by its area.
		fn := faceNormal(m.positions[a], m.positions[b], m.positions[c])
		acc[a] = acc[a].Add(fn)
		acc[b] = acc[b].Add(fn)
		acc[c] = acc[c].Add(fn)
	}

	normals := make([][3]float32, len(m.positions))
	for i, v := range acc {
		if v.Len() > 0 {
			normals[i] = v.Normalize()
		}
	}
	m.normals = normals
}

func faceNormal(a, b, c [3]float32) mgl32.Vec3 {
	pa, pb, pc := mgl32.Vec3(a), mgl32.Vec3(b), mgl32.Vec3(c)
	return pb.Sub(pa).Cross(pc.Sub(pa))
}
