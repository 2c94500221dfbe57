package main

import (
	"bytes"
	"testing"

	"github.com/Carmen-Shannon/oxy-gallery/engine/model"
	"github.com/Carmen-Shannon/oxy-gallery/showcase"
	"github.com/stretchr/testify/assert"
)

func TestFormatHex(t *testing.T) {
	tests := []struct {
		rgb  [3]float32
		want string
	}{
		{[3]float32{1, 1, 1}, "#ffffff"},
		{[3]float32{0, 0, 0}, "#000000"},
		{[3]float32{2, -1, 0.5}, "#ff0080"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, formatHex(tt.rgb))
		})
	}
}

func TestWriteMeshTable(t *testing.T) {
	m := model.NewCone(5, 9, 6, 1)
	var buf bytes.Buffer
	writeMeshTable(&buf, "cone", m)

	out := buf.String()
	assert.Contains(t, out, "Vertices")
	assert.Contains(t, out, "Triangles")
	assert.Contains(t, out, "cone")
}

func TestWriteMaterialTable(t *testing.T) {
	var buf bytes.Buffer
	writeMaterialTable(&buf, showcase.DefaultMaterials())

	out := buf.String()
	for _, name := range []string{showcase.MaterialCenter, showcase.MaterialLeft, showcase.MaterialRight, showcase.MaterialMarker} {
		assert.Contains(t, out, name)
	}
	assert.Contains(t, out, "#b0c4de")
	assert.Contains(t, out, "unlit")
}
