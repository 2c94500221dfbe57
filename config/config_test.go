package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, doc string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gallery.toml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, VariantDiamonds, cfg.Variant)
	assert.Equal(t, 1280, cfg.Window.Width)
	assert.Equal(t, 720, cfg.Window.Height)
	assert.Equal(t, [6]string{
		filepath.Join("assets/envMap", "right.png"),
		filepath.Join("assets/envMap", "left.png"),
		filepath.Join("assets/envMap", "top.png"),
		filepath.Join("assets/envMap", "bottom.png"),
		filepath.Join("assets/envMap", "back.png"),
		filepath.Join("assets/envMap", "front.png"),
	}, cfg.FacePaths())
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
variant = "wolf"
model = "~/models/wolf.obj"

[window]
width = 800
height = 600
frame_limit = 30.0

[environment]
dir = "/tmp/sky"
ext = ".jpg"

[materials.wolf]
color = "#ffffff"
reflectivity = 0.5
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	home, err := homedir.Dir()
	require.NoError(t, err)

	assert.Equal(t, VariantWolf, cfg.Variant)
	assert.Equal(t, filepath.Join(home, "models/wolf.obj"), cfg.Model)
	assert.Equal(t, "oxy-gallery", cfg.Window.Title)
	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 600, cfg.Window.Height)
	assert.InDelta(t, 30, cfg.Window.FrameLimit, 1e-9)
	assert.Equal(t, filepath.Join("/tmp/sky", "top.jpg"), cfg.FacePaths()[2])
	assert.Equal(t, "#ffffff", cfg.Materials["wolf"]["color"])
	assert.InDelta(t, 0.5, cfg.Materials["wolf"]["reflectivity"], 1e-9)
}

func TestExplicitFacesWin(t *testing.T) {
	path := writeConfig(t, `
[environment]
faces = ["a.png", "b.png", "c.png", "d.png", "e.png", "f.png"]
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, [6]string{"a.png", "b.png", "c.png", "d.png", "e.png", "f.png"}, cfg.FacePaths())
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		invalid bool
	}{
		{"malformed", "variant = ", false},
		{"unknown variant", `variant = "teapot"`, true},
		{"zero width", "[window]\nwidth = 0", true},
		{"negative frame limit", "[window]\nframe_limit = -1.0", true},
		{"wolf without model", "variant = \"wolf\"\nmodel = \"\"", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.doc))
			require.Error(t, err)
			assert.Equal(t, tt.invalid, errors.Is(err, ErrInvalidConfig))
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}
