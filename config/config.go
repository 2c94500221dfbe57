// Package config reads scene presets from TOML.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
)

const (
	// VariantDiamonds is the procedural three-diamond scene.
	VariantDiamonds = "diamonds"
	// VariantWolf is the loaded-mesh scene.
	VariantWolf = "wolf"
)

// ErrInvalidConfig is returned when a preset fails validation.
var ErrInvalidConfig = errors.New("invalid config")

// FaceOrder lists the cube-map face file stems in +X, -X, +Y, -Y, +Z, -Z order.
var FaceOrder = [6]string{"right", "left", "top", "bottom", "back", "front"}

// Window is the [window] table.
type Window struct {
	Title      string  `toml:"title"`
	Width      int     `toml:"width"`
	Height     int     `toml:"height"`
	FrameLimit float64 `toml:"frame_limit"`
}

// Environment is the [environment] table. Faces, when set, overrides the files derived
// from Dir and Ext.
type Environment struct {
	Dir   string    `toml:"dir"`
	Ext   string    `toml:"ext"`
	Faces [6]string `toml:"faces"`
}

// Config is a scene preset.
type Config struct {
	Variant     string      `toml:"variant"`
	Model       string      `toml:"model"`
	Overrides   string      `toml:"overrides"`
	Profiling   bool        `toml:"profiling"`
	Window      Window      `toml:"window"`
	Environment Environment `toml:"environment"`

	// Materials holds parameter overrides keyed by material name then parameter name.
	Materials map[string]map[string]any `toml:"materials"`
}

// Default returns the preset used when no file is given.
//
// Returns:
//   - Config: the default preset
func Default() Config {
	return Config{
		Variant: VariantDiamonds,
		Model:   "assets/models/wolf.obj",
		Window: Window{
			Title:  "oxy-gallery",
			Width:  1280,
			Height: 720,
		},
		Environment: Environment{
			Dir: "assets/envMap",
			Ext: ".png",
		},
	}
}

// Load reads a preset from path on top of Default. Paths inside the preset may start
// with "~".
//
// Parameters:
//   - path: the TOML file, "~" is expanded
//
// Returns:
//   - Config: the merged preset
//   - error: error if the file cannot be read, parsed or validated
func Load(path string) (Config, error) {
	cfg := Default()

	expanded, err := homedir.Expand(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to expand %s: %w", path, err)
	}
	data, err := os.ReadFile(expanded)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", expanded, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", expanded, err)
	}
	if err := cfg.expandPaths(); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the variant and window size.
//
// Returns:
//   - error: an error wrapping ErrInvalidConfig
func (c Config) Validate() error {
	switch c.Variant {
	case VariantDiamonds, VariantWolf:
	default:
		return fmt.Errorf("%w: unknown variant %q", ErrInvalidConfig, c.Variant)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidConfig, c.Window.Width, c.Window.Height)
	}
	if c.Window.FrameLimit < 0 {
		return fmt.Errorf("%w: negative frame limit", ErrInvalidConfig)
	}
	if c.Variant == VariantWolf && c.Model == "" {
		return fmt.Errorf("%w: the wolf variant needs a model", ErrInvalidConfig)
	}
	return nil
}

// FacePaths returns the six cube-map face paths in +X, -X, +Y, -Y, +Z, -Z order.
//
// Returns:
//   - [6]string: the face paths
func (c Config) FacePaths() [6]string {
	if c.Environment.Faces != [6]string{} {
		return c.Environment.Faces
	}
	var out [6]string
	for i, stem := range FaceOrder {
		out[i] = filepath.Join(c.Environment.Dir, stem+c.Environment.Ext)
	}
	return out
}

func (c *Config) expandPaths() error {
	var err error
	expand := func(p *string) {
		if err != nil || *p == "" {
			return
		}
		*p, err = homedir.Expand(*p)
	}

	expand(&c.Model)
	expand(&c.Overrides)
	expand(&c.Environment.Dir)
	for i := range c.Environment.Faces {
		expand(&c.Environment.Faces[i])
	}
	if err != nil {
		return fmt.Errorf("failed to expand paths: %w", err)
	}
	return nil
}
