package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/Carmen-Shannon/oxy-gallery/common"
	"github.com/Carmen-Shannon/oxy-gallery/config"
	"github.com/Carmen-Shannon/oxy-gallery/engine"
	"github.com/Carmen-Shannon/oxy-gallery/engine/loader"
	"github.com/Carmen-Shannon/oxy-gallery/engine/panel"
	"github.com/Carmen-Shannon/oxy-gallery/engine/renderer"
	"github.com/Carmen-Shannon/oxy-gallery/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-gallery/engine/window"
	"github.com/Carmen-Shannon/oxy-gallery/showcase"
	"github.com/urfave/cli"
)

// RunDiamonds opens the diamonds scene.
func RunDiamonds(ctx *cli.Context) error {
	setupLogging(ctx)
	cfg, err := resolveConfig(ctx, config.VariantDiamonds)
	if err != nil {
		return err
	}
	return run(cfg, ctx.Int("frames"))
}

// RunWolf opens the loaded-mesh scene.
func RunWolf(ctx *cli.Context) error {
	setupLogging(ctx)
	cfg, err := resolveConfig(ctx, config.VariantWolf)
	if err != nil {
		return err
	}
	return run(cfg, ctx.Int("frames"))
}

// resolveConfig reads the preset named by --config, or the defaults, and applies the
// flags that were set explicitly.
func resolveConfig(ctx *cli.Context, variant string) (config.Config, error) {
	cfg := config.Default()
	if path := ctx.String("config"); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return cfg, err
		}
	}
	cfg.Variant = variant
	cfg.Window.Title = common.Coalesce(cfg.Window.Title, config.Default().Window.Title)

	if ctx.IsSet("width") {
		cfg.Window.Width = ctx.Int("width")
	}
	if ctx.IsSet("height") {
		cfg.Window.Height = ctx.Int("height")
	}
	if ctx.IsSet("frame-limit") {
		cfg.Window.FrameLimit = ctx.Float64("frame-limit")
	}
	if dir := ctx.String("faces"); dir != "" {
		cfg.Environment.Dir = dir
		cfg.Environment.Faces = [6]string{}
	}
	if path := ctx.String("overrides"); path != "" {
		cfg.Overrides = path
	}
	if path := ctx.String("model"); path != "" {
		cfg.Model = path
	}
	if ctx.Bool("profile") {
		cfg.Profiling = true
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func run(cfg config.Config, frames int) error {
	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	win := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithSize(cfg.Window.Width, cfg.Window.Height),
	)
	defer win.Close()

	l := loader.NewLoader()
	env := l.LoadCubeMap(runCtx, cfg.FacePaths())

	width, height := win.Size()
	var sc *showcase.Context
	switch cfg.Variant {
	case config.VariantWolf:
		sc = showcase.NewWolf(width, height, env)
	default:
		sc = showcase.NewDiamonds(width, height, env)
	}

	if err := applyPresetMaterials(sc.Materials, cfg.Materials); err != nil {
		return err
	}

	r := renderer.NewRenderer(renderer.BackendTypeWGPU, win,
		renderer.WithPresentMode(renderer.PresentModeVSync),
		renderer.WithMSAA(renderer.MSAA4x),
	)
	defer r.Release()

	sc.Viewport.SetOutput(r)
	sc.Viewport.OnResize(width, height, win.PixelRatio())
	win.SetResizeCallback(sc.Viewport.OnResize)

	orbit := sc.Camera.Controller()
	win.SetDragCallback(orbit.Drag)
	win.SetScrollCallback(orbit.Zoom)
	win.SetKeyDownCallback(func(key uint32) {
		if key == window.KeyR {
			orbit.Reset()
		}
	})

	opts := []engine.EngineBuilderOption{
		engine.WithWindow(win),
		engine.WithRenderer(r),
		engine.WithFrameLimit(cfg.Window.FrameLimit),
		engine.WithProfiling(cfg.Profiling),
	}
	if frames > 0 {
		opts = append(opts, engine.WithFrameRequester(engine.NewCountedRequester(frames, win)))
	}
	if cfg.Overrides != "" {
		p := panel.NewPanel(sc.Materials, cfg.Overrides)
		if err := p.Start(runCtx); err != nil {
			return err
		}
		opts = append(opts, engine.WithTickCallback(func(float64) {
			if n := p.Apply(); n > 0 {
				logger.Infof("applied %d material edits", n)
			}
		}))
	}

	eng := engine.NewEngine(sc.Scene, sc.Updater, opts...)
	if cfg.Variant == config.VariantWolf {
		// The result is logged by LoadModel; the scene runs either way.
		_ = sc.LoadModel(runCtx, l, cfg.Model, eng)
	}

	logger.Noticef("running %s scene at %dx%d", cfg.Variant, width, height)
	return eng.Run(runCtx)
}

// applyPresetMaterials applies the [materials] tables of a preset. Edits naming materials
// the scene does not have are skipped.
func applyPresetMaterials(set *material.MaterialSet, tables map[string]map[string]any) error {
	edits, err := panel.EditsFromTables(tables)
	if err != nil {
		return fmt.Errorf("invalid material overrides: %w", err)
	}
	for _, e := range edits {
		if err := set.Apply(e); err != nil {
			logger.Warningf("skipping preset edit %s.%s: %v", e.Material, e.Param, err)
		}
	}
	return nil
}
