package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/Carmen-Shannon/oxy-gallery/config"
	"github.com/Carmen-Shannon/oxy-gallery/engine/loader"
	"github.com/Carmen-Shannon/oxy-gallery/engine/model"
	"github.com/Carmen-Shannon/oxy-gallery/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-gallery/showcase"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// Inspect loads a mesh the way the wolf scene does and prints its statistics together
// with the material set of a variant.
func Inspect(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 1 {
		return errors.New("missing mesh file argument")
	}
	path := ctx.Args().First()

	var set *material.MaterialSet
	switch ctx.String("variant") {
	case config.VariantDiamonds:
		set = showcase.DefaultMaterials()
	case config.VariantWolf:
		set = showcase.WolfMaterials()
	default:
		return fmt.Errorf("unknown variant %q", ctx.String("variant"))
	}

	m, err := loader.NewLoader().Load(context.Background(), path)
	if err != nil {
		return err
	}
	if err := m.Validate(); err != nil {
		return fmt.Errorf("invalid mesh %s: %w", path, err)
	}
	m.ComputeVertexNormals()

	out := ctx.App.Writer
	writeMeshTable(out, path, m)
	fmt.Fprintln(out)
	writeMaterialTable(out, set)
	return nil
}

func writeMeshTable(w io.Writer, path string, m model.Model) {
	b := m.Bounds()
	c := b.Center()

	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Property", "Value"})
	table.AppendBulk([][]string{
		{"File", path},
		{"Vertices", fmt.Sprintf("%d", m.VertexCount())},
		{"Triangles", fmt.Sprintf("%d", m.IndexCount()/3)},
		{"Bounds min", formatVec(b.Min)},
		{"Bounds max", formatVec(b.Max)},
		{"Center", formatVec(c)},
		{"Bounding radius", fmt.Sprintf("%.4f", m.BoundingRadius())},
		{"Display scale", fmt.Sprintf("%.2f", showcase.ModelScale)},
	})
	table.Render()
}

func writeMaterialTable(w io.Writer, set *material.MaterialSet) {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Material", "Shading", "Color", "Opacity", "Refraction", "Reflectivity", "Transmission", "Roughness", "IOR"})
	for _, name := range set.Names() {
		m := set.MustGet(name)
		table.Append([]string{
			name,
			m.Shading().String(),
			formatHex(m.Color()),
			fmt.Sprintf("%.3f", m.Opacity()),
			fmt.Sprintf("%.3f", m.RefractionRatio()),
			fmt.Sprintf("%.3f", m.Reflectivity()),
			fmt.Sprintf("%.3f", m.Transmission()),
			fmt.Sprintf("%.3f", m.Roughness()),
			fmt.Sprintf("%.3f", m.IOR()),
		})
	}
	table.Render()
}

func formatVec(v [3]float32) string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", v[0], v[1], v[2])
}

func formatHex(rgb [3]float32) string {
	channel := func(f float32) uint32 {
		return uint32(min(max(f, 0), 1)*255 + 0.5)
	}
	return fmt.Sprintf("#%02x%02x%02x", channel(rgb[0]), channel(rgb[1]), channel(rgb[2]))
}
