package main

import (
	"os"
	"runtime"

	"github.com/urfave/cli"
)

func init() {
	// GLFW must run on the main thread.
	runtime.LockOSThread()
}

func main() {
	app := cli.NewApp()
	app.Name = "gallery"
	app.Usage = "render refracting meshes inside an environment cube map"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "diamonds",
			Usage: "show three diamonds orbited by a point light",
			Description: `
Build three cone-pair diamonds with distinct refracting materials and spin them
inside the environment cube map. Left-drag orbits the camera, scroll zooms and
R resets the view.`,
			Flags:  runFlags(),
			Action: RunDiamonds,
		},
		{
			Name:  "wolf",
			Usage: "show a loaded mesh orbited by a point light",
			Description: `
Load a Wavefront OBJ or STL mesh in the background, recompute its normals and
insert it in a fixed display pose once ready. A failed load leaves the
environment and lights on screen.`,
			Flags: append(runFlags(), cli.StringFlag{
				Name:  "model, m",
				Usage: "mesh file or http(s) URL",
			}),
			Action: RunWolf,
		},
		{
			Name:      "inspect",
			Usage:     "print mesh statistics and the material set",
			ArgsUsage: "mesh_file",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "variant",
					Value: "wolf",
					Usage: "material set to list (diamonds or wolf)",
				},
			},
			Action: Inspect,
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

func runFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "config, c",
			Usage: "TOML scene preset",
		},
		cli.IntFlag{
			Name:  "width",
			Value: 1280,
			Usage: "window width",
		},
		cli.IntFlag{
			Name:  "height",
			Value: 720,
			Usage: "window height",
		},
		cli.StringFlag{
			Name:  "faces",
			Usage: "directory holding right, left, top, bottom, back and front cube-map faces",
		},
		cli.StringFlag{
			Name:  "overrides, o",
			Usage: "TOML material override file, watched for changes",
		},
		cli.Float64Flag{
			Name:  "frame-limit",
			Usage: "maximum frames per second, 0 for uncapped",
		},
		cli.IntFlag{
			Name:  "frames",
			Usage: "exit after this many frames, 0 to run until the window closes",
		},
		cli.BoolFlag{
			Name:  "profile",
			Usage: "log frame rate and memory statistics",
		},
	}
}
