package main

import (
	"os"
	"runtime"

	"github.com/achilleasa/kdtrace/cmd"
	"github.com/achilleasa/kdtrace/scene/kdtree"
	"github.com/urfave/cli"
)

func main() {
	sceneFlags := []cli.Flag{
		cli.IntFlag{
			Name:  "leaf-size",
			Value: kdtree.DefaultLeafSize,
			Usage: "k-d tree nodes with fewer items than this become leaves",
		},
		cli.BoolFlag{
			Name:  "first-leaf-hit",
			Usage: "stop k-d tree traversal at the first leaf that reports a hit",
		},
	}

	app := cli.NewApp()
	app.Name = "kdtrace"
	app.Usage = "render scenes using k-d tree accelerated ray tracing"
	app.Version = "0.0.1"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
		cli.StringSliceFlag{
			Name:  "log-level",
			Usage: "set the log level globally or for one module (e.g. warning, kdtree=debug); may be repeated",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a single frame",
			Description: `
Render a single frame of a wavefront obj scene and save it as a PNG image. The
frame is split into equally sized pixel blocks, one for each worker.

If no scene file is specified, a built-in demo scene is rendered instead.`,
			ArgsUsage: "[scene_file.obj]",
			Flags: append([]cli.Flag{
				cli.IntFlag{
					Name:  "width",
					Value: 400,
					Usage: "frame width",
				},
				cli.IntFlag{
					Name:  "height",
					Value: 225,
					Usage: "frame height",
				},
				cli.IntFlag{
					Name:  "workers, w",
					Value: runtime.NumCPU(),
					Usage: "number of parallel render workers",
				},
				cli.Float64Flag{
					Name:  "lens-depth",
					Value: 75,
					Usage: "override the distance between the camera and the lens plane",
				},
				cli.StringFlag{
					Name:  "out, o",
					Value: "frame.png",
					Usage: "image filename for the rendered frame",
				},
			}, sceneFlags...),
			Action: cmd.RenderFrame,
		},
		{
			Name:        "scene-info",
			Usage:       "display scene information",
			Description: `Parse a scene, build its k-d trees and print statistics for each entity.`,
			ArgsUsage:   "[scene_file.obj]",
			Flags:       sceneFlags,
			Action:      cmd.ShowSceneInfo,
		},
	}

	app.Run(os.Args)
}
