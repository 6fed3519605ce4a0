package cmd

import (
	"bytes"
	"fmt"
	"math"
	"runtime"

	"github.com/achilleasa/kdtrace/asset/scene/reader"
	"github.com/achilleasa/kdtrace/renderer"
	"github.com/achilleasa/kdtrace/scene/kdtree"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// Render a still frame.
func RenderFrame(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		logger.Error(err)
		return err
	}

	width, height := ctx.Int("width"), ctx.Int("height")
	if width < 1 || height < 1 || int64(width) > math.MaxUint32 || int64(height) > math.MaxUint32 {
		err := fmt.Errorf("invalid frame size %dx%d", width, height)
		logger.Error(err)
		return err
	}

	sc, err := loadScene(ctx)
	if err != nil {
		logger.Error(err)
		return err
	}

	if ctx.IsSet("lens-depth") {
		sc.Camera.LensDepth = float32(ctx.Float64("lens-depth"))
	}

	opts := renderer.Options{
		FrameW:     uint32(width),
		FrameH:     uint32(height),
		NumWorkers: ctx.Int("workers"),
		Camera:     sc.Camera,
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = runtime.NumCPU()
	}

	r, err := renderer.NewDefault(sc.World, nil, opts)
	if err != nil {
		logger.Error(err)
		return err
	}

	logger.Noticef("rendering %dx%d frame", opts.FrameW, opts.FrameH)
	frame, err := r.Render()
	if err != nil {
		logger.Error(err)
		return err
	}

	// Display stats
	displayFrameStats(r.Stats())

	imgFile := ctx.String("out")
	if err = renderer.SaveFrame(frame, imgFile); err != nil {
		logger.Errorf("could not save frame: %s", err.Error())
		return err
	}
	logger.Noticef(`saved frame to "%s"`, imgFile)

	return nil
}

// Load the scene passed as the command argument or fall back to the
// built-in demo scene.
func loadScene(ctx *cli.Context) (*reader.Scene, error) {
	cfg := kdtree.DefaultConfig()
	if ctx.IsSet("leaf-size") {
		cfg.LeafSize = ctx.Int("leaf-size")
	}
	if ctx.Bool("first-leaf-hit") {
		cfg.Mode = kdtree.FirstLeafHit
	}

	if ctx.NArg() == 0 {
		logger.Notice("no scene file specified; using demo scene")
		return DemoScene(cfg), nil
	}

	return reader.ReadScene(ctx.Args().First(), cfg)
}

func displayFrameStats(stats renderer.FrameStats) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Worker", "Pixel range", "% of frame", "Render time"})
	for _, stat := range stats.Workers {
		table.Append([]string{
			stat.Id,
			fmt.Sprintf("[%d, %d)", stat.BlockStart, stat.BlockEnd),
			fmt.Sprintf("%02.1f %%", stat.FramePercent),
			fmt.Sprintf("%s", stat.RenderTime),
		})
	}
	table.SetFooter([]string{"", "", "TOTAL", fmt.Sprintf("%s", stats.RenderTime)})

	table.Render()
	logger.Noticef("frame statistics\n%s", buf.String())
}
