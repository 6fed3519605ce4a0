package renderer

import (
	"fmt"
	"image"
	"math"
	"sync"
	"time"

	"github.com/achilleasa/kdtrace/log"
	"github.com/achilleasa/kdtrace/scene"
	"github.com/achilleasa/kdtrace/tracer"
)

// The largest frame whose pixel buffer offsets fit in 32 bits.
const MaxFramePixels = math.MaxUint32 / 4

type Renderer interface {
	// Render frame.
	Render() (*image.RGBA, error)

	// Get render statistics for the last rendered frame.
	Stats() FrameStats
}

// The default renderer splits each frame into blocks and traces every block
// on its own goroutine.
type defaultRenderer struct {
	logger log.Logger

	world     *scene.World
	tracer    *tracer.RayTracer
	scheduler tracer.BlockScheduler
	options   Options

	stats FrameStats
}

// Create a new renderer for world. A nil scheduler selects the equal block
// scheduler.
func NewDefault(world *scene.World, scheduler tracer.BlockScheduler, opts Options) (Renderer, error) {
	switch {
	case world == nil:
		return nil, ErrWorldNotDefined
	case opts.FrameW == 0 || opts.FrameH == 0:
		return nil, ErrInvalidFrameSize
	case uint64(opts.FrameW)*uint64(opts.FrameH) > MaxFramePixels:
		return nil, ErrFrameTooLarge
	case opts.NumWorkers < 1:
		return nil, ErrNoWorkers
	}

	if scheduler == nil {
		scheduler = tracer.EqualScheduler()
	}

	return &defaultRenderer{
		logger:    log.New("renderer"),
		world:     world,
		tracer:    tracer.New(opts.Camera),
		scheduler: scheduler,
		options:   opts,
	}, nil
}

// Render a frame. Workers share the world and the tracer, which stay
// read-only while rendering, and write into disjoint slices of the frame
// pixel buffer.
func (r *defaultRenderer) Render() (*image.RGBA, error) {
	frameW, frameH := r.options.FrameW, r.options.FrameH
	pixelCount := frameW * frameH

	blocks := r.scheduler.Schedule(pixelCount, r.options.NumWorkers)
	if !tracer.ValidateBlocks(blocks, pixelCount) {
		return nil, ErrInvalidSchedule
	}

	frame := image.NewRGBA(image.Rect(0, 0, int(frameW), int(frameH)))
	workerStats := make([]tracer.Stats, len(blocks))

	r.logger.Infof("rendering %dx%d frame using %d workers", frameW, frameH, len(blocks))
	start := time.Now()

	var wg sync.WaitGroup
	wg.Add(len(blocks))
	for index, block := range blocks {
		go func(index int, block tracer.Block) {
			defer wg.Done()
			out := frame.Pix[block.Start*4 : block.End*4 : block.End*4]
			workerStats[index] = r.tracer.RenderBlock(r.world, block, frameW, frameH, out)
		}(index, block)
	}
	wg.Wait()

	r.stats = FrameStats{
		Workers:    make([]WorkerStat, len(blocks)),
		RenderTime: time.Since(start),
	}
	for index, stat := range workerStats {
		r.stats.Workers[index] = WorkerStat{
			Id:           fmt.Sprintf("worker-%d", index),
			BlockStart:   stat.Block.Start,
			BlockEnd:     stat.Block.End,
			FramePercent: 100.0 * float32(stat.Block.Len()) / float32(pixelCount),
			RenderTime:   stat.RenderTime,
		}
	}
	r.logger.Infof("rendered frame in %d ms", r.stats.RenderTime.Nanoseconds()/1e6)

	return frame, nil
}

func (r *defaultRenderer) Stats() FrameStats {
	return r.stats
}
