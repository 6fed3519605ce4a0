package renderer

import "github.com/achilleasa/kdtrace/tracer"

type Options struct {
	// Frame dims.
	FrameW uint32
	FrameH uint32

	// Number of parallel workers. Each worker renders one block of the frame.
	NumWorkers int

	// The camera used for generating primary rays.
	Camera tracer.Camera
}
