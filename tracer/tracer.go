package tracer

import (
	"image/color"
	"math"
	"time"

	"github.com/achilleasa/kdtrace/scene"
	"github.com/achilleasa/kdtrace/types"
)

// The color returned for rays that miss everything when the world sky does
// not provide one.
var FallbackSkyColor = types.RGB(178, 222, 236)

// A RayTracer resolves the color seen along a ray. It holds no mutable state
// and can be shared by any number of workers.
type RayTracer struct {
	camera Camera
}

// Create a new ray tracer.
func New(camera Camera) *RayTracer {
	return &RayTracer{
		camera: camera,
	}
}

// Get the tracer camera.
func (rt *RayTracer) Camera() Camera {
	return rt.camera
}

// Find the nearest hit for ray and shade it. The color starts from the base
// color of the hit material scaled by the world ambient factor; each shading
// component then adds its contribution weighted by its mix factor. Rays that
// miss every entity are colored by the sky.
func (rt *RayTracer) Cast(ray scene.Ray, world *scene.World) types.Vec3 {
	hit := world.Nearest(ray)
	if !hit.Collision {
		return rt.sky(ray, world)
	}

	mat := hit.Material
	if mat == nil {
		return types.Vec3{}
	}

	out := mat.Color.Mul(world.Ambient)
	for _, shader := range mat.Shaders {
		if c, ok := shader.Compute(ray, world, hit, rt); ok {
			out = out.Add(c.Mul(shader.MixFactor()))
		}
	}
	return out
}

func (rt *RayTracer) sky(ray scene.Ray, world *scene.World) types.Vec3 {
	if world.Sky == nil || len(world.Sky.Shaders) == 0 {
		return FallbackSkyColor
	}

	if c, ok := world.Sky.Shaders[0].Compute(ray, world, scene.NoCollision(), rt); ok {
		return c
	}
	return FallbackSkyColor
}

// Trace every pixel in block and write it to out, which must hold exactly
// 4 bytes (RGBA) per block pixel.
func (rt *RayTracer) RenderBlock(world *scene.World, block Block, frameW, frameH uint32, out []uint8) Stats {
	start := time.Now()
	for index := block.Start; index < block.End; index++ {
		ray := rt.camera.Ray(index%frameW, index/frameW, frameW, frameH)
		c := ToRGBA(rt.Cast(ray, world))

		offset := (index - block.Start) * 4
		out[offset] = c.R
		out[offset+1] = c.G
		out[offset+2] = c.B
		out[offset+3] = c.A
	}

	return Stats{
		Block:      block,
		RenderTime: time.Since(start),
	}
}

// Convert a linear color to an opaque 8-bit pixel, clamping each channel.
func ToRGBA(c types.Vec3) color.RGBA {
	return color.RGBA{
		R: clampChannel(c[0]),
		G: clampChannel(c[1]),
		B: clampChannel(c[2]),
		A: 255,
	}
}

func clampChannel(v float32) uint8 {
	v *= 255
	switch {
	case v <= 0 || math.IsNaN(float64(v)):
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v)
}
