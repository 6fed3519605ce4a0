package tracer

import (
	"github.com/achilleasa/kdtrace/scene"
	"github.com/achilleasa/kdtrace/types"
)

// A pinhole camera looking down the +z axis. Rays pass through a lens plane
// placed LensDepth units in front of the camera. The lens size is given in
// world units and does not depend on the frame resolution.
type Camera struct {
	Position types.Vec3

	LensDepth  float32
	LensWidth  float32
	LensHeight float32
}

// Get a camera at the origin with a 16:9 lens.
func DefaultCamera() Camera {
	return Camera{
		LensDepth:  75,
		LensWidth:  40,
		LensHeight: 22.5,
	}
}

// Generate the ray through the center of pixel (x, y) of a frameW x frameH
// frame. Row 0 maps to the top edge of the lens.
func (c Camera) Ray(x, y, frameW, frameH uint32) scene.Ray {
	s := (float32(x) + 0.5) / float32(frameW)
	t := (float32(y) + 0.5) / float32(frameH)

	lensPoint := types.Vec3{
		c.Position[0] + (s-0.5)*c.LensWidth,
		c.Position[1] + (0.5-t)*c.LensHeight,
		c.Position[2] + c.LensDepth,
	}
	return scene.NewRay(c.Position, lensPoint.Sub(c.Position))
}
