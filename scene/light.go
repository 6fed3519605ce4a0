package scene

import "github.com/achilleasa/kdtrace/types"

// The light reaching a surface point: its power and the direction it travels in.
type LightRay struct {
	Power     float32
	Direction types.Vec3
}

// The LightSource interface is implemented by all light types.
type LightSource interface {
	// Calculate the light arriving at pos.
	Illuminate(pos, normal types.Vec3) LightRay

	// Check whether the light reaches a surface point with the given normal.
	Visible(pos, normal types.Vec3, world *World) bool

	// Get the light color.
	Color() types.Vec3
}
