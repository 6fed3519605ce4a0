package scene

import "github.com/achilleasa/kdtrace/types"

// A material combines a base color with an ordered list of shading
// components whose contributions are blended into the final color.
type Material struct {
	Color   types.Vec3
	Shaders []Shadable
}

// The Shadable interface is implemented by material shading components.
type Shadable interface {
	// Compute the component's color contribution for a hit. The second
	// return value is false when the component has no contribution. For sky
	// materials the hit argument is a negative collision result.
	Compute(ray Ray, world *World, hit ColliderResult, caster Caster) (types.Vec3, bool)

	// Get the weight in [0, 1] used to blend the component's contribution.
	MixFactor() float32
}

// The Caster interface allows shading components to trace secondary rays.
type Caster interface {
	Cast(ray Ray, world *World) types.Vec3
}
