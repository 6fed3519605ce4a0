package scene

import "github.com/achilleasa/kdtrace/types"

// Secondary rays (reflections, shadow probes) start this far along the
// surface normal so they do not re-hit the surface they leave.
const SurfaceOffset float32 = 1e-3

// A ray with a normalized direction. Bounce counts the reflection hops that
// produced the ray; camera rays start at 0.
type Ray struct {
	Origin    types.Vec3
	Direction types.Vec3
	Bounce    uint32
}

// Create a new ray; dir is normalized.
func NewRay(origin, dir types.Vec3) Ray {
	return Ray{
		Origin:    origin,
		Direction: dir.Normalize(),
	}
}

// Get the point at distance t along the ray.
func (r Ray) At(t float32) types.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// The result of a ray intersection query. When Collision is false all other
// fields are zeroed.
type ColliderResult struct {
	Collision bool

	// Hit point and surface normal. The normal may be zero when the
	// collider does not define one (e.g. acceleration structure bounds).
	Position types.Vec3
	Normal   types.Vec3

	// The material of the surface that was hit, if known.
	Material *Material
}

// Return a negative collision result.
func NoCollision() ColliderResult {
	return ColliderResult{}
}

// Get the squared distance between the hit point and p.
func (c ColliderResult) DistanceSq(p types.Vec3) float32 {
	return c.Position.Sub(p).LenSq()
}
