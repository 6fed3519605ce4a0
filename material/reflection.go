package material

import (
	"github.com/achilleasa/kdtrace/scene"
	"github.com/achilleasa/kdtrace/types"
)

// Rays that already bounced this many times are not reflected again.
const MaxBounces uint32 = 3

// Mirror reflection. The component traces a reflected ray and contributes
// whatever color it returns.
type Reflection struct {
	Mix float32
}

func (r *Reflection) Compute(ray scene.Ray, world *scene.World, hit scene.ColliderResult, caster scene.Caster) (types.Vec3, bool) {
	if ray.Bounce >= MaxBounces {
		return types.Vec3{}, false
	}

	normal := hit.Normal
	if normal.Dot(ray.Direction) > 0 {
		normal = normal.Mul(-1)
	}

	reflected := scene.Ray{
		Origin:    hit.Position.Add(normal.Mul(scene.SurfaceOffset)),
		Direction: ray.Direction.Reflect(normal).Normalize(),
		Bounce:    ray.Bounce + 1,
	}
	return caster.Cast(reflected, world), true
}

func (r *Reflection) MixFactor() float32 {
	return r.Mix
}
