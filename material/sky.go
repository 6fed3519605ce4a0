package material

import (
	"github.com/achilleasa/kdtrace/asset/texture"
	"github.com/achilleasa/kdtrace/scene"
	"github.com/achilleasa/kdtrace/types"
)

// A constant color. Mostly useful as a sky.
type SolidColor struct {
	Color types.Vec3
	Mix   float32
}

func (s *SolidColor) Compute(ray scene.Ray, world *scene.World, hit scene.ColliderResult, caster scene.Caster) (types.Vec3, bool) {
	return s.Color, true
}

func (s *SolidColor) MixFactor() float32 {
	return s.Mix
}

// Sky lookup into a cubemap using the ray direction.
type Cubemap struct {
	Map *texture.Cubemap
	Mix float32
}

// Sample the cubemap. It declines when no cubemap is attached.
func (c *Cubemap) Compute(ray scene.Ray, world *scene.World, hit scene.ColliderResult, caster scene.Caster) (types.Vec3, bool) {
	if c.Map == nil {
		return types.Vec3{}, false
	}
	return c.Map.Sample(ray.Direction), true
}

func (c *Cubemap) MixFactor() float32 {
	return c.Mix
}
