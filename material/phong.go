package material

import (
	"math"

	"github.com/achilleasa/kdtrace/scene"
	"github.com/achilleasa/kdtrace/types"
)

// Specular highlights using the half vector between the light and the viewer.
type Phong struct {
	// Shininess exponent.
	Alpha float32
	Mix   float32
}

func (p *Phong) Compute(ray scene.Ray, world *scene.World, hit scene.ColliderResult, caster scene.Caster) (types.Vec3, bool) {
	var out types.Vec3
	for _, light := range world.Lights {
		if !light.Visible(hit.Position, hit.Normal, world) {
			continue
		}

		lr := light.Illuminate(hit.Position, hit.Normal)
		half := lr.Direction.Add(ray.Direction).Mul(-1).Normalize()
		cos := half.Dot(hit.Normal)
		if cos <= 0 {
			continue
		}
		power := lr.Power * float32(math.Pow(float64(cos), float64(p.Alpha)))
		out = out.Add(light.Color().Mul(power))
	}
	return out, true
}

func (p *Phong) MixFactor() float32 {
	return p.Mix
}
