package material

import (
	"math"

	"github.com/achilleasa/kdtrace/scene"
	"github.com/achilleasa/kdtrace/types"
)

// Diffuse shading following Lambert's cosine law. Color is the surface color
// that reflects the incoming light.
type Lambert struct {
	Color  types.Vec3
	Albedo float32
	Mix    float32
}

// Sum the diffuse contribution of every light that reaches the hit point.
func (l *Lambert) Compute(ray scene.Ray, world *scene.World, hit scene.ColliderResult, caster scene.Caster) (types.Vec3, bool) {
	var out types.Vec3
	for _, light := range world.Lights {
		if !light.Visible(hit.Position, hit.Normal, world) {
			continue
		}

		lr := light.Illuminate(hit.Position, hit.Normal)
		power := lr.Power * l.Albedo / math.Pi * -hit.Normal.Dot(lr.Direction)
		if power <= 0 {
			continue
		}
		out = out.Add(l.Color.MulVec(light.Color()).Mul(power))
	}
	return out, true
}

func (l *Lambert) MixFactor() float32 {
	return l.Mix
}
