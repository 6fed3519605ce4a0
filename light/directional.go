package light

import (
	"math"

	"github.com/achilleasa/kdtrace/scene"
	"github.com/achilleasa/kdtrace/types"
)

// A light infinitely far away whose rays all travel in the same direction.
type Directional struct {
	Direction types.Vec3
	Intensity float32

	color types.Vec3
}

// Create a directional light; dir is normalized.
func NewDirectional(dir, color types.Vec3, intensity float32) *Directional {
	return &Directional{
		Direction: dir.Normalize(),
		Intensity: intensity,
		color:     color,
	}
}

// Create the default sun light.
func DefaultSun() *Directional {
	return NewDirectional(types.Vec3{1, -0.5, 1}, types.RGB(230, 230, 230), 2)
}

func (l *Directional) Illuminate(pos, normal types.Vec3) scene.LightRay {
	return scene.LightRay{
		Power:     l.Intensity,
		Direction: l.Direction,
	}
}

// The light is visible from surfaces facing it unless another entity blocks
// the path towards it.
func (l *Directional) Visible(pos, normal types.Vec3, world *scene.World) bool {
	if normal.Dot(l.Direction) >= 0 {
		return false
	}

	shadowRay := scene.Ray{
		Origin:    pos.Add(normal.Mul(scene.SurfaceOffset)),
		Direction: l.Direction.Mul(-1),
	}
	return !world.Occluded(shadowRay, math.MaxFloat32)
}

func (l *Directional) Color() types.Vec3 {
	return l.color
}
