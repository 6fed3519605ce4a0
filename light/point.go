package light

import (
	"github.com/achilleasa/kdtrace/scene"
	"github.com/achilleasa/kdtrace/types"
)

// A point light whose power falls off with the squared distance.
type Point struct {
	Position    types.Vec3
	Brightness  float32
	Attenuation float32

	color types.Vec3
}

// Create a point light. Non-positive attenuation values are replaced by 1.
func NewPoint(pos, color types.Vec3, brightness, attenuation float32) *Point {
	if attenuation <= 0 {
		attenuation = 1
	}
	return &Point{
		Position:    pos,
		Brightness:  brightness,
		Attenuation: attenuation,
		color:       color,
	}
}

func (l *Point) Illuminate(pos, normal types.Vec3) scene.LightRay {
	toSurface := pos.Sub(l.Position)
	return scene.LightRay{
		Power:     l.Brightness / (l.Attenuation * toSurface.LenSq()),
		Direction: toSurface.Normalize(),
	}
}

// The light is visible when the surface faces it and nothing lies between
// the surface and the light.
func (l *Point) Visible(pos, normal types.Vec3, world *scene.World) bool {
	toLight := l.Position.Sub(pos)
	if normal.Dot(toLight) <= 0 {
		return false
	}

	origin := pos.Add(normal.Mul(scene.SurfaceOffset))
	toLight = l.Position.Sub(origin)
	return !world.Occluded(scene.NewRay(origin, toLight), toLight.Len())
}

func (l *Point) Color() types.Vec3 {
	return l.color
}
