package primitive

import (
	"math"

	"github.com/achilleasa/kdtrace/scene"
	"github.com/achilleasa/kdtrace/types"
)

// Hits closer than this to the ray origin are ignored so secondary rays do
// not re-hit the surface they start from.
const hitEpsilon float32 = 1e-4

// A sphere.
type Sphere struct {
	Center types.Vec3
	Radius float32

	material *scene.Material
}

// Create a new sphere.
func NewSphere(center types.Vec3, radius float32, material *scene.Material) *Sphere {
	return &Sphere{
		Center:   center,
		Radius:   radius,
		material: material,
	}
}

// Intersect the sphere with a ray. Rays starting inside the sphere hit its
// far side.
func (s *Sphere) Collide(ray scene.Ray) scene.ColliderResult {
	oc := ray.Origin.Sub(s.Center)
	b := oc.Dot(ray.Direction)
	c := oc.LenSq() - s.Radius*s.Radius
	disc := b*b - c
	if disc < 0 {
		return scene.NoCollision()
	}

	sq := float32(math.Sqrt(float64(disc)))
	t := -b - sq
	if t < hitEpsilon {
		if t = -b + sq; t < hitEpsilon {
			return scene.NoCollision()
		}
	}

	pos := ray.At(t)
	return scene.ColliderResult{
		Collision: true,
		Position:  pos,
		Normal:    pos.Sub(s.Center).Mul(1.0 / s.Radius),
		Material:  s.material,
	}
}

func (s *Sphere) BoundingBox() scene.AABB {
	r := types.Vec3{s.Radius, s.Radius, s.Radius}
	return scene.AABB{
		Min: s.Center.Sub(r),
		Max: s.Center.Add(r),
	}
}

func (s *Sphere) Position() types.Vec3 {
	return s.Center
}

func (s *Sphere) Material() *scene.Material {
	return s.material
}

func (s *Sphere) Translate(v types.Vec3) {
	s.Center = s.Center.Add(v)
}
