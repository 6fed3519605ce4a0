package primitive

import (
	"github.com/achilleasa/kdtrace/scene"
	"github.com/achilleasa/kdtrace/types"
)

// A renderable axis-aligned box. Rays starting inside the box hit its inner
// walls.
type Box struct {
	Bounds scene.AABB

	material *scene.Material
}

// Create a box spanning the two corners.
func NewBox(p1, p2 types.Vec3, material *scene.Material) *Box {
	return &Box{
		Bounds:   scene.NewAABB(p1, p2),
		material: material,
	}
}

// Intersect the box with a ray. The normal is perpendicular to the face
// belonging to the slab that produced the hit distance and faces the ray.
func (b *Box) Collide(ray scene.Ray) scene.ColliderResult {
	dist, axis, ok := b.Bounds.Intersect(ray)
	if !ok || dist < hitEpsilon {
		return scene.NoCollision()
	}

	var normal types.Vec3
	if ray.Direction[axis] > 0 {
		normal[axis] = -1
	} else {
		normal[axis] = 1
	}

	return scene.ColliderResult{
		Collision: true,
		Position:  ray.At(dist),
		Normal:    normal,
		Material:  b.material,
	}
}

func (b *Box) BoundingBox() scene.AABB {
	return b.Bounds
}

func (b *Box) Position() types.Vec3 {
	return b.Bounds.Center()
}

func (b *Box) Material() *scene.Material {
	return b.material
}

func (b *Box) Translate(v types.Vec3) {
	b.Bounds.Translate(v)
}
