package scene

import (
	"math"

	"github.com/achilleasa/kdtrace/types"
)

// Slack allowed between the entry and exit distances of a ray hitting a box
// from the outside.
const boxTolerance float32 = 1e-4

// An axis-aligned bounding box.
type AABB struct {
	Min types.Vec3
	Max types.Vec3
}

// Create a box from two corners given in any order.
func NewAABB(p1, p2 types.Vec3) AABB {
	return AABB{
		Min: types.MinVec3(p1, p2),
		Max: types.MaxVec3(p1, p2),
	}
}

// Calculate the union of the bounding boxes of a set of entities. The result
// for an empty set is undefined; callers must pass at least one entity.
func FromEntities(items []Intersectable) AABB {
	box := AABB{
		Min: types.Vec3{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32},
		Max: types.Vec3{-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32},
	}
	for _, item := range items {
		box = box.Union(item.BoundingBox())
	}
	return box
}

// Return the smallest box enclosing b and b2.
func (b AABB) Union(b2 AABB) AABB {
	return AABB{
		Min: types.MinVec3(b.Min, b2.Min),
		Max: types.MaxVec3(b.Max, b2.Max),
	}
}

// Get the box center.
func (b AABB) Center() types.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Check whether p lies inside the box; points on the boundary are inside.
func (b AABB) Contains(p types.Vec3) bool {
	return p[0] >= b.Min[0] && p[0] <= b.Max[0] &&
		p[1] >= b.Min[1] && p[1] <= b.Max[1] &&
		p[2] >= b.Min[2] && p[2] <= b.Max[2]
}

// Check whether p lies inside the box grown by tolerance on every side.
func (b AABB) ContainsWithin(p types.Vec3, tolerance float32) bool {
	for axis := 0; axis < 3; axis++ {
		if p[axis] < b.Min[axis]-tolerance || p[axis] > b.Max[axis]+tolerance {
			return false
		}
	}
	return true
}

// Shift both corners by v.
func (b *AABB) Translate(v types.Vec3) {
	b.Min = b.Min.Add(v)
	b.Max = b.Max.Add(v)
}

// Split the box at value along axis.
func (b AABB) Split(axis int, value float32) (left, right AABB) {
	left, right = b, b
	left.Max[axis] = value
	right.Min[axis] = value
	return left, right
}

// Run the slab test against ray. It returns the distance to the intersection
// point and the axis whose slab produced it. When the ray origin lies inside
// the box the intersection point is where the ray exits the box; otherwise it
// is the entry point.
func (b AABB) Intersect(ray Ray) (dist float32, axis int, ok bool) {
	if b.Contains(ray.Origin) {
		return b.Exit(ray.Origin, ray.Direction)
	}
	return b.entry(ray)
}

// Calculate the distance from a point p inside the box to the face where a
// ray leaving p along dir exits the box. Only axes with a non-zero direction
// component are candidates; the earliest one wins. If p is already past the
// exit face the distance is clamped to 0.
func (b AABB) Exit(p, dir types.Vec3) (dist float32, axis int, ok bool) {
	dist = float32(math.Inf(1))
	axis = -1
	for a := 0; a < 3; a++ {
		var t float32
		switch {
		case dir[a] > 0:
			t = (b.Max[a] - p[a]) / dir[a]
		case dir[a] < 0:
			t = (b.Min[a] - p[a]) / dir[a]
		default:
			continue
		}
		if t < dist {
			dist, axis = t, a
		}
	}

	if axis == -1 {
		return 0, -1, false
	}
	if dist < 0 {
		dist = 0
	}
	return dist, axis, true
}

func (b AABB) entry(ray Ray) (dist float32, axis int, ok bool) {
	o, d := ray.Origin, ray.Direction
	near, far := float32(math.Inf(-1)), float32(math.Inf(1))
	axis = -1
	for a := 0; a < 3; a++ {
		var tNear, tFar float32
		switch {
		case d[a] > 0:
			tNear, tFar = (b.Min[a]-o[a])/d[a], (b.Max[a]-o[a])/d[a]
		case d[a] < 0:
			tNear, tFar = (b.Max[a]-o[a])/d[a], (b.Min[a]-o[a])/d[a]
		default:
			// Parallel to this slab; it can only be hit if the origin
			// already lies between its planes.
			if o[a] < b.Min[a] || o[a] > b.Max[a] {
				return 0, -1, false
			}
			continue
		}
		if tNear > near {
			near, axis = tNear, a
		}
		if tFar < far {
			far = tFar
		}
	}

	// Flat boxes have near == far; the tolerance keeps rounding from
	// rejecting them.
	if axis == -1 || far < 0 || near < 0 || near > far+boxTolerance {
		return 0, -1, false
	}
	return near, axis, true
}

// Intersect the box with a ray. The normal of the result is left unset.
func (b AABB) Collide(ray Ray) ColliderResult {
	dist, _, ok := b.Intersect(ray)
	if !ok {
		return NoCollision()
	}
	return ColliderResult{
		Collision: true,
		Position:  ray.At(dist),
	}
}
