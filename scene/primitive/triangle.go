package primitive

import (
	"github.com/achilleasa/kdtrace/scene"
	"github.com/achilleasa/kdtrace/types"
)

// Rays whose direction is this close to parallel with the triangle plane miss.
const parallelEpsilon float32 = 1e-10

// A triangle. Triangles carry no material; the model that owns them supplies
// one.
type Triangle struct {
	Vertices [3]types.Vec3

	// Optional per-vertex normals. When set the hit normal is interpolated
	// from them; otherwise the face normal is used.
	Normals    [3]types.Vec3
	HasNormals bool

	faceNormal types.Vec3
}

// Create a triangle with a face normal derived from its winding order.
func NewTriangle(v0, v1, v2 types.Vec3) *Triangle {
	tri := &Triangle{Vertices: [3]types.Vec3{v0, v1, v2}}
	tri.updateFaceNormal()
	return tri
}

// Create a triangle with per-vertex normals.
func NewSmoothTriangle(vertices, normals [3]types.Vec3) *Triangle {
	tri := &Triangle{
		Vertices:   vertices,
		Normals:    normals,
		HasNormals: true,
	}
	tri.updateFaceNormal()
	return tri
}

func (tri *Triangle) updateFaceNormal() {
	e1 := tri.Vertices[1].Sub(tri.Vertices[0])
	e2 := tri.Vertices[2].Sub(tri.Vertices[0])
	tri.faceNormal = e1.Cross(e2).Normalize()
}

// Intersect the triangle with a ray using the Möller–Trumbore algorithm. The
// returned normal always faces the incoming ray.
func (tri *Triangle) Collide(ray scene.Ray) scene.ColliderResult {
	v0 := tri.Vertices[0]
	e1 := tri.Vertices[1].Sub(v0)
	e2 := tri.Vertices[2].Sub(v0)

	h := ray.Direction.Cross(e2)
	a := e1.Dot(h)
	if a > -parallelEpsilon && a < parallelEpsilon {
		return scene.NoCollision()
	}

	f := 1.0 / a
	s := ray.Origin.Sub(v0)
	u := f * s.Dot(h)
	if u < 0 || u > 1 {
		return scene.NoCollision()
	}

	q := s.Cross(e1)
	v := f * ray.Direction.Dot(q)
	if v < 0 || u+v > 1 {
		return scene.NoCollision()
	}

	t := f * e2.Dot(q)
	if t < hitEpsilon {
		return scene.NoCollision()
	}

	normal := tri.faceNormal
	if tri.HasNormals {
		normal = tri.Normals[0].Mul(1 - u - v).
			Add(tri.Normals[1].Mul(u)).
			Add(tri.Normals[2].Mul(v)).
			Normalize()
	}
	if normal.Dot(ray.Direction) > 0 {
		normal = normal.Mul(-1)
	}

	return scene.ColliderResult{
		Collision: true,
		Position:  ray.At(t),
		Normal:    normal,
	}
}

func (tri *Triangle) BoundingBox() scene.AABB {
	return scene.AABB{
		Min: types.MinVec3(tri.Vertices[0], types.MinVec3(tri.Vertices[1], tri.Vertices[2])),
		Max: types.MaxVec3(tri.Vertices[0], types.MaxVec3(tri.Vertices[1], tri.Vertices[2])),
	}
}

func (tri *Triangle) Position() types.Vec3 {
	return tri.Vertices[0].Add(tri.Vertices[1]).Add(tri.Vertices[2]).Mul(1.0 / 3.0)
}

func (tri *Triangle) Material() *scene.Material {
	return nil
}

func (tri *Triangle) Translate(v types.Vec3) {
	for index := range tri.Vertices {
		tri.Vertices[index] = tri.Vertices[index].Add(v)
	}
}

// Apply a transformation matrix to the triangle.
func (tri *Triangle) Transform(m types.Mat4) {
	for index := range tri.Vertices {
		tri.Vertices[index] = m.MulPoint(tri.Vertices[index])
		if tri.HasNormals {
			tri.Normals[index] = m.MulNormal(tri.Normals[index])
		}
	}
	tri.updateFaceNormal()
}
