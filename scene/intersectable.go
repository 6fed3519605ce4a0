package scene

import "github.com/achilleasa/kdtrace/types"

// The Intersectable interface is implemented by everything that can be stored
// in a World or indexed by a k-d tree: primitives, aggregates and the trees
// themselves.
type Intersectable interface {
	// Intersect the entity with a ray.
	Collide(ray Ray) ColliderResult

	// Get the entity's bounding box.
	BoundingBox() AABB

	// Get the entity centroid.
	Position() types.Vec3

	// Get the entity material. Aggregates and bare geometry return nil.
	Material() *Material

	// Rigidly shift the entity by v.
	Translate(v types.Vec3)
}
