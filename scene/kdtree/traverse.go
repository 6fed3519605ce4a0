package kdtree

import (
	"math"

	"github.com/achilleasa/kdtrace/scene"
	"github.com/achilleasa/kdtrace/types"
)

// Tolerance used when checking whether a point lies inside a leaf.
const leafSlack float32 = 1e-4

// Intersect the indexed items with a ray.
//
// Traversal locates the leaf containing the ray entry point and scans its
// items. If the leaf yields no accepted hit, the ray is followed to the exit
// face of the leaf and the rope attached to that face leads to the next leaf
// without descending from the root again. Traversal ends when a hit is
// accepted or the ray leaves the index.
func (t *Tree) Collide(ray scene.Ray) scene.ColliderResult {
	if len(t.nodes) == 0 {
		return scene.NoCollision()
	}

	p, ok := t.entryPoint(ray)
	if !ok {
		return scene.NoCollision()
	}

	var best scene.ColliderResult
	bestDist := float32(math.MaxFloat32)

	// Every hop moves forward along the ray so each leaf is visited at most
	// once; the cap only guards against malformed input such as NaN rays.
	nodeIndex := int32(0)
	for hops := 4*len(t.nodes) + 4; hops > 0; hops-- {
		leafIndex := t.locate(nodeIndex, p)
		leaf := &t.nodes[leafIndex]

		// Near edges and corners the hop point may not lie in the leaf
		// located from the rope target. Keep following ropes towards it.
		if !leaf.box.ContainsWithin(p, leafSlack) {
			if nodeIndex = leaf.ropes[outsideFace(leaf.box, p)]; nodeIndex == noNode {
				break
			}
			continue
		}

		// Anything in this or later leaves is further than the candidate.
		if best.Collision && p.Sub(ray.Origin).LenSq() > bestDist {
			break
		}

		for _, itemIndex := range leaf.items {
			res := t.items[itemIndex].Collide(ray)
			if !res.Collision {
				continue
			}

			if dist := res.DistanceSq(ray.Origin); dist < bestDist {
				if res.Material == nil {
					res.Material = t.items[itemIndex].Material()
				}
				best, bestDist = res, dist
			}
		}

		if best.Collision && (t.cfg.Mode == FirstLeafHit || leaf.box.ContainsWithin(best.Position, leafSlack)) {
			return best
		}

		dist, axis, ok := leaf.box.Exit(p, ray.Direction)
		if !ok {
			break
		}
		if nodeIndex = leaf.ropes[exitFace(axis, ray.Direction[axis])]; nodeIndex == noNode {
			break
		}
		p = stepAcross(p.Add(ray.Direction.Mul(dist)), ray.Direction, leaf.box, axis)
	}

	return best
}

// Find where traversal starts: the ray origin if it lies inside the index,
// otherwise the point where the ray enters the root box.
func (t *Tree) entryPoint(ray scene.Ray) (types.Vec3, bool) {
	root := t.nodes[0].box
	if root.Contains(ray.Origin) {
		return ray.Origin, true
	}

	dist, axis, ok := root.Intersect(ray)
	if !ok {
		return types.Vec3{}, false
	}

	// Pin the entry coordinate to the face so rounding cannot leave the
	// point outside the root.
	p := ray.At(dist)
	if ray.Direction[axis] > 0 {
		p[axis] = root.Min[axis]
	} else {
		p[axis] = root.Max[axis]
	}
	return p, true
}

// Move an exit point lying on a box face just past that face.
func stepAcross(exit, dir types.Vec3, box scene.AABB, axis int) types.Vec3 {
	if dir[axis] > 0 {
		exit[axis] = math.Nextafter32(box.Max[axis], float32(math.Inf(1)))
	} else {
		exit[axis] = math.Nextafter32(box.Min[axis], float32(math.Inf(-1)))
	}
	return exit
}

// Get the face of box that p lies furthest beyond.
func outsideFace(box scene.AABB, p types.Vec3) int {
	face, overshoot := faceMinX, float32(0)
	for axis := 0; axis < 3; axis++ {
		if d := box.Min[axis] - p[axis]; d > overshoot {
			face, overshoot = axis, d
		}
		if d := p[axis] - box.Max[axis]; d > overshoot {
			face, overshoot = axis+faceMaxX, d
		}
	}
	return face
}
