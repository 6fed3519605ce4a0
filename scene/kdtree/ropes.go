package kdtree

import (
	"fmt"

	"github.com/achilleasa/kdtrace/scene"
)

// Rope slots, one per box face. Face f lies on axis f % 3; faces 0-2 are the
// min faces and faces 3-5 the max faces.
const (
	faceMinX = iota
	faceMinY
	faceMinZ
	faceMaxX
	faceMaxY
	faceMaxZ
)

var faceNames = [6]string{"-x", "-y", "-z", "+x", "+y", "+z"}

func emptyRopes() [6]int32 {
	return [6]int32{noNode, noNode, noNode, noNode, noNode, noNode}
}

// Get the face on axis that a ray with direction component dir exits through.
func exitFace(axis int, dir float32) int {
	if dir > 0 {
		return axis + faceMaxX
	}
	return axis
}

// Walk the tree from nodeIndex, handing each child the ropes of its parent
// with the shared split face pointing at its sibling. Ropes are tightened on
// the way down so that each one references the smallest node still covering
// the whole face.
func (t *Tree) linkRopes(nodeIndex int32, ropes [6]int32) {
	n := &t.nodes[nodeIndex]
	if n.isLeaf() {
		n.ropes = ropes
		t.verifyRopes(nodeIndex)
		return
	}

	for face, rope := range ropes {
		if rope != noNode {
			ropes[face] = t.tightenRope(rope, face, n.box)
		}
	}
	n.ropes = ropes

	axis := int(n.axis)
	leftRopes, rightRopes := ropes, ropes
	leftRopes[axis+faceMaxX] = n.right
	rightRopes[axis] = n.left

	left, right := n.left, n.right
	t.linkRopes(left, leftRopes)
	t.linkRopes(right, rightRopes)
}

// Descend from the rope target towards the face of box it borders.
func (t *Tree) tightenRope(rope int32, face int, box scene.AABB) int32 {
	axis := face % 3
	for {
		n := &t.nodes[rope]
		if n.isLeaf() {
			return rope
		}

		splitAxis := int(n.axis)
		switch {
		case splitAxis == axis:
			// Step into the child facing back towards box.
			if face >= faceMaxX {
				rope = n.left
			} else {
				rope = n.right
			}
		case n.split <= box.Min[splitAxis]:
			rope = n.right
		case n.split >= box.Max[splitAxis]:
			rope = n.left
		default:
			// The split plane cuts through the face; both children
			// border box.
			return rope
		}
	}
}

// A leaf may only lack a rope on faces that lie on the index boundary.
func (t *Tree) verifyRopes(leafIndex int32) {
	leaf := &t.nodes[leafIndex]
	root := t.nodes[0].box
	for face, rope := range leaf.ropes {
		if rope != noNode {
			continue
		}

		axis := face % 3
		if face >= faceMaxX && leaf.box.Max[axis] == root.Max[axis] {
			continue
		}
		if face < faceMaxX && leaf.box.Min[axis] == root.Min[axis] {
			continue
		}

		panic(fmt.Errorf(
			"%w: leaf %d (%v - %v) has no rope for face %s inside index bounds (%v - %v)",
			ErrBrokenRope, leafIndex, leaf.box.Min, leaf.box.Max, faceNames[face], root.Min, root.Max,
		))
	}
}
