package kdtree

import (
	"sort"
	"time"

	"github.com/achilleasa/kdtrace/log"
	"github.com/achilleasa/kdtrace/scene"
	"github.com/achilleasa/kdtrace/types"
)

const (
	// Nodes with fewer items than this are turned into leaves.
	DefaultLeafSize = 5

	noNode   int32 = -1
	leafAxis int8  = -1
)

// Mode selects how traversal decides that a leaf hit is final.
type Mode uint8

const (
	// Stop at the first leaf whose nearest hit lies within the leaf's own
	// bounds. Hits found outside the leaf are kept as candidates while
	// traversal moves on, so the reported hit is the globally nearest one.
	ClippedLeafHit Mode = iota

	// Stop at the first leaf that reports any hit, even if the hit point
	// lies beyond the leaf and a nearer surface waits in a later leaf.
	FirstLeafHit
)

func (m Mode) String() string {
	switch m {
	case FirstLeafHit:
		return "first-leaf-hit"
	default:
		return "clipped-leaf-hit"
	}
}

// Tree construction and traversal settings.
type Config struct {
	LeafSize int
	Mode     Mode
}

// Get the default tree configuration.
func DefaultConfig() Config {
	return Config{
		LeafSize: DefaultLeafSize,
		Mode:     ClippedLeafHit,
	}
}

// Build statistics.
type Stats struct {
	Items       int
	Nodes       int
	Leaves      int
	EmptyLeaves int
	MaxDepth    int

	// Total number of item references stored in leaves. Items straddling
	// split planes are referenced by more than one leaf.
	References int
}

// A tree node. Internal nodes split their box at split along axis; leaves
// (axis == leafAxis) hold indices into the tree's item list. Ropes link each
// face of the node box (-x, -y, -z, +x, +y, +z) to the neighboring node
// across it.
type node struct {
	box   scene.AABB
	axis  int8
	split float32

	left, right int32

	items []int32
	ropes [6]int32
}

func (n *node) isLeaf() bool {
	return n.axis == leafAxis
}

// A k-d tree over a set of intersectable items. The tree references items
// without owning them; whoever owns the items must move them and then call
// TranslateNodes to keep the index in sync.
//
// Nodes are stored in a flat list and reference each other by index; the
// root is always node 0.
type Tree struct {
	cfg   Config
	items []scene.Intersectable
	nodes []node
	stats Stats
}

type builder struct {
	logger log.Logger

	tree     *Tree
	boxes    []scene.AABB
	leafSize int
}

// Build a k-d tree over items and link its leaves with ropes.
func Build(items []scene.Intersectable, cfg Config) *Tree {
	if cfg.LeafSize < 1 {
		cfg.LeafSize = DefaultLeafSize
	}

	tree := &Tree{
		cfg:   cfg,
		items: append([]scene.Intersectable(nil), items...),
		stats: Stats{Items: len(items)},
	}
	if len(items) == 0 {
		return tree
	}

	b := &builder{
		logger:   log.New("kdtree"),
		tree:     tree,
		boxes:    make([]scene.AABB, len(items)),
		leafSize: cfg.LeafSize,
	}

	start := time.Now()
	indices := make([]int32, len(items))
	for index, item := range items {
		b.boxes[index] = item.BoundingBox()
		indices[index] = int32(index)
	}
	b.partition(indices, 0, scene.FromEntities(items))
	tree.linkRopes(0, emptyRopes())

	b.logger.Debugf(
		"k-d tree build time: %d ms, items: %d, maxDepth: %d, nodes: %d, leaves: %d, refs: %d",
		time.Since(start).Nanoseconds()/1e6,
		tree.stats.Items, tree.stats.MaxDepth, tree.stats.Nodes, tree.stats.Leaves, tree.stats.References,
	)
	return tree
}

// Partition a list of items bounded by bound and return the index of the
// generated node.
func (b *builder) partition(indices []int32, depth int, bound scene.AABB) int32 {
	if depth > b.tree.stats.MaxDepth {
		b.tree.stats.MaxDepth = depth
	}

	axis := depth % 3
	if len(indices) < b.leafSize {
		return b.leaf(indices, bound)
	}

	sorted := append([]int32(nil), indices...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return b.boxes[sorted[i]].Min[axis] < b.boxes[sorted[j]].Min[axis]
	})

	median := len(sorted) / 2
	split := b.boxes[sorted[median]].Min[axis]
	// Child boxes must stay inside this node's box.
	if split <= bound.Min[axis] || split >= bound.Max[axis] {
		split = (bound.Min[axis] + bound.Max[axis]) * 0.5
	}

	// Items straddling the split plane end up on both sides.
	left := append([]int32(nil), sorted[:median]...)
	right := append([]int32(nil), sorted[median:]...)
	for _, index := range sorted[:median] {
		if b.boxes[index].Max[axis] >= split {
			right = append(right, index)
		}
	}
	for _, index := range sorted[median:] {
		if b.boxes[index].Min[axis] < split {
			left = append(left, index)
		}
	}

	// No progress; splitting further would recurse forever.
	if len(left) >= len(indices) || len(right) >= len(indices) {
		return b.leaf(indices, bound)
	}

	nodeIndex := b.alloc(node{
		box:   bound,
		axis:  int8(axis),
		split: split,
	})
	leftBound, rightBound := bound.Split(axis, split)
	leftIndex := b.partition(left, depth+1, leftBound)
	rightIndex := b.partition(right, depth+1, rightBound)
	b.tree.nodes[nodeIndex].left = leftIndex
	b.tree.nodes[nodeIndex].right = rightIndex
	return nodeIndex
}

func (b *builder) leaf(indices []int32, bound scene.AABB) int32 {
	b.tree.stats.Leaves++
	b.tree.stats.References += len(indices)
	if len(indices) == 0 {
		b.tree.stats.EmptyLeaves++
	}

	return b.alloc(node{
		box:   bound,
		axis:  leafAxis,
		items: append([]int32(nil), indices...),
	})
}

func (b *builder) alloc(n node) int32 {
	n.left, n.right = noNode, noNode
	n.ropes = emptyRopes()
	b.tree.nodes = append(b.tree.nodes, n)
	b.tree.stats.Nodes++
	return int32(len(b.tree.nodes) - 1)
}

// Get the tree build statistics.
func (t *Tree) Stats() Stats {
	return t.stats
}

// Get the tree configuration.
func (t *Tree) Config() Config {
	return t.cfg
}

// Get the bounds of the indexed items. An empty tree has a zero box.
func (t *Tree) BoundingBox() scene.AABB {
	if len(t.nodes) == 0 {
		return scene.AABB{}
	}
	return t.nodes[0].box
}

// Get the center of the tree bounds.
func (t *Tree) Position() types.Vec3 {
	return t.BoundingBox().Center()
}

// Trees carry no material; hits report the material of the indexed item.
func (t *Tree) Material() *scene.Material {
	return nil
}

// Shift the index by v. Indexed items are not touched; see TranslateNodes.
func (t *Tree) Translate(v types.Vec3) {
	t.TranslateNodes(v)
}

// Shift every node box and split plane by v. The rope topology and the leaf
// item lists stay the same; the owner of the indexed items is expected to
// translate them by the same vector.
func (t *Tree) TranslateNodes(v types.Vec3) {
	for index := range t.nodes {
		n := &t.nodes[index]
		n.box.Translate(v)
		if !n.isLeaf() {
			n.split += v[n.axis]
		}
	}
}

// Descend from nodeIndex to the leaf containing p. Points on a split plane
// belong to the right child.
func (t *Tree) locate(nodeIndex int32, p types.Vec3) int32 {
	for {
		n := &t.nodes[nodeIndex]
		if n.isLeaf() {
			return nodeIndex
		}

		if p[n.axis] >= n.split {
			nodeIndex = n.right
		} else {
			nodeIndex = n.left
		}
	}
}
