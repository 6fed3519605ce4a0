package primitive

import (
	"github.com/achilleasa/kdtrace/scene"
	"github.com/achilleasa/kdtrace/scene/kdtree"
	"github.com/achilleasa/kdtrace/types"
)

// A group is an aggregate entity that owns a list of entities and indexes
// them with a k-d tree. Groups can be nested.
type Group struct {
	Name string

	items    []scene.Intersectable
	tree     *kdtree.Tree
	position types.Vec3
}

// Create a group positioned at the center of its items' bounds.
func NewGroup(name string, items []scene.Intersectable, cfg kdtree.Config) *Group {
	g := &Group{
		Name:  name,
		items: items,
		tree:  kdtree.Build(items, cfg),
	}
	g.position = g.tree.Position()
	return g
}

// Get the grouped entities.
func (g *Group) Items() []scene.Intersectable {
	return g.items
}

// Get the statistics of the group's k-d tree.
func (g *Group) Stats() kdtree.Stats {
	return g.tree.Stats()
}

// Intersect the group with a ray. Hits report the material of the grouped
// entity that was hit.
func (g *Group) Collide(ray scene.Ray) scene.ColliderResult {
	return g.tree.Collide(ray)
}

func (g *Group) BoundingBox() scene.AABB {
	return g.tree.BoundingBox()
}

func (g *Group) Position() types.Vec3 {
	return g.position
}

func (g *Group) Material() *scene.Material {
	return nil
}

// Move every grouped entity and the index by v.
func (g *Group) Translate(v types.Vec3) {
	for _, item := range g.items {
		item.Translate(v)
	}
	g.tree.TranslateNodes(v)
	g.position = g.position.Add(v)
}
