package primitive

import (
	"github.com/achilleasa/kdtrace/scene"
	"github.com/achilleasa/kdtrace/scene/kdtree"
	"github.com/achilleasa/kdtrace/types"
)

// A triangle mesh sharing a single material. The model owns its triangles
// and indexes them with a k-d tree.
type Model struct {
	Name string

	triangles []*Triangle
	material  *scene.Material
	cfg       kdtree.Config
	tree      *kdtree.Tree
}

// Create a model from a list of triangles.
func NewModel(name string, triangles []*Triangle, material *scene.Material, cfg kdtree.Config) *Model {
	m := &Model{
		Name:      name,
		triangles: triangles,
		material:  material,
		cfg:       cfg,
	}
	m.rebuild()
	return m
}

func (m *Model) rebuild() {
	items := make([]scene.Intersectable, len(m.triangles))
	for index, tri := range m.triangles {
		items[index] = tri
	}
	m.tree = kdtree.Build(items, m.cfg)
}

// Get the number of triangles in the model.
func (m *Model) Len() int {
	return len(m.triangles)
}

// Get the statistics of the model's k-d tree.
func (m *Model) Stats() kdtree.Stats {
	return m.tree.Stats()
}

// Create a deep copy of the model that can be transformed independently.
func (m *Model) Clone(name string) *Model {
	triangles := make([]*Triangle, len(m.triangles))
	for index, tri := range m.triangles {
		dup := *tri
		triangles[index] = &dup
	}
	return NewModel(name, triangles, m.material, m.cfg)
}

// Apply a transformation matrix to every triangle and rebuild the index.
func (m *Model) Transform(mat types.Mat4) {
	for _, tri := range m.triangles {
		tri.Transform(mat)
	}
	m.rebuild()
}

// Intersect the model with a ray. Hits always report the model material.
func (m *Model) Collide(ray scene.Ray) scene.ColliderResult {
	res := m.tree.Collide(ray)
	if res.Collision {
		res.Material = m.material
	}
	return res
}

func (m *Model) BoundingBox() scene.AABB {
	return m.tree.BoundingBox()
}

func (m *Model) Position() types.Vec3 {
	return m.tree.Position()
}

func (m *Model) Material() *scene.Material {
	return m.material
}

func (m *Model) Translate(v types.Vec3) {
	for _, tri := range m.triangles {
		tri.Translate(v)
	}
	m.tree.TranslateNodes(v)
}
