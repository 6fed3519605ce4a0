package primitive

import (
	"testing"

	"github.com/achilleasa/kdtrace/scene"
	"github.com/achilleasa/kdtrace/scene/kdtree"
	"github.com/achilleasa/kdtrace/types"
)

func TestGroup(t *testing.T) {
	red := &scene.Material{Color: types.Vec3{1, 0, 0}}
	green := &scene.Material{Color: types.Vec3{0, 1, 0}}

	var items []scene.Intersectable
	for index := 0; index < 10; index++ {
		mat := red
		if index%2 == 1 {
			mat = green
		}
		items = append(items, NewSphere(types.Vec3{float32(index * 3), 0, 10}, 1, mat))
	}
	group := NewGroup("row", items, kdtree.Config{LeafSize: 2})

	if len(group.Items()) != 10 {
		t.Fatalf("expected 10 grouped items; got %d", len(group.Items()))
	}
	if group.Material() != nil {
		t.Fatal("expected groups not to carry a material")
	}

	for index := 0; index < 10; index++ {
		x := float32(index * 3)
		res := group.Collide(scene.NewRay(types.Vec3{x, 0, 0}, types.Vec3{0, 0, 1}))
		if !res.Collision {
			t.Fatalf("[spec %d] expected a collision", index)
		}
		if !res.Position.ApproxEqual(types.Vec3{x, 0, 9}, 1e-4) {
			t.Fatalf("[spec %d] expected hit at (%f, 0, 9); got %v", index, x, res.Position)
		}
		if res.Material != items[index].Material() {
			t.Fatalf("[spec %d] expected hit to carry the material of the hit sphere", index)
		}
	}

	group.Translate(types.Vec3{0, 5, 0})
	if res := group.Collide(scene.NewRay(types.Vec3{0, 5, 0}, types.Vec3{0, 0, 1})); !res.Collision {
		t.Fatal("expected translated group to be hit")
	}
	if !group.Position().ApproxEqual(types.Vec3{13.5, 5, 10}, 1e-4) {
		t.Fatalf("expected group position (13.5, 5, 10); got %v", group.Position())
	}
}

func TestNestedGroups(t *testing.T) {
	inner := NewGroup("inner", []scene.Intersectable{
		NewSphere(types.Vec3{0, 0, 10}, 1, nil),
		NewSphere(types.Vec3{0, 0, 20}, 1, nil),
	}, kdtree.DefaultConfig())
	outer := NewGroup("outer", []scene.Intersectable{
		inner,
		NewBox(types.Vec3{-1, -1, 30}, types.Vec3{1, 1, 31}, nil),
	}, kdtree.DefaultConfig())

	res := outer.Collide(scene.NewRay(types.Vec3{}, types.Vec3{0, 0, 1}))
	if !res.Collision || !res.Position.ApproxEqual(types.Vec3{0, 0, 9}, 1e-4) {
		t.Fatalf("expected nested group to report the nearest hit at (0, 0, 9); got %v", res)
	}

	res = outer.Collide(scene.NewRay(types.Vec3{0, 0, 25}, types.Vec3{0, 0, 1}))
	if !res.Collision || !res.Position.ApproxEqual(types.Vec3{0, 0, 30}, 1e-4) {
		t.Fatalf("expected hit on the box at (0, 0, 30); got %v", res)
	}
}
