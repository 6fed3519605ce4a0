package scene

import (
	"testing"

	"github.com/achilleasa/kdtrace/types"
)

func TestWorldNearest(t *testing.T) {
	near := &Material{Color: types.Vec3{1, 0, 0}}
	far := &Material{Color: types.Vec3{0, 1, 0}}

	world := NewWorld(nil, DefaultAmbient)
	world.AddEntity(
		&mockEntity{box: NewAABB(types.Vec3{-1, -1, 20}, types.Vec3{1, 1, 21}), mat: far},
		&mockEntity{box: NewAABB(types.Vec3{-1, -1, 10}, types.Vec3{1, 1, 11}), mat: near},
		&mockEntity{box: NewAABB(types.Vec3{5, 5, 5}, types.Vec3{6, 6, 6}), mat: far},
	)

	res := world.Nearest(NewRay(types.Vec3{}, types.Vec3{0, 0, 1}))
	if !res.Collision {
		t.Fatal("expected a collision")
	}
	if res.Material != near {
		t.Fatal("expected the nearest entity to be reported")
	}
	exp := types.Vec3{0, 0, 10}
	if !res.Position.ApproxEqual(exp, 1e-5) {
		t.Fatalf("expected hit at %v; got %v", exp, res.Position)
	}

	res = world.Nearest(NewRay(types.Vec3{}, types.Vec3{0, 1, 0}))
	if res.Collision {
		t.Fatalf("expected no collision; got %v", res)
	}
}

func TestWorldNearestFillsMissingMaterial(t *testing.T) {
	mat := &Material{}
	entity := &materialOverride{mockEntity: mockEntity{box: NewAABB(types.Vec3{-1, -1, 1}, types.Vec3{1, 1, 2})}, mat: mat}

	world := NewWorld(nil, DefaultAmbient)
	world.AddEntity(entity)

	res := world.Nearest(NewRay(types.Vec3{}, types.Vec3{0, 0, 1}))
	if res.Material != mat {
		t.Fatal("expected the entity material to be used for hits without a material")
	}
}

// Reports hits without a material while exposing one at the entity level.
type materialOverride struct {
	mockEntity
	mat *Material
}

func (e *materialOverride) Material() *Material { return e.mat }

func TestWorldOccluded(t *testing.T) {
	world := NewWorld(nil, DefaultAmbient)
	world.AddEntity(&mockEntity{box: NewAABB(types.Vec3{-1, -1, 5}, types.Vec3{1, 1, 6})})

	ray := NewRay(types.Vec3{}, types.Vec3{0, 0, 1})
	type spec struct {
		maxDist     float32
		expOccluded bool
	}
	specs := []spec{
		{10, true},
		{5.5, true},
		{4.9, false},
	}
	for index, s := range specs {
		if got := world.Occluded(ray, s.maxDist); got != s.expOccluded {
			t.Fatalf("[spec %d] expected occluded to be %t; got %t", index, s.expOccluded, got)
		}
	}

	if world.Occluded(NewRay(types.Vec3{}, types.Vec3{0, 0, -1}), 100) {
		t.Fatal("expected ray pointing away from the entity not to be occluded")
	}
}

func TestWorldBoundingBox(t *testing.T) {
	world := NewWorld(nil, DefaultAmbient)
	world.AddEntity(
		&mockEntity{box: NewAABB(types.Vec3{-1, -1, 5}, types.Vec3{1, 1, 6})},
		&mockEntity{box: NewAABB(types.Vec3{2, 0, -3}, types.Vec3{3, 4, 0})},
	)

	box := world.BoundingBox()
	expMin, expMax := types.Vec3{-1, -1, -3}, types.Vec3{3, 4, 6}
	if box.Min != expMin || box.Max != expMax {
		t.Fatalf("expected world bounds [%v, %v]; got [%v, %v]", expMin, expMax, box.Min, box.Max)
	}
}
