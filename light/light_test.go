package light

import (
	"math"
	"testing"

	"github.com/achilleasa/kdtrace/scene"
	"github.com/achilleasa/kdtrace/scene/primitive"
	"github.com/achilleasa/kdtrace/types"
)

func TestDirectional(t *testing.T) {
	l := NewDirectional(types.Vec3{0, -2, 0}, types.Vec3{1, 1, 1}, 1.5)
	if l.Direction != (types.Vec3{0, -1, 0}) {
		t.Fatalf("expected normalized direction; got %v", l.Direction)
	}

	lr := l.Illuminate(types.Vec3{10, 0, 3}, types.Vec3{0, 1, 0})
	if lr.Power != 1.5 || lr.Direction != l.Direction {
		t.Fatalf("expected constant power and direction; got %+v", lr)
	}

	world := scene.NewWorld(nil, scene.DefaultAmbient)
	type spec struct {
		pos        types.Vec3
		normal     types.Vec3
		expVisible bool
	}
	specs := []spec{
		{types.Vec3{}, types.Vec3{0, 1, 0}, true},
		{types.Vec3{}, types.Vec3{0, -1, 0}, false},
		{types.Vec3{}, types.Vec3{1, 0, 0}, false},
	}
	for index, s := range specs {
		if got := l.Visible(s.pos, s.normal, world); got != s.expVisible {
			t.Fatalf("[spec %d] expected visibility to be %t; got %t", index, s.expVisible, got)
		}
	}

	// Block the light
	world.AddEntity(primitive.NewSphere(types.Vec3{0, 50, 0}, 1, nil))
	if l.Visible(types.Vec3{}, types.Vec3{0, 1, 0}, world) {
		t.Fatal("expected occluded point not to see the light")
	}
	if !l.Visible(types.Vec3{5, 0, 0}, types.Vec3{0, 1, 0}, world) {
		t.Fatal("expected point next to the occluder to see the light")
	}
}

func TestPoint(t *testing.T) {
	l := NewPoint(types.Vec3{0, 10, 0}, types.Vec3{1, 1, 1}, 200, 0)
	if l.Attenuation != 1 {
		t.Fatalf("expected non-positive attenuation to be replaced by 1; got %f", l.Attenuation)
	}

	lr := l.Illuminate(types.Vec3{}, types.Vec3{0, 1, 0})
	if math.Abs(float64(lr.Power-2)) > 1e-6 {
		t.Fatalf("expected power 200 / 10^2 = 2; got %f", lr.Power)
	}
	if !lr.Direction.ApproxEqual(types.Vec3{0, -1, 0}, 1e-6) {
		t.Fatalf("expected light to travel towards the surface; got %v", lr.Direction)
	}

	world := scene.NewWorld(nil, scene.DefaultAmbient)
	if !l.Visible(types.Vec3{}, types.Vec3{0, 1, 0}, world) {
		t.Fatal("expected point facing the light to be lit")
	}
	if l.Visible(types.Vec3{}, types.Vec3{0, -1, 0}, world) {
		t.Fatal("expected point facing away from the light not to be lit")
	}

	// Entities behind the light do not cast shadows.
	world.AddEntity(primitive.NewSphere(types.Vec3{0, 20, 0}, 1, nil))
	if !l.Visible(types.Vec3{}, types.Vec3{0, 1, 0}, world) {
		t.Fatal("expected entity behind the light not to occlude it")
	}

	world.AddEntity(primitive.NewSphere(types.Vec3{0, 5, 0}, 1, nil))
	if l.Visible(types.Vec3{}, types.Vec3{0, 1, 0}, world) {
		t.Fatal("expected entity between the surface and the light to occlude it")
	}
}
