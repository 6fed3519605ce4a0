package types

import (
	"math"
	"testing"
)

func TestTransform(t *testing.T) {
	type spec struct {
		translation Vec3
		rotation    Vec3
		scale       Vec3
		in          Vec3
		exp         Vec3
	}
	specs := []spec{
		{Vec3{}, Vec3{}, Vec3{1, 1, 1}, Vec3{1, 2, 3}, Vec3{1, 2, 3}},
		{Vec3{5, -1, 2}, Vec3{}, Vec3{1, 1, 1}, Vec3{1, 2, 3}, Vec3{6, 1, 5}},
		{Vec3{}, Vec3{}, Vec3{2, 3, 4}, Vec3{1, 1, 1}, Vec3{2, 3, 4}},
		// 90 degrees around Y maps +x to -z
		{Vec3{}, Vec3{0, math.Pi / 2, 0}, Vec3{1, 1, 1}, Vec3{1, 0, 0}, Vec3{0, 0, -1}},
		// Scale is applied before translation
		{Vec3{1, 0, 0}, Vec3{}, Vec3{2, 2, 2}, Vec3{1, 1, 1}, Vec3{3, 2, 2}},
	}

	for index, s := range specs {
		got := Transform(s.translation, s.rotation, s.scale).MulPoint(s.in)
		if !got.ApproxEqual(s.exp, 1e-5) {
			t.Fatalf("[spec %d] expected %v; got %v", index, s.exp, got)
		}
	}
}

func TestMulNormal(t *testing.T) {
	// Non-uniform scaling must keep normals perpendicular to the surface.
	m := Transform(Vec3{}, Vec3{}, Vec3{1, 4, 1})
	n := m.MulNormal(Vec3{1, 1, 0}.Normalize())

	tangent := m.MulPoint(Vec3{1, -1, 0})
	if d := n.Dot(tangent); math.Abs(float64(d)) > 1e-5 {
		t.Fatalf("expected transformed normal to be perpendicular to the transformed tangent; dot = %f", d)
	}
	if math.Abs(float64(n.Len()-1)) > 1e-5 {
		t.Fatalf("expected unit normal; got length %f", n.Len())
	}
}

func TestMul4(t *testing.T) {
	m := Translate4(Vec3{1, 0, 0}).Mul4(Translate4(Vec3{0, 2, 0}))
	got := m.MulPoint(Vec3{})
	if !got.ApproxEqual(Vec3{1, 2, 0}, 1e-6) {
		t.Fatalf("expected (1, 2, 0); got %v", got)
	}

	if p := Ident4().MulPoint(Vec3{3, 4, 5}); p != (Vec3{3, 4, 5}) {
		t.Fatalf("expected identity to leave point unchanged; got %v", p)
	}
}
