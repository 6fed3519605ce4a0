package tracer

import (
	"testing"

	"github.com/achilleasa/kdtrace/types"
)

func TestCameraRay(t *testing.T) {
	cam := DefaultCamera()

	// The center pixel of an odd sized frame looks straight ahead.
	ray := cam.Ray(5, 5, 11, 11)
	if ray.Origin != (types.Vec3{}) {
		t.Fatalf("expected ray to start at the camera; got %v", ray.Origin)
	}
	if !ray.Direction.ApproxEqual(types.Vec3{0, 0, 1}, 1e-6) {
		t.Fatalf("expected center ray to point along +z; got %v", ray.Direction)
	}

	// Row 0 maps to the top of the lens and column 0 to its left edge.
	topLeft := cam.Ray(0, 0, 11, 11)
	if topLeft.Direction[0] >= 0 || topLeft.Direction[1] <= 0 {
		t.Fatalf("expected top-left ray to point up and left; got %v", topLeft.Direction)
	}
	bottomRight := cam.Ray(10, 10, 11, 11)
	if bottomRight.Direction[0] <= 0 || bottomRight.Direction[1] >= 0 {
		t.Fatalf("expected bottom-right ray to point down and right; got %v", bottomRight.Direction)
	}

	// Moving the camera moves the ray origin but not the direction.
	cam.Position = types.Vec3{1, 2, 3}
	moved := cam.Ray(5, 5, 11, 11)
	if moved.Origin != cam.Position || !moved.Direction.ApproxEqual(ray.Direction, 1e-6) {
		t.Fatalf("unexpected ray for moved camera %+v", moved)
	}
}
