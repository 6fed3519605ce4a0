package cmd

import (
	"math"

	"github.com/achilleasa/kdtrace/asset/scene/reader"
	"github.com/achilleasa/kdtrace/light"
	"github.com/achilleasa/kdtrace/material"
	"github.com/achilleasa/kdtrace/scene"
	"github.com/achilleasa/kdtrace/scene/kdtree"
	"github.com/achilleasa/kdtrace/scene/primitive"
	"github.com/achilleasa/kdtrace/tracer"
	"github.com/achilleasa/kdtrace/types"
)

// Build the scene rendered when no scene file is specified: a floor, a few
// spheres and a mirror, a ring of small spheres indexed by a group and a
// pyramid model.
func DemoScene(cfg kdtree.Config) *reader.Scene {
	world := scene.NewWorld(material.NewSkyColor(tracer.FallbackSkyColor), scene.DefaultAmbient)

	floor := primitive.NewBox(
		types.Vec3{-40, -4, 0},
		types.Vec3{40, -3, 120},
		material.NewLambert(types.RGB(200, 200, 190), 0.9, 1, 0.1, 0, 1),
	)
	world.AddEntity(
		floor,
		primitive.NewSphere(types.Vec3{-5, 0, 40}, 3, material.NewLambert(types.RGB(220, 60, 50), 0.8, 1, 0, 0.4, 30)),
		primitive.NewSphere(types.Vec3{5, 0, 45}, 3, material.NewLambert(types.RGB(60, 90, 220), 0.8, 1, 0, 0.4, 30)),
		primitive.NewSphere(types.Vec3{0, 4, 60}, 7, material.NewMirror(types.RGB(240, 240, 240), 0.85)),
	)

	// A ring of small spheres
	ringMat := material.NewLambert(types.RGB(90, 200, 90), 0.8, 1, 0.2, 0.2, 20)
	var ring []scene.Intersectable
	for index := 0; index < 24; index++ {
		angle := 2 * math.Pi * float64(index) / 24
		center := types.Vec3{
			float32(10 * math.Cos(angle)),
			-2.2,
			float32(45 + 10*math.Sin(angle)),
		}
		ring = append(ring, primitive.NewSphere(center, 0.8, ringMat))
	}
	world.AddEntity(primitive.NewGroup("ring", ring, cfg))

	// A square pyramid
	apex := types.Vec3{0, 2, 0}
	base := [4]types.Vec3{{-2, -3, -2}, {2, -3, -2}, {2, -3, 2}, {-2, -3, 2}}
	var triangles []*primitive.Triangle
	for index := range base {
		triangles = append(triangles, primitive.NewTriangle(base[index], base[(index+1)%4], apex))
	}
	triangles = append(triangles,
		primitive.NewTriangle(base[0], base[2], base[1]),
		primitive.NewTriangle(base[0], base[3], base[2]),
	)
	pyramid := primitive.NewModel("pyramid", triangles, material.NewLambert(types.RGB(230, 180, 60), 0.8, 1, 0, 0.3, 40), cfg)
	pyramid.Transform(types.Transform(types.Vec3{-9, 0, 55}, types.Vec3{0, math.Pi / 5, 0}, types.Vec3{1, 1, 1}))
	world.AddEntity(pyramid)

	world.AddLight(
		light.DefaultSun(),
		light.NewPoint(types.Vec3{0, 12, 30}, types.RGB(255, 240, 220), 400, 1),
	)

	camera := tracer.DefaultCamera()
	camera.Position = types.Vec3{0, 1, 0}

	return &reader.Scene{
		World:  world,
		Camera: camera,
	}
}
