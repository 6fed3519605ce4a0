package scene

import "math"

// The ambient factor used by worlds that do not define one.
const DefaultAmbient float32 = 0.15

// The world holds everything needed to shade a frame. It is assembled before
// rendering and treated as read-only while workers trace rays through it.
type World struct {
	Entities []Intersectable
	Lights   []LightSource

	// The material whose first shading component colors rays that miss
	// every entity.
	Sky *Material

	// Scales the base color of every hit surface.
	Ambient float32
}

// Create an empty world.
func NewWorld(sky *Material, ambient float32) *World {
	return &World{
		Sky:     sky,
		Ambient: ambient,
	}
}

// Append entities to the world.
func (w *World) AddEntity(items ...Intersectable) {
	w.Entities = append(w.Entities, items...)
}

// Append lights to the world.
func (w *World) AddLight(lights ...LightSource) {
	w.Lights = append(w.Lights, lights...)
}

// Get the world bounds. The result for a world without entities is undefined.
func (w *World) BoundingBox() AABB {
	return FromEntities(w.Entities)
}

// Find the nearest entity hit by ray. If the hit does not carry a material,
// the material of the top-level entity that reported it is used.
func (w *World) Nearest(ray Ray) ColliderResult {
	var nearest ColliderResult
	nearestDist := float32(math.MaxFloat32)
	for _, entity := range w.Entities {
		res := entity.Collide(ray)
		if !res.Collision {
			continue
		}

		if dist := res.DistanceSq(ray.Origin); dist < nearestDist {
			if res.Material == nil {
				res.Material = entity.Material()
			}
			nearest, nearestDist = res, dist
		}
	}
	return nearest
}

// Check whether any entity intersects ray closer than maxDist.
func (w *World) Occluded(ray Ray, maxDist float32) bool {
	maxDistSq := float64(maxDist) * float64(maxDist)
	for _, entity := range w.Entities {
		res := entity.Collide(ray)
		if res.Collision && float64(res.DistanceSq(ray.Origin)) < maxDistSq {
			return true
		}
	}
	return false
}
