package material

import (
	"github.com/achilleasa/kdtrace/asset/texture"
	"github.com/achilleasa/kdtrace/scene"
	"github.com/achilleasa/kdtrace/types"
)

// Create a material from a base color and a list of shading components.
func New(color types.Vec3, shaders ...scene.Shadable) *scene.Material {
	return &scene.Material{
		Color:   color,
		Shaders: shaders,
	}
}

// Create a general purpose material. The lambert, reflective and phong
// arguments are the mix factors of the respective components; components
// with a zero mix factor other than the diffuse one are omitted.
func NewLambert(color types.Vec3, albedo, lambert, reflective, phong, alpha float32) *scene.Material {
	shaders := []scene.Shadable{
		&Lambert{Color: color, Albedo: albedo, Mix: lambert},
	}
	if phong > 0 {
		shaders = append(shaders, &Phong{Alpha: alpha, Mix: phong})
	}
	if reflective > 0 {
		shaders = append(shaders, &Reflection{Mix: reflective})
	}
	return New(color, shaders...)
}

// Create a purely diffuse material.
func NewDiffuse(color types.Vec3, albedo float32) *scene.Material {
	return New(color, &Lambert{Color: color, Albedo: albedo, Mix: 1})
}

// Create a mirror material.
func NewMirror(color types.Vec3, reflective float32) *scene.Material {
	return New(color, &Reflection{Mix: reflective})
}

// Create a sky material with a constant color.
func NewSkyColor(color types.Vec3) *scene.Material {
	return New(color, &SolidColor{Color: color, Mix: 1})
}

// Create a sky material that samples a cubemap.
func NewSky(cubemap *texture.Cubemap) *scene.Material {
	return New(types.Vec3{}, &Cubemap{Map: cubemap, Mix: 1})
}
