package reader

import (
	"fmt"

	"github.com/achilleasa/kdtrace/asset"
	"github.com/achilleasa/kdtrace/scene"
	"github.com/achilleasa/kdtrace/scene/kdtree"
	"github.com/achilleasa/kdtrace/tracer"
)

// A scene loaded from a file: the world to render and the camera to render
// it with.
type Scene struct {
	World  *scene.World
	Camera tracer.Camera
}

// The Reader interface is implemented by all scene readers.
type Reader interface {
	// Read scene definition from a resource.
	Read(*asset.Resource) (*Scene, error)
}

// Read scene from file. Every k-d tree built for the scene uses cfg.
func ReadScene(filename string, cfg kdtree.Config) (*Scene, error) {
	res, err := asset.NewResource(filename, nil)
	if err != nil {
		return nil, err
	}
	defer res.Close()

	// Select reader based on file extension
	var reader Reader
	switch res.Ext() {
	case ".obj":
		reader = newWavefrontReader(cfg)
	default:
		return nil, fmt.Errorf("readScene: unsupported file format %q", res.Ext())
	}
	return reader.Read(res)
}
