package texture

import (
	"math"

	"github.com/achilleasa/kdtrace/asset"
	"github.com/achilleasa/kdtrace/types"
)

// Cubemap faces.
type Face uint8

const (
	PosX Face = iota
	NegX
	PosY
	NegY
	PosZ
	NegZ
)

// The file name (without extension) used for each face when loading a
// cubemap from a folder.
var FaceNames = [6]string{"right", "left", "up", "down", "front", "back"}

// Six textures forming a box around the world.
type Cubemap struct {
	Faces [6]*Texture
}

// Load a cubemap from the folder at path. The folder must contain one image
// per face, named after FaceNames and using the ext file extension. Relative
// paths are resolved against relTo when it is not nil.
func LoadCubemap(path, ext string, relTo *asset.Resource) (*Cubemap, error) {
	cm := &Cubemap{}
	for face, name := range FaceNames {
		res, err := asset.NewResource(path+"/"+name+ext, relTo)
		if err != nil {
			return nil, err
		}

		cm.Faces[face], err = New(res)
		res.Close()
		if err != nil {
			return nil, err
		}
	}
	return cm, nil
}

// Sample the cubemap along dir. The face is selected by the dominant axis
// of dir and the remaining two components are mapped to face coordinates.
func (cm *Cubemap) Sample(dir types.Vec3) types.Vec3 {
	ax := float32(math.Abs(float64(dir[0])))
	ay := float32(math.Abs(float64(dir[1])))
	az := float32(math.Abs(float64(dir[2])))

	var face Face
	var sc, tc, ma float32
	switch {
	case ax >= ay && ax >= az:
		ma = ax
		if dir[0] > 0 {
			face, sc, tc = PosX, -dir[2], -dir[1]
		} else {
			face, sc, tc = NegX, dir[2], -dir[1]
		}
	case ay >= az:
		ma = ay
		if dir[1] > 0 {
			face, sc, tc = PosY, dir[0], dir[2]
		} else {
			face, sc, tc = NegY, dir[0], -dir[2]
		}
	default:
		ma = az
		if dir[2] > 0 {
			face, sc, tc = PosZ, dir[0], -dir[1]
		} else {
			face, sc, tc = NegZ, -dir[0], -dir[1]
		}
	}

	if ma == 0 || cm.Faces[face] == nil {
		return types.Vec3{}
	}
	return cm.Faces[face].Sample((sc/ma+1)*0.5, (tc/ma+1)*0.5)
}
