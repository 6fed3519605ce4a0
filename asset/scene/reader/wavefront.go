package reader

import (
	"bufio"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/achilleasa/kdtrace/asset"
	"github.com/achilleasa/kdtrace/asset/texture"
	"github.com/achilleasa/kdtrace/light"
	"github.com/achilleasa/kdtrace/log"
	"github.com/achilleasa/kdtrace/material"
	"github.com/achilleasa/kdtrace/scene"
	"github.com/achilleasa/kdtrace/scene/kdtree"
	"github.com/achilleasa/kdtrace/scene/primitive"
	"github.com/achilleasa/kdtrace/tracer"
	"github.com/achilleasa/kdtrace/types"
)

// Spheres and boxes declared in a scene file are indexed by a shared group
// once there are at least this many of them.
const GroupThreshold = 8

type wavefrontMaterial struct {
	Name string

	// Diffuse/base color.
	Kd types.Vec3

	// Specular color. Its max component is used as the phong mix factor.
	Ks types.Vec3

	// Specular exponent.
	Ns float32

	// Diffuse albedo.
	Albedo float32

	// Reflection mix factor.
	Refl float32

	mat *scene.Material
}

func newWavefrontMaterial(name string) *wavefrontMaterial {
	return &wavefrontMaterial{
		Name:   name,
		Kd:     types.Vec3{0.7, 0.7, 0.7},
		Ks:     types.Vec3{0.1, 0.1, 0.1},
		Ns:     20,
		Albedo: 0.8,
	}
}

// Get the scene material for this wavefront material. The material is
// created on first use and shared by every entity referencing it.
func (wf *wavefrontMaterial) Material() *scene.Material {
	if wf.mat == nil {
		wf.mat = material.NewLambert(wf.Kd, wf.Albedo, 1, wf.Refl, wf.Ks.MaxComponent(), wf.Ns)
	}
	return wf.mat
}

// A list of triangles sharing the same object name and material.
type parsedMesh struct {
	name      string
	object    string
	material  *wavefrontMaterial
	triangles []*primitive.Triangle

	model *primitive.Model
}

type wavefrontSceneReader struct {
	logger log.Logger
	cfg    kdtree.Config

	// The parsed scene.
	scene *Scene

	// Parsed meshes, mesh instances and analytic shapes.
	meshes    []*parsedMesh
	instances []*primitive.Model
	shapes    []scene.Intersectable

	// A map of material names to parsed wavefront materials
	matNameToIndex map[string]int

	// Currently selected material.
	curMaterial *wavefrontMaterial

	// Parsed wavefront materials.
	materials []*wavefrontMaterial

	// List of vertices and normals. Texture coordinates are validated but
	// not stored.
	vertexList []types.Vec3
	normalList []types.Vec3
	uvCount    int

	// An error stack that provides additional error information when
	// scene files include other files (models, mat libs e.t.c)
	errStack []string
}

// Create a new text scene reader.
func newWavefrontReader(cfg kdtree.Config) *wavefrontSceneReader {
	return &wavefrontSceneReader{
		logger: log.New("wavefront scene reader"),
		cfg:    cfg,
		scene: &Scene{
			World:  scene.NewWorld(nil, scene.DefaultAmbient),
			Camera: tracer.DefaultCamera(),
		},
		matNameToIndex: make(map[string]int),
	}
}

// Read scene definition.
func (r *wavefrontSceneReader) Read(sceneRes *asset.Resource) (*Scene, error) {
	r.logger.Noticef(`parsing scene from "%s"`, sceneRes.Path())
	start := time.Now()

	err := r.parse(sceneRes)
	if err != nil {
		return nil, err
	}

	world := r.scene.World

	// If no mesh instances are defined, add every defined mesh as is
	if len(r.instances) == 0 {
		for _, mesh := range r.meshes {
			world.AddEntity(r.meshModel(mesh))
		}
	} else {
		for _, inst := range r.instances {
			world.AddEntity(inst)
		}
	}

	if len(r.shapes) >= GroupThreshold {
		world.AddEntity(primitive.NewGroup("shapes", r.shapes, r.cfg))
	} else {
		world.AddEntity(r.shapes...)
	}

	if len(world.Lights) == 0 {
		r.logger.Info("no lights defined; adding default sun light")
		world.AddLight(light.DefaultSun())
	}
	if len(world.Entities) == 0 {
		r.logger.Warning("scene does not define any entities")
	}

	r.logger.Noticef(
		"parsed scene in %d ms: %d entities, %d lights",
		time.Since(start).Nanoseconds()/1e6, len(world.Entities), len(world.Lights),
	)
	return r.scene, nil
}

// Get the model for a parsed mesh, building it on first use.
func (r *wavefrontSceneReader) meshModel(mesh *parsedMesh) *primitive.Model {
	if mesh.model == nil {
		mesh.model = primitive.NewModel(mesh.name, mesh.triangles, mesh.material.Material(), r.cfg)
	}
	return mesh.model
}

// Generate an error message that also includes any data in the error stack.
func (r *wavefrontSceneReader) emitError(file string, line int, msgFormat string, args ...interface{}) error {
	msg := fmt.Sprintf(msgFormat, args...)

	var errMsg string
	if file != "" {
		errMsg = strings.Trim(
			fmt.Sprintf("[%s: %d] error: %s\n%s", file, line, msg, strings.Join(r.errStack, "\n")),
			"\n",
		)
	} else {
		errMsg = strings.Trim(
			fmt.Sprintf("error: %s\n%s", msg, strings.Join(r.errStack, "\n")),
			"\n",
		)
	}

	return fmt.Errorf("%s", errMsg)
}

// Push a frame to the error stack.
func (r *wavefrontSceneReader) pushFrame(msg string) {
	r.errStack = append([]string{msg}, r.errStack...)
}

// Pop a frame from the error stack.
func (r *wavefrontSceneReader) popFrame() {
	r.errStack = r.errStack[1:]
}

// Select the default material, creating it if needed.
func (r *wavefrontSceneReader) defaultMaterial() *wavefrontMaterial {
	matName := ""

	matIndex, exists := r.matNameToIndex[matName]
	if !exists {
		r.materials = append(r.materials, newWavefrontMaterial(matName))
		matIndex = len(r.materials) - 1
		r.matNameToIndex[matName] = matIndex
	}
	r.curMaterial = r.materials[matIndex]
	return r.curMaterial
}

// Get the mesh that receives the next face. Since a model uses a single
// material, switching materials in the middle of an object starts a new mesh.
func (r *wavefrontSceneReader) currentMesh() *parsedMesh {
	if r.curMaterial == nil {
		r.defaultMaterial()
	}

	lastMeshIndex := len(r.meshes) - 1
	if lastMeshIndex < 0 {
		r.meshes = append(r.meshes, &parsedMesh{name: "default", object: "default", material: r.curMaterial})
		return r.meshes[0]
	}

	mesh := r.meshes[lastMeshIndex]
	if len(mesh.triangles) == 0 {
		mesh.material = r.curMaterial
	}
	if mesh.material == r.curMaterial {
		return mesh
	}

	mesh = &parsedMesh{
		name:     mesh.object + "." + r.curMaterial.Name,
		object:   mesh.object,
		material: r.curMaterial,
	}
	r.meshes = append(r.meshes, mesh)
	return mesh
}

// Get the material for analytic shapes.
func (r *wavefrontSceneReader) shapeMaterial() *scene.Material {
	if r.curMaterial == nil {
		r.defaultMaterial()
	}
	return r.curMaterial.Material()
}

// Parse wavefront object scene format.
func (r *wavefrontSceneReader) parse(res *asset.Resource) error {
	var lineNum int = 0
	var err error

	// The main obj file may include (call) several other object files. Each
	// object file contains 1-based indices (when they are positive). By
	// tracking the current vertex/normal offsets we can apply them
	// while parsing faces to select the correct coordinates.
	relVertexOffset := len(r.vertexList)
	relNormalOffset := len(r.normalList)
	relUvOffset := r.uvCount

	world := r.scene.World
	camera := &r.scene.Camera

	scanner := bufio.NewScanner(res)
	for scanner.Scan() {
		lineNum++
		lineTokens := strings.Fields(scanner.Text())
		if len(lineTokens) == 0 || strings.HasPrefix(lineTokens[0], "#") {
			continue
		}

		switch lineTokens[0] {
		case "call", "mtllib":
			if len(lineTokens) != 2 {
				return r.emitError(res.Path(), lineNum, `unsupported syntax for "%s"; expected 1 argument; got %d`, lineTokens[0], len(lineTokens)-1)
			}

			r.pushFrame(fmt.Sprintf("referenced from %s:%d [%s]", res.Path(), lineNum, lineTokens[0]))

			incRes, err := asset.NewResource(lineTokens[1], res)
			if err != nil {
				return r.emitError(res.Path(), lineNum, err.Error())
			}

			switch lineTokens[0] {
			case "call":
				err = r.parse(incRes)
			case "mtllib":
				err = r.parseMaterials(incRes)
			}
			incRes.Close()

			if err != nil {
				return err
			}
			r.popFrame()
		case "usemtl":
			if len(lineTokens) != 2 {
				return r.emitError(res.Path(), lineNum, `unsupported syntax for "usemtl"; expected 1 argument; got %d`, len(lineTokens)-1)
			}

			matIndex, exists := r.matNameToIndex[lineTokens[1]]
			if !exists {
				return r.emitError(res.Path(), lineNum, `undefined material with name "%s"`, lineTokens[1])
			}
			r.curMaterial = r.materials[matIndex]
		case "v":
			v, err := parseVec3(lineTokens)
			if err != nil {
				return r.emitError(res.Path(), lineNum, err.Error())
			}
			r.vertexList = append(r.vertexList, v)
		case "vn":
			v, err := parseVec3(lineTokens)
			if err != nil {
				return r.emitError(res.Path(), lineNum, err.Error())
			}
			r.normalList = append(r.normalList, v.Normalize())
		case "vt":
			r.uvCount++
		case "g", "o":
			if len(lineTokens) < 2 {
				return r.emitError(res.Path(), lineNum, `unsupported syntax for "%s"; expected 1 argument for object name; got %d`, lineTokens[0], len(lineTokens)-1)
			}

			r.verifyLastParsedMesh()
			r.meshes = append(r.meshes, &parsedMesh{name: lineTokens[1], object: lineTokens[1]})
		case "f":
			triangles, err := r.parseFace(lineTokens, relVertexOffset, relUvOffset, relNormalOffset)
			if err != nil {
				return r.emitError(res.Path(), lineNum, err.Error())
			}

			mesh := r.currentMesh()
			mesh.triangles = append(mesh.triangles, triangles...)
		case "camera_eye":
			camera.Position, err = parseVec3(lineTokens)
		case "camera_lens":
			var args []float32
			if args, err = parseFloats(lineTokens, 3); err == nil {
				camera.LensWidth, camera.LensHeight, camera.LensDepth = args[0], args[1], args[2]
			}
		case "ambient":
			world.Ambient, err = parseFloat32(lineTokens)
		case "sky_color":
			var c types.Vec3
			if c, err = parseVec3(lineTokens); err == nil {
				world.Sky = material.NewSkyColor(c)
			}
		case "sky_cubemap":
			if len(lineTokens) < 2 || len(lineTokens) > 3 {
				return r.emitError(res.Path(), lineNum, `unsupported syntax for "sky_cubemap"; expected 1 or 2 arguments: folder [extension]; got %d`, len(lineTokens)-1)
			}

			ext := ".png"
			if len(lineTokens) == 3 {
				ext = lineTokens[2]
			}

			var cm *texture.Cubemap
			if cm, err = texture.LoadCubemap(lineTokens[1], ext, res); err == nil {
				world.Sky = material.NewSky(cm)
			}
		case "light_dir":
			var args []float32
			if args, err = parseFloats(lineTokens, 7); err == nil {
				world.AddLight(light.NewDirectional(
					types.Vec3{args[0], args[1], args[2]},
					types.Vec3{args[3], args[4], args[5]},
					args[6],
				))
			}
		case "light_point":
			var args []float32
			if args, err = parseFloats(lineTokens, 8); err == nil {
				world.AddLight(light.NewPoint(
					types.Vec3{args[0], args[1], args[2]},
					types.Vec3{args[3], args[4], args[5]},
					args[6], args[7],
				))
			}
		case "sphere":
			var args []float32
			if args, err = parseFloats(lineTokens, 4); err == nil {
				if args[3] <= 0 {
					return r.emitError(res.Path(), lineNum, "sphere radius must be positive; got %v", args[3])
				}
				r.shapes = append(r.shapes, primitive.NewSphere(types.Vec3{args[0], args[1], args[2]}, args[3], r.shapeMaterial()))
			}
		case "box":
			var args []float32
			if args, err = parseFloats(lineTokens, 6); err == nil {
				r.shapes = append(r.shapes, primitive.NewBox(
					types.Vec3{args[0], args[1], args[2]},
					types.Vec3{args[3], args[4], args[5]},
					r.shapeMaterial(),
				))
			}
		case "instance":
			var instance *primitive.Model
			if instance, err = r.parseMeshInstance(lineTokens); err == nil {
				r.instances = append(r.instances, instance)
			}
		}

		if err != nil {
			return r.emitError(res.Path(), lineNum, err.Error())
		}
	}

	r.verifyLastParsedMesh()
	return scanner.Err()
}

// Drop the last parsed mesh if it contains no polygons.
func (r *wavefrontSceneReader) verifyLastParsedMesh() {
	lastMeshIndex := len(r.meshes) - 1
	if lastMeshIndex >= 0 && len(r.meshes[lastMeshIndex].triangles) == 0 {
		r.logger.Warningf(`dropping mesh "%s" as it contains no polygons`, r.meshes[lastMeshIndex].name)
		r.meshes = r.meshes[:lastMeshIndex]
	}
}

// Parse mesh instance definition. Definitions use the following format:
// instance mesh_name tX tY tZ yaw pitch roll sX sY sZ
// where:
// - tX, tY, tZ       : translation vector
// - yaw, pitch, roll : rotation angles in degrees
// - sX, sY, sZ	      : scale
func (r *wavefrontSceneReader) parseMeshInstance(lineTokens []string) (*primitive.Model, error) {
	if len(lineTokens) != 11 {
		return nil, fmt.Errorf(`unsupported syntax for "instance"; expected 10 arguments: mesh_name tX tY tZ yaw pitch roll sX sY sZ; got %d`, len(lineTokens)-1)
	}

	// Find mesh by name
	meshName := lineTokens[1]
	var mesh *parsedMesh
	for _, candidate := range r.meshes {
		if candidate.name == meshName {
			mesh = candidate
			break
		}
	}
	if mesh == nil {
		return nil, fmt.Errorf(`unknown mesh with name "%s"`, meshName)
	}

	args, err := parseFloats(lineTokens[1:], 9)
	if err != nil {
		return nil, err
	}

	translation := types.Vec3{args[0], args[1], args[2]}
	rotation := types.Vec3{args[3], args[4], args[5]}.Mul(math.Pi / 180.0)
	scale := types.Vec3{args[6], args[7], args[8]}

	inst := r.meshModel(mesh).Clone(fmt.Sprintf("%s#%d", meshName, len(r.instances)))
	inst.Transform(types.Transform(translation, rotation, scale))
	return inst, nil
}

// Parse face definition. Each face definitions consists of 3 arguments,
// one for each vertex. Each one of the vertex arguments is comprised of
// 1, 2 or 3 args separated by a slash character. The following formats are
// supported:
// - vertexIndex
// - vertexIndex/uvIndex
// - vertexIndex//normalIndex
// - vertexIndex/uvIndex/normalIndex
//
// Indices start from 1 and may be negative to indicate
// an offset off the end of the vertex/uv list.
//
// This method only works with triangular/quad faces and will return an error if a
// face with more than 4 vertices is encountered.
func (r *wavefrontSceneReader) parseFace(lineTokens []string, relVertexOffset, relUvOffset, relNormalOffset int) ([]*primitive.Triangle, error) {
	if len(lineTokens) < 4 || len(lineTokens) > 5 {
		return nil, fmt.Errorf(`unsupported syntax for "f"; expected 3 arguments for triangular face or 4 arguments for a quad face; got %d. Select the triangulation option in your exporter`, len(lineTokens)-1)
	}

	var vertices [4]types.Vec3
	var normals [4]types.Vec3
	var vOffset int
	var err error
	expIndices := 0
	hasNormals := false
	for arg := 0; arg < len(lineTokens)-1; arg++ {
		vTokens := strings.Split(lineTokens[arg+1], "/")

		// The first arg defines the format for the following args
		if arg == 0 {
			expIndices = len(vTokens)
		} else if len(vTokens) != expIndices {
			return nil, fmt.Errorf("expected each face argument to contain %d indices; arg %d contains %d indices", expIndices, arg, len(vTokens))
		}

		// Faces must at least define a vertex coord
		if vTokens[0] == "" {
			return nil, fmt.Errorf("face argument %d does not include a vertex index", arg)
		}

		vOffset, err = selectFaceCoordIndex(vTokens[0], len(r.vertexList), relVertexOffset)
		if err != nil {
			return nil, fmt.Errorf("could not parse vertex coord for face argument %d: %s", arg, err.Error())
		}
		vertices[arg] = r.vertexList[vOffset]

		if expIndices > 1 && vTokens[1] != "" {
			if _, err = selectFaceCoordIndex(vTokens[1], r.uvCount, relUvOffset); err != nil {
				return nil, fmt.Errorf("could not parse tex coord for face argument %d: %s", arg, err.Error())
			}
		}

		if expIndices > 2 && vTokens[2] != "" {
			vOffset, err = selectFaceCoordIndex(vTokens[2], len(r.normalList), relNormalOffset)
			if err != nil {
				return nil, fmt.Errorf("could not parse normal coord for face argument %d: %s", arg, err.Error())
			}
			normals[arg] = r.normalList[vOffset]
			hasNormals = true
		}
	}

	// Assemble vertices into one or two triangles depending on whether we are parsing a triangular or a quad face
	indiceList := [][3]int{{0, 1, 2}}
	if len(lineTokens) == 5 {
		indiceList = append(indiceList, [3]int{0, 2, 3})
	}

	triangles := make([]*primitive.Triangle, 0, len(indiceList))
	for _, indices := range indiceList {
		var triVerts, triNormals [3]types.Vec3
		for triIndex, selectIndex := range indices {
			triVerts[triIndex] = vertices[selectIndex]
			triNormals[triIndex] = normals[selectIndex]
		}

		if hasNormals {
			triangles = append(triangles, primitive.NewSmoothTriangle(triVerts, triNormals))
		} else {
			triangles = append(triangles, primitive.NewTriangle(triVerts[0], triVerts[1], triVerts[2]))
		}
	}

	return triangles, nil
}

// Parse a wavefront material library.
func (r *wavefrontSceneReader) parseMaterials(res *asset.Resource) error {
	var lineNum int = 0
	var err error

	r.logger.Infof(`parsing material library "%s"`, res.Path())

	scanner := bufio.NewScanner(res)

	var curMaterial *wavefrontMaterial = nil
	var matName string = ""

	for scanner.Scan() {
		lineNum++
		lineTokens := strings.Fields(scanner.Text())
		if len(lineTokens) == 0 || strings.HasPrefix(lineTokens[0], "#") {
			continue
		}

		switch lineTokens[0] {
		case "newmtl":
			if len(lineTokens) != 2 {
				return r.emitError(res.Path(), lineNum, `unsupported syntax for "newmtl"; expected 1 argument; got %d`, len(lineTokens)-1)
			}

			matName = lineTokens[1]
			if _, exists := r.matNameToIndex[matName]; exists {
				return r.emitError(res.Path(), lineNum, `material "%s" already defined`, matName)
			}

			// Allocate new material and add it to library
			curMaterial = newWavefrontMaterial(matName)
			r.materials = append(r.materials, curMaterial)
			r.matNameToIndex[matName] = len(r.materials) - 1
		default:
			if curMaterial == nil {
				return r.emitError(res.Path(), lineNum, `got "%s" without a "newmtl"`, lineTokens[0])
			}

			switch lineTokens[0] {
			case "include":
				if len(lineTokens) < 2 {
					return r.emitError(res.Path(), lineNum, `unsupported syntax for "%s"; expected 1 argument; got %d`, lineTokens[0], len(lineTokens)-1)
				}

				baseMaterialIndex, exists := r.matNameToIndex[lineTokens[1]]
				if !exists {
					return r.emitError(res.Path(), lineNum, `could not include unknown material "%s"`, lineTokens[1])
				}

				// Overwrite material but keep the original name
				*curMaterial = *r.materials[baseMaterialIndex]
				curMaterial.Name = matName
				curMaterial.mat = nil
			case "Kd":
				curMaterial.Kd, err = parseVec3(lineTokens)
			case "Ks":
				curMaterial.Ks, err = parseVec3(lineTokens)
			case "Ns":
				curMaterial.Ns, err = parseFloat32(lineTokens)
			case "albedo":
				curMaterial.Albedo, err = parseFloat32(lineTokens)
			case "refl":
				curMaterial.Refl, err = parseFloat32(lineTokens)
			}

			// Report any errors
			if err != nil {
				return r.emitError(res.Path(), lineNum, err.Error())
			}
		}
	}

	return scanner.Err()
}

// Given an index for a face coord type (vertex, normal, tex) calculate the
// proper offset into the coord list. Wavefront format can also use negative
// indices to reference elements from the end of the coord list.
func selectFaceCoordIndex(indexToken string, coordListLen int, relOffset int) (int, error) {
	index, err := strconv.ParseInt(indexToken, 10, 32)
	if err != nil {
		return -1, err
	}

	var vOffset int = 0
	if index < 0 {
		vOffset = coordListLen + int(index)
	} else {
		vOffset = relOffset + int(index-1)
	}
	if vOffset < 0 || vOffset >= coordListLen {
		return -1, fmt.Errorf("index out of bounds")
	}
	return vOffset, nil
}

// Parse a float scalar value.
func parseFloat32(lineTokens []string) (float32, error) {
	if len(lineTokens) < 2 {
		return 0, fmt.Errorf(`unsupported syntax for "%s"; expected 1 argument; got %d`, lineTokens[0], len(lineTokens)-1)
	}

	val, err := strconv.ParseFloat(lineTokens[1], 32)
	if err != nil {
		return 0, err
	}

	return float32(val), nil
}

// Parse a Vec3 row.
func parseVec3(lineTokens []string) (types.Vec3, error) {
	if len(lineTokens) < 4 {
		return types.Vec3{}, fmt.Errorf(`unsupported syntax for "%s"; expected 3 arguments; got %d`, lineTokens[0], len(lineTokens)-1)
	}

	v := types.Vec3{}
	for tokIdx := 1; tokIdx <= 3; tokIdx++ {
		coord, err := strconv.ParseFloat(lineTokens[tokIdx], 32)
		if err != nil {
			return v, err
		}
		v[tokIdx-1] = float32(coord)
	}
	return v, nil
}

// Parse a directive with exactly count float arguments.
func parseFloats(lineTokens []string, count int) ([]float32, error) {
	if len(lineTokens)-1 != count {
		return nil, fmt.Errorf(`unsupported syntax for "%s"; expected %d arguments; got %d`, lineTokens[0], count, len(lineTokens)-1)
	}

	out := make([]float32, count)
	for index := range out {
		v, err := strconv.ParseFloat(lineTokens[index+1], 32)
		if err != nil {
			return nil, err
		}
		out[index] = float32(v)
	}
	return out, nil
}
