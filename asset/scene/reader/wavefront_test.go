package reader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/achilleasa/kdtrace/asset"
	"github.com/achilleasa/kdtrace/light"
	"github.com/achilleasa/kdtrace/scene/kdtree"
	"github.com/achilleasa/kdtrace/scene/primitive"
	"github.com/achilleasa/kdtrace/types"
)

func writeSceneFiles(t *testing.T, files map[string]string) string {
	dir := t.TempDir()
	for name, contents := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(contents), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func readStream(t *testing.T, payload string) (*Scene, error) {
	res := asset.NewResourceFromStream("stream.obj", strings.NewReader(payload))
	defer res.Close()
	return newWavefrontReader(kdtree.DefaultConfig()).Read(res)
}

func TestParseVec3(t *testing.T) {
	v, err := parseVec3([]string{"v", "1", "-2.5", "3e2"})
	if err != nil {
		t.Fatal(err)
	}
	exp := types.Vec3{1, -2.5, 300}
	if v != exp {
		t.Fatalf("expected %v; got %v", exp, v)
	}

	expError := `unsupported syntax for "vn"; expected 3 arguments; got 2`
	if _, err = parseVec3([]string{"vn", "1", "2"}); err == nil || err.Error() != expError {
		t.Fatalf("expected error %q; got %v", expError, err)
	}

	if _, err = parseVec3([]string{"v", "1", "foo", "2"}); err == nil {
		t.Fatal("expected an error when parsing a non-numeric coordinate")
	}
}

func TestParseFloats(t *testing.T) {
	out, err := parseFloats([]string{"sphere", "0", "1", "2", "0.5"}, 4)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 4 || out[3] != 0.5 {
		t.Fatalf("unexpected parsed values %v", out)
	}

	expError := `unsupported syntax for "box"; expected 6 arguments; got 3`
	if _, err = parseFloats([]string{"box", "0", "0", "0"}, 6); err == nil || err.Error() != expError {
		t.Fatalf("expected error %q; got %v", expError, err)
	}
}

func TestSelectFaceCoordIndex(t *testing.T) {
	type spec struct {
		token     string
		listLen   int
		relOffset int
		expIndex  int
		expErr    bool
	}
	specs := []spec{
		{"1", 3, 0, 0, false},
		{"3", 3, 0, 2, false},
		{"-1", 3, 0, 2, false},
		{"-3", 3, 0, 0, false},
		{"1", 5, 2, 2, false},
		{"4", 3, 0, -1, true},
		{"-4", 3, 0, -1, true},
		{"0", 3, 0, -1, true},
		{"x", 3, 0, -1, true},
	}

	for index, s := range specs {
		got, err := selectFaceCoordIndex(s.token, s.listLen, s.relOffset)
		if s.expErr {
			if err == nil {
				t.Fatalf("[spec %d] expected an error; got index %d", index, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("[spec %d] unexpected error: %v", index, err)
		}
		if got != s.expIndex {
			t.Fatalf("[spec %d] expected index %d; got %d", index, s.expIndex, got)
		}
	}
}

func TestReadScene(t *testing.T) {
	dir := writeSceneFiles(t, map[string]string{
		"scene.obj": `
# A quad, a sphere and a box
mtllib scene.mtl
camera_eye 0 1 -5
camera_lens 32 18 50
ambient 0.2
sky_color 0.1 0.2 0.3
light_point 0 10 0 1 1 1 100 1

o quad
v -1 0 0
v 1 0 0
v 1 1 0
v -1 1 0
usemtl red
f 1 2 3 4

sphere 0 0 10 1
box 0 0 0 1 1 1
`,
		"scene.mtl": `
newmtl red
Kd 1 0 0
Ks 0.5 0.5 0.5
Ns 40

newmtl mirror
include red
refl 0.9
`,
	})

	sc, err := ReadScene(filepath.Join(dir, "scene.obj"), kdtree.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}

	expPos := types.Vec3{0, 1, -5}
	if sc.Camera.Position != expPos {
		t.Fatalf("expected camera position %v; got %v", expPos, sc.Camera.Position)
	}
	if sc.Camera.LensWidth != 32 || sc.Camera.LensHeight != 18 || sc.Camera.LensDepth != 50 {
		t.Fatalf("unexpected camera lens %+v", sc.Camera)
	}

	world := sc.World
	if world.Ambient != 0.2 {
		t.Fatalf("expected ambient to be 0.2; got %f", world.Ambient)
	}
	if world.Sky == nil {
		t.Fatal("expected sky material to be set")
	}
	if len(world.Lights) != 1 {
		t.Fatalf("expected 1 light; got %d", len(world.Lights))
	}
	if _, isPoint := world.Lights[0].(*light.Point); !isPoint {
		t.Fatalf("expected a point light; got %T", world.Lights[0])
	}

	if len(world.Entities) != 3 {
		t.Fatalf("expected 3 entities; got %d", len(world.Entities))
	}

	model, isModel := world.Entities[0].(*primitive.Model)
	if !isModel {
		t.Fatalf("expected entity 0 to be a model; got %T", world.Entities[0])
	}
	if model.Len() != 2 {
		t.Fatalf("expected quad face to be split into 2 triangles; got %d", model.Len())
	}
	expColor := types.Vec3{1, 0, 0}
	if model.Material().Color != expColor {
		t.Fatalf("expected model color %v; got %v", expColor, model.Material().Color)
	}

	if _, isSphere := world.Entities[1].(*primitive.Sphere); !isSphere {
		t.Fatalf("expected entity 1 to be a sphere; got %T", world.Entities[1])
	}
	if _, isBox := world.Entities[2].(*primitive.Box); !isBox {
		t.Fatalf("expected entity 2 to be a box; got %T", world.Entities[2])
	}
	if world.Entities[1].Material() != model.Material() {
		t.Fatal("expected shapes to share the selected material with the model")
	}
}

func TestGroupedShapesAndDefaultLight(t *testing.T) {
	var payload strings.Builder
	for index := 0; index < GroupThreshold; index++ {
		payload.WriteString("sphere 0 0 ")
		payload.WriteString(strings.Repeat("1", index+1))
		payload.WriteString(" 0.5\n")
	}

	sc, err := readStream(t, payload.String())
	if err != nil {
		t.Fatal(err)
	}

	if len(sc.World.Entities) != 1 {
		t.Fatalf("expected shapes to be grouped into 1 entity; got %d", len(sc.World.Entities))
	}
	group, isGroup := sc.World.Entities[0].(*primitive.Group)
	if !isGroup {
		t.Fatalf("expected a group entity; got %T", sc.World.Entities[0])
	}
	if len(group.Items()) != GroupThreshold {
		t.Fatalf("expected group to contain %d items; got %d", GroupThreshold, len(group.Items()))
	}

	if len(sc.World.Lights) != 1 {
		t.Fatalf("expected the default light to be added; got %d lights", len(sc.World.Lights))
	}
	if _, isDir := sc.World.Lights[0].(*light.Directional); !isDir {
		t.Fatalf("expected a directional light; got %T", sc.World.Lights[0])
	}
}

func TestMeshInstances(t *testing.T) {
	sc, err := readStream(t, `
o tri
v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 3
instance tri 5 0 0 0 0 0 1 1 1
instance tri -5 0 0 0 0 0 2 2 2
`)
	if err != nil {
		t.Fatal(err)
	}

	if len(sc.World.Entities) != 2 {
		t.Fatalf("expected 2 instances; got %d", len(sc.World.Entities))
	}

	type spec struct {
		expMin types.Vec3
		expMax types.Vec3
	}
	specs := []spec{
		{types.Vec3{5, 0, 0}, types.Vec3{6, 1, 0}},
		{types.Vec3{-5, 0, 0}, types.Vec3{-3, 2, 0}},
	}
	for index, s := range specs {
		box := sc.World.Entities[index].BoundingBox()
		if !box.Min.ApproxEqual(s.expMin, 1e-5) || !box.Max.ApproxEqual(s.expMax, 1e-5) {
			t.Fatalf("[spec %d] expected instance bounds [%v, %v]; got [%v, %v]", index, s.expMin, s.expMax, box.Min, box.Max)
		}
	}
}

func TestMaterialSwitchSplitsMesh(t *testing.T) {
	dir := writeSceneFiles(t, map[string]string{
		"split.obj": `
mtllib split.mtl
o obj
v 0 0 0
v 1 0 0
v 0 1 0
v 1 1 0
usemtl a
f 1 2 3
usemtl b
f 2 4 3
`,
		"split.mtl": `
newmtl a
Kd 1 0 0
newmtl b
Kd 0 1 0
`,
	})

	sc, err := ReadScene(filepath.Join(dir, "split.obj"), kdtree.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}

	if len(sc.World.Entities) != 2 {
		t.Fatalf("expected a model for each material; got %d entities", len(sc.World.Entities))
	}
	expNames := []string{"obj", "obj.b"}
	for index, expName := range expNames {
		model := sc.World.Entities[index].(*primitive.Model)
		if model.Name != expName {
			t.Fatalf("[spec %d] expected model name %q; got %q", index, expName, model.Name)
		}
	}
}

func TestReaderErrors(t *testing.T) {
	type spec struct {
		payload  string
		expError string
	}
	specs := []spec{
		{"usemtl missing", `undefined material with name "missing"`},
		{"v 0 0 0\nv 1 0 0\nf 1 2 9", "index out of bounds"},
		{"f 1 2", `unsupported syntax for "f"`},
		{"sphere 0 0 0 -1", "sphere radius must be positive"},
		{"box 0 0 0", `unsupported syntax for "box"`},
		{"instance nope 0 0 0 0 0 0 1 1 1", `unknown mesh with name "nope"`},
		{"light_dir 0 -1 0", `unsupported syntax for "light_dir"`},
		{"o", `unsupported syntax for "o"`},
	}

	for index, s := range specs {
		_, err := readStream(t, s.payload)
		if err == nil || !strings.Contains(err.Error(), s.expError) {
			t.Fatalf("[spec %d] expected error containing %q; got %v", index, s.expError, err)
		}
		if !strings.Contains(err.Error(), "stream.obj") {
			t.Fatalf("[spec %d] expected error to reference the scene file; got %v", index, err)
		}
	}
}

func TestUnsupportedSceneFormat(t *testing.T) {
	sceneFile := filepath.Join(t.TempDir(), "scene.ZIP")
	if err := os.WriteFile(sceneFile, []byte("PK"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := ReadScene(sceneFile, kdtree.DefaultConfig())
	if err == nil || !strings.Contains(err.Error(), `unsupported file format ".zip"`) {
		t.Fatalf("expected an unsupported format error; got %v", err)
	}
}
