package loaders

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/xerrors"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

const fullScene = `
name = "gallery"
background = [0.1, 0.2, 0.3]

[camera]
position = [0, 1, 5]
look_at = [0, 0, 0]
fov = 45

[[lights]]
position = [0, 10, 0]
color = [1, 1, 1]

[[lights]]
type = "spot"
position = [0, 5, 0]
direction = [0, -1, 0]
fov = 60
on = false
attenuation = [1.0, 0.1, 0.01]

[[objects]]
shape = "plane"
point = [0, -1, 0]
normal = [0, 1, 0]
material = "Black Rubber"
texture = "checker"
checks = 4

[[objects]]
shape = "sphere"
center = [0, 0, 0]
radius = 1
material = "chrome"

[[objects]]
shape = "closed_cylinder"
center = [2, 0, 0]
radius = 0.5
height = 2
[objects.phong]
ambient = [0.1, 0.1, 0.1]
diffuse = [0.5, 0.5, 0.5]
specular = [0, 0, 0]
shininess = 10

[[objects]]
shape = "triangle"
vertices = [[0, 0, 0], [1, 0, 0], [0, 1, 0]]

[[objects]]
shape = "disk"
center = [0, 0, 1]
normal = [0, 0, 1]
radius = 2
transparent = true
color = [1, 0, 0]
alpha = 0.25
`

func TestParseScene(t *testing.T) {
	s, err := ParseScene(fullScene, ".", 40, 30)
	if err != nil {
		t.Fatalf("ParseScene failed: %v", err)
	}

	if s.Name != "gallery" {
		t.Errorf("Name = %q, want gallery", s.Name)
	}
	if diff := cmp.Diff(core.NewVec3(0.1, 0.2, 0.3), s.Background); diff != "" {
		t.Errorf("Background mismatch (-want +got):\n%s", diff)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
	wantCam := geometry.CameraConfig{
		Position: core.NewVec3(0, 1, 5),
		LookAt:   core.NewVec3(0, 0, 0),
		Up:       core.NewVec3(0, 1, 0),
		VFov:     45,
		Width:    40,
		Height:   30,
	}
	if diff := cmp.Diff(wantCam, s.CameraConfig); diff != "" {
		t.Errorf("CameraConfig mismatch (-want +got):\n%s", diff)
	}

	ls := s.Lights()
	if len(ls) != 2 {
		t.Fatalf("got %d lights, want 2", len(ls))
	}
	if ls[0].Kind != lights.Positional || !ls[0].On || ls[0].Attenuation {
		t.Errorf("light 0 = %+v, want switched-on positional light without attenuation", ls[0])
	}
	spot := ls[1]
	if spot.Kind != lights.Spot || spot.On || !spot.Attenuation {
		t.Errorf("light 1 = %+v, want switched-off attenuated spot", spot)
	}
	if math.Abs(spot.FOV-math.Pi/3) > 1e-9 {
		t.Errorf("spot FOV = %v, want π/3", spot.FOV)
	}
	wantParams := lights.AttenuationParams{Constant: 1, Linear: 0.1, Quadratic: 0.01}
	if diff := cmp.Diff(wantParams, spot.Params); diff != "" {
		t.Errorf("spot attenuation mismatch (-want +got):\n%s", diff)
	}

	opaque := s.OpaqueObjects()
	if len(opaque) != 4 {
		t.Fatalf("got %d opaque objects, want 4", len(opaque))
	}
	if _, ok := s.Shape(opaque[0].Shape).(*geometry.Plane); !ok {
		t.Errorf("object 0 is %T, want *geometry.Plane", s.Shape(opaque[0].Shape))
	}
	if _, ok := opaque[0].Texture.(*material.CheckerTexture); !ok {
		t.Errorf("object 0 texture is %T, want *material.CheckerTexture", opaque[0].Texture)
	}
	if diff := cmp.Diff(material.BlackRubber, opaque[0].Material); diff != "" {
		t.Errorf("object 0 material mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(material.Chrome, opaque[1].Material); diff != "" {
		t.Errorf("object 1 material mismatch (-want +got):\n%s", diff)
	}
	cyl, ok := s.Shape(opaque[2].Shape).(*geometry.Cylinder)
	if !ok || !cyl.Capped {
		t.Errorf("object 2 = %#v, want capped cylinder", s.Shape(opaque[2].Shape))
	}
	if opaque[2].Material.Shininess != 10 {
		t.Errorf("object 2 shininess = %v, want 10", opaque[2].Material.Shininess)
	}
	if diff := cmp.Diff(material.WhitePlastic, opaque[3].Material); diff != "" {
		t.Errorf("default material mismatch (-want +got):\n%s", diff)
	}
	if opaque[3].Texture != nil {
		t.Errorf("object 3 texture = %v, want nil", opaque[3].Texture)
	}

	transparent := s.TransparentObjects()
	if len(transparent) != 1 {
		t.Fatalf("got %d transparent objects, want 1", len(transparent))
	}
	if transparent[0].Alpha != 0.25 {
		t.Errorf("transparent alpha = %v, want 0.25", transparent[0].Alpha)
	}
}

func TestParseSceneErrors(t *testing.T) {
	const camera = "[camera]\nposition = [0, 0, 5]\nlook_at = [0, 0, 0]\n"

	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"no camera", `name = "x"`, scene.ErrNoCamera},
		{"unknown key", camera + "colour = 3\n", ErrInvalidScene},
		{"unknown object key", camera + "[[objects]]\nshape = \"sphere\"\ncenter = [0,0,0]\nradius = 1\nradiu = 2\n", ErrInvalidScene},
		{"unknown shape", camera + "[[objects]]\nshape = \"torus\"\n", ErrInvalidScene},
		{"bad vector", camera + "[[objects]]\nshape = \"sphere\"\ncenter = [0, 0]\nradius = 1\n", ErrInvalidScene},
		{"negative radius", camera + "[[objects]]\nshape = \"sphere\"\ncenter = [0,0,0]\nradius = -1\n", ErrInvalidScene},
		{"zero normal", camera + "[[objects]]\nshape = \"plane\"\npoint = [0,0,0]\nnormal = [0,0,0]\n", ErrInvalidScene},
		{"unknown material", camera + "[[objects]]\nshape = \"sphere\"\ncenter = [0,0,0]\nradius = 1\nmaterial = \"cheese\"\n", ErrInvalidScene},
		{"triangle vertices", camera + "[[objects]]\nshape = \"triangle\"\nvertices = [[0,0,0], [1,0,0]]\n", ErrInvalidScene},
		{"light type", camera + "[[lights]]\ntype = \"area\"\nposition = [0,1,0]\n", ErrInvalidScene},
		{"camera fov", "[camera]\nposition = [0, 0, 5]\nlook_at = [0, 0, 0]\nfov = 180\n", ErrInvalidScene},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScene(tt.input, ".", 10, 10)
			if !xerrors.Is(err, tt.want) {
				t.Errorf("ParseScene error = %v, want %v", err, tt.want)
			}
		})
	}

	if _, err := ParseScene("camera = [", ".", 10, 10); err == nil {
		t.Error("ParseScene(malformed TOML) succeeded, want error")
	}
}

func TestLoadSceneFile(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, dir, "tex.png", testImage())
	desc := `
[camera]
position = [0, 0, 5]
look_at = [0, 0, 0]

[[objects]]
shape = "ellipsoid"
center = [0, 0, 0]
axes = [1, 2, 1]
texture = "tex.png"
`
	path := filepath.Join(dir, "room.toml")
	if err := os.WriteFile(path, []byte(desc), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := LoadSceneFile(path, 16, 16)
	if err != nil {
		t.Fatalf("LoadSceneFile failed: %v", err)
	}
	if s.Name != "room" {
		t.Errorf("Name = %q, want name derived from file", s.Name)
	}
	objs := s.OpaqueObjects()
	if len(objs) != 1 {
		t.Fatalf("got %d objects, want 1", len(objs))
	}
	tex, ok := objs[0].Texture.(*material.ImageTexture)
	if !ok || tex.Width != 2 || tex.Height != 2 {
		t.Errorf("texture = %#v, want 2x2 image texture", objs[0].Texture)
	}

	if _, err := LoadSceneFile(filepath.Join(dir, "missing.toml"), 16, 16); !xerrors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadSceneFile(missing) error = %v, want os.ErrNotExist", err)
	}
}

func TestResolveScene(t *testing.T) {
	dir := t.TempDir()
	desc := "[camera]\nposition = [0, 0, 5]\nlook_at = [0, 0, 0]\n"
	if err := os.WriteFile(filepath.Join(dir, "empty-room.toml"), []byte(desc), 0o644); err != nil {
		t.Fatal(err)
	}

	oldDirs := scene.ScenesDirs
	scene.ScenesDirs = []string{dir}
	defer func() { scene.ScenesDirs = oldDirs }()

	tests := []struct {
		id       string
		wantName string
		wantErr  error
	}{
		{id: "default", wantName: "default"},
		{id: "file:empty-room", wantName: "empty-room"},
		{id: filepath.Join(dir, "empty-room.toml"), wantName: "empty-room"},
		{id: "file:missing", wantErr: scene.ErrUnknownScene},
		{id: "no-such-scene", wantErr: scene.ErrUnknownScene},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			s, err := ResolveScene(tt.id, 8, 8)
			if tt.wantErr != nil {
				if !xerrors.Is(err, tt.wantErr) {
					t.Errorf("ResolveScene(%q) error = %v, want %v", tt.id, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveScene(%q) failed: %v", tt.id, err)
			}
			if s.Name != tt.wantName {
				t.Errorf("ResolveScene(%q).Name = %q, want %q", tt.id, s.Name, tt.wantName)
			}
		})
	}
}
