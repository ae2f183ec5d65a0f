package loaders

import (
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/xerrors"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// ErrInvalidScene is wrapped by every scene description error
var ErrInvalidScene = xerrors.New("invalid scene description")

type sceneFile struct {
	Name       string       `toml:"name"`
	Background []float64    `toml:"background"`
	Camera     *cameraDesc  `toml:"camera"`
	Lights     []lightDesc  `toml:"lights"`
	Objects    []objectDesc `toml:"objects"`
}

type cameraDesc struct {
	Position []float64 `toml:"position"`
	LookAt   []float64 `toml:"look_at"`
	Up       []float64 `toml:"up"`
	FOV      float64   `toml:"fov"` // degrees
}

type lightDesc struct {
	Type        string    `toml:"type"`
	Position    []float64 `toml:"position"`
	Color       []float64 `toml:"color"`
	On          *bool     `toml:"on"`
	Direction   []float64 `toml:"direction"`
	FOV         float64   `toml:"fov"`         // degrees
	Attenuation []float64 `toml:"attenuation"` // constant, linear, quadratic
}

type phongDesc struct {
	Ambient   []float64 `toml:"ambient"`
	Diffuse   []float64 `toml:"diffuse"`
	Specular  []float64 `toml:"specular"`
	Shininess float64   `toml:"shininess"`
}

type objectDesc struct {
	Shape    string      `toml:"shape"`
	Center   []float64   `toml:"center"`
	Point    []float64   `toml:"point"`
	Normal   []float64   `toml:"normal"`
	Radius   float64     `toml:"radius"`
	Height   float64     `toml:"height"`
	Axes     []float64   `toml:"axes"`
	Vertices [][]float64 `toml:"vertices"`

	Material string     `toml:"material"`
	Phong    *phongDesc `toml:"phong"`
	Texture  string     `toml:"texture"` // image path, or "checker"
	Checks   int        `toml:"checks"`

	Transparent bool      `toml:"transparent"`
	Color       []float64 `toml:"color"`
	Alpha       float64   `toml:"alpha"`
}

// LoadSceneFile reads a TOML scene description. Texture paths are resolved
// relative to the file. Unknown keys are rejected.
func LoadSceneFile(path string, width, height int) (*scene.Scene, error) {
	var desc sceneFile
	md, err := toml.DecodeFile(path, &desc)
	if err != nil {
		return nil, xerrors.Errorf("while decoding %s: %w", path, err)
	}
	if err := checkUndecoded(md); err != nil {
		return nil, xerrors.Errorf("while decoding %s: %w", path, err)
	}
	if desc.Name == "" {
		desc.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	s, err := desc.build(filepath.Dir(path), width, height)
	if err != nil {
		return nil, xerrors.Errorf("while building %s: %w", path, err)
	}
	return s, nil
}

// ParseScene builds a scene from a TOML description held in memory
func ParseScene(data, baseDir string, width, height int) (*scene.Scene, error) {
	var desc sceneFile
	md, err := toml.Decode(data, &desc)
	if err != nil {
		return nil, xerrors.Errorf("while decoding scene: %w", err)
	}
	if err := checkUndecoded(md); err != nil {
		return nil, err
	}
	return desc.build(baseDir, width, height)
}

func checkUndecoded(md toml.MetaData) error {
	undecoded := md.Undecoded()
	if len(undecoded) == 0 {
		return nil
	}
	keys := make([]string, len(undecoded))
	for i, k := range undecoded {
		keys[i] = k.String()
	}
	return xerrors.Errorf("unknown keys %s: %w", strings.Join(keys, ", "), ErrInvalidScene)
}

func (d *sceneFile) build(baseDir string, width, height int) (*scene.Scene, error) {
	s := scene.New(d.Name)

	if d.Background != nil {
		bg, err := vec3("background", d.Background)
		if err != nil {
			return nil, err
		}
		s.Background = bg
	}

	if d.Camera == nil {
		return nil, xerrors.Errorf("scene file has no [camera] table: %w", scene.ErrNoCamera)
	}
	config, err := d.Camera.config(width, height)
	if err != nil {
		return nil, err
	}
	s.SetCameraConfig(config)

	for i, ld := range d.Lights {
		light, err := ld.light()
		if err != nil {
			return nil, xerrors.Errorf("light %d: %w", i, err)
		}
		s.AddLight(light)
	}

	for i, od := range d.Objects {
		if err := od.add(s, baseDir); err != nil {
			return nil, xerrors.Errorf("object %d (%s): %w", i, od.Shape, err)
		}
	}

	return s, nil
}

func (c *cameraDesc) config(width, height int) (geometry.CameraConfig, error) {
	config := geometry.CameraConfig{
		Up:     core.NewVec3(0, 1, 0),
		VFov:   60,
		Width:  width,
		Height: height,
	}
	var err error
	if config.Position, err = vec3("camera.position", c.Position); err != nil {
		return config, err
	}
	if config.LookAt, err = vec3("camera.look_at", c.LookAt); err != nil {
		return config, err
	}
	if c.Up != nil {
		if config.Up, err = vec3("camera.up", c.Up); err != nil {
			return config, err
		}
	}
	if c.FOV != 0 {
		if c.FOV < 0 || c.FOV >= 180 {
			return config, xerrors.Errorf("camera.fov %v outside (0, 180): %w", c.FOV, ErrInvalidScene)
		}
		config.VFov = c.FOV
	}
	return config, nil
}

func (ld *lightDesc) light() (lights.Light, error) {
	pos, err := vec3("position", ld.Position)
	if err != nil {
		return lights.Light{}, err
	}
	color := material.White
	if ld.Color != nil {
		if color, err = vec3("color", ld.Color); err != nil {
			return lights.Light{}, err
		}
	}

	var light lights.Light
	switch strings.ToLower(ld.Type) {
	case "", "positional", "point":
		light = lights.NewPositionalLight(pos, color)
	case "spot":
		dir, err := vec3("direction", ld.Direction)
		if err != nil {
			return light, err
		}
		fov := ld.FOV
		if fov == 0 {
			fov = 90
		}
		light = lights.NewSpotLight(pos, dir, core.Deg2Rad(fov), color)
	default:
		return light, xerrors.Errorf("light type %q: %w", ld.Type, ErrInvalidScene)
	}

	if ld.On != nil {
		light.On = *ld.On
	}
	if ld.Attenuation != nil {
		a, err := vec3("attenuation", ld.Attenuation)
		if err != nil {
			return light, err
		}
		light.SetAttenuation(lights.AttenuationParams{Constant: a.X, Linear: a.Y, Quadratic: a.Z})
	}
	return light, nil
}

func (od *objectDesc) add(s *scene.Scene, baseDir string) error {
	shape, err := od.shape()
	if err != nil {
		return err
	}

	if od.Transparent {
		color := material.White
		if od.Color != nil {
			if color, err = vec3("color", od.Color); err != nil {
				return err
			}
		}
		s.AddTransparent(shape, color, od.Alpha)
		return nil
	}

	mat, err := od.material()
	if err != nil {
		return err
	}
	tex, err := od.texture(baseDir)
	if err != nil {
		return err
	}
	s.AddOpaque(shape, mat, tex)
	return nil
}

func (od *objectDesc) shape() (geometry.Shape, error) {
	positive := func(name string, v float64) error {
		if v <= 0 {
			return xerrors.Errorf("%s must be positive, got %v: %w", name, v, ErrInvalidScene)
		}
		return nil
	}

	switch strings.ToLower(od.Shape) {
	case "plane":
		point, err := vec3("point", od.Point)
		if err != nil {
			return nil, err
		}
		normal, err := nonZeroVec3("normal", od.Normal)
		if err != nil {
			return nil, err
		}
		return geometry.NewPlane(point, normal), nil

	case "sphere":
		center, err := vec3("center", od.Center)
		if err != nil {
			return nil, err
		}
		if err := positive("radius", od.Radius); err != nil {
			return nil, err
		}
		return geometry.NewSphere(center, od.Radius), nil

	case "ellipsoid":
		center, err := vec3("center", od.Center)
		if err != nil {
			return nil, err
		}
		axes, err := vec3("axes", od.Axes)
		if err != nil {
			return nil, err
		}
		if axes.X <= 0 || axes.Y <= 0 || axes.Z <= 0 {
			return nil, xerrors.Errorf("axes must be positive, got %v: %w", axes, ErrInvalidScene)
		}
		return geometry.NewEllipsoid(center, axes), nil

	case "disk":
		center, err := vec3("center", od.Center)
		if err != nil {
			return nil, err
		}
		normal, err := nonZeroVec3("normal", od.Normal)
		if err != nil {
			return nil, err
		}
		if err := positive("radius", od.Radius); err != nil {
			return nil, err
		}
		return geometry.NewDisk(center, normal, od.Radius), nil

	case "cylinder", "closed_cylinder":
		center, err := vec3("center", od.Center)
		if err != nil {
			return nil, err
		}
		if err := positive("radius", od.Radius); err != nil {
			return nil, err
		}
		if err := positive("height", od.Height); err != nil {
			return nil, err
		}
		if strings.EqualFold(od.Shape, "closed_cylinder") {
			return geometry.NewClosedCylinderY(center, od.Radius, od.Height), nil
		}
		return geometry.NewCylinderY(center, od.Radius, od.Height), nil

	case "triangle":
		if len(od.Vertices) != 3 {
			return nil, xerrors.Errorf("triangle needs 3 vertices, got %d: %w", len(od.Vertices), ErrInvalidScene)
		}
		var v [3]core.Vec3
		for i := range v {
			var err error
			if v[i], err = vec3("vertices", od.Vertices[i]); err != nil {
				return nil, err
			}
		}
		return geometry.NewTriangle(v[0], v[1], v[2]), nil

	default:
		return nil, xerrors.Errorf("shape %q: %w", od.Shape, ErrInvalidScene)
	}
}

func (od *objectDesc) material() (material.Material, error) {
	if od.Phong != nil {
		p := od.Phong
		ambient, err := vec3("phong.ambient", p.Ambient)
		if err != nil {
			return material.Material{}, err
		}
		diffuse, err := vec3("phong.diffuse", p.Diffuse)
		if err != nil {
			return material.Material{}, err
		}
		specular, err := vec3("phong.specular", p.Specular)
		if err != nil {
			return material.Material{}, err
		}
		return material.NewMaterial(ambient, diffuse, specular, p.Shininess), nil
	}

	if od.Material == "" {
		return material.WhitePlastic, nil
	}
	m, ok := material.Lookup(od.Material)
	if !ok {
		return m, xerrors.Errorf("material %q: %w", od.Material, ErrInvalidScene)
	}
	return m, nil
}

func (od *objectDesc) texture(baseDir string) (material.Texture, error) {
	switch od.Texture {
	case "":
		return nil, nil
	case "checker":
		checks := od.Checks
		if checks == 0 {
			checks = 8
		}
		return material.NewCheckerTexture(checks, material.White, material.Black), nil
	}

	path := od.Texture
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}
	tex, err := LoadTexture(path)
	if err != nil {
		return nil, err
	}
	return tex, nil
}

func vec3(name string, v []float64) (core.Vec3, error) {
	if len(v) != 3 {
		return core.Vec3{}, xerrors.Errorf("%s needs 3 components, got %d: %w", name, len(v), ErrInvalidScene)
	}
	return core.NewVec3(v[0], v[1], v[2]), nil
}

func nonZeroVec3(name string, v []float64) (core.Vec3, error) {
	vec, err := vec3(name, v)
	if err != nil {
		return vec, err
	}
	if vec.IsZero() {
		return vec, xerrors.Errorf("%s must be non-zero: %w", name, ErrInvalidScene)
	}
	return vec, nil
}
