package scene

import (
	"math"
	"sort"

	"golang.org/x/xerrors"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// ErrUnknownScene is returned when a built-in scene name is not registered
var ErrUnknownScene = xerrors.New("unknown scene")

// ClearPlaneTag names the animated transparent plane of the default scene
const ClearPlaneTag = "clear-plane"

// Transparent plane sweep range of the default scene
const (
	ClearPlaneMinZ = -10.0
	ClearPlaneMaxZ = 4.0
)

type builtin struct {
	description string
	build       func(width, height int) *Scene
	animate     func(s *Scene) Animator
}

var builtins = map[string]builtin{
	"default": {
		description: "Reflective spheres, a textured cylinder and a translucent red plane lit by a spot light",
		build:       NewDefaultScene,
		animate: func(s *Scene) Animator {
			id, _ := s.Tagged(ClearPlaneTag)
			return NewPlaneSweep(id, ClearPlaneMinZ, ClearPlaneMinZ, ClearPlaneMaxZ, 0.8)
		},
	},
	"intersections": {
		description: "Planes, disks, spheres and an ellipsoid used to check intersection tests",
		build:       NewIntersectionsScene,
	},
	"textures": {
		description: "Textured cylinders and disks seen from an orbiting camera",
		build:       NewTexturesScene,
		animate: func(s *Scene) Animator {
			return NewOrbit(s.CameraConfig, 12, 0.5, 5)
		},
	},
	"spotlight": {
		description: "A narrow spot light over a floor and a row of spheres",
		build:       NewSpotlightScene,
	},
}

// Names returns the registered built-in scene names in sorted order
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Build constructs a built-in scene for an image of width x height pixels
func Build(name string, width, height int) (*Scene, error) {
	b, ok := builtins[name]
	if !ok {
		return nil, xerrors.Errorf("while building %q: %w", name, ErrUnknownScene)
	}
	return b.build(width, height), nil
}

// NewAnimator returns the per-frame animation of a built-in scene, or nil
// when the scene is static.
func NewAnimator(name string, s *Scene) Animator {
	b, ok := builtins[name]
	if !ok || b.animate == nil {
		return nil
	}
	return b.animate(s)
}

// NewDefaultScene creates the full ray tracing showcase scene
func NewDefaultScene(width, height int) *Scene {
	s := New("default")
	s.Background = material.PaleGreen
	s.SetCameraConfig(geometry.CameraConfig{
		Position: core.NewVec3(6, 6, 6),
		LookAt:   core.NewVec3(0, 0, 0),
		Up:       core.NewVec3(0, 1, 0),
		VFov:     120,
		Width:    width,
		Height:   height,
	})

	flag := material.NewStripeTexture(64, 64, 13, material.Red, material.White)

	s.AddOpaque(geometry.NewPlane(core.NewVec3(0, -2, 0), core.NewVec3(0, 1, 0)), material.Tin, nil)
	clearPlane := s.AddTransparent(geometry.NewPlane(core.NewVec3(0, 0, ClearPlaneMinZ), core.NewVec3(0, 0, 1)), material.Red, 0.25)
	s.Tag(ClearPlaneTag, clearPlane)
	s.AddOpaque(geometry.NewSphere(core.NewVec3(0, 0, 0), 4), material.Silver, nil)
	s.AddOpaque(geometry.NewEllipsoid(core.NewVec3(4, 0, 5), core.NewVec3(1, 1, 2.5)), material.Copper, nil)
	s.AddOpaque(geometry.NewCylinderY(core.NewVec3(8, 3, -2), 1.5, 3), material.Gold, flag)
	s.AddOpaque(geometry.NewDisk(core.NewVec3(-8, 0, 10), core.NewVec3(1, 0, 0), 3), material.RedPlastic, nil)

	s.AddLight(lights.NewPositionalLight(core.NewVec3(15, 15, 15), material.White))
	s.AddLight(lights.NewSpotLight(core.NewVec3(-15, 5, 10), core.NewVec3(0, -1, 0), core.Deg2Rad(90), material.White))

	return s
}

// NewIntersectionsScene creates the scene used to eyeball each intersection routine
func NewIntersectionsScene(width, height int) *Scene {
	s := New("intersections")
	s.Background = material.PaleGreen
	s.SetCameraConfig(geometry.CameraConfig{
		Position: core.NewVec3(0, 5, 10),
		LookAt:   core.NewVec3(0, 5, 0),
		Up:       core.NewVec3(0, 1, 0),
		VFov:     90,
		Width:    width,
		Height:   height,
	})

	s.AddOpaque(geometry.NewPlane(core.NewVec3(0, -2, 0), core.NewVec3(0, 1, 0)), material.Tin, nil)
	s.AddOpaque(geometry.NewSphere(core.NewVec3(0, 0, 0), 2), material.Silver, nil)
	s.AddOpaque(geometry.NewSphere(core.NewVec3(-2, 0, -8), 2), material.Bronze, nil)
	s.AddOpaque(geometry.NewEllipsoid(core.NewVec3(4, 0, 3), core.NewVec3(2, 1, 2)), material.RedPlastic, nil)
	s.AddOpaque(geometry.NewDisk(core.NewVec3(15, 0, 0), core.NewVec3(0, 0, 1), 5), material.CyanPlastic, nil)
	s.AddOpaque(geometry.NewDisk(core.NewVec3(-15, 0, 0), core.NewVec3(0, 1, 0), 1), material.Bronze, nil)

	s.AddLight(lights.NewPositionalLight(core.NewVec3(10, 10, 10), material.White))
	spot := s.AddLight(lights.NewSpotLight(core.NewVec3(2, 5, -2), core.NewVec3(0, -1, 0), math.Pi/4, material.White))
	s.Light(spot).On = false

	return s
}

// NewTexturesScene creates textured cylinders and disks
func NewTexturesScene(width, height int) *Scene {
	s := New("textures")
	s.Background = material.PaleGreen
	s.SetCameraConfig(OrbitCameraConfig(geometry.CameraConfig{
		LookAt: core.NewVec3(0, 0, 0),
		Up:     core.NewVec3(0, 1, 0),
		VFov:   90,
		Width:  width,
		Height: height,
	}, 12, 0.5))

	flag := material.NewStripeTexture(64, 64, 13, material.Red, material.White)
	checks := material.NewCheckerTexture(8, material.White, material.Blue)

	s.AddOpaque(geometry.NewCylinderY(core.NewVec3(0, 0, 0), 3, 10), material.Gold, flag)
	s.AddOpaque(geometry.NewCylinderY(core.NewVec3(6, 0, -8), 2, 5), material.Brass, nil)
	s.AddOpaque(geometry.NewClosedCylinderY(core.NewVec3(10, 0, 0), 3, 5), material.Gold, checks)
	s.AddOpaque(geometry.NewDisk(core.NewVec3(-5, 0, 6), core.NewVec3(0, 0, 1), 3), material.Gold, flag)
	s.AddOpaque(geometry.NewDisk(core.NewVec3(-9, 0, 5), core.NewVec3(0, 0, 1), 3), material.Brass, nil)

	s.AddLight(lights.NewPositionalLight(core.NewVec3(10, 15, 15), material.White))

	return s
}

// NewSpotlightScene creates a row of spheres under a narrow spot light
func NewSpotlightScene(width, height int) *Scene {
	s := New("spotlight")
	s.Background = material.Black
	s.SetCameraConfig(geometry.CameraConfig{
		Position: core.NewVec3(0, 6, 14),
		LookAt:   core.NewVec3(0, 0, 0),
		Up:       core.NewVec3(0, 1, 0),
		VFov:     60,
		Width:    width,
		Height:   height,
	})

	s.AddOpaque(geometry.NewPlane(core.NewVec3(0, -1, 0), core.NewVec3(0, 1, 0)), material.WhitePlastic, material.NewCheckerTexture(20, material.White, material.DarkGray))
	s.AddOpaque(geometry.NewSphere(core.NewVec3(-4, 0, 0), 1), material.Ruby, nil)
	s.AddOpaque(geometry.NewSphere(core.NewVec3(0, 0, 0), 1), material.Chrome, nil)
	s.AddOpaque(geometry.NewSphere(core.NewVec3(4, 0, 0), 1), material.Emerald, nil)
	s.AddOpaque(geometry.NewTriangle(core.NewVec3(-6, -1, -4), core.NewVec3(6, -1, -4), core.NewVec3(0, 5, -4)), material.Pearl, nil)

	fill := lights.NewPositionalLight(core.NewVec3(0, 20, 20), material.Gray)
	fill.SetAttenuation(lights.AttenuationParams{Constant: 1, Linear: 0.01})
	s.AddLight(fill)
	s.AddLight(lights.NewSpotLight(core.NewVec3(0, 8, 0), core.NewVec3(0, -1, 0), core.Deg2Rad(50), material.White))

	return s
}
