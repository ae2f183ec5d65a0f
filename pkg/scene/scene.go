package scene

import (
	"golang.org/x/xerrors"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// ErrNoCamera is returned when a scene is rendered before a camera is set
var ErrNoCamera = xerrors.New("scene has no camera")

// ShapeID is a handle into the scene's shape arena
type ShapeID int

// LightID is a handle into the scene's light arena
type LightID int

// VisibleShape is an opaque object: a shape with a material and optional texture
type VisibleShape struct {
	Shape    ShapeID
	Material material.Material
	Texture  material.Texture // nil when untextured
}

// TransparentShape is a shape drawn as a flat color blended over what lies behind it
type TransparentShape struct {
	Shape ShapeID
	Color core.Vec3
	Alpha float64 // [0, 1]
}

// OpaqueHit is the closest intersection with an opaque object
type OpaqueHit struct {
	geometry.HitRecord
	Material material.Material
	Texture  material.Texture
}

// TransparentHit is the closest intersection with a transparent object
type TransparentHit struct {
	T     float64
	Point core.Vec3
	Color core.Vec3
	Alpha float64
}

// IsHit reports whether the record describes an intersection
func (h TransparentHit) IsHit() bool {
	return h.T != core.NoHit
}

// Scene contains all the elements needed for rendering. Shapes and lights are
// owned by the scene and referenced by handle from the object lists.
type Scene struct {
	Name         string
	Camera       geometry.Camera
	CameraConfig geometry.CameraConfig
	Background   core.Vec3 // Color of rays that hit nothing

	shapes      []geometry.Shape
	opaque      []VisibleShape
	transparent []TransparentShape
	lights      []lights.Light
	tags        map[string]ShapeID
}

// New creates an empty scene with a black background and no camera
func New(name string) *Scene {
	return &Scene{
		Name:       name,
		Background: material.Black,
		tags:       make(map[string]ShapeID),
	}
}

// AddShape stores a shape in the arena without making it visible
func (s *Scene) AddShape(shape geometry.Shape) ShapeID {
	s.shapes = append(s.shapes, shape)
	return ShapeID(len(s.shapes) - 1)
}

// Shape returns the shape for a handle, or nil for an unknown handle
func (s *Scene) Shape(id ShapeID) geometry.Shape {
	if int(id) < 0 || int(id) >= len(s.shapes) {
		return nil
	}
	return s.shapes[id]
}

// SetShape replaces the shape behind a handle. Every object referring to the
// handle sees the new shape.
func (s *Scene) SetShape(id ShapeID, shape geometry.Shape) bool {
	if int(id) < 0 || int(id) >= len(s.shapes) {
		return false
	}
	s.shapes[id] = shape
	return true
}

// AddOpaque adds a shape to the arena and lists it as an opaque object
func (s *Scene) AddOpaque(shape geometry.Shape, mat material.Material, tex material.Texture) ShapeID {
	id := s.AddShape(shape)
	s.AddOpaqueRef(id, mat, tex)
	return id
}

// AddOpaqueRef lists an existing shape as an opaque object
func (s *Scene) AddOpaqueRef(id ShapeID, mat material.Material, tex material.Texture) {
	s.opaque = append(s.opaque, VisibleShape{Shape: id, Material: mat, Texture: tex})
}

// AddTransparent adds a shape to the arena and lists it as a transparent object.
// alpha is clamped to [0, 1].
func (s *Scene) AddTransparent(shape geometry.Shape, color core.Vec3, alpha float64) ShapeID {
	id := s.AddShape(shape)
	s.transparent = append(s.transparent, TransparentShape{
		Shape: id,
		Color: color,
		Alpha: max(0, min(1, alpha)),
	})
	return id
}

// AddLight stores a light and returns its handle
func (s *Scene) AddLight(light lights.Light) LightID {
	s.lights = append(s.lights, light)
	return LightID(len(s.lights) - 1)
}

// Light returns a pointer for mutating a light between frames, or nil
func (s *Scene) Light(id LightID) *lights.Light {
	if int(id) < 0 || int(id) >= len(s.lights) {
		return nil
	}
	return &s.lights[id]
}

// Lights returns the scene's lights. The slice must not be modified.
func (s *Scene) Lights() []lights.Light {
	return s.lights
}

// OpaqueObjects returns the opaque object list
func (s *Scene) OpaqueObjects() []VisibleShape {
	return s.opaque
}

// TransparentObjects returns the transparent object list
func (s *Scene) TransparentObjects() []TransparentShape {
	return s.transparent
}

// Tag names a shape handle so callers can find it again
func (s *Scene) Tag(name string, id ShapeID) {
	if s.tags == nil {
		s.tags = make(map[string]ShapeID)
	}
	s.tags[name] = id
}

// Tagged returns the handle registered under name
func (s *Scene) Tagged(name string) (ShapeID, bool) {
	id, ok := s.tags[name]
	return id, ok
}

// SetCamera replaces the active camera
func (s *Scene) SetCamera(cam geometry.Camera) {
	s.Camera = cam
}

// SetCameraConfig builds a perspective camera from config and makes it active
func (s *Scene) SetCameraConfig(config geometry.CameraConfig) {
	s.CameraConfig = config
	s.Camera = geometry.NewPerspectiveCamera(config)
}

// Validate checks that the scene can be rendered
func (s *Scene) Validate() error {
	if s.Camera == nil {
		return xerrors.Errorf("while validating scene %q: %w", s.Name, ErrNoCamera)
	}
	return nil
}

// FindOpaqueHit returns the closest opaque intersection along ray
func (s *Scene) FindOpaqueHit(ray core.Ray) OpaqueHit {
	closest := OpaqueHit{HitRecord: geometry.NoHitRecord()}
	for i, obj := range s.opaque {
		hit := geometry.Intersect(s.shapes[obj.Shape], ray)
		if hit.T < closest.T {
			hit.Index = i
			closest = OpaqueHit{HitRecord: hit, Material: obj.Material, Texture: obj.Texture}
		}
	}
	return closest
}

// FindTransparentHit returns the closest transparent intersection along ray
func (s *Scene) FindTransparentHit(ray core.Ray) TransparentHit {
	closest := TransparentHit{T: core.NoHit}
	for _, obj := range s.transparent {
		hit := geometry.Intersect(s.shapes[obj.Shape], ray)
		if hit.T < closest.T {
			closest = TransparentHit{T: hit.T, Point: hit.Point, Color: obj.Color, Alpha: obj.Alpha}
		}
	}
	return closest
}

// Opaque returns the opaque objects as an Intersector for shadow tests.
// Transparent objects never cast shadows.
func (s *Scene) Opaque() geometry.Intersector {
	return opaqueSet{s}
}

type opaqueSet struct {
	s *Scene
}

func (o opaqueSet) ClosestIntersection(ray core.Ray) geometry.HitRecord {
	return o.s.FindOpaqueHit(ray).HitRecord
}

// RetextureAll replaces the texture of every textured opaque object
func (s *Scene) RetextureAll(tex material.Texture) int {
	n := 0
	for i := range s.opaque {
		if s.opaque[i].Texture != nil {
			s.opaque[i].Texture = tex
			n++
		}
	}
	return n
}
