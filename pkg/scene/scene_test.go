package scene

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"golang.org/x/xerrors"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func forwardRay() core.Ray {
	return core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1))
}

func TestFindOpaqueHitClosest(t *testing.T) {
	s := New("test")
	s.AddOpaque(geometry.NewSphere(core.NewVec3(0, 0, -10), 1), material.Gold, nil)
	s.AddOpaque(geometry.NewSphere(core.NewVec3(0, 0, -5), 1), material.Silver, nil)
	s.AddOpaque(geometry.NewSphere(core.NewVec3(5, 0, -5), 1), material.Copper, nil)

	hit := s.FindOpaqueHit(forwardRay())
	if !hit.IsHit() {
		t.Fatal("Expected a hit")
	}
	if hit.T != 4 {
		t.Errorf("Expected t=4, got %v", hit.T)
	}
	if hit.Index != 1 {
		t.Errorf("Expected index 1, got %d", hit.Index)
	}
	if diff := cmp.Diff(material.Silver, hit.Material); diff != "" {
		t.Errorf("Material mismatch (-want +got):\n%s", diff)
	}
}

func TestFindOpaqueHitMiss(t *testing.T) {
	s := New("test")
	s.AddOpaque(geometry.NewSphere(core.NewVec3(0, 0, 10), 1), material.Gold, nil)

	hit := s.FindOpaqueHit(forwardRay())
	if hit.IsHit() || hit.T != core.NoHit {
		t.Errorf("Expected miss, got t=%v", hit.T)
	}
	if hit.Texture != nil {
		t.Error("Miss should carry no texture")
	}
}

func TestFindTransparentHit(t *testing.T) {
	s := New("test")
	s.AddTransparent(geometry.NewPlane(core.NewVec3(0, 0, -3), core.NewVec3(0, 0, 1)), material.Red, 0.25)
	s.AddTransparent(geometry.NewPlane(core.NewVec3(0, 0, -2), core.NewVec3(0, 0, 1)), material.Blue, 0.5)

	hit := s.FindTransparentHit(forwardRay())
	want := TransparentHit{T: 2, Point: core.NewVec3(0, 0, -2), Color: material.Blue, Alpha: 0.5}
	if diff := cmp.Diff(want, hit, approx); diff != "" {
		t.Errorf("TransparentHit mismatch (-want +got):\n%s", diff)
	}

	miss := s.FindTransparentHit(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, 1)))
	if miss.IsHit() {
		t.Errorf("Expected miss, got %+v", miss)
	}
}

func TestTransparentObjectsDoNotOcclude(t *testing.T) {
	s := New("test")
	s.AddTransparent(geometry.NewPlane(core.NewVec3(0, 0, -1), core.NewVec3(0, 0, 1)), material.Red, 1)

	if hit := s.FindOpaqueHit(forwardRay()); hit.IsHit() {
		t.Errorf("Transparent plane reported as opaque hit at t=%v", hit.T)
	}
	light := lights.NewPositionalLight(core.NewVec3(0, 0, -10), material.White)
	if light.PointIsInShadow(core.Vec3{}, core.NewVec3(0, 0, -1), s.Opaque()) {
		t.Error("Transparent objects must not cast shadows")
	}
}

func TestAlphaClamped(t *testing.T) {
	tests := []struct {
		alpha, want float64
	}{
		{-0.5, 0},
		{0.25, 0.25},
		{1.5, 1},
	}
	for _, tt := range tests {
		s := New("test")
		s.AddTransparent(geometry.NewSphere(core.Vec3{}, 1), material.Red, tt.alpha)
		if got := s.TransparentObjects()[0].Alpha; got != tt.want {
			t.Errorf("alpha %v: got %v, want %v", tt.alpha, got, tt.want)
		}
	}
}

func TestSharedShapeHandle(t *testing.T) {
	s := New("test")
	id := s.AddShape(geometry.NewSphere(core.NewVec3(0, 0, -5), 1))
	s.AddOpaqueRef(id, material.Gold, nil)
	s.AddOpaqueRef(id, material.Silver, nil)

	if len(s.OpaqueObjects()) != 2 {
		t.Fatalf("Expected 2 opaque objects, got %d", len(s.OpaqueObjects()))
	}

	// Moving the shared shape moves both objects
	if !s.SetShape(id, geometry.NewSphere(core.NewVec3(0, 0, -20), 1)) {
		t.Fatal("SetShape rejected a valid handle")
	}
	if hit := s.FindOpaqueHit(forwardRay()); hit.T != 19 {
		t.Errorf("Expected t=19 after move, got %v", hit.T)
	}

	if s.SetShape(ShapeID(42), nil) {
		t.Error("SetShape accepted an unknown handle")
	}
	if s.Shape(ShapeID(-1)) != nil {
		t.Error("Shape returned a value for an unknown handle")
	}
}

func TestLightMutation(t *testing.T) {
	s := New("test")
	id := s.AddLight(lights.NewPositionalLight(core.NewVec3(1, 2, 3), material.White))

	s.Light(id).On = false
	s.Light(id).Position = core.NewVec3(4, 5, 6)

	got := s.Lights()[id]
	if got.On || got.Position != core.NewVec3(4, 5, 6) {
		t.Errorf("Light not mutated through handle: %+v", got)
	}
	if s.Light(LightID(7)) != nil {
		t.Error("Expected nil for unknown light handle")
	}
}

func TestValidate(t *testing.T) {
	s := New("empty")
	err := s.Validate()
	if !xerrors.Is(err, ErrNoCamera) {
		t.Fatalf("Expected ErrNoCamera, got %v", err)
	}

	s.SetCameraConfig(geometry.CameraConfig{
		Position: core.NewVec3(0, 0, 5),
		Up:       core.NewVec3(0, 1, 0),
		VFov:     60,
		Width:    10,
		Height:   10,
	})
	if err := s.Validate(); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestRetextureAll(t *testing.T) {
	s := New("test")
	s.AddOpaque(geometry.NewSphere(core.Vec3{}, 1), material.Gold, material.SolidTexture{Color: material.Red})
	s.AddOpaque(geometry.NewSphere(core.Vec3{}, 2), material.Gold, nil)

	replacement := material.SolidTexture{Color: material.Blue}
	if n := s.RetextureAll(replacement); n != 1 {
		t.Errorf("Expected 1 retextured object, got %d", n)
	}
	if s.OpaqueObjects()[0].Texture != replacement {
		t.Error("Textured object was not retextured")
	}
	if s.OpaqueObjects()[1].Texture != nil {
		t.Error("Untextured object gained a texture")
	}
}

func TestTags(t *testing.T) {
	s := New("test")
	id := s.AddShape(geometry.NewSphere(core.Vec3{}, 1))
	s.Tag("ball", id)

	got, ok := s.Tagged("ball")
	if !ok || got != id {
		t.Errorf("Tagged(ball) = %v, %v", got, ok)
	}
	if _, ok := s.Tagged("missing"); ok {
		t.Error("Unexpected tag")
	}
}
