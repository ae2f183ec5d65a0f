package scene

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

func TestPlaneSweepBounces(t *testing.T) {
	sweep := NewPlaneSweep(ShapeID(3), 0, -1, 1, 0.5)

	want := []float64{0.5, 1, 0.5, 0, -0.5, -1, -0.5}
	for i, z := range want {
		st := sweep.Next()
		plane, ok := st.Shapes[ShapeID(3)].(*geometry.Plane)
		if !ok {
			t.Fatalf("Frame %d: expected a plane for the swept handle", i)
		}
		if plane.Point.Z != z {
			t.Errorf("Frame %d: z = %v, want %v", i, plane.Point.Z, z)
		}
	}
}

func TestPlaneSweepStaysInRange(t *testing.T) {
	sweep := NewPlaneSweep(ShapeID(0), 0, -1, 1, 0.75)

	want := []float64{0.75, 1, 0.25, -0.5, -1, -0.25, 0.5, 1}
	for i, z := range want {
		plane := sweep.Next().Shapes[ShapeID(0)].(*geometry.Plane)
		if plane.Point.Z != z {
			t.Errorf("Frame %d: z = %v, want %v", i, plane.Point.Z, z)
		}
		if plane.Point.Z < sweep.MinZ || plane.Point.Z > sweep.MaxZ {
			t.Errorf("Frame %d: z = %v outside [%v, %v]", i, plane.Point.Z, sweep.MinZ, sweep.MaxZ)
		}
	}
}

func TestOrbit(t *testing.T) {
	base := geometry.CameraConfig{LookAt: core.Vec3{}, Up: core.NewVec3(0, 1, 0), VFov: 90, Width: 4, Height: 4}

	tests := []struct {
		angle float64
		want  core.Vec3
	}{
		{0, core.NewVec3(12, 12, 0)},
		{90, core.NewVec3(0, 12, -12)},
		{180, core.NewVec3(-12, 12, 0)},
	}
	for _, tt := range tests {
		got := OrbitCameraConfig(base, 12, tt.angle).Position
		if diff := cmp.Diff(tt.want, got, approx); diff != "" {
			t.Errorf("angle %v mismatch (-want +got):\n%s", tt.angle, diff)
		}
	}

	orbit := NewOrbit(base, 12, 0, 90)
	st := orbit.Next()
	if st.Camera == nil {
		t.Fatal("Orbit did not produce a camera")
	}
	if diff := cmp.Diff(core.NewVec3(0, 12, -12), st.Camera.Position, approx); diff != "" {
		t.Errorf("Orbit position mismatch (-want +got):\n%s", diff)
	}
}

func TestApply(t *testing.T) {
	s := NewDefaultScene(20, 10)
	id, _ := s.Tagged(ClearPlaneTag)
	moved := geometry.NewPlane(core.NewVec3(0, 0, 2), core.NewVec3(0, 0, 1))
	camera := s.CameraConfig
	camera.Position = core.NewVec3(0, 0, 30)

	s.Apply(State{
		Camera:   &camera,
		Shapes:   map[ShapeID]geometry.Shape{id: moved},
		LightsOn: map[LightID]bool{0: false, 99: true},
	})

	if s.Shape(id) != moved {
		t.Error("Shape not replaced")
	}
	if s.Lights()[0].On {
		t.Error("Light 0 should be off")
	}
	if !s.Lights()[1].On {
		t.Error("Light 1 should be untouched")
	}
	if s.Camera.Frame().Origin != camera.Position {
		t.Errorf("Camera origin = %v, want %v", s.Camera.Frame().Origin, camera.Position)
	}

	// An empty state changes nothing
	before := s.CameraConfig
	s.Apply(State{})
	if s.CameraConfig != before {
		t.Error("Empty state changed the camera")
	}
}
