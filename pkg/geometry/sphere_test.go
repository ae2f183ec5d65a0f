package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestSphere_Intersect_ViewingRays(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, -1), 0.75)
	origin := core.NewVec3(0, 0, 0)

	tests := []struct {
		name           string
		direction      core.Vec3
		expectedT      float64
		expectedPoint  core.Vec3
		expectedNormal core.Vec3
	}{
		{
			name:           "upward viewing ray",
			direction:      core.NewVec3(0, 0.5, -1),
			expectedT:      0.2923474621,
			expectedPoint:  core.NewVec3(0, 0.1307417596, -0.2614835193),
			expectedNormal: core.NewVec3(0, 0.1743223462, 0.984688641),
		},
		{
			name:           "straight ahead",
			direction:      core.NewVec3(0, 0, -1),
			expectedT:      0.25,
			expectedPoint:  core.NewVec3(0, 0, -0.25),
			expectedNormal: core.NewVec3(0, 0, 1),
		},
		{
			name:           "downward viewing ray",
			direction:      core.NewVec3(0, -0.5, -1),
			expectedT:      0.2923474621,
			expectedPoint:  core.NewVec3(0, -0.1307417596, -0.2614835193),
			expectedNormal: core.NewVec3(0, -0.1743223462, 0.984688641),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit := Intersect(sphere, core.NewRay(origin, tt.direction.Normalize()))
			if !hit.IsHit() {
				t.Fatal("Expected hit, but got miss")
			}
			if math.Abs(hit.T-tt.expectedT) > tolerance {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}
			assertVec(t, "point", tt.expectedPoint, hit.Point)
			assertVec(t, "normal", tt.expectedNormal, hit.Normal)
		})
	}
}

func TestSphere_Intersect_Miss(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0)
	ray := core.NewRay(core.NewVec3(2, 0, 0), core.NewVec3(0, 1, 0))
	assertMiss(t, Intersect(sphere, ray))
}

func TestSphere_Intersect_BehindRay(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 5), 1.0)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	assertMiss(t, Intersect(sphere, ray))
}

func TestSphere_Intersect_FromInside(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 2.0)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0))

	hit := Intersect(sphere, ray)
	if math.Abs(hit.T-2.0) > tolerance {
		t.Errorf("Expected t=2, got t=%f", hit.T)
	}
	// Normal is geometric (outward) even though the ray leaves the sphere
	assertVec(t, "normal", core.NewVec3(1, 0, 0), hit.Normal)
}

func TestSphere_Intersect_Tangent(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, -1), 0.75)
	ray := core.NewRay(core.NewVec3(0.75, 0, 0), core.NewVec3(0, 0, -1))

	hit := Intersect(sphere, ray)
	if !hit.IsHit() {
		t.Fatal("Expected tangent hit, but got miss")
	}
	if math.Abs(hit.T-1.0) > tolerance {
		t.Errorf("Expected t=1, got t=%f", hit.T)
	}
	assertVec(t, "point", core.NewVec3(0.75, 0, -1), hit.Point)
}

func TestSphere_Intersect_TinyRadius(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, -1), 0.001)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	hit := Intersect(sphere, ray)
	if !hit.IsHit() {
		t.Fatal("Expected hit on small sphere, but got miss")
	}
	if math.Abs(hit.T-0.999) > tolerance {
		t.Errorf("Expected t=0.999, got t=%f", hit.T)
	}
	assertVec(t, "point", core.NewVec3(0, 0, -0.999), hit.Point)
	assertVec(t, "normal", core.NewVec3(0, 0, 1), hit.Normal)
}

func TestSphere_Intersect_TextureCoordinates(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0)

	// Hit the top pole
	hit := Intersect(sphere, core.NewRay(core.NewVec3(0, 5, 0), core.NewVec3(0, -1, 0)))
	if math.Abs(hit.V-1.0) > tolerance {
		t.Errorf("Expected v=1 at the north pole, got %f", hit.V)
	}

	// Hit the equator
	hit = Intersect(sphere, core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1)))
	if math.Abs(hit.V-0.5) > tolerance {
		t.Errorf("Expected v=0.5 at the equator, got %f", hit.V)
	}
	if hit.U < 0 || hit.U >= 1 {
		t.Errorf("Expected u in [0,1), got %f", hit.U)
	}
}
