package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestCylinder_Intersect_Side(t *testing.T) {
	cylinder := NewCylinderY(core.NewVec3(0, 0, 0), 1.0, 2.0)

	hit := Intersect(cylinder, core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1)))
	if !hit.IsHit() {
		t.Fatal("Expected hit, but got miss")
	}
	if math.Abs(hit.T-4.0) > tolerance {
		t.Errorf("Expected t=4, got t=%f", hit.T)
	}
	assertVec(t, "normal", core.NewVec3(0, 0, 1), hit.Normal)
	if math.Abs(hit.V-0.5) > tolerance {
		t.Errorf("Expected v=0.5 at mid height, got %f", hit.V)
	}
}

func TestCylinder_Intersect_Miss(t *testing.T) {
	cylinder := NewCylinderY(core.NewVec3(0, 0, 0), 1.0, 2.0)
	assertMiss(t, Intersect(cylinder, core.NewRay(core.NewVec3(2, 0, 5), core.NewVec3(0, 0, -1))))
}

func TestCylinder_Intersect_HeightBounds(t *testing.T) {
	cylinder := NewCylinderY(core.NewVec3(0, 0, 0), 1.0, 2.0)

	tests := []struct {
		name      string
		y         float64
		shouldHit bool
	}{
		{"inside height range", 0.5, true},
		{"above top", 1.5, false},
		{"below bottom", -1.5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit := Intersect(cylinder, core.NewRay(core.NewVec3(0, tt.y, 5), core.NewVec3(0, 0, -1)))
			if hit.IsHit() != tt.shouldHit {
				t.Errorf("Expected hit=%v, got hit=%v", tt.shouldHit, hit.IsHit())
			}
		})
	}
}

func TestCylinder_Intersect_ClipsNearRootUsesFar(t *testing.T) {
	cylinder := NewCylinderY(core.NewVec3(0, 0, 0), 1.0, 2.0)

	// Enters the infinite cylinder above the top, exits through the inside wall
	ray := core.NewRay(core.NewVec3(0, 3.5, 3), core.NewVec3(0, -1, -1).Normalize())
	hit := Intersect(cylinder, ray)
	if !hit.IsHit() {
		t.Fatal("Expected hit on the far wall, but got miss")
	}
	if math.Abs(hit.T-4*math.Sqrt2) > tolerance {
		t.Errorf("Expected t=%f, got t=%f", 4*math.Sqrt2, hit.T)
	}
	assertVec(t, "point", core.NewVec3(0, -0.5, -1), hit.Point)
	assertVec(t, "normal", core.NewVec3(0, 0, -1), hit.Normal)
}

func TestCylinder_Intersect_FromInside(t *testing.T) {
	cylinder := NewCylinderY(core.NewVec3(0, 0, 0), 1.0, 2.0)

	hit := Intersect(cylinder, core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0)))
	if math.Abs(hit.T-1.0) > tolerance {
		t.Errorf("Expected t=1, got t=%f", hit.T)
	}
	assertVec(t, "normal", core.NewVec3(1, 0, 0), hit.Normal)
}

func TestCylinder_Caps(t *testing.T) {
	down := core.NewRay(core.NewVec3(0.5, 5, 0), core.NewVec3(0, -1, 0))
	up := core.NewRay(core.NewVec3(0.5, -5, 0), core.NewVec3(0, 1, 0))

	open := NewCylinderY(core.NewVec3(0, 0, 0), 1.0, 2.0)
	assertMiss(t, Intersect(open, down))

	closed := NewClosedCylinderY(core.NewVec3(0, 0, 0), 1.0, 2.0)

	hit := Intersect(closed, down)
	if math.Abs(hit.T-4.0) > tolerance {
		t.Errorf("Expected top cap at t=4, got t=%f", hit.T)
	}
	assertVec(t, "top normal", core.NewVec3(0, 1, 0), hit.Normal)

	hit = Intersect(closed, up)
	if math.Abs(hit.T-4.0) > tolerance {
		t.Errorf("Expected bottom cap at t=4, got t=%f", hit.T)
	}
	assertVec(t, "bottom normal", core.NewVec3(0, -1, 0), hit.Normal)

	// Outside the cap radius
	assertMiss(t, Intersect(closed, core.NewRay(core.NewVec3(1.5, 5, 0), core.NewVec3(0, -1, 0))))
}

func TestCylinder_Caps_BodyCloserThanCap(t *testing.T) {
	closed := NewClosedCylinderY(core.NewVec3(0, 0, 0), 1.0, 2.0)

	hit := Intersect(closed, core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1)))
	assertVec(t, "normal", core.NewVec3(0, 0, 1), hit.Normal)
}
