package geometry

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

const tolerance = 1e-6

func assertVec(t *testing.T, label string, want, got core.Vec3) {
	t.Helper()
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, tolerance)); diff != "" {
		t.Errorf("%s mismatch (-want +got):\n%s", label, diff)
	}
}

func assertMiss(t *testing.T, hit HitRecord) {
	t.Helper()
	if hit.IsHit() {
		t.Errorf("Expected miss, but got hit at t=%f point=%v", hit.T, hit.Point)
	}
	if hit.T != core.NoHit {
		t.Errorf("Expected sentinel t, got %f", hit.T)
	}
}
