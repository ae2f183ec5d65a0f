package core

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func TestVec3_Reflect(t *testing.T) {
	tests := []struct {
		name     string
		incident Vec3
		normal   Vec3
		expected Vec3
	}{
		{"Straight down onto floor", NewVec3(0, -1, 0), NewVec3(0, 1, 0), NewVec3(0, 1, 0)},
		{"45 degrees onto floor", NewVec3(1, -1, 0), NewVec3(0, 1, 0), NewVec3(1, 1, 0)},
		{"Grazing", NewVec3(1, 0, 0), NewVec3(0, 1, 0), NewVec3(1, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.incident.Reflect(tt.normal)
			if diff := cmp.Diff(tt.expected, got, approx); diff != "" {
				t.Errorf("Reflect() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestVec3_NormalizeZero(t *testing.T) {
	if got := NewVec3(0, 0, 0).Normalize(); !got.IsZero() {
		t.Errorf("Expected zero vector, got %v", got)
	}
}

func TestVec3_Normalize(t *testing.T) {
	got := NewVec3(3, 0, 4).Normalize()
	if math.Abs(got.Length()-1) > 1e-12 {
		t.Errorf("Expected unit length, got %f", got.Length())
	}
	if diff := cmp.Diff(NewVec3(0.6, 0, 0.8), got, approx); diff != "" {
		t.Errorf("Normalize() mismatch (-want +got):\n%s", diff)
	}
}

func TestVec3_Clamp01(t *testing.T) {
	got := NewVec3(-0.5, 0.5, 1.5).Clamp01()
	if diff := cmp.Diff(NewVec3(0, 0.5, 1), got); diff != "" {
		t.Errorf("Clamp01() mismatch (-want +got):\n%s", diff)
	}
}

func TestVec3_Cross(t *testing.T) {
	got := NewVec3(1, 0, 0).Cross(NewVec3(0, 1, 0))
	if diff := cmp.Diff(NewVec3(0, 0, 1), got); diff != "" {
		t.Errorf("Cross() mismatch (-want +got):\n%s", diff)
	}
}

func TestRay_At(t *testing.T) {
	ray := NewRay(NewVec3(1, 2, 3), NewVec3(0, 0, -1))
	if diff := cmp.Diff(NewVec3(1, 2, 1), ray.At(2)); diff != "" {
		t.Errorf("At() mismatch (-want +got):\n%s", diff)
	}
}
