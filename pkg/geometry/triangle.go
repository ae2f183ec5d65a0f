package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Triangle represents a single triangle defined by three vertices
type Triangle struct {
	V0, V1, V2 core.Vec3 // The three vertices, counter-clockwise seen from the front
	normal     core.Vec3 // Cached normal vector
}

// NewTriangle creates a new triangle from three vertices
func NewTriangle(v0, v1, v2 core.Vec3) *Triangle {
	edge1 := v1.Subtract(v0)
	edge2 := v2.Subtract(v0)
	return &Triangle{
		V0:     v0,
		V1:     v1,
		V2:     v2,
		normal: edge1.Cross(edge2).Normalize(),
	}
}

// Normal returns the triangle's unit normal
func (t *Triangle) Normal() core.Vec3 {
	return t.normal
}

// intersect uses the Möller-Trumbore algorithm
func (t *Triangle) intersect(ray core.Ray) HitRecord {
	const epsilon = 1e-8

	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)

	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)

	// If determinant is near zero, ray lies in plane of triangle
	if a > -epsilon && a < epsilon {
		return NoHitRecord()
	}

	f := 1.0 / a
	s := ray.Origin.Subtract(t.V0)
	u := f * s.Dot(h)
	if u < 0.0 || u > 1.0 {
		return NoHitRecord()
	}

	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)
	if v < 0.0 || u+v > 1.0 {
		return NoHitRecord()
	}

	tParam := f * edge2.Dot(q)
	if tParam < core.Epsilon {
		return NoHitRecord()
	}

	return HitRecord{
		T:      tParam,
		Point:  ray.At(tParam),
		Normal: t.normal,
		U:      u,
		V:      v,
	}
}
