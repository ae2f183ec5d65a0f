package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// HitRecord contains information about a ray-object intersection.
// T == core.NoHit means the ray missed; the other fields are then meaningless.
type HitRecord struct {
	T      float64   // Parameter t along the ray
	Point  core.Vec3 // Point of intersection
	Normal core.Vec3 // Geometric unit normal, not necessarily facing the ray
	U, V   float64   // Surface texture coordinates in [0, 1]
	Index  int       // Position of the hit shape in the list that was searched
}

// NoHitRecord returns a record representing a miss
func NoHitRecord() HitRecord {
	return HitRecord{T: core.NoHit, Index: -1}
}

// IsHit reports whether the record represents an actual intersection
func (h HitRecord) IsHit() bool {
	return h.T != core.NoHit
}

// FaceForward flips the normal so it opposes the incoming ray direction
func (h *HitRecord) FaceForward(ray core.Ray) {
	if h.Normal.Dot(ray.Direction) > 0 {
		h.Normal = h.Normal.Negate()
	}
}

// Shape is the closed set of primitives the tracer knows how to intersect:
// *Plane, *Sphere, *Ellipsoid, *Disk, *Cylinder and *Triangle.
type Shape interface {
	isShape()
}

func (*Plane) isShape()     {}
func (*Sphere) isShape()    {}
func (*Ellipsoid) isShape() {}
func (*Disk) isShape()      {}
func (*Cylinder) isShape()  {}
func (*Triangle) isShape()  {}

// Intersect finds the closest intersection of the ray with the shape at a
// distance greater than core.Epsilon.
func Intersect(shape Shape, ray core.Ray) HitRecord {
	switch s := shape.(type) {
	case *Plane:
		return s.intersect(ray)
	case *Sphere:
		return s.intersect(ray)
	case *Ellipsoid:
		return s.intersect(ray)
	case *Disk:
		return s.intersect(ray)
	case *Cylinder:
		return s.intersect(ray)
	case *Triangle:
		return s.intersect(ray)
	default:
		return NoHitRecord()
	}
}

// Intersector finds the closest intersection of a ray with a collection of shapes
type Intersector interface {
	ClosestIntersection(ray core.Ray) HitRecord
}

// ShapeList is a plain list of shapes searched linearly
type ShapeList []Shape

// ClosestIntersection implements Intersector
func (l ShapeList) ClosestIntersection(ray core.Ray) HitRecord {
	return ClosestIntersection(l, ray)
}

// ClosestIntersection scans every shape and returns the minimum-t hit, with
// Index set to the winning shape's position, or a miss record.
func ClosestIntersection(shapes []Shape, ray core.Ray) HitRecord {
	closest := NoHitRecord()
	for i, shape := range shapes {
		hit := Intersect(shape, ray)
		if hit.T < closest.T {
			closest = hit
			closest.Index = i
		}
	}
	return closest
}

// MovePointOffSurface nudges a surface point along the normal so secondary rays
// starting there do not hit the surface they left.
func MovePointOffSurface(point, normal core.Vec3) core.Vec3 {
	return point.Add(normal.Multiply(core.Epsilon))
}

// orthonormalBasis returns two unit vectors perpendicular to n and to each other
func orthonormalBasis(n core.Vec3) (right, up core.Vec3) {
	if math.Abs(n.X) > 0.1 {
		right = core.NewVec3(0, 1, 0)
	} else {
		right = core.NewVec3(1, 0, 0)
	}
	right = right.Cross(n).Normalize()
	up = n.Cross(right).Normalize()
	return right, up
}

// fract returns x - floor(x), always in [0, 1)
func fract(x float64) float64 {
	f := x - math.Floor(x)
	if f >= 1 {
		return 0
	}
	return f
}

// angleUV maps the angle of (x, y) onto [0, 1)
func angleUV(x, y float64) float64 {
	u := (math.Atan2(y, x) + math.Pi) / (2 * math.Pi)
	if u >= 1 {
		u = 0
	}
	return u
}
