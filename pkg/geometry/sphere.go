package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center core.Vec3
	Radius float64
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64) *Sphere {
	return &Sphere{
		Center: center,
		Radius: radius,
	}
}

func (s *Sphere) intersect(ray core.Ray) HitRecord {
	// Vector from sphere center to ray origin
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + bt + c = 0
	a := ray.Direction.Dot(ray.Direction)
	b := 2.0 * oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	t := core.SmallestNonNegativeRoot(a, b, c, core.Epsilon)
	if t == core.NoHit {
		return NoHitRecord()
	}

	point := ray.At(t)
	outwardNormal := point.Subtract(s.Center).Normalize()
	u, v := sphericalUV(outwardNormal)

	return HitRecord{
		T:      t,
		Point:  point,
		Normal: outwardNormal,
		U:      u,
		V:      v,
	}
}

// sphericalUV maps a unit direction onto longitude/latitude texture coordinates
func sphericalUV(d core.Vec3) (float64, float64) {
	u := angleUV(d.X, d.Z)
	v := 0.5 + math.Asin(max(-1, min(1, d.Y)))/math.Pi
	return u, v
}
