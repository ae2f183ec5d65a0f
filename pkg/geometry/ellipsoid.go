package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Ellipsoid is an axis-aligned ellipsoid with per-axis semi-axis lengths
type Ellipsoid struct {
	Center   core.Vec3
	SemiAxes core.Vec3
}

// NewEllipsoid creates a new ellipsoid
func NewEllipsoid(center, semiAxes core.Vec3) *Ellipsoid {
	return &Ellipsoid{
		Center:   center,
		SemiAxes: semiAxes,
	}
}

func (e *Ellipsoid) intersect(ray core.Ray) HitRecord {
	// Scale into the space where the ellipsoid is a unit sphere. The ray
	// parameter t is unchanged by the scaling.
	oc := ray.Origin.Subtract(e.Center).DivideVec(e.SemiAxes)
	dir := ray.Direction.DivideVec(e.SemiAxes)

	a := dir.Dot(dir)
	b := 2.0 * oc.Dot(dir)
	c := oc.Dot(oc) - 1.0

	t := core.SmallestNonNegativeRoot(a, b, c, core.Epsilon)
	if t == core.NoHit {
		return NoHitRecord()
	}

	point := ray.At(t)
	local := point.Subtract(e.Center)

	// Gradient of the implicit surface
	semiAxesSq := e.SemiAxes.MultiplyVec(e.SemiAxes)
	normal := local.DivideVec(semiAxesSq).Normalize()
	u, v := sphericalUV(local.DivideVec(e.SemiAxes).Normalize())

	return HitRecord{
		T:      t,
		Point:  point,
		Normal: normal,
		U:      u,
		V:      v,
	}
}
