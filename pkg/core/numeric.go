package core

import (
	"math"
	"sort"
)

const (
	// Epsilon is the tolerance used for intersection distances and for moving
	// secondary ray origins off a surface.
	Epsilon = 1e-4

	// NoHit is the sentinel intersection parameter meaning "no intersection".
	// It is large but finite and must never be used as a distance.
	NoHit = math.MaxFloat32

	// approxTolerance is the default tolerance for ApproximatelyEqual/Zero
	approxTolerance = 1e-5
)

// ApproximatelyEqual reports whether a and b differ by less than a small tolerance
func ApproximatelyEqual(a, b float64) bool {
	return math.Abs(a-b) < approxTolerance
}

// ApproximatelyZero reports whether a is within a small tolerance of zero
func ApproximatelyZero(a float64) bool {
	return math.Abs(a) < approxTolerance
}

// Deg2Rad converts degrees to radians
func Deg2Rad(degrees float64) float64 {
	return degrees * math.Pi / 180.0
}

// Rad2Deg converts radians to degrees
func Rad2Deg(radians float64) float64 {
	return radians * 180.0 / math.Pi
}

// NormalizeDegrees maps an angle into [0, 360)
func NormalizeDegrees(degrees float64) float64 {
	d := math.Mod(degrees, 360)
	if d < 0 {
		d += 360
	}
	return d
}

// NormalizeRadians maps an angle into [0, 2π)
func NormalizeRadians(radians float64) float64 {
	r := math.Mod(radians, 2*math.Pi)
	if r < 0 {
		r += 2 * math.Pi
	}
	return r
}

// Map linearly maps x from [fromLo, fromHi] onto [toLo, toHi]. Values outside the
// source interval extrapolate. A zero-width source interval maps everything to toLo.
func Map(x, fromLo, fromHi, toLo, toHi float64) float64 {
	width := fromHi - fromLo
	if width == 0 {
		return toLo
	}
	return toLo + (x-fromLo)/width*(toHi-toLo)
}

// Quadratic returns the real roots of a·x² + b·x + c = 0 in ascending order.
// A double (tangent) root is reported once. The tangent tolerance is relative
// to the magnitude of b² and 4ac, so tiny primitives keep both roots. When a is zero the equation is solved as
// linear, and when a and b are both zero there are no roots.
func Quadratic(a, b, c float64) []float64 {
	if a == 0 {
		if b == 0 {
			return nil
		}
		return []float64{-c / b}
	}

	discriminant := b*b - 4*a*c
	if math.Abs(discriminant) <= 1e-12*(b*b+math.Abs(4*a*c)) {
		return []float64{-b / (2 * a)}
	}
	if discriminant < 0 {
		return nil
	}

	sqrtD := math.Sqrt(discriminant)
	roots := []float64{(-b - sqrtD) / (2 * a), (-b + sqrtD) / (2 * a)}
	sort.Float64s(roots)
	return roots
}

// SmallestNonNegativeRoot returns the smallest root of a·t² + b·t + c = 0 that is
// at least minT, or NoHit when no such root exists.
func SmallestNonNegativeRoot(a, b, c, minT float64) float64 {
	for _, root := range Quadratic(a, b, c) {
		if root >= minT {
			return root
		}
	}
	return NoHit
}
