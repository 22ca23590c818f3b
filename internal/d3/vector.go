package d3

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// R3 vector routines shared by the lattice and symmetry packages.
// Fractional coordinates live in the unit cube; helpers with the
// Periodic suffix treat the cube as a 3-torus.

// FromInts converts an integer triple to r3.Vec.
func FromInts(a [3]int) r3.Vec {
	return r3.Vec{X: float64(a[0]), Y: float64(a[1]), Z: float64(a[2])}
}

func EqualWithin(a, b r3.Vec, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol &&
		math.Abs(a.Y-b.Y) <= tol &&
		math.Abs(a.Z-b.Z) <= tol
}

// EqualWithinPeriodic reports whether a and b are within tol of each
// other on every axis once lattice translations are factored out.
func EqualWithinPeriodic(a, b r3.Vec, tol float64) bool {
	d := PeriodicDelta(a, b)
	return math.Abs(d.X) <= tol && math.Abs(d.Y) <= tol && math.Abs(d.Z) <= tol
}

// PeriodicDelta returns a-b with each component folded into [-0.5, 0.5].
func PeriodicDelta(a, b r3.Vec) r3.Vec {
	return r3.Vec{
		X: fold(a.X - b.X),
		Y: fold(a.Y - b.Y),
		Z: fold(a.Z - b.Z),
	}
}

func fold(d float64) float64 {
	return d - math.Round(d)
}

// Wrap reduces x into [0,1).
func Wrap(x float64) float64 {
	if x == 0 {
		return 0 // drops the sign of -0.
	}
	if x > 0 && x < 1 {
		return x
	}
	x -= math.Floor(x)
	if x >= 1 {
		// x was a tiny negative number and x+1 rounded up to 1.
		return 0
	}
	return x
}

// WrapElem reduces every component of a into [0,1).
func WrapElem(a r3.Vec) r3.Vec {
	return r3.Vec{X: Wrap(a.X), Y: Wrap(a.Y), Z: Wrap(a.Z)}
}

// IsFinite returns true if no component is NaN or infinite.
func IsFinite(a r3.Vec) bool {
	return !math.IsNaN(a.X) && !math.IsInf(a.X, 0) &&
		!math.IsNaN(a.Y) && !math.IsInf(a.Y, 0) &&
		!math.IsNaN(a.Z) && !math.IsInf(a.Z, 0)
}

// Clamp x between a and b, assume a <= b
func Clamp(x, a, b float64) float64 {
	return math.Min(b, math.Max(x, a))
}

// QuadForm returns vᵀ·M·v.
func QuadForm(m *r3.Mat, v r3.Vec) float64 {
	return r3.Dot(v, m.MulVec(v))
}

// BiForm returns uᵀ·M·v.
func BiForm(m *r3.Mat, u, v r3.Vec) float64 {
	return r3.Dot(u, m.MulVec(v))
}
