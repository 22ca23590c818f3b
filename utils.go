package xtal

import (
	"errors"
	"math"

	"github.com/soypat/xtal/internal/d3"
)

const (
	pi  = math.Pi
	tau = 2 * pi
)

const (
	// Tolerance is the fractional coordinate distance below which two atom
	// positions are considered the same site.
	Tolerance = 1e-5
	// DefaultThreshold is the fraction of the maximum diffraction intensity a
	// plane must exceed to be kept as a reflector.
	DefaultThreshold = 1e-14
)

var (
	// ErrInvalidUnitCell is returned for lattice parameters that cannot
	// describe a unit cell.
	ErrInvalidUnitCell = errors.New("xtal: invalid unit cell")
	// ErrInvalidAtom is returned for out of range atomic numbers,
	// occupancies or non-finite coordinates.
	ErrInvalidAtom = errors.New("xtal: invalid atom site")
	// ErrZeroPlane is returned when the Miller indices (0,0,0) are used as a plane.
	ErrZeroPlane = errors.New("xtal: zero plane (0 0 0)")
	// ErrDuplicatePosition is returned when inserting a site that lies
	// within Tolerance of an existing member of an AtomSites.
	ErrDuplicatePosition = errors.New("xtal: duplicate atom position")
	ErrInvalidArgument   = errors.New("xtal: invalid argument")
	// ErrNoReflectors is returned when no plane diffracts above threshold.
	ErrNoReflectors = errors.New("xtal: no diffracting planes")
	// ErrBraggLimit is returned by DiffractionAngle when nλ/2d exceeds 1.
	ErrBraggLimit = errors.New("xtal: reflection beyond Bragg limit")
)

// DtoR converts degrees to radians
func DtoR(degrees float64) float64 {
	return (pi / 180) * degrees
}

// RtoD converts radians to degrees
func RtoD(radians float64) float64 {
	return (180 / pi) * radians
}

// clampUnit clamps x to [-1,1] for acos and asin arguments.
func clampUnit(x float64) float64 { return d3.Clamp(x, -1, 1) }

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// cos returns the cosine of x with results within 1e-15 of zero snapped to
// zero, so right angles produce exactly orthogonal metrics.
func cos(x float64) float64 {
	c := math.Cos(x)
	if math.Abs(c) < 1e-15 {
		return 0
	}
	return c
}

func sin(x float64) float64 {
	s := math.Sin(x)
	if math.Abs(s-1) < 1e-15 {
		return 1
	}
	return s
}
