package xtal

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/soypat/xtal/internal/d3"
	"github.com/soypat/xtal/scatter"
	"gonum.org/v1/gonum/spatial/r3"
)

// PlaneSpacing returns the interplanar spacing d = 1/sqrt(pᵀ·G⁻¹·p) of p in Å.
func PlaneSpacing(p Plane, cell UnitCell) (float64, error) {
	if p.IsZero() {
		return 0, ErrZeroPlane
	}
	if !cell.valid() {
		return 0, fmt.Errorf("%w: zero value unit cell", ErrInvalidUnitCell)
	}
	return planeSpacing(p, cell), nil
}

func planeSpacing(p Plane, cell UnitCell) float64 {
	return 1 / math.Sqrt(d3.QuadForm(cell.gr, p.Vec()))
}

// StructureFactor returns F = Σ occ·f(Z,d)·exp(2πi p·x) over atoms, the
// complex amplitude diffracted by plane p.
func StructureFactor(p Plane, cell UnitCell, atoms AtomSites, model scatter.Model) (complex128, error) {
	d, err := PlaneSpacing(p, cell)
	if err != nil {
		return 0, err
	}
	if model == nil {
		return 0, fmt.Errorf("%w: nil scattering model", ErrInvalidArgument)
	}
	return structureFactor(p, d, atoms.sites, model)
}

func structureFactor(p Plane, d float64, atoms []AtomSite, model scatter.Model) (complex128, error) {
	var (
		f    [scatter.MaxAtomicNumber + 1]float64
		have [scatter.MaxAtomicNumber + 1]bool
		sum  complex128
	)
	v := p.Vec()
	for _, a := range atoms {
		if !have[a.z] {
			fz, err := model.FromPlaneSpacing(a.z, d)
			if err != nil {
				return 0, err
			}
			f[a.z], have[a.z] = fz, true
		}
		sum += cmplx.Rect(a.occ*f[a.z], tau*r3.Dot(v, a.pos))
	}
	return sum, nil
}

// DiffractionIntensity returns |F|² = F·F* for plane p.
func DiffractionIntensity(p Plane, cell UnitCell, atoms AtomSites, model scatter.Model) (float64, error) {
	f, err := StructureFactor(p, cell, atoms, model)
	if err != nil {
		return 0, err
	}
	return intensity(f), nil
}

func intensity(f complex128) float64 {
	return real(f * cmplx.Conj(f))
}

// MaximumFormFactor returns Σ f(Z,0), the forward scattering amplitude of
// every atom scattering in phase.
func MaximumFormFactor(atoms AtomSites, model scatter.Model) (float64, error) {
	if model == nil {
		return 0, fmt.Errorf("%w: nil scattering model", ErrInvalidArgument)
	}
	var sum float64
	for _, a := range atoms.sites {
		f, err := model.FromS(a.z, 0)
		if err != nil {
			return 0, err
		}
		sum += f
	}
	return sum, nil
}

// MaximumDiffractionIntensity returns the square of MaximumFormFactor, an
// upper bound on the intensity of any plane.
func MaximumDiffractionIntensity(atoms AtomSites, model scatter.Model) (float64, error) {
	f, err := MaximumFormFactor(atoms, model)
	return f * f, err
}

// IsDiffracting reports whether intensity exceeds fraction of maxIntensity.
func IsDiffracting(intensity, maxIntensity, fraction float64) bool {
	return intensity > fraction*maxIntensity
}

// BondDistance returns the distance in Å between fractional positions p and q.
func BondDistance(cell UnitCell, p, q r3.Vec) float64 {
	return cell.length(r3.Sub(q, p))
}

// BondAngle returns the angle a-b-c in radians, with b at the vertex.
func BondAngle(cell UnitCell, a, b, c r3.Vec) (float64, error) {
	u, v := r3.Sub(a, b), r3.Sub(c, b)
	lu, lv := cell.length(u), cell.length(v)
	if lu == 0 || lv == 0 {
		return 0, fmt.Errorf("%w: bond angle vertex coincides with an end", ErrInvalidArgument)
	}
	return math.Acos(clampUnit(d3.BiForm(cell.g, u, v) / (lu * lv))), nil
}

// InterplanarDirectionCosine returns the cosine of the angle between the
// normals of p and q.
func InterplanarDirectionCosine(p, q Plane, cell UnitCell) (float64, error) {
	if p.IsZero() || q.IsZero() {
		return 0, ErrZeroPlane
	}
	if !cell.valid() {
		return 0, fmt.Errorf("%w: zero value unit cell", ErrInvalidUnitCell)
	}
	u, v := p.Vec(), q.Vec()
	c := d3.BiForm(cell.gr, u, v) / math.Sqrt(d3.QuadForm(cell.gr, u)*d3.QuadForm(cell.gr, v))
	return clampUnit(c), nil
}

// InterplanarAngle returns the angle in radians between the normals of p and q.
func InterplanarAngle(p, q Plane, cell UnitCell) (float64, error) {
	c, err := InterplanarDirectionCosine(p, q, cell)
	if err != nil {
		return 0, err
	}
	return math.Acos(c), nil
}

// ZoneAxis returns the direction common to planes p and q in direct
// lattice components: the cross product of the indices scaled by the
// reciprocal cell volume. Parallel planes have no zone axis.
func ZoneAxis(p, q Plane, cell UnitCell) (r3.Vec, error) {
	if p.IsZero() || q.IsZero() {
		return r3.Vec{}, ErrZeroPlane
	}
	if !cell.valid() {
		return r3.Vec{}, fmt.Errorf("%w: zero value unit cell", ErrInvalidUnitCell)
	}
	axis := r3.Cross(p.Vec(), q.Vec())
	if axis == (r3.Vec{}) {
		return r3.Vec{}, fmt.Errorf("%w: planes %v and %v are parallel", ErrInvalidArgument, p, q)
	}
	return r3.Scale(cell.VolumeR(), axis), nil
}

// DiffractionAngle returns the Bragg angle θ = asin(nλ/2d) in radians of
// the order'th reflection from p for wavelength λ in Å. It returns an
// error wrapping ErrBraggLimit when nλ/2d exceeds 1.
func DiffractionAngle(p Plane, cell UnitCell, wavelength float64, order int) (float64, error) {
	d, err := PlaneSpacing(p, cell)
	if err != nil {
		return 0, err
	}
	theta, err := BraggAngle(d, wavelength, order)
	if err != nil {
		return 0, fmt.Errorf("plane %v: %w", p, err)
	}
	return theta, nil
}

// BraggAngle returns θ = asin(nλ/2d) in radians for plane spacing d and
// wavelength λ, both in Å.
func BraggAngle(d, wavelength float64, order int) (float64, error) {
	if !(d > 0) || !(wavelength > 0) || order < 1 {
		return 0, fmt.Errorf("%w: d=%g, wavelength %g, order %d", ErrInvalidArgument, d, wavelength, order)
	}
	x := float64(order) * wavelength / (2 * d)
	if x > 1 {
		return 0, fmt.Errorf("%w: d=%.4gÅ at λ=%gÅ", ErrBraggLimit, d, wavelength)
	}
	return math.Asin(x), nil
}

// Physical constants in SI units (CODATA 2018).
const (
	planck       = 6.62607015e-34
	electronMass = 9.1093837015e-31
	elementary   = 1.602176634e-19
	lightSpeed   = 299792458
)

// ElectronWavelength returns the relativistic wavelength in Å of an
// electron accelerated through energyEV electron volts.
func ElectronWavelength(energyEV float64) (float64, error) {
	if !(energyEV > 0) || math.IsInf(energyEV, 1) {
		return 0, fmt.Errorf("%w: electron energy %g eV", ErrInvalidArgument, energyEV)
	}
	e := elementary * energyEV
	p := math.Sqrt(2 * electronMass * e * (1 + e/(2*electronMass*lightSpeed*lightSpeed)))
	return planck / p * 1e10, nil
}
