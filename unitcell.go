package xtal

import (
	"fmt"
	"math"

	"github.com/soypat/xtal/internal/d3"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// UnitCell is the repeat unit of a lattice, given by three edge lengths in
// Ångström and three angles in radians. Derived reciprocal quantities and
// matrices are computed once on construction. The zero value is not a valid
// cell; use NewUnitCell.
//
// The Cartesian frame places a along x and b in the xy plane, with c
// completing a right handed frame.
type UnitCell struct {
	a, b, c             float64
	alpha, beta, gamma  float64
	ar, br, cr          float64
	alphaR, betaR, gamR float64
	volume              float64
	g, gr, h            *r3.Mat
}

// NewUnitCell validates the lattice constants and derives the metric tensor,
// its inverse (the reciprocal metric), the Cartesian matrix and reciprocal
// lattice parameters.
func NewUnitCell(a, b, c, alpha, beta, gamma float64) (UnitCell, error) {
	for _, l := range [3]float64{a, b, c} {
		if !isFinite(l) || l <= 0 {
			return UnitCell{}, fmt.Errorf("%w: edge length %g not positive", ErrInvalidUnitCell, l)
		}
	}
	for _, ang := range [3]float64{alpha, beta, gamma} {
		if !isFinite(ang) || ang <= 0 || ang >= pi {
			return UnitCell{}, fmt.Errorf("%w: angle %g outside (0,π)", ErrInvalidUnitCell, ang)
		}
	}
	ca, cb, cg := cos(alpha), cos(beta), cos(gamma)
	sa, sb, sg := sin(alpha), sin(beta), sin(gamma)
	g := r3.NewMat([]float64{
		a * a, a * b * cg, a * c * cb,
		a * b * cg, b * b, b * c * ca,
		a * c * cb, b * c * ca, c * c,
	})
	det := g.Det()
	if !(det > 0) {
		return UnitCell{}, fmt.Errorf("%w: angles (%g, %g, %g) do not close a cell", ErrInvalidUnitCell, alpha, beta, gamma)
	}
	var inv mat.Dense
	if err := inv.Inverse(g); err != nil {
		return UnitCell{}, fmt.Errorf("%w: singular metric tensor: %v", ErrInvalidUnitCell, err)
	}
	gr := r3.NewMat(nil)
	gr.CloneFrom(&inv)

	v := math.Sqrt(det)
	h := r3.NewMat([]float64{
		a, b * cg, c * cb,
		0, b * sg, c * (ca - cb*cg) / sg,
		0, 0, v / (a * b * sg),
	})
	return UnitCell{
		a: a, b: b, c: c,
		alpha: alpha, beta: beta, gamma: gamma,
		ar:     b * c * sa / v,
		br:     a * c * sb / v,
		cr:     a * b * sg / v,
		alphaR: math.Acos(clampUnit((cb*cg - ca) / (sb * sg))),
		betaR:  math.Acos(clampUnit((ca*cg - cb) / (sa * sg))),
		gamR:   math.Acos(clampUnit((ca*cb - cg) / (sa * sb))),
		volume: v,
		g:      g,
		gr:     gr,
		h:      h,
	}, nil
}

// MustUnitCell is like NewUnitCell but panics on invalid input.
func MustUnitCell(a, b, c, alpha, beta, gamma float64) UnitCell {
	cell, err := NewUnitCell(a, b, c, alpha, beta, gamma)
	if err != nil {
		panic(err)
	}
	return cell
}

// Cubic returns the cubic cell with edge a.
func Cubic(a float64) (UnitCell, error) {
	return NewUnitCell(a, a, a, pi/2, pi/2, pi/2)
}

// Tetragonal returns the tetragonal cell with edges a, a, c.
func Tetragonal(a, c float64) (UnitCell, error) {
	return NewUnitCell(a, a, c, pi/2, pi/2, pi/2)
}

// Orthorhombic returns the orthorhombic cell with edges a, b, c.
func Orthorhombic(a, b, c float64) (UnitCell, error) {
	return NewUnitCell(a, b, c, pi/2, pi/2, pi/2)
}

// Hexagonal returns the hexagonal cell with edges a, a, c and γ = 120°.
func Hexagonal(a, c float64) (UnitCell, error) {
	return NewUnitCell(a, a, c, pi/2, pi/2, 2*pi/3)
}

func (u UnitCell) A() float64 { return u.a }
func (u UnitCell) B() float64 { return u.b }
func (u UnitCell) C() float64 { return u.c }

func (u UnitCell) Alpha() float64 { return u.alpha }
func (u UnitCell) Beta() float64 { return u.beta }
func (u UnitCell) Gamma() float64 { return u.gamma }

// AR, BR and CR return the reciprocal lattice edge lengths in 1/Å.
func (u UnitCell) AR() float64 { return u.ar }
func (u UnitCell) BR() float64 { return u.br }
func (u UnitCell) CR() float64 { return u.cr }

// AlphaR, BetaR and GammaR return the reciprocal lattice angles in radians.
func (u UnitCell) AlphaR() float64 { return u.alphaR }
func (u UnitCell) BetaR() float64 { return u.betaR }
func (u UnitCell) GammaR() float64 { return u.gamR }

// Volume returns the cell volume sqrt(det G) in Å³.
func (u UnitCell) Volume() float64 { return u.volume }

// VolumeR returns the reciprocal cell volume 1/V.
func (u UnitCell) VolumeR() float64 {
	if u.volume == 0 {
		return 0
	}
	return 1 / u.volume
}

// MetricTensor returns a copy of the metric tensor G, with G_ij = aᵢ·aⱼ.
func (u UnitCell) MetricTensor() *r3.Mat { return cloneMat(u.g) }

// ReciprocalMetricTensor returns a copy of G⁻¹.
func (u UnitCell) ReciprocalMetricTensor() *r3.Mat { return cloneMat(u.gr) }

// CartesianMatrix returns a copy of the matrix H whose columns are the
// lattice vectors in Cartesian coordinates, so that HᵀH = G.
func (u UnitCell) CartesianMatrix() *r3.Mat { return cloneMat(u.h) }

// ToCartesian converts fractional coordinates to Cartesian Ångström.
func (u UnitCell) ToCartesian(frac r3.Vec) r3.Vec {
	return u.h.MulVec(frac)
}

// valid reports whether u was built by NewUnitCell.
func (u UnitCell) valid() bool { return u.volume > 0 }

// params returns the six defining lattice constants.
func (u UnitCell) params() [6]float64 {
	return [6]float64{u.a, u.b, u.c, u.alpha, u.beta, u.gamma}
}

// Equal reports whether both cells have identical lattice constants.
func (u UnitCell) Equal(other UnitCell) bool {
	return u.params() == other.params()
}

// EqualWithin reports whether all six lattice constants of u and other
// differ by at most tol.
func (u UnitCell) EqualWithin(other UnitCell, tol float64) bool {
	p, q := u.params(), other.params()
	for i := range p {
		if math.Abs(p[i]-q[i]) > tol {
			return false
		}
	}
	return true
}

func (u UnitCell) String() string {
	return fmt.Sprintf("a=%g b=%g c=%g α=%g° β=%g° γ=%g°",
		u.a, u.b, u.c, RtoD(u.alpha), RtoD(u.beta), RtoD(u.gamma))
}

// length returns the length in Å of the fractional vector v.
func (u UnitCell) length(v r3.Vec) float64 {
	return math.Sqrt(d3.QuadForm(u.g, v))
}

func cloneMat(m *r3.Mat) *r3.Mat {
	out := r3.NewMat(nil)
	if m != nil {
		out.CloneFrom(m)
	}
	return out
}
