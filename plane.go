package xtal

import (
	"fmt"

	"github.com/soypat/xtal/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// Plane is a crystallographic plane given by its Miller indices. The zero
// value (0 0 0) is not a plane and is rejected wherever geometry is computed.
type Plane struct {
	H, K, L int
}

// NewPlane returns the plane (h k l) or ErrZeroPlane.
func NewPlane(h, k, l int) (Plane, error) {
	p := Plane{H: h, K: k, L: l}
	if p.IsZero() {
		return Plane{}, ErrZeroPlane
	}
	return p, nil
}

// IsZero reports whether all three indices are zero.
func (p Plane) IsZero() bool { return p == Plane{} }

// Neg returns (-h -k -l).
func (p Plane) Neg() Plane { return Plane{H: -p.H, K: -p.K, L: -p.L} }

// Canonical returns the representative of p and its antiparallel twin
// whose first nonzero index is positive.
func (p Plane) Canonical() Plane {
	switch {
	case p.H < 0,
		p.H == 0 && p.K < 0,
		p.H == 0 && p.K == 0 && p.L < 0:
		return p.Neg()
	}
	return p
}

// IsCanonical reports whether p == p.Canonical().
func (p Plane) IsCanonical() bool { return p.Canonical() == p }

// Reduced divides the indices by their greatest common divisor.
func (p Plane) Reduced() Plane {
	g := gcd(gcd(abs(p.H), abs(p.K)), abs(p.L))
	if g <= 1 {
		return p
	}
	return Plane{H: p.H / g, K: p.K / g, L: p.L / g}
}

// Vec returns the indices as a vector of reciprocal lattice components.
func (p Plane) Vec() r3.Vec { return d3.FromInts([3]int{p.H, p.K, p.L}) }

// Less orders planes lexicographically by H, K then L.
func (p Plane) Less(q Plane) bool {
	if p.H != q.H {
		return p.H < q.H
	}
	if p.K != q.K {
		return p.K < q.K
	}
	return p.L < q.L
}

func (p Plane) String() string {
	return fmt.Sprintf("(%d %d %d)", p.H, p.K, p.L)
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func abs(a int) int {
	if a < 0 {
		return -a
	}
	return a
}
