package symmetry

import (
	"fmt"
	"math"
	"strings"

	"github.com/soypat/xtal/internal/d3"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// LaueGroup is one of the 11 centrosymmetric point groups that diffraction
// can distinguish. Constants are named after the Schoenflies symbol.
type LaueGroup uint8

const (
	LaueCi  LaueGroup = iota + 1 // -1
	LaueC2h                      // 2/m
	LaueD2h                      // mmm
	LaueC4h                      // 4/m
	LaueD4h                      // 4/mmm
	LaueC3i                      // -3
	LaueD3d                      // -3m
	LaueC6h                      // 6/m
	LaueD6h                      // 6/mmm
	LaueTh                       // m-3
	LaueOh                       // m-3m
)

const quatTol = 1e-9

type laueDef struct {
	symbol string
	system CrystalSystem
	// gens are the rotations generating ops.
	gens []r3.Rotation
	ops  []r3.Rotation
}

var (
	axisX   = r3.Vec{X: 1}
	axisY   = r3.Vec{Y: 1}
	axisZ   = r3.Vec{Z: 1}
	axis111 = r3.Vec{X: 1, Y: 1, Z: 1}
)

var laueGroups = [...]laueDef{
	LaueCi:  {symbol: "-1", system: Triclinic},
	LaueC2h: {symbol: "2/m", system: Monoclinic, gens: []r3.Rotation{fold(2, axisY)}},
	LaueD2h: {symbol: "mmm", system: Orthorhombic, gens: []r3.Rotation{fold(2, axisZ), fold(2, axisX)}},
	LaueC4h: {symbol: "4/m", system: Tetragonal, gens: []r3.Rotation{fold(4, axisZ)}},
	LaueD4h: {symbol: "4/mmm", system: Tetragonal, gens: []r3.Rotation{fold(4, axisZ), fold(2, axisX)}},
	LaueC3i: {symbol: "-3", system: Trigonal, gens: []r3.Rotation{fold(3, axisZ)}},
	LaueD3d: {symbol: "-3m", system: Trigonal, gens: []r3.Rotation{fold(3, axisZ), fold(2, axisX)}},
	LaueC6h: {symbol: "6/m", system: Hexagonal, gens: []r3.Rotation{fold(6, axisZ)}},
	LaueD6h: {symbol: "6/mmm", system: Hexagonal, gens: []r3.Rotation{fold(6, axisZ), fold(2, axisX)}},
	LaueTh:  {symbol: "m-3", system: Cubic, gens: []r3.Rotation{fold(2, axisZ), fold(3, axis111)}},
	LaueOh:  {symbol: "m-3m", system: Cubic, gens: []r3.Rotation{fold(4, axisZ), fold(3, axis111)}},
}

func init() {
	for i := range laueGroups {
		if i == 0 {
			continue
		}
		laueGroups[i].ops = rotationClosure(laueGroups[i].gens)
	}
}

// fold returns the n-fold rotation about axis.
func fold(n int, axis r3.Vec) r3.Rotation {
	return r3.NewRotation(2*math.Pi/float64(n), axis)
}

// rotationClosure multiplies the generators until no new rotation appears.
// q and -q describe the same rotation and are stored once with Real >= 0.
func rotationClosure(gens []r3.Rotation) []r3.Rotation {
	ops := []r3.Rotation{{Real: 1}}
	for i := 0; i < len(ops); i++ {
		for _, g := range gens {
			next := canonicalRotation(r3.Rotation(quat.Mul(quat.Number(ops[i]), quat.Number(g))))
			if !containsRotation(ops, next) {
				ops = append(ops, next)
			}
		}
	}
	return ops
}

func containsRotation(ops []r3.Rotation, q r3.Rotation) bool {
	for _, op := range ops {
		if rotationEqual(op, q) {
			return true
		}
	}
	return false
}

func rotationEqual(a, b r3.Rotation) bool {
	return math.Abs(a.Real-b.Real) <= quatTol && math.Abs(a.Imag-b.Imag) <= quatTol &&
		math.Abs(a.Jmag-b.Jmag) <= quatTol && math.Abs(a.Kmag-b.Kmag) <= quatTol
}

// canonicalRotation picks the representative of ±q whose first
// component that is not zero is positive.
func canonicalRotation(q r3.Rotation) r3.Rotation {
	for _, v := range [4]float64{q.Real, q.Imag, q.Jmag, q.Kmag} {
		if math.Abs(v) <= quatTol {
			continue
		}
		if v < 0 {
			return r3.Rotation(quat.Scale(-1, quat.Number(q)))
		}
		break
	}
	return q
}

func (l LaueGroup) valid() bool { return l >= LaueCi && l <= LaueOh }

// Symbol returns the Hermann-Mauguin symbol, e.g. "m-3m".
func (l LaueGroup) Symbol() string {
	if !l.valid() {
		return ""
	}
	return laueGroups[l].symbol
}

func (l LaueGroup) String() string {
	if !l.valid() {
		return fmt.Sprintf("LaueGroup(%d)", uint8(l))
	}
	return laueGroups[l].symbol
}

// System returns the crystal system the Laue group belongs to.
func (l LaueGroup) System() CrystalSystem {
	if !l.valid() {
		return 0
	}
	return laueGroups[l].system
}

// Operators returns the proper rotations of the group as unit quaternions,
// identity first.
func (l LaueGroup) Operators() []r3.Rotation {
	if !l.valid() {
		return nil
	}
	return append([]r3.Rotation(nil), laueGroups[l].ops...)
}

// Order returns the number of proper rotations in the group.
func (l LaueGroup) Order() int {
	if !l.valid() {
		return 0
	}
	return len(laueGroups[l].ops)
}

// Reduce returns the symmetry equivalent of orientation q lying in the
// fundamental zone: the equivalent q·s with the smallest rotation angle.
// The result has a non-negative real part.
func (l LaueGroup) Reduce(q r3.Rotation) r3.Rotation {
	if !l.valid() {
		return canonicalRotation(q)
	}
	q = r3.Rotation(quat.Scale(1/quat.Abs(quat.Number(q)), quat.Number(q)))
	var best r3.Rotation
	first := true
	for _, s := range laueGroups[l].ops {
		c := r3.Rotation(quat.Mul(quat.Number(q), quat.Number(s)))
		if c.Real < 0 {
			c = r3.Rotation(quat.Scale(-1, quat.Number(c)))
		}
		if first || betterRotation(c, best) {
			best = c
			first = false
		}
	}
	return best
}

// betterRotation orders equivalents by decreasing real part and breaks
// ties lexicographically so Reduce does not depend on operator order.
func betterRotation(a, b r3.Rotation) bool {
	for _, d := range [4]float64{a.Real - b.Real, a.Imag - b.Imag, a.Jmag - b.Jmag, a.Kmag - b.Kmag} {
		if d > quatTol {
			return true
		}
		if d < -quatTol {
			return false
		}
	}
	return false
}

// EquivalentPoles returns the distinct directions equivalent to pole v
// under the group, including the inversion shared by all Laue groups.
// The pole itself is first.
func (l LaueGroup) EquivalentPoles(v r3.Vec) []r3.Vec {
	if !l.valid() {
		return []r3.Vec{v}
	}
	var poles []r3.Vec
	add := func(p r3.Vec) {
		for _, q := range poles {
			if d3.EqualWithin(p, q, quatTol*(1+r3.Norm(v))) {
				return
			}
		}
		poles = append(poles, p)
	}
	for _, s := range laueGroups[l].ops {
		p := s.Rotate(v)
		add(p)
		add(r3.Scale(-1, p))
	}
	return poles
}

// ParseLaueGroup accepts a Hermann-Mauguin ("m-3m") or Schoenflies ("Oh")
// symbol.
func ParseLaueGroup(s string) (LaueGroup, error) {
	key := strings.ReplaceAll(s, " ", "")
	for i := LaueCi; i <= LaueOh; i++ {
		if key == laueGroups[i].symbol || strings.EqualFold(key, schoenfliesLaue[i]) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("symmetry: unknown Laue group %q", s)
}

var schoenfliesLaue = [...]string{
	LaueCi: "Ci", LaueC2h: "C2h", LaueD2h: "D2h", LaueC4h: "C4h", LaueD4h: "D4h",
	LaueC3i: "C3i", LaueD3d: "D3d", LaueC6h: "C6h", LaueD6h: "D6h", LaueTh: "Th", LaueOh: "Oh",
}
