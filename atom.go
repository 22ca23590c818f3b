package xtal

import (
	"errors"
	"fmt"
	"iter"
	"math"
	"slices"

	"github.com/soypat/xtal/internal/d3"
	"github.com/soypat/xtal/scatter"
	"github.com/soypat/xtal/symmetry"
	"gonum.org/v1/gonum/spatial/r3"
)

// Wrap reduces a fractional coordinate into [0,1).
func Wrap(x float64) float64 { return d3.Wrap(x) }

// AtomSite is an atom of a given element and occupancy at a fractional
// position inside the unit cell. Positions are always held in [0,1).
// Two sites compare equal with == only when every field matches exactly.
type AtomSite struct {
	z   int
	occ float64
	pos r3.Vec
}

// NewAtomSite validates the atomic number and occupancy and wraps the
// position into the unit cell.
func NewAtomSite(z int, x, y, zc, occupancy float64) (AtomSite, error) {
	if z < 1 || z > scatter.MaxAtomicNumber {
		return AtomSite{}, fmt.Errorf("%w: atomic number %d outside [1,%d]", ErrInvalidAtom, z, scatter.MaxAtomicNumber)
	}
	if !(occupancy >= 0 && occupancy <= 1) {
		return AtomSite{}, fmt.Errorf("%w: occupancy %g outside [0,1]", ErrInvalidAtom, occupancy)
	}
	p := r3.Vec{X: x, Y: y, Z: zc}
	if !d3.IsFinite(p) {
		return AtomSite{}, fmt.Errorf("%w: non-finite position %v", ErrInvalidAtom, p)
	}
	return AtomSite{z: z, occ: occupancy, pos: d3.WrapElem(p)}, nil
}

// NewAtom returns a fully occupied site.
func NewAtom(z int, x, y, zc float64) (AtomSite, error) {
	return NewAtomSite(z, x, y, zc, 1)
}

// MustAtom is like NewAtom but panics on invalid input.
func MustAtom(z int, x, y, zc float64) AtomSite {
	a, err := NewAtom(z, x, y, zc)
	if err != nil {
		panic(err)
	}
	return a
}

func (a AtomSite) Z() int { return a.z }

func (a AtomSite) Occupancy() float64 { return a.occ }

// Position returns the fractional coordinates of the site, each in [0,1).
func (a AtomSite) Position() r3.Vec { return a.pos }

func (a AtomSite) Symbol() string { return ElementSymbol(a.z) }

func (a AtomSite) valid() bool { return a.z > 0 }

func (a AtomSite) samePlace(b AtomSite) bool {
	return d3.EqualWithinPeriodic(a.pos, b.pos, Tolerance)
}

// Transform returns the image of a under generator g. The element and
// occupancy are preserved.
func (a AtomSite) Transform(g symmetry.Generator) AtomSite {
	a.pos = g.Apply(a.pos)
	return a
}

// EqualWithin reports whether a and b have atomic numbers, occupancies and
// positions within tol of each other. Position differences are measured
// modulo the lattice.
func (a AtomSite) EqualWithin(b AtomSite, tol float64) bool {
	return math.Abs(float64(a.z-b.z)) <= tol &&
		math.Abs(a.occ-b.occ) <= tol &&
		d3.EqualWithinPeriodic(a.pos, b.pos, tol)
}

func (a AtomSite) String() string {
	s := fmt.Sprintf("%s (%.5g, %.5g, %.5g)", a.Symbol(), a.pos.X, a.pos.Y, a.pos.Z)
	if a.occ != 1 {
		s += fmt.Sprintf(" occ=%g", a.occ)
	}
	return s
}

// AtomSites is an insertion ordered set of atom sites in which no two
// members lie within Tolerance of each other. The zero value is an empty set.
type AtomSites struct {
	sites []AtomSite
}

// NewAtomSites builds a set from sites in order. The first duplicate
// position is reported.
func NewAtomSites(sites ...AtomSite) (AtomSites, error) {
	var s AtomSites
	for _, a := range sites {
		if err := s.Add(a); err != nil {
			return AtomSites{}, err
		}
	}
	return s, nil
}

// MustAtomSites is like NewAtomSites but panics on error.
func MustAtomSites(sites ...AtomSite) AtomSites {
	s, err := NewAtomSites(sites...)
	if err != nil {
		panic(err)
	}
	return s
}

// indexNear returns the index of the member at a's position, ignoring
// index skip, or -1.
func (s *AtomSites) indexNear(a AtomSite, skip int) int {
	for i, b := range s.sites {
		if i != skip && a.samePlace(b) {
			return i
		}
	}
	return -1
}

// Add appends a to the set. It returns an error wrapping
// ErrDuplicatePosition and leaves the set unchanged if a member already
// occupies a's position. The atomic number is not considered.
func (s *AtomSites) Add(a AtomSite) error {
	if !a.valid() {
		return fmt.Errorf("%w: zero value site", ErrInvalidAtom)
	}
	if i := s.indexNear(a, -1); i >= 0 {
		return fmt.Errorf("%w: %v coincides with site %d %v", ErrDuplicatePosition, a, i, s.sites[i])
	}
	s.sites = append(s.sites, a)
	return nil
}

// AddAll adds every site in order. Sites that are rejected are skipped and
// their errors joined into the returned error.
func (s *AtomSites) AddAll(sites ...AtomSite) error {
	var errs []error
	for _, a := range sites {
		if err := s.Add(a); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Set replaces the site at index i. The replacement may keep the position
// of the site it replaces but not that of any other member.
func (s *AtomSites) Set(i int, a AtomSite) error {
	if i < 0 || i >= len(s.sites) {
		return fmt.Errorf("%w: index %d out of range [0,%d)", ErrInvalidArgument, i, len(s.sites))
	}
	if !a.valid() {
		return fmt.Errorf("%w: zero value site", ErrInvalidAtom)
	}
	if j := s.indexNear(a, i); j >= 0 {
		return fmt.Errorf("%w: %v coincides with site %d %v", ErrDuplicatePosition, a, j, s.sites[j])
	}
	s.sites[i] = a
	return nil
}

func (s AtomSites) Len() int { return len(s.sites) }

// At returns the i'th site in insertion order.
func (s AtomSites) At(i int) AtomSite { return s.sites[i] }

// All iterates over the sites in insertion order.
func (s AtomSites) All() iter.Seq2[int, AtomSite] {
	return func(yield func(int, AtomSite) bool) {
		for i, a := range s.sites {
			if !yield(i, a) {
				return
			}
		}
	}
}

// Slice returns a copy of the sites.
func (s AtomSites) Slice() []AtomSite { return slices.Clone(s.sites) }

// Clone returns an independent copy of s.
func (s AtomSites) Clone() AtomSites { return AtomSites{sites: slices.Clone(s.sites)} }

// Equal reports whether s and other hold exactly the same sites in the same order.
func (s AtomSites) Equal(other AtomSites) bool {
	return slices.Equal(s.sites, other.sites)
}

// EqualWithin reports whether every site of s has a counterpart in other
// within tol and both sets have the same size. Order is ignored.
func (s AtomSites) EqualWithin(other AtomSites, tol float64) bool {
	if len(s.sites) != len(other.sites) {
		return false
	}
	used := make([]bool, len(other.sites))
outer:
	for _, a := range s.sites {
		for j, b := range other.sites {
			if !used[j] && a.EqualWithin(b, tol) {
				used[j] = true
				continue outer
			}
		}
		return false
	}
	return true
}
