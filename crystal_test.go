package xtal

import (
	"errors"
	"math"
	"testing"

	"github.com/soypat/xtal/symmetry"
	"gonum.org/v1/gonum/floats/scalar"
)

func TestCrystalAccessors(t *testing.T) {
	cu := copper(t)
	if cu.Name() != "Cu" || cu.Laue() != symmetry.LaueOh || cu.SpaceGroup().Number != 225 {
		t.Errorf("got %v", cu)
	}
	atoms := cu.Atoms()
	if err := atoms.Add(MustAtom(1, 0.1, 0.1, 0.1)); err != nil {
		t.Fatal(err)
	}
	if cu.Atoms().Len() != 4 {
		t.Error("crystal mutated through Atoms copy")
	}
	if !cu.Equal(copper(t)) {
		t.Error("identically built crystals not equal")
	}
	if cu.Equal(silicon(t)) || cu.Equal(nil) {
		t.Error("different crystals equal")
	}

	cell, _ := Cubic(copperA + 1e-8)
	near, err := NewCrystal("Cu", cell, copper(t).Atoms(), symmetry.LaueOh)
	if err != nil {
		t.Fatal(err)
	}
	if cu.Equal(near) || !cu.EqualWithin(near, 1e-6) {
		t.Error("tolerance equality mismatch")
	}
	if near.SpaceGroup() != nil || !near.Basis().Equal(near.Atoms()) {
		t.Error("crystal without space group must use its atoms as basis")
	}
}

func TestCrystalInvalid(t *testing.T) {
	cell, _ := Cubic(4)
	atoms := MustAtomSites(MustAtom(29, 0, 0, 0))
	if _, err := NewCrystal("x", UnitCell{}, atoms, symmetry.LaueOh); !errors.Is(err, ErrInvalidUnitCell) {
		t.Errorf("got %v. want ErrInvalidUnitCell", err)
	}
	if _, err := NewCrystal("x", cell, AtomSites{}, symmetry.LaueOh); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("got %v. want ErrInvalidArgument", err)
	}
	if _, err := NewCrystal("x", cell, atoms, 0); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("got %v. want ErrInvalidArgument", err)
	}
	if _, err := NewCrystalSpaceGroup("x", cell, atoms, nil); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("got %v. want ErrInvalidArgument", err)
	}
}

func TestPlaneCanonical(t *testing.T) {
	for _, test := range []struct {
		in, want Plane
	}{
		{Plane{1, 1, 1}, Plane{1, 1, 1}},
		{Plane{-1, -1, -1}, Plane{1, 1, 1}},
		{Plane{-1, 2, 0}, Plane{1, -2, 0}},
		{Plane{0, -1, 3}, Plane{0, 1, -3}},
		{Plane{0, 0, -2}, Plane{0, 0, 2}},
		{Plane{0, 2, -1}, Plane{0, 2, -1}},
	} {
		if got := test.in.Canonical(); got != test.want {
			t.Errorf("%v: got %v. want %v", test.in, got, test.want)
		}
		if test.in.Canonical() != test.in.Neg().Canonical() {
			t.Errorf("%v and its twin canonicalize differently", test.in)
		}
	}
	if got := (Plane{2, -4, 6}).Reduced(); got != (Plane{1, -2, 3}) {
		t.Errorf("got %v", got)
	}
	if _, err := NewPlane(0, 0, 0); !errors.Is(err, ErrZeroPlane) {
		t.Errorf("got %v. want ErrZeroPlane", err)
	}
}

func TestNeighborsFCC(t *testing.T) {
	cu := copper(t)
	nn := copperA / math.Sqrt2
	for _, test := range []struct {
		cutoff float64
		want   int
	}{
		{2, 0},
		{2.6, 12},
		{3.7, 18},
		{4.5, 42},
	} {
		got, err := Neighbors(cu, 0, test.cutoff)
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != test.want {
			t.Errorf("cutoff %g: got %d neighbours. want %d", test.cutoff, len(got), test.want)
		}
		for i, n := range got {
			if n.Distance > test.cutoff || (i > 0 && n.Distance < got[i-1].Distance) {
				t.Errorf("cutoff %g: bad neighbour %+v", test.cutoff, n)
			}
		}
		if len(got) > 0 && !scalar.EqualWithinRel(got[0].Distance, nn, 1e-12) {
			t.Errorf("nearest neighbour at %g. want %g", got[0].Distance, nn)
		}
	}
}

func TestNeighborsImages(t *testing.T) {
	cell, _ := Cubic(1)
	c, err := NewCrystal("sc", cell, MustAtomSites(MustAtom(1, 0, 0, 0)), symmetry.LaueOh)
	if err != nil {
		t.Fatal(err)
	}
	// Reaching past the first shell requires cells beyond the adjacent ones.
	got, err := Neighbors(c, 0, 2.01)
	if err != nil {
		t.Fatal(err)
	}
	// Lattice points within radius 2: shells 1, √2, √3, 2 hold 6+12+8+6.
	if len(got) != 32 {
		t.Errorf("got %d neighbours. want 32", len(got))
	}
	for _, n := range got[:6] {
		if n.Index != 0 || !scalar.EqualWithinAbs(n.Distance, 1, 1e-12) {
			t.Errorf("bad first shell neighbour %+v", n)
		}
	}
	if _, err := Neighbors(c, 1, 1); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("got %v. want ErrInvalidArgument", err)
	}
	if _, err := Neighbors(c, 0, 0); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("got %v. want ErrInvalidArgument", err)
	}
}
