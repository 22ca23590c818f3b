package xtal

import (
	"errors"
	"math"
	"testing"

	"github.com/soypat/xtal/internal/d3"
	"github.com/soypat/xtal/symmetry"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestNewAtomWraps(t *testing.T) {
	a, err := NewAtom(26, 1.5, -0.5, 0.0)
	if err != nil {
		t.Fatal(err)
	}
	if want := (r3.Vec{X: 0.5, Y: 0.5}); a.Position() != want {
		t.Errorf("got %v. want %v", a.Position(), want)
	}
	if a.Z() != 26 || a.Occupancy() != 1 || a.Symbol() != "Fe" {
		t.Errorf("got %v", a)
	}
	for _, x := range []float64{-1e-20, -3.25, 7, 1e9 + 0.25, math.Nextafter(1, 0)} {
		w := Wrap(x)
		if w < 0 || w >= 1 {
			t.Errorf("Wrap(%g)=%g outside [0,1)", x, w)
		}
		if Wrap(w) != w {
			t.Errorf("Wrap not idempotent at %g", x)
		}
	}
}

func TestNewAtomSiteInvalid(t *testing.T) {
	for _, test := range []struct {
		z       int
		p       r3.Vec
		occ     float64
		wantErr bool
	}{
		{z: 1, occ: 1},
		{z: 111, occ: 0},
		{z: 0, occ: 1, wantErr: true},
		{z: 112, occ: 1, wantErr: true},
		{z: 8, occ: -0.01, wantErr: true},
		{z: 8, occ: 1.01, wantErr: true},
		{z: 8, occ: math.NaN(), wantErr: true},
		{z: 8, occ: 1, p: r3.Vec{X: math.Inf(-1)}, wantErr: true},
		{z: 8, occ: 1, p: r3.Vec{Z: math.NaN()}, wantErr: true},
	} {
		_, err := NewAtomSite(test.z, test.p.X, test.p.Y, test.p.Z, test.occ)
		if test.wantErr != errors.Is(err, ErrInvalidAtom) {
			t.Errorf("Z=%d occ=%g p=%v: got error %v", test.z, test.occ, test.p, err)
		}
	}
}

func TestAtomicNumber(t *testing.T) {
	for in, want := range map[string]int{"Cu": 29, "cu": 29, " 14": 14, "Rg": 111, "H": 1} {
		got, err := AtomicNumber(in)
		if err != nil || got != want {
			t.Errorf("AtomicNumber(%q): got %d %v. want %d", in, got, err, want)
		}
	}
	for _, in := range []string{"Xx", "0", "112", ""} {
		if _, err := AtomicNumber(in); !errors.Is(err, ErrInvalidAtom) {
			t.Errorf("AtomicNumber(%q): got %v. want ErrInvalidAtom", in, err)
		}
	}
}

func TestAtomSitesDuplicates(t *testing.T) {
	var s AtomSites
	if err := s.Add(MustAtom(29, 0, 0, 0)); err != nil {
		t.Fatal(err)
	}
	// Positions are compared modulo the lattice and ignore the element.
	for _, dup := range []AtomSite{
		MustAtom(29, 0, 0, 0),
		MustAtom(30, 0.999999, 0, 0),
		MustAtom(8, 4e-6, 1-4e-6, 0),
	} {
		if err := s.Add(dup); !errors.Is(err, ErrDuplicatePosition) {
			t.Errorf("Add(%v): got %v. want ErrDuplicatePosition", dup, err)
		}
	}
	if err := s.Add(MustAtom(29, 2e-5, 0, 0)); err != nil {
		t.Errorf("site beyond tolerance rejected: %v", err)
	}
	if s.Len() != 2 {
		t.Fatalf("got %d sites. want 2", s.Len())
	}

	err := s.AddAll(MustAtom(1, 0.5, 0.5, 0.5), MustAtom(1, 0, 0, 0), MustAtom(1, 0.5, 0.5, 0.5), MustAtom(1, 0.25, 0, 0))
	if !errors.Is(err, ErrDuplicatePosition) {
		t.Errorf("AddAll: got %v. want ErrDuplicatePosition", err)
	}
	if s.Len() != 4 {
		t.Errorf("AddAll kept %d sites. want 4", s.Len())
	}

	// Replacing a site may keep its own position but not take another's.
	if err := s.Set(0, MustAtom(26, 0, 0, 0)); err != nil {
		t.Errorf("Set in place: %v", err)
	}
	if s.At(0).Z() != 26 {
		t.Errorf("Set did not replace site: %v", s.At(0))
	}
	if err := s.Set(0, MustAtom(26, 0.5, 0.5, 0.5)); !errors.Is(err, ErrDuplicatePosition) {
		t.Errorf("Set onto other site: got %v", err)
	}
	if err := s.Set(9, MustAtom(26, 0.1, 0.1, 0.1)); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Set out of range: got %v", err)
	}
	if err := s.Add(AtomSite{}); !errors.Is(err, ErrInvalidAtom) {
		t.Errorf("Add zero value: got %v", err)
	}
}

func TestAtomSitesEquality(t *testing.T) {
	a := MustAtomSites(MustAtom(29, 0, 0, 0), MustAtom(29, 0.5, 0.5, 0))
	b := MustAtomSites(MustAtom(29, 0.5, 0.5+1e-9, 0), MustAtom(29, 1-1e-9, 0, 0))
	if a.Equal(b) {
		t.Error("exact equality ignores coordinates")
	}
	if !a.Equal(a.Clone()) {
		t.Error("clone not equal")
	}
	if !a.EqualWithin(b, 1e-6) {
		t.Error("tolerance equality must ignore order")
	}
	c := MustAtomSites(MustAtom(28, 0, 0, 0), MustAtom(29, 0.5, 0.5, 0))
	if a.EqualWithin(c, 1e-6) {
		t.Error("different elements compared equal")
	}
	n := 0
	for i, site := range a.All() {
		if site != a.At(i) {
			t.Errorf("All yielded %v at %d", site, i)
		}
		n++
	}
	if n != a.Len() {
		t.Errorf("All yielded %d sites. want %d", n, a.Len())
	}
	if _, err := NewAtomSites(MustAtom(1, 0, 0, 0), MustAtom(2, 1, 1, 1)); !errors.Is(err, ErrDuplicatePosition) {
		t.Errorf("got %v. want ErrDuplicatePosition", err)
	}
}

func TestExpandIdentity(t *testing.T) {
	basis := MustAtomSites(MustAtom(29, 0, 0, 0))
	got := Expand(basis, []symmetry.Generator{symmetry.Identity})
	if got.Len() != 1 || got.At(0) != basis.At(0) {
		t.Errorf("got %v", got.Slice())
	}
	if got := Expand(basis, nil); !got.Equal(basis) {
		t.Errorf("nil generators: got %v", got.Slice())
	}
}

func TestExpandSpaceGroups(t *testing.T) {
	for _, test := range []struct {
		group int
		basis []AtomSite
		want  int
	}{
		{225, []AtomSite{MustAtom(29, 0, 0, 0)}, 4},
		{225, []AtomSite{MustAtom(11, 0, 0, 0), MustAtom(17, 0.5, 0.5, 0.5)}, 8},
		{229, []AtomSite{MustAtom(26, 0, 0, 0)}, 2},
		{227, []AtomSite{MustAtom(14, 0.125, 0.125, 0.125)}, 8},
		{194, []AtomSite{MustAtom(12, 1.0/3, 2.0/3, 0.25)}, 2},
		{221, []AtomSite{MustAtom(55, 0, 0, 0), MustAtom(17, 0.5, 0.5, 0.5)}, 2},
		{216, []AtomSite{MustAtom(30, 0, 0, 0), MustAtom(16, 0.25, 0.25, 0.25)}, 8},
		{1, []AtomSite{MustAtom(1, 0.1, 0.2, 0.3)}, 1},
		{2, []AtomSite{MustAtom(1, 0.1, 0.2, 0.3)}, 2},
	} {
		sg, err := symmetry.Lookup(test.group)
		if err != nil {
			t.Fatal(err)
		}
		gens := sg.Generators()
		got := Expand(MustAtomSites(test.basis...), gens)
		if got.Len() != test.want {
			t.Errorf("%v: got %d sites. want %d", sg, got.Len(), test.want)
		}
		if got.Len() > len(gens)*len(test.basis) {
			t.Errorf("%v: orbit larger than generator count", sg)
		}
		// Every image of every site is already in the set.
		for _, a := range got.All() {
			for _, g := range gens {
				img := a.Transform(g)
				found := false
				for _, b := range got.All() {
					if b.Z() == img.Z() && d3.EqualWithinPeriodic(b.Position(), img.Position(), Tolerance) {
						found = true
						break
					}
				}
				if !found {
					t.Errorf("%v: %v maps %v outside the expanded set", sg, g, a)
				}
			}
		}
	}
}
