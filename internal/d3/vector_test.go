package d3

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestWrap(t *testing.T) {
	for _, test := range []struct {
		x, want float64
	}{
		{0, 0},
		{0.25, 0.25},
		{1, 0},
		{1.5, 0.5},
		{-0.5, 0.5},
		{-1, 0},
		{-2.75, 0.25},
		{12.125, 0.125},
		{-1e-20, 0},
	} {
		got := Wrap(test.x)
		if math.Abs(got-test.want) > 1e-12 {
			t.Errorf("Wrap(%g): got %g. want %g", test.x, got, test.want)
		}
	}
}

func TestWrapIdempotent(t *testing.T) {
	for _, x := range []float64{-1e9, -123.456, -1, -1e-17, 0, 1e-300, 0.999999999, 1, 7.5, 1e12} {
		w := Wrap(x)
		if w < 0 || w >= 1 {
			t.Errorf("Wrap(%g)=%g outside [0,1)", x, w)
		}
		if ww := Wrap(w); ww != w {
			t.Errorf("Wrap not idempotent for %g: %g != %g", x, ww, w)
		}
	}
}

func TestEqualWithinPeriodic(t *testing.T) {
	a := r3.Vec{X: 0.999999, Y: 0.5, Z: 0}
	b := r3.Vec{X: 0, Y: 0.5, Z: 0.000001}
	if !EqualWithinPeriodic(a, b, 1e-5) {
		t.Error("expected positions on either side of cell boundary to match")
	}
	if EqualWithin(a, b, 1e-5) {
		t.Error("plain comparison should not wrap")
	}
	if EqualWithinPeriodic(r3.Vec{X: 0.5}, r3.Vec{}, 1e-5) {
		t.Error("0.5 apart must not match")
	}
}
