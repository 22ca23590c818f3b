package scatter

import (
	"bytes"
	"errors"
	"log/slog"
	"math"
	"strings"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

// testTable has an element with both fit domains, a constant low fit and a
// high fit of exp(ln 2) = 2 so range selection is observable.
func testTable() MapTable {
	return MapTable{
		1: {
			Low:     Coefficients{C: 1},
			High:    Coefficients{A: [5]float64{math.Ln2}},
			HasHigh: true,
		},
		2: {
			Low:     Coefficients{A: [5]float64{1, 1, 1, 1, 1}, B: [5]float64{0.1, 0.2, 0.3, 0.4, 0.5}},
			High:    Coefficients{A: [5]float64{0.5}},
			HasHigh: true,
		},
	}
}

func TestDefaultXRayForwardScattering(t *testing.T) {
	m, err := New(XRay, DefaultXRay())
	if err != nil {
		t.Fatal(err)
	}
	for z := range DefaultXRay() {
		f, err := m.FromS(z, 0)
		if err != nil {
			t.Fatal(err)
		}
		// At s=0 the form factor is the electron count of the neutral atom.
		if !scalar.EqualWithinAbs(f, float64(z), 0.02*float64(z)+0.01) {
			t.Errorf("Z=%d: f(0)=%g. want ~%d", z, f, z)
		}
	}
}

func TestXRayDecreasing(t *testing.T) {
	m, _ := New(XRay, DefaultXRay())
	prev := math.Inf(1)
	for s := 0.0; s < LowRangeMax; s += 0.05 {
		f, err := m.FromS(29, s)
		if err != nil {
			t.Fatal(err)
		}
		if f >= prev {
			t.Fatalf("f(%g)=%g not below f at previous step %g", s, f, prev)
		}
		prev = f
	}
	if m.OutOfRange() != 0 {
		t.Errorf("got %d out of range evaluations inside the table", m.OutOfRange())
	}
}

func TestScatteringVariable(t *testing.T) {
	xr, _ := New(XRay, testTable())
	el, _ := New(Electron, testTable())
	for _, test := range []struct {
		m    Model
		d    float64
		want float64
	}{
		{xr, 1, 0.5},
		{xr, 0.25, 2},
		{xr, math.Inf(1), 0},
		{el, math.Pi, 2},
		{el, 2 * math.Pi, 1},
	} {
		got := test.m.S(test.d)
		if !scalar.EqualWithinAbs(got, test.want, 1e-12) {
			t.Errorf("%v S(%g): got %g. want %g", test.m.Kind(), test.d, got, test.want)
		}
	}
}

func TestRangeSelection(t *testing.T) {
	xr, _ := New(XRay, testTable())
	for _, test := range []struct {
		s, want float64
	}{
		{0, 1},
		{1.999, 1},
		{2, 2},
		{5.9, 2},
	} {
		got, err := xr.FromS(1, test.s)
		if err != nil {
			t.Fatal(err)
		}
		if !scalar.EqualWithinAbs(got, test.want, 1e-12) {
			t.Errorf("FromS(1, %g): got %g. want %g", test.s, got, test.want)
		}
	}
	el, _ := New(Electron, testTable())
	// d = π puts s = 2 in the high range: a single Gaussian 0.5·exp(0).
	got, err := el.FromPlaneSpacing(2, math.Pi)
	if err != nil {
		t.Fatal(err)
	}
	if !scalar.EqualWithinAbs(got, 0.5, 1e-12) {
		t.Errorf("electron high range: got %g. want 0.5", got)
	}
	got, _ = el.FromS(2, 0)
	if !scalar.EqualWithinAbs(got, 5, 1e-12) {
		t.Errorf("electron low range at s=0: got %g. want 5", got)
	}
}

func TestOutOfRangeWarning(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	m, err := New(XRay, testTable(), WithLogger(logger))
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range []float64{6, 7.5, 100} {
		f, err := m.FromS(1, s)
		if err != nil {
			t.Fatalf("s=%g must not fail: %v", s, err)
		}
		if !scalar.EqualWithinAbs(f, 2, 1e-12) {
			t.Errorf("s=%g: got %g. want high range extrapolation 2", s, f)
		}
	}
	if got := m.OutOfRange(); got != 3 {
		t.Errorf("got %d out of range evaluations. want 3", got)
	}
	if n := strings.Count(buf.String(), "outside tabulated range"); n != 1 {
		t.Errorf("got %d warnings logged. want 1 per element:\n%s", n, buf.String())
	}

	// Elements without a high range fit extrapolate the low fit past s=2.
	d, _ := New(XRay, DefaultXRay(), WithLogger(logger))
	low, _ := d.FromS(29, 1.99)
	high, err := d.FromS(29, 2.5)
	if err != nil {
		t.Fatal(err)
	}
	if high >= low || d.OutOfRange() != 1 {
		t.Errorf("low fit extrapolation: f(2.5)=%g f(1.99)=%g out of range %d", high, low, d.OutOfRange())
	}
}

func TestModelErrors(t *testing.T) {
	m, _ := New(XRay, testTable())
	if _, err := m.FromS(99, 0.1); !errors.Is(err, ErrUnknownElement) {
		t.Errorf("got %v. want ErrUnknownElement", err)
	}
	if m.Has(99) || !m.Has(1) {
		t.Error("Has mismatch")
	}
	for _, s := range []float64{-0.1, math.NaN()} {
		if _, err := m.FromS(1, s); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("s=%g: got %v. want ErrInvalidArgument", s, err)
		}
	}
	for _, d := range []float64{0, -1, math.NaN()} {
		if _, err := m.FromPlaneSpacing(1, d); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("d=%g: got %v. want ErrInvalidArgument", d, err)
		}
	}
	if _, err := New(Kind(9), testTable()); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("got %v. want ErrInvalidArgument", err)
	}
	if _, err := New(XRay, nil); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("got %v. want ErrInvalidArgument", err)
	}
}

func TestParseCSV(t *testing.T) {
	const input = `# comment
z,range,a1,a2,a3,a4,a5,b1,b2,b3,b4,b5,c
3, low, 1,2,0,0,0, 0.5,0.25,0,0,0, 0.5
3,high,0.1,-0.2,0,0,0,0,0,0,0,0,0
`
	table, err := ParseCSV(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	fit, ok := table.Fit(3)
	if !ok || !fit.HasHigh {
		t.Fatalf("got %+v", fit)
	}
	want := Coefficients{A: [5]float64{1, 2}, B: [5]float64{0.5, 0.25}, C: 0.5}
	if fit.Low != want {
		t.Errorf("got %+v. want %+v", fit.Low, want)
	}
	if fit.High.A[1] != -0.2 {
		t.Errorf("high fit: got %+v", fit.High)
	}
}

func TestParseCSVErrors(t *testing.T) {
	for name, input := range map[string]string{
		"bad z":      "0,low,1,0,0,0,0,0,0,0,0,0,0\n",
		"big z":      "112,low,1,0,0,0,0,0,0,0,0,0,0\n",
		"bad range":  "3,mid,1,0,0,0,0,0,0,0,0,0,0\n",
		"bad float":  "3,low,one,0,0,0,0,0,0,0,0,0,0\n",
		"no low":     "3,high,1,0,0,0,0,0,0,0,0,0,0\n",
		"duplicate":  "3,low,1,0,0,0,0,0,0,0,0,0,0\n3,low,1,0,0,0,0,0,0,0,0,0,0\n",
		"few fields": "3,low,1,0\n",
	} {
		if _, err := ParseCSV(strings.NewReader(input)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestParseKind(t *testing.T) {
	for in, want := range map[string]Kind{"xray": XRay, "X-Ray": XRay, "electron": Electron} {
		got, err := ParseKind(in)
		if err != nil || got != want {
			t.Errorf("ParseKind(%q): got %v %v", in, got, err)
		}
		if got.String() == "" {
			t.Error("empty kind name")
		}
	}
	if _, err := ParseKind("neutron"); err == nil {
		t.Error("expected error")
	}
}
