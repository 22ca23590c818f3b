// Package scatter evaluates atomic scattering factors from piecewise
// Gaussian fits to tabulated data.
//
// A Model maps an atomic number and a scattering variable s to a form
// factor. Two models exist, selected by Kind: X-ray (s = 1/2d) and
// electron (s = 2π/d). Coefficients come from a Table, typically parsed
// from CSV with ParseCSV or the embedded DefaultXRay table.
//
// Fits cover two domains, s in [0,2) and s in [2,6). Larger s is
// extrapolated with the high range fit; the condition is logged once per
// element and counted, never returned as an error.
package scatter

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"sync"
	"sync/atomic"
)

// MaxAtomicNumber is the largest atomic number a table may hold.
const MaxAtomicNumber = 111

const (
	// LowRangeMax is the upper bound (exclusive) of the low s fit domain.
	LowRangeMax = 2.0
	// HighRangeMax is the upper bound (exclusive) of the high s fit domain.
	HighRangeMax = 6.0
)

var (
	// ErrUnknownElement is returned when a table has no fit for an atomic number.
	ErrUnknownElement = errors.New("scatter: no scattering factor fit for element")
	// ErrInvalidArgument is returned for negative or NaN scattering variables
	// and non-positive plane spacings.
	ErrInvalidArgument = errors.New("scatter: invalid argument")
)

// Kind selects the radiation a Model describes.
type Kind uint8

const (
	XRay Kind = iota + 1
	Electron
)

func (k Kind) String() string {
	switch k {
	case XRay:
		return "xray"
	case Electron:
		return "electron"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// ParseKind parses "xray" (or "x-ray") and "electron".
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "xray", "x-ray", "x":
		return XRay, nil
	case "electron", "e":
		return Electron, nil
	}
	return 0, fmt.Errorf("scatter: unknown kind %q", s)
}

// Model computes atomic scattering factors. Implementations are safe for
// concurrent use.
type Model interface {
	Kind() Kind
	// S returns the scattering variable for plane spacing d.
	S(d float64) float64
	// FromS returns the form factor of element z at scattering variable s.
	FromS(z int, s float64) (float64, error)
	// FromPlaneSpacing returns the form factor of element z for plane spacing d.
	FromPlaneSpacing(z int, d float64) (float64, error)
	// Has reports whether the model can evaluate element z.
	Has(z int) bool
	// OutOfRange returns how many evaluations fell outside the tabulated s range.
	OutOfRange() int64
}

var (
	_ Model = (*xrayModel)(nil)
	_ Model = (*electronModel)(nil)
)

// Option configures a Model.
type Option func(*fitModel)

// WithLogger sets the logger that receives out of range warnings.
// The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(m *fitModel) { m.log = l }
}

// New returns the Model of the given kind backed by table.
func New(kind Kind, table Table, opts ...Option) (Model, error) {
	if table == nil {
		return nil, fmt.Errorf("%w: nil coefficient table", ErrInvalidArgument)
	}
	var (
		m    Model
		base *fitModel
	)
	switch kind {
	case XRay:
		x := new(xrayModel)
		m, base = x, &x.fitModel
	case Electron:
		e := new(electronModel)
		m, base = e, &e.fitModel
	default:
		return nil, fmt.Errorf("%w: kind %v", ErrInvalidArgument, kind)
	}
	base.kind = kind
	base.table = table
	for _, opt := range opts {
		opt(base)
	}
	if base.log == nil {
		base.log = slog.Default()
	}
	return m, nil
}

// fitModel holds the state shared by both models.
type fitModel struct {
	kind       Kind
	table      Table
	log        *slog.Logger
	outOfRange atomic.Int64
	warned     sync.Map // int -> struct{}
}

func (m *fitModel) Kind() Kind { return m.kind }

func (m *fitModel) Has(z int) bool {
	_, ok := m.table.Fit(z)
	return ok
}

func (m *fitModel) OutOfRange() int64 { return m.outOfRange.Load() }

// eval picks the fit domain for s and evaluates it. high evaluates the
// high range coefficients for the model's functional form.
func (m *fitModel) eval(z int, s float64, low, high func(Coefficients, float64) float64) (float64, error) {
	if s < 0 || math.IsNaN(s) {
		return 0, fmt.Errorf("%w: s=%g", ErrInvalidArgument, s)
	}
	fit, ok := m.table.Fit(z)
	if !ok {
		return 0, fmt.Errorf("%w: Z=%d (%v)", ErrUnknownElement, z, m.kind)
	}
	switch {
	case s < LowRangeMax:
		return low(fit.Low, s), nil
	case fit.HasHigh:
		if s >= HighRangeMax {
			m.warn(z, s)
		}
		return high(fit.High, s), nil
	}
	m.warn(z, s)
	return low(fit.Low, s), nil
}

func (m *fitModel) warn(z int, s float64) {
	m.outOfRange.Add(1)
	if _, loaded := m.warned.LoadOrStore(z, struct{}{}); loaded {
		return
	}
	m.log.Warn("scattering variable outside tabulated range, extrapolating",
		slog.String("kind", m.kind.String()),
		slog.Int("z", z),
		slog.Float64("s", s),
	)
}

func spacingArg(d float64) error {
	if !(d > 0) {
		return fmt.Errorf("%w: plane spacing %g", ErrInvalidArgument, d)
	}
	return nil
}

// xrayModel uses s = sinθ/λ = 1/2d. The low range is a four Gaussian
// fit plus constant, the high range exp(a0 + a1·s + a2·s² + a3·s³).
type xrayModel struct{ fitModel }

func (m *xrayModel) S(d float64) float64 { return 1 / (2 * d) }

func (m *xrayModel) FromS(z int, s float64) (float64, error) {
	return m.eval(z, s, gaussianSum, expPolynomial)
}

func (m *xrayModel) FromPlaneSpacing(z int, d float64) (float64, error) {
	if err := spacingArg(d); err != nil {
		return 0, err
	}
	return m.FromS(z, m.S(d))
}

// electronModel uses s = 2π/d and five Gaussian fits on both ranges.
type electronModel struct{ fitModel }

func (m *electronModel) S(d float64) float64 { return 2 * math.Pi / d }

func (m *electronModel) FromS(z int, s float64) (float64, error) {
	return m.eval(z, s, gaussianSum, gaussianSum)
}

func (m *electronModel) FromPlaneSpacing(z int, d float64) (float64, error) {
	if err := spacingArg(d); err != nil {
		return 0, err
	}
	return m.FromS(z, m.S(d))
}
