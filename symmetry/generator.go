package symmetry

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/soypat/xtal/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// Den is the common denominator of generator translations. Every
// translation found in the space group tables (1/8, 1/6, 1/4, 1/3, 1/2
// and their multiples) is an integer number of 1/Den steps.
const Den = 24

// maxOrder is the largest point group order compatible with a lattice.
// Combined with centring translations no space group exceeds it
// when counted modulo lattice translations.
const maxOrder = 192

var (
	// ErrParse is returned when a generator in x,y,z notation is malformed.
	ErrParse = errors.New("symmetry: bad generator notation")
	// ErrNotClosed is returned when a generator set does not close into a crystallographic group.
	ErrNotClosed = errors.New("symmetry: generators do not close into a space group")
)

// Generator is a symmetry operation of a space group acting on fractional
// coordinates: p' = R·p + T/Den. The zero value is not a valid generator,
// use Identity.
type Generator struct {
	R [3][3]int
	// T is the translation in units of 1/Den, reduced into [0, Den).
	T [3]int
}

// Identity is the x,y,z operation.
var Identity = Generator{R: [3][3]int{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}}

// NewGenerator returns a generator with rotation part r and translation
// t given in units of 1/Den. The translation is reduced modulo 1.
func NewGenerator(r [3][3]int, t [3]int) Generator {
	g := Generator{R: r}
	for i := range t {
		g.T[i] = modDen(t[i])
	}
	return g
}

// Apply returns R·p + t wrapped into [0,1).
func (g Generator) Apply(p r3.Vec) r3.Vec {
	q := r3.Vec{
		X: float64(g.R[0][0])*p.X + float64(g.R[0][1])*p.Y + float64(g.R[0][2])*p.Z,
		Y: float64(g.R[1][0])*p.X + float64(g.R[1][1])*p.Y + float64(g.R[1][2])*p.Z,
		Z: float64(g.R[2][0])*p.X + float64(g.R[2][1])*p.Y + float64(g.R[2][2])*p.Z,
	}
	return d3.WrapElem(r3.Add(q, g.Translation()))
}

// Compose returns the operation g∘h, that is h applied first and g second.
// The translation of the result is reduced modulo 1.
func Compose(g, h Generator) Generator {
	var c Generator
	for i := 0; i < 3; i++ {
		t := g.T[i]
		for j := 0; j < 3; j++ {
			t += g.R[i][j] * h.T[j]
			for k := 0; k < 3; k++ {
				c.R[i][j] += g.R[i][k] * h.R[k][j]
			}
		}
		c.T[i] = modDen(t)
	}
	return c
}

// IsIdentity returns true for x,y,z (modulo lattice translations).
func (g Generator) IsIdentity() bool { return g == Identity }

// Det returns the determinant of the rotation part: +1 for proper
// rotations and -1 for operations involving inversion.
func (g Generator) Det() int {
	r := g.R
	return r[0][0]*(r[1][1]*r[2][2]-r[1][2]*r[2][1]) -
		r[0][1]*(r[1][0]*r[2][2]-r[1][2]*r[2][0]) +
		r[0][2]*(r[1][0]*r[2][1]-r[1][1]*r[2][0])
}

// Translation returns the translation part in fractional coordinates.
func (g Generator) Translation() r3.Vec {
	return r3.Scale(1.0/Den, d3.FromInts(g.T))
}

// Rotation returns the rotation part as a matrix acting on fractional coordinates.
func (g Generator) Rotation() *r3.Mat {
	m := r3.NewMat(nil)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			m.Set(i, j, float64(g.R[i][j]))
		}
	}
	return m
}

// String formats the generator in x,y,z notation, i.e. "-y+1/2,x,z+3/4".
func (g Generator) String() string {
	var sb strings.Builder
	for i := 0; i < 3; i++ {
		if i > 0 {
			sb.WriteByte(',')
		}
		start := sb.Len()
		for j, v := range "xyz" {
			c := g.R[i][j]
			switch {
			case c == 0:
				continue
			case c == 1:
				if sb.Len() > start {
					sb.WriteByte('+')
				}
			case c == -1:
				sb.WriteByte('-')
			case c > 0:
				if sb.Len() > start {
					sb.WriteByte('+')
				}
				sb.WriteString(strconv.Itoa(c))
			default:
				sb.WriteString(strconv.Itoa(c))
			}
			sb.WriteRune(v)
		}
		if g.T[i] != 0 {
			n, d := reduce(g.T[i], Den)
			if sb.Len() > start {
				sb.WriteByte('+')
			}
			fmt.Fprintf(&sb, "%d/%d", n, d)
		} else if sb.Len() == start {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// ParseGenerator parses a generator written in the x,y,z notation used by
// the International Tables and CIF files, for example "-x+1/2,y,-z+3/4"
// or "x-y,x,z+1/6". Translations must be multiples of 1/Den.
func ParseGenerator(s string) (Generator, error) {
	parts := strings.Split(strings.ReplaceAll(s, " ", ""), ",")
	if len(parts) != 3 {
		return Generator{}, fmt.Errorf("%w: %q needs 3 comma separated components", ErrParse, s)
	}
	var g Generator
	for i, part := range parts {
		row, t, err := parseComponent(strings.ToLower(part))
		if err != nil {
			return Generator{}, fmt.Errorf("%w: %q: %v", ErrParse, s, err)
		}
		g.R[i] = row
		g.T[i] = modDen(t)
	}
	if g.Det() == 0 {
		return Generator{}, fmt.Errorf("%w: %q is singular", ErrParse, s)
	}
	return g, nil
}

// MustParseGenerator is like ParseGenerator but panics on error.
func MustParseGenerator(s string) Generator {
	g, err := ParseGenerator(s)
	if err != nil {
		panic(err)
	}
	return g
}

// parseComponent parses one row such as "-y+1/2" returning the
// coefficients of x, y and z and the translation in 1/Den units.
func parseComponent(s string) (row [3]int, t int, err error) {
	if s == "" {
		return row, 0, errors.New("empty component")
	}
	i := 0
	for i < len(s) {
		sign := 1
		switch s[i] {
		case '+':
			i++
		case '-':
			sign = -1
			i++
		}
		start := i
		for i < len(s) && (s[i] >= '0' && s[i] <= '9' || s[i] == '/' || s[i] == '.') {
			i++
		}
		num := s[start:i]
		if i < len(s) && (s[i] == 'x' || s[i] == 'y' || s[i] == 'z') {
			coef := 1
			if num != "" {
				coef, err = strconv.Atoi(num)
				if err != nil {
					return row, 0, fmt.Errorf("bad coefficient %q", num)
				}
			}
			row[s[i]-'x'] += sign * coef
			i++
			continue
		}
		if num == "" {
			return row, 0, fmt.Errorf("unexpected %q", s[i:])
		}
		steps, err := parseTranslation(num)
		if err != nil {
			return row, 0, err
		}
		t += sign * steps
	}
	return row, t, nil
}

// parseTranslation converts "1/2", "3/4", "0.5" or "1" into 1/Den steps.
func parseTranslation(s string) (int, error) {
	if n, d, ok := strings.Cut(s, "/"); ok {
		num, err1 := strconv.Atoi(n)
		den, err2 := strconv.Atoi(d)
		if err1 != nil || err2 != nil || den <= 0 {
			return 0, fmt.Errorf("bad fraction %q", s)
		}
		if (num*Den)%den != 0 {
			return 0, fmt.Errorf("translation %q is not a multiple of 1/%d", s, Den)
		}
		return num * Den / den, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("bad translation %q", s)
	}
	steps := v * Den
	n := int(steps + 0.5)
	if d := steps - float64(n); d > 1e-9 || d < -1e-9 {
		return 0, fmt.Errorf("translation %q is not a multiple of 1/%d", s, Den)
	}
	return n, nil
}

// Closure completes seeds into the full list of operations of the group
// they generate, counted modulo lattice translations. The identity is
// always first and the order is deterministic (breadth first).
func Closure(seeds []Generator) ([]Generator, error) {
	ops := []Generator{Identity}
	seen := map[Generator]bool{Identity: true}
	for i := 0; i < len(ops); i++ {
		for _, s := range seeds {
			for _, next := range [2]Generator{Compose(ops[i], s), Compose(s, ops[i])} {
				if seen[next] {
					continue
				}
				if next.Det() != 1 && next.Det() != -1 {
					return nil, fmt.Errorf("%w: %v is not unimodular", ErrNotClosed, next)
				}
				seen[next] = true
				ops = append(ops, next)
				if len(ops) > maxOrder {
					return nil, fmt.Errorf("%w: more than %d operations", ErrNotClosed, maxOrder)
				}
			}
		}
	}
	return ops, nil
}

func modDen(t int) int {
	t %= Den
	if t < 0 {
		t += Den
	}
	return t
}

func reduce(n, d int) (int, int) {
	a, b := n, d
	for b != 0 {
		a, b = b, a%b
	}
	return n / a, d / a
}
