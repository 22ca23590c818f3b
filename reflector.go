package xtal

import (
	"cmp"
	"fmt"
	"iter"
	"slices"

	"github.com/soypat/xtal/scatter"
)

// Reflector is a diffracting plane with its spacing and intensity.
type Reflector struct {
	Plane
	// Spacing is the interplanar spacing d in Å.
	Spacing float64
	// Intensity is |F|² of the plane.
	Intensity float64
	// NormalizedIntensity is Intensity relative to the strongest
	// reflector of the list it was generated in, in (0,1].
	NormalizedIntensity float64
}

// Equal reports whether r and other refer to the same plane. Intensities
// do not take part in identity.
func (r Reflector) Equal(other Reflector) bool { return r.Plane == other.Plane }

func (r Reflector) String() string {
	return fmt.Sprintf("%v d=%.5gÅ I=%.5g (%.4f)", r.Plane, r.Spacing, r.Intensity, r.NormalizedIntensity)
}

// SortKey selects the ordering of a Reflectors view.
type SortKey uint8

const (
	ByIntensity SortKey = iota
	BySpacing
)

func (k SortKey) String() string {
	switch k {
	case ByIntensity:
		return "intensity"
	case BySpacing:
		return "spacing"
	}
	return fmt.Sprintf("SortKey(%d)", uint8(k))
}

// ParseSortKey parses "intensity" or "spacing".
func ParseSortKey(s string) (SortKey, error) {
	for k := ByIntensity; k <= BySpacing; k++ {
		if s == k.String() {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: sort key %q", ErrInvalidArgument, s)
}

// Reflectors is an immutable ordered list of unique reflectors of one
// crystal and scattering model. Use SortedBy for other orderings.
type Reflectors struct {
	crystal *Crystal
	kind    scatter.Kind
	list    []Reflector
	index   map[Plane]int
}

func newReflectors(c *Crystal, kind scatter.Kind, list []Reflector) *Reflectors {
	r := &Reflectors{crystal: c, kind: kind, list: list, index: make(map[Plane]int, len(list))}
	for i, ref := range list {
		r.index[ref.Plane] = i
	}
	return r
}

func (r *Reflectors) Len() int { return len(r.list) }

// At returns the i'th reflector.
func (r *Reflectors) At(i int) Reflector { return r.list[i] }

// Index returns the position of plane p. p and its antiparallel twin
// resolve to the same reflector.
func (r *Reflectors) Index(p Plane) (int, bool) {
	i, ok := r.index[p.Canonical()]
	return i, ok
}

// Get returns the reflector of plane p.
func (r *Reflectors) Get(p Plane) (Reflector, bool) {
	i, ok := r.Index(p)
	if !ok {
		return Reflector{}, false
	}
	return r.list[i], true
}

// All iterates over the reflectors in order.
func (r *Reflectors) All() iter.Seq2[int, Reflector] {
	return func(yield func(int, Reflector) bool) {
		for i, ref := range r.list {
			if !yield(i, ref) {
				return
			}
		}
	}
}

// Slice returns a copy of the reflectors in order.
func (r *Reflectors) Slice() []Reflector { return slices.Clone(r.list) }

// Crystal returns the crystal the reflectors were generated for.
func (r *Reflectors) Crystal() *Crystal { return r.crystal }

// Kind returns the radiation of the scattering model used.
func (r *Reflectors) Kind() scatter.Kind { return r.kind }

// SortedBy returns a new view of the same reflectors ordered by key. Ties
// fall back to the other key and then to Miller indices, so the order is
// total. The receiver is not modified.
func (r *Reflectors) SortedBy(key SortKey, descending bool) *Reflectors {
	list := slices.Clone(r.list)
	sortReflectors(list, key, descending)
	return newReflectors(r.crystal, r.kind, list)
}

func sortReflectors(list []Reflector, key SortKey, descending bool) {
	primary, secondary := byIntensity, bySpacing
	if key == BySpacing {
		primary, secondary = bySpacing, byIntensity
	}
	slices.SortFunc(list, func(a, b Reflector) int {
		c := primary(a, b)
		if c == 0 {
			c = secondary(a, b)
		}
		if descending {
			c = -c
		}
		if c != 0 {
			return c
		}
		if a.Plane.Less(b.Plane) {
			return -1
		}
		if b.Plane.Less(a.Plane) {
			return 1
		}
		return 0
	})
}

func byIntensity(a, b Reflector) int { return cmp.Compare(a.Intensity, b.Intensity) }
func bySpacing(a, b Reflector) int { return cmp.Compare(a.Spacing, b.Spacing) }
