package symmetry

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// ErrUnknownGroup is returned by registry lookups that find no space group.
var ErrUnknownGroup = errors.New("symmetry: unknown space group")

// AlternateOffset is added to the number of a rhombohedral space group to
// obtain its alternate setting on rhombohedral axes (1146, 1148, ... 1167).
// The plain number refers to the hexagonal axes setting.
const AlternateOffset = 1000

// SpaceGroup is an entry of the space group registry. It is immutable.
type SpaceGroup struct {
	Number int
	Symbol string
	System CrystalSystem
	Laue   LaueGroup
	// gens is the full list of operations modulo lattice translations,
	// identity first.
	gens []Generator
}

// NewSpaceGroup builds a space group from seed generators. Seeds need not be
// closed: the full operation list is computed with Closure. The crystal
// system and Laue group are derived from number.
func NewSpaceGroup(number int, symbol string, seeds ...Generator) (*SpaceGroup, error) {
	base := number
	if base > AlternateOffset {
		base -= AlternateOffset
	}
	if base < 1 || base > 230 {
		return nil, fmt.Errorf("%w: number %d out of range", ErrUnknownGroup, number)
	}
	gens, err := Closure(seeds)
	if err != nil {
		return nil, fmt.Errorf("space group %d %s: %w", number, symbol, err)
	}
	return &SpaceGroup{
		Number: number,
		Symbol: symbol,
		System: SystemOf(base),
		Laue:   LaueOf(base),
		gens:   gens,
	}, nil
}

// Generators returns a copy of the group operations. The identity is first.
func (sg *SpaceGroup) Generators() []Generator {
	return append([]Generator(nil), sg.gens...)
}

// Len returns the number of operations modulo lattice translations.
func (sg *SpaceGroup) Len() int { return len(sg.gens) }

// IsAlternate returns true for the rhombohedral axes settings.
func (sg *SpaceGroup) IsAlternate() bool { return sg.Number > AlternateOffset }

func (sg *SpaceGroup) String() string {
	return fmt.Sprintf("%s (%d)", sg.Symbol, sg.Number)
}

var registry = struct {
	sync.RWMutex
	byNumber map[int]*SpaceGroup
	bySymbol map[string]*SpaceGroup
}{
	byNumber: make(map[int]*SpaceGroup),
	bySymbol: make(map[string]*SpaceGroup),
}

// Register adds a space group to the registry, replacing any previous
// entry with the same number. Seeds are written in x,y,z notation.
func Register(number int, symbol string, seeds ...string) (*SpaceGroup, error) {
	gens := make([]Generator, len(seeds))
	for i, s := range seeds {
		g, err := ParseGenerator(s)
		if err != nil {
			return nil, err
		}
		gens[i] = g
	}
	sg, err := NewSpaceGroup(number, symbol, gens...)
	if err != nil {
		return nil, err
	}
	registry.Lock()
	defer registry.Unlock()
	if old, ok := registry.byNumber[number]; ok {
		delete(registry.bySymbol, symbolKey(old.Symbol))
	}
	registry.byNumber[number] = sg
	registry.bySymbol[symbolKey(symbol)] = sg
	return sg, nil
}

// Lookup returns the space group with the given number.
func Lookup(number int) (*SpaceGroup, error) {
	registry.RLock()
	defer registry.RUnlock()
	sg, ok := registry.byNumber[number]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownGroup, number)
	}
	return sg, nil
}

// LookupSymbol returns the space group with the given Hermann-Mauguin symbol.
// Spaces and underscores are ignored and the comparison is case insensitive,
// so "P 63/m m c" finds P6_3/mmc.
func LookupSymbol(symbol string) (*SpaceGroup, error) {
	registry.RLock()
	defer registry.RUnlock()
	sg, ok := registry.bySymbol[symbolKey(symbol)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownGroup, symbol)
	}
	return sg, nil
}

// Groups returns the registered space groups sorted by number.
func Groups() []*SpaceGroup {
	registry.RLock()
	groups := make([]*SpaceGroup, 0, len(registry.byNumber))
	for _, sg := range registry.byNumber {
		groups = append(groups, sg)
	}
	registry.RUnlock()
	sort.Slice(groups, func(i, j int) bool { return groups[i].Number < groups[j].Number })
	return groups
}

func symbolKey(s string) string {
	s = strings.NewReplacer(" ", "", "_", "").Replace(s)
	return strings.ToLower(s)
}

func init() {
	for _, e := range builtinGroups {
		if _, err := Register(e.number, e.symbol, e.seeds...); err != nil {
			panic(err)
		}
	}
}
