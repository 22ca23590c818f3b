package symmetry

import (
	"fmt"
	"strings"
)

// PointGroup is one of the 32 crystallographic point groups, named after
// its Schoenflies symbol.
type PointGroup uint8

const (
	PointC1 PointGroup = iota + 1
	PointCi
	PointC2
	PointCs
	PointC2h
	PointD2
	PointC2v
	PointD2h
	PointC4
	PointS4
	PointC4h
	PointD4
	PointC4v
	PointD2d
	PointD4h
	PointC3
	PointC3i
	PointD3
	PointC3v
	PointD3d
	PointC6
	PointC3h
	PointC6h
	PointD6
	PointC6v
	PointD3h
	PointD6h
	PointT
	PointTh
	PointO
	PointTd
	PointOh
)

var pointGroups = [...]struct {
	symbol string
	laue   LaueGroup
}{
	PointC1:  {"1", LaueCi},
	PointCi:  {"-1", LaueCi},
	PointC2:  {"2", LaueC2h},
	PointCs:  {"m", LaueC2h},
	PointC2h: {"2/m", LaueC2h},
	PointD2:  {"222", LaueD2h},
	PointC2v: {"mm2", LaueD2h},
	PointD2h: {"mmm", LaueD2h},
	PointC4:  {"4", LaueC4h},
	PointS4:  {"-4", LaueC4h},
	PointC4h: {"4/m", LaueC4h},
	PointD4:  {"422", LaueD4h},
	PointC4v: {"4mm", LaueD4h},
	PointD2d: {"-42m", LaueD4h},
	PointD4h: {"4/mmm", LaueD4h},
	PointC3:  {"3", LaueC3i},
	PointC3i: {"-3", LaueC3i},
	PointD3:  {"32", LaueD3d},
	PointC3v: {"3m", LaueD3d},
	PointD3d: {"-3m", LaueD3d},
	PointC6:  {"6", LaueC6h},
	PointC3h: {"-6", LaueC6h},
	PointC6h: {"6/m", LaueC6h},
	PointD6:  {"622", LaueD6h},
	PointC6v: {"6mm", LaueD6h},
	PointD3h: {"-6m2", LaueD6h},
	PointD6h: {"6/mmm", LaueD6h},
	PointT:   {"23", LaueTh},
	PointTh:  {"m-3", LaueTh},
	PointO:   {"432", LaueOh},
	PointTd:  {"-43m", LaueOh},
	PointOh:  {"m-3m", LaueOh},
}

func (p PointGroup) valid() bool { return p >= PointC1 && p <= PointOh }

// Symbol returns the Hermann-Mauguin symbol of the point group.
func (p PointGroup) Symbol() string {
	if !p.valid() {
		return ""
	}
	return pointGroups[p].symbol
}

func (p PointGroup) String() string {
	if !p.valid() {
		return fmt.Sprintf("PointGroup(%d)", uint8(p))
	}
	return pointGroups[p].symbol
}

// Laue returns the Laue class of the point group, that is the point group
// extended by inversion.
func (p PointGroup) Laue() LaueGroup {
	if !p.valid() {
		return 0
	}
	return pointGroups[p].laue
}

// System returns the crystal system of the point group.
func (p PointGroup) System() CrystalSystem { return p.Laue().System() }

// ParsePointGroup returns the point group with Hermann-Mauguin symbol s.
func ParsePointGroup(s string) (PointGroup, error) {
	key := strings.ReplaceAll(s, " ", "")
	for p := PointC1; p <= PointOh; p++ {
		if pointGroups[p].symbol == key {
			return p, nil
		}
	}
	return 0, fmt.Errorf("symmetry: unknown point group %q", s)
}
