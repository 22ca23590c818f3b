package symmetry

import "fmt"

// CrystalSystem is one of the seven crystal systems.
type CrystalSystem uint8

const (
	Triclinic CrystalSystem = iota + 1
	Monoclinic
	Orthorhombic
	Tetragonal
	Trigonal
	Hexagonal
	Cubic
)

var systemNames = [...]string{
	Triclinic:    "triclinic",
	Monoclinic:   "monoclinic",
	Orthorhombic: "orthorhombic",
	Tetragonal:   "tetragonal",
	Trigonal:     "trigonal",
	Hexagonal:    "hexagonal",
	Cubic:        "cubic",
}

func (s CrystalSystem) String() string {
	if s < Triclinic || s > Cubic {
		return fmt.Sprintf("CrystalSystem(%d)", uint8(s))
	}
	return systemNames[s]
}

// SystemOf returns the crystal system of space group number n (1..230).
// It returns 0 for numbers out of range.
func SystemOf(n int) CrystalSystem {
	switch {
	case n < 1 || n > 230:
		return 0
	case n <= 2:
		return Triclinic
	case n <= 15:
		return Monoclinic
	case n <= 74:
		return Orthorhombic
	case n <= 142:
		return Tetragonal
	case n <= 167:
		return Trigonal
	case n <= 194:
		return Hexagonal
	}
	return Cubic
}

// LaueOf returns the Laue group of space group number n (1..230).
// It returns 0 for numbers out of range.
func LaueOf(n int) LaueGroup {
	switch {
	case n < 1 || n > 230:
		return 0
	case n <= 2:
		return LaueCi
	case n <= 15:
		return LaueC2h
	case n <= 74:
		return LaueD2h
	case n <= 88:
		return LaueC4h
	case n <= 142:
		return LaueD4h
	case n <= 148:
		return LaueC3i
	case n <= 167:
		return LaueD3d
	case n <= 176:
		return LaueC6h
	case n <= 194:
		return LaueD6h
	case n <= 206:
		return LaueTh
	}
	return LaueOh
}
