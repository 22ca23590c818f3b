package xtal

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/soypat/xtal/scatter"
)

var elementSymbols = [scatter.MaxAtomicNumber + 1]string{
	"",
	"H", "He", "Li", "Be", "B", "C", "N", "O", "F", "Ne",
	"Na", "Mg", "Al", "Si", "P", "S", "Cl", "Ar", "K", "Ca",
	"Sc", "Ti", "V", "Cr", "Mn", "Fe", "Co", "Ni", "Cu", "Zn",
	"Ga", "Ge", "As", "Se", "Br", "Kr", "Rb", "Sr", "Y", "Zr",
	"Nb", "Mo", "Tc", "Ru", "Rh", "Pd", "Ag", "Cd", "In", "Sn",
	"Sb", "Te", "I", "Xe", "Cs", "Ba", "La", "Ce", "Pr", "Nd",
	"Pm", "Sm", "Eu", "Gd", "Tb", "Dy", "Ho", "Er", "Tm", "Yb",
	"Lu", "Hf", "Ta", "W", "Re", "Os", "Ir", "Pt", "Au", "Hg",
	"Tl", "Pb", "Bi", "Po", "At", "Rn", "Fr", "Ra", "Ac", "Th",
	"Pa", "U", "Np", "Pu", "Am", "Cm", "Bk", "Cf", "Es", "Fm",
	"Md", "No", "Lr", "Rf", "Db", "Sg", "Bh", "Hs", "Mt", "Ds",
	"Rg",
}

// ElementSymbol returns the chemical symbol of atomic number z or the
// empty string if z is out of range.
func ElementSymbol(z int) string {
	if z < 1 || z > scatter.MaxAtomicNumber {
		return ""
	}
	return elementSymbols[z]
}

// AtomicNumber parses a chemical symbol (case insensitive) or a decimal
// atomic number.
func AtomicNumber(s string) (int, error) {
	s = strings.TrimSpace(s)
	if z, err := strconv.Atoi(s); err == nil {
		if ElementSymbol(z) == "" {
			return 0, fmt.Errorf("%w: atomic number %d", ErrInvalidAtom, z)
		}
		return z, nil
	}
	for z := 1; z < len(elementSymbols); z++ {
		if strings.EqualFold(elementSymbols[z], s) {
			return z, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown element %q", ErrInvalidAtom, s)
}
