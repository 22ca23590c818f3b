package xtal

import (
	"fmt"

	"github.com/soypat/xtal/symmetry"
)

// Crystal binds a name, unit cell, atom sites and Laue group. A Crystal is
// immutable after construction and safe for concurrent use.
type Crystal struct {
	name  string
	cell  UnitCell
	basis AtomSites
	atoms AtomSites
	laue  symmetry.LaueGroup
	sg    *symmetry.SpaceGroup
}

// NewCrystal returns a crystal whose atoms are the full cell contents.
// Its basis and atoms are the same set.
func NewCrystal(name string, cell UnitCell, atoms AtomSites, laue symmetry.LaueGroup) (*Crystal, error) {
	if err := checkCrystal(cell, atoms); err != nil {
		return nil, err
	}
	if laue.Symbol() == "" {
		return nil, fmt.Errorf("%w: Laue group %v", ErrInvalidArgument, laue)
	}
	atoms = atoms.Clone()
	return &Crystal{name: name, cell: cell, basis: atoms, atoms: atoms, laue: laue}, nil
}

// NewCrystalSpaceGroup returns a crystal from its asymmetric unit. The basis
// is expanded by every operation of sg and the Laue group taken from sg.
func NewCrystalSpaceGroup(name string, cell UnitCell, basis AtomSites, sg *symmetry.SpaceGroup) (*Crystal, error) {
	if sg == nil {
		return nil, fmt.Errorf("%w: nil space group", ErrInvalidArgument)
	}
	if err := checkCrystal(cell, basis); err != nil {
		return nil, err
	}
	return &Crystal{
		name:  name,
		cell:  cell,
		basis: basis.Clone(),
		atoms: Expand(basis, sg.Generators()),
		laue:  sg.Laue,
		sg:    sg,
	}, nil
}

func checkCrystal(cell UnitCell, atoms AtomSites) error {
	if !cell.valid() {
		return fmt.Errorf("%w: zero value unit cell", ErrInvalidUnitCell)
	}
	if atoms.Len() == 0 {
		return fmt.Errorf("%w: crystal without atoms", ErrInvalidArgument)
	}
	return nil
}

func (c *Crystal) Name() string   { return c.name }
func (c *Crystal) Cell() UnitCell { return c.cell }

// Basis returns a copy of the sites the crystal was built from.
func (c *Crystal) Basis() AtomSites { return c.basis.Clone() }

// Atoms returns a copy of every atom in the unit cell.
func (c *Crystal) Atoms() AtomSites { return c.atoms.Clone() }

func (c *Crystal) Laue() symmetry.LaueGroup { return c.laue }

// SpaceGroup returns the space group used to expand the basis, or nil.
func (c *Crystal) SpaceGroup() *symmetry.SpaceGroup { return c.sg }

// Equal reports exact equality of name, cell, sites and symmetry.
func (c *Crystal) Equal(other *Crystal) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.name == other.name &&
		c.cell.Equal(other.cell) &&
		c.basis.Equal(other.basis) &&
		c.atoms.Equal(other.atoms) &&
		c.laue == other.laue &&
		c.sg == other.sg
}

// EqualWithin is like Equal but compares the cell and atom sites within
// tol and ignores site order.
func (c *Crystal) EqualWithin(other *Crystal, tol float64) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.name == other.name &&
		c.cell.EqualWithin(other.cell, tol) &&
		c.atoms.EqualWithin(other.atoms, tol) &&
		c.laue == other.laue
}

func (c *Crystal) String() string {
	return fmt.Sprintf("%s [%v] %s, %d atoms", c.name, c.cell, c.laue.Symbol(), c.atoms.Len())
}
