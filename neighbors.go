package xtal

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/soypat/xtal/internal/d3"
	"gonum.org/v1/gonum/spatial/kdtree"
	"gonum.org/v1/gonum/spatial/r3"
)

// Neighbor is an atom found near a site. It is the atom at Index of the
// crystal's Atoms translated by Offset lattice vectors.
type Neighbor struct {
	Index    int
	Offset   [3]int
	Distance float64
}

// Neighbors returns every atom image within cutoff Å of atom site of c,
// nearest first. Periodic images are searched in as many surrounding cells
// as the cutoff reaches. The site itself is excluded but its images are not.
func Neighbors(c *Crystal, site int, cutoff float64) ([]Neighbor, error) {
	if c == nil {
		return nil, fmt.Errorf("%w: nil crystal", ErrInvalidArgument)
	}
	if site < 0 || site >= c.atoms.Len() {
		return nil, fmt.Errorf("%w: site %d out of range [0,%d)", ErrInvalidArgument, site, c.atoms.Len())
	}
	if !(cutoff > 0) || math.IsInf(cutoff, 1) {
		return nil, fmt.Errorf("%w: cutoff %g", ErrInvalidArgument, cutoff)
	}
	cell := c.cell
	// Fractional reach of the cutoff sphere along each axis.
	var reach [3]int
	for i, r := range [3]float64{cell.ar, cell.br, cell.cr} {
		reach[i] = int(math.Ceil(cutoff*r)) + 1
	}
	var images kdSites
	for j, a := range c.atoms.sites {
		for u := -reach[0]; u <= reach[0]; u++ {
			for v := -reach[1]; v <= reach[1]; v++ {
				for w := -reach[2]; w <= reach[2]; w++ {
					off := [3]int{u, v, w}
					images = append(images, kdSite{
						pos:    cell.ToCartesian(r3.Add(a.pos, d3.FromInts(off))),
						index:  j,
						offset: off,
					})
				}
			}
		}
	}
	tree := kdtree.New(images, false)
	query := kdSite{pos: cell.ToCartesian(c.atoms.sites[site].pos), index: -1}
	keep := kdtree.NewDistKeeper(cutoff * cutoff)
	tree.NearestSet(keep, query)

	var found []Neighbor
	for _, cd := range keep.Heap {
		if cd.Comparable == nil {
			continue // Keeper sentinel.
		}
		s := cd.Comparable.(kdSite)
		if s.index == site && s.offset == [3]int{} {
			continue
		}
		dist := math.Sqrt(cd.Dist)
		if dist > cutoff {
			continue
		}
		found = append(found, Neighbor{Index: s.index, Offset: s.offset, Distance: dist})
	}
	slices.SortFunc(found, func(a, b Neighbor) int {
		if o := cmp.Compare(a.Distance, b.Distance); o != 0 {
			return o
		}
		if o := cmp.Compare(a.Index, b.Index); o != 0 {
			return o
		}
		return slices.Compare(a.Offset[:], b.Offset[:])
	})
	return found, nil
}

var (
	_ kdtree.Interface  = kdSites{}
	_ kdtree.Comparable = kdSite{}
)

// kdSites is an atom image list indexed by kdtree.
type kdSites []kdSite

type kdSite struct {
	pos    r3.Vec
	index  int
	offset [3]int
}

func (k kdSites) Index(i int) kdtree.Comparable { return k[i] }

// Len returns the length of the list.
func (k kdSites) Len() int { return len(k) }

// Pivot partitions the list based on the dimension specified.
func (k kdSites) Pivot(d kdtree.Dim) int {
	p := kdPlane{dim: int(d), sites: k}
	return kdtree.Partition(p, kdtree.MedianOfMedians(p))
}

// Slice returns a slice of the list using zero-based half
// open indexing equivalent to built-in slice indexing.
func (k kdSites) Slice(start, end int) kdtree.Interface {
	return k[start:end]
}

// Compare returns the signed distance of a from the plane passing through
// b and perpendicular to the dimension d.
func (a kdSite) Compare(b kdtree.Comparable, d kdtree.Dim) float64 {
	return kdComp(a, b.(kdSite), int(d))
}

// Dims returns the number of dimensions described in the Comparable.
func (a kdSite) Dims() int { return 3 }

// Distance returns the squared Euclidean distance between the receiver and
// the parameter.
func (a kdSite) Distance(b kdtree.Comparable) float64 {
	return r3.Norm2(r3.Sub(a.pos, b.(kdSite).pos))
}

// c = a.dim - b.dim
func kdComp(a, b kdSite, dim int) float64 {
	switch dim {
	case 0:
		return a.pos.X - b.pos.X
	case 1:
		return a.pos.Y - b.pos.Y
	}
	return a.pos.Z - b.pos.Z
}

type kdPlane struct {
	dim   int
	sites kdSites
}

func (p kdPlane) Less(i, j int) bool {
	return kdComp(p.sites[i], p.sites[j], p.dim) < 0
}
func (p kdPlane) Swap(i, j int) {
	p.sites[i], p.sites[j] = p.sites[j], p.sites[i]
}
func (p kdPlane) Len() int {
	return len(p.sites)
}
func (p kdPlane) Slice(start, end int) kdtree.SortSlicer {
	p.sites = p.sites[start:end]
	return p
}
