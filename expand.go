package xtal

import "github.com/soypat/xtal/symmetry"

// Expand returns the orbit of every basis site under the generators. Each
// generator is applied to each site in order and the image inserted into
// the result; images that land within Tolerance of an earlier site collapse
// into it. An empty generator list expands by the identity alone.
func Expand(basis AtomSites, generators []symmetry.Generator) AtomSites {
	if len(generators) == 0 {
		generators = []symmetry.Generator{symmetry.Identity}
	}
	var out AtomSites
	for _, a := range basis.sites {
		for _, g := range generators {
			// Coincident images are expected and rejected as duplicates.
			_ = out.Add(a.Transform(g))
		}
	}
	return out
}
