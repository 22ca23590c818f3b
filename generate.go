package xtal

import (
	"context"
	"fmt"
	"runtime"

	"github.com/soypat/xtal/scatter"
	"golang.org/x/sync/errgroup"
)

// GenerateConfig parametrizes reflector enumeration. Zero fields other
// than MaxIndex take defaults.
type GenerateConfig struct {
	// MaxIndex bounds every Miller index to [-MaxIndex, MaxIndex]. Must be >= 1.
	MaxIndex int
	// Threshold is the fraction of the maximum possible intensity a plane
	// must exceed. Defaults to DefaultThreshold.
	Threshold float64
	// Workers is the number of goroutines sharing the search. Defaults to
	// runtime.GOMAXPROCS(0).
	Workers int
}

// Generate enumerates the diffracting planes of c with indices up to
// maxIndex in absolute value using the default threshold.
func Generate(c *Crystal, model scatter.Model, maxIndex int) (*Reflectors, error) {
	return GenerateContext(context.Background(), c, model, GenerateConfig{MaxIndex: maxIndex})
}

// GenerateContext searches every plane (h k l) with |h|,|k|,|l| <= cfg.MaxIndex.
// Antiparallel twins are counted once under their canonical indices. Planes
// whose intensity does not exceed cfg.Threshold times the maximum possible
// intensity are dropped. The result is sorted by intensity, strongest first,
// and normalized to the strongest reflector. The order does not depend on
// cfg.Workers.
//
// An error wrapping ErrNoReflectors is returned when no plane diffracts.
// Elements missing from the model fail before the search starts.
func GenerateContext(ctx context.Context, c *Crystal, model scatter.Model, cfg GenerateConfig) (*Reflectors, error) {
	switch {
	case c == nil:
		return nil, fmt.Errorf("%w: nil crystal", ErrInvalidArgument)
	case model == nil:
		return nil, fmt.Errorf("%w: nil scattering model", ErrInvalidArgument)
	case cfg.MaxIndex < 1:
		return nil, fmt.Errorf("%w: max index %d < 1", ErrInvalidArgument, cfg.MaxIndex)
	case cfg.Threshold < 0:
		return nil, fmt.Errorf("%w: negative threshold %g", ErrInvalidArgument, cfg.Threshold)
	}
	if cfg.Threshold == 0 {
		cfg.Threshold = DefaultThreshold
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}
	// Only h >= 0 holds canonical planes.
	cfg.Workers = min(cfg.Workers, cfg.MaxIndex+1)

	for _, a := range c.atoms.sites {
		if !model.Has(a.z) {
			return nil, fmt.Errorf("%w: Z=%d (%s) in %q", scatter.ErrUnknownElement, a.z, a.Symbol(), c.name)
		}
	}
	maxIntensity, err := MaximumDiffractionIntensity(c.atoms, model)
	if err != nil {
		return nil, err
	}

	shards := make([][]Reflector, cfg.Workers)
	g, ctx := errgroup.WithContext(ctx)
	for w := range shards {
		g.Go(func() (err error) {
			shards[w], err = searchShard(ctx, c, model, cfg, w, maxIntensity)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	seen := make(map[Plane]struct{})
	var list []Reflector
	for _, shard := range shards {
		for _, r := range shard {
			if _, dup := seen[r.Plane]; dup {
				continue
			}
			seen[r.Plane] = struct{}{}
			list = append(list, r)
		}
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("%w: %q up to index %d at threshold %g", ErrNoReflectors, c.name, cfg.MaxIndex, cfg.Threshold)
	}
	sortReflectors(list, ByIntensity, true)
	top := list[0].Intensity
	for i := range list {
		list[i].NormalizedIntensity = list[i].Intensity / top
	}
	return newReflectors(c, model.Kind(), list), nil
}

// searchShard visits the canonical planes with h = w, w+Workers, ...
func searchShard(ctx context.Context, c *Crystal, model scatter.Model, cfg GenerateConfig, w int, maxIntensity float64) ([]Reflector, error) {
	n := cfg.MaxIndex
	var found []Reflector
	for h := w; h <= n; h += cfg.Workers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for k := -n; k <= n; k++ {
			for l := -n; l <= n; l++ {
				p := Plane{H: h, K: k, L: l}
				if p.IsZero() || !p.IsCanonical() {
					continue
				}
				d := planeSpacing(p, c.cell)
				f, err := structureFactor(p, d, c.atoms.sites, model)
				if err != nil {
					return nil, err
				}
				in := intensity(f)
				if !IsDiffracting(in, maxIntensity, cfg.Threshold) {
					continue
				}
				found = append(found, Reflector{Plane: p, Spacing: d, Intensity: in})
			}
		}
	}
	return found, nil
}
