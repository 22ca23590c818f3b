// Command xtalref lists the diffracting planes of a crystal structure.
//
// The structure is given by its space group, unit cell and the atoms of
// its asymmetric unit:
//
//	xtalref -group Fm-3m -cell 3.615 -atom Cu,0,0,0 -plot cu.png
//
// The reflector table is printed to standard output.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/soypat/xtal"
	"github.com/soypat/xtal/render"
	"github.com/soypat/xtal/scatter"
	"github.com/soypat/xtal/symmetry"
)

// Cu Kα1 in Å.
const defaultWavelength = 1.5406

var exitFunc = os.Exit

func main() {
	code := cli(os.Args[1:], os.Stdout, os.Stderr)
	exitFunc(code)
}

type config struct {
	group     string
	cell      string
	atoms     atomList
	kind      string
	coeffs    string
	maxIndex  int
	threshold float64
	workers   int
	sort      string
	ascending bool
	plot      string
	lambda    float64
	kev       float64
	out       string
}

func cli(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("xtalref", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var cfg config
	fs.StringVar(&cfg.group, "group", "", "space group number or Hermann-Mauguin symbol")
	fs.StringVar(&cfg.cell, "cell", "", "unit cell as a (cubic) or a,b,c,alpha,beta,gamma in Å and degrees")
	fs.Var(&cfg.atoms, "atom", "asymmetric unit site as element,x,y,z[,occupancy] (repeatable)")
	fs.StringVar(&cfg.kind, "kind", "xray", "radiation: xray or electron")
	fs.StringVar(&cfg.coeffs, "coeffs", "", "scattering factor coefficient CSV (required for electron)")
	fs.IntVar(&cfg.maxIndex, "max", 3, "largest |h|,|k|,|l| searched")
	fs.Float64Var(&cfg.threshold, "threshold", xtal.DefaultThreshold, "least intensity kept as a fraction of the maximum")
	fs.IntVar(&cfg.workers, "workers", 0, "search goroutines (0 uses GOMAXPROCS)")
	fs.StringVar(&cfg.sort, "sort", "intensity", "sort key: intensity or spacing")
	fs.BoolVar(&cfg.ascending, "asc", false, "sort ascending")
	fs.StringVar(&cfg.plot, "plot", "", "write stick pattern PNG to this path")
	fs.Float64Var(&cfg.lambda, "wavelength", 0, "radiation wavelength in Å for -plot (default Cu Kα1, or from -kev for electrons)")
	fs.Float64Var(&cfg.kev, "kev", 200, "electron accelerating voltage in kV")
	fs.StringVar(&cfg.out, "out", "", "write binary reflector file to this path")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "unexpected arguments: %q\n", fs.Args())
		return 2
	}
	logger := slog.New(slog.NewTextHandler(stderr, nil))
	if err := run(cfg, stdout, logger); err != nil {
		fmt.Fprintf(stderr, "xtalref: %v\n", err)
		return 1
	}
	return 0
}

func run(cfg config, stdout io.Writer, logger *slog.Logger) error {
	sg, err := lookupGroup(cfg.group)
	if err != nil {
		return err
	}
	cell, err := parseCell(cfg.cell)
	if err != nil {
		return err
	}
	if len(cfg.atoms) == 0 {
		return errors.New("at least one -atom required")
	}
	basis, err := xtal.NewAtomSites(cfg.atoms...)
	if err != nil {
		return err
	}
	c, err := xtal.NewCrystalSpaceGroup(sg.Symbol, cell, basis, sg)
	if err != nil {
		return err
	}
	model, err := loadModel(cfg.kind, cfg.coeffs, logger)
	if err != nil {
		return err
	}
	key, err := xtal.ParseSortKey(cfg.sort)
	if err != nil {
		return err
	}
	logger.Info("generating reflectors", "crystal", c.Name(), "atoms", c.Atoms().Len(), "kind", model.Kind(), "max", cfg.maxIndex)
	refl, err := xtal.GenerateContext(context.Background(), c, model, xtal.GenerateConfig{
		MaxIndex:  cfg.maxIndex,
		Threshold: cfg.threshold,
		Workers:   cfg.workers,
	})
	if err != nil {
		return err
	}
	if key != xtal.ByIntensity || cfg.ascending {
		refl = refl.SortedBy(key, !cfg.ascending)
	}
	if err := render.WriteTable(stdout, refl.Slice()); err != nil {
		return err
	}
	if cfg.out != "" {
		if err := render.CreateReflectors(cfg.out, refl); err != nil {
			return err
		}
	}
	if cfg.plot != "" {
		lambda, err := wavelength(cfg, model.Kind())
		if err != nil {
			return err
		}
		p, err := render.StickPattern(refl.Slice(), lambda)
		if err != nil {
			return err
		}
		if err := render.SavePNG(p, cfg.plot); err != nil {
			return err
		}
	}
	return nil
}

func lookupGroup(s string) (*symmetry.SpaceGroup, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.New("-group required")
	}
	if n, err := strconv.Atoi(s); err == nil {
		return symmetry.Lookup(n)
	}
	return symmetry.LookupSymbol(s)
}

func parseCell(s string) (xtal.UnitCell, error) {
	f, err := parseFloats(s)
	if err != nil {
		return xtal.UnitCell{}, fmt.Errorf("-cell: %w", err)
	}
	switch len(f) {
	case 1:
		return xtal.Cubic(f[0])
	case 6:
		return xtal.NewUnitCell(f[0], f[1], f[2], xtal.DtoR(f[3]), xtal.DtoR(f[4]), xtal.DtoR(f[5]))
	}
	return xtal.UnitCell{}, fmt.Errorf("-cell: want 1 or 6 values, got %d", len(f))
}

func loadModel(kind, coeffs string, logger *slog.Logger) (scatter.Model, error) {
	k, err := scatter.ParseKind(kind)
	if err != nil {
		return nil, err
	}
	var table scatter.Table
	switch {
	case coeffs != "":
		fp, err := os.Open(coeffs)
		if err != nil {
			return nil, err
		}
		defer fp.Close()
		t, err := scatter.ParseCSV(fp)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", coeffs, err)
		}
		table = t
	case k == scatter.XRay:
		table = scatter.DefaultXRay()
	default:
		return nil, fmt.Errorf("-coeffs required for %v scattering", k)
	}
	return scatter.New(k, table, scatter.WithLogger(logger))
}

func wavelength(cfg config, kind scatter.Kind) (float64, error) {
	switch {
	case cfg.lambda > 0:
		return cfg.lambda, nil
	case kind == scatter.Electron:
		return xtal.ElectronWavelength(cfg.kev * 1e3)
	}
	return defaultWavelength, nil
}

// atomList implements flag.Value.
type atomList []xtal.AtomSite

func (a *atomList) String() string {
	if a == nil {
		return ""
	}
	s := make([]string, len(*a))
	for i, site := range *a {
		s[i] = site.String()
	}
	return strings.Join(s, "; ")
}

func (a *atomList) Set(s string) error {
	fields := strings.Split(s, ",")
	if len(fields) != 4 && len(fields) != 5 {
		return fmt.Errorf("want element,x,y,z[,occupancy], got %q", s)
	}
	z, err := xtal.AtomicNumber(fields[0])
	if err != nil {
		return err
	}
	f, err := parseFloats(strings.Join(fields[1:], ","))
	if err != nil {
		return err
	}
	occ := 1.0
	if len(f) == 4 {
		occ = f[3]
	}
	site, err := xtal.NewAtomSite(z, f[0], f[1], f[2], occ)
	if err != nil {
		return err
	}
	*a = append(*a, site)
	return nil
}

func parseFloats(s string) ([]float64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, errors.New("no values")
	}
	fields := strings.Split(s, ",")
	f := make([]float64, len(fields))
	for i, field := range fields {
		v, err := parseFraction(strings.TrimSpace(field))
		if err != nil {
			return nil, err
		}
		f[i] = v
	}
	return f, nil
}

// parseFraction accepts decimals and simple fractions such as 1/3.
func parseFraction(s string) (float64, error) {
	num, den, ok := strings.Cut(s, "/")
	if !ok {
		return strconv.ParseFloat(s, 64)
	}
	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, err
	}
	d, err := strconv.ParseFloat(den, 64)
	if err != nil {
		return 0, err
	}
	if d == 0 {
		return 0, fmt.Errorf("zero denominator in %q", s)
	}
	return n / d, nil
}
