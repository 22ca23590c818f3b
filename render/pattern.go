package render

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"

	"github.com/soypat/xtal"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Default chart size of WritePNG and SavePNG.
const (
	Width  = 16 * vg.Centimeter
	Height = 10 * vg.Centimeter
)

// LabelThreshold is the least normalized intensity a stick needs to be
// labelled with its Miller indices in StickPattern.
var LabelThreshold = 0.1

// StickPattern plots normalized intensity against the scattering angle 2θ
// in degrees for radiation of the given wavelength in Å. Reflectors past
// the Bragg limit are left out.
func StickPattern(list []xtal.Reflector, wavelength float64) (*plot.Plot, error) {
	if len(list) == 0 {
		return nil, errEmpty
	}
	var (
		xys    plotter.XYs
		labels plotter.XYLabels
	)
	for _, r := range list {
		theta, err := xtal.BraggAngle(r.Spacing, wavelength, 1)
		if errors.Is(err, xtal.ErrBraggLimit) {
			continue
		} else if err != nil {
			return nil, err
		}
		xy := plotter.XY{X: xtal.RtoD(2 * theta), Y: r.NormalizedIntensity}
		xys = append(xys, xy)
		if r.NormalizedIntensity >= LabelThreshold {
			labels.XYs = append(labels.XYs, xy)
			labels.Labels = append(labels.Labels, fmt.Sprintf("%d%d%d", r.H, r.K, r.L))
		}
	}
	if len(xys) == 0 {
		return nil, fmt.Errorf("no reflector within the Bragg limit at λ=%gÅ: %w", wavelength, xtal.ErrBraggLimit)
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("λ = %g Å", wavelength)
	p.X.Label.Text = "2θ (°)"
	p.Y.Label.Text = "I/Imax"
	p.Y.Min = 0
	p.Y.Max = 1.1
	p.Add(plotter.NewGrid(), &sticks{XYs: xys, LineStyle: plotter.DefaultLineStyle})
	if len(labels.XYs) > 0 {
		l, err := plotter.NewLabels(labels)
		if err != nil {
			return nil, err
		}
		l.Offset = vg.Point{Y: 2}
		for i := range l.TextStyle {
			l.TextStyle[i].XAlign = text.XCenter
			l.TextStyle[i].Color = color.Gray{Y: 64}
		}
		p.Add(l)
	}
	return p, nil
}

// sticks draws each point as a vertical line from the x axis.
type sticks struct {
	plotter.XYs
	draw.LineStyle
}

func (s *sticks) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	for _, xy := range s.XYs {
		x := trX(xy.X)
		c.StrokeLine2(s.LineStyle, x, trY(0), x, trY(xy.Y))
	}
}

func (s *sticks) DataRange() (xmin, xmax, ymin, ymax float64) {
	xmin, xmax, _, ymax = plotter.XYRange(s.XYs)
	return xmin - 1, xmax + 1, 0, ymax
}

// WritePNG encodes p as a PNG image of the default size to w.
func WritePNG(w io.Writer, p *plot.Plot) error {
	wt, err := p.WriterTo(Width, Height, "png")
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

// SavePNG saves p as a PNG image file at path.
func SavePNG(p *plot.Plot, path string) error {
	fp, err := os.Create(path)
	if err != nil {
		return err
	}
	err = WritePNG(fp, p)
	if err != nil {
		fp.Close()
		return err
	}
	return fp.Close()
}
