package render

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/soypat/xtal"
)

// WriteTable writes reflectors as an aligned text table with columns
// h, k, l, spacing d in Å, intensity and intensity relative to the strongest.
func WriteTable(w io.Writer, list []xtal.Reflector) error {
	if len(list) == 0 {
		return errEmpty
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "h\tk\tl\td(Å)\tI\tI/Imax\t")
	for _, r := range list {
		fmt.Fprintf(tw, "%d\t%d\t%d\t%.5f\t%.5g\t%.4f\t\n", r.H, r.K, r.L, r.Spacing, r.Intensity, r.NormalizedIntensity)
	}
	return tw.Flush()
}
