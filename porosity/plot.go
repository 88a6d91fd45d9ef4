package porosity

import (
	"errors"
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// PlotHistogram saves a histogram of sample radii to path. The image
// format follows the file extension (png, svg, pdf...).
func PlotHistogram(path string, samples []Sample, bins int) error {
	if len(samples) == 0 {
		return errors.New("no samples to plot")
	}
	if bins <= 0 {
		bins = 32
	}
	values := make(plotter.Values, len(samples))
	for i, s := range samples {
		values[i] = s.Distance
	}
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Pore radius distribution (%d samples)", len(samples))
	p.X.Label.Text = "Radius"
	p.Y.Label.Text = "Samples"
	h, err := plotter.NewHist(values, bins)
	if err != nil {
		return err
	}
	h.LineStyle.Width = vg.Points(0.5)
	p.Add(h)
	if err := p.Save(8*vg.Inch, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("saving histogram: %w", err)
	}
	return nil
}
