package report

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"clustermass/pkg/domain"
)

// Plot file names, fixed by convention.
const (
	VelocityHistFile   = "velocity_hist.png"
	SkyScatterFile     = "sky_scatter.png"
	SeparationHistFile = "separation_hist.png"
)

const histBins = 30

// PlotData carries the arrays the three diagnostic plots are drawn from.
type PlotData struct {
	// AllVelocitiesKmS and MemberVelocitiesKmS are the recession
	// velocities before and after member selection.
	AllVelocitiesKmS    []float64
	MemberVelocitiesKmS []float64
	// MeanVelocityKmS positions the dashed mean-velocity rule.
	MeanVelocityKmS float64

	// All and Members provide the RA/Dec positions for the sky plot.
	All     domain.GalaxySample
	Members domain.GalaxySample

	// SeparationsDeg are the member angular separations from the center;
	// SeparationMarkerDeg positions the percentile rule.
	SeparationsDeg      []float64
	SeparationMarkerDeg float64
}

// RenderAll writes the three diagnostic plots into dir (created if needed)
// and returns the paths of the files written.
func RenderAll(dir string, d PlotData) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("could not create plot directory %q: %w", dir, err)
	}

	paths := make([]string, 0, 3)
	for _, pl := range []struct {
		file   string
		render func(path string) error
	}{
		{VelocityHistFile, func(p string) error { return renderVelocityHist(p, d) }},
		{SkyScatterFile, func(p string) error { return renderSkyScatter(p, d) }},
		{SeparationHistFile, func(p string) error { return renderSeparationHist(p, d) }},
	} {
		path := filepath.Join(dir, pl.file)
		if err := pl.render(path); err != nil {
			return nil, fmt.Errorf("could not render %s: %w", pl.file, err)
		}
		paths = append(paths, path)
	}

	return paths, nil
}

// renderVelocityHist overlays the velocity distributions of the full catalog
// and the member sample, with a dashed rule at the mean member velocity.
func renderVelocityHist(path string, d PlotData) error {
	p := plot.New()
	p.Title.Text = "Velocity Distribution of Galaxies"
	p.X.Label.Text = "Velocity (km/s)"
	p.Y.Label.Text = "Number of Galaxies"
	p.Add(plotter.NewGrid())

	all, err := plotter.NewHist(plotter.Values(d.AllVelocitiesKmS), histBins)
	if err != nil {
		return err
	}
	all.FillColor = color.NRGBA{R: 135, G: 206, B: 235, A: 160} // sky blue
	all.LineStyle.Color = color.Black
	p.Add(all)

	members, err := plotter.NewHist(plotter.Values(d.MemberVelocitiesKmS), histBins)
	if err != nil {
		return err
	}
	members.FillColor = color.NRGBA{R: 250, G: 128, B: 114, A: 200} // salmon
	members.LineStyle.Color = color.Black
	p.Add(members)

	rule, err := verticalRule(d.MeanVelocityKmS, histMaxCount(d.AllVelocitiesKmS, histBins))
	if err != nil {
		return err
	}
	rule.Color = color.NRGBA{R: 0, G: 0, B: 139, A: 255} // dark blue
	p.Add(rule)
	p.Legend.Add("Mean Velocity", rule)
	p.Legend.Top = true

	return p.Save(10*vg.Inch, 6*vg.Inch, path)
}

// renderSkyScatter draws the RA/Dec positions of the full catalog under the
// member sample. The RA axis is inverted, matching sky convention.
func renderSkyScatter(path string, d PlotData) error {
	p := plot.New()
	p.Title.Text = "Spatial Distribution of Galaxies"
	p.X.Label.Text = "Right Ascension (deg)"
	p.Y.Label.Text = "Declination (deg)"
	p.X.Scale = plot.InvertedScale{Normalizer: plot.LinearScale{}}
	p.Add(plotter.NewGrid())

	all, err := plotter.NewScatter(skyPoints(d.All))
	if err != nil {
		return err
	}
	all.GlyphStyle.Color = color.NRGBA{R: 211, G: 211, B: 211, A: 255} // light gray
	all.GlyphStyle.Radius = vg.Points(2)
	p.Add(all)
	p.Legend.Add("All Galaxies", all)

	members, err := plotter.NewScatter(skyPoints(d.Members))
	if err != nil {
		return err
	}
	members.GlyphStyle.Color = color.NRGBA{R: 220, G: 20, B: 60, A: 255} // crimson
	members.GlyphStyle.Radius = vg.Points(3)
	p.Add(members)
	p.Legend.Add("Cluster Members", members)
	p.Legend.Top = true

	return p.Save(10*vg.Inch, 8*vg.Inch, path)
}

// renderSeparationHist draws the member angular-separation distribution with
// a dashed rule at the radius percentile.
func renderSeparationHist(path string, d PlotData) error {
	p := plot.New()
	p.Title.Text = "Angular Separation of Cluster Members"
	p.X.Label.Text = "Angular Separation (deg)"
	p.Y.Label.Text = "Galaxy Count"
	p.Add(plotter.NewGrid())

	h, err := plotter.NewHist(plotter.Values(d.SeparationsDeg), histBins)
	if err != nil {
		return err
	}
	h.FillColor = color.NRGBA{R: 72, G: 209, B: 204, A: 200} // medium turquoise
	h.LineStyle.Color = color.Black
	p.Add(h)

	rule, err := verticalRule(d.SeparationMarkerDeg, histMaxCount(d.SeparationsDeg, histBins))
	if err != nil {
		return err
	}
	rule.Color = color.NRGBA{R: 255, G: 0, B: 0, A: 255}
	p.Add(rule)
	p.Legend.Add("Radius Percentile", rule)
	p.Legend.Top = true

	return p.Save(10*vg.Inch, 6*vg.Inch, path)
}

// verticalRule builds a dashed vertical line at x spanning [0, height].
func verticalRule(x, height float64) (*plotter.Line, error) {
	if height <= 0 {
		height = 1
	}

	line, err := plotter.NewLine(plotter.XYs{{X: x, Y: 0}, {X: x, Y: height}})
	if err != nil {
		return nil, err
	}
	line.LineStyle.Width = vg.Points(2)
	line.LineStyle.Dashes = []vg.Length{vg.Points(6), vg.Points(4)}

	return line, nil
}

// histMaxCount returns the tallest bin count of a uniform histogram over the
// data range, used to size the vertical rules.
func histMaxCount(vals []float64, bins int) float64 {
	if len(vals) == 0 || bins < 1 {
		return 0
	}

	lo, hi := vals[0], vals[0]
	for _, v := range vals[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo == hi {
		return float64(len(vals))
	}

	counts := make([]int, bins)
	width := (hi - lo) / float64(bins)
	for _, v := range vals {
		i := int((v - lo) / width)
		if i >= bins {
			i = bins - 1
		}
		counts[i]++
	}

	maxCount := 0
	for _, c := range counts {
		if c > maxCount {
			maxCount = c
		}
	}

	return float64(maxCount)
}

// skyPoints converts a sample's positions into plotter points.
func skyPoints(sample domain.GalaxySample) plotter.XYs {
	xys := make(plotter.XYs, sample.Len())
	for i, g := range sample {
		xys[i].X = g.RA
		xys[i].Y = g.Dec
	}

	return xys
}
