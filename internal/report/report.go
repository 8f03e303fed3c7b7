// Package report emits the analysis results: a scalar summary on a writer
// and three diagnostic plots as PNG files. Nothing downstream consumes the
// output; both are purely observational side effects.
package report

import (
	"fmt"
	"io"
)

// Summary holds every scalar the analysis prints.
type Summary struct {
	// TotalGalaxies is the catalog size before member selection.
	TotalGalaxies int
	// Members is the size of the final member sample.
	Members int
	// ClipSigma is the selection threshold the run used.
	ClipSigma float64
	// ClipIterations is the number of clipping passes executed.
	ClipIterations int

	MeanRedshift          float64
	MeanVelocityKmS       float64
	VelocityDispersionKmS float64
	RadiusMpc             float64

	DynamicalMassMsun float64
	LuminousMassMsun  float64
	MassRatio         float64
}

// Print writes the scalar results to w, one quantity per line.
func Print(w io.Writer, s Summary) {
	fmt.Fprintf(w, "Mean redshift (z): %.4f\n", s.MeanRedshift)
	fmt.Fprintf(w, "Mean radial velocity: %.2f km/s\n", s.MeanVelocityKmS)
	fmt.Fprintf(w, "Velocity dispersion: %.2f km/s\n", s.VelocityDispersionKmS)
	fmt.Fprintf(w, "Total galaxies in dataset: %d\n", s.TotalGalaxies)
	fmt.Fprintf(w, "Cluster members within ±%.1fσ: %d (%d clipping passes)\n",
		s.ClipSigma, s.Members, s.ClipIterations)
	fmt.Fprintf(w, "Estimated cluster radius: %.2f Mpc\n", s.RadiusMpc)
	fmt.Fprintf(w, "Dynamical mass: %.2f × 10^14 M_sun\n", s.DynamicalMassMsun/1e14)
	fmt.Fprintf(w, "Luminous mass: %.2f × 10^14 M_sun\n", s.LuminousMassMsun/1e14)
	fmt.Fprintf(w, "Mass ratio (dyn/lum): %.2f\n", s.MassRatio)
}
