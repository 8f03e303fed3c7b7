// Package geometry converts member positions on the sky into a projected
// physical cluster radius: spherical angular separations from the adopted
// center, scaled by the proper angular scale at the cluster redshift, with
// a percentile of the resulting distribution taken as the radius.
package geometry

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"clustermass/pkg/domain"
	"clustermass/pkg/serrors"
)

// Center is a position on the sky in degrees.
type Center struct {
	RADeg  float64
	DecDeg float64
}

// Separations holds the per-member separations from the cluster center, in
// the order of the member sample.
type Separations struct {
	// AngularDeg is the on-sky separation in degrees.
	AngularDeg []float64
	// ProjectedMpc is the proper transverse separation in Mpc.
	ProjectedMpc []float64
}

// AngularSeparationDeg returns the great-circle separation between two
// points given in degrees, using the haversine form, which is stable for
// the small angles cluster fields subtend.
func AngularSeparationDeg(ra1, dec1, ra2, dec2 float64) float64 {
	const degToRad = math.Pi / 180

	dRA := (ra2 - ra1) * degToRad
	dDec := (dec2 - dec1) * degToRad
	sinDRA := math.Sin(dRA / 2)
	sinDDec := math.Sin(dDec / 2)

	h := sinDDec*sinDDec +
		math.Cos(dec1*degToRad)*math.Cos(dec2*degToRad)*sinDRA*sinDRA

	return 2 * math.Asin(math.Min(1, math.Sqrt(h))) / degToRad
}

// ProjectedSeparations computes every member's separation from center and
// its proper projected distance given the transverse scale in Mpc/deg.
func ProjectedSeparations(sample domain.GalaxySample, center Center, scaleMpcPerDeg float64) Separations {
	sep := Separations{
		AngularDeg:   make([]float64, sample.Len()),
		ProjectedMpc: make([]float64, sample.Len()),
	}
	for i, g := range sample {
		theta := AngularSeparationDeg(g.RA, g.Dec, center.RADeg, center.DecDeg)
		sep.AngularDeg[i] = theta
		sep.ProjectedMpc[i] = theta * scaleMpcPerDeg
	}

	return sep
}

// RadiusMpc returns the cluster radius as the given percentile (in (0, 1])
// of the projected separations, linearly interpolated between order
// statistics. Fewer than 2 members leave the geometry undefined, as does a
// zero radius (every member exactly at the center).
func RadiusMpc(projectedMpc []float64, percentile float64) (float64, error) {
	if len(projectedMpc) < 2 {
		return 0, serrors.With(serrors.ErrInsufficientData,
			"projected radius needs at least 2 members, have %d", len(projectedMpc))
	}

	sorted := append([]float64(nil), projectedMpc...)
	sort.Float64s(sorted)

	r := stat.Quantile(percentile, stat.LinInterp, sorted, nil)
	if r <= 0 || math.IsNaN(r) {
		return 0, serrors.With(serrors.ErrUndefinedQuantity,
			"projected radius is not positive (%g Mpc)", r)
	}

	return r, nil
}
