// Package kinematics derives the mean redshift and the line-of-sight
// velocity dispersion of a member sample. Velocities use the
// non-relativistic v = c·z, adequate in the low-redshift regime the
// analysis targets, and dispersions use sample (N−1) statistics.
package kinematics

import (
	"gonum.org/v1/gonum/stat"

	"clustermass/pkg/domain"
	"clustermass/pkg/serrors"
)

// Result holds the kinematic quantities of a member sample.
type Result struct {
	// MeanRedshift is the sample mean redshift.
	MeanRedshift float64
	// MeanVelocityKmS is the mean recession velocity in km/s.
	MeanVelocityKmS float64
	// DispersionKmS is the sample standard deviation of the recession
	// velocities in km/s. Zero only when every redshift is identical.
	DispersionKmS float64
}

// Estimate computes the kinematics of sample with the given speed of light
// in km/s. A sample with fewer than 2 records has an undefined dispersion
// and yields ErrInsufficientData rather than a zero.
func Estimate(sample domain.GalaxySample, speedOfLightKmS float64) (Result, error) {
	if sample.Len() < 2 {
		return Result{}, serrors.With(serrors.ErrInsufficientData,
			"velocity dispersion needs at least 2 members, have %d", sample.Len())
	}

	vs := sample.Velocities(speedOfLightKmS)
	meanV := stat.Mean(vs, nil)

	return Result{
		MeanRedshift:    meanV / speedOfLightKmS,
		MeanVelocityKmS: meanV,
		DispersionKmS:   stat.StdDev(vs, nil),
	}, nil
}
