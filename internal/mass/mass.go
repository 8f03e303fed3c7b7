// Package mass holds the two independent cluster mass estimators: the
// virial-theorem dynamical mass and the luminosity-based mass from the
// summed g-band light of the members.
package mass

import (
	"math"

	"clustermass/pkg/domain"
	"clustermass/pkg/serrors"
)

// GMpcKm2PerMsunS2 is the gravitational constant in Mpc·(km/s)²/M☉, the
// unit system in which σ²·R/G lands directly in solar masses.
const GMpcKm2PerMsunS2 = 4.300917270e-9

// Dynamical returns the virial mass M = factor·σ²·R/G in solar masses, with
// the dispersion in km/s and the radius in Mpc. A non-positive dispersion
// or radius leaves the estimator undefined.
func Dynamical(virialFactor, dispersionKmS, radiusMpc float64) (float64, error) {
	switch {
	case dispersionKmS <= 0 || math.IsNaN(dispersionKmS):
		return 0, serrors.With(serrors.ErrUndefinedQuantity,
			"dynamical mass undefined for velocity dispersion %g km/s", dispersionKmS)
	case radiusMpc <= 0 || math.IsNaN(radiusMpc):
		return 0, serrors.With(serrors.ErrUndefinedQuantity,
			"dynamical mass undefined for radius %g Mpc", radiusMpc)
	}

	return virialFactor * dispersionKmS * dispersionKmS * radiusMpc / GMpcKm2PerMsunS2, nil
}

// TotalLuminosity returns the summed g-band luminosity of the members in
// solar units: each apparent magnitude becomes an absolute magnitude via
// the distance modulus, then a luminosity via L = 10^(0.4·(M☉ − M)).
func TotalLuminosity(sample domain.GalaxySample, distanceModulus, sunAbsGMag float64) (float64, error) {
	if sample.Len() == 0 {
		return 0, serrors.With(serrors.ErrInsufficientData, "luminosity needs a non-empty member sample")
	}

	var total float64
	for _, g := range sample {
		absMag := g.GMag - distanceModulus
		total += math.Pow(10, 0.4*(sunAbsGMag-absMag))
	}

	if total <= 0 || math.IsNaN(total) || math.IsInf(total, 0) {
		return 0, serrors.With(serrors.ErrUndefinedQuantity,
			"total luminosity is not a positive finite value (%g L_sun)", total)
	}

	return total, nil
}

// Luminous returns the luminous mass M = L_tot·(M/L) in solar masses.
func Luminous(totalLuminositySun, massToLight float64) (float64, error) {
	if totalLuminositySun <= 0 || math.IsNaN(totalLuminositySun) {
		return 0, serrors.With(serrors.ErrUndefinedQuantity,
			"luminous mass undefined for total luminosity %g L_sun", totalLuminositySun)
	}

	return totalLuminositySun * massToLight, nil
}

// Estimate combines the two estimators into a MassEstimate with the
// dynamical-to-luminous ratio.
func Estimate(virialFactor, dispersionKmS, radiusMpc, totalLuminositySun, massToLight float64) (domain.MassEstimate, error) {
	dyn, err := Dynamical(virialFactor, dispersionKmS, radiusMpc)
	if err != nil {
		return domain.MassEstimate{}, err
	}

	lum, err := Luminous(totalLuminositySun, massToLight)
	if err != nil {
		return domain.MassEstimate{}, err
	}

	return domain.MassEstimate{
		DynamicalMassMsun: dyn,
		LuminousMassMsun:  lum,
		Ratio:             dyn / lum,
	}, nil
}
