// Package cosmo implements the flat ΛCDM distance measures the analysis
// needs: comoving, angular-diameter and luminosity distance, the distance
// modulus, and the proper angular scale at the cluster redshift.
package cosmo

import (
	"math"

	"clustermass/pkg/serrors"
)

// SpeedOfLightKmS is the exact speed of light in km/s, used for the Hubble
// distance. (Recession velocities elsewhere use the configured approximate
// value, matching the survey convention.)
const SpeedOfLightKmS = 299792.458

// simpsonSteps is the number of composite-Simpson intervals used for the
// comoving-distance integral. The integrand 1/E is smooth, so this is
// converged far below 0.1% for z ≲ 1.
const simpsonSteps = 1024

// FlatLCDM is a flat ΛCDM background: ΩΛ = 1 − Ωm, zero curvature and
// radiation neglected.
type FlatLCDM struct {
	// H0 is the Hubble constant in km/s/Mpc.
	H0 float64
	// OmegaM is the matter density parameter.
	OmegaM float64
}

// OmegaL returns the dark-energy density parameter 1 − Ωm.
func (c FlatLCDM) OmegaL() float64 { return 1 - c.OmegaM }

// HubbleDistanceMpc returns c/H0 in Mpc.
func (c FlatLCDM) HubbleDistanceMpc() float64 { return SpeedOfLightKmS / c.H0 }

// E returns the dimensionless Hubble parameter
// E(z) = sqrt(Ωm(1+z)³ + ΩΛ).
func (c FlatLCDM) E(z float64) float64 {
	zp1 := 1 + z

	return math.Sqrt(c.OmegaM*zp1*zp1*zp1 + c.OmegaL())
}

// validate rejects parameter/redshift combinations for which the distance
// measures are undefined.
func (c FlatLCDM) validate(z float64) error {
	switch {
	case c.H0 <= 0:
		return serrors.With(serrors.ErrUndefinedQuantity, "H0 must be positive, got %g", c.H0)
	case c.OmegaM < 0 || c.OmegaM > 1:
		return serrors.With(serrors.ErrUndefinedQuantity, "Omega_m must be in [0, 1], got %g", c.OmegaM)
	case z < 0 || math.IsNaN(z):
		return serrors.With(serrors.ErrUndefinedQuantity, "redshift must be non-negative, got %g", z)
	}

	return nil
}

// ComovingDistanceMpc returns the line-of-sight comoving distance
// D_C(z) = (c/H0) ∫₀ᶻ dz'/E(z') in Mpc, by composite Simpson quadrature.
func (c FlatLCDM) ComovingDistanceMpc(z float64) (float64, error) {
	if err := c.validate(z); err != nil {
		return 0, err
	}
	if z == 0 {
		return 0, nil
	}

	h := z / simpsonSteps
	sum := 1/c.E(0) + 1/c.E(z)
	for i := 1; i < simpsonSteps; i++ {
		w := 2.0
		if i%2 == 1 {
			w = 4.0
		}
		sum += w / c.E(float64(i)*h)
	}

	return c.HubbleDistanceMpc() * sum * h / 3, nil
}

// AngularDiameterDistanceMpc returns D_A(z) = D_C(z)/(1+z) in Mpc.
func (c FlatLCDM) AngularDiameterDistanceMpc(z float64) (float64, error) {
	dc, err := c.ComovingDistanceMpc(z)
	if err != nil {
		return 0, err
	}

	return dc / (1 + z), nil
}

// LuminosityDistanceMpc returns D_L(z) = D_C(z)·(1+z) in Mpc.
func (c FlatLCDM) LuminosityDistanceMpc(z float64) (float64, error) {
	dc, err := c.ComovingDistanceMpc(z)
	if err != nil {
		return 0, err
	}

	return dc * (1 + z), nil
}

// DistanceModulus returns μ(z) = 5·log10(D_L/10pc). It is undefined at
// z = 0, where the luminosity distance vanishes.
func (c FlatLCDM) DistanceModulus(z float64) (float64, error) {
	dl, err := c.LuminosityDistanceMpc(z)
	if err != nil {
		return 0, err
	}
	if dl <= 0 {
		return 0, serrors.With(serrors.ErrUndefinedQuantity,
			"distance modulus undefined at luminosity distance %g Mpc", dl)
	}

	// D_L in parsecs over the 10 pc zero point
	return 5 * math.Log10(dl*1e6/10), nil
}

// ProperMpcPerDeg returns the proper transverse scale at redshift z in
// Mpc per degree of angular separation.
func (c FlatLCDM) ProperMpcPerDeg(z float64) (float64, error) {
	da, err := c.AngularDiameterDistanceMpc(z)
	if err != nil {
		return 0, err
	}

	return da * math.Pi / 180, nil
}
