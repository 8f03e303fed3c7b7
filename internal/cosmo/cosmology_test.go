package cosmo_test

import (
	"testing"

	"clustermass/internal/cosmo"
	"clustermass/pkg/serrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// reference is the background the upstream survey analysis assumed.
var reference = cosmo.FlatLCDM{H0: 70, OmegaM: 0.3}

func TestComovingDistanceReferenceValue(t *testing.T) {
	// D_C(0.0808) for H0=70, Ωm=0.3 is ≈339.66 Mpc (cross-checked by an
	// independent Simpson evaluation of (c/H0)∫dz/E).
	dc, err := reference.ComovingDistanceMpc(0.0808)
	require.NoError(t, err)
	assert.InEpsilon(t, 339.66, dc, 2e-3)
}

func TestDistanceZeroAtOrigin(t *testing.T) {
	dc, err := reference.ComovingDistanceMpc(0)
	require.NoError(t, err)
	assert.InDelta(t, 0, dc, 0)

	da, err := reference.AngularDiameterDistanceMpc(0)
	require.NoError(t, err)
	assert.InDelta(t, 0, da, 0)
}

func TestDimensionlessHubbleParameter(t *testing.T) {
	// E(0) = 1 by construction
	assert.InDelta(t, 1.0, reference.E(0), 1e-12)

	// at z = 0.0808: sqrt(0.3·1.0808³ + 0.7)
	assert.InDelta(t, 1.0386309, reference.E(0.0808), 1e-6)
}

func TestLuminosityAngularReciprocity(t *testing.T) {
	const z = 0.0808

	da, err := reference.AngularDiameterDistanceMpc(z)
	require.NoError(t, err)
	dl, err := reference.LuminosityDistanceMpc(z)
	require.NoError(t, err)

	// Etherington relation: D_L = (1+z)² D_A
	assert.InEpsilon(t, (1+z)*(1+z), dl/da, 1e-12)
}

func TestComovingDistanceMonotonic(t *testing.T) {
	prev := 0.0
	for _, z := range []float64{0.01, 0.05, 0.1, 0.3, 0.5, 1.0} {
		dc, err := reference.ComovingDistanceMpc(z)
		require.NoError(t, err)
		assert.Greater(t, dc, prev, "D_C must grow with z")
		prev = dc
	}
}

func TestDistanceModulusReferenceValue(t *testing.T) {
	// D_L(0.0808) ≈ 367.1 Mpc → μ = 5·log10(3.671e7) ≈ 37.82
	mu, err := reference.DistanceModulus(0.0808)
	require.NoError(t, err)
	assert.InDelta(t, 37.82, mu, 0.02)
}

func TestDistanceModulusUndefinedAtZeroRedshift(t *testing.T) {
	_, err := reference.DistanceModulus(0)
	require.Error(t, err)
	assert.ErrorIs(t, err, serrors.ErrUndefinedQuantity)
}

func TestProperScaleReferenceValue(t *testing.T) {
	scale, err := reference.ProperMpcPerDeg(0.0808)
	require.NoError(t, err)

	// D_A ≈ 314.3 Mpc → ≈5.49 Mpc/deg
	assert.InEpsilon(t, 5.485, scale, 5e-3)
}

func TestInvalidInputs(t *testing.T) {
	cases := []struct {
		name string
		c    cosmo.FlatLCDM
		z    float64
	}{
		{name: "negative redshift", c: reference, z: -0.1},
		{name: "zero H0", c: cosmo.FlatLCDM{H0: 0, OmegaM: 0.3}, z: 0.1},
		{name: "Omega_m above closure", c: cosmo.FlatLCDM{H0: 70, OmegaM: 1.5}, z: 0.1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.c.ComovingDistanceMpc(tc.z)
			require.Error(t, err)
			assert.ErrorIs(t, err, serrors.ErrUndefinedQuantity)
		})
	}
}
