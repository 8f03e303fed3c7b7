package mass_test

import (
	"testing"

	"clustermass/internal/mass"
	"clustermass/pkg/domain"
	"clustermass/pkg/serrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const virialFactor = 4.71238898038469 // 3π/2

func TestDynamicalReferenceValue(t *testing.T) {
	// (3π/2)·(1000 km/s)²·1 Mpc / G ≈ 1.0957e15 M_sun
	m, err := mass.Dynamical(virialFactor, 1000, 1.0)
	require.NoError(t, err)
	assert.InEpsilon(t, 1.0957e15, m, 1e-3)
}

func TestDynamicalScaling(t *testing.T) {
	base, err := mass.Dynamical(virialFactor, 500, 1.0)
	require.NoError(t, err)

	t.Run("linear in radius", func(t *testing.T) {
		m, err := mass.Dynamical(virialFactor, 500, 2.0)
		require.NoError(t, err)
		assert.InEpsilon(t, 2.0, m/base, 1e-12)
	})

	t.Run("quadratic in dispersion", func(t *testing.T) {
		m, err := mass.Dynamical(virialFactor, 1000, 1.0)
		require.NoError(t, err)
		assert.InEpsilon(t, 4.0, m/base, 1e-12)
	})

	t.Run("linear in virial factor", func(t *testing.T) {
		m, err := mass.Dynamical(2*virialFactor, 500, 1.0)
		require.NoError(t, err)
		assert.InEpsilon(t, 2.0, m/base, 1e-12)
	})
}

func TestDynamicalUndefined(t *testing.T) {
	cases := []struct {
		name          string
		sigma, radius float64
	}{
		{name: "zero dispersion", sigma: 0, radius: 1},
		{name: "negative dispersion", sigma: -100, radius: 1},
		{name: "zero radius", sigma: 500, radius: 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := mass.Dynamical(virialFactor, tc.sigma, tc.radius)
			require.Error(t, err)
			assert.ErrorIs(t, err, serrors.ErrUndefinedQuantity)
		})
	}
}

func TestTotalLuminositySunAtTenParsecs(t *testing.T) {
	// a member with the Sun's absolute magnitude at the 10 pc zero point
	// (distance modulus 0) contributes exactly 1 L_sun
	sample := domain.GalaxySample{{GMag: 5.12}}

	l, err := mass.TotalLuminosity(sample, 0, 5.12)
	require.NoError(t, err)
	assert.InEpsilon(t, 1.0, l, 1e-12)
}

func TestTotalLuminosityMagnitudeScale(t *testing.T) {
	// 5 magnitudes brighter = 100× more luminous
	sample := domain.GalaxySample{{GMag: 0.12}}

	l, err := mass.TotalLuminosity(sample, 0, 5.12)
	require.NoError(t, err)
	assert.InEpsilon(t, 100.0, l, 1e-9)
}

func TestTotalLuminosityAdds(t *testing.T) {
	one := domain.GalaxySample{{GMag: 17.0}}
	two := domain.GalaxySample{{GMag: 17.0}, {GMag: 17.0}}

	l1, err := mass.TotalLuminosity(one, 37.82, 5.12)
	require.NoError(t, err)
	l2, err := mass.TotalLuminosity(two, 37.82, 5.12)
	require.NoError(t, err)

	assert.InEpsilon(t, 2.0, l2/l1, 1e-12)
}

func TestTotalLuminosityEmptySample(t *testing.T) {
	_, err := mass.TotalLuminosity(nil, 37.82, 5.12)
	require.Error(t, err)
	assert.ErrorIs(t, err, serrors.ErrInsufficientData)
}

func TestLuminous(t *testing.T) {
	m, err := mass.Luminous(1.5e12, 100)
	require.NoError(t, err)
	assert.InEpsilon(t, 1.5e14, m, 1e-12)

	_, err = mass.Luminous(0, 100)
	require.Error(t, err)
	assert.ErrorIs(t, err, serrors.ErrUndefinedQuantity)
}

func TestEstimateRatioInvariant(t *testing.T) {
	est, err := mass.Estimate(virialFactor, 1317, 0.085, 1.52e12, 100)
	require.NoError(t, err)

	assert.Greater(t, est.DynamicalMassMsun, 0.0)
	assert.Greater(t, est.LuminousMassMsun, 0.0)
	assert.InEpsilon(t, est.DynamicalMassMsun/est.LuminousMassMsun, est.Ratio, 1e-12)
}

func TestEstimatePropagatesUndefined(t *testing.T) {
	_, err := mass.Estimate(virialFactor, 0, 0.085, 1.5e12, 100)
	require.Error(t, err)
	assert.ErrorIs(t, err, serrors.ErrUndefinedQuantity)

	_, err = mass.Estimate(virialFactor, 1317, 0.085, 0, 100)
	require.Error(t, err)
	assert.ErrorIs(t, err, serrors.ErrUndefinedQuantity)
}
