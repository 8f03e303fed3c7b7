package analysis_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"clustermass/internal/analysis"
	"clustermass/internal/config"
	"clustermass/pkg/serrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testConfig returns the default configuration pointed at the given catalog,
// with plots going to a per-test directory.
func testConfig(t *testing.T, catalogPath string) *config.Config {
	t.Helper()

	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)
	cfg.CatalogPath = catalogPath
	cfg.OutputDir = filepath.Join(t.TempDir(), "plots")

	return cfg
}

func writeCatalog(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "catalog.csv")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	return path
}

func TestRunEndToEnd(t *testing.T) {
	cfg := testConfig(t, filepath.Join("testdata", "cluster.csv"))

	var out bytes.Buffer
	res, err := analysis.New(cfg, &out).Run(context.Background())
	require.NoError(t, err)

	// the z = 0.5 interloper is clipped on the first pass; the second pass
	// confirms the fixed point
	assert.Equal(t, 13, res.All.Len())
	assert.Equal(t, 12, res.Members.Len())
	assert.Equal(t, 2, res.ClipIterations)

	// the twelve member redshifts are symmetric around 0.0805
	assert.InDelta(t, 0.0805, res.Stats.MeanRedshift, 1e-9)
	assert.InDelta(t, 24150, res.Stats.MeanVelocityKmS, 1e-6)
	// sample stddev of the member redshifts is 8.0904e-4, times c
	assert.InDelta(t, 242.712, res.Stats.VelocityDispersionKmS, 0.01)

	// the 0.1-degree field at z ≈ 0.08 spans well under a megaparsec
	assert.Greater(t, res.Stats.RadiusMpc, 0.0)
	assert.Less(t, res.Stats.RadiusMpc, 1.0)

	assert.Greater(t, res.Masses.DynamicalMassMsun, 0.0)
	assert.Greater(t, res.Masses.LuminousMassMsun, 0.0)
	assert.InEpsilon(t, res.Masses.DynamicalMassMsun/res.Masses.LuminousMassMsun,
		res.Masses.Ratio, 1e-12)

	printed := out.String()
	assert.Contains(t, printed, "Mean redshift (z): 0.0805")
	assert.Contains(t, printed, "Total galaxies in dataset: 13")
	assert.Contains(t, printed, "Cluster members within ±3.0σ: 12")

	require.Len(t, res.PlotPaths, 3)
	for _, p := range res.PlotPaths {
		info, err := os.Stat(p)
		require.NoError(t, err, "expected plot file %s", p)
		assert.Greater(t, info.Size(), int64(0))
	}
}

func TestRunIsDeterministic(t *testing.T) {
	run := func() (*analysis.Result, error) {
		cfg := testConfig(t, filepath.Join("testdata", "cluster.csv"))

		var out bytes.Buffer
		return analysis.New(cfg, &out).Run(context.Background())
	}

	first, err := run()
	require.NoError(t, err)
	second, err := run()
	require.NoError(t, err)

	// identical input and configuration yield bit-identical scalars
	assert.Equal(t, first.Stats, second.Stats)
	assert.Equal(t, first.Masses, second.Masses)
	assert.Equal(t, first.ClipIterations, second.ClipIterations)
}

func TestRunSingleGalaxyIsInsufficient(t *testing.T) {
	path := writeCatalog(t, "ra,dec,specz,gmag\n258.1,64.1,0.08,17.5\n")
	cfg := testConfig(t, path)

	var out bytes.Buffer
	_, err := analysis.New(cfg, &out).Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, serrors.ErrInsufficientData)
	assert.Contains(t, err.Error(), "kinematics")
	assert.Empty(t, out.String(), "no partial results on failure")
}

func TestRunMalformedCatalogFailsAtLoad(t *testing.T) {
	path := writeCatalog(t, "ra,dec,gmag\n258.1,64.1,17.5\n")
	cfg := testConfig(t, path)

	var out bytes.Buffer
	_, err := analysis.New(cfg, &out).Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, serrors.ErrParse)
	assert.Contains(t, err.Error(), "load")
	assert.Empty(t, out.String())
}

func TestRunInvalidConfig(t *testing.T) {
	cfg := testConfig(t, filepath.Join("testdata", "cluster.csv"))
	cfg.Selection.ClipSigma = -1

	var out bytes.Buffer
	_, err := analysis.New(cfg, &out).Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, serrors.ErrUndefinedQuantity)
	assert.Contains(t, err.Error(), "config")
}

func TestRunAllIdenticalRedshiftsUndefinedDispersion(t *testing.T) {
	// identical redshifts give zero dispersion: the dynamical mass is
	// undefined and the run must fail rather than report zero
	path := writeCatalog(t,
		"ra,dec,specz,gmag\n258.10,64.09,0.08,17.5\n258.12,64.10,0.08,17.6\n258.14,64.08,0.08,17.7\n")
	cfg := testConfig(t, path)

	var out bytes.Buffer
	_, err := analysis.New(cfg, &out).Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, serrors.ErrUndefinedQuantity)
	assert.Contains(t, err.Error(), "mass")
}
