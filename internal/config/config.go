// Package config defines the analysis configuration: the catalog location,
// the member-selection tunables, the adopted physical constants and the
// assumed cosmology. Values come from a YAML file and/or environment
// variables, with literature defaults baked in.
package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"

	"clustermass/pkg/serrors"
)

// Config represents the full analysis configuration.
type Config struct {
	// Environment specifies the current running environment (development, production).
	Environment string `env:"ENVIRONMENT" env-default:"development" yaml:"environment"`

	// CatalogPath is the path of the galaxy catalog CSV to analyze.
	CatalogPath string `env:"CATALOG_PATH" env-default:"catalog.csv" yaml:"catalogPath"`

	// OutputDir is the directory the diagnostic plots are written to.
	OutputDir string `env:"OUTPUT_DIR" env-default:"plots" yaml:"outputDir"`

	// Selection controls the iterative sigma-clipping member selection.
	Selection struct {
		// ClipSigma is the rejection threshold in units of the redshift
		// standard deviation.
		ClipSigma float64 `env:"CLIP_SIGMA" env-default:"3.0" yaml:"clipSigma"`
		// MaxIterations caps the number of clipping passes when the
		// selection does not reach a fixed point earlier.
		MaxIterations int `env:"MAX_CLIP_ITERATIONS" env-default:"5" yaml:"maxIterations"`
	} `yaml:"selection"`

	// Physics holds the adopted constants of the mass estimators. These are
	// literature conventions, not fitted quantities.
	Physics struct {
		// SpeedOfLightKmS is the speed of light used for v = c·z, in km/s.
		SpeedOfLightKmS float64 `env:"SPEED_OF_LIGHT_KM_S" env-default:"3e5" yaml:"speedOfLightKmS"`
		// VirialFactor is the geometry/projection factor of the virial mass
		// M = factor·σ²·R/G. The default 3π/2 assumes an isothermal sphere
		// observed in projection.
		VirialFactor float64 `env:"VIRIAL_FACTOR" env-default:"4.71238898038469" yaml:"virialFactor"`
		// MassToLightRatio converts total g-band luminosity to mass, in
		// solar masses per solar luminosity.
		MassToLightRatio float64 `env:"MASS_TO_LIGHT_RATIO" env-default:"100" yaml:"massToLightRatio"`
		// SunAbsGMag is the Sun's absolute magnitude in the g band.
		SunAbsGMag float64 `env:"SUN_ABS_GMAG" env-default:"5.12" yaml:"sunAbsGMag"`
		// RadiusPercentile selects the representative projected separation
		// used as the cluster radius (0.90 = 90th percentile).
		RadiusPercentile float64 `env:"RADIUS_PERCENTILE" env-default:"0.9" yaml:"radiusPercentile"`
	} `yaml:"physics"`

	// Center is the adopted cluster center on the sky.
	Center struct {
		// RADeg is the center right ascension in degrees.
		RADeg float64 `env:"CENTER_RA_DEG" env-default:"258.1294" yaml:"raDeg"`
		// DecDeg is the center declination in degrees.
		DecDeg float64 `env:"CENTER_DEC_DEG" env-default:"64.0926" yaml:"decDeg"`
	} `yaml:"center"`

	// Cosmology is the assumed flat ΛCDM background (ΩΛ = 1 − Ωm).
	Cosmology struct {
		// H0 is the Hubble constant in km/s/Mpc.
		H0 float64 `env:"COSMOLOGY_H0" env-default:"70" yaml:"h0"`
		// OmegaM is the matter density parameter.
		OmegaM float64 `env:"COSMOLOGY_OMEGA_M" env-default:"0.3" yaml:"omegaM"`
	} `yaml:"cosmology"`
}

// Load reads the YAML config file at the given path, overlaying environment
// variables. A missing file is not an error: environment variables and the
// baked-in defaults apply.
func Load(configPath string) (*Config, error) {
	var cfg Config

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("could not read config from environment: %w", err)
		}

		return &cfg, nil
	}

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("could not read config: %w", err)
	}

	return &cfg, nil
}

// Validate rejects configurations that would make the pipeline undefined.
func (c *Config) Validate() error {
	switch {
	case c.CatalogPath == "":
		return serrors.With(serrors.ErrParse, "catalog path is empty")
	case c.Selection.ClipSigma <= 0:
		return serrors.With(serrors.ErrUndefinedQuantity, "clip sigma must be positive, got %g", c.Selection.ClipSigma)
	case c.Selection.MaxIterations < 1:
		return serrors.With(serrors.ErrUndefinedQuantity, "max clip iterations must be at least 1, got %d", c.Selection.MaxIterations)
	case c.Physics.SpeedOfLightKmS <= 0:
		return serrors.With(serrors.ErrUndefinedQuantity, "speed of light must be positive, got %g", c.Physics.SpeedOfLightKmS)
	case c.Physics.VirialFactor <= 0:
		return serrors.With(serrors.ErrUndefinedQuantity, "virial factor must be positive, got %g", c.Physics.VirialFactor)
	case c.Physics.MassToLightRatio <= 0:
		return serrors.With(serrors.ErrUndefinedQuantity, "mass-to-light ratio must be positive, got %g", c.Physics.MassToLightRatio)
	case c.Physics.RadiusPercentile <= 0 || c.Physics.RadiusPercentile > 1:
		return serrors.With(serrors.ErrUndefinedQuantity, "radius percentile must be in (0, 1], got %g", c.Physics.RadiusPercentile)
	case c.Cosmology.H0 <= 0:
		return serrors.With(serrors.ErrUndefinedQuantity, "H0 must be positive, got %g", c.Cosmology.H0)
	case c.Cosmology.OmegaM < 0 || c.Cosmology.OmegaM > 1:
		return serrors.With(serrors.ErrUndefinedQuantity, "Omega_m must be in [0, 1], got %g", c.Cosmology.OmegaM)
	}

	return nil
}
