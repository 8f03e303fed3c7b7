// Package analysis wires the pipeline stages together: load the catalog,
// select members by sigma clipping, derive kinematics and geometry, estimate
// both masses, and report. One call, one pass, no state between runs.
package analysis

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"clustermass/internal/catalog"
	"clustermass/internal/config"
	"clustermass/internal/cosmo"
	"clustermass/internal/geometry"
	"clustermass/internal/kinematics"
	"clustermass/internal/mass"
	"clustermass/internal/members"
	"clustermass/internal/report"
	"clustermass/pkg/domain"
	"clustermass/pkg/logger"
)

// Analyzer runs the full cluster mass analysis for one configuration.
type Analyzer struct {
	cfg *config.Config
	out io.Writer
}

// New constructs an Analyzer writing its scalar report to out.
func New(cfg *config.Config, out io.Writer) *Analyzer {
	return &Analyzer{cfg: cfg, out: out}
}

// Result collects everything one run produced. Tests and callers read from
// here; the printed report and the plot files are side effects.
type Result struct {
	// All is the catalog as loaded, Members the final clipped sample.
	All     domain.GalaxySample
	Members domain.GalaxySample
	// ClipIterations is the number of clipping passes executed.
	ClipIterations int

	Stats  domain.ClusterStats
	Masses domain.MassEstimate

	// PlotPaths are the PNG files written, in rendering order.
	PlotPaths []string
}

// Run executes the pipeline once. On error nothing is printed or rendered;
// the returned error names the stage that failed.
func (a *Analyzer) Run(ctx context.Context) (*Result, error) {
	if err := a.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	logger.Info(ctx, "loading catalog", zap.String("path", a.cfg.CatalogPath))
	all, err := catalog.Load(a.cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	logger.Info(ctx, "catalog loaded", zap.Int("galaxies", all.Len()))

	selected, iterations, err := members.Select(all, a.cfg.Selection.ClipSigma, a.cfg.Selection.MaxIterations)
	if err != nil {
		return nil, fmt.Errorf("member selection: %w", err)
	}
	logger.Info(ctx, "members selected",
		zap.Int("members", selected.Len()),
		zap.Int("rejected", all.Len()-selected.Len()),
		zap.Int("iterations", iterations))

	kin, err := kinematics.Estimate(selected, a.cfg.Physics.SpeedOfLightKmS)
	if err != nil {
		return nil, fmt.Errorf("kinematics: %w", err)
	}
	logger.Info(ctx, "kinematics estimated",
		zap.Float64("mean_redshift", kin.MeanRedshift),
		zap.Float64("dispersion_km_s", kin.DispersionKmS))

	background := cosmo.FlatLCDM{H0: a.cfg.Cosmology.H0, OmegaM: a.cfg.Cosmology.OmegaM}
	scale, err := background.ProperMpcPerDeg(kin.MeanRedshift)
	if err != nil {
		return nil, fmt.Errorf("geometry: %w", err)
	}

	center := geometry.Center{RADeg: a.cfg.Center.RADeg, DecDeg: a.cfg.Center.DecDeg}
	seps := geometry.ProjectedSeparations(selected, center, scale)
	radius, err := geometry.RadiusMpc(seps.ProjectedMpc, a.cfg.Physics.RadiusPercentile)
	if err != nil {
		return nil, fmt.Errorf("geometry: %w", err)
	}
	logger.Info(ctx, "geometry estimated",
		zap.Float64("scale_mpc_per_deg", scale),
		zap.Float64("radius_mpc", radius))

	mu, err := background.DistanceModulus(kin.MeanRedshift)
	if err != nil {
		return nil, fmt.Errorf("mass: %w", err)
	}
	totalLum, err := mass.TotalLuminosity(selected, mu, a.cfg.Physics.SunAbsGMag)
	if err != nil {
		return nil, fmt.Errorf("mass: %w", err)
	}
	masses, err := mass.Estimate(a.cfg.Physics.VirialFactor, kin.DispersionKmS, radius,
		totalLum, a.cfg.Physics.MassToLightRatio)
	if err != nil {
		return nil, fmt.Errorf("mass: %w", err)
	}
	logger.Info(ctx, "masses estimated",
		zap.Float64("dynamical_msun", masses.DynamicalMassMsun),
		zap.Float64("luminous_msun", masses.LuminousMassMsun),
		zap.Float64("ratio", masses.Ratio))

	res := &Result{
		All:            all,
		Members:        selected,
		ClipIterations: iterations,
		Stats: domain.ClusterStats{
			MeanRedshift:          kin.MeanRedshift,
			MeanVelocityKmS:       kin.MeanVelocityKmS,
			VelocityDispersionKmS: kin.DispersionKmS,
			RadiusMpc:             radius,
			Members:               selected.Len(),
		},
		Masses: masses,
	}

	report.Print(a.out, report.Summary{
		TotalGalaxies:         all.Len(),
		Members:               selected.Len(),
		ClipSigma:             a.cfg.Selection.ClipSigma,
		ClipIterations:        iterations,
		MeanRedshift:          kin.MeanRedshift,
		MeanVelocityKmS:       kin.MeanVelocityKmS,
		VelocityDispersionKmS: kin.DispersionKmS,
		RadiusMpc:             radius,
		DynamicalMassMsun:     masses.DynamicalMassMsun,
		LuminousMassMsun:      masses.LuminousMassMsun,
		MassRatio:             masses.Ratio,
	})

	res.PlotPaths, err = report.RenderAll(a.cfg.OutputDir, report.PlotData{
		AllVelocitiesKmS:    all.Velocities(a.cfg.Physics.SpeedOfLightKmS),
		MemberVelocitiesKmS: selected.Velocities(a.cfg.Physics.SpeedOfLightKmS),
		MeanVelocityKmS:     kin.MeanVelocityKmS,
		All:                 all,
		Members:             selected,
		SeparationsDeg:      seps.AngularDeg,
		SeparationMarkerDeg: radius / scale,
	})
	if err != nil {
		return nil, fmt.Errorf("report: %w", err)
	}
	logger.Info(ctx, "plots rendered", zap.Strings("paths", res.PlotPaths))

	return res, nil
}
