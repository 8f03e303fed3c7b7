package domain

// GalaxyRecord is a single catalog row: position on the sky, spectroscopic
// redshift, and apparent g-band magnitude. Records are immutable once loaded.
type GalaxyRecord struct {
	// ObjID is the survey object identifier. It may be empty when the
	// catalog does not carry one; it is used only to drop duplicate rows.
	ObjID string
	// RA is the right ascension in degrees.
	RA float64
	// Dec is the declination in degrees.
	Dec float64
	// Redshift is the spectroscopic redshift (dimensionless).
	Redshift float64
	// GMag is the apparent g-band magnitude.
	GMag float64
}

// GalaxySample is an ordered collection of galaxy records. The member
// selector narrows a sample by dropping rows; records are never added or
// altered after loading.
type GalaxySample []GalaxyRecord

// Len returns the number of records in the sample.
func (s GalaxySample) Len() int { return len(s) }

// Redshifts returns the redshift column as a fresh slice.
func (s GalaxySample) Redshifts() []float64 {
	zs := make([]float64, len(s))
	for i, g := range s {
		zs[i] = g.Redshift
	}

	return zs
}

// Velocities returns the recession velocity v = c·z of every record, with
// the speed of light given in km/s. The non-relativistic form is consistent
// with the low-redshift regime this analysis targets.
func (s GalaxySample) Velocities(speedOfLightKmS float64) []float64 {
	vs := make([]float64, len(s))
	for i, g := range s {
		vs[i] = g.Redshift * speedOfLightKmS
	}

	return vs
}

// ClusterStats holds the kinematic and geometric quantities derived from the
// final member sample. It is recomputed from scratch on every run.
type ClusterStats struct {
	// MeanRedshift is the sample mean redshift of the members.
	MeanRedshift float64
	// MeanVelocityKmS is the mean recession velocity in km/s.
	MeanVelocityKmS float64
	// VelocityDispersionKmS is the sample (N−1) standard deviation of the
	// member recession velocities in km/s.
	VelocityDispersionKmS float64
	// RadiusMpc is the projected cluster radius in megaparsecs.
	RadiusMpc float64
	// Members is the number of galaxies in the final member sample.
	Members int
}

// MassEstimate pairs the two independent mass estimates with their ratio.
// Invariant: Ratio = DynamicalMassMsun / LuminousMassMsun, and both masses
// are strictly positive for a non-empty member sample.
type MassEstimate struct {
	// DynamicalMassMsun is the virial-theorem mass in solar masses.
	DynamicalMassMsun float64
	// LuminousMassMsun is the luminosity-based mass in solar masses.
	LuminousMassMsun float64
	// Ratio is DynamicalMassMsun divided by LuminousMassMsun.
	Ratio float64
}
