// Package members selects cluster member galaxies by iterative sigma
// clipping on redshift: records farther than a threshold number of standard
// deviations from the running sample mean are rejected until the sample
// reaches a fixed point or an iteration cap.
package members

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"clustermass/pkg/domain"
	"clustermass/pkg/serrors"
)

// Select clips sample on redshift at clipSigma standard deviations around
// the sample mean, repeating up to maxIterations passes. It returns the
// stable member sample and the number of passes executed.
//
// A pass that would reject every remaining record instead keeps the previous
// sample and stops: the selector never returns an empty sample for a
// non-empty input. A sample whose redshifts are all identical is a fixed
// point (its dispersion is zero, so the clip window collapses onto the mean).
func Select(sample domain.GalaxySample, clipSigma float64, maxIterations int) (domain.GalaxySample, int, error) {
	if sample.Len() == 0 {
		return nil, 0, serrors.With(serrors.ErrInsufficientData, "member selection needs a non-empty sample")
	}

	current := sample
	iterations := 0
	for iterations < maxIterations {
		iterations++

		// dispersion is undefined below 2 records; whatever is left is final
		if current.Len() < 2 {
			break
		}

		zs := current.Redshifts()
		mean := stat.Mean(zs, nil)
		sigma := stat.StdDev(zs, nil)
		if sigma == 0 {
			break
		}

		kept := current[:0:0]
		for _, g := range current {
			if math.Abs(g.Redshift-mean) <= clipSigma*sigma {
				kept = append(kept, g)
			}
		}

		// a clip that empties the sample is a defined recovery: retain the
		// prior sample rather than returning nothing
		if len(kept) == 0 {
			break
		}
		if len(kept) == current.Len() {
			break
		}

		current = kept
	}

	return current, iterations, nil
}
