// Package safety implements BetLang's safety kernel (component C10,
// spec §4.8): Dutch-book validation, Kelly sizing, risk-of-ruin
// estimation (analytic and Monte-Carlo), cool-off gating, and the
// validated-bet composite. The Monte-Carlo estimator is the one place
// in this module golang.org/x/sync/errgroup is used, grounded on the
// teacher's own indirect dependency on it.
package safety

import "fmt"

// DefaultTolerance is the Dutch-book margin tolerance (spec §4.8).
const DefaultTolerance = 1e-10

// Validate checks that probs are finite and non-negative and sum to 1
// within tol, returning the margin either way.
func Validate(probs []float64, tol float64) (margin float64, err error) {
	var sum float64
	for _, p := range probs {
		if p < 0 {
			return 0, fmt.Errorf("dutch-book: probability must be non-negative, got %g", p)
		}
		sum += p
	}
	margin = sum - 1
	if margin < 0 {
		margin = -margin
	}
	if margin >= tol {
		return margin, fmt.Errorf("dutch-book: sum=%g margin=%g exceeds tolerance %g", sum, margin, tol)
	}
	return margin, nil
}

// Normalize divides each weight by the total, producing a probability
// vector. Errors if the total isn't positive.
func Normalize(weights []float64) ([]float64, error) {
	var total float64
	for _, w := range weights {
		if w < 0 {
			return nil, fmt.Errorf("dutch-book: weight must be non-negative, got %g", w)
		}
		total += w
	}
	if total <= 0 {
		return nil, fmt.Errorf("dutch-book: total weight must be positive")
	}
	out := make([]float64, len(weights))
	for i, w := range weights {
		out[i] = w / total
	}
	return out, nil
}

// FromOdds validates a set of decimal odds by converting each to an
// implied probability (1/odds) and checking the resulting vector.
func FromOdds(odds []float64, tol float64) (margin float64, err error) {
	probs := make([]float64, len(odds))
	for i, o := range odds {
		if o <= 0 {
			return 0, fmt.Errorf("dutch-book: odds must be positive, got %g", o)
		}
		probs[i] = 1 / o
	}
	return Validate(probs, tol)
}
