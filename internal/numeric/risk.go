package numeric

import (
	"fmt"
	"sort"
)

// Risk wraps a realized sample set and computes tail-risk statistics
// against it (spec §4.9). Unlike the other thirteen variants, Risk is
// not itself a parametric distribution constructed ahead of sampling —
// it is built FROM samples (typically Monte-Carlo draws the safety
// kernel already produced), which is why its constructor takes a slice.
type Risk struct {
	Samples []float64
}

func NewRisk(samples []float64) (*Risk, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("risk: requires at least one sample")
	}
	cp := make([]float64, len(samples))
	copy(cp, samples)
	return &Risk{Samples: cp}, nil
}

func (r *Risk) VariantName() string { return "risk" }
func (r *Risk) String() string      { return fmt.Sprintf("risk(n=%d)", len(r.Samples)) }

// sorted returns an ascending copy of r.Samples.
func (r *Risk) sorted() []float64 {
	s := make([]float64, len(r.Samples))
	copy(s, r.Samples)
	sort.Float64s(s)
	return s
}

// VaR returns the Value-at-Risk at confidence alpha in (0, 1): the
// floor((1-alpha)*n)-th order statistic, 0-indexed and clamped to a
// valid index (spec §4.9).
func (r *Risk) VaR(alpha float64) float64 {
	s := r.sorted()
	n := len(s)
	idx := int((1 - alpha) * float64(n))
	if idx < 0 {
		idx = 0
	}
	if idx >= n {
		idx = n - 1
	}
	return s[idx]
}

// CVaR is the mean of all samples at or below the VaR threshold (spec
// §4.9): the expected loss conditional on being in the tail VaR marks.
func (r *Risk) CVaR(alpha float64) float64 {
	v := r.VaR(alpha)
	var sum float64
	var count int
	for _, x := range r.Samples {
		if x <= v {
			sum += x
			count++
		}
	}
	if count == 0 {
		return v
	}
	return sum / float64(count)
}
