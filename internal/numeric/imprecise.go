package numeric

import "fmt"

// Imprecise is an interval-valued probability: Imprecise(lo, hi),
// 0 ≤ lo ≤ hi ≤ 1 (spec §4.9).
type Imprecise struct {
	Lo, Hi float64
}

func NewImprecise(lo, hi float64) (*Imprecise, error) {
	if !(0 <= lo && lo <= hi && hi <= 1) {
		return nil, fmt.Errorf("imprecise: requires 0 <= lo <= hi <= 1, got [%g, %g]", lo, hi)
	}
	return &Imprecise{Lo: lo, Hi: hi}, nil
}

func (i *Imprecise) VariantName() string { return "imprecise" }
func (i *Imprecise) String() string      { return fmt.Sprintf("imprecise(%g, %g)", i.Lo, i.Hi) }

// Complement flips and subtracts from 1: [1-hi, 1-lo] (spec §4.9).
func (i *Imprecise) Complement() *Imprecise {
	return &Imprecise{Lo: 1 - i.Hi, Hi: 1 - i.Lo}
}

// And uses the independence lower/upper bound for conjunction (spec
// §4.9): [lo1*lo2, hi1*hi2].
func (i *Imprecise) And(o *Imprecise) *Imprecise {
	return &Imprecise{Lo: i.Lo * o.Lo, Hi: i.Hi * o.Hi}
}

// Or uses the independence bound for disjunction: P(A∨B) = P(A)+P(B)-P(A∧B),
// applied endpoint-wise (spec §4.9).
func (i *Imprecise) Or(o *Imprecise) *Imprecise {
	lo := i.Lo + o.Lo - i.Lo*o.Lo
	hi := i.Hi + o.Hi - i.Hi*o.Hi
	return &Imprecise{Lo: lo, Hi: hi}
}

// BayesUpdate applies Bayes' rule separately to each endpoint (spec
// §4.9): posterior endpoint = likelihood*prior_endpoint / evidence.
func (i *Imprecise) BayesUpdate(likelihood, evidence float64) (*Imprecise, error) {
	if evidence == 0 {
		return nil, fmt.Errorf("imprecise: bayes update requires nonzero evidence")
	}
	lo := clamp01(likelihood * i.Lo / evidence)
	hi := clamp01(likelihood * i.Hi / evidence)
	if lo > hi {
		lo, hi = hi, lo
	}
	return &Imprecise{Lo: lo, Hi: hi}, nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
