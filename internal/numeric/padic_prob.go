package numeric

import "fmt"

// PAdicProb is the "probability form" p-adic value: base ≥ 2, digits in
// [0, base), interpreted as a convergent series (spec §4.9), distinct
// from the valuation-carrying PAdicAdv below (spec §9's two separate
// p-adic representations, kept as two types rather than unified).
type PAdicProb struct {
	Base   int64
	Digits []int64
}

func NewPAdicProb(base int64, digits []int64) (*PAdicProb, error) {
	if base < 2 {
		return nil, fmt.Errorf("padic-prob: base must be >= 2, got %d", base)
	}
	for _, d := range digits {
		if d < 0 || d >= base {
			return nil, fmt.Errorf("padic-prob: digit %d out of range [0, %d)", d, base)
		}
	}
	cp := make([]int64, len(digits))
	copy(cp, digits)
	return &PAdicProb{Base: base, Digits: cp}, nil
}

func (p *PAdicProb) VariantName() string { return "padic-prob" }
func (p *PAdicProb) String() string      { return fmt.Sprintf("padic-prob(base=%d, digits=%v)", p.Base, p.Digits) }

// RealValue is Σ dᵢ · base⁻ⁱ for i ≥ 1 (spec §4.9): Digits[0] contributes
// at i=1, Digits[1] at i=2, and so on.
func (p *PAdicProb) RealValue() float64 {
	var sum, scale float64 = 0, 1
	base := float64(p.Base)
	for _, d := range p.Digits {
		scale /= base
		sum += float64(d) * scale
	}
	return sum
}

// Refine appends one more digit, returning a new, more precise value
// (spec §4.9: "refinement appends a digit").
func (p *PAdicProb) Refine(digit int64) (*PAdicProb, error) {
	return NewPAdicProb(p.Base, append(append([]int64{}, p.Digits...), digit))
}
