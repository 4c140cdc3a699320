package numeric

import "fmt"

// Affine is an interval Affine(lo, hi), lo ≤ hi (spec §4.9).
type Affine struct {
	Lo, Hi float64
}

func NewAffine(lo, hi float64) (*Affine, error) {
	if lo > hi {
		return nil, fmt.Errorf("affine: lo must be <= hi, got [%g, %g]", lo, hi)
	}
	return &Affine{Lo: lo, Hi: hi}, nil
}

func (a *Affine) VariantName() string { return "affine" }
func (a *Affine) String() string      { return fmt.Sprintf("affine(%g, %g)", a.Lo, a.Hi) }

// Contains reports lo <= v <= hi (spec §4.9, §8's affine containment
// property).
func (a *Affine) Contains(v float64) bool { return a.Lo <= v && v <= a.Hi }

// Add is componentwise interval addition.
func (a *Affine) Add(o *Affine) *Affine {
	return &Affine{Lo: a.Lo + o.Lo, Hi: a.Hi + o.Hi}
}

// Mul takes the min/max of the four corner products (spec §4.9).
func (a *Affine) Mul(o *Affine) *Affine {
	corners := [4]float64{a.Lo * o.Lo, a.Lo * o.Hi, a.Hi * o.Lo, a.Hi * o.Hi}
	lo, hi := corners[0], corners[0]
	for _, c := range corners[1:] {
		if c < lo {
			lo = c
		}
		if c > hi {
			hi = c
		}
	}
	return &Affine{Lo: lo, Hi: hi}
}
