package numeric

import "fmt"

// FuzzyTriangular is a triangular fuzzy membership function with support
// [a, c] and peak at b, a ≤ b ≤ c (spec §4.9).
type FuzzyTriangular struct {
	A, B, C float64
}

func NewFuzzyTriangular(a, b, c float64) (*FuzzyTriangular, error) {
	if !(a <= b && b <= c) {
		return nil, fmt.Errorf("fuzzy-triangular: requires a <= b <= c, got %g, %g, %g", a, b, c)
	}
	return &FuzzyTriangular{A: a, B: b, C: c}, nil
}

func (f *FuzzyTriangular) VariantName() string { return "fuzzy-triangular" }
func (f *FuzzyTriangular) String() string {
	return fmt.Sprintf("fuzzy-triangular(%g, %g, %g)", f.A, f.B, f.C)
}

// Membership is the piecewise-linear degree at x: rising a→b, falling
// b→c, zero outside [a, c] (spec §4.9).
func (f *FuzzyTriangular) Membership(x float64) float64 {
	switch {
	case x <= f.A || x >= f.C:
		return 0
	case x == f.B:
		return 1
	case x < f.B:
		if f.B == f.A {
			return 1
		}
		return (x - f.A) / (f.B - f.A)
	default:
		if f.C == f.B {
			return 1
		}
		return (f.C - x) / (f.C - f.B)
	}
}

// And is pointwise min (Zadeh conjunction, spec §4.9).
func And(x, y float64) float64 {
	if x < y {
		return x
	}
	return y
}

// Or is pointwise max (Zadeh disjunction, spec §4.9).
func Or(x, y float64) float64 {
	if x > y {
		return x
	}
	return y
}

// Not is the standard fuzzy complement (spec §4.9).
func Not(x float64) float64 { return 1 - x }
