package numeric

import "fmt"

// SurrealFuzzy is a FuzzyTriangular whose support is relaxed by ε on
// each side: (a, b, c, ε), a ≤ b ≤ c, ε ≥ 0 (spec §4.9).
type SurrealFuzzy struct {
	A, B, C, Epsilon float64
}

func NewSurrealFuzzy(a, b, c, epsilon float64) (*SurrealFuzzy, error) {
	if !(a <= b && b <= c) {
		return nil, fmt.Errorf("surreal-fuzzy: requires a <= b <= c, got %g, %g, %g", a, b, c)
	}
	if epsilon < 0 {
		return nil, fmt.Errorf("surreal-fuzzy: epsilon must be >= 0, got %g", epsilon)
	}
	return &SurrealFuzzy{A: a, B: b, C: c, Epsilon: epsilon}, nil
}

func (s *SurrealFuzzy) VariantName() string { return "surreal-fuzzy" }
func (s *SurrealFuzzy) String() string {
	return fmt.Sprintf("surreal-fuzzy(%g, %g, %g, %g)", s.A, s.B, s.C, s.Epsilon)
}

// Membership relaxes the triangular envelope's endpoints by Epsilon on
// each side before evaluating the same piecewise-linear shape as
// FuzzyTriangular (spec §4.9).
func (s *SurrealFuzzy) Membership(x float64) float64 {
	relaxed := FuzzyTriangular{A: s.A - s.Epsilon, B: s.B, C: s.C + s.Epsilon}
	return relaxed.Membership(x)
}
