package numeric

import (
	"fmt"
	"math"

	"github.com/hyperpolymath/betlang/internal/rng"
)

// Normal is DistNormal(μ, σ), σ ≥ 0 (spec §4.9).
type Normal struct {
	Mu, Sigma float64
}

func NewNormal(mu, sigma float64) (*Normal, error) {
	if sigma < 0 {
		return nil, fmt.Errorf("dist-normal: sigma must be >= 0, got %g", sigma)
	}
	return &Normal{Mu: mu, Sigma: sigma}, nil
}

func (n *Normal) VariantName() string { return "dist-normal" }
func (n *Normal) String() string      { return fmt.Sprintf("dist-normal(%g, %g)", n.Mu, n.Sigma) }

func (n *Normal) Mean() float64     { return n.Mu }
func (n *Normal) Variance() float64 { return n.Sigma * n.Sigma }

// Add sums means and variances, per spec §4.9 (independence assumed).
func (n *Normal) Add(o *Normal) *Normal {
	return &Normal{Mu: n.Mu + o.Mu, Sigma: math.Sqrt(n.Sigma*n.Sigma + o.Sigma*o.Sigma)}
}

// Mul approximates the product distribution's first two moments:
// E[XY] = μ1μ2, Var ≈ μ1²σ2² + μ2²σ1² + σ1²σ2² (spec §4.9, independence
// assumed). The result is itself modeled as Normal, a deliberate
// approximation the spec sanctions rather than an exact product law.
func (n *Normal) Mul(o *Normal) *Normal {
	mean := n.Mu * o.Mu
	variance := n.Mu*n.Mu*o.Sigma*o.Sigma + o.Mu*o.Mu*n.Sigma*n.Sigma + n.Sigma*n.Sigma*o.Sigma*o.Sigma
	return &Normal{Mu: mean, Sigma: math.Sqrt(variance)}
}

// Sample draws via the Box-Muller transform (spec §4.9 names this
// explicitly as an acceptable method).
func (n *Normal) Sample(src *rng.Source) float64 {
	u1 := src.Float64()
	if u1 <= 0 {
		u1 = 1e-300 // avoid log(0)
	}
	u2 := src.Float64()
	z0 := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
	return n.Mu + n.Sigma*z0
}
