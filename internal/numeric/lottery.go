package numeric

import (
	"fmt"

	"github.com/hyperpolymath/betlang/internal/rng"
)

// Lottery is Lottery(outcomes, weights): weights non-negative, Σ>0, and
// the two slices must be equal length (spec §4.9). This is the numeric-
// kernel counterpart to the evaluator's bet-weighted primitive, usable
// as a first-class value rather than only as special syntax.
type Lottery struct {
	Outcomes []float64
	Weights  []float64
}

func NewLottery(outcomes, weights []float64) (*Lottery, error) {
	if len(outcomes) != len(weights) {
		return nil, fmt.Errorf("lottery: outcomes and weights must have equal length, got %d and %d",
			len(outcomes), len(weights))
	}
	if len(weights) == 0 {
		return nil, fmt.Errorf("lottery: requires at least one outcome")
	}
	var total float64
	for _, w := range weights {
		if w < 0 {
			return nil, fmt.Errorf("lottery: weights must be non-negative, got %g", w)
		}
		total += w
	}
	if total <= 0 {
		return nil, fmt.Errorf("lottery: weights must sum to > 0")
	}
	return &Lottery{Outcomes: append([]float64{}, outcomes...), Weights: append([]float64{}, weights...)}, nil
}

func (l *Lottery) VariantName() string { return "lottery" }
func (l *Lottery) String() string      { return fmt.Sprintf("lottery(n=%d)", len(l.Outcomes)) }

// Expectation is Σ oᵢwᵢ / Σwᵢ (spec §4.9).
func (l *Lottery) Expectation() float64 {
	var num, den float64
	for i, o := range l.Outcomes {
		num += o * l.Weights[i]
		den += l.Weights[i]
	}
	return num / den
}

// Sample draws categorically over the normalized weights (spec §4.9).
func (l *Lottery) Sample(src *rng.Source) float64 {
	var total float64
	for _, w := range l.Weights {
		total += w
	}
	r := src.Float64() * total
	var cumulative float64
	for i, w := range l.Weights {
		cumulative += w
		if r < cumulative {
			return l.Outcomes[i]
		}
	}
	return l.Outcomes[len(l.Outcomes)-1]
}
