package numeric

import "fmt"

// Bayesian is Bayesian(prior, likelihood, evidence, posterior), all in
// [0, 1] (spec §4.9). Posterior is stored (not only derived) because the
// spec's invariant table lists it as one of the tuple's four fields,
// recomputed and clamped whenever the value is constructed or updated.
type Bayesian struct {
	Prior, Likelihood, Evidence, Posterior float64
}

func NewBayesian(prior, likelihood, evidence float64) (*Bayesian, error) {
	for _, v := range []float64{prior, likelihood, evidence} {
		if v < 0 || v > 1 {
			return nil, fmt.Errorf("bayesian: all fields must be in [0,1], got prior=%g likelihood=%g evidence=%g",
				prior, likelihood, evidence)
		}
	}
	b := &Bayesian{Prior: prior, Likelihood: likelihood, Evidence: evidence}
	b.recompute()
	return b, nil
}

// recompute applies posterior = likelihood*prior / evidence, clamped to
// [0, 1] (spec §4.9). Evidence of 0 leaves the posterior at 0 rather
// than dividing by zero, since a zero-evidence update carries no
// information to update toward.
func (b *Bayesian) recompute() {
	if b.Evidence == 0 {
		b.Posterior = 0
		return
	}
	p := b.Likelihood * b.Prior / b.Evidence
	switch {
	case p < 0:
		p = 0
	case p > 1:
		p = 1
	}
	b.Posterior = p
}

func (b *Bayesian) VariantName() string { return "bayesian" }
func (b *Bayesian) String() string {
	return fmt.Sprintf("bayesian(%g, %g, %g, %g)", b.Prior, b.Likelihood, b.Evidence, b.Posterior)
}
