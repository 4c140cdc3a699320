// Package numeric implements BetLang's fourteen uncertainty-value number
// systems (component C9, spec §4.9). Nothing in the retrieved example
// pack models probability distributions, surreal numbers, or p-adic
// arithmetic, so each variant's arithmetic is hand-implemented directly
// from the spec's algorithm descriptions; math/big backs exact rational
// and p-adic digit arithmetic the way akamikado-EZ's interpreter uses
// math/big for its own numeric tower.
package numeric

import "github.com/hyperpolymath/betlang/internal/rng"

// Distribution is implemented by every uncertainty-value variant; it is
// deliberately thin (just enough for internal/value.Uncertain to hold
// one generically) because the fourteen variants do not share a single
// arithmetic interface — spec §4.9 gives each its own operation set, and
// internal/eval dispatches on concrete type.
type Distribution interface {
	String() string
	VariantName() string
}

// Sampler is implemented by variants spec §4.9 defines a `sample` rule
// for (DistNormal, DistBeta, Lottery; others are deterministic/interval
// quantities with no draw semantics).
type Sampler interface {
	Sample(src *rng.Source) float64
}
