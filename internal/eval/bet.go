// Entropy-consuming primitives (spec §4.6/§4.7): bet, bet-weighted,
// bet-conditional, bet-lazy, with-seed, parallel, sample. Apart from the
// validated-bet and risk-of-ruin-monte builtins (safety_builtins.go),
// these are the only forms this package's evaluator draws PRNG bits in;
// every other evalX call is a pure function of (ir, env).
package eval

import (
	"github.com/hyperpolymath/betlang/internal/ir"
	"github.com/hyperpolymath/betlang/internal/numeric"
	"github.com/hyperpolymath/betlang/internal/rng"
	"github.com/hyperpolymath/betlang/internal/value"
)

// evalBet draws i uniform in {0,1,2} and returns the i-th of three
// strictly-evaluated arguments (spec: "strict in all three arguments").
func (ev *Evaluator) evalBet(n ir.Bet, env *value.Env) (value.Value, error) {
	a, err := ev.Eval(n.A, env)
	if err != nil {
		return nil, err
	}
	b, err := ev.Eval(n.B, env)
	if err != nil {
		return nil, err
	}
	c, err := ev.Eval(n.C, env)
	if err != nil {
		return nil, err
	}
	return ev.drawUniform3(a, b, c), nil
}

func (ev *Evaluator) drawUniform3(a, b, c value.Value) value.Value {
	switch ev.RNG.IntN(3) {
	case 0:
		return a
	case 1:
		return b
	default:
		return c
	}
}

// evalBetWeighted strictly evaluates every outcome's value and weight,
// validates the weights (non-negative, positive total; spec §4.4 pass
// 4's dynamic half — the static half already ran in internal/elaborate
// for literal weights), then draws proportionally to weight.
func (ev *Evaluator) evalBetWeighted(n ir.BetWeighted, env *value.Env) (value.Value, error) {
	values := make([]value.Value, len(n.Outcomes))
	weights := make([]float64, len(n.Outcomes))
	var total float64
	for i, o := range n.Outcomes {
		v, err := ev.Eval(o.Value, env)
		if err != nil {
			return nil, err
		}
		w, err := ev.Eval(o.Weight, env)
		if err != nil {
			return nil, err
		}
		wf, ok := asFloat64(w)
		if !ok {
			return nil, typeMismatch("bet-weighted: weight must be numeric, got %s", w.Kind())
		}
		if wf < 0 {
			return nil, probabilityNegativeWeight(wf)
		}
		values[i] = v
		weights[i] = wf
		total += wf
	}
	if total <= 0 {
		return nil, probabilityZeroTotal()
	}
	draw := ev.RNG.Float64() * total
	var cumulative float64
	for i, w := range weights {
		cumulative += w
		if draw < cumulative {
			return values[i], nil
		}
	}
	return values[len(values)-1], nil
}

// evalBetConditional: if pred is true, return True's value. Otherwise
// give True a second chance by drawing uniformly over {True, False,
// Unconditional} — the reference semantics preserved per spec §9's
// Open Question (not "corrected" to a plain bet(False, Unconditional)).
func (ev *Evaluator) evalBetConditional(n ir.BetConditional, env *value.Env) (value.Value, error) {
	p, err := ev.Eval(n.Pred, env)
	if err != nil {
		return nil, err
	}
	pb, ok := asBool(p)
	if !ok {
		return nil, typeMismatch("bet-conditional: predicate must be a bool, got %s", p.Kind())
	}
	t, err := ev.Eval(n.True, env)
	if err != nil {
		return nil, err
	}
	if pb {
		return t, nil
	}
	f, err := ev.Eval(n.False, env)
	if err != nil {
		return nil, err
	}
	u, err := ev.Eval(n.Unconditional, env)
	if err != nil {
		return nil, err
	}
	return ev.drawUniform3(t, f, u), nil
}

// evalBetLazy uniformly selects one of three thunk bodies and evaluates
// only that one; the other two are never forced.
func (ev *Evaluator) evalBetLazy(n ir.BetLazy, env *value.Env) (value.Value, error) {
	switch ev.RNG.IntN(3) {
	case 0:
		return ev.Eval(n.ThunkA, env)
	case 1:
		return ev.Eval(n.ThunkB, env)
	default:
		return ev.Eval(n.ThunkC, env)
	}
}

// evalWithSeed installs a fresh PRNG for the dynamic extent of Body and
// restores the enclosing generator on return, including on error exit
// (spec §4.5: "exceptions restore the prior generator"). Nesting nests
// faithfully because the prior *rng.Source is captured and restored via
// defer regardless of how deep the nesting goes.
func (ev *Evaluator) evalWithSeed(n ir.WithSeed, env *value.Env) (value.Value, error) {
	s, err := ev.Eval(n.Seed, env)
	if err != nil {
		return nil, err
	}
	seed, ok := asInt64(s)
	if !ok {
		return nil, typeMismatch("with-seed: seed must be an integer, got %s", s.Kind())
	}
	prior := ev.RNG
	ev.RNG = rng.NewSource(uint64(seed))
	defer func() { ev.RNG = prior }()
	return ev.Eval(n.Body, env)
}

// evalParallel produces a list of length n by evaluating Body n times
// in strict sequence, threading the single PRNG stream so results stay
// bit-identical under a fixed seed (spec §5: "a logical parallelism of
// n independent samples, realized as n sequential evaluations").
func (ev *Evaluator) evalParallel(n ir.Parallel, env *value.Env) (value.Value, error) {
	nv, err := ev.Eval(n.N, env)
	if err != nil {
		return nil, err
	}
	count, ok := asInt64(nv)
	if !ok || count < 0 {
		return nil, typeMismatch("parallel: n must be a non-negative integer")
	}
	out := make([]value.Value, 0, count)
	for i := int64(0); i < count; i++ {
		v, err := ev.Eval(n.Body, env)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return value.List{Elements: out}, nil
}

// evalSample draws from an uncertainty-kernel variant that implements
// numeric.Sampler; variants with no defined sampler (spec §4.9:
// "sampler, where applicable") raise Numeric.DomainError.
func (ev *Evaluator) evalSample(n ir.Sample, env *value.Env) (value.Value, error) {
	d, err := ev.Eval(n.Dist, env)
	if err != nil {
		return nil, err
	}
	u, ok := d.(value.Uncertain)
	if !ok {
		return nil, typeMismatch("sample: expected an uncertainty value, got %s", d.Kind())
	}
	s, ok := u.Dist.(numeric.Sampler)
	if !ok {
		name := "uncertainty value"
		if nv, ok := u.Dist.(named); ok {
			name = nv.VariantName()
		}
		return nil, domainError("sample: %s has no defined sampler", name)
	}
	return value.Dec{V: s.Sample(ev.RNG)}, nil
}

// named is satisfied by every concrete internal/numeric variant; used
// only to recover a human-readable name from value.Uncertain's
// type-erased fmt.Stringer field for error messages.
type named interface {
	VariantName() string
}
