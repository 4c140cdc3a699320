// Safety-kernel entry points (spec §4.8, component C10): kelly-fraction,
// risk-of-ruin, risk-of-ruin-monte, dutch-book-check, cool-off-check,
// validated-bet. Thin adapters from already-evaluated value.Value
// arguments onto internal/safety's pure functions; validated-bet is the
// one builtin that also performs the draw, since it is the composite
// spec §4.8 names ("... then perform the draw").
package eval

import (
	"context"
	"fmt"
	"time"

	"github.com/hyperpolymath/betlang/internal/diagnostic"
	"github.com/hyperpolymath/betlang/internal/position"
	"github.com/hyperpolymath/betlang/internal/safety"
	"github.com/hyperpolymath/betlang/internal/value"
)

func dutchBookViolation(err error) error {
	return diagnostic.New(diagnostic.KindDutchBookViolation, position.Span{}, err.Error()).Build()
}

func riskUnsafe(err error) error {
	return diagnostic.New(diagnostic.KindRiskStakeUnsafe, position.Span{}, err.Error()).Build()
}

func coolOffActive(err error) error {
	return diagnostic.New(diagnostic.KindCoolOffActive, position.Span{}, err.Error()).Build()
}

func (ev *Evaluator) applySafetyBuiltin(name string, args []value.Value, env *value.Env) (value.Value, error) {
	switch name {
	case "kelly-fraction":
		p, err := floatArg(args, 0, name)
		if err != nil {
			return nil, err
		}
		b, err := floatArg(args, 1, name)
		if err != nil {
			return nil, err
		}
		return value.Dec{V: safety.KellyFraction(p, b)}, nil

	case "risk-of-ruin":
		target, err := floatArg(args, 0, name)
		if err != nil {
			return nil, err
		}
		wealth, err := floatArg(args, 1, name)
		if err != nil {
			return nil, err
		}
		return value.Dec{V: safety.Analytic(target, wealth)}, nil

	case "risk-of-ruin-monte":
		return ev.riskOfRuinMonte(args, name)

	case "dutch-book-check":
		probs, err := floatListArg(args, 0, name)
		if err != nil {
			return nil, err
		}
		tol := safety.DefaultTolerance
		if len(args) > 1 {
			t, err := floatArg(args, 1, name)
			if err != nil {
				return nil, err
			}
			tol = t
		}
		if _, err := safety.Validate(probs, tol); err != nil {
			return nil, dutchBookViolation(err)
		}
		return value.Bool{V: true}, nil

	case "cool-off-check":
		if ev.CoolOff == nil {
			return value.Bool{V: true}, nil
		}
		if err := ev.CoolOff.Check(ev.now()); err != nil {
			return nil, coolOffActive(err)
		}
		return value.Bool{V: true}, nil

	case "validated-bet":
		return ev.validatedBet(args, env)
	}

	return nil, unbound(name)
}

// now returns the evaluator's configured wall clock time, defaulting to
// the Go zero time if no clock was configured (which only matters if a
// cool-off gate is also configured without a clock, an embedding bug
// rather than a runtime one).
func (ev *Evaluator) now() time.Time {
	if ev.Clock != nil {
		return ev.Clock.Now()
	}
	return time.Time{}
}

func (ev *Evaluator) riskOfRuinMonte(args []value.Value, name string) (value.Value, error) {
	wealth, err := floatArg(args, 0, name)
	if err != nil {
		return nil, err
	}
	stake, err := floatArg(args, 1, name)
	if err != nil {
		return nil, err
	}
	p, err := floatArg(args, 2, name)
	if err != nil {
		return nil, err
	}
	b, err := floatArg(args, 3, name)
	if err != nil {
		return nil, err
	}
	ruinThreshold, err := floatArg(args, 4, name)
	if err != nil {
		return nil, err
	}
	target, err := floatArg(args, 5, name)
	if err != nil {
		return nil, err
	}
	trajectories := safety.DefaultTrajectories
	if len(args) > 6 {
		n, err := intArg(args, 6, name)
		if err != nil {
			return nil, err
		}
		trajectories = int(n)
	}
	maxBets := safety.DefaultMaxBets
	if len(args) > 7 {
		n, err := intArg(args, 7, name)
		if err != nil {
			return nil, err
		}
		maxBets = int(n)
	}
	result, err := safety.MonteCarlo(context.Background(), ev.RNG, wealth, stake, p, b, ruinThreshold, target, trajectories, maxBets)
	if err != nil {
		return nil, domainError("risk-of-ruin-monte: %v", err)
	}
	return value.Dec{V: result}, nil
}

// validatedBet enforces Dutch-book safety, the Kelly/risk bound, and
// cool-off in that order, then performs a bet-weighted-style draw over
// the supplied (value, weight) outcome list (spec §4.8's composite).
// Args: outcomes (list of 2-element [value, weight] lists), stake,
// bankroll, win-probability, net-odds, and an optional tolerance.
func (ev *Evaluator) validatedBet(args []value.Value, env *value.Env) (value.Value, error) {
	const name = "validated-bet"
	if len(args) < 5 {
		return nil, arityMismatch(name, 5, len(args))
	}
	lst, ok := args[0].(value.List)
	if !ok {
		return nil, typeMismatch("%s: argument 1 must be a list of (value, weight) pairs, got %s", name, args[0].Kind())
	}
	values := make([]value.Value, len(lst.Elements))
	weights := make([]float64, len(lst.Elements))
	for i, e := range lst.Elements {
		pair, ok := e.(value.List)
		if !ok || len(pair.Elements) != 2 {
			return nil, typeMismatch("%s: outcome %d must be a [value, weight] pair", name, i+1)
		}
		w, ok := asFloat64(pair.Elements[1])
		if !ok {
			return nil, typeMismatch("%s: outcome %d weight must be numeric", name, i+1)
		}
		values[i] = pair.Elements[0]
		weights[i] = w
	}
	probs, err := safety.Normalize(weights)
	if err != nil {
		return nil, dutchBookViolation(err)
	}

	stake, err := floatArg(args, 1, name)
	if err != nil {
		return nil, err
	}
	bankroll, err := floatArg(args, 2, name)
	if err != nil {
		return nil, err
	}
	winProb, err := floatArg(args, 3, name)
	if err != nil {
		return nil, err
	}
	netOdds, err := floatArg(args, 4, name)
	if err != nil {
		return nil, err
	}
	tol := safety.DefaultTolerance
	if len(args) > 5 {
		t, err := floatArg(args, 5, name)
		if err != nil {
			return nil, err
		}
		tol = t
	}

	// Enforce preconditions in the order spec §4.8 names, each with its
	// own diagnostic Kind, failing fast on the first unsatisfied one.
	if _, err := safety.Validate(probs, tol); err != nil {
		return nil, dutchBookViolation(err)
	}
	if ratio, safe := safety.SafeStake(stake, bankroll, winProb, netOdds, safety.DefaultKellyFraction, safety.DefaultMaxRisk); !safe {
		return nil, riskUnsafe(fmt.Errorf("validated-bet: stake/bankroll ratio %g exceeds the safe bound", ratio))
	}
	now := ev.now()
	if ev.CoolOff != nil {
		if err := ev.CoolOff.Check(now); err != nil {
			return nil, coolOffActive(err)
		}
	}

	draw := ev.RNG.Float64()
	var cumulative float64
	chosen := values[len(values)-1]
	for i, p := range probs {
		cumulative += p
		if draw < cumulative {
			chosen = values[i]
			break
		}
	}
	if ev.CoolOff != nil {
		ev.CoolOff.RecordBet(now)
	}
	return chosen, nil
}
