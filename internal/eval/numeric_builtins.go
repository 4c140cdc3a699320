// Numeric-kernel constructors and queries (spec §4.9, component C9).
// Each of the fourteen uncertainty-value variants is constructed here
// from already-evaluated value.Value arguments and wrapped in a
// value.Uncertain; queries (expectation/variance/quantile/var/cvar)
// type-switch on the concrete *numeric.X underneath.
package eval

import (
	"github.com/hashicorp/go-set/v3"

	"github.com/hyperpolymath/betlang/internal/numeric"
	"github.com/hyperpolymath/betlang/internal/value"
)

func floatArg(args []value.Value, i int, who string) (float64, error) {
	if i >= len(args) {
		return 0, arityMismatch(who, i+1, len(args))
	}
	f, ok := asFloat64(args[i])
	if !ok {
		return 0, typeMismatch("%s: argument %d must be numeric, got %s", who, i+1, args[i].Kind())
	}
	return f, nil
}

func intArg(args []value.Value, i int, who string) (int64, error) {
	if i >= len(args) {
		return 0, arityMismatch(who, i+1, len(args))
	}
	n, ok := asInt64(args[i])
	if !ok {
		return 0, typeMismatch("%s: argument %d must be an integer, got %s", who, i+1, args[i].Kind())
	}
	return n, nil
}

func floatListArg(args []value.Value, i int, who string) ([]float64, error) {
	if i >= len(args) {
		return nil, arityMismatch(who, i+1, len(args))
	}
	lst, ok := args[i].(value.List)
	if !ok {
		return nil, typeMismatch("%s: argument %d must be a list, got %s", who, i+1, args[i].Kind())
	}
	out := make([]float64, len(lst.Elements))
	for j, e := range lst.Elements {
		f, ok := asFloat64(e)
		if !ok {
			return nil, typeMismatch("%s: list element %d must be numeric, got %s", who, j+1, e.Kind())
		}
		out[j] = f
	}
	return out, nil
}

func intListArg(args []value.Value, i int, who string) ([]int64, error) {
	if i >= len(args) {
		return nil, arityMismatch(who, i+1, len(args))
	}
	lst, ok := args[i].(value.List)
	if !ok {
		return nil, typeMismatch("%s: argument %d must be a list, got %s", who, i+1, args[i].Kind())
	}
	out := make([]int64, len(lst.Elements))
	for j, e := range lst.Elements {
		n, ok := asInt64(e)
		if !ok {
			return nil, typeMismatch("%s: list element %d must be an integer, got %s", who, j+1, e.Kind())
		}
		out[j] = n
	}
	return out, nil
}

func stringListArg(args []value.Value, i int, who string) ([]string, error) {
	if i >= len(args) {
		return nil, arityMismatch(who, i+1, len(args))
	}
	lst, ok := args[i].(value.List)
	if !ok {
		return nil, typeMismatch("%s: argument %d must be a list, got %s", who, i+1, args[i].Kind())
	}
	out := make([]string, len(lst.Elements))
	for j, e := range lst.Elements {
		s, ok := asString(e)
		if !ok {
			return nil, typeMismatch("%s: list element %d must be a string, got %s", who, j+1, e.Kind())
		}
		out[j] = s
	}
	return out, nil
}

func asUncertain(v value.Value, who string) (value.Uncertain, error) {
	u, ok := v.(value.Uncertain)
	if !ok {
		return value.Uncertain{}, typeMismatch("%s: expected an uncertainty value, got %s", who, v.Kind())
	}
	return u, nil
}

func (ev *Evaluator) applyNumericBuiltin(name string, args []value.Value, env *value.Env) (value.Value, error) {
	switch name {
	case "dist-normal":
		mu, err := floatArg(args, 0, name)
		if err != nil {
			return nil, err
		}
		sigma, err := floatArg(args, 1, name)
		if err != nil {
			return nil, err
		}
		d, err := numeric.NewNormal(mu, sigma)
		if err != nil {
			return nil, domainError("%v", err)
		}
		return value.Uncertain{Dist: d}, nil

	case "dist-beta":
		alpha, err := floatArg(args, 0, name)
		if err != nil {
			return nil, err
		}
		beta, err := floatArg(args, 1, name)
		if err != nil {
			return nil, err
		}
		d, err := numeric.NewBeta(alpha, beta)
		if err != nil {
			return nil, domainError("%v", err)
		}
		return value.Uncertain{Dist: d}, nil

	case "affine":
		lo, err := floatArg(args, 0, name)
		if err != nil {
			return nil, err
		}
		hi, err := floatArg(args, 1, name)
		if err != nil {
			return nil, err
		}
		d, err := numeric.NewAffine(lo, hi)
		if err != nil {
			return nil, domainError("%v", err)
		}
		return value.Uncertain{Dist: d}, nil

	case "fuzzy-triangular":
		a, err := floatArg(args, 0, name)
		if err != nil {
			return nil, err
		}
		b, err := floatArg(args, 1, name)
		if err != nil {
			return nil, err
		}
		c, err := floatArg(args, 2, name)
		if err != nil {
			return nil, err
		}
		d, err := numeric.NewFuzzyTriangular(a, b, c)
		if err != nil {
			return nil, domainError("%v", err)
		}
		return value.Uncertain{Dist: d}, nil

	case "surreal-fuzzy":
		a, err := floatArg(args, 0, name)
		if err != nil {
			return nil, err
		}
		b, err := floatArg(args, 1, name)
		if err != nil {
			return nil, err
		}
		c, err := floatArg(args, 2, name)
		if err != nil {
			return nil, err
		}
		eps, err := floatArg(args, 3, name)
		if err != nil {
			return nil, err
		}
		d, err := numeric.NewSurrealFuzzy(a, b, c, eps)
		if err != nil {
			return nil, domainError("%v", err)
		}
		return value.Uncertain{Dist: d}, nil

	case "bayesian":
		prior, err := floatArg(args, 0, name)
		if err != nil {
			return nil, err
		}
		likelihood, err := floatArg(args, 1, name)
		if err != nil {
			return nil, err
		}
		evidence, err := floatArg(args, 2, name)
		if err != nil {
			return nil, err
		}
		d, err := numeric.NewBayesian(prior, likelihood, evidence)
		if err != nil {
			return nil, domainError("%v", err)
		}
		return value.Uncertain{Dist: d}, nil

	case "risk":
		samples, err := floatListArg(args, 0, name)
		if err != nil {
			return nil, err
		}
		d, err := numeric.NewRisk(samples)
		if err != nil {
			return nil, domainError("%v", err)
		}
		return value.Uncertain{Dist: d}, nil

	case "padic-prob":
		base, err := intArg(args, 0, name)
		if err != nil {
			return nil, err
		}
		digits, err := intListArg(args, 1, name)
		if err != nil {
			return nil, err
		}
		d, err := numeric.NewPAdicProb(base, digits)
		if err != nil {
			return nil, domainError("%v", err)
		}
		return value.Uncertain{Dist: d}, nil

	case "lottery":
		outcomes, err := floatListArg(args, 0, name)
		if err != nil {
			return nil, err
		}
		weights, err := floatListArg(args, 1, name)
		if err != nil {
			return nil, err
		}
		d, err := numeric.NewLottery(outcomes, weights)
		if err != nil {
			return nil, domainError("%v", err)
		}
		return value.Uncertain{Dist: d}, nil

	case "hyperreal":
		finite, err := floatArg(args, 0, name)
		if err != nil {
			return nil, err
		}
		infinitesimal, err := floatArg(args, 1, name)
		if err != nil {
			return nil, err
		}
		return value.Uncertain{Dist: numeric.NewHyperreal(finite, infinitesimal)}, nil

	case "surreal-adv":
		l, err := surrealOptionsArg(args, 0, name)
		if err != nil {
			return nil, err
		}
		r, err := surrealOptionsArg(args, 1, name)
		if err != nil {
			return nil, err
		}
		d, err := numeric.NewSurrealAdv(l, r)
		if err != nil {
			return nil, domainError("%v", err)
		}
		return value.Uncertain{Dist: d}, nil

	case "padic-adv":
		prime, err := intArg(args, 0, name)
		if err != nil {
			return nil, err
		}
		digits, err := intListArg(args, 1, name)
		if err != nil {
			return nil, err
		}
		valuation, err := intArg(args, 2, name)
		if err != nil {
			return nil, err
		}
		d, err := numeric.NewPAdicAdv(prime, digits, valuation)
		if err != nil {
			return nil, domainError("%v", err)
		}
		return value.Uncertain{Dist: d}, nil

	case "imprecise":
		lo, err := floatArg(args, 0, name)
		if err != nil {
			return nil, err
		}
		hi, err := floatArg(args, 1, name)
		if err != nil {
			return nil, err
		}
		d, err := numeric.NewImprecise(lo, hi)
		if err != nil {
			return nil, domainError("%v", err)
		}
		return value.Uncertain{Dist: d}, nil

	case "dempster-shafer":
		focalLabels, err := focalSetsArg(args, 0, name)
		if err != nil {
			return nil, err
		}
		mass, err := floatListArg(args, 1, name)
		if err != nil {
			return nil, err
		}
		d, err := numeric.NewDempsterShafer(focalLabels, mass)
		if err != nil {
			return nil, domainError("%v", err)
		}
		return value.Uncertain{Dist: d}, nil

	case "expectation":
		return ev.queryExpectation(args)
	case "variance":
		return ev.queryVariance(args)
	case "quantile", "var":
		return ev.queryVaR(args, name)
	case "cvar":
		return ev.queryCVaR(args)
	}

	return ev.applySafetyBuiltin(name, args, env)
}

// surrealOptionsArg reads a list of already-constructed surreal-adv
// uncertainty values (an L or R option set) out of args[i].
func surrealOptionsArg(args []value.Value, i int, who string) ([]*numeric.SurrealAdv, error) {
	if i >= len(args) {
		return nil, arityMismatch(who, i+1, len(args))
	}
	lst, ok := args[i].(value.List)
	if !ok {
		return nil, typeMismatch("%s: argument %d must be a list of surreal-adv values, got %s", who, i+1, args[i].Kind())
	}
	out := make([]*numeric.SurrealAdv, len(lst.Elements))
	for j, e := range lst.Elements {
		u, err := asUncertain(e, who)
		if err != nil {
			return nil, err
		}
		s, ok := u.Dist.(*numeric.SurrealAdv)
		if !ok {
			return nil, typeMismatch("%s: list element %d must be a surreal-adv value", who, j+1)
		}
		out[j] = s
	}
	return out, nil
}

// focalSetsArg reads a list-of-lists-of-labels (each inner list one
// focal element) out of args[i] into go-set Sets via numeric.NewFocalSet.
func focalSetsArg(args []value.Value, i int, who string) ([]*set.Set[string], error) {
	if i >= len(args) {
		return nil, arityMismatch(who, i+1, len(args))
	}
	lst, ok := args[i].(value.List)
	if !ok {
		return nil, typeMismatch("%s: argument %d must be a list of focal-element label lists, got %s", who, i+1, args[i].Kind())
	}
	out := make([]*set.Set[string], len(lst.Elements))
	for j, e := range lst.Elements {
		inner, ok := e.(value.List)
		if !ok {
			return nil, typeMismatch("%s: focal element %d must be a list of labels, got %s", who, j+1, e.Kind())
		}
		labels := make([]string, len(inner.Elements))
		for k, le := range inner.Elements {
			s, ok := asString(le)
			if !ok {
				return nil, typeMismatch("%s: focal element %d label %d must be a string", who, j+1, k+1)
			}
			labels[k] = s
		}
		out[j] = numeric.NewFocalSet(labels)
	}
	return out, nil
}
