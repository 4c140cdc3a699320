package eval

import (
	"github.com/hyperpolymath/betlang/internal/numeric"
	"github.com/hyperpolymath/betlang/internal/value"
)

func variantName(d interface{ String() string }) string {
	if n, ok := d.(named); ok {
		return n.VariantName()
	}
	return "unknown"
}

func (ev *Evaluator) queryExpectation(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, arityMismatch("expectation", 1, len(args))
	}
	u, err := asUncertain(args[0], "expectation")
	if err != nil {
		return nil, err
	}
	switch d := u.Dist.(type) {
	case *numeric.Normal:
		return value.Dec{V: d.Mean()}, nil
	case *numeric.Beta:
		return value.Dec{V: d.Mean()}, nil
	case *numeric.Lottery:
		return value.Dec{V: d.Expectation()}, nil
	default:
		return nil, domainError("expectation: not defined for variant %s", variantName(u.Dist))
	}
}

func (ev *Evaluator) queryVariance(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, arityMismatch("variance", 1, len(args))
	}
	u, err := asUncertain(args[0], "variance")
	if err != nil {
		return nil, err
	}
	switch d := u.Dist.(type) {
	case *numeric.Normal:
		return value.Dec{V: d.Variance()}, nil
	case *numeric.Beta:
		return value.Dec{V: d.Variance()}, nil
	default:
		return nil, domainError("variance: not defined for variant %s", variantName(u.Dist))
	}
}

// queryVaR backs both `quantile` and `var` (value-at-risk); spec §9
// defines a generic quantile only via the Risk variant's order-statistic
// VaR, so other variants are a domain error rather than a guess.
func (ev *Evaluator) queryVaR(args []value.Value, who string) (value.Value, error) {
	if len(args) != 2 {
		return nil, arityMismatch(who, 2, len(args))
	}
	u, err := asUncertain(args[0], who)
	if err != nil {
		return nil, err
	}
	alpha, err := floatArg(args, 1, who)
	if err != nil {
		return nil, err
	}
	r, ok := u.Dist.(*numeric.Risk)
	if !ok {
		return nil, domainError("%s: not defined for variant %s", who, variantName(u.Dist))
	}
	return value.Dec{V: r.VaR(alpha)}, nil
}

func (ev *Evaluator) queryCVaR(args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return nil, arityMismatch("cvar", 2, len(args))
	}
	u, err := asUncertain(args[0], "cvar")
	if err != nil {
		return nil, err
	}
	alpha, err := floatArg(args, 1, "cvar")
	if err != nil {
		return nil, err
	}
	r, ok := u.Dist.(*numeric.Risk)
	if !ok {
		return nil, domainError("cvar: not defined for variant %s", variantName(u.Dist))
	}
	return value.Dec{V: r.CVaR(alpha)}, nil
}
