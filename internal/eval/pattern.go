package eval

import (
	"github.com/hyperpolymath/betlang/internal/ir"
	"github.com/hyperpolymath/betlang/internal/value"
)

// evalMatch evaluates the scrutinee once, then tries each arm's
// pattern in source order, binding the first match's captured names
// into a fresh child scope before evaluating that arm's body.
// internal/elaborate already rejected non-exhaustive matches and
// flagged duplicate tag arms, so reaching the end of arms with no
// match here means the elaborator's exhaustiveness check was
// incomplete (spec §9 documents it as advisory/minimal, not a full
// tag-coverage proof) — that case still raises a structured error
// rather than panicking.
func (ev *Evaluator) evalMatch(n ir.Match, env *value.Env) (value.Value, error) {
	scrutinee, err := ev.Eval(n.Scrutinee, env)
	if err != nil {
		return nil, err
	}
	for _, arm := range n.Arms {
		child := env.Child()
		matched, err := ev.matchPattern(arm.Pattern, scrutinee, child)
		if err != nil {
			return nil, err
		}
		if matched {
			return ev.Eval(arm.Body, child)
		}
	}
	return nil, typeMismatch("match: no arm matched value of kind %s", scrutinee.Kind())
}

// matchPattern reports whether pat matches v, binding any captured
// names into env as a side effect. Only called with a freshly-created
// child scope so a failed partial match leaves no stray bindings
// visible to later arms.
func (ev *Evaluator) matchPattern(pat ir.Pattern, v value.Value, env *value.Env) (bool, error) {
	switch p := pat.(type) {
	case ir.WildcardPattern:
		return true, nil

	case ir.VarPattern:
		env.Set(p.Name, v)
		return true, nil

	case ir.LiteralPattern:
		lv, err := ev.Eval(p.Value, env)
		if err != nil {
			return false, err
		}
		return valuesEqual(lv, v), nil

	case ir.ListPattern:
		lst, ok := v.(value.List)
		if !ok || len(lst.Elements) != len(p.Elements) {
			return false, nil
		}
		for i, sub := range p.Elements {
			ok, err := ev.matchPattern(sub, lst.Elements[i], env)
			if err != nil || !ok {
				return false, err
			}
		}
		return true, nil

	case ir.TagPattern:
		tag, ok := v.(value.Tag)
		if !ok || tag.Name != p.Tag || len(tag.Fields) != len(p.Args) {
			return false, nil
		}
		for i, sub := range p.Args {
			ok, err := ev.matchPattern(sub, tag.Fields[i], env)
			if err != nil || !ok {
				return false, err
			}
		}
		return true, nil

	default:
		return false, nil
	}
}

func valuesEqual(a, b value.Value) bool {
	switch x := a.(type) {
	case value.Int:
		switch y := b.(type) {
		case value.Int:
			return x.V == y.V
		case value.Rat:
			return y.V.IsInt() && y.V.Num().Int64() == x.V
		case value.Dec:
			return float64(x.V) == y.V
		}
	case value.Rat:
		if y, ok := b.(value.Rat); ok {
			return x.V.Cmp(y.V) == 0
		}
		return valuesEqual(b, a)
	case value.Dec:
		if y, ok := b.(value.Dec); ok {
			return x.V == y.V
		}
		return valuesEqual(b, a)
	case value.Bool:
		y, ok := b.(value.Bool)
		return ok && x.V == y.V
	case value.Str:
		y, ok := b.(value.Str)
		return ok && x.V == y.V
	case value.Symbol:
		y, ok := b.(value.Symbol)
		return ok && x.V == y.V
	}
	return false
}
