// Package eval implements BetLang's tree-walking evaluator (component
// C8): eval(ir, env, prng) -> (value, prng'), threading a single
// *rng.Source explicitly through every call exactly as spec §4.5/§4.6
// require, rather than hiding it behind a package-level global. Method
// shape (one evalX per ir node kind on a receiver struct, type switch in
// a single dispatcher, (Value, error) returns) is grounded on
// ThomasRohde-Agent0/pkg/evaluator/evaluator.go's evalExpr.
package eval

import (
	"fmt"
	"math/big"

	"github.com/hyperpolymath/betlang/internal/clock"
	"github.com/hyperpolymath/betlang/internal/diagnostic"
	"github.com/hyperpolymath/betlang/internal/ir"
	"github.com/hyperpolymath/betlang/internal/position"
	"github.com/hyperpolymath/betlang/internal/rng"
	"github.com/hyperpolymath/betlang/internal/safety"
	"github.com/hyperpolymath/betlang/internal/value"
)

// Evaluator holds the mutable resources the core interpreter threads
// across a run (spec §5 "Shared resources"): the PRNG stream, and,
// optionally, the driver-owned cool-off gate the validated-bet
// builtin consults and mutates at its single well-defined call site
// (spec §4.6). CoolOff is nil when the embedding tool has no gate
// configured, in which case validated-bet skips that precondition.
// StepLimit, when positive, bounds the number of Eval dispatches
// before a run aborts with Eval.Aborted (spec §5 "the driver may
// impose... a step budget"); zero means unlimited.
type Evaluator struct {
	RNG       *rng.Source
	CoolOff   *safety.CoolOffState
	Clock     clock.Clock
	StepLimit int

	steps int
}

// New returns an Evaluator seeded for a run, with cool-off disabled,
// no step limit, and the system wall clock, unless overridden on the
// returned value.
func New(src *rng.Source) *Evaluator {
	return &Evaluator{RNG: src, Clock: clock.System{}}
}

func evalAborted(reason string) error {
	return diagnostic.New(diagnostic.KindEvalAborted, position.Span{}, "eval aborted: "+reason).Build()
}

// typeMismatch builds a Type.Mismatch diagnostic-as-error. ir nodes do
// not retain source spans post-elaboration (internal/ir is a closed,
// span-free tree; see DESIGN.md), so runtime diagnostics carry a zero
// Span rather than a precise one.
func typeMismatch(format string, args ...interface{}) error {
	return diagnostic.New(diagnostic.KindTypeMismatch, position.Span{}, fmt.Sprintf(format, args...)).Build()
}

func arityMismatch(name string, want, got int) error {
	return diagnostic.New(diagnostic.KindArityMismatch, position.Span{},
		fmt.Sprintf("%s: expected %d argument(s), got %d", name, want, got)).Build()
}

func domainError(format string, args ...interface{}) error {
	return diagnostic.New(diagnostic.KindNumericDomainError, position.Span{}, fmt.Sprintf(format, args...)).Build()
}

func unbound(name string) error {
	return diagnostic.New(diagnostic.KindNameUnbound, position.Span{}, fmt.Sprintf("unbound reference at runtime: %s", name)).Build()
}

// EvalProgram evaluates every top-level define in source order into a
// shared global environment, then evaluates each bare top-level
// expression against that fully-populated environment (spec §4.4: all
// defines are visible to each other regardless of order; a define's
// right-hand side may only observe a later define's value indirectly,
// through a lambda body that isn't forced until called, since the
// later binding is not yet present in the map at the time an earlier
// RHS runs eagerly).
func (ev *Evaluator) EvalProgram(prog *ir.Program, globals *value.Env) ([]value.Value, error) {
	for _, d := range prog.Defines {
		v, err := ev.Eval(d.Value, globals)
		if err != nil {
			return nil, err
		}
		globals.Set(d.Name, v)
	}
	results := make([]value.Value, 0, len(prog.Body))
	for _, e := range prog.Body {
		v, err := ev.Eval(e, globals)
		if err != nil {
			return nil, err
		}
		results = append(results, v)
	}
	return results, nil
}

// Eval is the main dispatcher, one case per sealed internal/ir.Expr
// variant.
func (ev *Evaluator) Eval(expr ir.Expr, env *value.Env) (value.Value, error) {
	if ev.StepLimit > 0 {
		ev.steps++
		if ev.steps > ev.StepLimit {
			return nil, evalAborted("step limit exceeded")
		}
	}
	switch n := expr.(type) {
	case ir.IntLit:
		return value.Int{V: n.Value}, nil
	case ir.RatLit:
		return value.Rat{V: new(big.Rat).Set(n.Value)}, nil
	case ir.DecLit:
		return value.Dec{V: n.Value}, nil
	case ir.StrLit:
		return value.Str{V: n.Value}, nil
	case ir.BoolLit:
		return value.Bool{V: n.Value}, nil
	case ir.SymLit:
		return value.Symbol{V: n.Name}, nil
	case ir.ListLit:
		return ev.evalListLit(n, env)

	case ir.LocalRef:
		return ev.lookup(n.Name, env)
	case ir.GlobalRef:
		return ev.lookup(n.Name, env)
	case ir.BuiltinRef:
		return nil, typeMismatch("builtin %q used as a value; builtins may only appear in call position", n.Name)

	case ir.Apply:
		return ev.evalApply(n, env)
	case ir.Lambda:
		return value.Closure{Params: n.Params, Body: n.Body, Env: env}, nil

	case ir.Bind:
		return ev.evalBind(n, env)

	case ir.If:
		return ev.evalIf(n, env)
	case ir.Match:
		return ev.evalMatch(n, env)

	case ir.Bet:
		return ev.evalBet(n, env)
	case ir.BetWeighted:
		return ev.evalBetWeighted(n, env)
	case ir.BetConditional:
		return ev.evalBetConditional(n, env)
	case ir.BetLazy:
		return ev.evalBetLazy(n, env)
	case ir.WithSeed:
		return ev.evalWithSeed(n, env)
	case ir.Parallel:
		return ev.evalParallel(n, env)
	case ir.Sample:
		return ev.evalSample(n, env)

	default:
		return nil, typeMismatch("eval: unhandled ir node %T", expr)
	}
}

func (ev *Evaluator) lookup(name string, env *value.Env) (value.Value, error) {
	v, ok := env.Get(name)
	if !ok {
		return nil, unbound(name)
	}
	return v, nil
}

func (ev *Evaluator) evalListLit(n ir.ListLit, env *value.Env) (value.Value, error) {
	elems := make([]value.Value, len(n.Elements))
	for i, e := range n.Elements {
		v, err := ev.Eval(e, env)
		if err != nil {
			return nil, err
		}
		elems[i] = v
	}
	return value.List{Elements: elems}, nil
}

// evalBind evaluates one link of a desugared let/do chain: the bound
// value is computed in the outer env, then Rest runs in a child scope
// extended with Name (spec §4.4 pass 3; "_" still pushes a frame so
// nested scope depths line up, but nothing ever looks it up).
func (ev *Evaluator) evalBind(n ir.Bind, env *value.Env) (value.Value, error) {
	v, err := ev.Eval(n.Value, env)
	if err != nil {
		return nil, err
	}
	child := env.Child()
	child.Set(n.Name, v)
	return ev.Eval(n.Rest, child)
}

func (ev *Evaluator) evalIf(n ir.If, env *value.Env) (value.Value, error) {
	c, err := ev.Eval(n.Cond, env)
	if err != nil {
		return nil, err
	}
	b, ok := c.(value.Bool)
	if !ok {
		return nil, typeMismatch("if: condition must be a bool, got %s", c.Kind())
	}
	if b.V {
		return ev.Eval(n.Then, env)
	}
	return ev.Eval(n.Else, env)
}

func (ev *Evaluator) evalArgs(args []ir.Expr, env *value.Env) ([]value.Value, error) {
	out := make([]value.Value, len(args))
	for i, a := range args {
		v, err := ev.Eval(a, env)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// evalApply handles both builtin application (Fn resolved at
// elaboration time to a BuiltinRef, dispatched without ever needing a
// first-class builtin value) and closure application.
func (ev *Evaluator) evalApply(n ir.Apply, env *value.Env) (value.Value, error) {
	if b, ok := n.Fn.(ir.BuiltinRef); ok {
		args, err := ev.evalArgs(n.Args, env)
		if err != nil {
			return nil, err
		}
		return ev.applyBuiltin(b.Name, args, env)
	}

	fnVal, err := ev.Eval(n.Fn, env)
	if err != nil {
		return nil, err
	}
	closure, ok := fnVal.(value.Closure)
	if !ok {
		return nil, typeMismatch("apply: %s is not callable", fnVal.Kind())
	}
	args, err := ev.evalArgs(n.Args, env)
	if err != nil {
		return nil, err
	}
	return ev.applyClosure(closure, args)
}

func (ev *Evaluator) applyClosure(c value.Closure, args []value.Value) (value.Value, error) {
	if len(args) != len(c.Params) {
		return nil, arityMismatch("lambda", len(c.Params), len(args))
	}
	child := c.Env.Child()
	for i, p := range c.Params {
		child.Set(p, args[i])
	}
	return ev.Eval(c.Body, child)
}
