// Package elaborate implements BetLang's semantic analysis stage
// (component C6): the bridge between internal/ast (surface syntax,
// either S-expression or keyword form) and internal/ir (a single
// resolved, desugared representation the evaluator runs directly).
//
// Structured as an accumulating multi-pass walk — collect top-level
// names, then resolve/desugar, then validate — in the shape of the
// teacher's internal/resolver.Resolver (collectModuleSymbols /
// resolveModule / validateResolutions), generalized from HIR modules to
// a flat BetLang program (spec §4.4).
package elaborate

import (
	"fmt"
	"math/big"

	"github.com/hashicorp/go-set/v3"
	"golang.org/x/text/unicode/norm"

	"github.com/hyperpolymath/betlang/internal/ast"
	"github.com/hyperpolymath/betlang/internal/diagnostic"
	"github.com/hyperpolymath/betlang/internal/ir"
	"github.com/hyperpolymath/betlang/internal/position"
	"github.com/hyperpolymath/betlang/internal/safety"
)

// frame is one lexical scope: the set of names a Bind, Lambda, or
// pattern-match arm introduces together.
type frame struct {
	names map[string]bool
}

// Elaborator carries resolution state across a single Program.
type Elaborator struct {
	globals map[string]bool
	scopes  []frame

	Diagnostics *diagnostic.Bag
}

// New creates an Elaborator.
func New() *Elaborator {
	return &Elaborator{
		globals:     make(map[string]bool),
		Diagnostics: diagnostic.NewBag(),
	}
}

// Elaborate runs all passes over prog and returns the resolved IR.
func Elaborate(prog *ast.Program) (*ir.Program, []diagnostic.Diagnostic) {
	return New().ElaborateProgram(prog)
}

// NewWithGlobals creates an Elaborator that already knows about names
// bound outside the Program it will next elaborate. This serves a
// REPL session (spec §6: "each entered line is a complete expression
// or top-level form"): each line is its own Program, but a name a
// prior line defined must still resolve as a global rather than
// report Name.Unbound, so the REPL keeps one Elaborator across lines
// and folds each line's own defines into it via ElaborateProgram.
func NewWithGlobals(names []string) *Elaborator {
	e := New()
	for _, n := range names {
		e.globals[canonicalize(n)] = true
	}
	return e
}

// ElaborateProgram runs all passes over prog against e's accumulated
// globals, adding prog's own top-level defines to them first. Diagnostics
// are scoped to this call; e.globals persists across calls so a caller
// can reuse one Elaborator across a sequence of Programs.
func (e *Elaborator) ElaborateProgram(prog *ast.Program) (*ir.Program, []diagnostic.Diagnostic) {
	e.Diagnostics = diagnostic.NewBag()
	e.collectGlobals(prog)

	out := &ir.Program{}
	for _, top := range prog.Exprs {
		if def, ok := top.(*ast.Define); ok {
			val := e.resolve(def.Value)
			out.Defines = append(out.Defines, ir.Define{Name: canonicalize(def.Name), Value: val})
			continue
		}
		out.Body = append(out.Body, e.resolve(top))
	}

	e.validate(out)
	return out, e.Diagnostics.Items()
}

// canonicalize applies NFC Unicode normalization to an identifier (spec
// §4.4 pass 1), so visually-identical names entered via different
// Unicode decompositions resolve to the same binder.
func canonicalize(name string) string {
	return norm.NFC.String(name)
}

// collectGlobals is pass 1: gather every top-level `define` name before
// resolving any expression body, so forward references between defines
// are legal (spec §4.4).
func (e *Elaborator) collectGlobals(prog *ast.Program) {
	for _, top := range prog.Exprs {
		if def, ok := top.(*ast.Define); ok {
			e.globals[canonicalize(def.Name)] = true
		}
	}
}

func (e *Elaborator) pushFrame(names ...string) {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[canonicalize(n)] = true
	}
	e.scopes = append(e.scopes, frame{names: m})
}

func (e *Elaborator) popFrame() {
	e.scopes = e.scopes[:len(e.scopes)-1]
}

// lookup resolves a canonicalized name to a depth-tagged local, a global,
// or a builtin, in that order of precedence (spec §4.4 pass 2: locals
// shadow globals, globals shadow nothing else since builtins are only
// consulted last).
func (e *Elaborator) lookup(span position.Span, name string) ir.Expr {
	cname := canonicalize(name)
	for depth := 0; depth < len(e.scopes); depth++ {
		f := e.scopes[len(e.scopes)-1-depth]
		if f.names[cname] {
			return ir.LocalRef{Name: cname, Depth: depth}
		}
	}
	if e.globals[cname] {
		return ir.GlobalRef{Name: cname}
	}
	if ir.Builtins[cname] {
		return ir.BuiltinRef{Name: cname}
	}
	e.Diagnostics.Add(diagnostic.New(diagnostic.KindNameUnbound, span,
		"unbound name '"+name+"'").Build())
	return ir.GlobalRef{Name: cname}
}

// resolve is pass 2: desugar and resolve one expression (and, via
// recursion, its whole subtree).
func (e *Elaborator) resolve(node ast.Expr) ir.Expr {
	switch n := node.(type) {
	case *ast.IntLiteral:
		return ir.IntLit{Value: n.Value}
	case *ast.RationalLiteral:
		den := n.Den
		if den == 0 {
			e.Diagnostics.Add(diagnostic.New(diagnostic.KindNumericDomainError, n.Span,
				"rational literal has zero denominator").Build())
			den = 1
		}
		return ir.RatLit{Value: big.NewRat(n.Num, den)}
	case *ast.DecimalLiteral:
		return ir.DecLit{Value: n.Value}
	case *ast.StringLiteral:
		return ir.StrLit{Value: n.Value}
	case *ast.BoolLiteral:
		return ir.BoolLit{Value: n.Value}
	case *ast.SymbolLiteral:
		return ir.SymLit{Name: n.Name}
	case *ast.ListLiteral:
		elems := make([]ir.Expr, len(n.Elements))
		for i, el := range n.Elements {
			elems[i] = e.resolve(el)
		}
		return ir.ListLit{Elements: elems}
	case *ast.Identifier:
		return e.lookup(n.Span, n.Name)
	case *ast.Application:
		fn := e.resolve(n.Fn)
		args := make([]ir.Expr, len(n.Args))
		for i, a := range n.Args {
			args[i] = e.resolve(a)
		}
		return ir.Apply{Fn: fn, Args: args}
	case *ast.Lambda:
		e.pushFrame(n.Params...)
		body := e.resolve(n.Body)
		e.popFrame()
		params := make([]string, len(n.Params))
		for i, p := range n.Params {
			params[i] = canonicalize(p)
		}
		return ir.Lambda{Params: params, Body: body}
	case *ast.Let:
		return e.resolveLet(n.Bindings, n.Body)
	case *ast.Do:
		return e.resolveDo(n.Stmts, n.Ret)
	case *ast.If:
		return ir.If{Cond: e.resolve(n.Cond), Then: e.resolve(n.Then), Else: e.resolve(n.Else)}
	case *ast.Match:
		return e.resolveMatch(n)
	case *ast.Bet:
		return ir.Bet{A: e.resolve(n.A), B: e.resolve(n.B), C: e.resolve(n.C)}
	case *ast.BetWeighted:
		return e.resolveBetWeighted(n)
	case *ast.BetConditional:
		return ir.BetConditional{
			Pred: e.resolve(n.Pred), True: e.resolve(n.True),
			False: e.resolve(n.False), Unconditional: e.resolve(n.Unconditional),
		}
	case *ast.BetLazy:
		return ir.BetLazy{ThunkA: e.resolve(n.ThunkA), ThunkB: e.resolve(n.ThunkB), ThunkC: e.resolve(n.ThunkC)}
	case *ast.WithSeed:
		return ir.WithSeed{Seed: e.resolve(n.Seed), Body: e.resolve(n.Body)}
	case *ast.Parallel:
		return ir.Parallel{N: e.resolve(n.N), Body: e.resolve(n.Body)}
	case *ast.Sample:
		return ir.Sample{Dist: e.resolve(n.Dist)}
	case *ast.Define:
		// A nested `define` (inside a do/let body) behaves like a
		// single-binding non-recursive let whose scope is "the rest of
		// the enclosing sequence"; the caller (resolveDo) handles this
		// by treating it as an ordinary named bind.
		return e.resolve(n.Value)
	default:
		e.Diagnostics.Add(diagnostic.New(diagnostic.KindParseUnexpectedToken, node.NodeSpan(),
			"internal: no elaboration rule for node").Build())
		return ir.BoolLit{Value: false}
	}
}

// resolveLet desugars `let n1=v1, n2=v2 in body end` into a chain of
// single-binding ir.Bind nodes, evaluated left to right (spec §4.4 pass 3;
// later bindings' values may reference earlier ones, matching a
// left-to-right `let*`).
func (e *Elaborator) resolveLet(bindings []ast.Binding, body ast.Expr) ir.Expr {
	if len(bindings) == 0 {
		return e.resolve(body)
	}
	b := bindings[0]
	val := e.resolve(b.Value)
	e.pushFrame(b.Name)
	rest := e.resolveLet(bindings[1:], body)
	e.popFrame()
	return ir.Bind{Name: canonicalize(b.Name), Value: val, Rest: rest}
}

// resolveDo desugars a do-block's statement list plus its mandatory
// return expression into the same Bind chain shape as let, so the
// evaluator has exactly one sequencing construct (spec §4.4 pass 3,
// §4.6). A bare-expression statement becomes a "_"-named bind whose
// value is evaluated (and its PRNG-state/entropy effects threaded) but
// never referenced.
func (e *Elaborator) resolveDo(stmts []ast.Stmt, ret ast.Expr) ir.Expr {
	if len(stmts) == 0 {
		return e.resolve(ret)
	}
	s := stmts[0]
	name := s.Name
	if name == "" {
		name = "_"
	}
	val := e.resolve(s.Expr)
	e.pushFrame(name)
	rest := e.resolveDo(stmts[1:], ret)
	e.popFrame()
	return ir.Bind{Name: canonicalize(name), Value: val, Rest: rest}
}

func (e *Elaborator) resolveMatch(n *ast.Match) ir.Expr {
	scrutinee := e.resolve(n.Scrutinee)
	arms := make([]ir.MatchArm, len(n.Arms))
	for i, arm := range n.Arms {
		pat, names := e.resolvePattern(arm.Pattern)
		e.pushFrame(names...)
		body := e.resolve(arm.Body)
		e.popFrame()
		arms[i] = ir.MatchArm{Pattern: pat, Body: body}
	}
	if !patternsExhaustive(n.Arms) {
		e.Diagnostics.Add(diagnostic.New(diagnostic.KindPatternNonExhaustive, n.Span,
			"match arms are not exhaustive; add a wildcard `_` arm").Build())
	}
	e.checkDuplicateTags(n)
	return ir.Match{Scrutinee: scrutinee, Arms: arms}
}

// checkDuplicateTags flags a tag pattern arm that repeats a tag already
// covered earlier in the same match: the later arm is dead code, since
// patterns are tried top to bottom. Membership tracked with a
// hashicorp/go-set Collection rather than a bare Go map/bool, matching
// the pack's set-based dedup idiom (cottand-ile's typeName parent-set).
func (e *Elaborator) checkDuplicateTags(n *ast.Match) {
	seen := set.New[string](len(n.Arms))
	for _, arm := range n.Arms {
		tp, ok := arm.Pattern.(*ast.TagPattern)
		if !ok {
			continue
		}
		if seen.Contains(tp.Tag) {
			e.Diagnostics.Add(diagnostic.New(diagnostic.KindPatternDuplicateArm, arm.Span,
				"tag '"+tp.Tag+"' is already matched by an earlier arm").Build())
			continue
		}
		seen.Insert(tp.Tag)
	}
}

// resolvePattern elaborates a pattern and returns the names it binds, so
// the caller can push a single frame covering the whole pattern.
func (e *Elaborator) resolvePattern(p ast.Pattern) (ir.Pattern, []string) {
	switch n := p.(type) {
	case *ast.WildcardPattern:
		return ir.WildcardPattern{}, nil
	case *ast.VarPattern:
		if n.Name == "_" {
			return ir.WildcardPattern{}, nil
		}
		return ir.VarPattern{Name: canonicalize(n.Name)}, []string{n.Name}
	case *ast.LiteralPattern:
		return ir.LiteralPattern{Value: e.resolve(n.Value)}, nil
	case *ast.ListPattern:
		var all []string
		elems := make([]ir.Pattern, len(n.Elements))
		for i, el := range n.Elements {
			ep, names := e.resolvePattern(el)
			elems[i] = ep
			all = append(all, names...)
		}
		return ir.ListPattern{Elements: elems}, all
	case *ast.TagPattern:
		var all []string
		args := make([]ir.Pattern, len(n.Args))
		for i, a := range n.Args {
			ap, names := e.resolvePattern(a)
			args[i] = ap
			all = append(all, names...)
		}
		return ir.TagPattern{Tag: n.Tag, Args: args}, all
	default:
		return ir.WildcardPattern{}, nil
	}
}

// validate is pass 4/5: whole-IR checks that need the fully-resolved
// tree rather than a single node (spec §4.4). Presently this re-walks
// top-level bet-weighted literals; arity/type checks for builtins are
// left to the evaluator, which reports them as a single runtime
// diagnostic per spec §7 rather than accumulating them here.
func (e *Elaborator) validate(prog *ir.Program) {
	for _, d := range prog.Defines {
		e.validateExpr(d.Value)
	}
	for _, b := range prog.Body {
		e.validateExpr(b)
	}
}

func (e *Elaborator) validateExpr(node ir.Expr) {
	switch n := node.(type) {
	case ir.BetWeighted:
		if n.AllStatic && !n.DutchBookSafe {
			sum := "unknown"
			if n.StaticSum != nil {
				f, _ := n.StaticSum.Float64()
				sum = fmt.Sprintf("%g", f)
			}
			e.Diagnostics.Add(diagnostic.New(diagnostic.KindDutchBookViolation, position.Span{},
				fmt.Sprintf("bet-weighted outcome weights must be non-negative and sum to 1 within tolerance, got sum=%s", sum)).Build())
		}
	case ir.Bind:
		e.validateExpr(n.Value)
		e.validateExpr(n.Rest)
	case ir.If:
		e.validateExpr(n.Cond)
		e.validateExpr(n.Then)
		e.validateExpr(n.Else)
	case ir.Apply:
		e.validateExpr(n.Fn)
		for _, a := range n.Args {
			e.validateExpr(a)
		}
	case ir.Lambda:
		e.validateExpr(n.Body)
	case ir.Match:
		e.validateExpr(n.Scrutinee)
		for _, arm := range n.Arms {
			e.validateExpr(arm.Body)
		}
	case ir.Bet:
		e.validateExpr(n.A)
		e.validateExpr(n.B)
		e.validateExpr(n.C)
	case ir.BetConditional:
		e.validateExpr(n.Pred)
		e.validateExpr(n.True)
		e.validateExpr(n.False)
		e.validateExpr(n.Unconditional)
	case ir.BetLazy:
		e.validateExpr(n.ThunkA)
		e.validateExpr(n.ThunkB)
		e.validateExpr(n.ThunkC)
	case ir.WithSeed:
		e.validateExpr(n.Seed)
		e.validateExpr(n.Body)
	case ir.Parallel:
		e.validateExpr(n.N)
		e.validateExpr(n.Body)
	case ir.Sample:
		e.validateExpr(n.Dist)
	}
}

// resolveBetWeighted elaborates each outcome and, when every weight is a
// literal number, records the raw weights and their exact sum and runs
// the full static Dutch-book check (spec §4.4 pass 4, §4.8) on the raw
// weights: all non-negative and their sum equal to 1 within
// safety.DefaultTolerance, reusing the same safety.Validate the runtime
// validated-bet path uses. The weights are not normalized; the IR
// carries them as written.
func (e *Elaborator) resolveBetWeighted(n *ast.BetWeighted) ir.Expr {
	outcomes := make([]ir.WeightedOutcome, len(n.Outcomes))
	allStatic := true
	total := new(big.Rat)
	staticWeights := make([]float64, 0, len(n.Outcomes))

	for i, o := range n.Outcomes {
		val := e.resolve(o.Value)
		weight := e.resolve(o.Weight)
		wo := ir.WeightedOutcome{Value: val, Weight: weight}

		if r, ok := staticRat(weight); ok {
			wo.StaticWeight = r
			total.Add(total, r)
			f, _ := r.Float64()
			staticWeights = append(staticWeights, f)
		} else {
			allStatic = false
		}
		outcomes[i] = wo
	}

	safe := false
	if allStatic {
		_, err := safety.Validate(staticWeights, safety.DefaultTolerance)
		safe = err == nil
	}
	return ir.BetWeighted{Outcomes: outcomes, AllStatic: allStatic, DutchBookSafe: safe, StaticSum: total}
}

// staticRat extracts an exact rational value from an already-resolved
// literal IR node, if it is one.
func staticRat(e ir.Expr) (*big.Rat, bool) {
	switch n := e.(type) {
	case ir.IntLit:
		return big.NewRat(n.Value, 1), true
	case ir.RatLit:
		return n.Value, true
	case ir.DecLit:
		r := new(big.Rat).SetFloat64(n.Value)
		if r == nil {
			return nil, false
		}
		return r, true
	case ir.Apply:
		// The parser turns a literal like `-1` into neg(1).
		if ref, ok := n.Fn.(ir.BuiltinRef); ok && ref.Name == "neg" && len(n.Args) == 1 {
			if r, ok := staticRat(n.Args[0]); ok {
				return new(big.Rat).Neg(r), true
			}
		}
		return nil, false
	default:
		return nil, false
	}
}

// patternsExhaustive reports whether arm list contains a catch-all:
// a bare wildcard or bare variable pattern (spec §4.4 pass 5's minimal
// exhaustiveness check — full tag-coverage analysis is tracked as an
// Open Question, §9).
func patternsExhaustive(arms []ast.MatchArm) bool {
	for _, arm := range arms {
		switch arm.Pattern.(type) {
		case *ast.WildcardPattern, *ast.VarPattern:
			return true
		}
	}
	return false
}
