// Package value defines BetLang's runtime value representation and
// lexical environment (component C8, half one). The Env shape — a
// map-backed frame with a parent pointer, Child()/Get()/Set() — is
// ported near-verbatim from ThomasRohde-Agent0's pkg/evaluator/env.go;
// Value is new, a closed interface covering every runtime kind spec §3
// names (number, bool, string, symbol, list, record/tag, closure, thunk,
// uncertainty-value).
package value

import (
	"fmt"
	"math/big"

	"github.com/hyperpolymath/betlang/internal/ir"
)

// Value is the sealed interface every runtime value implements.
type Value interface {
	Kind() string
	String() string
	valueNode()
}

// Int is an exact machine integer.
type Int struct{ V int64 }

func (Int) Kind() string      { return "int" }
func (n Int) String() string  { return fmt.Sprintf("%d", n.V) }
func (Int) valueNode()        {}

// Rat is an exact rational, backed by math/big for unbounded precision
// (spec §4.1/§4.9: rationals must not silently lose precision).
type Rat struct{ V *big.Rat }

func (Rat) Kind() string     { return "rational" }
func (n Rat) String() string { return n.V.RatString() }
func (Rat) valueNode()       {}

// Dec is an IEEE-754 double, used where spec explicitly calls for a
// floating-point quantity (distribution parameters, sampled draws).
type Dec struct{ V float64 }

func (Dec) Kind() string     { return "decimal" }
func (n Dec) String() string { return fmt.Sprintf("%g", n.V) }
func (Dec) valueNode()       {}

type Bool struct{ V bool }

func (Bool) Kind() string     { return "bool" }
func (n Bool) String() string { return fmt.Sprintf("%t", n.V) }
func (Bool) valueNode()       {}

type Str struct{ V string }

func (Str) Kind() string     { return "string" }
func (n Str) String() string { return n.V }
func (Str) valueNode()       {}

// Symbol is an interned, self-evaluating name, e.g. 'heads.
type Symbol struct{ V string }

func (Symbol) Kind() string     { return "symbol" }
func (n Symbol) String() string { return "'" + n.V }
func (Symbol) valueNode()       {}

// List is an immutable persistent cons-style sequence, built/consumed by
// the `list`/`cons`/`head`/`tail` builtins.
type List struct{ Elements []Value }

func (List) Kind() string { return "list" }
func (n List) String() string {
	s := "["
	for i, e := range n.Elements {
		if i > 0 {
			s += ", "
		}
		s += e.String()
	}
	return s + "]"
}
func (List) valueNode() {}

// Tag is a record value: a named constructor applied to zero or more
// field values (spec §3's pattern-matchable "record" kind), e.g.
// `(some 3)` or `(none)`.
type Tag struct {
	Name   string
	Fields []Value
}

func (Tag) Kind() string { return "tag" }
func (n Tag) String() string {
	if len(n.Fields) == 0 {
		return n.Name
	}
	s := n.Name + "("
	for i, f := range n.Fields {
		if i > 0 {
			s += ", "
		}
		s += f.String()
	}
	return s + ")"
}
func (Tag) valueNode() {}

// Closure is a Lambda value closed over the environment it was created
// in (spec §4.3).
type Closure struct {
	Params []string
	Body   ir.Expr
	Env    *Env
}

func (Closure) Kind() string     { return "closure" }
func (n Closure) String() string { return fmt.Sprintf("<closure/%d>", len(n.Params)) }
func (Closure) valueNode()       {}

// Thunk is a zero-argument deferred computation, used by bet-lazy (spec
// §4.6) so exactly one of its three branches is ever evaluated.
type Thunk struct {
	Body ir.Expr
	Env  *Env
}

func (Thunk) Kind() string     { return "thunk" }
func (Thunk) String() string   { return "<thunk>" }
func (Thunk) valueNode()       {}

// Uncertain wraps any of the fourteen numeric-kernel distributions
// (internal/numeric) as a first-class runtime value, dispatched by a
// type switch in internal/eval rather than embedded directly in this
// package, to keep internal/value free of a dependency on
// internal/numeric (spec §4.9's kernel is layered above the evaluator's
// core value model, not fused into it).
type Uncertain struct {
	Dist fmt.Stringer // holds a *numeric.<Variant>; concrete type erased here by design
}

func (Uncertain) Kind() string     { return "uncertainty" }
func (n Uncertain) String() string { return n.Dist.String() }
func (Uncertain) valueNode()       {}

// Env is a scoped environment for variable bindings: parent-chained
// lookup by name, one map-backed frame per lexical extent. Grounded
// directly on ThomasRohde-Agent0/pkg/evaluator/env.go; BetLang's IR
// resolves identifiers to a Depth (internal/ir.LocalRef) purely for
// compile-time unbound-name checking, but lookup at runtime still
// walks the parent chain by Name, exactly as the teacher's Env does.
type Env struct {
	bindings map[string]Value
	parent   *Env
}

// NewEnv creates a root environment with no parent.
func NewEnv() *Env {
	return &Env{bindings: make(map[string]Value)}
}

// Child creates a new child scope whose parent is e.
func (e *Env) Child() *Env {
	return &Env{bindings: make(map[string]Value), parent: e}
}

// Get looks up a variable by name, traversing parent scopes.
func (e *Env) Get(name string) (Value, bool) {
	for env := e; env != nil; env = env.parent {
		if v, ok := env.bindings[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Set binds a variable in this scope (not any parent's).
func (e *Env) Set(name string, v Value) {
	e.bindings[name] = v
}
