// Package ast defines BetLang's immutable, span-annotated abstract syntax
// tree (component C5). Both surface syntaxes (S-expression and
// keyword/`end` form, spec §4.2) parse down to this single tree shape.
//
// The node shape — a sealed Expr interface with a Kind()/Span() pair and
// a private marker method per concrete type — follows
// ThomasRohde/agent0's pkg/ast rather than the teacher's own ast package,
// which is entangled with HIR bridging for native codegen that BetLang
// does not need (see DESIGN.md).
package ast

import "github.com/hyperpolymath/betlang/internal/position"

// Node is implemented by every AST node.
type Node interface {
	Kind() string
	NodeSpan() position.Span
}

// Expr is the sealed interface for all expression nodes.
type Expr interface {
	Node
	exprNode()
}

// Pattern is the sealed interface for match-arm patterns (spec §3).
type Pattern interface {
	Node
	patternNode()
}

// --- Literals ---

type IntLiteral struct {
	Span  position.Span
	Value int64
}

func (n *IntLiteral) Kind() string             { return "IntLiteral" }
func (n *IntLiteral) NodeSpan() position.Span  { return n.Span }
func (n *IntLiteral) exprNode()                {}

// RationalLiteral is an exact p/q literal (spec §4.1).
type RationalLiteral struct {
	Span position.Span
	Num  int64
	Den  int64
}

func (n *RationalLiteral) Kind() string            { return "RationalLiteral" }
func (n *RationalLiteral) NodeSpan() position.Span { return n.Span }
func (n *RationalLiteral) exprNode()               {}

type DecimalLiteral struct {
	Span  position.Span
	Value float64
}

func (n *DecimalLiteral) Kind() string            { return "DecimalLiteral" }
func (n *DecimalLiteral) NodeSpan() position.Span { return n.Span }
func (n *DecimalLiteral) exprNode()               {}

type StringLiteral struct {
	Span  position.Span
	Value string
}

func (n *StringLiteral) Kind() string            { return "StringLiteral" }
func (n *StringLiteral) NodeSpan() position.Span { return n.Span }
func (n *StringLiteral) exprNode()               {}

type BoolLiteral struct {
	Span  position.Span
	Value bool
}

func (n *BoolLiteral) Kind() string            { return "BoolLiteral" }
func (n *BoolLiteral) NodeSpan() position.Span { return n.Span }
func (n *BoolLiteral) exprNode()               {}

// SymbolLiteral is a quoted bare name, e.g. 'a in (bet 'a 'b 'c).
type SymbolLiteral struct {
	Span position.Span
	Name string
}

func (n *SymbolLiteral) Kind() string            { return "SymbolLiteral" }
func (n *SymbolLiteral) NodeSpan() position.Span { return n.Span }
func (n *SymbolLiteral) exprNode()               {}

// ListLiteral is a bracketed list expression: [e1, e2, ...].
type ListLiteral struct {
	Span     position.Span
	Elements []Expr
}

func (n *ListLiteral) Kind() string            { return "ListLiteral" }
func (n *ListLiteral) NodeSpan() position.Span { return n.Span }
func (n *ListLiteral) exprNode()               {}

// --- Identifiers & application ---

type Identifier struct {
	Span position.Span
	Name string
}

func (n *Identifier) Kind() string            { return "Identifier" }
func (n *Identifier) NodeSpan() position.Span { return n.Span }
func (n *Identifier) exprNode()               {}

// Application is a function call (f arg*).
type Application struct {
	Span position.Span
	Fn   Expr
	Args []Expr
}

func (n *Application) Kind() string            { return "Application" }
func (n *Application) NodeSpan() position.Span { return n.Span }
func (n *Application) exprNode()               {}

// --- Bindings ---

// Define is a top-level or nested binding: define name = expr.
type Define struct {
	Span  position.Span
	Name  string
	Value Expr
}

func (n *Define) Kind() string            { return "Define" }
func (n *Define) NodeSpan() position.Span { return n.Span }
func (n *Define) exprNode()               {}

// Binding is one (name, value) pair inside a Let.
type Binding struct {
	Span  position.Span
	Name  string
	Value Expr
}

// Let is `let [(n v) ...] in body`.
type Let struct {
	Span     position.Span
	Bindings []Binding
	Body     Expr
}

func (n *Let) Kind() string            { return "Let" }
func (n *Let) NodeSpan() position.Span { return n.Span }
func (n *Let) exprNode()               {}

// If is `if cond then a else b`.
type If struct {
	Span position.Span
	Cond Expr
	Then Expr
	Else Expr
}

func (n *If) Kind() string            { return "If" }
func (n *If) NodeSpan() position.Span { return n.Span }
func (n *If) exprNode()               {}

// MatchArm is one (pattern -> expr) arm.
type MatchArm struct {
	Span    position.Span
	Pattern Pattern
	Body    Expr
}

// Match is `match scrutinee with [(pattern -> expr) ...]`.
type Match struct {
	Span      position.Span
	Scrutinee Expr
	Arms      []MatchArm
}

func (n *Match) Kind() string            { return "Match" }
func (n *Match) NodeSpan() position.Span { return n.Span }
func (n *Match) exprNode()               {}

// Lambda is `lambda params body`.
type Lambda struct {
	Span   position.Span
	Params []string
	Body   Expr
}

func (n *Lambda) Kind() string            { return "Lambda" }
func (n *Lambda) NodeSpan() position.Span { return n.Span }
func (n *Lambda) exprNode()               {}

// --- Betting primitives (spec §3/§4.6) ---

// Bet is the ternary bet primitive: uniform draw among a, b, c.
type Bet struct {
	Span    position.Span
	A, B, C Expr
}

func (n *Bet) Kind() string            { return "Bet" }
func (n *Bet) NodeSpan() position.Span { return n.Span }
func (n *Bet) exprNode()               {}

// WeightedOutcome is one (value, weight) pair in a bet-weighted.
type WeightedOutcome struct {
	Span   position.Span
	Value  Expr
	Weight Expr
}

// BetWeighted draws i with probability w_i / sum(w).
type BetWeighted struct {
	Span     position.Span
	Outcomes []WeightedOutcome
}

func (n *BetWeighted) Kind() string            { return "BetWeighted" }
func (n *BetWeighted) NodeSpan() position.Span { return n.Span }
func (n *BetWeighted) exprNode()               {}

// BetConditional evaluates Pred; if true returns True, else recurses as
// (bet True False Unconditional) — the "second chance" semantics of
// spec §4.6/§9, preserved verbatim.
type BetConditional struct {
	Span                    position.Span
	Pred, True, False, Unconditional Expr
}

func (n *BetConditional) Kind() string            { return "BetConditional" }
func (n *BetConditional) NodeSpan() position.Span { return n.Span }
func (n *BetConditional) exprNode()               {}

// BetLazy uniformly selects and invokes exactly one of three thunks.
type BetLazy struct {
	Span                position.Span
	ThunkA, ThunkB, ThunkC Expr
}

func (n *BetLazy) Kind() string            { return "BetLazy" }
func (n *BetLazy) NodeSpan() position.Span { return n.Span }
func (n *BetLazy) exprNode()               {}

// WithSeed installs a fresh PRNG for the dynamic extent of Body (spec §4.5).
type WithSeed struct {
	Span position.Span
	Seed Expr
	Body Expr
}

func (n *WithSeed) Kind() string            { return "WithSeed" }
func (n *WithSeed) NodeSpan() position.Span { return n.Span }
func (n *WithSeed) exprNode()               {}

// Parallel produces a list of length N by evaluating Body N times in
// sequence, threading the PRNG (spec §4.6/§5).
type Parallel struct {
	Span position.Span
	N    Expr
	Body Expr
}

func (n *Parallel) Kind() string            { return "Parallel" }
func (n *Parallel) NodeSpan() position.Span { return n.Span }
func (n *Parallel) exprNode()               {}

// Sample draws from an uncertainty-value expression (spec §4.9).
type Sample struct {
	Span position.Span
	Dist Expr
}

func (n *Sample) Kind() string            { return "Sample" }
func (n *Sample) NodeSpan() position.Span { return n.Span }
func (n *Sample) exprNode()               {}

// --- do blocks ---

// Stmt is one statement inside a do block: either a bind (name <- expr)
// or a bare expression evaluated for effect.
type Stmt struct {
	Span position.Span
	Name string // "" for a bare expression statement
	Expr Expr
}

// Do is `do [stmt ...] return expr` (spec §3).
type Do struct {
	Span  position.Span
	Stmts []Stmt
	Ret   Expr
}

func (n *Do) Kind() string            { return "Do" }
func (n *Do) NodeSpan() position.Span { return n.Span }
func (n *Do) exprNode()               {}

// --- Patterns (spec §3) ---

type LiteralPattern struct {
	Span  position.Span
	Value Expr // an IntLiteral/StringLiteral/BoolLiteral/RationalLiteral/DecimalLiteral
}

func (n *LiteralPattern) Kind() string            { return "LiteralPattern" }
func (n *LiteralPattern) NodeSpan() position.Span { return n.Span }
func (n *LiteralPattern) patternNode()            {}

type WildcardPattern struct {
	Span position.Span
}

func (n *WildcardPattern) Kind() string            { return "WildcardPattern" }
func (n *WildcardPattern) NodeSpan() position.Span { return n.Span }
func (n *WildcardPattern) patternNode()            {}

type VarPattern struct {
	Span position.Span
	Name string
}

func (n *VarPattern) Kind() string            { return "VarPattern" }
func (n *VarPattern) NodeSpan() position.Span { return n.Span }
func (n *VarPattern) patternNode()            {}

type ListPattern struct {
	Span     position.Span
	Elements []Pattern
}

func (n *ListPattern) Kind() string            { return "ListPattern" }
func (n *ListPattern) NodeSpan() position.Span { return n.Span }
func (n *ListPattern) patternNode()            {}

// TagPattern matches a symbol tag with optional sub-patterns, e.g.
// (some x) or (none).
type TagPattern struct {
	Span position.Span
	Tag  string
	Args []Pattern
}

func (n *TagPattern) Kind() string            { return "TagPattern" }
func (n *TagPattern) NodeSpan() position.Span { return n.Span }
func (n *TagPattern) patternNode()            {}

// Program is a parsed source file: a sequence of top-level expressions
// (each typically a Define or a bare expression).
type Program struct {
	Span  position.Span
	Exprs []Expr
}
