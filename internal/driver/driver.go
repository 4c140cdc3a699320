// Package driver implements the three embedded-use entry points spec
// §6 names for collaborators (LSP, backend generator, bindings) —
// parse, elaborate, evaluate — plus the version-pragma check that sits
// in front of all three. cmd/betlang's subcommands are thin wrappers
// over this package; nothing here talks to stdin/stdout or os.Exit.
package driver

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/hyperpolymath/betlang/internal/ast"
	"github.com/hyperpolymath/betlang/internal/clock"
	"github.com/hyperpolymath/betlang/internal/diagnostic"
	"github.com/hyperpolymath/betlang/internal/elaborate"
	"github.com/hyperpolymath/betlang/internal/eval"
	"github.com/hyperpolymath/betlang/internal/ir"
	"github.com/hyperpolymath/betlang/internal/lexer"
	"github.com/hyperpolymath/betlang/internal/parser"
	"github.com/hyperpolymath/betlang/internal/position"
	"github.com/hyperpolymath/betlang/internal/rng"
	"github.com/hyperpolymath/betlang/internal/safety"
	"github.com/hyperpolymath/betlang/internal/value"
)

// LanguageVersion is the compiled-in BetLang language version checked
// against a source file's optional `;; betlang <constraint>` pragma.
const LanguageVersion = "1.2.0"

// versionPragma matches a pragma line such as `;; betlang >= 1.2.0`.
// The pragma lives inside a `;`-prefixed line comment (spec §4.1),
// which the lexer discards before the parser ever sees a token, so it
// is detected directly against the raw source text rather than by
// walking tokens.
var versionPragma = regexp.MustCompile(`(?m)^\s*;;\s*betlang\s+(.+?)\s*$`)

// CheckVersionPragma scans source for a version pragma and, if one is
// present, verifies LanguageVersion satisfies its constraint. It
// returns nil when there is no pragma or the pragma is satisfied.
func CheckVersionPragma(source string) *diagnostic.Diagnostic {
	m := versionPragma.FindStringSubmatch(source)
	if m == nil {
		return nil
	}
	constraintText := strings.TrimSpace(m[1])
	constraint, err := semver.NewConstraint(constraintText)
	if err != nil {
		d := diagnostic.New(diagnostic.KindDriverUsage, position.Span{},
			fmt.Sprintf("malformed version pragma %q: %v", constraintText, err)).Build()
		return &d
	}
	v, err := semver.NewVersion(LanguageVersion)
	if err != nil {
		d := diagnostic.New(diagnostic.KindDriverUsage, position.Span{},
			fmt.Sprintf("internal: LanguageVersion %q does not parse as semver: %v", LanguageVersion, err)).Build()
		return &d
	}
	if !constraint.Check(v) {
		d := diagnostic.New(diagnostic.KindDriverVersionMismatch, position.Span{},
			fmt.Sprintf("source requires betlang %s, running %s", constraintText, LanguageVersion)).Build()
		return &d
	}
	return nil
}

// Parse lexes and parses source into an AST (spec §6 boundary
// function 1: parse(source) -> Result<AST, [Diagnostic]>). filename is
// used only to annotate spans in returned diagnostics.
func Parse(source, filename string) (*ast.Program, []diagnostic.Diagnostic) {
	l := lexer.NewWithFilename(source, filename)
	p := parser.NewParser(l, filename)
	return p.Parse()
}

// Elaborate resolves an AST into IR (spec §6 boundary function 2:
// elaborate(AST) -> Result<IR, [Diagnostic]>).
func Elaborate(prog *ast.Program) (*ir.Program, []diagnostic.Diagnostic) {
	return elaborate.Elaborate(prog)
}

// EvalOptions configures a single evaluate call (spec §6 boundary
// function 3: evaluate(IR, env, seed, cooloff) -> Result<Value,
// Diagnostic>). CoolOff and Clock are both optional; a nil CoolOff
// means validated-bet skips that precondition entirely, and a nil
// Clock defaults to the system wall clock.
type EvalOptions struct {
	Seed      uint64
	StepLimit int
	CoolOff   *safety.CoolOffState
	Clock     clock.Clock
}

// Evaluate runs every top-level define and body expression of an
// elaborated program against a fresh global environment, returning the
// value of each top-level expression in source order. A runtime
// failure is fatal to the run and surfaces as a single diagnostic
// (spec §7 "Propagation"), never a partial result.
func Evaluate(prog *ir.Program, opts EvalOptions) ([]value.Value, *diagnostic.Diagnostic) {
	ev := eval.New(rng.NewSource(opts.Seed))
	ev.StepLimit = opts.StepLimit
	ev.CoolOff = opts.CoolOff
	if opts.Clock != nil {
		ev.Clock = opts.Clock
	}
	results, err := ev.EvalProgram(prog, value.NewEnv())
	if err != nil {
		d := asDiagnostic(err)
		return nil, &d
	}
	return results, nil
}

func asDiagnostic(err error) diagnostic.Diagnostic {
	if d, ok := err.(diagnostic.Diagnostic); ok {
		return d
	}
	return diagnostic.New(diagnostic.KindEvalAborted, position.Span{}, err.Error()).Build()
}
