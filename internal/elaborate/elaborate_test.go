package elaborate

import (
	"testing"

	"github.com/hyperpolymath/betlang/internal/ast"
	"github.com/hyperpolymath/betlang/internal/ir"
	"github.com/hyperpolymath/betlang/internal/lexer"
	"github.com/hyperpolymath/betlang/internal/parser"
)

func elaborateSrc(t *testing.T, src string) (*ir.Program, []string) {
	t.Helper()
	l := lexer.New(src)
	p := parser.NewParser(l, "test.bet")
	prog, pdiags := p.Parse()
	for _, d := range pdiags {
		if d.Severity.String() == "error" {
			t.Fatalf("parse error: %s", d)
		}
	}
	out, diags := Elaborate(prog)
	var msgs []string
	for _, d := range diags {
		msgs = append(msgs, string(d.Kind))
	}
	return out, msgs
}

func TestElaborateUnboundName(t *testing.T) {
	_, kinds := elaborateSrc(t, "undefined_name")
	found := false
	for _, k := range kinds {
		if k == "Name.Unbound" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected Name.Unbound diagnostic, got %v", kinds)
	}
}

func TestElaborateBuiltinResolves(t *testing.T) {
	_, kinds := elaborateSrc(t, "1 + 2")
	if len(kinds) != 0 {
		t.Fatalf("expected no diagnostics resolving '+', got %v", kinds)
	}
}

func TestElaborateLetDesugarsToBind(t *testing.T) {
	out, kinds := elaborateSrc(t, "let x = 1 in x + 1 end")
	if len(kinds) != 0 {
		t.Fatalf("unexpected diagnostics: %v", kinds)
	}
	if len(out.Body) != 1 {
		t.Fatalf("expected 1 body expr, got %d", len(out.Body))
	}
	if _, ok := out.Body[0].(ir.Bind); !ok {
		t.Fatalf("expected let to desugar to ir.Bind, got %T", out.Body[0])
	}
}

func TestElaborateForwardGlobalReference(t *testing.T) {
	_, kinds := elaborateSrc(t, "define f = lambda (x) g(x) end\ndefine g = lambda (x) x end")
	if len(kinds) != 0 {
		t.Fatalf("expected forward reference between top-level defines to resolve, got %v", kinds)
	}
}

func TestElaborateBetWeightedStaticDutchBookSafe(t *testing.T) {
	out, kinds := elaborateSrc(t, "bet-weighted (1, 1/2) (2, 1/2) end")
	if len(kinds) != 0 {
		t.Fatalf("unexpected diagnostics: %v", kinds)
	}
	bw, ok := out.Body[0].(ir.BetWeighted)
	if !ok {
		t.Fatalf("expected ir.BetWeighted, got %T", out.Body[0])
	}
	if !bw.AllStatic || !bw.DutchBookSafe {
		t.Fatalf("expected static, dutch-book-safe distribution, got %+v", bw)
	}
}

func TestElaborateBetWeightedNonUnitSumViolation(t *testing.T) {
	out, kinds := elaborateSrc(t, "bet-weighted (1, 0.4) (2, 0.4) (3, 0.3) end")
	found := false
	for _, k := range kinds {
		if k == "DutchBook.Violation" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected DutchBook.Violation for weights summing to 1.1, got %v", kinds)
	}
	bw, ok := out.Body[0].(ir.BetWeighted)
	if !ok {
		t.Fatalf("expected ir.BetWeighted, got %T", out.Body[0])
	}
	if !bw.AllStatic || bw.DutchBookSafe {
		t.Fatalf("expected static, dutch-book-unsafe distribution, got %+v", bw)
	}
	if bw.StaticSum == nil {
		t.Fatalf("expected StaticSum to be recorded")
	}
	if f, _ := bw.StaticSum.Float64(); f < 1.09 || f > 1.11 {
		t.Fatalf("StaticSum = %v, want ~1.1", f)
	}
}

func TestElaborateBetWeightedNegativeWeightUnsafe(t *testing.T) {
	_, kinds := elaborateSrc(t, "bet-weighted (1, -1) (2, 2) end")
	found := false
	for _, k := range kinds {
		if k == "DutchBook.Violation" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected DutchBook.Violation for negative static weight, got %v", kinds)
	}
}

func TestElaborateDuplicateTagArm(t *testing.T) {
	_, kinds := elaborateSrc(t, "match x with\n  some(y) -> y\n  | some(z) -> z\n  | _ -> 0\nend")
	found := false
	for _, k := range kinds {
		if k == "Pattern.DuplicateArm" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected Pattern.DuplicateArm diagnostic, got %v", kinds)
	}
}

func TestElaborateNonExhaustiveMatch(t *testing.T) {
	_, kinds := elaborateSrc(t, "match x with\n  1 -> 10\nend")
	found := false
	for _, k := range kinds {
		if k == "Pattern.NonExhaustive" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected Pattern.NonExhaustive diagnostic, got %v", kinds)
	}
}

func parseSrc(t *testing.T, src string) *ast.Program {
	t.Helper()
	l := lexer.New(src)
	p := parser.NewParser(l, "test.bet")
	prog, pdiags := p.Parse()
	for _, d := range pdiags {
		if d.Severity.String() == "error" {
			t.Fatalf("parse error: %s", d)
		}
	}
	return prog
}

func TestElaborateProgramReusesElaboratorAcrossLines(t *testing.T) {
	e := New()

	_, diags := e.ElaborateProgram(parseSrc(t, "(define x 41)"))
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics defining x: %v", diags)
	}

	out, diags := e.ElaborateProgram(parseSrc(t, "x + 1"))
	if len(diags) != 0 {
		t.Fatalf("x defined on a prior line must resolve as a global, got: %v", diags)
	}
	if len(out.Body) != 1 {
		t.Fatalf("expected one body expression")
	}
	if _, ok := out.Body[0].(ir.Apply); !ok {
		t.Fatalf("expected an Apply node, got %T", out.Body[0])
	}
}

func TestNewWithGlobalsSeedsKnownNames(t *testing.T) {
	e := NewWithGlobals([]string{"seeded"})
	_, diags := e.ElaborateProgram(parseSrc(t, "seeded"))
	if len(diags) != 0 {
		t.Fatalf("a pre-seeded global must resolve without diagnostics, got: %v", diags)
	}
}

func TestElaborateProgramDiagnosticsDoNotAccumulateAcrossCalls(t *testing.T) {
	e := New()
	_, diags := e.ElaborateProgram(parseSrc(t, "undefined_name"))
	if len(diags) != 1 {
		t.Fatalf("expected exactly one diagnostic on the first call, got %d", len(diags))
	}
	_, diags = e.ElaborateProgram(parseSrc(t, "(define y 1)"))
	if len(diags) != 0 {
		t.Fatalf("a later clean call must not carry over the earlier call's diagnostics, got: %v", diags)
	}
}
