package parser

import (
	"testing"

	"github.com/hyperpolymath/betlang/internal/ast"
	"github.com/hyperpolymath/betlang/internal/lexer"
)

func parseOne(t *testing.T, src string) ast.Expr {
	t.Helper()
	l := lexer.New(src)
	p := NewParser(l, "test.bet")
	prog, diags := p.Parse()
	for _, d := range diags {
		if d.Severity.String() == "error" {
			t.Fatalf("unexpected diagnostic parsing %q: %s", src, d)
		}
	}
	if len(prog.Exprs) != 1 {
		t.Fatalf("expected exactly 1 top-level expr, got %d for %q", len(prog.Exprs), src)
	}
	return prog.Exprs[0]
}

func TestParseSExprBet(t *testing.T) {
	e := parseOne(t, "(bet 'a 'b 'c)")
	bet, ok := e.(*ast.Bet)
	if !ok {
		t.Fatalf("expected *ast.Bet, got %T", e)
	}
	a, ok := bet.A.(*ast.SymbolLiteral)
	if !ok || a.Name != "a" {
		t.Fatalf("expected symbol 'a, got %#v", bet.A)
	}
}

func TestParseKeywordBet(t *testing.T) {
	e := parseOne(t, "bet 'a 'b 'c end")
	if _, ok := e.(*ast.Bet); !ok {
		t.Fatalf("expected *ast.Bet, got %T", e)
	}
}

func TestParseLetKeywordForm(t *testing.T) {
	e := parseOne(t, "let x = 1, y = 2 in x + y end")
	let, ok := e.(*ast.Let)
	if !ok {
		t.Fatalf("expected *ast.Let, got %T", e)
	}
	if len(let.Bindings) != 2 {
		t.Fatalf("expected 2 bindings, got %d", len(let.Bindings))
	}
	app, ok := let.Body.(*ast.Application)
	if !ok {
		t.Fatalf("expected application body, got %T", let.Body)
	}
	if fn, ok := app.Fn.(*ast.Identifier); !ok || fn.Name != "+" {
		t.Fatalf("expected '+' application, got %#v", app.Fn)
	}
}

func TestParseLetSExprForm(t *testing.T) {
	e := parseOne(t, "(let ((x 1) (y 2)) (+ x y))")
	let, ok := e.(*ast.Let)
	if !ok {
		t.Fatalf("expected *ast.Let, got %T", e)
	}
	if len(let.Bindings) != 2 || let.Bindings[0].Name != "x" {
		t.Fatalf("unexpected bindings: %#v", let.Bindings)
	}
}

func TestParseIfBothForms(t *testing.T) {
	kw := parseOne(t, "if true then 1 else 2 end")
	se := parseOne(t, "(if true 1 2)")
	if _, ok := kw.(*ast.If); !ok {
		t.Fatalf("keyword form: expected *ast.If, got %T", kw)
	}
	if _, ok := se.(*ast.If); !ok {
		t.Fatalf("sexpr form: expected *ast.If, got %T", se)
	}
}

func TestParseBetWeighted(t *testing.T) {
	e := parseOne(t, "bet-weighted (1, 1/2) (2, 1/2) end")
	bw, ok := e.(*ast.BetWeighted)
	if !ok {
		t.Fatalf("expected *ast.BetWeighted, got %T", e)
	}
	if len(bw.Outcomes) != 2 {
		t.Fatalf("expected 2 outcomes, got %d", len(bw.Outcomes))
	}
}

func TestParseBetConditional(t *testing.T) {
	e := parseOne(t, "bet-conditional true 1 2 3 end")
	bc, ok := e.(*ast.BetConditional)
	if !ok {
		t.Fatalf("expected *ast.BetConditional, got %T", e)
	}
	if bc.Unconditional == nil {
		t.Fatalf("expected Unconditional to be set")
	}
}

func TestParseWithSeed(t *testing.T) {
	e := parseOne(t, "with seed 42 do bet 1 2 3 end end")
	ws, ok := e.(*ast.WithSeed)
	if !ok {
		t.Fatalf("expected *ast.WithSeed, got %T", e)
	}
	if _, ok := ws.Body.(*ast.Bet); !ok {
		t.Fatalf("expected bet body, got %T", ws.Body)
	}
}

func TestParseDoBlock(t *testing.T) {
	e := parseOne(t, "do\n  x <- sample 1\n  return x\nend")
	do, ok := e.(*ast.Do)
	if !ok {
		t.Fatalf("expected *ast.Do, got %T", e)
	}
	if len(do.Stmts) != 1 || do.Stmts[0].Name != "x" {
		t.Fatalf("unexpected stmts: %#v", do.Stmts)
	}
	if _, ok := do.Ret.(*ast.Identifier); !ok {
		t.Fatalf("expected identifier return, got %T", do.Ret)
	}
}

func TestParseMatch(t *testing.T) {
	e := parseOne(t, "match x with\n  1 -> 10\n  | _ -> 20\nend")
	m, ok := e.(*ast.Match)
	if !ok {
		t.Fatalf("expected *ast.Match, got %T", e)
	}
	if len(m.Arms) != 2 {
		t.Fatalf("expected 2 arms, got %d", len(m.Arms))
	}
	if _, ok := m.Arms[1].Pattern.(*ast.WildcardPattern); !ok {
		t.Fatalf("expected wildcard pattern in 2nd arm, got %T", m.Arms[1].Pattern)
	}
}

func TestParseLambdaAndCall(t *testing.T) {
	e := parseOne(t, "lambda (x, y) x + y end")
	lam, ok := e.(*ast.Lambda)
	if !ok {
		t.Fatalf("expected *ast.Lambda, got %T", e)
	}
	if len(lam.Params) != 2 {
		t.Fatalf("expected 2 params, got %d", len(lam.Params))
	}
}

func TestParseInfixPrecedence(t *testing.T) {
	e := parseOne(t, "1 + 2 * 3")
	app, ok := e.(*ast.Application)
	if !ok {
		t.Fatalf("expected *ast.Application, got %T", e)
	}
	fn, ok := app.Fn.(*ast.Identifier)
	if !ok || fn.Name != "+" {
		t.Fatalf("expected top-level '+', got %#v", app.Fn)
	}
	rhs, ok := app.Args[1].(*ast.Application)
	if !ok {
		t.Fatalf("expected rhs to be a multiplication application, got %T", app.Args[1])
	}
	if fn2, ok := rhs.Fn.(*ast.Identifier); !ok || fn2.Name != "*" {
		t.Fatalf("expected nested '*', got %#v", rhs.Fn)
	}
}

func TestParseBinaryMinusIsWhitespaceInsensitive(t *testing.T) {
	for _, src := range []string{"5 - 3", "5-3", "5- 3", "5 -3"} {
		e := parseOne(t, src)
		app, ok := e.(*ast.Application)
		if !ok {
			t.Fatalf("%q: expected *ast.Application, got %T", src, e)
		}
		fn, ok := app.Fn.(*ast.Identifier)
		if !ok || fn.Name != "-" {
			t.Fatalf("%q: expected top-level '-', got %#v", src, app.Fn)
		}
		if len(app.Args) != 2 {
			t.Fatalf("%q: expected binary subtraction, got %d args", src, len(app.Args))
		}
	}
}

func TestParseUnaryMinusStillParsesAsNegation(t *testing.T) {
	e := parseOne(t, "-7")
	app, ok := e.(*ast.Application)
	if !ok {
		t.Fatalf("expected *ast.Application, got %T", e)
	}
	fn, ok := app.Fn.(*ast.Identifier)
	if !ok || fn.Name != "neg" {
		t.Fatalf("expected 'neg', got %#v", app.Fn)
	}
	if len(app.Args) != 1 {
		t.Fatalf("expected unary negation, got %d args", len(app.Args))
	}
}

func TestPrintParseFixedPoint(t *testing.T) {
	src := "if true then 1 else 2 end"
	l := lexer.New(src)
	p := NewParser(l, "test.bet")
	prog1, _ := p.Parse()
	out1 := Print(prog1)

	l2 := lexer.New(out1)
	p2 := NewParser(l2, "test.bet")
	prog2, diags := p2.Parse()
	for _, d := range diags {
		if d.Severity.String() == "error" {
			t.Fatalf("reparse of printed output failed: %s", d)
		}
	}
	out2 := Print(prog2)
	if out1 != out2 {
		t.Fatalf("print not a fixed point:\n--- first ---\n%s--- second ---\n%s", out1, out2)
	}
}

func TestParseDefine(t *testing.T) {
	e := parseOne(t, "define pi = 3.14")
	def, ok := e.(*ast.Define)
	if !ok {
		t.Fatalf("expected *ast.Define, got %T", e)
	}
	if def.Name != "pi" {
		t.Fatalf("expected name 'pi', got %q", def.Name)
	}
}

func TestParseListLiteral(t *testing.T) {
	e := parseOne(t, "[1, 2, 3]")
	list, ok := e.(*ast.ListLiteral)
	if !ok {
		t.Fatalf("expected *ast.ListLiteral, got %T", e)
	}
	if len(list.Elements) != 3 {
		t.Fatalf("expected 3 elements, got %d", len(list.Elements))
	}
}

func TestPrintParseFixedPointArithmetic(t *testing.T) {
	src := "1 + 2 * 3"
	l := lexer.New(src)
	p := NewParser(l, "test.bet")
	prog1, diags := p.Parse()
	for _, d := range diags {
		if d.Severity.String() == "error" {
			t.Fatalf("parse error: %s", d)
		}
	}
	out1 := Print(prog1)

	l2 := lexer.New(out1)
	p2 := NewParser(l2, "test.bet")
	prog2, diags := p2.Parse()
	for _, d := range diags {
		if d.Severity.String() == "error" {
			t.Fatalf("reparse of printed output failed: %s", d)
		}
	}
	out2 := Print(prog2)
	if out1 != out2 {
		t.Fatalf("print not a fixed point:\n--- first ---\n%s--- second ---\n%s", out1, out2)
	}
}
