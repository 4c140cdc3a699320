package parser

import (
	"fmt"
	"strings"

	"github.com/hyperpolymath/betlang/internal/ast"
)

// Print renders prog in canonical keyword/`end` form. `betlang fmt` and the
// parse-print-parse fixed-point property (spec §8) both depend on Print
// being a function of the AST alone, not of which surface syntax produced
// it — two programs that parse to the same tree print identically.
func Print(prog *ast.Program) string {
	var sb strings.Builder
	for i, e := range prog.Exprs {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		printExpr(&sb, e, 0)
	}
	sb.WriteString("\n")
	return sb.String()
}

func indent(sb *strings.Builder, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
}

// infixOperatorNames are the identifiers parseInfix (parser.go) desugars
// binary operator syntax into. Printing these back as `a op b` rather
// than `op(a, b)` keeps Print . Parse a fixed point (spec §8): the
// prefix-call form parses back to a different token sequence (`+` has
// no prefix meaning) even though it denotes the same Application node.
var infixOperatorNames = map[string]bool{
	"+": true, "-": true, "*": true, "/": true,
	"=": true, "<": true, ">": true, "<=": true, ">=": true,
	"and": true, "or": true,
}

func infixOperatorName(n *ast.Application) (string, bool) {
	id, ok := n.Fn.(*ast.Identifier)
	if !ok || len(n.Args) != 2 {
		return "", false
	}
	if infixOperatorNames[id.Name] {
		return id.Name, true
	}
	return "", false
}

// printInfixOperand parenthesizes an operand that is itself an infix
// application, so precedence is never lost across a print/reparse
// round-trip even though the printer does not track precedence levels.
func printInfixOperand(sb *strings.Builder, e ast.Expr, depth int) {
	if app, ok := e.(*ast.Application); ok {
		if _, ok := infixOperatorName(app); ok {
			sb.WriteString("(")
			printExpr(sb, e, depth)
			sb.WriteString(")")
			return
		}
	}
	printExpr(sb, e, depth)
}

func printExpr(sb *strings.Builder, e ast.Expr, depth int) {
	switch n := e.(type) {
	case *ast.IntLiteral:
		fmt.Fprintf(sb, "%d", n.Value)
	case *ast.RationalLiteral:
		fmt.Fprintf(sb, "%d/%d", n.Num, n.Den)
	case *ast.DecimalLiteral:
		fmt.Fprintf(sb, "%g", n.Value)
	case *ast.StringLiteral:
		fmt.Fprintf(sb, "%q", n.Value)
	case *ast.BoolLiteral:
		fmt.Fprintf(sb, "%t", n.Value)
	case *ast.SymbolLiteral:
		fmt.Fprintf(sb, "'%s", n.Name)
	case *ast.Identifier:
		sb.WriteString(n.Name)
	case *ast.ListLiteral:
		sb.WriteString("[")
		for i, el := range n.Elements {
			if i > 0 {
				sb.WriteString(", ")
			}
			printExpr(sb, el, depth)
		}
		sb.WriteString("]")
	case *ast.Application:
		if op, ok := infixOperatorName(n); ok {
			printInfixOperand(sb, n.Args[0], depth)
			fmt.Fprintf(sb, " %s ", op)
			printInfixOperand(sb, n.Args[1], depth)
			break
		}
		printExpr(sb, n.Fn, depth)
		sb.WriteString("(")
		for i, a := range n.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			printExpr(sb, a, depth)
		}
		sb.WriteString(")")
	case *ast.Define:
		fmt.Fprintf(sb, "define %s = ", n.Name)
		printExpr(sb, n.Value, depth)
	case *ast.Let:
		sb.WriteString("let ")
		for i, b := range n.Bindings {
			if i > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(sb, "%s = ", b.Name)
			printExpr(sb, b.Value, depth)
		}
		sb.WriteString(" in\n")
		indent(sb, depth+1)
		printExpr(sb, n.Body, depth+1)
		sb.WriteString("\n")
		indent(sb, depth)
		sb.WriteString("end")
	case *ast.If:
		sb.WriteString("if ")
		printExpr(sb, n.Cond, depth)
		sb.WriteString(" then ")
		printExpr(sb, n.Then, depth)
		sb.WriteString(" else ")
		printExpr(sb, n.Else, depth)
		sb.WriteString(" end")
	case *ast.Match:
		sb.WriteString("match ")
		printExpr(sb, n.Scrutinee, depth)
		sb.WriteString(" with\n")
		for i, arm := range n.Arms {
			indent(sb, depth+1)
			if i > 0 {
				sb.WriteString("| ")
			}
			printPattern(sb, arm.Pattern)
			sb.WriteString(" -> ")
			printExpr(sb, arm.Body, depth+1)
			sb.WriteString("\n")
		}
		indent(sb, depth)
		sb.WriteString("end")
	case *ast.Lambda:
		fmt.Fprintf(sb, "lambda (%s) ", strings.Join(n.Params, ", "))
		printExpr(sb, n.Body, depth)
		sb.WriteString(" end")
	case *ast.Bet:
		sb.WriteString("bet ")
		printExpr(sb, n.A, depth)
		sb.WriteString(" ")
		printExpr(sb, n.B, depth)
		sb.WriteString(" ")
		printExpr(sb, n.C, depth)
		sb.WriteString(" end")
	case *ast.BetWeighted:
		sb.WriteString("bet-weighted ")
		for _, o := range n.Outcomes {
			sb.WriteString("(")
			printExpr(sb, o.Value, depth)
			sb.WriteString(", ")
			printExpr(sb, o.Weight, depth)
			sb.WriteString(") ")
		}
		sb.WriteString("end")
	case *ast.BetConditional:
		sb.WriteString("bet-conditional ")
		printExpr(sb, n.Pred, depth)
		sb.WriteString(" ")
		printExpr(sb, n.True, depth)
		sb.WriteString(" ")
		printExpr(sb, n.False, depth)
		sb.WriteString(" ")
		printExpr(sb, n.Unconditional, depth)
		sb.WriteString(" end")
	case *ast.BetLazy:
		sb.WriteString("bet-lazy ")
		printExpr(sb, n.ThunkA, depth)
		sb.WriteString(" ")
		printExpr(sb, n.ThunkB, depth)
		sb.WriteString(" ")
		printExpr(sb, n.ThunkC, depth)
		sb.WriteString(" end")
	case *ast.WithSeed:
		sb.WriteString("with seed ")
		printExpr(sb, n.Seed, depth)
		sb.WriteString(" do ")
		printExpr(sb, n.Body, depth)
		sb.WriteString(" end")
	case *ast.Parallel:
		sb.WriteString("parallel ")
		printExpr(sb, n.N, depth)
		sb.WriteString(" do ")
		printExpr(sb, n.Body, depth)
		sb.WriteString(" end")
	case *ast.Sample:
		sb.WriteString("sample ")
		printExpr(sb, n.Dist, depth)
	case *ast.Do:
		sb.WriteString("do\n")
		for _, s := range n.Stmts {
			indent(sb, depth+1)
			if s.Name != "" {
				fmt.Fprintf(sb, "%s <- ", s.Name)
			}
			printExpr(sb, s.Expr, depth+1)
			sb.WriteString("\n")
		}
		indent(sb, depth+1)
		sb.WriteString("return ")
		printExpr(sb, n.Ret, depth+1)
		sb.WriteString("\n")
		indent(sb, depth)
		sb.WriteString("end")
	default:
		fmt.Fprintf(sb, "<?%s?>", e.Kind())
	}
}

func printPattern(sb *strings.Builder, p ast.Pattern) {
	switch n := p.(type) {
	case *ast.WildcardPattern:
		sb.WriteString("_")
	case *ast.VarPattern:
		sb.WriteString(n.Name)
	case *ast.LiteralPattern:
		printExpr(sb, n.Value, 0)
	case *ast.ListPattern:
		sb.WriteString("[")
		for i, el := range n.Elements {
			if i > 0 {
				sb.WriteString(", ")
			}
			printPattern(sb, el)
		}
		sb.WriteString("]")
	case *ast.TagPattern:
		fmt.Fprintf(sb, "%s(", n.Tag)
		for i, a := range n.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			printPattern(sb, a)
		}
		sb.WriteString(")")
	default:
		fmt.Fprintf(sb, "<?%s?>", p.Kind())
	}
}
