// Package parser implements BetLang's recursive-descent Pratt parser
// (component C4). It is deliberately NOT LR-generated: the dual surface
// syntax (S-expression and keyword/`end` form, spec §4.2) produces the
// shift/reduce ambiguities spec §9 calls out as the project's central
// redesign note, and hand-written recursive descent sidesteps them by
// dispatching on the leading token before committing to a grammar rule.
//
// Control flow (two-token lookahead, precedence-climbing parseExpression,
// a per-token-kind prefix dispatch) follows the teacher's
// internal/parser/parser.go; the AST it is shaped around instead follows
// ThomasRohde/agent0's simpler sealed-interface tree (see DESIGN.md).
package parser

import (
	"strconv"
	"strings"

	"github.com/hyperpolymath/betlang/internal/ast"
	"github.com/hyperpolymath/betlang/internal/diagnostic"
	"github.com/hyperpolymath/betlang/internal/lexer"
	"github.com/hyperpolymath/betlang/internal/position"
)

// Precedence levels for the keyword-form infix grammar (spec §4.2):
// application, unary -, * /, + -, comparisons, and/or (low to high here,
// since parseExpression climbs from low to high).
const (
	precLowest = iota
	precOr
	precAnd
	precComparison
	precSum
	precProduct
	precUnary
	precCall
)

var infixPrecedence = map[lexer.TokenKind]int{
	lexer.TokenOr:    precOr,
	lexer.TokenAnd:   precAnd,
	lexer.TokenEq:    precComparison,
	lexer.TokenLt:    precComparison,
	lexer.TokenGt:    precComparison,
	lexer.TokenLe:    precComparison,
	lexer.TokenGe:    precComparison,
	lexer.TokenPlus:  precSum,
	lexer.TokenMinus: precSum,
	lexer.TokenStar:  precProduct,
	lexer.TokenSlash: precProduct,
	lexer.TokenLParen: precCall,
}

// Parser consumes a fully-tokenized input and builds an AST.
type Parser struct {
	toks     []lexer.Token
	pos      int
	filename string

	Diagnostics *diagnostic.Bag
}

// NewParser creates a parser over l's complete token stream.
func NewParser(l *lexer.Lexer, filename string) *Parser {
	p := &Parser{
		toks:        l.Tokenize(),
		filename:    filename,
		Diagnostics: diagnostic.NewBag(),
	}
	for _, d := range l.Diagnostics.Items() {
		p.Diagnostics.Add(d)
	}
	return p
}

func (p *Parser) cur() lexer.Token { return p.toks[p.pos] }

func (p *Parser) peekAt(offset int) lexer.Token {
	i := p.pos + offset
	if i >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[i]
}

func (p *Parser) advance() {
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
}

func (p *Parser) skipNewlines() {
	for p.cur().Kind == lexer.TokenNewline {
		p.advance()
	}
}

// skipSeparators consumes one or more statement separators (newline
// and/or semicolon), collapsing runs of them into a single boundary.
func (p *Parser) skipSeparators() {
	for p.cur().Kind == lexer.TokenNewline || p.cur().Kind == lexer.TokenSemicolon {
		p.advance()
	}
}

func (p *Parser) errorf(span position.Span, format string, args ...interface{}) {
	p.Diagnostics.Addf(diagnostic.KindParseUnexpectedToken, span, format, args...)
}

func (p *Parser) expect(kind lexer.TokenKind) lexer.Token {
	tok := p.cur()
	if tok.Kind != kind {
		p.errorf(tok.Span, "expected %s, found %s %q", kind, tok.Kind, tok.Literal)
		return tok
	}
	p.advance()
	return tok
}

// Parse parses the whole input into a Program, accumulating diagnostics
// rather than stopping at the first error (spec §7).
func (p *Parser) Parse() (*ast.Program, []diagnostic.Diagnostic) {
	start := p.cur().Span.Start
	var exprs []ast.Expr

	p.skipSeparators()
	for p.cur().Kind != lexer.TokenEOF {
		before := p.pos
		e := p.parseTopLevel()
		if e != nil {
			exprs = append(exprs, e)
		}
		if p.pos == before {
			// Guard against an infinite loop on an unparseable token.
			p.advance()
		}
		p.skipSeparators()
	}

	end := p.cur().Span.End
	prog := &ast.Program{
		Span:  position.Span{Start: start, End: end},
		Exprs: exprs,
	}
	return prog, p.Diagnostics.Items()
}

func (p *Parser) parseTopLevel() ast.Expr {
	return p.parseExpression(precLowest)
}

// parseExpression is the Pratt core: a prefix parse followed by a
// left-associative infix-operator climb bounded by minPrec.
func (p *Parser) parseExpression(minPrec int) ast.Expr {
	p.skipNewlines()
	left := p.parsePrefix()
	if left == nil {
		return nil
	}

	for {
		p.skipNewlinesBeforeInfix()
		kind := p.cur().Kind
		prec, ok := infixPrecedence[kind]
		if !ok || prec <= minPrec {
			break
		}
		left = p.parseInfix(left, kind)
	}
	return left
}

// skipNewlinesBeforeInfix allows a binary operator to continue on the
// next line without treating the newline as a statement boundary, except
// directly after a call's closing paren this is a no-op either way.
func (p *Parser) skipNewlinesBeforeInfix() {
	i := p.pos
	for i < len(p.toks) && p.toks[i].Kind == lexer.TokenNewline {
		i++
	}
	if i < len(p.toks) {
		if _, ok := infixPrecedence[p.toks[i].Kind]; ok {
			p.pos = i
		}
	}
}

func (p *Parser) parsePrefix() ast.Expr {
	tok := p.cur()
	switch tok.Kind {
	case lexer.TokenInt:
		p.advance()
		v, _ := strconv.ParseInt(tok.Literal, 10, 64)
		return &ast.IntLiteral{Span: tok.Span, Value: v}
	case lexer.TokenRational:
		p.advance()
		parts := strings.SplitN(tok.Literal, "/", 2)
		num, _ := strconv.ParseInt(parts[0], 10, 64)
		den := int64(1)
		if len(parts) == 2 {
			den, _ = strconv.ParseInt(parts[1], 10, 64)
		}
		return &ast.RationalLiteral{Span: tok.Span, Num: num, Den: den}
	case lexer.TokenDecimal:
		p.advance()
		v, _ := strconv.ParseFloat(tok.Literal, 64)
		return &ast.DecimalLiteral{Span: tok.Span, Value: v}
	case lexer.TokenString:
		p.advance()
		return &ast.StringLiteral{Span: tok.Span, Value: tok.Literal}
	case lexer.TokenBool:
		p.advance()
		return &ast.BoolLiteral{Span: tok.Span, Value: tok.Literal == "true"}
	case lexer.TokenSymbol:
		p.advance()
		return &ast.SymbolLiteral{Span: tok.Span, Name: tok.Literal}
	case lexer.TokenMinus:
		p.advance()
		operand := p.parseExpression(precUnary)
		return &ast.Application{
			Span: tok.Span.Union(spanOf(operand)),
			Fn:   &ast.Identifier{Span: tok.Span, Name: "neg"},
			Args: []ast.Expr{operand},
		}
	case lexer.TokenNot:
		p.advance()
		operand := p.parseExpression(precUnary)
		return &ast.Application{
			Span: tok.Span.Union(spanOf(operand)),
			Fn:   &ast.Identifier{Span: tok.Span, Name: "not"},
			Args: []ast.Expr{operand},
		}
	case lexer.TokenIdentifier:
		return p.parseIdentifierForm(tok)
	case lexer.TokenLParen:
		return p.parseParenForm()
	case lexer.TokenLBracket:
		return p.parseListLiteral()
	case lexer.TokenBet:
		return p.parseKeywordBet()
	case lexer.TokenLet:
		return p.parseKeywordLet()
	case lexer.TokenIf:
		return p.parseKeywordIf()
	case lexer.TokenMatch:
		return p.parseKeywordMatch()
	case lexer.TokenDo:
		return p.parseKeywordDo()
	case lexer.TokenParallel:
		return p.parseKeywordParallel()
	case lexer.TokenDefine:
		return p.parseKeywordDefine()
	case lexer.TokenLambda:
		return p.parseKeywordLambda()
	case lexer.TokenSample:
		p.advance()
		dist := p.parseExpression(precUnary)
		return &ast.Sample{Span: tok.Span.Union(spanOf(dist)), Dist: dist}
	case lexer.TokenWith:
		return p.parseKeywordWithSeed()
	default:
		p.errorf(tok.Span, "unexpected token %s %q", tok.Kind, tok.Literal)
		p.advance()
		return nil
	}
}

func spanOf(e ast.Expr) position.Span {
	if e == nil {
		return position.Span{}
	}
	return e.NodeSpan()
}

// parseIdentifierForm handles a leading identifier, dispatching to the
// hyphenated named forms (bet-weighted, bet-conditional, bet-lazy) that
// the lexer cannot distinguish from ordinary identifiers by token kind
// alone (spec §4.1: identifiers may contain hyphens).
func (p *Parser) parseIdentifierForm(tok lexer.Token) ast.Expr {
	switch tok.Literal {
	case "bet-weighted":
		return p.parseBetWeighted(tok)
	case "bet-conditional":
		return p.parseBetConditional(tok)
	case "bet-lazy":
		return p.parseBetLazy(tok)
	case "_":
		p.advance()
		return &ast.Identifier{Span: tok.Span, Name: "_"}
	default:
		p.advance()
		return &ast.Identifier{Span: tok.Span, Name: tok.Literal}
	}
}

func (p *Parser) parseInfix(left ast.Expr, kind lexer.TokenKind) ast.Expr {
	if kind == lexer.TokenLParen {
		return p.parseCall(left)
	}

	tok := p.cur()
	prec := infixPrecedence[kind]
	p.advance()
	right := p.parseExpression(prec)

	name := map[lexer.TokenKind]string{
		lexer.TokenOr: "or", lexer.TokenAnd: "and",
		lexer.TokenEq: "=", lexer.TokenLt: "<", lexer.TokenGt: ">",
		lexer.TokenLe: "<=", lexer.TokenGe: ">=",
		lexer.TokenPlus: "+", lexer.TokenMinus: "-",
		lexer.TokenStar: "*", lexer.TokenSlash: "/",
	}[kind]

	return &ast.Application{
		Span: spanOf(left).Union(spanOf(right)),
		Fn:   &ast.Identifier{Span: tok.Span, Name: name},
		Args: []ast.Expr{left, right},
	}
}

func (p *Parser) parseCall(fn ast.Expr) ast.Expr {
	open := p.expect(lexer.TokenLParen)
	var args []ast.Expr
	p.skipNewlines()
	for p.cur().Kind != lexer.TokenRParen && p.cur().Kind != lexer.TokenEOF {
		args = append(args, p.parseExpression(precLowest))
		p.skipNewlines()
		if p.cur().Kind == lexer.TokenComma {
			p.advance()
			p.skipNewlines()
		}
	}
	close := p.expect(lexer.TokenRParen)
	_ = open
	return &ast.Application{Span: spanOf(fn).Union(close.Span), Fn: fn, Args: args}
}

func (p *Parser) parseListLiteral() ast.Expr {
	open := p.expect(lexer.TokenLBracket)
	var elems []ast.Expr
	p.skipNewlines()
	for p.cur().Kind != lexer.TokenRBracket && p.cur().Kind != lexer.TokenEOF {
		elems = append(elems, p.parseExpression(precLowest))
		p.skipNewlines()
		if p.cur().Kind == lexer.TokenComma {
			p.advance()
			p.skipNewlines()
		}
	}
	close := p.expect(lexer.TokenRBracket)
	return &ast.ListLiteral{Span: open.Span.Union(close.Span), Elements: elems}
}

// --- S-expression form ---
//
// parseParenForm decides, after consuming '(', whether the contents are a
// special form (recognized keyword or hyphenated form name), an
// application `(f arg*)`, or a parenthesized grouping `(expr)`.
func (p *Parser) parseParenForm() ast.Expr {
	open := p.expect(lexer.TokenLParen)

	switch p.cur().Kind {
	case lexer.TokenBet:
		return p.finishSExprBet(open)
	case lexer.TokenLet:
		return p.finishSExprLet(open)
	case lexer.TokenIf:
		return p.finishSExprIf(open)
	case lexer.TokenMatch:
		return p.finishSExprMatch(open)
	case lexer.TokenDo:
		return p.finishSExprDo(open)
	case lexer.TokenParallel:
		return p.finishSExprParallel(open)
	case lexer.TokenDefine:
		return p.finishSExprDefine(open)
	case lexer.TokenLambda:
		return p.finishSExprLambda(open)
	case lexer.TokenSample:
		p.advance()
		dist := p.parseExpression(precLowest)
		close := p.expect(lexer.TokenRParen)
		return &ast.Sample{Span: open.Span.Union(close.Span), Dist: dist}
	case lexer.TokenWith:
		return p.finishSExprWithSeed(open)
	case lexer.TokenIdentifier:
		switch p.cur().Literal {
		case "bet-weighted":
			tok := p.cur()
			inner := p.parseBetWeighted(tok)
			close := p.expect(lexer.TokenRParen)
			if bw, ok := inner.(*ast.BetWeighted); ok {
				bw.Span = open.Span.Union(close.Span)
			}
			return inner
		case "bet-conditional":
			tok := p.cur()
			inner := p.parseBetConditionalArgs(tok)
			close := p.expect(lexer.TokenRParen)
			inner.Span = open.Span.Union(close.Span)
			return inner
		case "bet-lazy":
			tok := p.cur()
			inner := p.parseBetLazyArgs(tok)
			close := p.expect(lexer.TokenRParen)
			inner.Span = open.Span.Union(close.Span)
			return inner
		}
	}

	// An operator in head position, e.g. `(+ x y)`, is applied to the
	// remaining expressions. A leading `-` keeps its prefix-negation
	// reading, so `(-5 + 2)` still parses as a grouping.
	if _, isOp := infixPrecedence[p.cur().Kind]; isOp && p.cur().Kind != lexer.TokenMinus && p.cur().Kind != lexer.TokenLParen {
		opTok := p.cur()
		p.advance()
		var args []ast.Expr
		for p.cur().Kind != lexer.TokenRParen && p.cur().Kind != lexer.TokenEOF {
			args = append(args, p.parseExpression(precLowest))
			p.skipNewlines()
		}
		close := p.expect(lexer.TokenRParen)
		return &ast.Application{Span: open.Span.Union(close.Span), Fn: &ast.Identifier{Span: opTok.Span, Name: opTok.Literal}, Args: args}
	}

	if p.cur().Kind == lexer.TokenRParen {
		close := p.expect(lexer.TokenRParen)
		return &ast.ListLiteral{Span: open.Span.Union(close.Span)}
	}

	first := p.parseExpression(precLowest)
	p.skipNewlines()
	if p.cur().Kind == lexer.TokenRParen {
		close := p.expect(lexer.TokenRParen)
		_ = close
		return first
	}

	var args []ast.Expr
	for p.cur().Kind != lexer.TokenRParen && p.cur().Kind != lexer.TokenEOF {
		args = append(args, p.parseExpression(precLowest))
		p.skipNewlines()
	}
	close := p.expect(lexer.TokenRParen)
	return &ast.Application{Span: open.Span.Union(close.Span), Fn: first, Args: args}
}

// --- bet / bet-weighted / bet-conditional / bet-lazy ---

func (p *Parser) parseKeywordBet() ast.Expr {
	tok := p.expect(lexer.TokenBet)
	a := p.parseExpression(precLowest)
	b := p.parseExpression(precLowest)
	c := p.parseExpression(precLowest)
	end := p.expect(lexer.TokenEnd)
	return &ast.Bet{Span: tok.Span.Union(end.Span), A: a, B: b, C: c}
}

func (p *Parser) finishSExprBet(open lexer.Token) ast.Expr {
	p.advance() // 'bet'
	a := p.parseExpression(precLowest)
	b := p.parseExpression(precLowest)
	c := p.parseExpression(precLowest)
	close := p.expect(lexer.TokenRParen)
	return &ast.Bet{Span: open.Span.Union(close.Span), A: a, B: b, C: c}
}

func (p *Parser) parseBetWeighted(tok lexer.Token) ast.Expr {
	p.advance() // 'bet-weighted'
	var outcomes []ast.WeightedOutcome
	for p.cur().Kind == lexer.TokenLParen {
		pstart := p.cur()
		p.advance()
		v := p.parseExpression(precLowest)
		if p.cur().Kind == lexer.TokenComma {
			p.advance()
		}
		w := p.parseExpression(precLowest)
		close := p.expect(lexer.TokenRParen)
		outcomes = append(outcomes, ast.WeightedOutcome{Span: pstart.Span.Union(close.Span), Value: v, Weight: w})
		if p.cur().Kind == lexer.TokenComma {
			p.advance()
		}
		p.skipNewlines()
	}
	end := p.cur().Span
	if p.cur().Kind == lexer.TokenEnd {
		end = p.cur().Span
		p.advance()
	}
	return &ast.BetWeighted{Span: tok.Span.Union(end), Outcomes: outcomes}
}

func (p *Parser) parseBetConditional(tok lexer.Token) ast.Expr {
	r := p.parseBetConditionalArgs(tok)
	end := p.expect(lexer.TokenEnd)
	r.Span = tok.Span.Union(end.Span)
	return r
}

func (p *Parser) parseBetConditionalArgs(tok lexer.Token) *ast.BetConditional {
	p.advance() // 'bet-conditional'
	pred := p.parseExpression(precLowest)
	t := p.parseExpression(precLowest)
	f := p.parseExpression(precLowest)
	u := p.parseExpression(precLowest)
	return &ast.BetConditional{Span: tok.Span, Pred: pred, True: t, False: f, Unconditional: u}
}

func (p *Parser) parseBetLazy(tok lexer.Token) ast.Expr {
	r := p.parseBetLazyArgs(tok)
	end := p.expect(lexer.TokenEnd)
	r.Span = tok.Span.Union(end.Span)
	return r
}

func (p *Parser) parseBetLazyArgs(tok lexer.Token) *ast.BetLazy {
	p.advance() // 'bet-lazy'
	a := p.parseExpression(precLowest)
	b := p.parseExpression(precLowest)
	c := p.parseExpression(precLowest)
	return &ast.BetLazy{Span: tok.Span, ThunkA: a, ThunkB: b, ThunkC: c}
}

// --- let ---

func (p *Parser) parseKeywordLet() ast.Expr {
	tok := p.expect(lexer.TokenLet)
	bindings := p.parseLetBindings()
	p.expect(lexer.TokenIn)
	body := p.parseExpression(precLowest)
	end := p.expect(lexer.TokenEnd)
	return &ast.Let{Span: tok.Span.Union(end.Span), Bindings: bindings, Body: body}
}

func (p *Parser) parseLetBindings() []ast.Binding {
	var bindings []ast.Binding
	for {
		nameTok := p.expect(lexer.TokenIdentifier)
		p.expect(lexer.TokenEq)
		v := p.parseExpression(precLowest)
		bindings = append(bindings, ast.Binding{Span: nameTok.Span.Union(spanOf(v)), Name: nameTok.Literal, Value: v})
		if p.cur().Kind == lexer.TokenComma {
			p.advance()
			continue
		}
		break
	}
	return bindings
}

func (p *Parser) finishSExprLet(open lexer.Token) ast.Expr {
	p.advance() // 'let'
	p.expect(lexer.TokenLParen)
	var bindings []ast.Binding
	for p.cur().Kind == lexer.TokenLParen {
		bstart := p.cur()
		p.advance()
		nameTok := p.expect(lexer.TokenIdentifier)
		v := p.parseExpression(precLowest)
		close := p.expect(lexer.TokenRParen)
		bindings = append(bindings, ast.Binding{Span: bstart.Span.Union(close.Span), Name: nameTok.Literal, Value: v})
	}
	p.expect(lexer.TokenRParen)
	body := p.parseExpression(precLowest)
	close := p.expect(lexer.TokenRParen)
	return &ast.Let{Span: open.Span.Union(close.Span), Bindings: bindings, Body: body}
}

// --- if ---

func (p *Parser) parseKeywordIf() ast.Expr {
	tok := p.expect(lexer.TokenIf)
	cond := p.parseExpression(precLowest)
	p.expect(lexer.TokenThen)
	then := p.parseExpression(precLowest)
	p.expect(lexer.TokenElse)
	els := p.parseExpression(precLowest)
	end := p.expect(lexer.TokenEnd)
	return &ast.If{Span: tok.Span.Union(end.Span), Cond: cond, Then: then, Else: els}
}

func (p *Parser) finishSExprIf(open lexer.Token) ast.Expr {
	p.advance() // 'if'
	cond := p.parseExpression(precLowest)
	then := p.parseExpression(precLowest)
	els := p.parseExpression(precLowest)
	close := p.expect(lexer.TokenRParen)
	return &ast.If{Span: open.Span.Union(close.Span), Cond: cond, Then: then, Else: els}
}

// --- match ---

func (p *Parser) parseKeywordMatch() ast.Expr {
	tok := p.expect(lexer.TokenMatch)
	scrutinee := p.parseExpression(precLowest)
	p.expect(lexer.TokenWith)
	arms := p.parseMatchArms(lexer.TokenEnd)
	end := p.expect(lexer.TokenEnd)
	return &ast.Match{Span: tok.Span.Union(end.Span), Scrutinee: scrutinee, Arms: arms}
}

func (p *Parser) finishSExprMatch(open lexer.Token) ast.Expr {
	p.advance() // 'match'
	scrutinee := p.parseExpression(precLowest)
	var arms []ast.MatchArm
	for p.cur().Kind == lexer.TokenLParen {
		astart := p.cur()
		p.advance()
		pat := p.parsePattern()
		body := p.parseExpression(precLowest)
		close := p.expect(lexer.TokenRParen)
		arms = append(arms, ast.MatchArm{Span: astart.Span.Union(close.Span), Pattern: pat, Body: body})
	}
	close := p.expect(lexer.TokenRParen)
	return &ast.Match{Span: open.Span.Union(close.Span), Scrutinee: scrutinee, Arms: arms}
}

func (p *Parser) parseMatchArms(terminator lexer.TokenKind) []ast.MatchArm {
	var arms []ast.MatchArm
	p.skipNewlines()
	for p.cur().Kind != terminator && p.cur().Kind != lexer.TokenEOF {
		astart := p.cur()
		pat := p.parsePattern()
		p.expect(lexer.TokenArrow)
		body := p.parseExpression(precLowest)
		arms = append(arms, ast.MatchArm{Span: astart.Span.Union(spanOf(body)), Pattern: pat, Body: body})
		p.skipNewlines()
		if p.cur().Kind == lexer.TokenPipe {
			p.advance()
			p.skipNewlines()
			continue
		}
		break
	}
	return arms
}

func (p *Parser) parsePattern() ast.Pattern {
	tok := p.cur()
	switch tok.Kind {
	case lexer.TokenIdentifier:
		if tok.Literal == "_" {
			p.advance()
			return &ast.WildcardPattern{Span: tok.Span}
		}
		if p.peekAt(1).Kind == lexer.TokenLParen {
			p.advance()
			p.advance()
			var args []ast.Pattern
			for p.cur().Kind != lexer.TokenRParen && p.cur().Kind != lexer.TokenEOF {
				args = append(args, p.parsePattern())
				if p.cur().Kind == lexer.TokenComma {
					p.advance()
				}
			}
			close := p.expect(lexer.TokenRParen)
			return &ast.TagPattern{Span: tok.Span.Union(close.Span), Tag: tok.Literal, Args: args}
		}
		p.advance()
		return &ast.VarPattern{Span: tok.Span, Name: tok.Literal}
	case lexer.TokenLBracket:
		p.advance()
		var elems []ast.Pattern
		for p.cur().Kind != lexer.TokenRBracket && p.cur().Kind != lexer.TokenEOF {
			elems = append(elems, p.parsePattern())
			if p.cur().Kind == lexer.TokenComma {
				p.advance()
			}
		}
		close := p.expect(lexer.TokenRBracket)
		return &ast.ListPattern{Span: tok.Span.Union(close.Span), Elements: elems}
	case lexer.TokenInt, lexer.TokenRational, lexer.TokenDecimal, lexer.TokenString, lexer.TokenBool, lexer.TokenSymbol:
		e := p.parsePrefix()
		return &ast.LiteralPattern{Span: spanOf(e), Value: e}
	default:
		p.errorf(tok.Span, "unexpected token %s in pattern", tok.Kind)
		p.advance()
		return &ast.WildcardPattern{Span: tok.Span}
	}
}

// --- do ---

func (p *Parser) parseKeywordDo() ast.Expr {
	tok := p.expect(lexer.TokenDo)
	stmts, ret := p.parseDoBody(lexer.TokenEnd)
	end := p.expect(lexer.TokenEnd)
	return &ast.Do{Span: tok.Span.Union(end.Span), Stmts: stmts, Ret: ret}
}

func (p *Parser) finishSExprDo(open lexer.Token) ast.Expr {
	p.advance() // 'do'
	stmts, ret := p.parseDoBody(lexer.TokenRParen)
	close := p.expect(lexer.TokenRParen)
	return &ast.Do{Span: open.Span.Union(close.Span), Stmts: stmts, Ret: ret}
}

func (p *Parser) parseDoBody(terminator lexer.TokenKind) ([]ast.Stmt, ast.Expr) {
	var stmts []ast.Stmt
	p.skipSeparators()
	for p.cur().Kind != lexer.TokenReturn && p.cur().Kind != terminator && p.cur().Kind != lexer.TokenEOF {
		sstart := p.cur()
		name := ""
		if p.cur().Kind == lexer.TokenIdentifier && p.peekAt(1).Kind == lexer.TokenBind {
			name = p.cur().Literal
			p.advance()
			p.advance()
		}
		e := p.parseExpression(precLowest)
		stmts = append(stmts, ast.Stmt{Span: sstart.Span.Union(spanOf(e)), Name: name, Expr: e})
		p.skipSeparators()
	}
	var ret ast.Expr
	if p.cur().Kind == lexer.TokenReturn {
		p.advance()
		ret = p.parseExpression(precLowest)
		p.skipSeparators()
	} else {
		p.errorf(p.cur().Span, "do block missing 'return' expression")
	}
	return stmts, ret
}

// --- parallel ---

func (p *Parser) parseKeywordParallel() ast.Expr {
	tok := p.expect(lexer.TokenParallel)
	n := p.parseExpression(precCall)
	p.expect(lexer.TokenDo)
	body := p.parseExpression(precLowest)
	end := p.expect(lexer.TokenEnd)
	return &ast.Parallel{Span: tok.Span.Union(end.Span), N: n, Body: body}
}

func (p *Parser) finishSExprParallel(open lexer.Token) ast.Expr {
	p.advance() // 'parallel'
	n := p.parseExpression(precLowest)
	body := p.parseExpression(precLowest)
	close := p.expect(lexer.TokenRParen)
	return &ast.Parallel{Span: open.Span.Union(close.Span), N: n, Body: body}
}

// --- define ---

func (p *Parser) parseKeywordDefine() ast.Expr {
	tok := p.expect(lexer.TokenDefine)
	nameTok := p.expect(lexer.TokenIdentifier)
	p.expect(lexer.TokenEq)
	v := p.parseExpression(precLowest)
	return &ast.Define{Span: tok.Span.Union(spanOf(v)), Name: nameTok.Literal, Value: v}
}

func (p *Parser) finishSExprDefine(open lexer.Token) ast.Expr {
	p.advance() // 'define'
	nameTok := p.expect(lexer.TokenIdentifier)
	v := p.parseExpression(precLowest)
	close := p.expect(lexer.TokenRParen)
	return &ast.Define{Span: open.Span.Union(close.Span), Name: nameTok.Literal, Value: v}
}

// --- lambda ---

func (p *Parser) parseKeywordLambda() ast.Expr {
	tok := p.expect(lexer.TokenLambda)
	params := p.parseParamList()
	body := p.parseExpression(precLowest)
	end := p.expect(lexer.TokenEnd)
	return &ast.Lambda{Span: tok.Span.Union(end.Span), Params: params, Body: body}
}

func (p *Parser) finishSExprLambda(open lexer.Token) ast.Expr {
	p.advance() // 'lambda'
	params := p.parseParamList()
	body := p.parseExpression(precLowest)
	close := p.expect(lexer.TokenRParen)
	return &ast.Lambda{Span: open.Span.Union(close.Span), Params: params, Body: body}
}

func (p *Parser) parseParamList() []string {
	p.expect(lexer.TokenLParen)
	var params []string
	for p.cur().Kind != lexer.TokenRParen && p.cur().Kind != lexer.TokenEOF {
		tok := p.expect(lexer.TokenIdentifier)
		params = append(params, tok.Literal)
		if p.cur().Kind == lexer.TokenComma {
			p.advance()
		}
	}
	p.expect(lexer.TokenRParen)
	return params
}

// --- with seed ---

func (p *Parser) parseKeywordWithSeed() ast.Expr {
	tok := p.expect(lexer.TokenWith)
	p.expect(lexer.TokenSeed)
	seed := p.parseExpression(precCall)
	p.expect(lexer.TokenDo)
	body := p.parseExpression(precLowest)
	end := p.expect(lexer.TokenEnd)
	return &ast.WithSeed{Span: tok.Span.Union(end.Span), Seed: seed, Body: body}
}

func (p *Parser) finishSExprWithSeed(open lexer.Token) ast.Expr {
	p.advance() // 'with'
	p.expect(lexer.TokenSeed)
	seed := p.parseExpression(precLowest)
	body := p.parseExpression(precLowest)
	close := p.expect(lexer.TokenRParen)
	return &ast.WithSeed{Span: open.Span.Union(close.Span), Seed: seed, Body: body}
}
