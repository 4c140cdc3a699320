package lexer

import (
	"strings"
	"testing"
)

func TestBasicTokens(t *testing.T) {
	input := `(bet a b c)`

	tests := []struct {
		expectedKind    TokenKind
		expectedLiteral string
	}{
		{TokenLParen, "("},
		{TokenBet, "bet"},
		{TokenIdentifier, "a"},
		{TokenIdentifier, "b"},
		{TokenIdentifier, "c"},
		{TokenRParen, ")"},
		{TokenEOF, ""},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Kind != tt.expectedKind {
			t.Fatalf("tests[%d] - kind wrong. expected=%s, got=%s", i, tt.expectedKind, tok.Kind)
		}
		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q", i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestNumberLiterals(t *testing.T) {
	input := `42 3/4 0.5 7`

	tests := []struct {
		expectedKind    TokenKind
		expectedLiteral string
	}{
		{TokenInt, "42"},
		{TokenRational, "3/4"},
		{TokenDecimal, "0.5"},
		{TokenInt, "7"},
		{TokenEOF, ""},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Kind != tt.expectedKind {
			t.Fatalf("tests[%d] - kind wrong. expected=%s, got=%s", i, tt.expectedKind, tok.Kind)
		}
		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q", i, tt.expectedLiteral, tok.Literal)
		}
	}
}

// A leading '-' always lexes as TokenMinus, regardless of whether a digit
// follows immediately or after whitespace: negative-literal vs. binary-
// subtraction disambiguation is the parser's job (prefix vs. infix
// position), not the lexer's, so tokenization stays whitespace-insensitive.
func TestMinusAlwaysLexesAsOperator(t *testing.T) {
	for _, input := range []string{"-7", "- 7", "5-3", "5 - 3", "5- 3", "5 -3"} {
		l := New(input)
		foundMinus := false
		for {
			tok := l.NextToken()
			if tok.Kind == TokenEOF {
				break
			}
			if tok.Kind == TokenMinus {
				foundMinus = true
			}
			if tok.Kind == TokenInt && strings.Contains(tok.Literal, "-") {
				t.Fatalf("input %q: Int literal %q must not carry a sign", input, tok.Literal)
			}
		}
		if !foundMinus {
			t.Fatalf("input %q: expected a TokenMinus", input)
		}
	}
}

func TestKeywordFormTokens(t *testing.T) {
	input := "let n = v in body end"

	var kinds []TokenKind
	l := New(input)
	for {
		tok := l.NextToken()
		if tok.Kind == TokenEOF {
			break
		}
		kinds = append(kinds, tok.Kind)
	}

	expected := []TokenKind{TokenLet, TokenIdentifier, TokenEq, TokenIdentifier, TokenIn, TokenIdentifier, TokenEnd}
	if len(kinds) != len(expected) {
		t.Fatalf("expected %d tokens, got %d: %v", len(expected), len(kinds), kinds)
	}
	for i := range expected {
		if kinds[i] != expected[i] {
			t.Fatalf("token %d: expected %s, got %s", i, expected[i], kinds[i])
		}
	}
}

func TestHyphenatedIdentifier(t *testing.T) {
	l := New("bet-weighted")
	tok := l.NextToken()
	if tok.Kind != TokenIdentifier || tok.Literal != "bet-weighted" {
		t.Fatalf("expected identifier 'bet-weighted', got %s %q", tok.Kind, tok.Literal)
	}
}

func TestLineComment(t *testing.T) {
	l := New("; a comment\n42")
	tok := l.NextToken()
	if tok.Kind != TokenNewline {
		t.Fatalf("expected newline after comment, got %s", tok.Kind)
	}
	tok = l.NextToken()
	if tok.Kind != TokenInt || tok.Literal != "42" {
		t.Fatalf("expected int 42 after comment, got %s %q", tok.Kind, tok.Literal)
	}
}

func TestBlockComment(t *testing.T) {
	l := New("#| block\ncomment |# 42")
	tok := l.NextToken()
	if tok.Kind != TokenInt || tok.Literal != "42" {
		t.Fatalf("expected int 42 after block comment, got %s %q", tok.Kind, tok.Literal)
	}
}

func TestUnterminatedString(t *testing.T) {
	l := New(`"unterminated`)
	l.NextToken()
	if !l.Diagnostics.HasErrors() {
		t.Fatalf("expected a diagnostic for unterminated string")
	}
}
