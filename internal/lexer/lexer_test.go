package lexer

import (
	"testing"

	"github.com/AAUP4-Projekt/wrench/internal/token"
)

func TestNextScansDeclaration(t *testing.T) {
	l := New(`var Int x = 1 + 2;`)
	want := []token.Type{token.VAR, token.IDENT, token.IDENT, token.ASSIGN, token.INT, token.PLUS, token.INT, token.SEMI, token.EOF}
	for i, w := range want {
		tok := l.Next()
		if tok.Type != w {
			t.Fatalf("token %d: got %s, want %s", i, tok.Type, w)
		}
	}
}

func TestNextScansStringEscapes(t *testing.T) {
	l := New(`"a\nb"`)
	tok := l.Next()
	if tok.Type != token.STRING || tok.Literal != "a\nb" {
		t.Fatalf("got %+v", tok)
	}
}

func TestNextScansDoubleVsInt(t *testing.T) {
	l := New(`1 1.5`)
	if tok := l.Next(); tok.Type != token.INT {
		t.Fatalf("expected Int, got %s", tok.Type)
	}
	if tok := l.Next(); tok.Type != token.DOUBLE || tok.Literal != "1.5" {
		t.Fatalf("expected Double 1.5, got %+v", tok)
	}
}

func TestNextSkipsLineComments(t *testing.T) {
	l := New("// comment\nvar")
	tok := l.Next()
	if tok.Type != token.VAR {
		t.Fatalf("expected var after comment, got %s", tok.Type)
	}
}

func TestNextScansPipeKeywordAndDoubleStar(t *testing.T) {
	l := New(`t pipe f() ** 2`)
	want := []token.Type{token.IDENT, token.PIPE, token.IDENT, token.LPAREN, token.RPAREN, token.POW, token.INT}
	for i, w := range want {
		if tok := l.Next(); tok.Type != w {
			t.Fatalf("token %d: got %s, want %s", i, tok.Type, w)
		}
	}
}
