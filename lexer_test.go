// lexer_test.go
package lim

import (
	"reflect"
	"strings"
	"testing"
)

func toks(t *testing.T, src string) []Token {
	t.Helper()
	l := NewLexer(src)
	ts, err := l.Scan()
	if err != nil {
		t.Fatalf("Scan error: %v", err)
	}
	return ts
}

func typesWithoutEOF(tokens []Token) []TokenType {
	if len(tokens) == 0 {
		return nil
	}
	end := len(tokens)
	if tokens[end-1].Type == EOF {
		end--
	}
	out := make([]TokenType, 0, end)
	for i := 0; i < end; i++ {
		out = append(out, tokens[i].Type)
	}
	return out
}

func wantTypes(t *testing.T, src string, want []TokenType) []Token {
	t.Helper()
	got := toks(t, src)
	gotTypes := typesWithoutEOF(got)
	if !reflect.DeepEqual(gotTypes, want) {
		t.Fatalf("\nsource:\n%s\nwant types:\n%v\ngot types:\n%v\n", src, want, gotTypes)
	}
	return got
}

func Test_Lexer_LetDeclaration(t *testing.T) {
	src := `let x = 1.5;`
	got := wantTypes(t, src, []TokenType{LET, ID, ASSIGN, NUMBER, SEMICOLON})
	if got[1].Literal.(string) != "x" {
		t.Fatalf("identifier literal: got %v", got[1].Literal)
	}
	if got[3].Literal.(float64) != 1.5 {
		t.Fatalf("number literal: got %v", got[3].Literal)
	}
}

func Test_Lexer_FuncDeclaration(t *testing.T) {
	src := `
// doubles its argument
func double(n) {
    n * 2;
}
`
	wantTypes(t, src, []TokenType{
		FUNC, ID, LPAREN, ID, RPAREN, LBRACE,
		ID, STAR, NUMBER, SEMICOLON,
		RBRACE,
	})
}

func Test_Lexer_AllOperators(t *testing.T) {
	src := `+ - * / = += -= *= /= == != < <= > >= !`
	wantTypes(t, src, []TokenType{
		PLUS, MINUS, STAR, SLASH,
		ASSIGN, PLUS_ASSIGN, MINUS_ASSIGN, STAR_ASSIGN, SLASH_ASSIGN,
		EQ, NEQ, LESS, LESS_EQ, GREATER, GREATER_EQ, BANG,
	})
}

func Test_Lexer_KeywordsAndBooleans(t *testing.T) {
	src := `let func if else while and or not true false truthy`
	got := wantTypes(t, src, []TokenType{
		LET, FUNC, IF, ELSE, WHILE, AND, OR, NOT, BOOLEAN, BOOLEAN, ID,
	})
	if got[8].Literal.(bool) != true || got[9].Literal.(bool) != false {
		t.Fatalf("boolean literals: %v, %v", got[8].Literal, got[9].Literal)
	}
	// keyword prefix does not swallow the longer identifier
	if got[10].Literal.(string) != "truthy" {
		t.Fatalf("identifier literal: got %v", got[10].Literal)
	}
}

func Test_Lexer_StringEscapes(t *testing.T) {
	src := `"a\"b\\c\nd\re\tf"`
	got := wantTypes(t, src, []TokenType{STRING})
	want := "a\"b\\c\nd\re\tf"
	if got[0].Literal.(string) != want {
		t.Fatalf("decoded string: got %q want %q", got[0].Literal, want)
	}
}

func Test_Lexer_StringUnicode(t *testing.T) {
	got := wantTypes(t, `"héllo ☃"`, []TokenType{STRING})
	if got[0].Literal.(string) != "héllo ☃" {
		t.Fatalf("decoded string: got %q", got[0].Literal)
	}
}

func Test_Lexer_LineComments(t *testing.T) {
	src := `
let a = 1; // trailing comment
// whole-line comment
let b = 2;
`
	wantTypes(t, src, []TokenType{
		LET, ID, ASSIGN, NUMBER, SEMICOLON,
		LET, ID, ASSIGN, NUMBER, SEMICOLON,
	})
}

func Test_Lexer_FractionalNumber(t *testing.T) {
	got := wantTypes(t, `1.25`, []TokenType{NUMBER})
	if got[0].Literal.(float64) != 1.25 {
		t.Fatalf("number literal: got %v", got[0].Literal)
	}
}

func Test_Lexer_Positions(t *testing.T) {
	src := "let x = 1;\nx = 2;"
	got := toks(t, src)
	// second-line "x" starts at line 2, column 0
	var tok Token
	for _, tk := range got {
		if tk.Type == ID && tk.Line == 2 {
			tok = tk
			break
		}
	}
	if tok.Line != 2 || tok.Col != 0 {
		t.Fatalf("position: got %d:%d", tok.Line, tok.Col)
	}
}

func Test_Lexer_PositionsAfterString(t *testing.T) {
	// column bookkeeping must stay exact across rescanned tokens
	got := toks(t, `"ab" x`)
	id := got[1]
	if id.Type != ID || id.Line != 1 || id.Col != 5 {
		t.Fatalf("position after string: got %v at %d:%d", id.Type, id.Line, id.Col)
	}
}

func Test_Lexer_RoundTripLexemes(t *testing.T) {
	// concatenating lexemes with spacing re-lexes to the same token kinds
	src := `let total = (a + b) * 2; if (total >= 10) { println("big"); }`
	first := toks(t, src)

	parts := make([]string, 0, len(first))
	for _, tk := range first {
		if tk.Type == EOF {
			continue
		}
		parts = append(parts, tk.Lexeme)
	}
	second := toks(t, strings.Join(parts, " "))

	if !reflect.DeepEqual(typesWithoutEOF(first), typesWithoutEOF(second)) {
		t.Fatalf("token kinds changed across round trip:\n%v\n%v",
			typesWithoutEOF(first), typesWithoutEOF(second))
	}
}

func Test_Lexer_AlwaysEndsWithEOF(t *testing.T) {
	for _, src := range []string{"", "   ", "// only a comment", "let x = 1;"} {
		got := toks(t, src)
		if len(got) == 0 || got[len(got)-1].Type != EOF {
			t.Fatalf("source %q: token stream does not end with EOF: %v", src, got)
		}
		for _, tk := range got[:len(got)-1] {
			if tk.Type == EOF {
				t.Fatalf("source %q: interior EOF token", src)
			}
		}
	}
}

func Test_Lexer_Errors(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{`"open`, "not terminated"},
		{"\"line\nbreak\"", "end of line"},
		{`"bad \q escape"`, "invalid escape"},
		{`let x = @;`, "unexpected character"},
	}
	for _, c := range cases {
		l := NewLexer(c.src)
		_, err := l.Scan()
		if err == nil {
			t.Fatalf("source %q: expected a lexical error", c.src)
		}
		le, ok := err.(*LexError)
		if !ok {
			t.Fatalf("source %q: error type %T", c.src, err)
		}
		if !strings.Contains(le.Msg, c.want) {
			t.Fatalf("source %q: message %q does not mention %q", c.src, le.Msg, c.want)
		}
	}
}
