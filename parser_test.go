// parser_test.go
package lim

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

// --- helpers ---------------------------------------------------------------

func mustParse(t *testing.T, src string) S {
	t.Helper()
	prog, perrs, err := Parse(src)
	if err != nil {
		t.Fatalf("lex error: %v\nsource:\n%s", err, src)
	}
	if len(perrs) != 0 {
		t.Fatalf("parse errors: %v\nsource:\n%s", perrs, src)
	}
	return prog
}

func parseErrs(t *testing.T, src string) []*ParseError {
	t.Helper()
	_, perrs, err := Parse(src)
	if err != nil {
		t.Fatalf("lex error: %v\nsource:\n%s", err, src)
	}
	if len(perrs) == 0 {
		t.Fatalf("expected parse errors\nsource:\n%s", src)
	}
	return perrs
}

func wantTag(t *testing.T, n S, tag string) {
	t.Helper()
	if len(n) == 0 {
		t.Fatalf("empty node, want tag %q", tag)
	}
	if got := n[0].(string); got != tag {
		b, _ := json.MarshalIndent(n, "", "  ")
		t.Fatalf("want tag %q, got %q\nnode:\n%s", tag, got, string(b))
	}
}

func head(n S) string { return n[0].(string) }

// stmt returns the i-th top-level statement of a program node.
func stmt(prog S, i int) S { return prog[i+1].(S) }

// exprOf unwraps ("expr", sp, e).
func exprOf(t *testing.T, st S) S {
	t.Helper()
	wantTag(t, st, "expr")
	return st[2].(S)
}

// dump renders a node without spans so shape assertions stay readable.
func dump(n S) string {
	var b strings.Builder
	writeNode(&b, n)
	return b.String()
}

func writeNode(b *strings.Builder, n S) {
	b.WriteByte('(')
	for i, part := range n {
		if i > 0 {
			b.WriteByte(' ')
		}
		switch v := part.(type) {
		case S:
			writeNode(b, v)
		case Span:
			b.WriteByte('_')
		case string:
			b.WriteString(v)
		default:
			b.WriteString(jsonish(v))
		}
	}
	b.WriteByte(')')
}

func jsonish(v any) string {
	raw, _ := json.Marshal(v)
	return string(raw)
}

func wantShape(t *testing.T, n S, shape string) {
	t.Helper()
	if got := dump(n); got != shape {
		t.Fatalf("shape mismatch:\nwant %s\ngot  %s", shape, got)
	}
}

// --- statements ------------------------------------------------------------

func Test_Parser_LetForms(t *testing.T) {
	prog := mustParse(t, `let a; let b = 2;`)
	wantShape(t, stmt(prog, 0), "(let _ a)")
	wantShape(t, stmt(prog, 1), "(let _ b (num 2))")
}

func Test_Parser_FuncDecl(t *testing.T) {
	prog := mustParse(t, `
func add(a, b) {
    a + b;
}
`)
	fn := stmt(prog, 0)
	wantShape(t, fn, "(fun _ add (params a b) (expr _ (binop + (id a) (id b))))")
}

func Test_Parser_FuncDeclNoParams(t *testing.T) {
	prog := mustParse(t, `func nop() { }`)
	wantShape(t, stmt(prog, 0), "(fun _ nop (params))")
}

func Test_Parser_IfElse(t *testing.T) {
	prog := mustParse(t, `if (x < 10) { x = x + 1; } else { x = 0; }`)
	node := stmt(prog, 0)
	wantTag(t, node, "if")
	wantShape(t, node[2].(S), "(binop < (id x) (num 10))")
	wantTag(t, node[3].(S), "block")
	wantTag(t, node[4].(S), "block")
}

func Test_Parser_IfWithoutElse(t *testing.T) {
	prog := mustParse(t, `if (ok) x = 1;`)
	node := stmt(prog, 0)
	wantTag(t, node, "if")
	if len(node) != 4 {
		t.Fatalf("expected no else branch: %s", dump(node))
	}
}

func Test_Parser_While(t *testing.T) {
	prog := mustParse(t, `while (n > 0) n = n - 1;`)
	wantShape(t, stmt(prog, 0),
		"(while _ (binop > (id n) (num 0)) (assign _ n = (binop - (id n) (num 1))))")
}

func Test_Parser_Block(t *testing.T) {
	prog := mustParse(t, `{ let a = 1; a; }`)
	node := stmt(prog, 0)
	wantTag(t, node, "block")
	if len(node) != 4 {
		t.Fatalf("block child count: %s", dump(node))
	}
}

func Test_Parser_AssignmentForms(t *testing.T) {
	prog := mustParse(t, `x = 1; x += 2; x -= 3; x *= 4; x /= 5;`)
	ops := []string{"=", "+=", "-=", "*=", "/="}
	for i, op := range ops {
		node := stmt(prog, i)
		wantTag(t, node, "assign")
		if node[3].(string) != op {
			t.Fatalf("statement %d: op %q, want %q", i, node[3], op)
		}
	}
}

func Test_Parser_AssignmentLookahead(t *testing.T) {
	// a leading identifier NOT followed by an assignment operator is a
	// plain expression statement
	prog := mustParse(t, `x == 1; f(x); x;`)
	wantTag(t, exprOf(t, stmt(prog, 0)), "binop")
	wantTag(t, exprOf(t, stmt(prog, 1)), "call")
	wantTag(t, exprOf(t, stmt(prog, 2)), "id")
}

// --- expressions -----------------------------------------------------------

func Test_Parser_Precedence(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{`2 + 3 * 4;`, "(binop + (num 2) (binop * (num 3) (num 4)))"},
		{`(2 + 3) * 4;`, "(binop * (group (binop + (num 2) (num 3))) (num 4))"},
		{`10 - 3 - 2;`, "(binop - (binop - (num 10) (num 3)) (num 2))"},
		{`20 / 4 / 5;`, "(binop / (binop / (num 20) (num 4)) (num 5))"},
		{`a or b and c;`, "(binop or (id a) (binop and (id b) (id c)))"},
		{`a == b < c;`, "(binop == (id a) (binop < (id b) (id c)))"},
		{`not a or b;`, "(binop or (unop not (id a)) (id b))"},
		{`-a * b;`, "(binop * (unop - (id a)) (id b))"},
		{`-f(x);`, "(unop - (call (id f) (id x)))"},
		{`!ok;`, "(unop ! (id ok))"},
	}
	for _, c := range cases {
		prog := mustParse(t, c.src)
		got := dump(exprOf(t, stmt(prog, 0)))
		if got != c.want {
			t.Fatalf("source %q:\nwant %s\ngot  %s", c.src, c.want, got)
		}
	}
}

func Test_Parser_CallChaining(t *testing.T) {
	prog := mustParse(t, `f(1)(2, 3);`)
	wantShape(t, exprOf(t, stmt(prog, 0)),
		"(call (call (id f) (num 1)) (num 2) (num 3))")
}

func Test_Parser_CallNoArgs(t *testing.T) {
	prog := mustParse(t, `clock();`)
	wantShape(t, exprOf(t, stmt(prog, 0)), "(call (id clock))")
}

func Test_Parser_StatementSpans(t *testing.T) {
	prog := mustParse(t, "let a = 1;\n  a = 2;")
	second := stmt(prog, 1)
	sp := second[1].(Span)
	if sp.Line != 2 || sp.Col != 2 {
		t.Fatalf("span: got %d:%d, want 2:2", sp.Line, sp.Col)
	}
}

// --- error recovery --------------------------------------------------------

func Test_Parser_ErrorBatch(t *testing.T) {
	// two independent faults with a valid statement between them: both are
	// reported, exactly once each
	src := `
let = 1;
let ok = 2;
let 3foo;
`
	perrs := parseErrs(t, src)
	if len(perrs) != 2 {
		t.Fatalf("want 2 errors, got %d: %v", len(perrs), perrs)
	}
	if perrs[0].Line != 2 || perrs[1].Line != 4 {
		t.Fatalf("error lines: %d, %d", perrs[0].Line, perrs[1].Line)
	}
}

func Test_Parser_RecoveryKeepsValidStatements(t *testing.T) {
	src := `
let = broken;
let ok = 1;
`
	prog, perrs, err := Parse(src)
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}
	if len(perrs) != 1 {
		t.Fatalf("want 1 error, got %d: %v", len(perrs), perrs)
	}
	// the broken declaration contributes no statement; the valid one stays
	if len(prog) != 2 {
		t.Fatalf("program statements: %s", dump(prog))
	}
	wantShape(t, stmt(prog, 0), "(let _ ok (num 1))")
}

func Test_Parser_RecoveryAtStatementKeyword(t *testing.T) {
	// no ';' before the next statement keyword: recovery stops at 'while'
	src := `let x 5 while (x) x = 0;`
	prog, perrs, err := Parse(src)
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}
	if len(perrs) != 1 {
		t.Fatalf("want 1 error, got %d: %v", len(perrs), perrs)
	}
	wantTag(t, stmt(prog, 0), "while")
}

func Test_Parser_ErrorMessages(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{`f(1;`, "Expected ')' after arguments."},
		{`1 + 2`, "Expected ';' after expression."},
		{`let ;`, "Expected variable name after 'let'."},
		{`if x) {}`, "Expected '(' after 'if'."},
		{`1 + ;`, "Expected expression."},
	}
	for _, c := range cases {
		perrs := parseErrs(t, c.src)
		if perrs[0].Msg != c.want {
			t.Fatalf("source %q: message %q, want %q", c.src, perrs[0].Msg, c.want)
		}
	}
}

func Test_Parser_ErrorTextNamesOffender(t *testing.T) {
	perrs := parseErrs(t, `f(1;`)
	if got := perrs[0].Error(); !strings.Contains(got, "(found ';')") {
		t.Fatalf("error text: %q", got)
	}
	perrs = parseErrs(t, `1 + 2`)
	if got := perrs[0].Error(); !strings.Contains(got, "(at end of input)") {
		t.Fatalf("error text: %q", got)
	}
}

// --- interactive mode ------------------------------------------------------

func Test_Parser_InteractiveIncomplete(t *testing.T) {
	for _, src := range []string{
		`func f(a, b) {`,
		`{ let a = 1;`,
		`if (a == 1) {`,
		`f(1, 2`,
		`1 + 2`,
	} {
		_, perrs, err := ParseInteractive(src)
		if err != nil {
			t.Fatalf("lex error: %v", err)
		}
		if !IsIncomplete(perrs) {
			t.Fatalf("source %q: want incomplete, got %v", src, perrs)
		}
	}
}

func Test_Parser_InteractiveCompleteFault(t *testing.T) {
	// a mid-input fault is a plain error even interactively
	_, perrs, err := ParseInteractive(`let = 1;`)
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}
	if len(perrs) == 0 || IsIncomplete(perrs) {
		t.Fatalf("want a non-incomplete error, got %v", perrs)
	}
}

func Test_Parser_InteractiveCleanParse(t *testing.T) {
	prog, perrs, err := ParseInteractive(`1 + 2;`)
	if err != nil || len(perrs) != 0 {
		t.Fatalf("unexpected errors: %v %v", perrs, err)
	}
	if !reflect.DeepEqual(head(stmt(prog, 0)), "expr") {
		t.Fatalf("statement: %s", dump(stmt(prog, 0)))
	}
}
