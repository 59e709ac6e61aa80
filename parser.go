// parser.go — recursive-descent parser for LIM that produces compact S-expressions.
//
// OVERVIEW
// --------
// This module consumes the token stream produced by the lexer (see lexer.go)
// and builds a compact, Lisp-style S-expression AST. Statements are parsed by
// plain recursive descent; expressions use a Pratt precedence ladder so the
// grammar stays readable:
//
//	or < and < == != < comparisons < + - < * /   (all left-associative)
//	unary ("not" | "-" | "!") binds tighter, right-associative by recursion
//	call chaining f(...)(...) binds tightest, via a postfix loop
//
// Nodes
// -----
// The AST is a tree of S-expressions: []any whose first element is a string
// tag. Statement nodes carry a Span (statement start position) at index 1;
// expression nodes do not.
//
// Expressions:
//
//	("num",  float64)
//	("str",  string)
//	("bool", bool)
//	("id",   name)
//	("group", expr)                  // parenthesized sub-expression
//	("unop",  op, rhs)               // "-", "not", "!"
//	("binop", op, lhs, rhs)          // arithmetic, comparisons, "and", "or"
//	("call",  callee, arg1, ...)
//
// Statements (sp is a Span):
//
//	("let",    sp, name)             // let name;
//	("let",    sp, name, init)       // let name = expr;
//	("fun",    sp, name, ("params", n1, ...), stmt...)  // body kept flat
//	("if",     sp, cond, then)       // optional 4th element: else branch
//	("while",  sp, cond, body)
//	("block",  sp, stmt...)
//	("assign", sp, name, op, value)  // op ∈ = += -= *= /=
//	("expr",   sp, expr)
//
// The program root is ("program", stmt...) with no span; top-level statements
// run directly in the program environment, so the root is not a block scope.
//
// ERROR RECOVERY
// --------------
// Parse errors never abort the parse. Each error is recorded as a
// *ParseError (position, message, offending lexeme) and the parser enters
// panic-mode recovery: the offending token is discarded, then tokens are
// skipped until a ';' has just been consumed or the next token is one of
// 'let', 'func', 'if', 'while'. A failed declaration contributes no
// statement. Recovery is implemented with explicit error returns, not
// panics, so the boundary stays testable.
//
// End-of-input inside any open construct is an "Expected ..." failure, never
// a silent match. In interactive mode such at-EOF failures are flagged
// Incomplete so a REPL can keep reading lines (see IsIncomplete).
//
// Dependencies
// ------------
//   - lexer.go (tokens, LexError)
//   - spans.go (Span)
package lim

import (
	"fmt"
)

////////////////////////////////////////////////////////////////////////////////
//                                  PUBLIC API
////////////////////////////////////////////////////////////////////////////////

// S is an S-expression AST node: a string tag followed by payloads/children.
type S = []any

// L builds a node from a tag and its parts.
func L(tag string, parts ...any) S { return append([]any{tag}, parts...) }

// ParseError is one recoverable syntax fault: the offending token's position
// and lexeme plus a message naming the expected token and construct.
type ParseError struct {
	Line       int // 1-based
	Col        int // 0-based
	Msg        string
	Got        string // offending lexeme ("" at end of input)
	Incomplete bool   // interactive mode: the failure happened at EOF
}

func (e *ParseError) Error() string {
	if e.Got == "" {
		return fmt.Sprintf("PARSE ERROR at %d:%d: %s (at end of input)", e.Line, e.Col+1, e.Msg)
	}
	return fmt.Sprintf("PARSE ERROR at %d:%d: %s (found '%s')", e.Line, e.Col+1, e.Msg, e.Got)
}

// Parse tokenizes and parses a complete LIM source string.
//
// It returns the program root, the accumulated parse errors in source order
// (empty on a clean parse), and a non-nil error only for lexical faults,
// which abort tokenization before parsing starts. A program that produced
// parse errors is partial and must not be interpreted.
func Parse(src string) (S, []*ParseError, error) {
	return parse(src, false)
}

// ParseInteractive parses in REPL-friendly mode: expectation failures at
// end-of-input are flagged Incomplete instead of being plain errors, so the
// caller can prompt for more input.
func ParseInteractive(src string) (S, []*ParseError, error) {
	return parse(src, true)
}

// IsIncomplete reports whether a batch of parse errors means "the source is
// a prefix of something valid": the parse ran off the end of the input.
func IsIncomplete(errs []*ParseError) bool {
	return len(errs) > 0 && errs[len(errs)-1].Incomplete
}

func parse(src string, interactive bool) (S, []*ParseError, error) {
	lex := NewLexer(src)
	toks, err := lex.Scan()
	if err != nil {
		return nil, nil, err
	}
	p := &parser{toks: toks, interactive: interactive}
	return p.program(), p.errs, nil
}

type parser struct {
	toks        []Token
	i           int
	interactive bool
	errs        []*ParseError
}

// ─────────────────────────── token basics & helpers ─────────────────────────

func (p *parser) atEnd() bool { return p.peek().Type == EOF }

func (p *parser) peek() Token {
	if p.i >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.i]
}

// peekNext looks one token past the current one (assignment lookahead).
func (p *parser) peekNext() Token {
	if p.i+1 >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.i+1]
}

func (p *parser) prev() Token { return p.toks[p.i-1] }

func (p *parser) check(tt TokenType) bool { return p.peek().Type == tt }

func (p *parser) match(tt ...TokenType) bool {
	if p.atEnd() {
		return false
	}
	for _, t := range tt {
		if p.peek().Type == t {
			p.i++
			return true
		}
	}
	return false
}

// errAt builds a ParseError blaming the given token. EOF tokens end up with
// an empty Got so messages read "(at end of input)".
func (p *parser) errAt(tok Token, msg string) *ParseError {
	e := &ParseError{Line: tok.Line, Col: tok.Col, Msg: msg, Got: tok.Lexeme}
	if tok.Type == EOF {
		e.Got = ""
		e.Incomplete = p.interactive
	}
	return e
}

// need consumes a token of type t or fails with msg. The EOF sentinel never
// satisfies an expectation.
func (p *parser) need(t TokenType, msg string) (Token, *ParseError) {
	if p.match(t) {
		return p.prev(), nil
	}
	return Token{}, p.errAt(p.peek(), msg)
}

// synchronize implements panic-mode recovery: discard the offending token,
// then skip until just past a ';' or until the next token opens a statement.
func (p *parser) synchronize() {
	if p.atEnd() {
		return
	}
	p.i++
	for !p.atEnd() {
		if p.prev().Type == SEMICOLON {
			return
		}
		switch p.peek().Type {
		case LET, FUNC, IF, WHILE:
			return
		}
		p.i++
	}
}

// ───────────────────────────── program / statements ────────────────────────

func (p *parser) program() S {
	var stmts []any
	for !p.atEnd() {
		st, err := p.declaration()
		if err != nil {
			p.errs = append(p.errs, err)
			p.synchronize()
			continue
		}
		stmts = append(stmts, st)
	}
	return L("program", stmts...)
}

func (p *parser) declaration() (S, *ParseError) {
	if p.match(FUNC) {
		return p.fnDecl()
	}
	if p.match(LET) {
		return p.letDecl()
	}
	return p.statement()
}

func (p *parser) letDecl() (S, *ParseError) {
	sp := spanOf(p.prev())
	name, err := p.need(ID, "Expected variable name after 'let'.")
	if err != nil {
		return nil, err
	}
	var init S
	if p.match(ASSIGN) {
		init, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.need(SEMICOLON, "Expected ';' after variable declaration."); err != nil {
		return nil, err
	}
	if init == nil {
		return L("let", sp, name.Literal.(string)), nil
	}
	return L("let", sp, name.Literal.(string), init), nil
}

func (p *parser) fnDecl() (S, *ParseError) {
	sp := spanOf(p.prev())
	name, err := p.need(ID, "Expected function name after 'func'.")
	if err != nil {
		return nil, err
	}
	if _, err := p.need(LPAREN, "Expected '(' after function name."); err != nil {
		return nil, err
	}
	params := S{"params"}
	if !p.check(RPAREN) {
		for {
			param, err := p.need(ID, "Expected parameter name.")
			if err != nil {
				return nil, err
			}
			params = append(params, param.Literal.(string))
			if !p.match(COMMA) {
				break
			}
		}
	}
	if _, err := p.need(RPAREN, "Expected ')' after parameters."); err != nil {
		return nil, err
	}
	if _, err := p.need(LBRACE, "Expected '{' before function body."); err != nil {
		return nil, err
	}
	// The body stays a flat statement list on the node, not a nested block:
	// a call opens exactly one environment.
	node := L("fun", sp, name.Literal.(string), params)
	for !p.check(RBRACE) && !p.atEnd() {
		st, err := p.declaration()
		if err != nil {
			return nil, err
		}
		node = append(node, st)
	}
	if _, err := p.need(RBRACE, "Expected '}' after function body."); err != nil {
		return nil, err
	}
	return node, nil
}

func (p *parser) statement() (S, *ParseError) {
	if p.match(IF) {
		return p.ifStmt()
	}
	if p.match(WHILE) {
		return p.whileStmt()
	}
	if p.match(LBRACE) {
		return p.blockStmt()
	}
	return p.exprOrAssignStmt()
}

func (p *parser) ifStmt() (S, *ParseError) {
	sp := spanOf(p.prev())
	if _, err := p.need(LPAREN, "Expected '(' after 'if'."); err != nil {
		return nil, err
	}
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.need(RPAREN, "Expected ')' after if condition."); err != nil {
		return nil, err
	}
	then, err := p.statement()
	if err != nil {
		return nil, err
	}
	if p.match(ELSE) {
		alt, err := p.statement()
		if err != nil {
			return nil, err
		}
		return L("if", sp, cond, then, alt), nil
	}
	return L("if", sp, cond, then), nil
}

func (p *parser) whileStmt() (S, *ParseError) {
	sp := spanOf(p.prev())
	if _, err := p.need(LPAREN, "Expected '(' after 'while'."); err != nil {
		return nil, err
	}
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.need(RPAREN, "Expected ')' after while condition."); err != nil {
		return nil, err
	}
	body, err := p.statement()
	if err != nil {
		return nil, err
	}
	return L("while", sp, cond, body), nil
}

func (p *parser) blockStmt() (S, *ParseError) {
	sp := spanOf(p.prev())
	node := L("block", sp)
	for !p.check(RBRACE) && !p.atEnd() {
		st, err := p.declaration()
		if err != nil {
			return nil, err
		}
		node = append(node, st)
	}
	if _, err := p.need(RBRACE, "Expected '}' after block."); err != nil {
		return nil, err
	}
	return node, nil
}

// assignOp maps an assignment-class token to its node payload.
var assignOp = map[TokenType]string{
	ASSIGN:       "=",
	PLUS_ASSIGN:  "+=",
	MINUS_ASSIGN: "-=",
	STAR_ASSIGN:  "*=",
	SLASH_ASSIGN: "/=",
}

// exprOrAssignStmt disambiguates with one token of lookahead: a leading
// identifier followed by an assignment-class token is an assignment;
// anything else is a general expression statement.
func (p *parser) exprOrAssignStmt() (S, *ParseError) {
	if p.check(ID) {
		if op, ok := assignOp[p.peekNext().Type]; ok {
			sp := spanOf(p.peek())
			name := p.peek().Literal.(string)
			p.i += 2 // consume IDENT and the operator
			value, err := p.expression()
			if err != nil {
				return nil, err
			}
			if _, err := p.need(SEMICOLON, "Expected ';' after assignment."); err != nil {
				return nil, err
			}
			return L("assign", sp, name, op, value), nil
		}
	}
	sp := spanOf(p.peek())
	e, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.need(SEMICOLON, "Expected ';' after expression."); err != nil {
		return nil, err
	}
	return L("expr", sp, e), nil
}

// ───────────────────────── precedence / expressions ─────────────────────────

// lbp is the left binding power per infix operator, lowest to highest tier.
// All tiers fold left: a - b - c parses as (a-b)-c.
func lbp(t TokenType) (int, bool) {
	switch t {
	case OR:
		return 20, true
	case AND:
		return 30, true
	case EQ, NEQ:
		return 40, true
	case LESS, LESS_EQ, GREATER, GREATER_EQ:
		return 50, true
	case PLUS, MINUS:
		return 60, true
	case STAR, SLASH:
		return 70, true
	}
	return 0, false
}

// unaryBP binds tighter than any infix tier, below call chaining.
const unaryBP = 80

func (p *parser) expression() (S, *ParseError) {
	return p.expr(0)
}

func (p *parser) expr(minBP int) (S, *ParseError) {
	t := p.peek()
	p.i++

	var left S

	// ---- prefix ----
	switch t.Type {
	case NUMBER:
		left = L("num", t.Literal)
	case STRING:
		left = L("str", t.Literal)
	case BOOLEAN:
		left = L("bool", t.Literal)
	case ID:
		left = L("id", t.Literal)
	case LPAREN:
		inner, err := p.expr(0)
		if err != nil {
			return nil, err
		}
		if _, err := p.need(RPAREN, "Expected ')' after expression."); err != nil {
			return nil, err
		}
		left = L("group", inner)
	case MINUS, NOT, BANG:
		rhs, err := p.expr(unaryBP)
		if err != nil {
			return nil, err
		}
		left = L("unop", t.Lexeme, rhs)
	default:
		p.i-- // do not consume the offending token; synchronize discards it
		return nil, p.errAt(t, "Expected expression.")
	}

	// ---- postfix: call chaining ----
	for p.match(LPAREN) {
		call := L("call", left)
		if !p.check(RPAREN) {
			for {
				arg, err := p.expr(0)
				if err != nil {
					return nil, err
				}
				call = append(call, arg)
				if !p.match(COMMA) {
					break
				}
			}
		}
		if _, err := p.need(RPAREN, "Expected ')' after arguments."); err != nil {
			return nil, err
		}
		left = call
	}

	// ---- infix ladder ----
	for {
		op := p.peek()
		bp, ok := lbp(op.Type)
		if !ok || bp < minBP {
			break
		}
		p.i++
		rhs, err := p.expr(bp + 1) // +1 folds same-tier chains to the left
		if err != nil {
			return nil, err
		}
		left = L("binop", op.Lexeme, left, rhs)
	}
	return left, nil
}
