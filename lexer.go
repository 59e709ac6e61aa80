// lexer.go — tokenizer for LIM source text.
package lim

import (
	"fmt"
	"strconv"
	"unicode/utf8"
)

// TokenType represents the kind of token.
type TokenType int

const (
	// Special
	EOF TokenType = iota
	ILLEGAL

	// Punctuation
	LPAREN    // "("
	RPAREN    // ")"
	LBRACE    // "{"
	RBRACE    // "}"
	COMMA     // ","
	SEMICOLON // ";"

	// Operators
	PLUS
	MINUS
	STAR
	SLASH
	ASSIGN       // "="
	PLUS_ASSIGN  // "+="
	MINUS_ASSIGN // "-="
	STAR_ASSIGN  // "*="
	SLASH_ASSIGN // "/="
	EQ           // "=="
	NEQ          // "!="
	LESS
	LESS_EQ
	GREATER
	GREATER_EQ
	BANG // "!"

	// Literals & identifiers
	ID
	STRING
	NUMBER
	BOOLEAN

	// Keywords
	LET
	FUNC
	IF
	ELSE
	WHILE
	AND
	OR
	NOT
)

// Token is a lexical token with optional decoded literal value.
type Token struct {
	Type    TokenType
	Lexeme  string      // raw text slice
	Literal interface{} // parsed value for number/string/boolean literals
	Line    int         // 1-based
	Col     int         // 0-based column of the token's first byte
}

// keywords map
var keywords = map[string]TokenType{
	"let":   LET,
	"func":  FUNC,
	"if":    IF,
	"else":  ELSE,
	"while": WHILE,
	"and":   AND,
	"or":    OR,
	"not":   NOT,
	"true":  BOOLEAN,
	"false": BOOLEAN,
}

// kindNames gives a short printable name per token kind, used in parser
// diagnostics ("Expected ';' after ...").
var kindNames = map[TokenType]string{
	EOF: "end of input", LPAREN: "'('", RPAREN: "')'", LBRACE: "'{'",
	RBRACE: "'}'", COMMA: "','", SEMICOLON: "';'", PLUS: "'+'", MINUS: "'-'",
	STAR: "'*'", SLASH: "'/'", ASSIGN: "'='", EQ: "'=='", NEQ: "'!='",
	LESS: "'<'", LESS_EQ: "'<='", GREATER: "'>'", GREATER_EQ: "'>='",
	BANG: "'!'", ID: "identifier", STRING: "string", NUMBER: "number",
	BOOLEAN: "boolean", LET: "'let'", FUNC: "'func'", IF: "'if'",
	ELSE: "'else'", WHILE: "'while'", AND: "'and'", OR: "'or'", NOT: "'not'",
	PLUS_ASSIGN: "'+='", MINUS_ASSIGN: "'-='", STAR_ASSIGN: "'*='",
	SLASH_ASSIGN: "'/='",
}

// Lexer scans a LIM source string into tokens.
type Lexer struct {
	src    string
	start  int // start index of current token
	cur    int // current index
	line   int // 1-based
	col    int // 0-based column within line
	tokens []Token

	// precise token start position
	tokStartLine int
	tokStartCol  int
}

// NewLexer creates a new lexer for the given source.
func NewLexer(src string) *Lexer {
	return &Lexer{
		src:  src,
		line: 1,
		col:  0,
	}
}

func (l *Lexer) isAtEnd() bool { return l.cur >= len(l.src) }

func (l *Lexer) peek() (byte, bool) {
	if l.isAtEnd() {
		return 0, false
	}
	return l.src[l.cur], true
}

func (l *Lexer) advance() (byte, bool) {
	if l.isAtEnd() {
		return 0, false
	}
	ch := l.src[l.cur]
	l.cur++
	if ch == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
	return ch, true
}

func (l *Lexer) rewindToStart() {
	// Only within the current token; the scanners re-advance from the
	// captured start position.
	l.cur = l.start
	l.line = l.tokStartLine
	l.col = l.tokStartCol
}

func (l *Lexer) addToken(tt TokenType, lit interface{}) Token {
	lex := l.src[l.start:l.cur]
	tok := Token{
		Type:    tt,
		Lexeme:  lex,
		Literal: lit,
		Line:    l.tokStartLine,
		Col:     l.tokStartCol,
	}
	l.tokens = append(l.tokens, tok)
	l.start = l.cur
	return tok
}

func (l *Lexer) skipWhitespace() {
	for !l.isAtEnd() {
		ch, _ := l.peek()
		switch ch {
		case ' ', '\r', '\n', '\t':
			l.advance()
			l.start = l.cur
		default:
			return
		}
	}
}

// helpers

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
func isAlpha(b byte) bool { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_' }
func isAlphaNum(b byte) bool {
	return (b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9') ||
		b == '_'
}

// ----- errors -----

// LexError is a lexical fault. Policy: lexical errors abort tokenization
// (no error tokens are emitted past the fault). Col is 0-based.
type LexError struct {
	Line int
	Col  int
	Msg  string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("LEXICAL ERROR at %d:%d: %s", e.Line, e.Col+1, e.Msg)
}

func (l *Lexer) err(msg string) error {
	return &LexError{Line: l.line, Col: l.col, Msg: msg}
}

// ----- scanners -----

// scanString parses a double-quoted string literal with the escapes
// \" \\ \n \r \t. Raw newlines inside a literal are not allowed; an
// unterminated literal or unknown escape is a lexical error.
func (l *Lexer) scanString() (string, error) {
	// consume the opening quote
	l.advance()

	var out []rune
	for !l.isAtEnd() {
		ch, _ := l.advance()
		if ch == '"' {
			return string(out), nil
		}
		if ch == '\n' {
			return "", l.err("string was not terminated before end of line")
		}
		if ch == '\\' {
			if l.isAtEnd() {
				return "", l.err("unfinished escape sequence")
			}
			esc, _ := l.advance()
			switch esc {
			case '"':
				out = append(out, '"')
			case '\\':
				out = append(out, '\\')
			case 'n':
				out = append(out, '\n')
			case 'r':
				out = append(out, '\r')
			case 't':
				out = append(out, '\t')
			default:
				return "", l.err(fmt.Sprintf("invalid escape sequence: \\%c", esc))
			}
			continue
		}
		if ch < utf8.RuneSelf {
			out = append(out, rune(ch))
			continue
		}
		// Non-ASCII byte: step back one byte and decode the full rune.
		l.cur--
		r, size := utf8.DecodeRuneInString(l.src[l.cur:])
		if r == utf8.RuneError && size == 1 {
			return "", l.err("invalid UTF-8 in source")
		}
		out = append(out, r)
		l.cur += size
		l.col += size - 1
	}
	return "", l.err("string was not terminated")
}

// scanIdentifier parses [A-Za-z_][A-Za-z0-9_]*
func (l *Lexer) scanIdentifier() string {
	for {
		b, ok := l.peek()
		if !ok || !isAlphaNum(b) {
			break
		}
		l.advance()
	}
	return l.src[l.start:l.cur]
}

// scanNumber parses digits with an optional fractional part (123, 1.5).
// A trailing '.' with no digit after it is left for the next token.
func (l *Lexer) scanNumber() (tok TokenType, lit interface{}, err error) {
	for {
		b, ok := l.peek()
		if !ok || !isDigit(b) {
			break
		}
		l.advance()
	}

	if b, ok := l.peek(); ok && b == '.' && l.cur+1 < len(l.src) && isDigit(l.src[l.cur+1]) {
		l.advance() // consume '.'
		for {
			b, ok := l.peek()
			if !ok || !isDigit(b) {
				break
			}
			l.advance()
		}
	}

	lex := l.src[l.start:l.cur]
	v, convErr := strconv.ParseFloat(lex, 64)
	if convErr != nil {
		return ILLEGAL, nil, l.err("malformed number literal")
	}
	return NUMBER, v, nil
}

// ignoreUntilNewline eats until '\n' or EOF (line comments).
func (l *Lexer) ignoreUntilNewline() {
	for {
		b, ok := l.peek()
		if !ok || b == '\n' {
			return
		}
		l.advance()
	}
}

// ----- main scanner -----

func (l *Lexer) scanToken() (Token, error) {
	for {
		l.skipWhitespace()
		l.tokStartLine = l.line
		l.tokStartCol = l.col
		l.start = l.cur

		if l.isAtEnd() {
			return l.addToken(EOF, nil), nil
		}

		ch, _ := l.advance()

		// Single-char punctuation
		switch ch {
		case '(':
			return l.addToken(LPAREN, nil), nil
		case ')':
			return l.addToken(RPAREN, nil), nil
		case '{':
			return l.addToken(LBRACE, nil), nil
		case '}':
			return l.addToken(RBRACE, nil), nil
		case ',':
			return l.addToken(COMMA, nil), nil
		case ';':
			return l.addToken(SEMICOLON, nil), nil
		}

		// Operators, including the compound-assignment forms and comments.
		switch ch {
		case '+':
			if b, ok := l.peek(); ok && b == '=' {
				l.advance()
				return l.addToken(PLUS_ASSIGN, nil), nil
			}
			return l.addToken(PLUS, nil), nil
		case '-':
			if b, ok := l.peek(); ok && b == '=' {
				l.advance()
				return l.addToken(MINUS_ASSIGN, nil), nil
			}
			return l.addToken(MINUS, nil), nil
		case '*':
			if b, ok := l.peek(); ok && b == '=' {
				l.advance()
				return l.addToken(STAR_ASSIGN, nil), nil
			}
			return l.addToken(STAR, nil), nil
		case '/':
			if b, ok := l.peek(); ok && b == '/' {
				l.ignoreUntilNewline()
				l.start = l.cur
				continue
			}
			if b, ok := l.peek(); ok && b == '=' {
				l.advance()
				return l.addToken(SLASH_ASSIGN, nil), nil
			}
			return l.addToken(SLASH, nil), nil
		case '=':
			if b, ok := l.peek(); ok && b == '=' {
				l.advance()
				return l.addToken(EQ, nil), nil
			}
			return l.addToken(ASSIGN, nil), nil
		case '!':
			if b, ok := l.peek(); ok && b == '=' {
				l.advance()
				return l.addToken(NEQ, nil), nil
			}
			return l.addToken(BANG, nil), nil
		case '<':
			if b, ok := l.peek(); ok && b == '=' {
				l.advance()
				return l.addToken(LESS_EQ, nil), nil
			}
			return l.addToken(LESS, nil), nil
		case '>':
			if b, ok := l.peek(); ok && b == '=' {
				l.advance()
				return l.addToken(GREATER_EQ, nil), nil
			}
			return l.addToken(GREATER, nil), nil
		}

		// Strings
		if ch == '"' {
			l.rewindToStart()
			text, err := l.scanString()
			if err != nil {
				return Token{}, err
			}
			return l.addToken(STRING, text), nil
		}

		// Numbers
		if isDigit(ch) {
			l.rewindToStart()
			tt, lit, err := l.scanNumber()
			if err != nil {
				return Token{}, err
			}
			return l.addToken(tt, lit), nil
		}

		// Identifiers / keywords
		if isAlpha(ch) {
			l.rewindToStart()
			lex := l.scanIdentifier()
			if tt, ok := keywords[lex]; ok {
				if tt == BOOLEAN {
					return l.addToken(BOOLEAN, lex == "true"), nil
				}
				return l.addToken(tt, nil), nil
			}
			return l.addToken(ID, lex), nil
		}

		return Token{}, l.err(fmt.Sprintf("unexpected character: %q", ch))
	}
}

// Scan tokenizes the entire source and returns tokens (EOF included).
// The token sequence always ends with exactly one EOF token.
func (l *Lexer) Scan() ([]Token, error) {
	for {
		tok, err := l.scanToken()
		if err != nil {
			return nil, err
		}
		if tok.Type == EOF {
			return l.tokens, nil
		}
	}
}
