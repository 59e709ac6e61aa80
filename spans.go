// spans.go — source positions attached to statement nodes.
//
// LIM statement nodes carry one Span (1-based line, 0-based column of the
// statement's first token). The executor keeps track of the innermost
// statement span it is running so that runtime errors can point back into
// the source; expression nodes stay position-free to keep the AST compact.
package lim

// Span is the source position of a statement's first token.
// Line is 1-based; Col is 0-based (rendered 1-based by errors.go).
type Span struct {
	Line int
	Col  int
}

// SourceRef names a unit of source text for diagnostics ("<main>", "<repl>",
// or a file path) and carries the text itself for caret snippets.
type SourceRef struct {
	Name string
	Src  string
}

func spanOf(tok Token) Span { return Span{Line: tok.Line, Col: tok.Col} }
