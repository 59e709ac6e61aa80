// errors.go: user-facing error wrapping and caret-snippet rendering
//
// This module turns lexer, parser, and runtime diagnostics into readable
// snippets with a caret pointing at the offending column:
//
//	PARSE ERROR in demo.lim at 3:14: Expected ')' after arguments. (found ';')
//
//	   2 | let x = 1;
//	   3 | println(x + 1;
//	     |              ^
//	   4 | x += 5;
//
// `WrapErrorWithName` recognizes *LexError, *ParseError, and *RuntimeError
// and renders them; any other error is returned unchanged. Parse errors
// accumulate during a parse, so `FormatParseErrors` renders a whole batch in
// source order, one snippet per fault.
//
// Line/column are clamped to the source bounds so rendering never panics on
// short or empty input. Output is plain text, no ANSI escapes.
package lim

import (
	"fmt"
	"strings"
)

// WrapErrorWithSource returns err augmented with a caret-annotated snippet
// of src. A name-less header is used (no "in <name>").
func WrapErrorWithSource(err error, src string) error {
	return WrapErrorWithName(err, "", src)
}

// WrapErrorWithName renders lex/parse/runtime errors as caret snippets,
// labeling them with srcName ("<main>", "<repl>", a file path). Other error
// kinds pass through untouched.
func WrapErrorWithName(err error, srcName string, src string) error {
	switch e := err.(type) {
	case *LexError:
		// Lexer Col is 0-based; render 1-based.
		return fmt.Errorf("%s", snippet(src, "LEXICAL ERROR", srcName, e.Line, e.Col+1, e.Msg))
	case *ParseError:
		return fmt.Errorf("%s", snippet(src, "PARSE ERROR", srcName, e.Line, e.Col+1, parseErrMsg(e)))
	case *RuntimeError:
		// RuntimeError is already 1-based.
		return fmt.Errorf("%s", snippet(src, "RUNTIME ERROR", srcName, e.Line, e.Col, e.Msg))
	default:
		return err
	}
}

// FormatParseErrors renders every accumulated parse error as its own caret
// snippet, in source order, separated by blank lines.
func FormatParseErrors(errs []*ParseError, sr *SourceRef) string {
	var b strings.Builder
	for i, e := range errs {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(snippet(sr.Src, "PARSE ERROR", sr.Name, e.Line, e.Col+1, parseErrMsg(e)))
	}
	return b.String()
}

func parseErrMsg(e *ParseError) string {
	if e.Got == "" {
		return e.Msg + " (at end of input)"
	}
	return fmt.Sprintf("%s (found '%s')", e.Msg, e.Got)
}

// snippet builds the header plus up to one line of context on each side,
// with a caret under the 1-based column. Coordinates are clamped.
func snippet(src, header, name string, line, col int, msg string) string {
	lines := strings.Split(src, "\n")
	if line < 1 {
		line = 1
	}
	if col < 1 {
		col = 1
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	if line > len(lines) {
		line = len(lines)
	}

	var b strings.Builder
	if name != "" {
		fmt.Fprintf(&b, "%s in %s at %d:%d: %s\n\n", header, name, line, col, msg)
	} else {
		fmt.Fprintf(&b, "%s at %d:%d: %s\n\n", header, line, col, msg)
	}
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lines[line-1])
	fmt.Fprintf(&b, "     | %s^\n", strings.Repeat(" ", col-1))
	if line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}
	return b.String()
}
