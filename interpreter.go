// interpreter.go — public surface of the LIM interpreter.
//
// OVERVIEW
// ========
// This file exposes the public types and entry points of the LIM runtime:
//
//   - The runtime value model (`Value`, `ValueTag`, constructors `Bool/Num/Str`).
//   - Functions / closures (`Fun`) as first-class values.
//   - Environments (`Env`) with lexical scoping.
//   - The `Interpreter` with its entry points: `RunProgram` for a parsed
//     program, `EvalSource` (fresh child of Global) and
//     `EvalPersistentSource` (REPL-style, in Global), plus `RegisterNative`.
//   - A structured `*RuntimeError` surfaced as a Go error by all entry points.
//
// EXECUTION & SCOPING SEMANTICS
// -----------------------------
// LIM code evaluates in environments (`*Env`) forming a lexical chain via
// `parent`. The Interpreter exposes two well-known frames:
//   - `Core`: the native library (print, str, num, ...). Parent of Global.
//   - `Global`: user-visible program state (REPL globals).
//
// `EvalSource` runs in a throwaway child of Global; `EvalPersistentSource`
// runs in Global itself so REPL `let`s persist. A new child frame is opened
// per block entry and per function call; a function call's frame chains to
// the function's *captured* defining environment, never to the call site
// (lexical scoping). Function values keep their defining environment alive —
// Go's garbage collector is the shared-ownership mechanism, so closures stay
// valid after the defining scope exits.
//
// RUNTIME ERRORS
// --------------
// There is no handler construct in the source language: any runtime fault
// (operand type mismatch, assignment to an undeclared name, arity mismatch,
// calling a non-function) aborts the run. Internally faults are raised as
// rtErr panics (see interpreter_exec.go) and recovered exactly once at the
// run boundary into a *RuntimeError carrying the 1-based position of the
// innermost statement that was executing. Output produced before the fault
// is preserved; there is no transactionality across statements.
//
// DEPENDENCIES (OTHER FILES)
// --------------------------
//   - lexer.go / parser.go: tokenization and parsing into S-expression ASTs.
//   - interpreter_exec.go: the private tree-walking executor.
//   - builtin_*.go: the native library registered into Core.
//   - errors.go: caret-snippet rendering for surfaced errors.
package lim

import (
	"fmt"
	"io"
	"os"
	"strconv"
)

////////////////////////////////////////////////////////////////////////////////
//                              PUBLIC TYPES & CTORS
////////////////////////////////////////////////////////////////////////////////

// ValueTag enumerates all runtime kinds a Value may hold.
type ValueTag int

const (
	VTNull ValueTag = iota // no value (uninitialized let, statement results)
	VTBool                 // bool
	VTNum                  // float64
	VTStr                  // string
	VTFun                  // *Fun (closure; native or user-defined)
)

// Value is the universal runtime carrier used by the interpreter.
// Tag is the discriminant; Data holds the Go value appropriate for Tag
// (nil for VTNull, bool for VTBool, float64 for VTNum, string for VTStr,
// *Fun for VTFun).
type Value struct {
	Tag  ValueTag
	Data interface{}
}

// String renders a debug representation; user-facing formatting lives in
// printer.go (FormatValue).
func (v Value) String() string {
	switch v.Tag {
	case VTNull:
		return "null"
	case VTBool:
		return fmt.Sprintf("%v", v.Data.(bool))
	case VTNum:
		return strconv.FormatFloat(v.Data.(float64), 'g', -1, 64)
	case VTStr:
		return fmt.Sprintf("%q", v.Data.(string))
	case VTFun:
		f := v.Data.(*Fun)
		if f.NativeName != "" {
			return "<native " + f.NativeName + ">"
		}
		return "<func " + f.Name + ">"
	default:
		return "<unknown>"
	}
}

// Null is the singleton "no value" Value.
var Null = Value{Tag: VTNull}

// Primitive constructors for convenience.
func Bool(b bool) Value   { return Value{Tag: VTBool, Data: b} }
func Num(f float64) Value { return Value{Tag: VTNum, Data: f} }
func Str(s string) Value  { return Value{Tag: VTStr, Data: s} }

// Fun represents a function as a first-class Value (VTFun).
//
// User functions carry their parameter names, the body statement list (kept
// flat; a call opens exactly one environment frame), and the environment
// captured at declaration time. Natives carry NativeName plus a declared
// Arity (-1 for variadic) and no body.
type Fun struct {
	Name   string
	Params []string
	Body   []S
	Env    *Env

	NativeName string // non-empty for registered natives
	Arity      int    // natives only; user functions use len(Params)
}

// FunVal wraps *Fun into a Value (Tag=VTFun).
func FunVal(f *Fun) Value { return Value{Tag: VTFun, Data: f} }

// Env is a lexical environment frame with a parent link. Lookups walk
// parent-ward. Use Define to bind in the current frame, Set to update the
// nearest existing binding, and Get to retrieve.
type Env struct {
	parent *Env
	table  map[string]Value
}

// NewEnv creates a new lexical frame with the given parent (which may be nil).
func NewEnv(parent *Env) *Env { return &Env{parent: parent, table: make(map[string]Value)} }

// Define binds name to v in the current frame, shadowing any outer binding.
func (e *Env) Define(name string, v Value) {
	e.table[name] = v
}

// Set updates the nearest existing binding of name to v, writing into the
// specific frame where the name was found. If no visible frame binds the
// name, Set returns an error; it never implicitly defines.
func (e *Env) Set(name string, v Value) error {
	if _, ok := e.table[name]; ok {
		e.table[name] = v
		return nil
	}
	if e.parent != nil {
		return e.parent.Set(name, v)
	}
	return fmt.Errorf("undefined variable: %s", name)
}

// Get retrieves the nearest visible binding for name or returns an error.
func (e *Env) Get(name string) (Value, error) {
	if v, ok := e.table[name]; ok {
		return v, nil
	}
	if e.parent != nil {
		return e.parent.Get(name)
	}
	return Value{}, fmt.Errorf("undefined variable: %s", name)
}

// NativeImpl is the implementation signature for registered native functions.
// Arguments arrive already evaluated, left to right. Implementations must not
// retain references to interpreter environments past the call; their only
// effects are explicit host effects such as writing to the interpreter's
// Stdout.
type NativeImpl func(ip *Interpreter, args []Value) Value

// RuntimeError represents an execution-time failure with a source location.
// Line/Col are 1-based; they point at the innermost statement that was
// executing when the fault was raised.
type RuntimeError struct {
	Line int
	Col  int
	Msg  string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("RUNTIME ERROR at %d:%d: %s", e.Line, e.Col, e.Msg)
}

////////////////////////////////////////////////////////////////////////////////
//                               PUBLIC INTERPRETER
////////////////////////////////////////////////////////////////////////////////

// Variadic marks a native as accepting any number of arguments.
const Variadic = -1

// Interpreter is the entry point for evaluating LIM programs.
type Interpreter struct {
	Global *Env // program-global environment (persistent across EvalPersistentSource)
	Core   *Env // native library; parent of Global

	// Stdout receives all program output (print/println). Defaults to
	// os.Stdout; tests point it at a buffer.
	Stdout io.Writer

	native map[string]NativeImpl

	cur    Span       // span of the innermost statement being executed
	curSrc *SourceRef // current source unit, for error snippets
}

// NewInterpreter constructs an engine with the native library installed in
// Core and an empty Global (child of Core).
func NewInterpreter() *Interpreter {
	ip := &Interpreter{}
	ip.Core = NewEnv(nil)
	ip.Global = NewEnv(ip.Core)
	ip.Stdout = os.Stdout
	ip.native = map[string]NativeImpl{}

	registerCoreBuiltins(ip)
	registerStringBuiltins(ip)
	registerMathBuiltins(ip)
	return ip
}

// RegisterNative installs a native function into Core under name, exposed to
// programs as a first-class function value. arity is the exact argument
// count the native expects, or Variadic.
func (ip *Interpreter) RegisterNative(name string, arity int, impl NativeImpl) {
	ip.native[name] = impl
	ip.Core.Define(name, FunVal(&Fun{
		Name:       name,
		NativeName: name,
		Arity:      arity,
	}))
}

// RunProgram executes a parsed program's top-level statements in order
// against env (callers normally pass a fresh child of Global). sr names the
// source for runtime-error snippets and may be nil.
//
// Returns the value of the last executed statement, or a *RuntimeError.
func (ip *Interpreter) RunProgram(prog S, env *Env, sr *SourceRef) (Value, error) {
	return ip.runTop(prog, env, sr)
}

// EvalSource parses and evaluates source in a fresh child of Global. Lexical
// and parse failures come back rendered as caret snippets; a program with
// any parse errors is never executed.
func (ip *Interpreter) EvalSource(src string) (Value, error) {
	return ip.evalSource(src, NewEnv(ip.Global), "<main>")
}

// EvalPersistentSource parses and evaluates source in Global (REPL-style),
// so `let` and assignment mutate the persistent state.
func (ip *Interpreter) EvalPersistentSource(src string) (Value, error) {
	return ip.evalSource(src, ip.Global, "<repl>")
}

func (ip *Interpreter) evalSource(src string, env *Env, name string) (Value, error) {
	prog, perrs, lexErr := Parse(src)
	if lexErr != nil {
		return Null, WrapErrorWithName(lexErr, name, src)
	}
	if len(perrs) > 0 {
		return Null, fmt.Errorf("%s", FormatParseErrors(perrs, &SourceRef{Name: name, Src: src}))
	}
	return ip.runTop(prog, env, &SourceRef{Name: name, Src: src})
}
