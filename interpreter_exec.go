// interpreter_exec.go — PRIVATE: the tree-walking executor for LIM.
//
// Faults inside the walk are raised as rtErr panics via fail()/failf() and
// recovered exactly once, at runTop, into a *RuntimeError stamped with the
// span of the innermost statement that was executing. Nothing below the run
// boundary formats errors.
//
// Statement results
// -----------------
// Every statement produces a value (the "last executed statement" policy for
// call results depends on it):
//
//	expr     → the expression's value
//	assign   → the assigned value
//	block    → the last executed statement's value (null when empty)
//	if       → the executed branch's value (null when no branch ran)
//	let/fun/while → null
//
// A function call evaluates its body statements in one fresh frame chained
// to the captured defining environment and yields the last executed
// statement's value. There is no return statement.
package lim

import "fmt"

// rtErr is the internal signal for a runtime fault. It carries only the
// message; position is stamped at the recovery boundary from ip.cur.
type rtErr struct {
	msg string
}

func fail(msg string)                  { panic(rtErr{msg: msg}) }
func failf(format string, args ...any) { panic(rtErr{msg: fmt.Sprintf(format, args...)}) }

// runTop executes a program's statements in order against env, recovering
// rtErr panics into *RuntimeError.
func (ip *Interpreter) runTop(prog S, env *Env, sr *SourceRef) (out Value, err error) {
	savedSrc, savedCur := ip.curSrc, ip.cur
	ip.curSrc = sr
	defer func() {
		if r := recover(); r != nil {
			sig, ok := r.(rtErr)
			if !ok {
				panic(r)
			}
			rte := &RuntimeError{Line: ip.cur.Line, Col: ip.cur.Col + 1, Msg: sig.msg}
			if ip.curSrc != nil {
				err = WrapErrorWithName(rte, ip.curSrc.Name, ip.curSrc.Src)
			} else {
				err = rte
			}
			out = Null
		}
		ip.curSrc, ip.cur = savedSrc, savedCur
	}()

	out = Null
	for _, st := range prog[1:] {
		out = ip.execStmt(st.(S), env)
	}
	return out, nil
}

// ───────────────────────────── statements ───────────────────────────────────

func (ip *Interpreter) execStmt(st S, env *Env) Value {
	tag := st[0].(string)
	ip.cur = st[1].(Span)

	switch tag {
	case "expr":
		return ip.evalExpr(st[2].(S), env)

	case "let":
		v := Null
		if len(st) > 3 {
			v = ip.evalExpr(st[3].(S), env)
		}
		env.Define(st[2].(string), v)
		return Null

	case "fun":
		name := st[2].(string)
		params := st[3].(S)
		names := make([]string, 0, len(params)-1)
		for _, pn := range params[1:] {
			names = append(names, pn.(string))
		}
		body := make([]S, 0, len(st)-4)
		for _, bs := range st[4:] {
			body = append(body, bs.(S))
		}
		// Binding the function in its own defining environment makes the
		// name visible to the body, so direct recursion works.
		env.Define(name, FunVal(&Fun{Name: name, Params: names, Body: body, Env: env}))
		return Null

	case "assign":
		name := st[2].(string)
		op := st[3].(string)
		v := ip.evalExpr(st[4].(S), env)
		if op != "=" {
			cur, err := env.Get(name)
			if err != nil {
				failf("assignment to undeclared name: %s", name)
			}
			v = ip.binary(op[:1], cur, v)
		}
		if err := env.Set(name, v); err != nil {
			failf("assignment to undeclared name: %s", name)
		}
		return v

	case "block":
		inner := NewEnv(env)
		out := Null
		for _, s := range st[2:] {
			out = ip.execStmt(s.(S), inner)
		}
		return out

	case "if":
		if truthy(ip.evalExpr(st[2].(S), env)) {
			return ip.execStmt(st[3].(S), env)
		}
		if len(st) > 4 {
			return ip.execStmt(st[4].(S), env)
		}
		return Null

	case "while":
		sp := st[1].(Span)
		for {
			ip.cur = sp
			if !truthy(ip.evalExpr(st[2].(S), env)) {
				break
			}
			ip.execStmt(st[3].(S), env)
		}
		return Null
	}

	failf("internal: unknown statement tag %q", tag)
	return Null
}

// ───────────────────────────── expressions ──────────────────────────────────

func (ip *Interpreter) evalExpr(e S, env *Env) Value {
	switch e[0].(string) {
	case "num":
		return Num(e[1].(float64))
	case "str":
		return Str(e[1].(string))
	case "bool":
		return Bool(e[1].(bool))
	case "id":
		v, err := env.Get(e[1].(string))
		if err != nil {
			fail(err.Error())
		}
		return v
	case "group":
		return ip.evalExpr(e[1].(S), env)
	case "unop":
		return ip.unary(e[1].(string), e[2].(S), env)
	case "binop":
		op := e[1].(string)
		// and/or short-circuit: the right operand is untouched when the
		// left already decides, and the deciding operand is the result.
		if op == "and" {
			l := ip.evalExpr(e[2].(S), env)
			if !truthy(l) {
				return l
			}
			return ip.evalExpr(e[3].(S), env)
		}
		if op == "or" {
			l := ip.evalExpr(e[2].(S), env)
			if truthy(l) {
				return l
			}
			return ip.evalExpr(e[3].(S), env)
		}
		l := ip.evalExpr(e[2].(S), env)
		r := ip.evalExpr(e[3].(S), env)
		return ip.binary(op, l, r)
	case "call":
		callee := ip.evalExpr(e[1].(S), env)
		args := make([]Value, 0, len(e)-2)
		for _, a := range e[2:] {
			args = append(args, ip.evalExpr(a.(S), env))
		}
		return ip.apply(callee, args)
	}
	failf("internal: unknown expression tag %q", e[0])
	return Null
}

func (ip *Interpreter) unary(op string, operand S, env *Env) Value {
	v := ip.evalExpr(operand, env)
	switch op {
	case "-":
		if v.Tag != VTNum {
			fail("unary '-' expects a number")
		}
		return Num(-v.Data.(float64))
	case "not", "!":
		return Bool(!truthy(v))
	}
	failf("internal: unknown unary operator %q", op)
	return Null
}

func (ip *Interpreter) binary(op string, l, r Value) Value {
	switch op {
	case "+":
		if l.Tag == VTNum && r.Tag == VTNum {
			return Num(l.Data.(float64) + r.Data.(float64))
		}
		// Concatenation wins whenever either side is a string.
		if l.Tag == VTStr || r.Tag == VTStr {
			return Str(FormatValue(l) + FormatValue(r))
		}
		fail("'+' expects numbers, or a string operand for concatenation")
	case "-", "*", "/", "<", "<=", ">", ">=":
		if l.Tag != VTNum || r.Tag != VTNum {
			failf("'%s' expects number operands", op)
		}
		a, b := l.Data.(float64), r.Data.(float64)
		switch op {
		case "-":
			return Num(a - b)
		case "*":
			return Num(a * b)
		case "/":
			if b == 0 {
				fail("division by zero")
			}
			return Num(a / b)
		case "<":
			return Bool(a < b)
		case "<=":
			return Bool(a <= b)
		case ">":
			return Bool(a > b)
		case ">=":
			return Bool(a >= b)
		}
	case "==":
		return Bool(valueEq(l, r))
	case "!=":
		return Bool(!valueEq(l, r))
	}
	failf("internal: unknown binary operator %q", op)
	return Null
}

// apply dispatches a call: user functions get one fresh frame chained to the
// captured defining environment (lexical, not dynamic, scoping); natives get
// their evaluated arguments directly.
func (ip *Interpreter) apply(callee Value, args []Value) Value {
	if callee.Tag != VTFun {
		fail("can only call functions")
	}
	f := callee.Data.(*Fun)

	if f.NativeName != "" {
		impl, ok := ip.native[f.NativeName]
		if !ok {
			failf("undefined native: %s", f.NativeName)
		}
		if f.Arity != Variadic && len(args) != f.Arity {
			failf("%s expects %d argument(s), got %d", f.NativeName, f.Arity, len(args))
		}
		return impl(ip, args)
	}

	if len(args) != len(f.Params) {
		failf("%s expects %d argument(s), got %d", f.Name, len(f.Params), len(args))
	}
	frame := NewEnv(f.Env)
	for i, p := range f.Params {
		frame.Define(p, args[i])
	}
	saved := ip.cur
	out := Null
	for _, st := range f.Body {
		out = ip.execStmt(st, frame)
	}
	ip.cur = saved
	return out
}

// ───────────────────────────── value semantics ──────────────────────────────

// truthy: null and false are falsey; every other value is truthy.
func truthy(v Value) bool {
	switch v.Tag {
	case VTNull:
		return false
	case VTBool:
		return v.Data.(bool)
	default:
		return true
	}
}

// valueEq compares by value when tags match; mismatched tags are unequal,
// never an error. Functions compare by identity.
func valueEq(a, b Value) bool {
	if a.Tag != b.Tag {
		return false
	}
	switch a.Tag {
	case VTNull:
		return true
	case VTBool:
		return a.Data.(bool) == b.Data.(bool)
	case VTNum:
		return a.Data.(float64) == b.Data.(float64)
	case VTStr:
		return a.Data.(string) == b.Data.(string)
	case VTFun:
		return a.Data.(*Fun) == b.Data.(*Fun)
	}
	return false
}
