// builtin_strings.go: string native functions
//
// All index-taking natives work in runes, not bytes, so multi-byte text
// behaves the way users expect. Out-of-range indices are clamped rather
// than faulting.
package lim

import "strings"

func registerStringBuiltins(ip *Interpreter) {
	ip.RegisterNative("upper", 1, func(_ *Interpreter, args []Value) Value {
		return Str(strings.ToUpper(argStr("upper", args, 0)))
	})

	ip.RegisterNative("lower", 1, func(_ *Interpreter, args []Value) Value {
		return Str(strings.ToLower(argStr("lower", args, 0)))
	})

	ip.RegisterNative("trim", 1, func(_ *Interpreter, args []Value) Value {
		return Str(strings.TrimSpace(argStr("trim", args, 0)))
	})

	ip.RegisterNative("contains", 2, func(_ *Interpreter, args []Value) Value {
		return Bool(strings.Contains(argStr("contains", args, 0), argStr("contains", args, 1)))
	})

	ip.RegisterNative("startsWith", 2, func(_ *Interpreter, args []Value) Value {
		return Bool(strings.HasPrefix(argStr("startsWith", args, 0), argStr("startsWith", args, 1)))
	})

	ip.RegisterNative("endsWith", 2, func(_ *Interpreter, args []Value) Value {
		return Bool(strings.HasSuffix(argStr("endsWith", args, 0), argStr("endsWith", args, 1)))
	})

	// indexOf(s, sub): rune index of the first occurrence, or -1.
	ip.RegisterNative("indexOf", 2, func(_ *Interpreter, args []Value) Value {
		s := argStr("indexOf", args, 0)
		sub := argStr("indexOf", args, 1)
		b := strings.Index(s, sub)
		if b < 0 {
			return Num(-1)
		}
		return Num(float64(len([]rune(s[:b]))))
	})

	// substr(s, i, j): half-open rune slice [i, j), indices clamped.
	ip.RegisterNative("substr", 3, func(_ *Interpreter, args []Value) Value {
		r := []rune(argStr("substr", args, 0))
		i := int(argNum("substr", args, 1))
		j := int(argNum("substr", args, 2))
		if i < 0 {
			i = 0
		}
		if i > len(r) {
			i = len(r)
		}
		if j < i {
			j = i
		}
		if j > len(r) {
			j = len(r)
		}
		return Str(string(r[i:j]))
	})

	ip.RegisterNative("replace", 3, func(_ *Interpreter, args []Value) Value {
		return Str(strings.ReplaceAll(
			argStr("replace", args, 0),
			argStr("replace", args, 1),
			argStr("replace", args, 2)))
	})

	ip.RegisterNative("repeat", 2, func(_ *Interpreter, args []Value) Value {
		s := argStr("repeat", args, 0)
		n := int(argNum("repeat", args, 1))
		if n < 0 {
			failf("repeat: count must not be negative, got %d", n)
		}
		return Str(strings.Repeat(s, n))
	})
}
