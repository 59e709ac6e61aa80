// builtin_core.go: core native functions
//
// These are pre-bound in the Core environment, beneath user globals, so a
// program may shadow `print` with its own `let print = ...` without breaking
// other code. Type checks fault with a runtime error at the calling
// statement's location.
package lim

import (
	"strconv"
	"strings"
	"time"
)

// argNum extracts a number argument or faults with the native's name.
func argNum(name string, args []Value, i int) float64 {
	if args[i].Tag != VTNum {
		failf("%s: argument %d must be a number, got %s", name, i+1, tagName(args[i].Tag))
	}
	return args[i].Data.(float64)
}

// argStr extracts a string argument or faults with the native's name.
func argStr(name string, args []Value, i int) string {
	if args[i].Tag != VTStr {
		failf("%s: argument %d must be a string, got %s", name, i+1, tagName(args[i].Tag))
	}
	return args[i].Data.(string)
}

func tagName(t ValueTag) string {
	switch t {
	case VTNull:
		return "null"
	case VTBool:
		return "boolean"
	case VTNum:
		return "number"
	case VTStr:
		return "string"
	case VTFun:
		return "function"
	}
	return "unknown"
}

func registerCoreBuiltins(ip *Interpreter) {
	// print(args...): writes each argument, space-separated, no newline.
	ip.RegisterNative("print", Variadic, func(ip *Interpreter, args []Value) Value {
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = FormatValue(a)
		}
		ip.write(strings.Join(parts, " "))
		return Null
	})

	// println(args...): like print, with a trailing newline.
	ip.RegisterNative("println", Variadic, func(ip *Interpreter, args []Value) Value {
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = FormatValue(a)
		}
		ip.write(strings.Join(parts, " ") + "\n")
		return Null
	})

	// str(v): display form of any value.
	ip.RegisterNative("str", 1, func(_ *Interpreter, args []Value) Value {
		return Str(FormatValue(args[0]))
	})

	// num(v): numbers pass through; strings parse; anything else faults.
	ip.RegisterNative("num", 1, func(_ *Interpreter, args []Value) Value {
		switch args[0].Tag {
		case VTNum:
			return args[0]
		case VTStr:
			s := strings.TrimSpace(args[0].Data.(string))
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				failf("num: cannot parse %q as a number", args[0].Data.(string))
			}
			return Num(f)
		}
		failf("num: cannot convert %s to a number", tagName(args[0].Tag))
		return Null
	})

	// len(s): rune count of a string.
	ip.RegisterNative("len", 1, func(_ *Interpreter, args []Value) Value {
		s := argStr("len", args, 0)
		return Num(float64(len([]rune(s))))
	})

	// clock(): seconds since the Unix epoch, fractional.
	ip.RegisterNative("clock", 0, func(_ *Interpreter, _ []Value) Value {
		return Num(float64(time.Now().UnixNano()) / 1e9)
	})
}

func (ip *Interpreter) write(s string) {
	// Stdout writes are best-effort; a broken writer is the host's problem.
	_, _ = ip.Stdout.Write([]byte(s))
}
