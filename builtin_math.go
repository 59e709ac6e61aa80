// builtin_math.go: numeric native functions
package lim

import (
	"math"
	"math/rand"
)

func registerMathBuiltins(ip *Interpreter) {
	ip.RegisterNative("abs", 1, func(_ *Interpreter, args []Value) Value {
		return Num(math.Abs(argNum("abs", args, 0)))
	})

	ip.RegisterNative("floor", 1, func(_ *Interpreter, args []Value) Value {
		return Num(math.Floor(argNum("floor", args, 0)))
	})

	ip.RegisterNative("ceil", 1, func(_ *Interpreter, args []Value) Value {
		return Num(math.Ceil(argNum("ceil", args, 0)))
	})

	ip.RegisterNative("sqrt", 1, func(_ *Interpreter, args []Value) Value {
		x := argNum("sqrt", args, 0)
		if x < 0 {
			failf("sqrt: argument must not be negative, got %s", FormatValue(Num(x)))
		}
		return Num(math.Sqrt(x))
	})

	ip.RegisterNative("pow", 2, func(_ *Interpreter, args []Value) Value {
		return Num(math.Pow(argNum("pow", args, 0), argNum("pow", args, 1)))
	})

	ip.RegisterNative("min", 2, func(_ *Interpreter, args []Value) Value {
		return Num(math.Min(argNum("min", args, 0), argNum("min", args, 1)))
	})

	ip.RegisterNative("max", 2, func(_ *Interpreter, args []Value) Value {
		return Num(math.Max(argNum("max", args, 0), argNum("max", args, 1)))
	})

	// random(): uniform in [0, 1).
	ip.RegisterNative("random", 0, func(_ *Interpreter, _ []Value) Value {
		return Num(rand.Float64())
	})
}
