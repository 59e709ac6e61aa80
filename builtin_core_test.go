package lim

import (
	"strings"
	"testing"
)

func Test_Builtin_Str(t *testing.T) {
	wantStr(t, evalSrc(t, `str(120);`), "120")
	wantStr(t, evalSrc(t, `str(1.5);`), "1.5")
	wantStr(t, evalSrc(t, `str(true);`), "true")
	wantStr(t, evalSrc(t, `str("x");`), "x")
	wantStr(t, evalSrc(t, `let n; str(n);`), "null")
}

func Test_Builtin_Num(t *testing.T) {
	wantNum(t, evalSrc(t, `num("42");`), 42)
	wantNum(t, evalSrc(t, `num(" 1.5 ");`), 1.5)
	wantNum(t, evalSrc(t, `num(7);`), 7)

	msg := evalErr(t, `num("not a number");`)
	if !strings.Contains(msg, "cannot parse") {
		t.Fatalf("error: %q", msg)
	}
	msg = evalErr(t, `num(true);`)
	if !strings.Contains(msg, "cannot convert") {
		t.Fatalf("error: %q", msg)
	}
}

func Test_Builtin_Len(t *testing.T) {
	wantNum(t, evalSrc(t, `len("");`), 0)
	wantNum(t, evalSrc(t, `len("abc");`), 3)
	wantNum(t, evalSrc(t, `len("héllo");`), 5) // runes, not bytes

	msg := evalErr(t, `len(3);`)
	if !strings.Contains(msg, "must be a string") {
		t.Fatalf("error: %q", msg)
	}
}

func Test_Builtin_Clock(t *testing.T) {
	v := evalSrc(t, `clock();`)
	if v.Tag != VTNum || v.Data.(float64) <= 0 {
		t.Fatalf("clock: %#v", v)
	}
}

func Test_Builtin_PrintFormatting(t *testing.T) {
	got := runSrc(t, `let n; println(1, "two", true, n);`)
	if got != "1 two true null\n" {
		t.Fatalf("output: %q", got)
	}
}

func Test_Builtin_ArityChecked(t *testing.T) {
	msg := evalErr(t, `len("a", "b");`)
	if !strings.Contains(msg, "expects 1 argument(s), got 2") {
		t.Fatalf("error: %q", msg)
	}
}

func Test_Builtin_Shadowable(t *testing.T) {
	// user globals sit above the native layer
	wantStr(t, evalSrc(t, `let len = "mine"; len;`), "mine")
}
