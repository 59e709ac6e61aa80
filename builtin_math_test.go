package lim

import (
	"strings"
	"testing"
)

func Test_Builtin_MathBasics(t *testing.T) {
	wantNum(t, evalSrc(t, `abs(-3);`), 3)
	wantNum(t, evalSrc(t, `abs(3);`), 3)
	wantNum(t, evalSrc(t, `floor(1.9);`), 1)
	wantNum(t, evalSrc(t, `ceil(1.1);`), 2)
	wantNum(t, evalSrc(t, `floor(-1.1);`), -2)
	wantNum(t, evalSrc(t, `sqrt(9);`), 3)
	wantNum(t, evalSrc(t, `pow(2, 10);`), 1024)
	wantNum(t, evalSrc(t, `min(3, 5);`), 3)
	wantNum(t, evalSrc(t, `max(3, 5);`), 5)
}

func Test_Builtin_SqrtNegative(t *testing.T) {
	msg := evalErr(t, `sqrt(-1);`)
	if !strings.Contains(msg, "must not be negative") {
		t.Fatalf("error: %q", msg)
	}
}

func Test_Builtin_Random(t *testing.T) {
	for i := 0; i < 20; i++ {
		v := evalSrc(t, `random();`)
		if v.Tag != VTNum {
			t.Fatalf("random: %#v", v)
		}
		f := v.Data.(float64)
		if f < 0 || f >= 1 {
			t.Fatalf("random out of range: %g", f)
		}
	}
}

func Test_Builtin_MathTypeChecks(t *testing.T) {
	msg := evalErr(t, `pow("2", 3);`)
	if !strings.Contains(msg, "argument 1 must be a number") {
		t.Fatalf("error: %q", msg)
	}
}
