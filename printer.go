// printer.go: rendering runtime values as text
//
// Two modes exist. `FormatValue` is the plain mode used by print/str and by
// string concatenation: numbers drop a trailing ".0" when whole, strings
// appear without quotes. `FormatValueREPL` is the echo mode for interactive
// sessions and quotes strings so `"1"` and `1` stay distinguishable.
package lim

import (
	"fmt"
	"strconv"
)

// FormatValue renders v for program output and concatenation.
func FormatValue(v Value) string {
	switch v.Tag {
	case VTNull:
		return "null"
	case VTBool:
		if v.Data.(bool) {
			return "true"
		}
		return "false"
	case VTNum:
		return formatNum(v.Data.(float64))
	case VTStr:
		return v.Data.(string)
	case VTFun:
		f := v.Data.(*Fun)
		if f.NativeName != "" {
			return fmt.Sprintf("<native fn %s>", f.NativeName)
		}
		if f.Name != "" {
			return fmt.Sprintf("<fn %s>", f.Name)
		}
		return "<fn>"
	}
	return "<unknown>"
}

// FormatValueREPL renders v for interactive echo, quoting strings.
func FormatValueREPL(v Value) string {
	if v.Tag == VTStr {
		return strconv.Quote(v.Data.(string))
	}
	return FormatValue(v)
}

// formatNum prints whole doubles without an exponent or decimal point,
// so 120.0 comes out as "120" and 0.5 as "0.5".
func formatNum(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
