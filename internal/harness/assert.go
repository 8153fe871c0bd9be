package harness

import "fmt"

// The Expect family records a failure and lets the phase continue; each
// call reports whether it passed. The Assert family records the failure
// the same way and then aborts the phase through the guard, so code
// after a failed Assert never runs.
//
// All comparisons resolve through the type registry. Both operands must
// share a builtin scalar tag or a registered type; anything else is a
// configuration error that terminates the run.

// ExpectEq checks left == right.
func (t *T) ExpectEq(left, right any, msg ...any) bool {
	return t.checkOrder("expect", "eq", passEq, left, right, false, msg)
}

// ExpectNe checks left != right.
func (t *T) ExpectNe(left, right any, msg ...any) bool {
	return t.checkOrder("expect", "ne", passNe, left, right, false, msg)
}

// ExpectLt checks left < right.
func (t *T) ExpectLt(left, right any, msg ...any) bool {
	return t.checkOrder("expect", "lt", passLt, left, right, false, msg)
}

// ExpectLe checks left <= right. Floats within the ULP tolerance count
// as equal, so Le holds for nearly equal values on either side.
func (t *T) ExpectLe(left, right any, msg ...any) bool {
	return t.checkOrder("expect", "le", passLe, left, right, false, msg)
}

// ExpectGt checks left > right.
func (t *T) ExpectGt(left, right any, msg ...any) bool {
	return t.checkOrder("expect", "gt", passGt, left, right, false, msg)
}

// ExpectGe checks left >= right.
func (t *T) ExpectGe(left, right any, msg ...any) bool {
	return t.checkOrder("expect", "ge", passGe, left, right, false, msg)
}

// ExpectTrue checks that v is true.
func (t *T) ExpectTrue(v bool, msg ...any) bool {
	return t.checkBool("expect", v, true, false, msg)
}

// ExpectFalse checks that v is false.
func (t *T) ExpectFalse(v bool, msg ...any) bool {
	return t.checkBool("expect", v, false, false, msg)
}

// AssertEq checks left == right and aborts the phase on failure.
func (t *T) AssertEq(left, right any, msg ...any) {
	t.checkOrder("assert", "eq", passEq, left, right, true, msg)
}

// AssertNe checks left != right and aborts the phase on failure.
func (t *T) AssertNe(left, right any, msg ...any) {
	t.checkOrder("assert", "ne", passNe, left, right, true, msg)
}

// AssertLt checks left < right and aborts the phase on failure.
func (t *T) AssertLt(left, right any, msg ...any) {
	t.checkOrder("assert", "lt", passLt, left, right, true, msg)
}

// AssertLe checks left <= right and aborts the phase on failure.
func (t *T) AssertLe(left, right any, msg ...any) {
	t.checkOrder("assert", "le", passLe, left, right, true, msg)
}

// AssertGt checks left > right and aborts the phase on failure.
func (t *T) AssertGt(left, right any, msg ...any) {
	t.checkOrder("assert", "gt", passGt, left, right, true, msg)
}

// AssertGe checks left >= right and aborts the phase on failure.
func (t *T) AssertGe(left, right any, msg ...any) {
	t.checkOrder("assert", "ge", passGe, left, right, true, msg)
}

// AssertTrue checks that v is true and aborts the phase on failure.
func (t *T) AssertTrue(v bool, msg ...any) {
	t.checkBool("assert", v, true, true, msg)
}

// AssertFalse checks that v is false and aborts the phase on failure.
func (t *T) AssertFalse(v bool, msg ...any) {
	t.checkBool("assert", v, false, true, msg)
}

func passEq(order int) bool { return order == 0 }
func passNe(order int) bool { return order != 0 }
func passLt(order int) bool { return order < 0 }
func passLe(order int) bool { return order <= 0 }
func passGt(order int) bool { return order > 0 }
func passGe(order int) bool { return order >= 0 }

func (t *T) checkOrder(family, op string, pass func(int) bool, left, right any, abortOnFail bool, msg []any) bool {
	site := callSite(3)
	cmp, err := t.types.Compare(left, right)
	if err != nil {
		t.fatalConfig(site, err)
		return false
	}
	if pass(cmp.Order) {
		return true
	}
	t.failed = true
	fmt.Fprintf(t.out, "%s: %s_%s failed (%s)\n", site, family, op, cmp.TypeName)
	fmt.Fprintf(t.out, "  left:  %s\n", t.types.FormatValue(left))
	fmt.Fprintf(t.out, "  right: %s\n", t.types.FormatValue(right))
	if note := formatNote(msg); note != "" {
		fmt.Fprintf(t.out, "  note:  %s\n", note)
	}
	if t.breakOnFailure {
		t.breakpoint()
	}
	if abortOnFail {
		t.abortPhase()
	}
	return false
}

func (t *T) checkBool(family string, v, want bool, abortOnFail bool, msg []any) bool {
	if v == want {
		return true
	}
	t.failed = true
	op := "true"
	if !want {
		op = "false"
	}
	fmt.Fprintf(t.out, "%s: %s_%s failed (bool)\n", callSite(3), family, op)
	fmt.Fprintf(t.out, "  value: %t\n", v)
	if note := formatNote(msg); note != "" {
		fmt.Fprintf(t.out, "  note:  %s\n", note)
	}
	if t.breakOnFailure {
		t.breakpoint()
	}
	if abortOnFail {
		t.abortPhase()
	}
	return false
}

// formatNote renders the optional trailing message arguments: a lone
// argument prints as-is, a leading string with further arguments acts
// as a format string.
func formatNote(msg []any) string {
	switch {
	case len(msg) == 0:
		return ""
	case len(msg) == 1:
		return fmt.Sprint(msg[0])
	default:
		if format, ok := msg[0].(string); ok {
			return fmt.Sprintf(format, msg[1:]...)
		}
		return fmt.Sprint(msg...)
	}
}
