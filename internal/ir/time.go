package ir

import (
	"regexp"
	"strconv"
)

// timeLiteralPattern matches the two accepted time literal forms:
// a decimal number suffixed with "s" (seconds) or "ms" (milliseconds).
var timeLiteralPattern = regexp.MustCompile(`^(\d+(?:\.\d+)?)(s|ms)$`)

// EvalTime converts a time literal to seconds.
//
// "5s" -> 5, "500ms" -> 0.5, "1.5s" -> 1.5. Any text that does not match
// the literal grammar evaluates to 0. Malformed literals are expected to
// be rejected by syntax validation before lowering runs, so this function
// is total and never reports an error.
func EvalTime(text string) float64 {
	m := timeLiteralPattern.FindStringSubmatch(text)
	if m == nil {
		return 0
	}

	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		// The pattern guarantees a parseable decimal; this is unreachable.
		return 0
	}

	if m[2] == "ms" {
		value /= 1000
	}
	return value
}

// Duration is a half-open time interval in seconds.
//
// Validity (End > Start, Start >= 0) is enforced by the validator, not by
// construction: invalid intervals must survive lowering so diagnostics can
// point at them.
type Duration struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Valid reports whether the interval can execute at runtime.
func (d Duration) Valid() bool {
	return d.Start >= 0 && d.End > d.Start
}
