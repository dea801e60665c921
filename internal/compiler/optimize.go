package compiler

import (
	"math"

	"github.com/tactus-lang/tactus/internal/ir"
)

// Optimize removes timeline actions that can never execute: zero or
// negative intervals (end <= start) and negative starts. The validator
// already reports these as errors; removal still happens so a broken
// document produces a runnable configuration instead of crashing the
// runtime.
//
// Optimize is total (no error channel), a pure filter (surviving actions
// keep their order and timing exactly), and idempotent: the removal
// predicates depend only on settled numeric fields, so a second pass
// removes nothing. The input program is not mutated.
func Optimize(prog *ir.Program) *ir.Program {
	out := *prog
	out.Timelines = make([]ir.Timeline, len(prog.Timelines))

	for i, tl := range prog.Timelines {
		optimized := tl
		optimized.Actions = make([]ir.TimelineAction, 0, len(tl.Actions))
		for _, action := range tl.Actions {
			if removable(action.Duration) {
				continue
			}
			optimized.Actions = append(optimized.Actions, action)
		}
		out.Timelines[i] = optimized
	}

	return &out
}

// removable decides whether an action is dead. Actions whose duration
// fields are not well-formed numbers are kept: lowering should never
// produce NaN, but future timing constructs may relax that, and dropping
// an action on garbage input would hide the bug.
func removable(d ir.Duration) bool {
	if math.IsNaN(d.Start) || math.IsNaN(d.End) {
		return false
	}
	return d.End <= d.Start || d.Start < 0
}
