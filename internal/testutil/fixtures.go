// Package testutil provides shared fixture builders for compiler tests.
//
// The builders construct well-formed syntax trees the way the parser
// would, so pipeline tests exercise realistic input without depending on
// the external parser.
package testutil

import (
	"github.com/tactus-lang/tactus/internal/ast"
	"github.com/tactus-lang/tactus/internal/ir"
)

// Lit builds a time literal at a default location.
func Lit(text string) ast.TimeLit {
	return ast.TimeLit{Text: text, Loc: ir.Location{Line: 1, Column: 1}}
}

// LitPtr builds a time literal pointer, for the optional interval fields.
func LitPtr(text string) *ast.TimeLit {
	l := Lit(text)
	return &l
}

// Call builds an operation call with string arguments.
func Call(name string, args ...ast.Arg) ast.Call {
	return ast.Call{Name: name, Args: args, Loc: ir.Location{Line: 1, Column: 1}}
}

// Str builds a string literal argument.
func Str(v string) ast.Arg {
	return ast.StringArg{Value: v, Loc: ir.Location{Line: 1, Column: 1}}
}

// At builds an interval-form at entry (`at start..end`).
func At(start, end string, calls ...ast.Call) ast.AtEntry {
	return ast.AtEntry{
		Start: Lit(start),
		End:   LitPtr(end),
		Calls: calls,
		Loc:   ir.Location{Line: 1, Column: 1},
	}
}

// AtFor builds a point-form at entry (`at start for dur`).
func AtFor(start, dur string, calls ...ast.Call) ast.AtEntry {
	return ast.AtEntry{
		Start: Lit(start),
		For:   LitPtr(dur),
		Calls: calls,
		Loc:   ir.Location{Line: 1, Column: 1},
	}
}

// Doc wraps timelines into a document with a stable URI.
func Doc(timelines ...ast.Timeline) *ast.Document {
	return &ast.Document{
		URI:       "file:///test/demo.tac",
		Timelines: timelines,
	}
}

// RAFTimeline builds a raf-provider timeline over the given entries.
func RAFTimeline(entries ...ast.Entry) ast.Timeline {
	return ast.Timeline{
		Provider:  "raf",
		Container: ".stage",
		Entries:   entries,
		Loc:       ir.Location{Line: 1, Column: 1},
	}
}
