// Package ast defines the read-only Tactus syntax tree handed to the
// compiler by the external parser, plus the JSON wire decoding for it.
//
// The tree arrives fully parsed and scope-resolved; the compiler never
// re-parses source text. Node variants are sealed interfaces so lowering
// can switch over them exhaustively; a variant the switch does not know
// is a parser/compiler contract violation, not user error.
package ast

import "github.com/tactus-lang/tactus/internal/ir"

// Document is the root node of one parsed Tactus source file.
type Document struct {
	URI       string
	Imports   []Import
	Actions   []ActionDef
	Timelines []Timeline
}

// Import is an import statement.
type Import struct {
	Category string // "layout", "styles", "provider", "labels", "asset"
	Name     string
	Path     string
	Default  bool
	// AssetType is the explicit type annotation for asset imports
	// ("audio", "video"); empty when the author omitted it.
	AssetType string
	Loc       ir.Location
}

// ActionDef is a user-defined action declaration.
type ActionDef struct {
	Name   string
	Params []string
	Calls  []Call
	Loc    ir.Location
}

// Timeline declares a provider-driven timeline over a container element.
type Timeline struct {
	Provider  string
	Container string
	Source    string
	Entries   []Entry
	Loc       ir.Location
}

// Entry is one timing construct inside a timeline body.
type Entry interface {
	isEntry()
	Location() ir.Location
}

// AtEntry is the `at` construct. Interval form sets End (`at 1s..5s`);
// point form sets For (`at 1s for 2s`). Exactly one of End/For is non-nil
// in grammatically valid input.
type AtEntry struct {
	Start TimeLit
	End   *TimeLit
	For   *TimeLit
	Calls []Call
	Loc   ir.Location
}

// SequenceEntry is the `sequence` construct: steps run back to back, each
// step's start the cumulative sum of the durations before it.
type SequenceEntry struct {
	Start TimeLit
	Steps []SequenceStep
	Loc   ir.Location
}

// SequenceStep is one `step for D` inside a sequence.
type SequenceStep struct {
	For  TimeLit
	Call Call
	Loc  ir.Location
}

// StaggerEntry is the `stagger` construct: the call is repeated per item,
// offset by Delay per index.
type StaggerEntry struct {
	Start TimeLit
	Delay TimeLit
	Items []string
	Call  Call
	For   TimeLit
	Loc   ir.Location
}

func (AtEntry) isEntry()       {}
func (SequenceEntry) isEntry() {}
func (StaggerEntry) isEntry()  {}

// Location implements Entry.
func (e AtEntry) Location() ir.Location { return e.Loc }

// Location implements Entry.
func (e SequenceEntry) Location() ir.Location { return e.Loc }

// Location implements Entry.
func (e StaggerEntry) Location() ir.Location { return e.Loc }

// Call is an operation invocation; the callee may be a built-in or a
// user-defined action (lowering decides which).
type Call struct {
	Name string
	Args []Arg
	Loc  ir.Location
}

// Arg is a literal or reference argument of a call.
type Arg interface {
	isArg()
}

// StringArg is a string literal argument.
type StringArg struct {
	Value string
	Loc   ir.Location
}

// NumberArg is a numeric literal argument.
type NumberArg struct {
	Value float64
	Loc   ir.Location
}

// BoolArg is a boolean literal argument.
type BoolArg struct {
	Value bool
	Loc   ir.Location
}

// TimeArg is a time literal argument, kept as text until lowering
// evaluates it.
type TimeArg struct {
	Text string
	Loc  ir.Location
}

// IdentArg references an imported name (asset, provider, layout).
type IdentArg struct {
	Name string
	Loc  ir.Location
}

func (StringArg) isArg() {}
func (NumberArg) isArg() {}
func (BoolArg) isArg()   {}
func (TimeArg) isArg()   {}
func (IdentArg) isArg()  {}

// TimeLit is an unevaluated time literal.
type TimeLit struct {
	Text string
	Loc  ir.Location
}
