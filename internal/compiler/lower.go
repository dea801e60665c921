package compiler

import (
	"fmt"
	"strings"

	"github.com/tactus-lang/tactus/internal/ast"
	"github.com/tactus-lang/tactus/internal/ir"
)

// Lower transforms a parsed document into IR. The transformation is
// deterministic and total over well-formed trees: every node maps to
// exactly one IR node and none are dropped (dropping is the optimizer's
// job). Unresolved callee names and invalid intervals are preserved for
// the validator; only a structurally impossible tree returns an error,
// and that error is a *TransformError.
//
// Lowering never touches registries or the file system.
func Lower(doc *ast.Document) (*ir.Program, error) {
	if doc == nil {
		return nil, &TransformError{Node: "document", Message: "nil document"}
	}

	l := &lowerer{actions: make(map[string]*ir.ActionDef)}

	prog := &ir.Program{DocumentURI: doc.URI}

	for _, imp := range doc.Imports {
		prog.Imports = append(prog.Imports, ir.Import{
			Category:  ir.ImportCategory(imp.Category),
			Name:      imp.Name,
			Path:      imp.Path,
			Default:   imp.Default,
			AssetType: imp.AssetType,
			Loc:       imp.Loc,
		})
	}

	// Action definitions form the symbol table calls resolve against.
	// Two passes: register names first so definitions may call each other
	// regardless of declaration order (the parser already rejected
	// recursion).
	for _, def := range doc.Actions {
		prog.Actions = append(prog.Actions, ir.ActionDef{
			Name:   def.Name,
			Params: def.Params,
			Loc:    def.Loc,
		})
	}
	for i := range prog.Actions {
		l.actions[prog.Actions[i].Name] = &prog.Actions[i]
	}
	for i, def := range doc.Actions {
		for _, call := range def.Calls {
			prog.Actions[i].Operations = append(prog.Actions[i].Operations, l.lowerCall(call))
		}
	}

	for _, tl := range doc.Timelines {
		timeline, err := l.lowerTimeline(tl)
		if err != nil {
			return nil, err
		}
		prog.Timelines = append(prog.Timelines, timeline)
	}

	return prog, nil
}

type lowerer struct {
	actions map[string]*ir.ActionDef
}

func (l *lowerer) lowerTimeline(tl ast.Timeline) (ir.Timeline, error) {
	provider := ir.Provider(tl.Provider)
	switch provider {
	case ir.ProviderVideo, ir.ProviderAudio, ir.ProviderRAF, ir.ProviderCustom:
	default:
		return ir.Timeline{}, &TransformError{
			Node:    "timeline",
			Message: fmt.Sprintf("unknown provider %q", tl.Provider),
			Loc:     tl.Loc,
		}
	}

	timeline := ir.Timeline{
		Provider:          provider,
		ContainerSelector: tl.Container,
		Source:            tl.Source,
		Loc:               tl.Loc,
	}

	for _, entry := range tl.Entries {
		actions, err := l.lowerEntry(entry)
		if err != nil {
			return ir.Timeline{}, err
		}
		timeline.Actions = append(timeline.Actions, actions...)
	}

	return timeline, nil
}

// lowerEntry expands one timing construct into its timeline actions.
// The switch is exhaustive over the sealed Entry variants.
func (l *lowerer) lowerEntry(entry ast.Entry) ([]ir.TimelineAction, error) {
	switch e := entry.(type) {
	case ast.AtEntry:
		return l.lowerAt(e)
	case ast.SequenceEntry:
		return l.lowerSequence(e), nil
	case ast.StaggerEntry:
		return l.lowerStagger(e), nil
	default:
		return nil, &TransformError{
			Node:    "entry",
			Message: fmt.Sprintf("unknown entry variant %T", entry),
			Loc:     entry.Location(),
		}
	}
}

func (l *lowerer) lowerAt(e ast.AtEntry) ([]ir.TimelineAction, error) {
	start := ir.EvalTime(e.Start.Text)

	var end float64
	switch {
	case e.End != nil:
		end = ir.EvalTime(e.End.Text)
	case e.For != nil:
		end = start + ir.EvalTime(e.For.Text)
	default:
		// The grammar guarantees either an interval or a companion
		// duration clause.
		return nil, &TransformError{
			Node:    "at",
			Message: "at entry has neither end time nor duration",
			Loc:     e.Loc,
		}
	}

	action := ir.TimelineAction{
		Duration: ir.Duration{Start: start, End: end},
		Loc:      e.Loc,
		Origin:   ir.OriginAt,
	}
	for _, call := range e.Calls {
		action.Operations = append(action.Operations, l.lowerCall(call))
	}
	return []ir.TimelineAction{action}, nil
}

func (l *lowerer) lowerSequence(e ast.SequenceEntry) []ir.TimelineAction {
	cursor := ir.EvalTime(e.Start.Text)

	actions := make([]ir.TimelineAction, 0, len(e.Steps))
	for _, step := range e.Steps {
		d := ir.EvalTime(step.For.Text)
		actions = append(actions, ir.TimelineAction{
			Duration:   ir.Duration{Start: cursor, End: cursor + d},
			Operations: []ir.Operation{l.lowerCall(step.Call)},
			Loc:        step.Loc,
			Origin:     ir.OriginSequence,
		})
		cursor += d
	}
	return actions
}

func (l *lowerer) lowerStagger(e ast.StaggerEntry) []ir.TimelineAction {
	base := ir.EvalTime(e.Start.Text)
	delay := ir.EvalTime(e.Delay.Text)
	dur := ir.EvalTime(e.For.Text)

	actions := make([]ir.TimelineAction, 0, len(e.Items))
	for i, item := range e.Items {
		start := base + float64(i)*delay
		op := l.lowerStaggerCall(e.Call, item)
		action := ir.TimelineAction{
			Duration:   ir.Duration{Start: start, End: start + dur},
			Operations: []ir.Operation{op},
			Loc:        e.Loc,
			Origin:     ir.OriginStagger,
		}
		if i == 0 {
			action.Stagger = &ir.StaggerInfo{Delay: delay, Items: len(e.Items)}
		}
		actions = append(actions, action)
	}
	return actions
}

// lowerStaggerCall lowers the repeated call with the current item bound
// as its leading selector argument.
func (l *lowerer) lowerStaggerCall(call ast.Call, item string) ir.Operation {
	bound := ast.Call{Name: call.Name, Loc: call.Loc}
	bound.Args = append(bound.Args, ast.StringArg{Value: item, Loc: call.Loc})
	bound.Args = append(bound.Args, call.Args...)
	return l.lowerCall(bound)
}

// lowerCall resolves a callee name: document action definitions shadow the
// built-in catalog; names matching neither lower to an unresolved
// ActionCall the validator reports.
func (l *lowerer) lowerCall(call ast.Call) ir.Operation {
	if def, ok := l.actions[call.Name]; ok {
		return ir.ActionCall{
			Name: call.Name,
			Def:  def,
			Args: lowerPlainArgs(call.Args),
			Loc:  call.Loc,
		}
	}

	if b, ok := builtins[call.Name]; ok {
		return ir.RawOperation{
			Name: call.Name,
			Args: lowerBuiltinArgs(b, call.Args),
			Loc:  call.Loc,
		}
	}

	return ir.ActionCall{
		Name: call.Name,
		Args: lowerPlainArgs(call.Args),
		Loc:  call.Loc,
	}
}

// lowerBuiltinArgs classifies arguments by the catalog's parameter kinds.
// Arguments beyond the declared parameters (or mismatching the expected
// literal shape) fall back to their literal lowering; argument-arity
// checking is grammar-level and not re-done here.
func lowerBuiltinArgs(b Builtin, args []ast.Arg) []ir.Value {
	values := make([]ir.Value, 0, len(args))
	for i, arg := range args {
		var kind ParamKind = ParamString
		if i < len(b.Params) {
			kind = b.Params[i]
		}

		s, isString := arg.(ast.StringArg)
		switch {
		case kind == ParamSelector && isString:
			values = append(values, ir.SelectorValue{Selector: s.Value, Loc: s.Loc})
		case kind == ParamClass && isString:
			values = append(values, ir.SelectorValue{Selector: classSelector(s.Value), Loc: s.Loc})
		case kind == ParamLabel && isString:
			values = append(values, ir.LabelValue{ID: s.Value, Loc: s.Loc})
		default:
			values = append(values, lowerPlainArg(arg))
		}
	}
	return values
}

// classSelector turns a bare class name into selector form so class
// arguments share the selector validation path.
func classSelector(name string) string {
	if strings.HasPrefix(name, ".") {
		return name
	}
	return "." + name
}

func lowerPlainArgs(args []ast.Arg) []ir.Value {
	values := make([]ir.Value, 0, len(args))
	for _, arg := range args {
		values = append(values, lowerPlainArg(arg))
	}
	return values
}

func lowerPlainArg(arg ast.Arg) ir.Value {
	switch a := arg.(type) {
	case ast.StringArg:
		return ir.StringValue{Val: a.Value}
	case ast.NumberArg:
		return ir.NumberValue{Val: a.Value}
	case ast.BoolArg:
		return ir.BoolValue{Val: a.Value}
	case ast.TimeArg:
		return ir.TimeValue{Seconds: ir.EvalTime(a.Text)}
	case ast.IdentArg:
		return ir.RefValue{Name: a.Name}
	default:
		// Sealed interface; unreachable without a parser contract break.
		return ir.StringValue{}
	}
}
