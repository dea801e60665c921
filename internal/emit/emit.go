// Package emit serializes optimized IR into the runtime engine's JSON
// configuration. Output is canonical: the same program always produces
// byte-identical bytes, so configs can be diffed and content-addressed.
package emit

import (
	"errors"
	"fmt"

	"github.com/tactus-lang/tactus/internal/ir"
)

// ConfigVersion is the runtime configuration schema version this emitter
// produces.
const ConfigVersion = 1

// EmitError reports an IR value the configuration schema cannot
// represent, with the JSON path of the offending field.
type EmitError struct {
	Path    string
	Message string
}

func (e *EmitError) Error() string {
	return fmt.Sprintf("emit: %s: %s", e.Path, e.Message)
}

// Emit serializes a program to the runtime configuration. It is
// deterministic and total over well-formed IR; the only failure mode is
// a value JSON cannot carry (non-finite times), reported as *EmitError.
func Emit(prog *ir.Program) ([]byte, error) {
	config := map[string]any{
		"version":   ConfigVersion,
		"actions":   emitActionDefs(prog.Actions),
		"timelines": emitTimelines(prog.Timelines),
	}

	data, err := ir.MarshalCanonical(config)
	if err != nil {
		var nonFinite *ir.NonFiniteError
		if errors.As(err, &nonFinite) {
			return nil, &EmitError{
				Path:    nonFinite.Path,
				Message: fmt.Sprintf("non-finite time value %v", nonFinite.Value),
			}
		}
		return nil, &EmitError{Path: "$", Message: err.Error()}
	}
	return data, nil
}

func emitActionDefs(defs []ir.ActionDef) []any {
	out := make([]any, len(defs))
	for i, def := range defs {
		params := make([]any, len(def.Params))
		for j, p := range def.Params {
			params[j] = p
		}
		out[i] = map[string]any{
			"name":       def.Name,
			"params":     params,
			"operations": emitOperations(def.Operations),
		}
	}
	return out
}

func emitTimelines(timelines []ir.Timeline) []any {
	out := make([]any, len(timelines))
	for i, tl := range timelines {
		entry := map[string]any{
			"provider":  string(tl.Provider),
			"container": tl.ContainerSelector,
			"actions":   emitTimelineActions(tl.Actions),
		}
		if tl.Source != "" {
			entry["source"] = tl.Source
		}
		out[i] = entry
	}
	return out
}

func emitTimelineActions(actions []ir.TimelineAction) []any {
	out := make([]any, len(actions))
	for i, action := range actions {
		out[i] = map[string]any{
			"duration": map[string]any{
				"start": action.Duration.Start,
				"end":   action.Duration.End,
			},
			"operations": emitOperations(action.Operations),
		}
	}
	return out
}

func emitOperations(ops []ir.Operation) []any {
	out := make([]any, len(ops))
	for i, op := range ops {
		switch o := op.(type) {
		case ir.RawOperation:
			out[i] = map[string]any{
				"op":   o.Name,
				"args": emitArgs(o.Args),
			}
		case ir.ActionCall:
			out[i] = map[string]any{
				"action": o.Name,
				"args":   emitArgs(o.Args),
			}
		}
	}
	return out
}

// emitArgs resolves IR argument values to their runtime JSON shape:
// literals and registry-checked strings flatten to JSON scalars, asset
// references keep a tagged object so the runtime can bind them.
func emitArgs(args []ir.Value) []any {
	out := make([]any, len(args))
	for i, arg := range args {
		switch a := arg.(type) {
		case ir.StringValue:
			out[i] = a.Val
		case ir.NumberValue:
			out[i] = a.Val
		case ir.BoolValue:
			out[i] = a.Val
		case ir.TimeValue:
			out[i] = a.Seconds
		case ir.SelectorValue:
			out[i] = a.Selector
		case ir.LabelValue:
			out[i] = a.ID
		case ir.RefValue:
			out[i] = map[string]any{"ref": a.Name}
		}
	}
	return out
}
