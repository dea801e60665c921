package compiler

import "sort"

// ParamKind classifies a built-in operation parameter so lowering can
// turn the corresponding argument into the right IR value (selectors and
// labels get registry-checked, times get evaluated).
type ParamKind int

// Built-in parameter kinds.
const (
	ParamSelector ParamKind = iota // CSS selector, validated against the CSS registry
	ParamClass                     // single class name, validated against the CSS registry
	ParamLabel                     // label identifier, validated against the label registry
	ParamTime                      // time literal, evaluated to seconds
	ParamString
	ParamNumber
	ParamBool
	ParamRef // imported name (asset, provider, layout)
)

// Builtin describes one built-in runtime operation.
type Builtin struct {
	Name   string
	Params []ParamKind
}

// builtins is the fixed catalog of built-in operation names. Lowering
// resolves callee names against the document's action definitions first,
// then this catalog; names matching neither are deferred to validation.
var builtins = map[string]Builtin{
	"selectElement": {Name: "selectElement", Params: []ParamKind{ParamSelector}},
	"show":          {Name: "show", Params: []ParamKind{ParamSelector}},
	"hide":          {Name: "hide", Params: []ParamKind{ParamSelector}},
	"fadeIn":        {Name: "fadeIn", Params: []ParamKind{ParamSelector, ParamTime}},
	"fadeOut":       {Name: "fadeOut", Params: []ParamKind{ParamSelector, ParamTime}},
	"addClass":      {Name: "addClass", Params: []ParamKind{ParamSelector, ParamClass}},
	"removeClass":   {Name: "removeClass", Params: []ParamKind{ParamSelector, ParamClass}},
	"toggleClass":   {Name: "toggleClass", Params: []ParamKind{ParamSelector, ParamClass}},
	"setText":       {Name: "setText", Params: []ParamKind{ParamSelector, ParamString}},
	"setLabel":      {Name: "setLabel", Params: []ParamKind{ParamSelector, ParamLabel}},
	"setStyle":      {Name: "setStyle", Params: []ParamKind{ParamSelector, ParamString, ParamString}},
	"scrollTo":      {Name: "scrollTo", Params: []ParamKind{ParamSelector}},
	"play":          {Name: "play", Params: []ParamKind{ParamRef}},
	"pause":         {Name: "pause", Params: []ParamKind{ParamRef}},
	"seek":          {Name: "seek", Params: []ParamKind{ParamRef, ParamTime}},
}

// IsBuiltin reports whether name is a built-in operation.
func IsBuiltin(name string) bool {
	_, ok := builtins[name]
	return ok
}

// BuiltinNames returns the catalog names in sorted order, for suggestion
// candidates and reserved-name checks.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// reservedKeywords are language keywords import names may not shadow.
var reservedKeywords = map[string]bool{
	"action":   true,
	"at":       true,
	"for":      true,
	"import":   true,
	"in":       true,
	"sequence": true,
	"stagger":  true,
	"timeline": true,
	"with":     true,
}
