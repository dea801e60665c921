package compiler

import (
	"fmt"
	"path"
	"strings"

	"github.com/tactus-lang/tactus/internal/ir"
	"github.com/tactus-lang/tactus/internal/registry"
)

// Validate produces the complete semantic diagnostic set for a program.
//
// Every rule in the catalog runs on every call; nothing short-circuits.
// That is a deliberate UX contract: authors see all findings at once, and
// downstream stages still run so the caller can emit a provisional
// configuration alongside the diagnostics.
//
// Validate is a pure function of (program, registry view); it holds no
// state between calls and never mutates the program. A nil view skips the
// registry-backed rules (CSS selectors, labels) and runs everything else.
func Validate(prog *ir.Program, reg registry.View) []Diagnostic {
	v := &validator{prog: prog, reg: reg}

	v.checkImports()
	v.checkTimelines()
	v.checkOperations()

	return v.diags
}

type validator struct {
	prog  *ir.Program
	reg   registry.View
	diags []Diagnostic

	// Registry indexes are snapshots; fetch once per validation.
	cssOnce   bool
	css       registry.CSSIndex
	labelOnce bool
	labels    registry.LabelIndex
}

func (v *validator) report(d Diagnostic) {
	v.diags = append(v.diags, d)
}

func loc(l ir.Location) *ir.Location {
	return &l
}

// tokenLoc refines a selector argument's location to the token's sigil so the
// diagnostic points at the offending token, not the whole selector.
func tokenLoc(base ir.Location, offset int) *ir.Location {
	if base == (ir.Location{}) {
		return loc(base)
	}
	return &ir.Location{Line: base.Line, Column: base.Column + offset}
}

// ---------------------------------------------------------------------------
// Import integrity
// ---------------------------------------------------------------------------

// defaultImportCategories admit at most one default import each.
var defaultImportCategories = map[ir.ImportCategory]bool{
	ir.ImportLayout:   true,
	ir.ImportStyles:   true,
	ir.ImportProvider: true,
}

// audioExtensions and videoExtensions drive asset-type inference.
// Extensions in both sets are ambiguous and need an explicit annotation.
var (
	audioExtensions = map[string]bool{
		".mp3": true, ".wav": true, ".m4a": true, ".aac": true,
		".flac": true, ".ogg": true,
	}
	videoExtensions = map[string]bool{
		".mp4": true, ".mov": true, ".avi": true,
		".ogg": true, ".webm": true,
	}
)

func (v *validator) checkImports() {
	defaults := make(map[ir.ImportCategory]bool)
	names := make(map[string]bool)

	for _, imp := range v.prog.Imports {
		if imp.Default && defaultImportCategories[imp.Category] {
			if defaults[imp.Category] {
				v.report(Diagnostic{
					Severity: SeverityError,
					Code:     CodeDuplicateDefaultImport,
					Message:  fmt.Sprintf("duplicate default %s import", imp.Category),
					Hint:     fmt.Sprintf("only one default %s import is allowed per document; remove this import or give it a name", imp.Category),
					Loc:      loc(imp.Loc),
				})
			}
			defaults[imp.Category] = true
		}

		if imp.Name != "" {
			if names[imp.Name] {
				v.report(Diagnostic{
					Severity: SeverityError,
					Code:     CodeDuplicateImportName,
					Message:  fmt.Sprintf("duplicate import name %q", imp.Name),
					Hint:     "rename one of the imports so every imported name is unique",
					Loc:      loc(imp.Loc),
				})
			}
			names[imp.Name] = true

			if reservedKeywords[imp.Name] {
				v.report(Diagnostic{
					Severity: SeverityError,
					Code:     CodeReservedImportName,
					Message:  fmt.Sprintf("import name %q is a reserved keyword", imp.Name),
					Hint:     "choose a name that is not a Tactus keyword",
					Loc:      loc(imp.Loc),
				})
			} else if IsBuiltin(imp.Name) {
				v.report(Diagnostic{
					Severity: SeverityError,
					Code:     CodeReservedImportName,
					Message:  fmt.Sprintf("import name %q collides with a built-in operation", imp.Name),
					Hint:     "choose a name that does not shadow a built-in operation",
					Loc:      loc(imp.Loc),
				})
			}
		}

		v.checkAssetType(imp)
	}
}

func (v *validator) checkAssetType(imp ir.Import) {
	if imp.Category != ir.ImportAsset || imp.AssetType != "" {
		return
	}

	ext := strings.ToLower(path.Ext(imp.Path))
	isAudio := audioExtensions[ext]
	isVideo := videoExtensions[ext]

	switch {
	case isAudio && isVideo:
		v.report(Diagnostic{
			Severity: SeverityError,
			Code:     CodeAmbiguousAssetType,
			Message:  fmt.Sprintf("asset %q has ambiguous extension %q (could be audio or video)", imp.Path, ext),
			Hint:     "annotate the import with an explicit type, e.g. `as audio` or `as video`",
			Loc:      loc(imp.Loc),
		})
	case !isAudio && !isVideo:
		v.report(Diagnostic{
			Severity: SeverityError,
			Code:     CodeAmbiguousAssetType,
			Message:  fmt.Sprintf("asset %q has unrecognized extension %q", imp.Path, ext),
			Hint:     "annotate the import with an explicit asset type",
			Loc:      loc(imp.Loc),
		})
	}
}

// ---------------------------------------------------------------------------
// Timing
// ---------------------------------------------------------------------------

func (v *validator) checkTimelines() {
	for _, tl := range v.prog.Timelines {
		if tl.Provider.MediaBacked() && tl.Source == "" {
			v.report(Diagnostic{
				Severity: SeverityError,
				Code:     CodeMissingTimelineSource,
				Message:  fmt.Sprintf("%s timeline requires a source", tl.Provider),
				Hint:     fmt.Sprintf("bind the timeline to an imported %s asset", tl.Provider),
				Loc:      loc(tl.Loc),
			})
		}

		for _, action := range tl.Actions {
			v.checkActionTiming(action)
		}
	}
}

func (v *validator) checkActionTiming(action ir.TimelineAction) {
	d := action.Duration

	if d.Start < 0 {
		v.report(Diagnostic{
			Severity: SeverityError,
			Code:     CodeNegativeStartTime,
			Message:  fmt.Sprintf("negative start time %gs", d.Start),
			Hint:     "timeline actions must start at or after 0s",
			Loc:      loc(action.Loc),
		})
	}

	if d.End <= d.Start {
		v.report(Diagnostic{
			Severity: SeverityError,
			Code:     CodeInvalidTimeRange,
			Message:  fmt.Sprintf("end time must be greater than start time (start %gs, end %gs)", d.Start, d.End),
			Hint:     "extend the action's end time past its start time",
			Loc:      loc(action.Loc),
		})
	}

	if action.Origin == ir.OriginSequence && d.End-d.Start <= 0 {
		v.report(Diagnostic{
			Severity: SeverityError,
			Code:     CodeNonPositiveStepDuration,
			Message:  "sequence step duration must be positive",
			Hint:     "give every sequence step a duration greater than 0s",
			Loc:      loc(action.Loc),
		})
	}

	if action.Stagger != nil && action.Stagger.Delay <= 0 {
		v.report(Diagnostic{
			Severity: SeverityError,
			Code:     CodeNonPositiveStaggerDelay,
			Message:  "stagger delay must be greater than 0",
			Hint:     "use a positive delay so staggered items do not all start together",
			Loc:      loc(action.Loc),
		})
	}
}

// ---------------------------------------------------------------------------
// Operations: resolution, selectors, labels
// ---------------------------------------------------------------------------

// checkOperations walks every operation in the program, both inside
// timelines and inside user-defined action bodies.
func (v *validator) checkOperations() {
	for _, def := range v.prog.Actions {
		for _, op := range def.Operations {
			v.checkOperation(op)
		}
	}
	for _, tl := range v.prog.Timelines {
		for _, action := range tl.Actions {
			for _, op := range action.Operations {
				v.checkOperation(op)
			}
		}
	}
}

func (v *validator) checkOperation(op ir.Operation) {
	switch o := op.(type) {
	case ir.RawOperation:
		for _, arg := range o.Args {
			v.checkValue(arg)
		}
	case ir.ActionCall:
		if o.Def == nil {
			v.reportUnknownOperation(o)
		}
		for _, arg := range o.Args {
			v.checkValue(arg)
		}
	}
}

func (v *validator) reportUnknownOperation(o ir.ActionCall) {
	candidates := BuiltinNames()
	for _, def := range v.prog.Actions {
		candidates = append(candidates, def.Name)
	}

	hint := "define an action with this name or use a built-in operation"
	if match, ok := suggest(o.Name, candidates); ok {
		hint = fmt.Sprintf("did you mean %q?", match)
	}

	v.report(Diagnostic{
		Severity: SeverityError,
		Code:     CodeUnknownOperation,
		Message:  fmt.Sprintf("unknown operation %q", o.Name),
		Hint:     hint,
		Loc:      loc(o.Loc),
	})
}

func (v *validator) checkValue(val ir.Value) {
	switch value := val.(type) {
	case ir.SelectorValue:
		v.checkSelector(value)
	case ir.LabelValue:
		v.checkLabel(value)
	}
}

func (v *validator) cssIndex() (registry.CSSIndex, bool) {
	if v.reg == nil {
		return registry.CSSIndex{}, false
	}
	if !v.cssOnce {
		v.css = v.reg.CSSIndex(v.prog.DocumentURI)
		v.cssOnce = true
	}
	return v.css, v.css.HasSources
}

func (v *validator) labelIndex() (registry.LabelIndex, bool) {
	if v.reg == nil {
		return registry.LabelIndex{}, false
	}
	if !v.labelOnce {
		v.labels = v.reg.LabelIndex(v.prog.DocumentURI)
		v.labelOnce = true
	}
	return v.labels, v.labels.HasSources
}

// checkSelector reports one diagnostic per unknown class/ID token, each
// naming the offending token with a nearest-match suggestion.
func (v *validator) checkSelector(sel ir.SelectorValue) {
	idx, ok := v.cssIndex()
	if !ok {
		return
	}

	for _, token := range scanSelectorTokens(sel.Selector) {
		if token.IsID {
			if idx.HasID(token.Name) {
				continue
			}
			hint := "check the document's style imports for the available IDs"
			if match, ok := suggest(token.Name, idx.IDs); ok {
				hint = fmt.Sprintf("did you mean %q?", match)
			}
			v.report(Diagnostic{
				Severity: SeverityWarning,
				Code:     CodeUnknownCSSID,
				Message:  fmt.Sprintf("unknown ID %q in selector %q", token.Name, sel.Selector),
				Hint:     hint,
				Loc:      tokenLoc(sel.Loc, token.Index),
			})
		} else {
			if idx.HasClass(token.Name) {
				continue
			}
			hint := "check the document's style imports for the available classes"
			if match, ok := suggest(token.Name, idx.Classes); ok {
				hint = fmt.Sprintf("did you mean %q?", match)
			}
			v.report(Diagnostic{
				Severity: SeverityWarning,
				Code:     CodeUnknownCSSClass,
				Message:  fmt.Sprintf("unknown class %q in selector %q", token.Name, sel.Selector),
				Hint:     hint,
				Loc:      tokenLoc(sel.Loc, token.Index),
			})
		}
	}
}

func (v *validator) checkLabel(label ir.LabelValue) {
	idx, ok := v.labelIndex()
	if !ok {
		return
	}
	if idx.Has(label.ID) {
		return
	}

	hint := "check the document's label imports for the available label identifiers"
	if match, ok := suggest(label.ID, idx.IDs); ok {
		hint = fmt.Sprintf("did you mean %q?", match)
	}
	if len(idx.Languages) > 0 {
		hint += fmt.Sprintf(" (labels cover locales: %s)", strings.Join(idx.Languages, ", "))
	}

	v.report(Diagnostic{
		Severity: SeverityWarning,
		Code:     CodeUnknownLabel,
		Message:  fmt.Sprintf("unknown label %q", label.ID),
		Hint:     hint,
		Loc:      loc(label.Loc),
	})
}
