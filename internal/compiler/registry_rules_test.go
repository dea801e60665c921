package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tactus-lang/tactus/internal/ir"
	"github.com/tactus-lang/tactus/internal/registry"
)

const testDocURI = "file:///test/demo.tac"

func cssView(t *testing.T, classes []string, ids []string) registry.View {
	t.Helper()
	store := registry.NewStore(nil)
	store.SetCSS("file:///test/theme.css", registry.CSSEntry{Classes: classes, IDs: ids})
	store.SetDocumentImports(testDocURI, []string{"file:///test/theme.css"}, nil)
	return store
}

func labelView(t *testing.T, ids ...string) registry.View {
	t.Helper()
	entries := make([]registry.LabelEntry, len(ids))
	for i, id := range ids {
		entries[i] = registry.LabelEntry{ID: id, TranslationCount: 1, LanguageCodes: []string{"en"}}
	}
	store := registry.NewStore(nil)
	store.SetLabels("file:///test/app.labels.yaml", entries)
	store.SetDocumentImports(testDocURI, nil, []string{"file:///test/app.labels.yaml"})
	return store
}

func selectorProgram(selector string) *ir.Program {
	return &ir.Program{
		DocumentURI: testDocURI,
		Timelines: []ir.Timeline{{
			Provider:          ir.ProviderRAF,
			ContainerSelector: ".stage",
			Actions: []ir.TimelineAction{{
				Duration: ir.Duration{Start: 0, End: 1},
				Operations: []ir.Operation{
					ir.RawOperation{Name: "selectElement", Args: []ir.Value{
						ir.SelectorValue{Selector: selector},
					}},
				},
			}},
		}},
	}
}

// =============================================================================
// CSS Selector Validation
// =============================================================================

func TestValidateSelectorUnknownClassReportedPerToken(t *testing.T) {
	reg := cssView(t, []string{"button", "container"}, nil)

	diags := Validate(selectorProgram(".button.primary"), reg)
	found := diagsByCode(diags, CodeUnknownCSSClass)
	require.Len(t, found, 1, "known token passes, unknown token is reported")
	assert.Contains(t, found[0].Message, "primary")
	assert.Equal(t, SeverityWarning, found[0].Severity)
}

func TestValidateSelectorTwoUnknownClassesTwoDiagnostics(t *testing.T) {
	reg := cssView(t, []string{"button"}, nil)

	diags := Validate(selectorProgram(".missing.absent"), reg)
	found := diagsByCode(diags, CodeUnknownCSSClass)
	require.Len(t, found, 2)
	assert.Contains(t, found[0].Message, "missing")
	assert.Contains(t, found[1].Message, "absent")
}

func TestValidateSelectorDiagnosticPointsAtToken(t *testing.T) {
	reg := cssView(t, []string{"button"}, nil)

	prog := selectorProgram(".button.primary")
	raw := prog.Timelines[0].Actions[0].Operations[0].(ir.RawOperation)
	raw.Args[0] = ir.SelectorValue{
		Selector: ".button.primary",
		Loc:      ir.Location{Line: 4, Column: 10},
	}

	diags := Validate(prog, reg)
	found := diagsByCode(diags, CodeUnknownCSSClass)
	require.Len(t, found, 1)
	require.NotNil(t, found[0].Loc)
	// ".primary" starts 7 runes into the selector text.
	assert.Equal(t, 4, found[0].Loc.Line)
	assert.Equal(t, 17, found[0].Loc.Column)
}

func TestValidateSelectorSuggestsNearestClass(t *testing.T) {
	reg := cssView(t, []string{"primary", "container"}, nil)

	diags := Validate(selectorProgram(".primry"), reg)
	found := diagsByCode(diags, CodeUnknownCSSClass)
	require.Len(t, found, 1)
	assert.Contains(t, found[0].Hint, "did you mean")
	assert.Contains(t, found[0].Hint, `"primary"`)
}

func TestValidateSelectorNoSuggestionBeyondThreshold(t *testing.T) {
	reg := cssView(t, []string{"container"}, nil)

	diags := Validate(selectorProgram(".x"), reg)
	found := diagsByCode(diags, CodeUnknownCSSClass)
	require.Len(t, found, 1)
	assert.NotContains(t, found[0].Hint, "did you mean")
	assert.NotEmpty(t, found[0].Hint, "every finding carries a hint")
}

func TestValidateSelectorUnknownID(t *testing.T) {
	reg := cssView(t, []string{"stage"}, []string{"main"})

	diags := Validate(selectorProgram("#mian"), reg)
	found := diagsByCode(diags, CodeUnknownCSSID)
	require.Len(t, found, 1)
	assert.Contains(t, found[0].Message, "mian")
	assert.Contains(t, found[0].Hint, `"main"`)
}

func TestValidateSelectorKnownTokensQuiet(t *testing.T) {
	reg := cssView(t, []string{"button", "primary"}, []string{"main"})

	diags := Validate(selectorProgram(".button.primary#main"), reg)
	assert.Empty(t, diags)
}

func TestValidateSelectorSkippedWithoutStyleImports(t *testing.T) {
	// No loaded stylesheets means no basis for judging tokens; stay quiet
	// rather than flagging everything.
	store := registry.NewStore(nil)

	diags := Validate(selectorProgram(".anything"), store)
	assert.Empty(t, diags)
}

func TestValidateSelectorSuggestionTieBreaksByRegistryOrder(t *testing.T) {
	// "cart" is distance 1 from both "card" and "cars"; the first
	// encountered in the registry wins.
	reg := cssView(t, []string{"cars", "card"}, nil)

	diags := Validate(selectorProgram(".cart"), reg)
	found := diagsByCode(diags, CodeUnknownCSSClass)
	require.Len(t, found, 1)
	assert.Contains(t, found[0].Hint, `"cars"`)
}

// =============================================================================
// Label Validation
// =============================================================================

func labelProgram(id string) *ir.Program {
	return &ir.Program{
		DocumentURI: testDocURI,
		Timelines: []ir.Timeline{{
			Provider:          ir.ProviderRAF,
			ContainerSelector: ".stage",
			Actions: []ir.TimelineAction{{
				Duration: ir.Duration{Start: 0, End: 1},
				Operations: []ir.Operation{
					ir.RawOperation{Name: "setLabel", Args: []ir.Value{
						ir.SelectorValue{Selector: ".stage"},
						ir.LabelValue{ID: id},
					}},
				},
			}},
		}},
	}
}

func TestValidateKnownLabelQuiet(t *testing.T) {
	reg := labelView(t, "intro_title", "outro_title")

	diags := Validate(labelProgram("intro_title"), reg)
	assert.Empty(t, diags)
}

func TestValidateUnknownLabel(t *testing.T) {
	reg := labelView(t, "intro_title")

	diags := Validate(labelProgram("into_title"), reg)
	found := diagsByCode(diags, CodeUnknownLabel)
	require.Len(t, found, 1)
	assert.Contains(t, found[0].Message, "into_title")
	assert.Contains(t, found[0].Hint, "did you mean")
	assert.Contains(t, found[0].Hint, `"intro_title"`)
}

func TestValidateLabelSkippedWithoutLabelImports(t *testing.T) {
	store := registry.NewStore(nil)

	diags := Validate(labelProgram("anything"), store)
	for _, d := range diags {
		assert.NotEqual(t, CodeUnknownLabel, d.Code)
	}
}

// =============================================================================
// Operations Inside Action Definitions
// =============================================================================

func TestValidateChecksSelectorsInsideActionDefs(t *testing.T) {
	reg := cssView(t, []string{"card"}, nil)

	prog := &ir.Program{
		DocumentURI: testDocURI,
		Actions: []ir.ActionDef{{
			Name: "pulse",
			Operations: []ir.Operation{
				ir.RawOperation{Name: "show", Args: []ir.Value{
					ir.SelectorValue{Selector: ".cardd"},
				}},
			},
		}},
	}

	diags := Validate(prog, reg)
	found := diagsByCode(diags, CodeUnknownCSSClass)
	require.Len(t, found, 1)
	assert.Contains(t, found[0].Hint, `"card"`)
}
