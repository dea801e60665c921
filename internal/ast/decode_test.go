package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Syntax Tree Wire Decoding
// =============================================================================

func TestDecodeDocumentBasic(t *testing.T) {
	doc, err := DecodeDocument([]byte(`{
		"uri": "file:///demo.tac",
		"imports": [
			{"category": "styles", "name": "theme", "path": "theme.css", "default": true,
			 "loc": {"line": 1, "column": 1}}
		],
		"timelines": [{
			"provider": "raf",
			"container": ".stage",
			"entries": [{
				"kind": "at",
				"start": {"text": "0s", "loc": {"line": 3, "column": 4}},
				"end": {"text": "5s", "loc": {"line": 3, "column": 10}},
				"calls": [{
					"name": "show",
					"args": [{"kind": "string", "string": ".panel", "loc": {"line": 3, "column": 15}}],
					"loc": {"line": 3, "column": 13}
				}],
				"loc": {"line": 3, "column": 1}
			}],
			"loc": {"line": 2, "column": 1}
		}]
	}`))
	require.NoError(t, err)

	assert.Equal(t, "file:///demo.tac", doc.URI)
	require.Len(t, doc.Imports, 1)
	assert.Equal(t, "styles", doc.Imports[0].Category)
	assert.True(t, doc.Imports[0].Default)

	require.Len(t, doc.Timelines, 1)
	tl := doc.Timelines[0]
	assert.Equal(t, "raf", tl.Provider)
	require.Len(t, tl.Entries, 1)

	at, ok := tl.Entries[0].(AtEntry)
	require.True(t, ok)
	assert.Equal(t, "0s", at.Start.Text)
	require.NotNil(t, at.End)
	assert.Equal(t, "5s", at.End.Text)
	assert.Nil(t, at.For)
	require.Len(t, at.Calls, 1)
	assert.Equal(t, "show", at.Calls[0].Name)

	arg, ok := at.Calls[0].Args[0].(StringArg)
	require.True(t, ok)
	assert.Equal(t, ".panel", arg.Value)
}

func TestDecodeDocumentPointFormAt(t *testing.T) {
	doc, err := DecodeDocument([]byte(`{
		"uri": "file:///demo.tac",
		"timelines": [{
			"provider": "raf", "container": ".stage",
			"entries": [{
				"kind": "at",
				"start": {"text": "2s"},
				"for": {"text": "500ms"},
				"calls": []
			}]
		}]
	}`))
	require.NoError(t, err)

	at := doc.Timelines[0].Entries[0].(AtEntry)
	assert.Nil(t, at.End)
	require.NotNil(t, at.For)
	assert.Equal(t, "500ms", at.For.Text)
}

func TestDecodeDocumentSequenceEntry(t *testing.T) {
	doc, err := DecodeDocument([]byte(`{
		"uri": "file:///demo.tac",
		"timelines": [{
			"provider": "raf", "container": ".stage",
			"entries": [{
				"kind": "sequence",
				"start": {"text": "1s"},
				"steps": [
					{"for": {"text": "2s"}, "call": {"name": "fadeIn", "args": []}},
					{"for": {"text": "500ms"}, "call": {"name": "fadeOut", "args": []}}
				]
			}]
		}]
	}`))
	require.NoError(t, err)

	seq, ok := doc.Timelines[0].Entries[0].(SequenceEntry)
	require.True(t, ok)
	assert.Equal(t, "1s", seq.Start.Text)
	require.Len(t, seq.Steps, 2)
	assert.Equal(t, "fadeIn", seq.Steps[0].Call.Name)
	assert.Equal(t, "500ms", seq.Steps[1].For.Text)
}

func TestDecodeDocumentStaggerEntry(t *testing.T) {
	doc, err := DecodeDocument([]byte(`{
		"uri": "file:///demo.tac",
		"timelines": [{
			"provider": "raf", "container": ".stage",
			"entries": [{
				"kind": "stagger",
				"start": {"text": "0s"},
				"delay": {"text": "100ms"},
				"items": [".a", ".b", ".c"],
				"call": {"name": "fadeIn", "args": []},
				"for": {"text": "1s"}
			}]
		}]
	}`))
	require.NoError(t, err)

	st, ok := doc.Timelines[0].Entries[0].(StaggerEntry)
	require.True(t, ok)
	assert.Equal(t, "100ms", st.Delay.Text)
	assert.Equal(t, []string{".a", ".b", ".c"}, st.Items)
	assert.Equal(t, "fadeIn", st.Call.Name)
	assert.Equal(t, "1s", st.For.Text)
}

func TestDecodeDocumentActionDef(t *testing.T) {
	doc, err := DecodeDocument([]byte(`{
		"uri": "file:///demo.tac",
		"actions": [{
			"name": "flash",
			"params": ["target"],
			"calls": [{
				"name": "show",
				"args": [{"kind": "ident", "name": "target"}]
			}]
		}]
	}`))
	require.NoError(t, err)

	require.Len(t, doc.Actions, 1)
	def := doc.Actions[0]
	assert.Equal(t, "flash", def.Name)
	assert.Equal(t, []string{"target"}, def.Params)
	require.Len(t, def.Calls, 1)

	arg, ok := def.Calls[0].Args[0].(IdentArg)
	require.True(t, ok)
	assert.Equal(t, "target", arg.Name)
}

func TestDecodeDocumentAllArgKinds(t *testing.T) {
	doc, err := DecodeDocument([]byte(`{
		"uri": "file:///demo.tac",
		"timelines": [{
			"provider": "raf", "container": ".stage",
			"entries": [{
				"kind": "at",
				"start": {"text": "0s"},
				"end": {"text": "1s"},
				"calls": [{
					"name": "setStyle",
					"args": [
						{"kind": "string", "string": "opacity"},
						{"kind": "number", "number": 0.5},
						{"kind": "bool", "bool": true},
						{"kind": "time", "text": "250ms"},
						{"kind": "ident", "name": "theme_song"}
					]
				}]
			}]
		}]
	}`))
	require.NoError(t, err)

	args := doc.Timelines[0].Entries[0].(AtEntry).Calls[0].Args
	require.Len(t, args, 5)
	assert.Equal(t, StringArg{Value: "opacity"}, args[0])
	assert.Equal(t, NumberArg{Value: 0.5}, args[1])
	assert.Equal(t, BoolArg{Value: true}, args[2])
	assert.Equal(t, TimeArg{Text: "250ms"}, args[3])
	assert.Equal(t, IdentArg{Name: "theme_song"}, args[4])
}

func TestDecodeDocumentUnknownEntryKind(t *testing.T) {
	_, err := DecodeDocument([]byte(`{
		"uri": "file:///demo.tac",
		"timelines": [{
			"provider": "raf", "container": ".stage",
			"entries": [{"kind": "loop", "start": {"text": "0s"}}]
		}]
	}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown entry kind "loop"`)
}

func TestDecodeDocumentUnknownArgKind(t *testing.T) {
	_, err := DecodeDocument([]byte(`{
		"uri": "file:///demo.tac",
		"timelines": [{
			"provider": "raf", "container": ".stage",
			"entries": [{
				"kind": "at",
				"start": {"text": "0s"}, "end": {"text": "1s"},
				"calls": [{"name": "show", "args": [{"kind": "regex"}]}]
			}]
		}]
	}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown arg kind "regex"`)
}

func TestDecodeDocumentMissingImportCategory(t *testing.T) {
	_, err := DecodeDocument([]byte(`{
		"uri": "file:///demo.tac",
		"imports": [{"name": "theme", "path": "theme.css"}]
	}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing category")
}

func TestDecodeDocumentStaggerMissingCall(t *testing.T) {
	_, err := DecodeDocument([]byte(`{
		"uri": "file:///demo.tac",
		"timelines": [{
			"provider": "raf", "container": ".stage",
			"entries": [{"kind": "stagger", "start": {"text": "0s"}, "delay": {"text": "1s"}, "items": [".a"]}]
		}]
	}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stagger entry missing call")
}

func TestDecodeDocumentMalformedJSON(t *testing.T) {
	_, err := DecodeDocument([]byte(`{"uri":`))
	assert.Error(t, err)
}
