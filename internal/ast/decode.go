package ast

import (
	"encoding/json"
	"fmt"

	"github.com/tactus-lang/tactus/internal/ir"
)

// DecodeDocument parses the parser's JSON tree export into a Document.
//
// This is the wire contract with the Syntax Tree Provider: node variants
// carry a "kind" discriminator on the wire but become typed sum variants
// here, so nothing downstream dispatches on strings.
func DecodeDocument(data []byte) (*Document, error) {
	var w wireDocument
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("decode syntax tree: %w", err)
	}

	doc := &Document{URI: w.URI}

	for i, imp := range w.Imports {
		doc.Imports = append(doc.Imports, Import{
			Category:  imp.Category,
			Name:      imp.Name,
			Path:      imp.Path,
			Default:   imp.Default,
			AssetType: imp.AssetType,
			Loc:       imp.Loc,
		})
		if imp.Category == "" {
			return nil, fmt.Errorf("decode syntax tree: imports[%d]: missing category", i)
		}
	}

	for _, act := range w.Actions {
		def := ActionDef{Name: act.Name, Params: act.Params, Loc: act.Loc}
		for _, c := range act.Calls {
			call, err := decodeCall(c)
			if err != nil {
				return nil, fmt.Errorf("decode syntax tree: action %q: %w", act.Name, err)
			}
			def.Calls = append(def.Calls, call)
		}
		doc.Actions = append(doc.Actions, def)
	}

	for i, tl := range w.Timelines {
		timeline := Timeline{
			Provider:  tl.Provider,
			Container: tl.Container,
			Source:    tl.Source,
			Loc:       tl.Loc,
		}
		for j, raw := range tl.Entries {
			entry, err := decodeEntry(raw)
			if err != nil {
				return nil, fmt.Errorf("decode syntax tree: timelines[%d].entries[%d]: %w", i, j, err)
			}
			timeline.Entries = append(timeline.Entries, entry)
		}
		doc.Timelines = append(doc.Timelines, timeline)
	}

	return doc, nil
}

type wireDocument struct {
	URI       string         `json:"uri"`
	Imports   []wireImport   `json:"imports"`
	Actions   []wireAction   `json:"actions"`
	Timelines []wireTimeline `json:"timelines"`
}

type wireImport struct {
	Category  string      `json:"category"`
	Name      string      `json:"name"`
	Path      string      `json:"path"`
	Default   bool        `json:"default"`
	AssetType string      `json:"assetType"`
	Loc       ir.Location `json:"loc"`
}

type wireAction struct {
	Name   string      `json:"name"`
	Params []string    `json:"params"`
	Calls  []wireCall  `json:"calls"`
	Loc    ir.Location `json:"loc"`
}

type wireTimeline struct {
	Provider  string            `json:"provider"`
	Container string            `json:"container"`
	Source    string            `json:"source"`
	Entries   []json.RawMessage `json:"entries"`
	Loc       ir.Location       `json:"loc"`
}

type wireCall struct {
	Name string            `json:"name"`
	Args []json.RawMessage `json:"args"`
	Loc  ir.Location       `json:"loc"`
}

type wireTimeLit struct {
	Text string      `json:"text"`
	Loc  ir.Location `json:"loc"`
}

func (w wireTimeLit) lit() TimeLit { return TimeLit{Text: w.Text, Loc: w.Loc} }

type wireEntry struct {
	Kind  string       `json:"kind"`
	Start wireTimeLit  `json:"start"`
	End   *wireTimeLit `json:"end"`
	For   *wireTimeLit `json:"for"`
	Delay wireTimeLit  `json:"delay"`
	Items []string     `json:"items"`
	Calls []wireCall   `json:"calls"`
	Call  *wireCall    `json:"call"`
	Steps []wireStep   `json:"steps"`
	Loc   ir.Location  `json:"loc"`
}

type wireStep struct {
	For  wireTimeLit `json:"for"`
	Call wireCall    `json:"call"`
	Loc  ir.Location `json:"loc"`
}

func decodeEntry(raw json.RawMessage) (Entry, error) {
	var w wireEntry
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, err
	}

	switch w.Kind {
	case "at":
		e := AtEntry{Start: w.Start.lit(), Loc: w.Loc}
		if w.End != nil {
			end := w.End.lit()
			e.End = &end
		}
		if w.For != nil {
			dur := w.For.lit()
			e.For = &dur
		}
		for _, c := range w.Calls {
			call, err := decodeCall(c)
			if err != nil {
				return nil, err
			}
			e.Calls = append(e.Calls, call)
		}
		return e, nil

	case "sequence":
		e := SequenceEntry{Start: w.Start.lit(), Loc: w.Loc}
		for _, s := range w.Steps {
			call, err := decodeCall(s.Call)
			if err != nil {
				return nil, err
			}
			e.Steps = append(e.Steps, SequenceStep{For: s.For.lit(), Call: call, Loc: s.Loc})
		}
		return e, nil

	case "stagger":
		if w.Call == nil {
			return nil, fmt.Errorf("stagger entry missing call")
		}
		call, err := decodeCall(*w.Call)
		if err != nil {
			return nil, err
		}
		var dur TimeLit
		if w.For != nil {
			dur = w.For.lit()
		}
		return StaggerEntry{
			Start: w.Start.lit(),
			Delay: w.Delay.lit(),
			Items: w.Items,
			Call:  call,
			For:   dur,
			Loc:   w.Loc,
		}, nil

	default:
		return nil, fmt.Errorf("unknown entry kind %q", w.Kind)
	}
}

type wireArg struct {
	Kind   string      `json:"kind"`
	String string      `json:"string"`
	Number float64     `json:"number"`
	Bool   bool        `json:"bool"`
	Text   string      `json:"text"`
	Name   string      `json:"name"`
	Loc    ir.Location `json:"loc"`
}

func decodeCall(w wireCall) (Call, error) {
	call := Call{Name: w.Name, Loc: w.Loc}
	for i, raw := range w.Args {
		var a wireArg
		if err := json.Unmarshal(raw, &a); err != nil {
			return Call{}, fmt.Errorf("call %q: args[%d]: %w", w.Name, i, err)
		}
		switch a.Kind {
		case "string":
			call.Args = append(call.Args, StringArg{Value: a.String, Loc: a.Loc})
		case "number":
			call.Args = append(call.Args, NumberArg{Value: a.Number, Loc: a.Loc})
		case "bool":
			call.Args = append(call.Args, BoolArg{Value: a.Bool, Loc: a.Loc})
		case "time":
			call.Args = append(call.Args, TimeArg{Text: a.Text, Loc: a.Loc})
		case "ident":
			call.Args = append(call.Args, IdentArg{Name: a.Name, Loc: a.Loc})
		default:
			return Call{}, fmt.Errorf("call %q: args[%d]: unknown arg kind %q", w.Name, i, a.Kind)
		}
	}
	return call, nil
}
