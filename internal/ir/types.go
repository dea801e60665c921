package ir

// Location is a 1-based source position carried through lowering so
// diagnostics can point back at the offending text.
type Location struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Provider identifies the clock source a timeline is driven by.
type Provider string

// Valid timeline providers.
const (
	ProviderVideo  Provider = "video"
	ProviderAudio  Provider = "audio"
	ProviderRAF    Provider = "raf"
	ProviderCustom Provider = "custom"
)

// MediaBacked reports whether the provider plays an external media source,
// which makes the timeline's Source field mandatory.
func (p Provider) MediaBacked() bool {
	return p == ProviderVideo || p == ProviderAudio
}

// ImportCategory classifies a document import.
type ImportCategory string

// Import categories that admit at most one default import each.
const (
	ImportLayout   ImportCategory = "layout"
	ImportStyles   ImportCategory = "styles"
	ImportProvider ImportCategory = "provider"
	ImportLabels   ImportCategory = "labels"
	ImportAsset    ImportCategory = "asset"
)

// Program is the lowered form of one Tactus document.
type Program struct {
	DocumentURI string       `json:"document_uri"`
	Imports     []Import     `json:"imports"`
	Actions     []ActionDef  `json:"actions"`
	Timelines   []Timeline   `json:"timelines"`
}

// Import is a lowered import statement.
type Import struct {
	Category ImportCategory `json:"category"`
	Name     string         `json:"name"`
	Path     string         `json:"path"`
	Default  bool           `json:"default"`
	// AssetType is the explicit type annotation ("audio", "video", ...)
	// for asset imports whose extension is ambiguous. Empty when omitted.
	AssetType string   `json:"asset_type,omitempty"`
	Loc       Location `json:"loc"`
}

// ActionDef is a user-defined, reusable group of operations.
type ActionDef struct {
	Name       string      `json:"name"`
	Params     []string    `json:"params"`
	Operations []Operation `json:"operations"`
	Loc        Location    `json:"loc"`
}

// Timeline is one playable timeline bound to a provider and container.
type Timeline struct {
	Provider          Provider `json:"provider"`
	ContainerSelector string   `json:"container"`
	// Source names the media import driving a video/audio provider.
	Source  string           `json:"source,omitempty"`
	Actions []TimelineAction `json:"actions"`
	Loc     Location         `json:"loc"`
}

// TimelineAction schedules an ordered group of operations over an interval.
// Action order within a timeline is execution order and is preserved
// exactly through every stage; the optimizer may only filter.
type TimelineAction struct {
	Duration   Duration    `json:"duration"`
	Operations []Operation `json:"operations"`
	Loc        Location    `json:"loc"`
	// Origin records which timing construct produced the action, for
	// diagnostics ("sequence step", "stagger item").
	Origin Origin `json:"origin,omitempty"`
	// Stagger is set on the first action lowered from a stagger construct
	// so the validator can check the construct's delay exactly once.
	Stagger *StaggerInfo `json:"stagger,omitempty"`
}

// StaggerInfo captures the parameters of the stagger construct that
// produced a run of actions.
type StaggerInfo struct {
	Delay float64 `json:"delay"`
	Items int     `json:"items"`
}

// Origin tags the timing construct a TimelineAction was lowered from.
type Origin string

// Timing construct origins.
const (
	OriginAt       Origin = "at"
	OriginSequence Origin = "sequence"
	OriginStagger  Origin = "stagger"
)

// Operation is one runtime operation inside a TimelineAction. Exactly two
// variants exist: RawOperation (built-in) and ActionCall (user-defined).
type Operation interface {
	isOperation()
	// OpName returns the callee name for diagnostics.
	OpName() string
}

// RawOperation invokes a built-in runtime operation by name.
type RawOperation struct {
	Name string   `json:"name"`
	Args []Value  `json:"args"`
	Loc  Location `json:"loc"`
}

func (RawOperation) isOperation() {}

// OpName implements Operation.
func (o RawOperation) OpName() string { return o.Name }

// ActionCall invokes a user-defined action. Def is nil when the callee
// name resolved against neither the document's action definitions nor the
// built-in catalog; the validator reports unresolved calls, lowering does
// not.
type ActionCall struct {
	Name string     `json:"name"`
	Def  *ActionDef `json:"-"`
	Args []Value    `json:"args"`
	Loc  Location   `json:"loc"`
}

func (ActionCall) isOperation() {}

// OpName implements Operation.
func (o ActionCall) OpName() string { return o.Name }

// Value is a literal or resolved-reference argument of an operation.
type Value interface {
	isValue()
}

// StringValue is a string literal argument.
type StringValue struct {
	Val string `json:"val"`
}

// NumberValue is a numeric literal argument.
type NumberValue struct {
	Val float64 `json:"val"`
}

// BoolValue is a boolean literal argument.
type BoolValue struct {
	Val bool `json:"val"`
}

// TimeValue is a time literal argument, already evaluated to seconds.
type TimeValue struct {
	Seconds float64 `json:"seconds"`
}

// SelectorValue is a CSS selector argument. The validator checks its
// class/ID tokens against the CSS registry.
type SelectorValue struct {
	Selector string   `json:"selector"`
	Loc      Location `json:"loc"`
}

// LabelValue is a label identifier argument. The validator checks it
// against the label registry.
type LabelValue struct {
	ID  string   `json:"id"`
	Loc Location `json:"loc"`
}

// RefValue is a reference to an imported name (asset, provider, layout).
type RefValue struct {
	Name string `json:"name"`
}

func (StringValue) isValue()   {}
func (NumberValue) isValue()   {}
func (BoolValue) isValue()     {}
func (TimeValue) isValue()     {}
func (SelectorValue) isValue() {}
func (LabelValue) isValue()    {}
func (RefValue) isValue()      {}
