package compiler

import (
	"fmt"

	"github.com/tactus-lang/tactus/internal/ir"
)

// Severity classifies a diagnostic. Classification is fixed per rule and
// not configurable.
type Severity string

// Diagnostic severities.
const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Diagnostic rule codes. One code per validation rule in the catalog.
const (
	// Timing rules
	CodeNegativeStartTime       = "NEGATIVE_START_TIME"
	CodeInvalidTimeRange        = "INVALID_TIME_RANGE"
	CodeNonPositiveStepDuration = "NON_POSITIVE_STEP_DURATION"
	CodeNonPositiveStaggerDelay = "NON_POSITIVE_STAGGER_DELAY"

	// Import integrity rules
	CodeDuplicateDefaultImport = "DUPLICATE_DEFAULT_IMPORT"
	CodeDuplicateImportName    = "DUPLICATE_IMPORT_NAME"
	CodeReservedImportName     = "RESERVED_IMPORT_NAME"
	CodeAmbiguousAssetType     = "AMBIGUOUS_ASSET_TYPE"

	// Timeline structure rules
	CodeMissingTimelineSource = "MISSING_TIMELINE_SOURCE"
	CodeUnknownOperation      = "UNKNOWN_OPERATION"

	// Registry-backed rules
	CodeUnknownCSSClass = "UNKNOWN_CSS_CLASS"
	CodeUnknownCSSID    = "UNKNOWN_CSS_ID"
	CodeUnknownLabel    = "UNKNOWN_LABEL"
)

// Diagnostic is a single reported issue. Every rule in the catalog ships
// an actionable hint alongside its message.
type Diagnostic struct {
	Severity Severity     `json:"severity"`
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Hint     string       `json:"hint,omitempty"`
	Loc      *ir.Location `json:"location,omitempty"`
}

// Error implements the error interface so diagnostics can flow through
// error-typed plumbing when a caller wants that.
func (d Diagnostic) Error() string {
	if d.Loc != nil {
		return fmt.Sprintf("[%s] %d:%d: %s: %s", d.Severity, d.Loc.Line, d.Loc.Column, d.Code, d.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", d.Severity, d.Code, d.Message)
}

// HasErrors reports whether any diagnostic in the list is error severity.
func HasErrors(diags []Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// TransformError reports a structurally invalid syntax tree reaching the
// lowering stage. This indicates a contract violation between the parser
// and the compiler, not a user error, and it aborts the compilation.
type TransformError struct {
	Node    string
	Message string
	Loc     ir.Location
}

func (e *TransformError) Error() string {
	if e.Loc.Line > 0 {
		return fmt.Sprintf("internal: %d:%d: %s: %s", e.Loc.Line, e.Loc.Column, e.Node, e.Message)
	}
	return fmt.Sprintf("internal: %s: %s", e.Node, e.Message)
}
